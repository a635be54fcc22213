package analyzer

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"github.com/nutrisync/macrolens/apimodels"
	"github.com/nutrisync/macrolens/internal/config"
	"github.com/nutrisync/macrolens/internal/llm"
)

const (
	UnknownFood = "Unknown Food"

	// rawLogLimit caps how much of the model reply is written to the log.
	rawLogLimit = 300
)

var VisionPrompt = `You are a professional nutritionist AI. Analyze the food shown in
this image and respond ONLY with a valid JSON object. No markdown, no backticks,
no extra text.

JSON schema:
{
  "food": "<short name of the dish>",
  "calories": <number kcal>,
  "protein": <grams>,
  "carbs": <grams>,
  "fat": <grams>,
  "confidence": "high" | "medium" | "low",
  "details": "<one-sentence description of the portion & preparation>"
}

If the image is not food, return:
{"food": "Unknown", "calories": 0, "protein": 0, "carbs": 0, "fat": 0,
 "confidence": "low", "details": "Could not identify food in the image."}
`

// Estimate is the nutrition data recovered from a single image.
type Estimate struct {
	Food       string
	Calories   float64
	Protein    float64
	Carbs      float64
	Fat        float64
	Confidence apimodels.ConfidenceLevel
	Details    string
}

// Fallback is returned whenever real analysis cannot be performed.
var Fallback = Estimate{
	Food:       UnknownFood,
	Calories:   250,
	Protein:    10,
	Carbs:      30,
	Fat:        8,
	Confidence: apimodels.LowConfidence,
	Details:    "AI analysis unavailable, showing rough estimate.",
}

// Result wraps the estimate in the response shape. Success is always true.
func (e Estimate) Result() apimodels.AnalysisResult {
	return apimodels.AnalysisResult{
		Success: true,
		Food:    e.Food,
		Macros: apimodels.Macros{
			Calories: e.Calories,
			Protein:  e.Protein,
			Carbs:    e.Carbs,
			Fat:      e.Fat,
		},
		Confidence: e.Confidence,
		Details:    e.Details,
	}
}

type Analyzer struct {
	llmProvider llm.Provider
	configured  bool
}

func New(llmProvider llm.Provider, cfg config.GroqConfig) *Analyzer {
	return &Analyzer{
		llmProvider: llmProvider,
		configured:  cfg.Configured() && llmProvider != nil,
	}
}

// Analyze estimates macros for an image. Without an upstream credential it
// returns Fallback without calling out. Upstream and parse failures are
// returned to the caller, which decides how to degrade.
func (a *Analyzer) Analyze(ctx context.Context, image []byte, mimeType string) (Estimate, error) {
	if !a.configured {
		slog.Warn("GROQ_API_KEY not set, returning fallback estimate")
		return Fallback, nil
	}

	slog.Info("Starting analysis", "mime", mimeType, "bytes", len(image))
	startTime := time.Now()

	resp, err := a.llmProvider.AnalyzeImage(ctx, VisionPrompt, DataURI(mimeType, image))
	if err != nil {
		return Estimate{}, fmt.Errorf("vision request failed: %w", err)
	}

	slog.Info("Groq raw response",
		"raw", truncateString(resp.Content, rawLogLimit),
		"tokens", resp.Usage.TotalTokens,
		"duration", time.Since(startTime),
	)

	obj, err := ExtractJSON(resp.Content)
	if err != nil {
		return Estimate{}, err
	}
	return decodeEstimate(obj), nil
}

// DataURI encodes image bytes as a base64 data URI.
func DataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func truncateString(s string, maxLen int) string {
	if len(s) > maxLen {
		return s[:maxLen] + "\n[truncated]"
	}
	return s
}
