package apimodels

type ConfidenceLevel string

const (
	HighConfidence   ConfidenceLevel = "high"
	MediumConfidence ConfidenceLevel = "medium"
	LowConfidence    ConfidenceLevel = "low"
)

// Macros are per-serving estimates in kcal and grams.
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type AnalysisResult struct {
	// Always true: degraded estimates are reported the same way as real ones
	Success bool `json:"success"`

	// Short dish name
	Food string `json:"food"`

	Macros Macros `json:"macros"`

	// Model-reported confidence, usually high, medium or low
	Confidence ConfidenceLevel `json:"confidence,omitempty"`

	// One-sentence description of portion and preparation
	Details string `json:"details,omitempty"`
}

type HealthStatus struct {
	Status         string `json:"status"`
	Model          string `json:"model"`
	GroqConfigured bool   `json:"groq_configured"`
}

// ErrorResponse is the body of every 4xx reply.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
