package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/nutrisync/macrolens/internal/config"
)

// ErrEmptyReply is returned when the upstream completion carries no choices.
var ErrEmptyReply = errors.New("upstream returned no choices")

// OpenAI talks to any OpenAI-compatible chat completions API. Groq exposes
// one at /openai/v1.
type OpenAI struct {
	client *openai.Client
	cfg    *config.GroqConfig
}

func NewOpenAI(cfg *config.GroqConfig, opts ...option.RequestOption) (*OpenAI, error) {
	if cfg.APIEndpoint == "" {
		return nil, errors.New("llm endpoint cannot be empty")
	}

	// A failed attempt goes straight to the fallback path, so the SDK's
	// built-in retries are disabled.
	base := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(strings.TrimSuffix(cfg.APIEndpoint, "/") + "/"),
		option.WithMaxRetries(0),
	}

	return &OpenAI{
		client: openai.NewClient(append(base, opts...)...),
		cfg:    cfg,
	}, nil
}

func (o *OpenAI) AnalyzeImage(ctx context.Context, prompt, imageURL string, opts ...Option) (*Response, error) {
	options := &Options{
		Model:       o.cfg.Model,
		Temperature: o.cfg.Temperature,
		MaxTokens:   o.cfg.MaxTokens,
	}
	for _, opt := range opts {
		opt(options)
	}

	resp, err := o.client.Chat.Completions.New(
		ctx,
		openai.ChatCompletionNewParams{
			Model: openai.F(options.Model),
			Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
				openai.UserMessageParts(
					openai.TextPart(prompt),
					openai.ImagePart(imageURL),
				),
			}),
			Temperature: openai.F(options.Temperature),
			MaxTokens:   openai.F(options.MaxTokens),
		},
	)
	if err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, ErrEmptyReply
	}

	return &Response{
		Content: resp.Choices[0].Message.Content,
		Model:   resp.Model,
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}
