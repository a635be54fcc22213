package llm

import "context"

type Provider interface {
	// AnalyzeImage sends a text prompt together with an image (as a URL or
	// data URI) and returns the model's text reply.
	AnalyzeImage(ctx context.Context, prompt, imageURL string, opts ...Option) (*Response, error)
}

type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}

type Option func(*Options)

type Options struct {
	Model       string
	MaxTokens   int64
	Temperature float64
}

// WithModel overrides the configured model for a single call.
func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

type Response struct {
	Content string
	Model   string
	Usage   Usage
}
