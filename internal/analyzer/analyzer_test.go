package analyzer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrisync/macrolens/apimodels"
	"github.com/nutrisync/macrolens/internal/config"
	"github.com/nutrisync/macrolens/internal/llm"
)

type fakeProvider struct {
	content string
	err     error

	calls    int
	prompt   string
	imageURL string
}

func (f *fakeProvider) AnalyzeImage(_ context.Context, prompt, imageURL string, _ ...llm.Option) (*llm.Response, error) {
	f.calls++
	f.prompt = prompt
	f.imageURL = imageURL
	if f.err != nil {
		return nil, f.err
	}
	return &llm.Response{Content: f.content}, nil
}

var configured = config.GroqConfig{APIKey: "gsk_test", Model: "llama-3.2-90b-vision-preview"}

func TestAnalyzeWithoutCredentialReturnsFallback(t *testing.T) {
	provider := &fakeProvider{content: `{"food":"Pizza"}`}
	a := New(provider, config.GroqConfig{})

	est, err := a.Analyze(context.Background(), []byte("img"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, Fallback, est)
	assert.Zero(t, provider.calls)
}

func TestAnalyzeSendsPromptAndDataURI(t *testing.T) {
	provider := &fakeProvider{content: `{"food":"Pizza","calories":285,"protein":12,"carbs":36,"fat":10,"confidence":"medium"}`}
	a := New(provider, configured)

	est, err := a.Analyze(context.Background(), []byte{0xff, 0xd8, 0xff}, "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, VisionPrompt, provider.prompt)
	assert.Equal(t, "data:image/jpeg;base64,/9j/", provider.imageURL)
	assert.Equal(t, "Pizza", est.Food)
	assert.InDelta(t, 285, est.Calories, 1e-9)
	assert.Equal(t, apimodels.MediumConfidence, est.Confidence)
}

func TestAnalyzeFencedReply(t *testing.T) {
	provider := &fakeProvider{content: "Sure! ```json\n{\"food\":\"Pizza\",\"calories\":285,\"protein\":12,\"carbs\":36,\"fat\":10}\n```"}
	a := New(provider, configured)

	est, err := a.Analyze(context.Background(), []byte("img"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "Pizza", est.Food)
	assert.InDelta(t, 10, est.Fat, 1e-9)
}

func TestAnalyzeUpstreamError(t *testing.T) {
	upstream := errors.New("connection refused")
	a := New(&fakeProvider{err: upstream}, configured)

	_, err := a.Analyze(context.Background(), []byte("img"), "image/png")
	assert.ErrorIs(t, err, upstream)
}

func TestAnalyzeUnparseableReply(t *testing.T) {
	a := New(&fakeProvider{content: "This looks like a delicious pizza!"}, configured)

	_, err := a.Analyze(context.Background(), []byte("img"), "image/png")
	assert.ErrorIs(t, err, ErrNoJSON)
}

func TestEstimateResult(t *testing.T) {
	res := Fallback.Result()

	assert.True(t, res.Success)
	assert.Equal(t, "Unknown Food", res.Food)
	assert.Equal(t, apimodels.Macros{Calories: 250, Protein: 10, Carbs: 30, Fat: 8}, res.Macros)
	assert.Equal(t, apimodels.LowConfidence, res.Confidence)
	assert.NotEmpty(t, res.Details)
}

func TestDataURI(t *testing.T) {
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", DataURI("image/png", []byte("hello")))
}
