package generate

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/pdiddy/flashcards/internal/httputil"
	"github.com/pdiddy/flashcards/pkg/types"
)

// GeminiBackend calls the Gemini API through the genai SDK.
type GeminiBackend struct {
	Model  string
	client *genai.Client
}

// NewGeminiBackend creates a Gemini API client authenticated with apiKey.
// The HTTP client retries busy responses up to cfg.MaxRetries times and
// never runs longer than cfg.Timeout.
func NewGeminiBackend(ctx context.Context, cfg types.AIConfig, apiKey string) (*GeminiBackend, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  httputil.NewClient(cfg.Timeout, cfg.MaxRetries),
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = types.DefaultModel
	}
	return &GeminiBackend{Model: model, client: client}, nil
}

// Generate sends prompt as a single user turn and returns the text of the
// first candidate.
func (g *GeminiBackend) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.Model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("calling Gemini API: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("Gemini API returned no response")
	}
	return resp.Text(), nil
}
