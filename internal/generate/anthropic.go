// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/flashcards/internal/httputil"
	"github.com/pdiddy/flashcards/pkg/types"
)

// anthropicAPIURL is the Claude Messages API endpoint.
const anthropicAPIURL = "https://api.anthropic.com/v1/messages"

// ClaudeBackend calls the Claude Messages API with the prompt as a single
// user message.
type ClaudeBackend struct {
	APIKey    string
	Model     string
	URL       string
	MaxTokens int
	Client    *http.Client
}

// NewClaudeBackend builds a ClaudeBackend from cfg. cfg.BaseURL, when set,
// replaces the default endpoint.
func NewClaudeBackend(cfg types.AIConfig, apiKey string) *ClaudeBackend {
	url := anthropicAPIURL
	if cfg.BaseURL != "" {
		url = strings.TrimSuffix(cfg.BaseURL, "/") + "/v1/messages"
	}
	model := cfg.Model
	if model == "" {
		model = types.DefaultAnthropicModel
	}
	return &ClaudeBackend{
		APIKey:    apiKey,
		Model:     model,
		URL:       url,
		MaxTokens: 8192,
		Client:    httputil.NewClient(cfg.Timeout, cfg.MaxRetries),
	}
}

// claudeRequest is the request body for the Claude Messages API.
type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

// claudeMessage is a single message in the Claude API conversation.
type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// claudeResponse is the response body from the Claude Messages API.
type claudeResponse struct {
	Content []claudeContent `json:"content"`
}

// claudeContent is a content block in the Claude API response.
type claudeContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Generate sends prompt and returns the concatenated text blocks of the reply.
func (c *ClaudeBackend) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := claudeRequest{
		Model:     c.Model,
		MaxTokens: c.MaxTokens,
		Messages: []claudeMessage{
			{Role: "user", Content: prompt},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling Claude API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		// Error bodies are often pretty-printed JSON; keep the message on one line.
		return "", fmt.Errorf("Claude API returned %d: %s", resp.StatusCode, strings.Join(strings.Fields(string(body)), " "))
	}

	var cResp claudeResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return "", fmt.Errorf("decoding Claude response: %w", err)
	}

	var sb strings.Builder
	for _, block := range cResp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("no text content in Claude API response")
	}
	return sb.String(), nil
}
