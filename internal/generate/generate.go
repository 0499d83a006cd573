// Package generate turns aggregated note text into flashcards by prompting a
// generative text service.
package generate

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_backend.go -package=mocks github.com/pdiddy/flashcards/internal/generate Backend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/flashcards/pkg/types"
)

// Backend abstracts the generative text API so tests can supply a mock.
// Implementations send prompt as-is and return the response text.
type Backend interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Flashcards prompts backend once with the instructions and notes and
// returns the response verbatim. Backend failures and responses with no
// usable text are reported as types.ErrGeneration.
func Flashcards(ctx context.Context, backend Backend, notes string) (string, error) {
	prompt, err := RenderPrompt(notes)
	if err != nil {
		return "", types.NewError(types.ErrGeneration, "", fmt.Errorf("rendering prompt: %w", err))
	}

	log := zerolog.Ctx(ctx)
	log.Debug().Int("prompt_bytes", len(prompt)).Msg("calling generation service")

	text, err := backend.Generate(ctx, prompt)
	if err != nil {
		return "", types.NewError(types.ErrGeneration, "", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", types.NewError(types.ErrGeneration, "", errors.New("service returned no text"))
	}

	log.Debug().Int("response_bytes", len(text)).Msg("generation complete")
	return text, nil
}
