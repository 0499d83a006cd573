// Package pipeline runs one flashcard generation end to end: resolve the
// credential, collect and aggregate the notes, generate, write the output.
package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/pdiddy/flashcards/internal/generate"
	"github.com/pdiddy/flashcards/internal/notes"
	"github.com/pdiddy/flashcards/internal/secrets"
	"github.com/pdiddy/flashcards/pkg/types"
)

// BackendFactory builds the generation backend once the credential is known.
type BackendFactory func(ctx context.Context, cfg types.AIConfig, apiKey string) (generate.Backend, error)

// DefaultFactory is the production BackendFactory. It picks the backend by
// cfg.Provider.
func DefaultFactory(ctx context.Context, cfg types.AIConfig, apiKey string) (generate.Backend, error) {
	switch cfg.Provider {
	case types.ProviderGemini, "":
		return generate.NewGeminiBackend(ctx, cfg, apiKey)
	case types.ProviderAnthropic:
		return generate.NewClaudeBackend(cfg, apiKey), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// Pipeline holds the collaborators of a run.
type Pipeline struct {
	// NewBackend builds the generation backend. Defaults to DefaultFactory.
	NewBackend BackendFactory

	// LookupEnv reads the process environment. Defaults to os.LookupEnv.
	LookupEnv secrets.LookupFunc
}

// Run executes the stages in order and stops at the first failure. Every
// error it returns is a *types.Error. The output file is only created or
// replaced after generation succeeds.
func (p *Pipeline) Run(ctx context.Context, cfg types.RunConfig) error {
	cfg = cfg.WithDefaults()
	log := zerolog.Ctx(ctx)

	lookup := p.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	newBackend := p.NewBackend
	if newBackend == nil {
		newBackend = DefaultFactory
	}

	apiKey, err := secrets.Load(cfg.EnvFile, cfg.CredentialKey, lookup)
	if err != nil {
		return err
	}
	log.Debug().Str("key", cfg.CredentialKey).Msg("credential loaded")

	set, err := notes.Collect(cfg.NotesDir, cfg.Pattern)
	if err != nil {
		return err
	}
	log.Info().Int("files", len(set)).Str("dir", cfg.NotesDir).Msg("collected notes")

	text, err := notes.Aggregate(set)
	if err != nil {
		return err
	}
	log.Debug().Int("bytes", len(text)).Msg("aggregated notes")

	genCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	backend, err := newBackend(genCtx, cfg.AIConfig, apiKey)
	if err != nil {
		return types.NewError(types.ErrGeneration, "", err)
	}

	log.Info().Str("model", cfg.Model).Msg("generating flashcards")
	cards, err := generate.Flashcards(genCtx, backend, text)
	if err != nil {
		return err
	}

	if err := writeFileAtomic(cfg.OutputPath, []byte(cards), 0o644); err != nil {
		return types.NewError(types.ErrOutputWrite, cfg.OutputPath, err)
	}
	log.Info().Str("output", cfg.OutputPath).Msg("flashcards written")
	return nil
}
