package types

import "time"

// Defaults applied when neither a flag, an environment variable, nor the
// config file supplies a value.
const (
	DefaultEnvFile       = ".env"
	DefaultOutputPath    = "flashcards.txt"
	DefaultModel         = "gemini-2.0-flash-exp"
	DefaultCredentialKey = "GOOGLE_API_KEY"
	DefaultPattern       = "*.md"
	DefaultTimeout       = 2 * time.Minute

	DefaultAnthropicModel         = "claude-sonnet-4-5-20250929"
	DefaultAnthropicCredentialKey = "ANTHROPIC_API_KEY"
)

// Provider identifies the generative text service.
type Provider string

const (
	ProviderGemini    Provider = "gemini"
	ProviderAnthropic Provider = "anthropic"
)

// Valid reports whether p names a supported provider.
func (p Provider) Valid() bool {
	return p == ProviderGemini || p == ProviderAnthropic
}

// AIConfig holds settings for the generation call.
type AIConfig struct {
	// Provider selects the service: gemini (default) or anthropic.
	Provider Provider `json:"provider" yaml:"provider"`

	// Model is the model identifier (e.g. "gemini-2.0-flash-exp").
	Model string `json:"model" yaml:"model"`

	// BaseURL overrides the API endpoint. Empty uses the provider default.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// Timeout bounds the whole generation call, including retries.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// MaxRetries is the number of extra attempts on HTTP 429/503 (default 0).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// RunConfig holds everything one flashcard run needs.
type RunConfig struct {
	AIConfig `yaml:",inline"`

	// NotesDir is the directory scanned for note files. Not read from the
	// config file; it is always the positional CLI argument.
	NotesDir string `json:"-" yaml:"-"`

	// EnvFile is the dotenv-style file that may hold the credential.
	EnvFile string `json:"env_file" yaml:"env_file"`

	// CredentialKey is the variable name the API key is stored under.
	// Defaults to GOOGLE_API_KEY, or ANTHROPIC_API_KEY for the anthropic
	// provider.
	CredentialKey string `json:"credential_key" yaml:"credential_key"`

	// OutputPath is where the generated flashcards are written.
	OutputPath string `json:"output" yaml:"output"`

	// Pattern is the glob a file's base name must match to count as a note.
	Pattern string `json:"pattern" yaml:"pattern"`
}

// DefaultRunConfig returns a RunConfig populated with the defaults above.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		AIConfig: AIConfig{
			Provider: ProviderGemini,
			Model:    DefaultModel,
			Timeout:  DefaultTimeout,
		},
		EnvFile:       DefaultEnvFile,
		CredentialKey: DefaultCredentialKey,
		OutputPath:    DefaultOutputPath,
		Pattern:       DefaultPattern,
	}
}

// WithDefaults fills zero-valued fields from DefaultRunConfig. Model and
// CredentialKey defaults follow the provider.
func (c RunConfig) WithDefaults() RunConfig {
	d := DefaultRunConfig()
	if c.Provider == "" {
		c.Provider = d.Provider
	}
	if c.Model == "" {
		c.Model = d.Model
		if c.Provider == ProviderAnthropic {
			c.Model = DefaultAnthropicModel
		}
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.EnvFile == "" {
		c.EnvFile = d.EnvFile
	}
	if c.CredentialKey == "" {
		c.CredentialKey = d.CredentialKey
		if c.Provider == ProviderAnthropic {
			c.CredentialKey = DefaultAnthropicCredentialKey
		}
	}
	if c.OutputPath == "" {
		c.OutputPath = d.OutputPath
	}
	if c.Pattern == "" {
		c.Pattern = d.Pattern
	}
	return c
}
