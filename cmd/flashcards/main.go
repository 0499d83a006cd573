// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the flashcards CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/flashcards/internal/pipeline"
	"github.com/pdiddy/flashcards/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// configFileUsed is the config file read by initConfig, empty when none was
// found. It is logged once the logger exists.
var configFileUsed string

// rootCmd runs the whole pipeline for one notes directory.
var rootCmd = &cobra.Command{
	Use:   "flashcards <notes-dir>",
	Short: "Convert a folder of markdown notes into tab-separated flashcards",
	Long: `flashcards reads every markdown file directly inside notes-dir, joins them in
sorted order, and asks the Gemini API (or Claude, with --provider anthropic) to
turn them into question/answer flashcards. The result is written as one
"question<TAB>answer" line per card.

The API key is read from the environment or from a dotenv file (--env).`,
	Args:              cobra.ExactArgs(1),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
	RunE:              runFlashcards,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./flashcards.yaml or ~/.config/flashcards/config.yaml)")
	pf.BoolP("verbose", "v", false, "log each pipeline stage to stderr")
	pf.String("env", types.DefaultEnvFile, "dotenv file holding the API key")
	pf.StringP("output", "o", types.DefaultOutputPath, "file to write the flashcards to")
	pf.String("provider", string(types.ProviderGemini), "generation service: gemini or anthropic")
	pf.String("model", "", "model identifier (default "+types.DefaultModel+", or "+types.DefaultAnthropicModel+" for anthropic)")
	pf.Duration("timeout", types.DefaultTimeout, "upper bound for the generation call")
	pf.Int("max-retries", 0, "extra attempts when the API answers 429 or 503")
	pf.String("pattern", types.DefaultPattern, "glob a file name must match to be read as a note")
	pf.String("credential-key", "", "variable name of the API key (default "+types.DefaultCredentialKey+", or "+types.DefaultAnthropicCredentialKey+" for anthropic)")
	pf.String("base-url", "", "override the API endpoint")

	for key, flag := range map[string]string{
		"env_file":       "env",
		"output":         "output",
		"provider":       "provider",
		"model":          "model",
		"timeout":        "timeout",
		"max_retries":    "max-retries",
		"pattern":        "pattern",
		"credential_key": "credential-key",
		"base_url":       "base-url",
	} {
		if err := viper.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("flashcards")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "flashcards"))
		}
	}

	viper.SetEnvPrefix("FLASHCARDS")
	viper.AutomaticEnv()

	configFileUsed = ""
	if err := viper.ReadInConfig(); err == nil {
		configFileUsed = viper.ConfigFileUsed()
	}
}

// setupLogging attaches a zerolog logger tagged with a run id to the command
// context. Without --verbose only warnings are shown.
func setupLogging(cmd *cobra.Command, _ []string) error {
	level := zerolog.WarnLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Str("run", uuid.NewString()).
		Logger()

	if configFileUsed != "" {
		logger.Debug().Str("file", configFileUsed).Msg("using config file")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logger.WithContext(ctx))
	return nil
}

// loadRunConfig resolves flags, FLASHCARDS_* environment variables, and the
// config file into a RunConfig.
func loadRunConfig(notesDir string) types.RunConfig {
	cfg := types.RunConfig{
		AIConfig: types.AIConfig{
			Provider:   types.Provider(viper.GetString("provider")),
			Model:      viper.GetString("model"),
			BaseURL:    viper.GetString("base_url"),
			Timeout:    viper.GetDuration("timeout"),
			MaxRetries: viper.GetInt("max_retries"),
		},
		NotesDir:      notesDir,
		EnvFile:       viper.GetString("env_file"),
		CredentialKey: viper.GetString("credential_key"),
		OutputPath:    viper.GetString("output"),
		Pattern:       viper.GetString("pattern"),
	}
	return cfg.WithDefaults()
}

func runFlashcards(cmd *cobra.Command, args []string) error {
	cfg := loadRunConfig(args[0])
	if !cfg.Provider.Valid() {
		return fmt.Errorf("unknown provider %q (want %s or %s)", cfg.Provider, types.ProviderGemini, types.ProviderAnthropic)
	}
	if !doublestar.ValidatePattern(cfg.Pattern) {
		return fmt.Errorf("invalid pattern %q", cfg.Pattern)
	}

	p := &pipeline.Pipeline{}
	if err := p.Run(cmd.Context(), cfg); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Flashcards saved to %s\n", cfg.OutputPath)
	return nil
}

// execute runs the CLI and returns the process exit code. Failures are
// reported as a single "Error:" line on stderr.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
