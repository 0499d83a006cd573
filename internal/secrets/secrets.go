// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves the generation API key from the process
// environment or a dotenv-style file.
//
// The file is parsed into a map and never loaded into the process
// environment, so nothing outside the caller holds the secret.
package secrets

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"

	"github.com/pdiddy/flashcards/pkg/types"
)

// LookupFunc reports the value of an environment variable. os.LookupEnv
// satisfies it.
type LookupFunc func(key string) (string, bool)

// Load returns the non-empty value stored under key.
//
// A value from lookup takes precedence over one from envFile, matching
// dotenv's rule of never overriding variables that are already set. A
// missing envFile is not an error; an unreadable or malformed one is.
// lookup may be nil, in which case only envFile is consulted.
func Load(envFile, key string, lookup LookupFunc) (string, error) {
	if key == "" {
		return "", types.NewError(types.ErrMissingCredential, "", errors.New("no credential key configured"))
	}

	if lookup != nil {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), nil
		}
	}

	values, err := readEnvFile(envFile)
	if err != nil {
		return "", types.NewError(types.ErrMissingCredential, envFile, err)
	}

	value := strings.TrimSpace(values[key])
	if value == "" {
		source := "the environment"
		if envFile != "" {
			source = fmt.Sprintf("the environment or %s", envFile)
		}
		return "", types.NewError(types.ErrMissingCredential, "", fmt.Errorf("%s is not set in %s", key, source))
	}
	return value, nil
}

// readEnvFile parses path. An empty path or a file that does not exist
// yields an empty map.
func readEnvFile(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading env file: %w", err)
	}
	return values, nil
}
