package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cliFixture is a notes directory, env file, and fake Gemini endpoint.
type cliFixture struct {
	notesDir string
	envFile  string
	output   string
	server   *httptest.Server
	calls    *int32
}

func newCLIFixture(t *testing.T, status int, body string) cliFixture {
	t.Helper()
	root := t.TempDir()
	notesDir := filepath.Join(root, "notes")
	require.NoError(t, os.Mkdir(notesDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(notesDir, "a.md"), []byte("Cats are mammals."), 0o644))

	envFile := filepath.Join(root, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("FLASHCARDS_TEST_KEY=abc\n"), 0o600))

	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)

	return cliFixture{
		notesDir: notesDir,
		envFile:  envFile,
		output:   filepath.Join(root, "cards.txt"),
		server:   ts,
		calls:    &calls,
	}
}

// args returns a full argument list so no flag value leaks in from an
// earlier run of the shared root command.
func (f cliFixture) args(credentialKey string) []string {
	return []string{
		f.notesDir,
		"--env", f.envFile,
		"--credential-key", credentialKey,
		"--output", f.output,
		"--provider", "gemini",
		"--base-url", f.server.URL + "/",
		"--model", "test-model",
		"--timeout", "5s",
		"--max-retries", "0",
		"--pattern", "*.md",
	}
}

func TestExecuteSuccess(t *testing.T) {
	f := newCLIFixture(t, http.StatusOK,
		`{"candidates":[{"content":{"role":"model","parts":[{"text":"What are cats?\tMammals"}]}}]}`)

	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), f.args("FLASHCARDS_TEST_KEY"), &stdout, &stderr)

	require.Equal(t, 0, code, "stderr: %s", stderr.String())
	assert.Equal(t, "Flashcards saved to "+f.output+"\n", stdout.String())

	got, err := os.ReadFile(f.output)
	require.NoError(t, err)
	assert.Equal(t, "What are cats?\tMammals", string(got))
}

func TestExecuteMissingCredential(t *testing.T) {
	f := newCLIFixture(t, http.StatusOK, `{}`)

	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), f.args("FLASHCARDS_TEST_UNSET_KEY"), &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.True(t, strings.HasPrefix(stderr.String(), "Error: credential not found"), stderr.String())
	assert.Equal(t, 1, strings.Count(stderr.String(), "\n"))
	assert.Equal(t, int32(0), atomic.LoadInt32(f.calls))
	assert.NoFileExists(t, f.output)
}

func TestExecuteServiceError(t *testing.T) {
	f := newCLIFixture(t, http.StatusInternalServerError,
		`{"error":{"code":500,"message":"internal","status":"INTERNAL"}}`)

	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), f.args("FLASHCARDS_TEST_KEY"), &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "Error: generating flashcards")
	assert.NoFileExists(t, f.output)
}

func TestExecuteRequiresNotesDir(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), []string{}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.True(t, strings.HasPrefix(stderr.String(), "Error: "), stderr.String())
}

func TestExecuteUnknownProvider(t *testing.T) {
	f := newCLIFixture(t, http.StatusOK, `{}`)
	args := append(f.args("FLASHCARDS_TEST_KEY"), "--provider", "openai")

	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), args, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), `Error: unknown provider "openai"`)
	assert.Equal(t, int32(0), atomic.LoadInt32(f.calls))
}

func TestExecuteAnthropicProvider(t *testing.T) {
	f := newCLIFixture(t, http.StatusOK, `{"content":[{"type":"text","text":"Q\tA"}]}`)
	args := append(f.args("FLASHCARDS_TEST_KEY"), "--provider", "anthropic", "--base-url", f.server.URL)

	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), args, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	got, err := os.ReadFile(f.output)
	require.NoError(t, err)
	assert.Equal(t, "Q\tA", string(got))
}

func TestVersionCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), []string{"version"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Equal(t, "flashcards dev\n", stdout.String())
}

func TestConfigCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), []string{"config", "--model", "gemini-test", "--output", "out.txt"}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "model: gemini-test")
	assert.Contains(t, stdout.String(), "output: out.txt")
}

func TestExecuteServiceErrorIsOneLine(t *testing.T) {
	f := newCLIFixture(t, http.StatusBadRequest,
		"{\n  \"type\": \"error\",\n  \"error\": {\n    \"type\": \"invalid_request_error\",\n    \"message\": \"bad request\"\n  }\n}\n")
	args := append(f.args("FLASHCARDS_TEST_KEY"), "--provider", "anthropic", "--base-url", f.server.URL)

	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), args, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.True(t, strings.HasPrefix(stderr.String(), "Error: generating flashcards"), stderr.String())
	assert.Equal(t, 1, strings.Count(stderr.String(), "\n"), stderr.String())
	assert.NoFileExists(t, f.output)
}

func TestExecuteInvalidPattern(t *testing.T) {
	f := newCLIFixture(t, http.StatusOK, `{}`)
	args := append(f.args("FLASHCARDS_TEST_KEY"), "--pattern", "[")

	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), args, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Equal(t, "Error: invalid pattern \"[\"\n", stderr.String())
	assert.NotContains(t, stderr.String(), "no note files found")
	assert.Equal(t, int32(0), atomic.LoadInt32(f.calls))
}

func TestConfigFileIsLoggedNotPrinted(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "flashcards.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("model: from-file\n"), 0o644))
	t.Cleanup(func() {
		pf := rootCmd.PersistentFlags()
		_ = pf.Set("config", "")
		_ = pf.Set("verbose", "false")
	})

	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), []string{"config", "--config", cfgFile}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Empty(t, stderr.String())

	stdout.Reset()
	code = execute(context.Background(), []string{"config", "--config", cfgFile, "--verbose"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stderr.String(), "using config file")
	assert.Contains(t, stderr.String(), cfgFile)
}
