//go:build mage

// Package main contains Mage build targets for flashcards developer tooling.
package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir   = "bin"
	binName  = "flashcards"
	cmdPkg   = "./cmd/flashcards"
	notesDir = "notes"
	envFile  = ".env"
)

// sampleNote seeds the notes directory so a fresh checkout has something to run on.
const sampleNote = `# Mammals

- Cats are mammals.
- Dogs are mammals too.
- Mammals are warm-blooded vertebrates that nurse their young.
`

// Init creates a notes directory with a sample note and an .env template.
// Existing files are left alone.
func Init() error {
	if err := os.MkdirAll(notesDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", notesDir, err)
	}
	if err := writeIfMissing(filepath.Join(notesDir, "mammals.md"), sampleNote, 0o644); err != nil {
		return err
	}
	if err := writeIfMissing(envFile, "GOOGLE_API_KEY=\n", 0o600); err != nil {
		return err
	}
	fmt.Printf("Put your API key in %s, then run: mage run\n", envFile)
	return nil
}

func writeIfMissing(path, content string, perm os.FileMode) error {
	if _, err := os.Stat(path); err == nil {
		fmt.Println("  exists ", path)
		return nil
	}
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Println("  created", path)
	return nil
}

// Generate regenerates mocks.
func Generate() error {
	return sh.RunV("go", "generate", "./...")
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Run builds the CLI and converts the notes directory into flashcards.txt.
func Run() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), notesDir, "--env", envFile)
}

// Stats prints Go production and test line counts.
func Stats() error {
	prodLines, err := countGoLines(".", false)
	if err != nil {
		return err
	}
	testLines, err := countGoLines(".", true)
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	return nil
}

// countGoLines counts non-blank lines in the Go files under root. With
// testOnly it counts _test.go files, otherwise everything else.
func countGoLines(root string, testOnly bool) (int, error) {
	total := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "_examples" || d.Name() == binDir {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" || strings.HasSuffix(path, "_test.go") != testOnly {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		total += nonBlankLines(data)
		return nil
	})
	return total, err
}

func nonBlankLines(data []byte) int {
	n := 0
	for _, line := range bytes.Split(data, []byte("\n")) {
		if len(bytes.TrimSpace(line)) > 0 {
			n++
		}
	}
	return n
}
