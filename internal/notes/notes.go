// Package notes discovers note files in a directory and concatenates their
// contents into the single text blob sent for flashcard generation.
package notes

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/pdiddy/flashcards/pkg/types"
)

// Separator is placed between the contents of consecutive notes.
const Separator = "\n"

// NoteSet is the sorted list of note file paths found by Collect.
type NoteSet []string

// Collect returns the files directly inside dir whose base name matches
// pattern (e.g. "*.md"). Subdirectories are not searched. Paths are sorted
// so the aggregation order does not depend on directory listing order.
func Collect(dir, pattern string) (NoteSet, error) {
	if pattern == "" {
		pattern = types.DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, types.NewError(types.ErrNoMatchingFiles, dir, fmt.Errorf("invalid pattern %q", pattern))
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, types.NewError(types.ErrInvalidDirectory, dir, err)
	}
	if !info.IsDir() {
		return nil, types.NewError(types.ErrInvalidDirectory, dir, errors.New("not a directory"))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, types.NewError(types.ErrInvalidDirectory, dir, err)
	}

	var set NoteSet
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ok, err := doublestar.Match(pattern, entry.Name())
		if err != nil {
			return nil, types.NewError(types.ErrNoMatchingFiles, dir, err)
		}
		if ok {
			set = append(set, filepath.Join(dir, entry.Name()))
		}
	}

	if len(set) == 0 {
		return nil, types.NewError(types.ErrNoMatchingFiles, dir, fmt.Errorf("no files match %q", pattern))
	}

	sort.Strings(set)
	return set, nil
}

// Aggregate reads every file in set, in order, and joins their contents with
// Separator. Contents are kept byte for byte and must be valid UTF-8. The
// first unreadable file aborts the whole aggregation.
func Aggregate(set NoteSet) (string, error) {
	contents := make([]string, 0, len(set))
	for _, path := range set {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", types.NewError(types.ErrFileRead, path, err)
		}
		if !utf8.Valid(data) {
			return "", types.NewError(types.ErrFileRead, path, errors.New("not valid UTF-8"))
		}
		contents = append(contents, string(data))
	}
	return strings.Join(contents, Separator), nil
}
