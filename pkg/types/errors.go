package types

import (
	"errors"
	"fmt"
)

// Failure kinds. Every error returned by a pipeline stage matches exactly one
// of these with errors.Is.
var (
	ErrMissingCredential = errors.New("credential not found")
	ErrInvalidDirectory  = errors.New("invalid notes directory")
	ErrNoMatchingFiles   = errors.New("no note files found")
	ErrFileRead          = errors.New("reading note file")
	ErrGeneration        = errors.New("generating flashcards")
	ErrOutputWrite       = errors.New("writing flashcards")
)

// Error is a stage failure. Kind is one of the Err* sentinels above, Path is
// the offending file or directory when there is one, and Err is the cause.
type Error struct {
	Kind error
	Path string
	Err  error
}

// NewError builds an *Error. path and cause may be empty/nil.
func NewError(kind error, path string, cause error) *Error {
	return &Error{Kind: kind, Path: path, Err: cause}
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Path != "" {
		msg = fmt.Sprintf("%s %s", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
