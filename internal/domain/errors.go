package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoBatches reports a language with no associated source batches.
	ErrNoBatches = errors.New("no data for language")
	// ErrFetch reports a batch that could not be fetched or parsed into a table.
	ErrFetch = errors.New("fetch or parse error")
)

// LoadError is returned when a language selection cannot produce a collection.
type LoadError struct {
	Language string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %q: %v", e.Language, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewFetchError wraps cause so that errors.Is(err, ErrFetch) holds.
func NewFetchError(language string, cause error) *LoadError {
	return &LoadError{Language: language, Err: fmt.Errorf("%w: %w", ErrFetch, cause)}
}
