package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks malformed or missing request input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmptySource marks a source that yielded no usable content
	// (empty PDF, crawl with nothing extractable).
	ErrEmptySource = errors.New("empty source")
	// ErrProvider marks a failed call to an external provider
	// (embedding, vector store, LLM).
	ErrProvider = errors.New("provider failure")
	// ErrTemporary marks a transient failure the caller may retry.
	ErrTemporary = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
