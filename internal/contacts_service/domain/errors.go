package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates that a requested contact was not found.
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidInput is matched by every ValidationError through errors.Is.
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError reports why a raw field was rejected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func newValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
