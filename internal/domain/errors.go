package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when a word identifier is empty or malformed.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidQuality is returned when an answer quality is not one of
	// wrong, hard, good or easy.
	ErrInvalidQuality = errors.New("invalid answer quality")

	// ErrIndexOutOfRange is returned when an interval index does not address
	// an entry of the interval table. It indicates a programmer or data error
	// and is never retried.
	ErrIndexOutOfRange = errors.New("interval index out of range")
)

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped sentinel so errors.Is works against ErrValidation
// and friends.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError for the given field.
// If err is nil, ErrValidation is wrapped.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Field: field, Message: message, Err: err}
}
