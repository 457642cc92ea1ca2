package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrConflict      = errors.New("conflict")
)

// Sleep lifecycle errors. ErrConflict is reserved for lost commit-time races;
// these describe deterministic precondition failures and are never retried.
var (
	ErrSessionAlreadyOpen = errors.New("sleep session already open")
	ErrNoOpenSession      = errors.New("no open sleep session")
	ErrSleepOverlap       = errors.New("sleep interval overlaps an existing session")

	// ErrInvalidDuration wraps ErrValidation: a duration outside the hard
	// bounds is rejected unconditionally, confirmed or not.
	ErrInvalidDuration = fmt.Errorf("sleep duration out of range: %w", ErrValidation)
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}
