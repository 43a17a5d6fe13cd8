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
	ErrMalformed     = errors.New("malformed input")
)

// Per-word skip reasons. They never abort a run; the generator counts them.
var (
	ErrNoAnchorSense     = errors.New("no anchor sense")
	ErrBelowMinimum      = errors.New("below minimum candidates")
	ErrCorruptionSkipped = errors.New("corruption precondition unmet")
)

// IsSkip reports whether err is a per-word skip rather than a failure.
func IsSkip(err error) bool {
	return errors.Is(err, ErrNoAnchorSense) ||
		errors.Is(err, ErrBelowMinimum) ||
		errors.Is(err, ErrCorruptionSkipped)
}

// LineError points at a malformed line of an input file.
type LineError struct {
	Path string
	Line int
	Msg  string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
}

func (e *LineError) Unwrap() error { return ErrMalformed }

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
	return fmt.Sprintf("validation: %d errors (first: %s: %s)", len(e.Errors), e.Errors[0].Field, e.Errors[0].Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
