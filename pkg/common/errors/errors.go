package errors

import (
	"errors"
	"fmt"
)

// Common error types used across the goasync library

var (
	// ErrShutdown indicates that work was submitted to a scheduler that has
	// been shut down
	ErrShutdown = errors.New("scheduler is shut down")

	// ErrInvalidConfiguration indicates invalid configuration parameters
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// IsShutdown returns true if the error indicates the scheduler rejected
// work because it is shutting down
func IsShutdown(err error) bool {
	return errors.Is(err, ErrShutdown)
}

// ValidationError describes an invalid configuration parameter.
type ValidationError struct {
	// Module is the component reporting the error (e.g. "scheduler")
	Module string

	// Field is the parameter name
	Field string

	// Value is the rejected value
	Value interface{}

	// Reason explains why the value was rejected
	Reason string

	// Hint optionally suggests a fix
	Hint string
}

// NewValidationError creates a ValidationError for the given parameter.
func NewValidationError(module, field string, value interface{}, reason string) *ValidationError {
	return &ValidationError{
		Module: module,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// WithHint attaches a suggestion and returns the same error for chaining.
func (e *ValidationError) WithHint(hint string) *ValidationError {
	e.Hint = hint
	return e
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: invalid %s=%v (%s)", e.Module, e.Field, e.Value, e.Reason)
	if e.Hint != "" {
		msg += " - " + e.Hint
	}
	return msg
}

// Unwrap allows errors.Is checks against ErrInvalidConfiguration.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// IsValidationError returns true if err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
