package task

import (
	"context"
	"errors"
	"fmt"
)

// ErrCanceled is the distinguished cancellation signal. Waiting on a
// canceled task returns an error matching it via errors.Is, so callers can
// branch on "canceled" vs "genuinely failed".
var ErrCanceled = errors.New("task canceled")

// canceled normalizes a cancellation cause into the recorded error.
func canceled(cause error) error {
	if cause == nil || errors.Is(cause, ErrCanceled) {
		if cause != nil {
			return cause
		}
		return ErrCanceled
	}
	return fmt.Errorf("%w: %v", ErrCanceled, cause)
}

// IsCancellation reports whether err represents a cancellation signal,
// either this package's ErrCanceled or a context cancellation.
func IsCancellation(err error) bool {
	return errors.Is(err, ErrCanceled) || errors.Is(err, context.Canceled)
}

// AggregateError wraps one or more underlying faults while preserving their
// order. It unwraps to all of them, so errors.Is and errors.As traverse
// every captured fault.
type AggregateError struct {
	Errs []error
}

func (e *AggregateError) Error() string {
	switch len(e.Errs) {
	case 0:
		return "no errors"
	case 1:
		return e.Errs[0].Error()
	default:
		return fmt.Sprintf("%v (and %d more)", e.Errs[0], len(e.Errs)-1)
	}
}

// Unwrap returns the underlying faults in order.
func (e *AggregateError) Unwrap() []error { return e.Errs }
