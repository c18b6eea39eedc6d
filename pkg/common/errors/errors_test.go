package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestCommonErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ErrShutdown", ErrShutdown, "scheduler is shut down"},
		{"ErrInvalidConfiguration", ErrInvalidConfiguration, "invalid configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatal("error should not be nil")
			}
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsShutdown(t *testing.T) {
	if !IsShutdown(ErrShutdown) {
		t.Error("IsShutdown(ErrShutdown) = false, want true")
	}
	if !IsShutdown(fmt.Errorf("submit: %w", ErrShutdown)) {
		t.Error("IsShutdown should see through wrapping")
	}
	if IsShutdown(errors.New("other")) {
		t.Error("IsShutdown(other) = true, want false")
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "without hint",
			err: &ValidationError{
				Module: "scheduler",
				Field:  "maxConcurrency",
				Value:  -1,
				Reason: "cannot be negative",
			},
			want: "scheduler: invalid maxConcurrency=-1 (cannot be negative)",
		},
		{
			name: "with hint",
			err: &ValidationError{
				Module: "scheduler",
				Field:  "maxConcurrency",
				Value:  -1,
				Reason: "cannot be negative",
				Hint:   "use 0 for unlimited concurrency",
			},
			want: "scheduler: invalid maxConcurrency=-1 (cannot be negative) - use 0 for unlimited concurrency",
		},
		{
			name: "string value",
			err: &ValidationError{
				Module: "scheduler",
				Field:  "cron",
				Value:  "",
				Reason: "cannot be empty",
			},
			want: "scheduler: invalid cron= (cannot be empty)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Unwrap(t *testing.T) {
	verr := &ValidationError{
		Module: "test",
		Field:  "field",
		Value:  0,
		Reason: "test",
	}

	if verr.Unwrap() != ErrInvalidConfiguration {
		t.Errorf("Unwrap() = %v, want ErrInvalidConfiguration", verr.Unwrap())
	}

	if !errors.Is(verr, ErrInvalidConfiguration) {
		t.Error("ValidationError should wrap ErrInvalidConfiguration")
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("module", "field", 123, "test reason")

	if err.Module != "module" {
		t.Errorf("Module = %q, want %q", err.Module, "module")
	}
	if err.Field != "field" {
		t.Errorf("Field = %q, want %q", err.Field, "field")
	}
	if err.Value != 123 {
		t.Errorf("Value = %v, want %v", err.Value, 123)
	}
	if err.Reason != "test reason" {
		t.Errorf("Reason = %q, want %q", err.Reason, "test reason")
	}
	if err.Hint != "" {
		t.Errorf("Hint = %q, want empty string", err.Hint)
	}
}

func TestValidationError_WithHint(t *testing.T) {
	err := NewValidationError("test", "field", 0, "invalid").
		WithHint("try using a positive value")

	if err.Hint != "try using a positive value" {
		t.Errorf("Hint = %q, want %q", err.Hint, "try using a positive value")
	}

	// Should return same instance for chaining
	result := err.WithHint("new hint")
	if result != err {
		t.Error("WithHint should return the same instance")
	}
}

func TestIsValidationError(t *testing.T) {
	verr := NewValidationError("scheduler", "cron", "bad", "unparsable")

	if !IsValidationError(verr) {
		t.Error("IsValidationError(verr) = false, want true")
	}
	if !IsValidationError(fmt.Errorf("schedule: %w", verr)) {
		t.Error("IsValidationError should see through wrapping")
	}
	if IsValidationError(errors.New("plain")) {
		t.Error("IsValidationError(plain) = true, want false")
	}
}
