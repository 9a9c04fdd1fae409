package generate

import (
	"errors"
	"fmt"
)

// Common generation errors
var (
	// ErrGenerationFailed is returned when the remote drafting call fails
	// (network, quota, or a rejected request).
	ErrGenerationFailed = errors.New("invoice generation failed")

	// ErrEmptyResponse is returned when the model replies with no text.
	ErrEmptyResponse = errors.New("empty response from model")

	// ErrMissingAPIKey is returned when no API key is configured.
	ErrMissingAPIKey = errors.New("missing OpenAI API key")
)

// GenerationError wraps remote drafting failures with the operation that
// produced them. Every failure crossing the gateway boundary is one of
// these; callers surface it as a single user-visible message and never
// retry automatically.
type GenerationError struct {
	// Op is the operation that failed (e.g., "Generate").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("generate: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("generate: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Is matches both the wrapped error and the ErrGenerationFailed sentinel,
// so callers can treat any gateway failure uniformly.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed || errors.Is(e.Err, target)
}

// NewGenerationError creates a GenerationError for op around err.
func NewGenerationError(op string, err error, details string) *GenerationError {
	return &GenerationError{Op: op, Err: err, Details: details}
}
