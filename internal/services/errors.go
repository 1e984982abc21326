package services

import (
	"errors"
	"fmt"
)

// Sentinel errors mapped to HTTP responses by the handler layer.
// ErrWebhookNotFound is deliberately opaque: unknown, expired, and orphaned
// tokens all produce the same value so callers cannot enumerate tokens.
var (
	ErrWebhookNotFound     = errors.New("invalid or expired webhook")
	ErrCredentialsNotFound = errors.New("api credentials not found")
)

// ValidationError represents a malformed or unprocessable alert
type ValidationError struct {
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a new validation error
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
