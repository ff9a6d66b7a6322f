package providers

import (
	"errors"
	"fmt"
)

// ErrorCategory defines the normalized failure taxonomy for provider errors.
//
// All provider implementations classify failures with these categories so the
// verification service can turn them into consistent failure results
// regardless of the underlying platform API.
type ErrorCategory string

const (
	// ErrorTimeout indicates the platform API took too long to respond
	ErrorTimeout ErrorCategory = "timeout"

	// ErrorBadData indicates the platform returned invalid/malformed data
	ErrorBadData ErrorCategory = "bad_data"

	// ErrorAuthentication indicates credential or permission issues
	ErrorAuthentication ErrorCategory = "authentication"

	// ErrorOutage indicates the platform API is unavailable
	ErrorOutage ErrorCategory = "outage"

	// ErrorNotFound indicates the requested account doesn't exist
	ErrorNotFound ErrorCategory = "not_found"

	// ErrorRateLimited indicates the platform API throttled us
	ErrorRateLimited ErrorCategory = "rate_limited"

	// ErrorMissingConfig indicates a required API credential is not configured
	ErrorMissingConfig ErrorCategory = "missing_config"

	// ErrorNotSupported indicates the platform has no live verifier yet
	ErrorNotSupported ErrorCategory = "not_supported"

	// ErrorInternal indicates an unexpected internal error
	ErrorInternal ErrorCategory = "internal"
)

// ProviderError wraps platform API failures with normalized categorization.
//
// The Message is written for end users: it becomes the error field of the
// unverified result, so it must describe what to fix (wrong handle, missing
// token) rather than transport internals.
type ProviderError struct {
	Category   ErrorCategory
	Platform   string
	Message    string
	Underlying error
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("provider %s [%s]: %s: %v", e.Platform, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("provider %s [%s]: %s", e.Platform, e.Category, e.Message)
}

// Unwrap supports error unwrapping
func (e *ProviderError) Unwrap() error {
	return e.Underlying
}

// NewProviderError creates a normalized provider error.
func NewProviderError(category ErrorCategory, platform, message string, underlying error) *ProviderError {
	return &ProviderError{
		Category:   category,
		Platform:   platform,
		Message:    message,
		Underlying: underlying,
	}
}

// Reason extracts the user-facing failure reason from an error. Falls back
// to a generic message so raw transport errors never leak into results.
func Reason(err error) string {
	var pe *ProviderError
	if errors.As(err, &pe) && pe.Message != "" {
		return pe.Message
	}
	return "verification failed"
}

// GetCategory extracts the error category from an error
func GetCategory(err error) ErrorCategory {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Category
	}
	return ErrorInternal
}
