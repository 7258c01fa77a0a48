package llm

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// defaultRetryAfter is used for rate limit errors when the provider does not
// report a retry-after duration.
const defaultRetryAfter = 60 * time.Second

// Error represents a provider-neutral LLM error.
type Error struct {
	Type       ErrorType
	Message    string
	StatusCode int    // For HTTP errors
	Body       string // Response body captured for diagnostics
	Retryable  bool
	RetryAfter *time.Duration
	Cause      error // Original underlying error
}

// ErrorType represents the category of error.
type ErrorType string

const (
	ErrorTypeUnsupportedProvider ErrorType = "unsupported_provider"
	ErrorTypeHTTP                ErrorType = "http"
	ErrorTypeNetwork             ErrorType = "network"
	ErrorTypeStreamUnavailable   ErrorType = "stream_unavailable"
	ErrorTypeNotInitialized      ErrorType = "not_initialized"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewUnsupportedProviderError creates an error for an unrecognized provider
// value. The offending value is embedded verbatim in the message.
func NewUnsupportedProviderError(provider string) *Error {
	return &Error{
		Type:    ErrorTypeUnsupportedProvider,
		Message: fmt.Sprintf("Unsupported LLM provider: %s", provider),
	}
}

// NewHTTPError creates an error for a non-success HTTP response.
// Rate limit (429) and server-side (5xx) responses are marked retryable so a
// calling layer can apply its own retry policy; this layer never retries.
func NewHTTPError(provider string, statusCode int, body string) *Error {
	e := &Error{
		Type:       ErrorTypeHTTP,
		Message:    fmt.Sprintf("%s API error: %d", provider, statusCode),
		StatusCode: statusCode,
		Body:       body,
	}
	switch {
	case statusCode == http.StatusTooManyRequests:
		retryAfter := defaultRetryAfter
		e.Retryable = true
		e.RetryAfter = &retryAfter
	case statusCode >= http.StatusInternalServerError:
		e.Retryable = true
	}
	return e
}

// NewNetworkError creates an error for a transport-level failure.
func NewNetworkError(message string, cause error) *Error {
	return &Error{
		Type:      ErrorTypeNetwork,
		Message:   message,
		Retryable: true,
		Cause:     cause,
	}
}

// NewStreamUnavailableError creates an error for a streaming response that
// carries no readable body.
func NewStreamUnavailableError(provider string) *Error {
	return &Error{
		Type:    ErrorTypeStreamUnavailable,
		Message: fmt.Sprintf("%s API returned a response with no readable body", provider),
	}
}

// NewNotInitializedError creates an error for registry misuse: requesting the
// process-wide client before it has been initialized.
func NewNotInitializedError() *Error {
	return &Error{
		Type:    ErrorTypeNotInitialized,
		Message: "LLM service not initialized. Call InitializeLLMService() first.",
	}
}

// IsUnsupportedProviderError checks if an error is an unsupported provider error.
func IsUnsupportedProviderError(err error) bool {
	return isErrorType(err, ErrorTypeUnsupportedProvider)
}

// IsHTTPError checks if an error is a non-success HTTP response error.
func IsHTTPError(err error) bool {
	return isErrorType(err, ErrorTypeHTTP)
}

// IsNetworkError checks if an error is a transport failure.
func IsNetworkError(err error) bool {
	return isErrorType(err, ErrorTypeNetwork)
}

// IsNotInitializedError checks if an error is a registry misuse error.
func IsNotInitializedError(err error) bool {
	return isErrorType(err, ErrorTypeNotInitialized)
}

// IsRetryableError checks if an error is retryable by a calling layer.
func IsRetryableError(err error) bool {
	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr.Retryable
	}
	return false
}

// HTTPStatus extracts the status code from an HTTP error.
// Returns 0 and false for any other error.
func HTTPStatus(err error) (int, bool) {
	var llmErr *Error
	if errors.As(err, &llmErr) && llmErr.Type == ErrorTypeHTTP {
		return llmErr.StatusCode, true
	}
	return 0, false
}

// ExtractRetryAfter extracts the retry-after duration from an error.
func ExtractRetryAfter(err error) *time.Duration {
	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr.RetryAfter
	}
	return nil
}

func isErrorType(err error, t ErrorType) bool {
	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr.Type == t
	}
	return false
}
