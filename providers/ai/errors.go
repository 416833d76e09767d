package ai

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingAPIKey is returned before any network call when no credential is configured.
var ErrMissingAPIKey = errors.New("API key is not set")

// APICallError describes a failed call to a provider endpoint. It carries the
// raw response body so callers can inspect vendor-specific details.
type APICallError struct {
	URL          string
	StatusCode   int
	Message      string
	Code         string // Vendor error code, if any
	RequestID    string // Vendor request identifier, if any
	ResponseBody string
	Headers      http.Header
	Retryable    bool
	Cause        error
}

func (e *APICallError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("API call to %s failed with status %d (%s): %s", e.URL, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("API call to %s failed with status %d: %s", e.URL, e.StatusCode, e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// IsRetryableStatus reports whether an HTTP status usually indicates a transient failure.
func IsRetryableStatus(statusCode int) bool {
	switch {
	case statusCode == http.StatusRequestTimeout,
		statusCode == http.StatusConflict,
		statusCode == http.StatusTooManyRequests:
		return true
	case statusCode >= 500:
		return true
	}
	return false
}

// IsRetryable reports whether err is an APICallError marked retryable.
func IsRetryable(err error) bool {
	var apiErr *APICallError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable
	}
	return false
}

// UnsupportedFunctionalityError is returned when a request uses a feature the
// provider cannot express on the wire.
type UnsupportedFunctionalityError struct {
	Functionality string
}

func (e *UnsupportedFunctionalityError) Error() string {
	return fmt.Sprintf("unsupported functionality: %s", e.Functionality)
}

// InvalidResponseError is returned when a provider response decodes but does
// not have the expected structure.
type InvalidResponseError struct {
	Reason string
	Body   string
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid response: %s", e.Reason)
}

// InvalidArgumentError is returned when a request field fails validation
// before anything is sent.
type InvalidArgumentError struct {
	Argument string
	Message  string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Argument, e.Message)
}
