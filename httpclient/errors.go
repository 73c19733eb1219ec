package httpclient

import (
	"errors"
	"fmt"
)

// ClientError represents the different failure classes of a fetch
type ClientError interface {
	error
	Type() ErrorType
}

// ErrorType defines the category of client error
type ErrorType string

const (
	// InvalidURLError marks a malformed request descriptor. Never retried.
	InvalidURLError ErrorType = "invalid_url"
	// NetworkError marks a transport-level failure where no HTTP response
	// was obtained. Retried by the default predicate.
	NetworkError ErrorType = "network"
	// HTTPStatusError marks a non-2xx response. Retried only for 5xx by default.
	HTTPStatusError ErrorType = "http_status"
	// DecodingError marks a response body that did not match the expected
	// shape. Deterministic given the same bytes, so never retried.
	DecodingError ErrorType = "decoding"
	// UnknownError is the catch-all for unclassified failures. Retried by
	// the default predicate: unknown faults may be transient.
	UnknownError ErrorType = "unknown"
)

// invalidURLError represents a descriptor that cannot become a wire request
type invalidURLError struct {
	rawURL  string
	message string
	wrapped error
}

func (e *invalidURLError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("invalid URL %q: %s: %v", e.rawURL, e.message, e.wrapped)
	}
	return fmt.Sprintf("invalid URL %q: %s", e.rawURL, e.message)
}

func (e *invalidURLError) Type() ErrorType {
	return InvalidURLError
}

func (e *invalidURLError) Unwrap() error {
	return e.wrapped
}

// networkError represents connectivity failures
type networkError struct {
	message string
	wrapped error
}

func (e *networkError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("network error: %s: %v", e.message, e.wrapped)
	}
	return fmt.Sprintf("network error: %s", e.message)
}

func (e *networkError) Type() ErrorType {
	return NetworkError
}

func (e *networkError) Unwrap() error {
	return e.wrapped
}

// httpStatusError represents a response outside the 2xx range
type httpStatusError struct {
	statusCode  int
	description string
	body        []byte
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("HTTP status error: %d %s", e.statusCode, e.description)
}

func (e *httpStatusError) Type() ErrorType {
	return HTTPStatusError
}

// StatusCode returns the HTTP status code of the failed response.
func (e *httpStatusError) StatusCode() int {
	return e.statusCode
}

// Body returns the raw response body of the failed response.
func (e *httpStatusError) Body() []byte {
	return e.body
}

// decodingError represents a body that could not be decoded
type decodingError struct {
	wrapped error
}

func (e *decodingError) Error() string {
	return fmt.Sprintf("decoding error: %v", e.wrapped)
}

func (e *decodingError) Type() ErrorType {
	return DecodingError
}

func (e *decodingError) Unwrap() error {
	return e.wrapped
}

// unknownError represents failures that fit no other category
type unknownError struct {
	message string
	wrapped error
}

func (e *unknownError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("unknown error: %s: %v", e.message, e.wrapped)
	}
	return fmt.Sprintf("unknown error: %s", e.message)
}

func (e *unknownError) Type() ErrorType {
	return UnknownError
}

func (e *unknownError) Unwrap() error {
	return e.wrapped
}

// NewInvalidURLError creates a new invalid URL error
func NewInvalidURLError(rawURL, message string, wrapped error) ClientError {
	return &invalidURLError{
		rawURL:  rawURL,
		message: message,
		wrapped: wrapped,
	}
}

// NewNetworkError creates a new network error
func NewNetworkError(message string, wrapped error) ClientError {
	return &networkError{
		message: message,
		wrapped: wrapped,
	}
}

// NewHTTPStatusError creates a new HTTP status error
func NewHTTPStatusError(statusCode int, description string, body []byte) ClientError {
	return &httpStatusError{
		statusCode:  statusCode,
		description: description,
		body:        body,
	}
}

// NewDecodingError creates a new decoding error
func NewDecodingError(wrapped error) ClientError {
	return &decodingError{wrapped: wrapped}
}

// NewUnknownError creates a new unknown error
func NewUnknownError(message string, wrapped error) ClientError {
	return &unknownError{
		message: message,
		wrapped: wrapped,
	}
}

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errorType ErrorType) bool {
	if err == nil {
		return false
	}
	var clientErr ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type() == errorType
	}
	return false
}

// IsHTTPStatusError checks if an error is an HTTP status error with a specific code
func IsHTTPStatusError(err error, statusCode int) bool {
	var statusErr *httpStatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode() == statusCode
	}
	return false
}

// StatusCode extracts the HTTP status code from an error, if it carries one.
func StatusCode(err error) (int, bool) {
	var statusErr *httpStatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode(), true
	}
	return 0, false
}

// IsRetryable is the default retry predicate: network failures and 5xx
// responses are retryable, as is anything unclassified; malformed URLs,
// decode failures, and other HTTP statuses are terminal.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var clientErr ClientError
	if !errors.As(err, &clientErr) {
		// Not produced by this package; treat as unknown and retryable.
		return true
	}
	switch clientErr.Type() {
	case NetworkError, UnknownError:
		return true
	case HTTPStatusError:
		code, _ := StatusCode(clientErr)
		return code >= 500 && code < 600
	default:
		return false
	}
}

// IsSuccessStatus checks if a status code represents success (2xx)
func IsSuccessStatus(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
