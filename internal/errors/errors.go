// Package errors provides the error kinds produced by a chat exchange.
//
// Two recoverable kinds matter to the session: a protocol mismatch, where the
// reply arrived but lacked the expected field, and a transport failure, where
// the call itself failed (network, timeout, a body that is not JSON).
// A non-2xx status alone decides neither; the body does.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrProtocolMismatch = errors.New("protocol mismatch")
	ErrTransportFailure = errors.New("transport failure")
	ErrInvalidResponse  = errors.New("invalid response format")
	ErrEmptyMessage     = errors.New("message is empty")
)

// ProtocolMismatchError is returned when a reply is well-formed JSON but does
// not carry the expected field. StatusCode and Detail are set when the
// backend answered with a non-2xx status.
type ProtocolMismatchError struct {
	Field      string
	Endpoint   string
	StatusCode int
	Detail     string
}

func (e *ProtocolMismatchError) Error() string {
	msg := fmt.Sprintf("protocol mismatch at %s: missing %q field", e.Endpoint, e.Field)
	if e.StatusCode > 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Is allows comparison with sentinel errors
func (e *ProtocolMismatchError) Is(target error) bool {
	if target == ErrProtocolMismatch {
		return true
	}
	_, ok := target.(*ProtocolMismatchError)
	return ok
}

// NewProtocolMismatchError creates a new ProtocolMismatchError
func NewProtocolMismatchError(endpoint, field string) *ProtocolMismatchError {
	return &ProtocolMismatchError{Field: field, Endpoint: endpoint}
}

// NetworkError represents a failure to complete the HTTP exchange
type NetworkError struct {
	Operation string
	Endpoint  string
	Cause     error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s at %s: %v", e.Operation, e.Endpoint, e.Cause)
}

// Unwrap returns the underlying cause
func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// Is allows comparison with sentinel errors
func (e *NetworkError) Is(target error) bool {
	return target == ErrTransportFailure
}

// NewNetworkError creates a new NetworkError
func NewNetworkError(operation, endpoint string, cause error) *NetworkError {
	return &NetworkError{Operation: operation, Endpoint: endpoint, Cause: cause}
}

// APIError represents a non-2xx reply whose body is not a JSON document
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error [%d] at %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("API error at %s: %s", e.Endpoint, e.Message)
}

// Is allows comparison with sentinel errors
func (e *APIError) Is(target error) bool {
	return target == ErrTransportFailure
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, endpoint, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Message:    message,
	}
}

// NewAPIErrorWithBody creates an APIError that keeps the response body for diagnostics
func NewAPIErrorWithBody(statusCode int, endpoint, message, body string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Message:    message,
		Body:       body,
	}
}

// TimeoutError represents a request timeout
type TimeoutError struct {
	Message string
}

func (e *TimeoutError) Error() string {
	if e.Message == "" {
		return "request timed out"
	}
	return fmt.Sprintf("request timed out: %s", e.Message)
}

// Is allows comparison with sentinel errors
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTransportFailure
}

// NewTimeoutError creates a new TimeoutError
func NewTimeoutError(message string) *TimeoutError {
	return &TimeoutError{Message: message}
}

// ParseError represents a reply body that is not valid JSON
type ParseError struct {
	Message string
	Path    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s", e.Message)
}

// NewParseError creates a new ParseError
func NewParseError(message, path string) *ParseError {
	return &ParseError{Message: message, Path: path}
}

// Is allows comparison with sentinel errors.
// A body that cannot be decoded counts as a transport failure.
func (e *ParseError) Is(target error) bool {
	if target == ErrInvalidResponse || target == ErrTransportFailure {
		return true
	}
	_, ok := target.(*ParseError)
	return ok
}

// IsProtocolMismatch reports whether err is a missing-field reply
func IsProtocolMismatch(err error) bool {
	return errors.Is(err, ErrProtocolMismatch)
}

// IsTransportFailure reports whether err means the exchange itself failed
func IsTransportFailure(err error) bool {
	return errors.Is(err, ErrTransportFailure)
}

// IsNetworkError reports whether err wraps a NetworkError
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// IsTimeoutError reports whether err wraps a TimeoutError
func IsTimeoutError(err error) bool {
	var timeoutErr *TimeoutError
	return errors.As(err, &timeoutErr)
}

// GetHTTPStatus extracts the HTTP status from an APIError or a
// ProtocolMismatchError, or 0
func GetHTTPStatus(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	var pmErr *ProtocolMismatchError
	if errors.As(err, &pmErr) {
		return pmErr.StatusCode
	}
	return 0
}

// GetEndpoint extracts the endpoint from structured errors, or ""
func GetEndpoint(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Endpoint
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr.Endpoint
	}
	var pmErr *ProtocolMismatchError
	if errors.As(err, &pmErr) {
		return pmErr.Endpoint
	}
	return ""
}

// GetResponseBody extracts the response body kept on an APIError, or ""
func GetResponseBody(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Body
	}
	return ""
}
