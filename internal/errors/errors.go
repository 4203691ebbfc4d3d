// Package errors provides the failure types of the storefront chat client and
// the classification that turns any failure into display text.
package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
)

// Sentinel errors for common cases
var (
	ErrInvalidResponse = errors.New("invalid response format")
	ErrClientClosed    = errors.New("client is closed")
	ErrEmptyQuestion   = errors.New("question cannot be empty")
)

// UnknownErrorText is shown when a failure cannot be described at all.
const UnknownErrorText = "Unknown error"

// StatusError represents a response whose status is outside 2xx.
// The body is kept for diagnostics only; it never changes the message.
type StatusError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// NewStatusError creates a new StatusError
func NewStatusError(statusCode int, endpoint string) *StatusError {
	return &StatusError{StatusCode: statusCode, Endpoint: endpoint}
}

// NewStatusErrorWithBody creates a StatusError carrying the response body
func NewStatusErrorWithBody(statusCode int, endpoint, body string) *StatusError {
	return &StatusError{StatusCode: statusCode, Endpoint: endpoint, Body: body}
}

// NetworkError represents a request that never produced a response.
// Its message is the message of the underlying transport failure.
type NetworkError struct {
	Operation string
	Endpoint  string
	Err       error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Operation != "" {
		return fmt.Sprintf("network error during %s", e.Operation)
	}
	return "network error"
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a new NetworkError
func NewNetworkError(operation string, err error) *NetworkError {
	return &NetworkError{Operation: operation, Err: err}
}

// NewNetworkErrorWithEndpoint creates a NetworkError that records the endpoint
func NewNetworkErrorWithEndpoint(operation, endpoint string, err error) *NetworkError {
	return &NetworkError{Operation: operation, Endpoint: endpoint, Err: err}
}

// TimeoutError represents a request that exceeded its deadline
type TimeoutError struct {
	Endpoint string
	Err      error
}

func (e *TimeoutError) Error() string {
	if e.Endpoint == "" {
		return "request timed out"
	}
	return fmt.Sprintf("request to %s timed out", e.Endpoint)
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// NewTimeoutErrorWithEndpoint creates a new TimeoutError
func NewTimeoutErrorWithEndpoint(endpoint string, err error) *TimeoutError {
	return &TimeoutError{Endpoint: endpoint, Err: err}
}

// ParseError represents a response body that could not be decoded
type ParseError struct {
	Message  string
	Endpoint string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s", e.Message)
}

// Is allows comparison with sentinel errors
func (e *ParseError) Is(target error) bool {
	if target == ErrInvalidResponse {
		return true
	}
	_, ok := target.(*ParseError)
	return ok
}

// NewParseError creates a new ParseError
func NewParseError(message, endpoint string) *ParseError {
	return &ParseError{Message: message, Endpoint: endpoint}
}

// FromTransport classifies an error returned by the HTTP transport.
// Deadline expiry becomes a TimeoutError, everything else a NetworkError.
func FromTransport(operation, endpoint string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewTimeoutErrorWithEndpoint(endpoint, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NewTimeoutErrorWithEndpoint(endpoint, err)
	}
	return NewNetworkErrorWithEndpoint(operation, endpoint, err)
}

// Describe maps any failure value to the text shown to the user.
// Status errors render as "HTTP <code>", errors as their message, strings
// verbatim, and anything else as its JSON form.
func Describe(v any) string {
	switch e := v.(type) {
	case nil:
		return UnknownErrorText
	case error:
		var status *StatusError
		if errors.As(e, &status) {
			return status.Error()
		}
		return e.Error()
	case string:
		return e
	}

	data, err := json.Marshal(v)
	if err != nil {
		return UnknownErrorText
	}
	return string(data)
}

// GetHTTPStatus returns the status code carried by err, or 0
func GetHTTPStatus(err error) int {
	var status *StatusError
	if errors.As(err, &status) {
		return status.StatusCode
	}
	return 0
}

// GetEndpoint returns the endpoint recorded by err, if any
func GetEndpoint(err error) string {
	var status *StatusError
	if errors.As(err, &status) {
		return status.Endpoint
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr.Endpoint
	}
	var timeout *TimeoutError
	if errors.As(err, &timeout) {
		return timeout.Endpoint
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Endpoint
	}
	return ""
}

// GetResponseBody returns the response body kept by a StatusError
func GetResponseBody(err error) string {
	var status *StatusError
	if errors.As(err, &status) {
		return status.Body
	}
	return ""
}

// IsStatusError reports whether err is an HTTP status failure
func IsStatusError(err error) bool {
	var status *StatusError
	return errors.As(err, &status)
}

// IsNetworkError reports whether err is a transport failure
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// IsTimeoutError reports whether err is a deadline failure
func IsTimeoutError(err error) bool {
	var timeout *TimeoutError
	return errors.As(err, &timeout)
}

// IsParseError reports whether err is a decoding failure
func IsParseError(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}

// IsCanceled reports whether err stems from a canceled context
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
