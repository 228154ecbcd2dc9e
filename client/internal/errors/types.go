// Package errors provides the error taxonomy shared by the client SDK.
// Every failure an API call can surface falls into exactly one Kind.
package errors

import (
	"errors"
	"fmt"
)

// Kind tells callers which stage of a call failed.
type Kind int

const (
	// Transport covers network failures and credential lookups that failed
	// before a response was received.
	Transport Kind = iota

	// Status is a non-2xx HTTP response. 401 additionally clears credentials.
	Status

	// Body is a 2xx response whose body an endpoint explicitly rejects
	// (empty orders page, empty stats, non-binary export).
	Body

	// Input is a call rejected before any request was built.
	Input
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case Transport:
		return "Transport"
	case Status:
		return "Status"
	case Body:
		return "Body"
	case Input:
		return "Input"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

var (
	// ErrEmptyBody is returned when an endpoint requires a body and got none.
	ErrEmptyBody = errors.New("no data received")

	// ErrInvalidExport is returned when the export endpoint answers without a payload.
	ErrInvalidExport = errors.New("invalid response format from export endpoint")

	// ErrInvalidInput is returned when a required argument is missing.
	ErrInvalidInput = errors.New("invalid input")
)

// Error wraps an underlying error with the operation name and kind.
type Error struct {
	Kind       Kind
	Op         string
	StatusCode int    // 0 unless Kind == Status
	Body       string // response body, for debugging
	Err        error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: [%s] HTTP %d: %v", e.Op, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: [%s] %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the Kind of err and whether err carries one.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

// IsUnauthorized reports whether err is an HTTP 401.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == 401
}
