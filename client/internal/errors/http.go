package errors

import "fmt"

// maxBodySnippet bounds how much of a failed response is kept on the error.
const maxBodySnippet = 512

// NewStatusError creates a Status error for a non-2xx response.
func NewStatusError(op string, statusCode int, body []byte) *Error {
	return &Error{
		Kind:       Status,
		Op:         op,
		StatusCode: statusCode,
		Body:       snippet(body),
		Err:        fmt.Errorf("unexpected status %d", statusCode),
	}
}

// NewTransportError creates a Transport error for a request that never
// produced a response.
func NewTransportError(op string, err error) *Error {
	return &Error{Kind: Transport, Op: op, Err: err}
}

// NewBodyError creates a Body error; cause is usually ErrEmptyBody or ErrInvalidExport.
func NewBodyError(op string, cause error) *Error {
	return &Error{Kind: Body, Op: op, Err: cause}
}

// NewInputError creates an Input error for the named field.
func NewInputError(op, field string, cause error) *Error {
	return &Error{Kind: Input, Op: op, Err: fmt.Errorf("%s: %w: %v", field, ErrInvalidInput, cause)}
}

func snippet(body []byte) string {
	if len(body) > maxBodySnippet {
		return string(body[:maxBodySnippet]) + "..."
	}
	return string(body)
}
