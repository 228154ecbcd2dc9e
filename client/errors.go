package client

import (
	apierrors "github.com/Skillon-x/kissanbandi/client/internal/errors"
)

// Error is the error type returned by every Client method.
type Error = apierrors.Error

// ErrorKind tells which stage of a call failed.
type ErrorKind = apierrors.Kind

const (
	KindTransport = apierrors.Transport
	KindStatus    = apierrors.Status
	KindBody      = apierrors.Body
	KindInput     = apierrors.Input
)

// Re-export shared SDK errors so callers compare against a single symbol.
var (
	ErrEmptyBody     = apierrors.ErrEmptyBody
	ErrInvalidExport = apierrors.ErrInvalidExport
	ErrInvalidInput  = apierrors.ErrInvalidInput
)

// IsUnauthorized reports whether err is an HTTP 401 from the backend.
func IsUnauthorized(err error) bool { return apierrors.IsUnauthorized(err) }

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int { return apierrors.StatusCode(err) }

// KindOf reports the ErrorKind of err.
func KindOf(err error) (ErrorKind, bool) { return apierrors.KindOf(err) }
