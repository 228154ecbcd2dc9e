package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Middleware decorates a RoundTripper. The client composes its middleware
// once, in New, around a single send primitive.
type Middleware func(next http.RoundTripper) http.RoundTripper

// Chain wraps base with mws; the first middleware sees the request first.
func Chain(base http.RoundTripper, mws ...Middleware) http.RoundTripper {
	rt := base
	for i := len(mws) - 1; i >= 0; i-- {
		rt = mws[i](rt)
	}
	return rt
}

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// requestIDTransport stamps each request with a fresh uuid unless the caller set one.
type requestIDTransport struct{ base http.RoundTripper }

func requestIDMiddleware() Middleware {
	return func(next http.RoundTripper) http.RoundTripper { return &requestIDTransport{base: next} }
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(RequestIDHeader) != "" {
		return t.base.RoundTrip(req)
	}
	cloned := req.Clone(req.Context())
	cloned.Header.Set(RequestIDHeader, uuid.NewString())
	return t.base.RoundTrip(cloned)
}

// authTransport attaches the provider's prioritized token as a bearer
// Authorization header. With no token the request goes out unauthenticated.
type authTransport struct {
	base  http.RoundTripper
	creds CredentialProvider
}

func authMiddleware(creds CredentialProvider) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		if creds == nil {
			return next
		}
		return &authTransport{base: next, creds: creds}
	}
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.creds.Token(req.Context())
	if err != nil {
		if req.Body != nil {
			_ = req.Body.Close()
		}
		return nil, fmt.Errorf("credential lookup: %w", err)
	}
	if token == "" {
		return t.base.RoundTrip(req)
	}
	// Clone the request to avoid modifying the original
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", "Bearer "+token)
	return t.base.RoundTrip(cloned)
}

// unauthorizedTransport clears every stored credential when the backend
// answers 401, whichever endpoint was called. The response itself is passed
// on; the API layer turns it into a status error.
type unauthorizedTransport struct {
	base  http.RoundTripper
	creds CredentialProvider
	log   zerolog.Logger
}

func unauthorizedMiddleware(creds CredentialProvider, log zerolog.Logger) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		if creds == nil {
			return next
		}
		return &unauthorizedTransport{base: next, creds: creds, log: log}
	}
}

func (t *unauthorizedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}
	credentialsClearedTotal.Inc()
	// The caller may cancel as soon as it sees the 401; clearing must still finish.
	if cerr := t.creds.Clear(context.WithoutCancel(req.Context())); cerr != nil {
		t.log.Error().Err(cerr).Str("url", req.URL.Path).Msg("clear credentials after 401 failed")
	} else {
		t.log.Warn().Str("method", req.Method).Str("url", req.URL.Path).Msg("unauthorized; stored credentials cleared")
	}
	return resp, nil
}

// metricsTransport records request counts and latency.
type metricsTransport struct{ base http.RoundTripper }

func metricsMiddleware() Middleware {
	return func(next http.RoundTripper) http.RoundTripper { return &metricsTransport{base: next} }
}

func (t *metricsTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	requestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())
	code := "error"
	if err == nil {
		code = strconv.Itoa(resp.StatusCode)
	}
	requestsTotal.WithLabelValues(req.Method, code).Inc()
	return resp, err
}
