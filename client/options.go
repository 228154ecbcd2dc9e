package client

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file avoids cluttering
// client.go and makes it easy to discover all available knobs at a glance.

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Option configures a Client during construction in New.
//
// Options run before the middleware chain is composed, so the chain always
// wraps whatever transport the options leave on the http.Client.
type Option func(*Client) error

// WithHTTPTimeout sets the underlying http.Client Timeout used by the SDK.
//
// Prefer per-request context deadlines where possible; this timeout is a
// coarse bound on a single HTTP request. The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithHTTPClient replaces the underlying http.Client. Its Transport becomes
// the innermost link of the middleware chain.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return errors.New("http client cannot be nil")
		}
		c.http = hc
		return nil
	}
}

// WithCredentials sets the provider consulted on every request. Without it
// the client sends every request unauthenticated.
func WithCredentials(p CredentialProvider) Option {
	return func(c *Client) error {
		c.creds = p
		return nil
	}
}

// WithLogger sets the logger used by the client and its transports.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) error {
		c.log = l
		return nil
	}
}

// WithMiddleware appends caller middleware. It runs after auth and 401
// handling and before the debug dump.
func WithMiddleware(mw ...Middleware) Option {
	return func(c *Client) error {
		c.extra = append(c.extra, mw...)
		return nil
	}
}

// WithDebugLogging dumps each request/response at debug level when enabled.
// Dumps include the Authorization header; do not enable in production.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		c.debug = c.debug || enabled
		return nil
	}
}

// WithClock replaces the time source of the cache-busting stamp.
func WithClock(now func() time.Time) Option {
	return func(c *Client) error {
		if now == nil {
			return errors.New("clock cannot be nil")
		}
		c.stamp = newStamper(now)
		return nil
	}
}
