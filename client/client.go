package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Skillon-x/kissanbandi/client/internal/api"
	"github.com/Skillon-x/kissanbandi/client/internal/types"
)

// DefaultBaseURL is the backend the storefront talks to when none is configured.
const DefaultBaseURL = "http://localhost:5000/api"

// CredentialProvider supplies the bearer token for outgoing requests and
// forgets every stored token when the backend answers 401.
// credentials.Keyring is the standard implementation.
type CredentialProvider interface {
	// Token returns the prioritized token, or "" to send the request unauthenticated.
	Token(ctx context.Context) (string, error)
	// Clear removes admin and user tokens from every scope.
	Clear(ctx context.Context) error
}

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client is the storefront's REST client. Each method issues exactly one HTTP
// call; nothing is retried. A Client is safe for concurrent use.
//
// Methods returning json.RawMessage hand back the 2xx body unmodified. A
// response without a body (such as 204) yields nil; a JSON null body yields
// the bytes "null".
type Client struct {
	baseURL string
	http    *http.Client
	rest    *resty.Client
	creds   CredentialProvider
	log     zerolog.Logger
	debug   bool
	extra   []Middleware
	stamp   *stamper

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client for baseURL (which includes the /api prefix).
// Additional options can be provided via functional arguments.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("baseURL cannot be empty")
	}

	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     log.Logger,
		stamp:   newStamper(time.Now),
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	// Work on a copy so a caller-supplied http.Client is never rewrapped.
	hc := *c.http
	hc.Transport = c.buildTransport()
	c.http = &hc
	c.rest = resty.NewWithClient(c.http).
		SetBaseURL(c.baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetLogger(restyLogger{c.log})

	return c, nil
}

// buildTransport composes the middleware chain around the configured base
// transport. Request order: request id, auth, 401 handling, metrics, caller
// middleware, debug dump, network.
func (c *Client) buildTransport() http.RoundTripper {
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	chain := []Middleware{
		requestIDMiddleware(),
		authMiddleware(c.creds),
		unauthorizedMiddleware(c.creds, c.log),
		metricsMiddleware(),
	}
	chain = append(chain, c.extra...)
	if c.debug {
		chain = append(chain, debugMiddleware(c.log))
	}
	return Chain(base, chain...)
}

// BaseURL returns the endpoint the client was built for.
func (c *Client) BaseURL() string { return c.baseURL }

// Close releases idle connections. Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	c.http.CloseIdleConnections()
	return nil
}

// withLogger makes the client logger reachable via zerolog.Ctx in the API layer.
func (c *Client) withLogger(ctx context.Context) context.Context {
	return c.log.WithContext(ctx)
}

// --------------------------------------------------------------------
// Product operations - delegated to internal/api
// --------------------------------------------------------------------

// ListProducts returns the catalogue, optionally filtered (e.g. category).
// The result is never nil; unrecognized backend shapes yield an empty slice.
func (c *Client) ListProducts(ctx context.Context, filters map[string]string) ([]Product, error) {
	return api.ListProducts(c.withLogger(ctx), c.rest, c.stamp, filters)
}

// GetProduct retrieves a product by ID.
func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	return api.GetProduct(c.withLogger(ctx), c.rest, id)
}

// CreateProduct adds a product and returns the backend body. Admin only.
func (c *Client) CreateProduct(ctx context.Context, product any) (json.RawMessage, error) {
	return api.CreateProduct(c.withLogger(ctx), c.rest, product)
}

// UpdateProduct replaces a product and returns the backend body. Admin only.
func (c *Client) UpdateProduct(ctx context.Context, id string, product any) (json.RawMessage, error) {
	return api.UpdateProduct(c.withLogger(ctx), c.rest, id, product)
}

// DeleteProduct removes a product and returns the backend body, nil when the
// backend answers without one. Admin only.
func (c *Client) DeleteProduct(ctx context.Context, id string) (json.RawMessage, error) {
	return api.DeleteProduct(c.withLogger(ctx), c.rest, id)
}

// ProductsByCategory lists a category; an empty subcategory is left out of the query.
func (c *Client) ProductsByCategory(ctx context.Context, category, subcategory string) (json.RawMessage, error) {
	return api.ProductsByCategory(c.withLogger(ctx), c.rest, types.CategoryQuery{Category: category, Subcategory: subcategory})
}

// SearchProducts runs a free-text product search.
func (c *Client) SearchProducts(ctx context.Context, query string) (json.RawMessage, error) {
	return api.SearchProducts(c.withLogger(ctx), c.rest, query)
}

// FeaturedProducts lists featured products.
func (c *Client) FeaturedProducts(ctx context.Context) (json.RawMessage, error) {
	return api.FeaturedProducts(c.withLogger(ctx), c.rest)
}

// --------------------------------------------------------------------
// Order operations - delegated to internal/api
// --------------------------------------------------------------------

// ListOrders returns one page of orders. An absent body is an error.
func (c *Client) ListOrders(ctx context.Context, params map[string]string) (*OrderPage, error) {
	return api.ListOrders(c.withLogger(ctx), c.rest, c.stamp, params)
}

// OrdersByDateRange lists orders placed between startDate and endDate.
func (c *Client) OrdersByDateRange(ctx context.Context, startDate, endDate string) ([]Order, error) {
	return api.OrdersByDateRange(c.withLogger(ctx), c.rest, c.stamp, types.DateRange{StartDate: startDate, EndDate: endDate})
}

// OrderStats returns dashboard aggregates. An absent body is an error.
func (c *Client) OrderStats(ctx context.Context, params map[string]string) (*OrderStats, error) {
	return api.OrderStats(c.withLogger(ctx), c.rest, c.stamp, params)
}

// UpdateOrderStatus moves an order to status and returns the backend body.
func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) (json.RawMessage, error) {
	return api.UpdateOrderStatus(c.withLogger(ctx), c.rest, id, status)
}

// ExportOrders downloads matching orders as CSV bytes.
func (c *Client) ExportOrders(ctx context.Context, filters map[string]string) ([]byte, error) {
	return api.ExportOrders(c.withLogger(ctx), c.rest, c.stamp, filters)
}

// GetOrder retrieves an order by ID.
func (c *Client) GetOrder(ctx context.Context, id string) (json.RawMessage, error) {
	return api.GetOrder(c.withLogger(ctx), c.rest, id)
}

// CreateOrder places an order.
func (c *Client) CreateOrder(ctx context.Context, order any) (json.RawMessage, error) {
	return api.CreateOrder(c.withLogger(ctx), c.rest, order)
}

// CreatePaymentOrder opens a payment-gateway order for checkout.
func (c *Client) CreatePaymentOrder(ctx context.Context, payload any) (json.RawMessage, error) {
	return api.CreatePaymentOrder(c.withLogger(ctx), c.rest, payload)
}

// VerifyPayment submits a gateway payment for server-side verification.
func (c *Client) VerifyPayment(ctx context.Context, payload any) (json.RawMessage, error) {
	return api.VerifyPayment(c.withLogger(ctx), c.rest, payload)
}

// --------------------------------------------------------------------
// Customer operations - delegated to internal/api
// --------------------------------------------------------------------

// ListCustomers returns all customers.
func (c *Client) ListCustomers(ctx context.Context) (json.RawMessage, error) {
	return api.ListCustomers(c.withLogger(ctx), c.rest)
}

// GetCustomer retrieves a customer by ID.
func (c *Client) GetCustomer(ctx context.Context, userID string) (json.RawMessage, error) {
	return api.GetCustomer(c.withLogger(ctx), c.rest, userID)
}

// CustomerOrders lists a customer's orders.
func (c *Client) CustomerOrders(ctx context.Context, userID string) (json.RawMessage, error) {
	return api.CustomerOrders(c.withLogger(ctx), c.rest, userID)
}

// CustomerAnalytics returns a customer's purchase analytics.
func (c *Client) CustomerAnalytics(ctx context.Context, userID string) (json.RawMessage, error) {
	return api.CustomerAnalytics(c.withLogger(ctx), c.rest, userID)
}

// UpdateCustomer updates a customer's profile.
func (c *Client) UpdateCustomer(ctx context.Context, userID string, profile any) (json.RawMessage, error) {
	return api.UpdateCustomer(c.withLogger(ctx), c.rest, userID, profile)
}
