package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// Customer endpoints return the backend body unmodified.

// ListCustomers returns every customer.
func ListCustomers(ctx context.Context, rc *resty.Client) (json.RawMessage, error) {
	return passThrough(newRequest(ctx, rc), http.MethodGet, "/users", "list customers")
}

// GetCustomer fetches one customer.
func GetCustomer(ctx context.Context, rc *resty.Client, userID string) (json.RawMessage, error) {
	return customerResource(ctx, rc, userID, "/users/{id}", "get customer")
}

// CustomerOrders lists a customer's orders.
func CustomerOrders(ctx context.Context, rc *resty.Client, userID string) (json.RawMessage, error) {
	return customerResource(ctx, rc, userID, "/users/{id}/orders", "customer orders")
}

// CustomerAnalytics returns a customer's purchase analytics.
func CustomerAnalytics(ctx context.Context, rc *resty.Client, userID string) (json.RawMessage, error) {
	return customerResource(ctx, rc, userID, "/users/{id}/analytics", "customer analytics")
}

// UpdateCustomer replaces fields of a customer's profile.
func UpdateCustomer(ctx context.Context, rc *resty.Client, userID string, profile any) (json.RawMessage, error) {
	const op = "update customer"
	if err := requireID(op, "userId", userID); err != nil {
		return nil, err
	}
	req := newRequest(ctx, rc).SetPathParam("id", userID).SetBody(profile)
	return passThrough(req, http.MethodPut, "/users/{id}/profile", op)
}

func customerResource(ctx context.Context, rc *resty.Client, userID, path, op string) (json.RawMessage, error) {
	if err := requireID(op, "userId", userID); err != nil {
		return nil, err
	}
	return passThrough(newRequest(ctx, rc).SetPathParam("id", userID), http.MethodGet, path, op)
}
