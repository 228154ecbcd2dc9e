package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// The payment endpoints front the Razorpay integration on the backend. The
// client treats both payloads and answers as opaque.

// CreatePaymentOrder opens a gateway order for checkout.
func CreatePaymentOrder(ctx context.Context, rc *resty.Client, payload any) (json.RawMessage, error) {
	return passThrough(newRequest(ctx, rc).SetBody(payload), http.MethodPost, "/orders/razorpay/create", "create payment order")
}

// VerifyPayment submits the gateway's signed callback for verification.
func VerifyPayment(ctx context.Context, rc *resty.Client, payload any) (json.RawMessage, error) {
	return passThrough(newRequest(ctx, rc).SetBody(payload), http.MethodPost, "/orders/razorpay/verify", "verify payment")
}
