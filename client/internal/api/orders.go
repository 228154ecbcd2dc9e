package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	apierrors "github.com/Skillon-x/kissanbandi/client/internal/errors"
	"github.com/Skillon-x/kissanbandi/client/internal/types"
)

const csvContentType = "text/csv"

// ListOrders returns one page of orders. A response without a body is an
// error; missing pagination fields default to total 0, page 1, totalPages 1.
func ListOrders(ctx context.Context, rc *resty.Client, bust CacheBuster, params map[string]string) (*types.OrderPage, error) {
	const op = "list orders"
	logger := zerolog.Ctx(ctx)
	logger.Debug().Interface("params", params).Msg("fetching orders")

	body, resp, err := execute(bustCache(newRequest(ctx, rc), bust, params), http.MethodGet, "/orders", op)
	if err != nil {
		logger.Error().Err(err).Int("status", apierrors.StatusCode(err)).Msg("list orders failed")
		return nil, err
	}
	if types.IsAbsent(body) {
		err := apierrors.NewBodyError(op, apierrors.ErrEmptyBody)
		logger.Error().Err(err).Int("status", resp.StatusCode()).Msg("list orders failed")
		return nil, err
	}
	page, err := types.NormalizeOrderPage(body)
	if err != nil {
		return nil, decodeError(op, err)
	}
	return page, nil
}

// OrdersByDateRange lists orders placed between start and end. Accepts a
// bare array, {orders:[...]} or {data:[...]}; anything else is empty.
func OrdersByDateRange(ctx context.Context, rc *resty.Client, bust CacheBuster, r types.DateRange) ([]types.Order, error) {
	const op = "orders by date range"
	if err := types.ValidateStruct(r); err != nil {
		return nil, apierrors.NewInputError(op, "dateRange", err)
	}
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("start_date", r.StartDate).Str("end_date", r.EndDate).Msg("fetching orders by date range")

	params := map[string]string{"startDate": r.StartDate, "endDate": r.EndDate}
	body, _, err := execute(bustCache(newRequest(ctx, rc), bust, params), http.MethodGet, "/orders/date-range", op)
	if err != nil {
		logger.Error().Err(err).Msg("orders by date range failed")
		return nil, err
	}
	env := types.ClassifyList(body, types.OrderKeys)
	orders, err := types.DecodeList[types.Order](env)
	if err != nil {
		return nil, decodeError(op, err)
	}
	return orders, nil
}

// OrderStats returns dashboard aggregates. A response without a body is an
// error; absent fields are defaulted.
func OrderStats(ctx context.Context, rc *resty.Client, bust CacheBuster, params map[string]string) (*types.OrderStats, error) {
	const op = "order stats"
	logger := zerolog.Ctx(ctx)
	logger.Debug().Interface("params", params).Msg("fetching order stats")

	body, _, err := execute(bustCache(newRequest(ctx, rc), bust, params), http.MethodGet, "/orders/stats", op)
	if err != nil {
		logger.Error().Err(err).Int("status", apierrors.StatusCode(err)).Msg("order stats failed")
		return nil, err
	}
	if types.IsAbsent(body) {
		err := apierrors.NewBodyError(op, apierrors.ErrEmptyBody)
		logger.Error().Err(err).Msg("order stats failed")
		return nil, err
	}
	stats, err := types.NormalizeOrderStats(body)
	if err != nil {
		return nil, decodeError(op, err)
	}
	if len(stats.IgnoredStatuses) > 0 {
		logger.Warn().Strs("statuses", stats.IgnoredStatuses).Msg("non-numeric status counts ignored")
	}
	return stats, nil
}

// UpdateOrderStatus moves an order to status and returns the backend body.
func UpdateOrderStatus(ctx context.Context, rc *resty.Client, id, status string) (json.RawMessage, error) {
	const op = "update order status"
	if err := requireID(op, "id", id); err != nil {
		return nil, err
	}
	update := types.StatusUpdate{Status: status}
	if err := types.ValidateStruct(update); err != nil {
		return nil, apierrors.NewInputError(op, "status", err)
	}
	zerolog.Ctx(ctx).Debug().Str("order_id", id).Str("status", status).Msg("updating order status")

	req := newRequest(ctx, rc).SetPathParam("id", id).SetBody(update)
	return passThrough(req, http.MethodPatch, "/orders/{id}/status", op)
}

// ExportOrders downloads the orders matching filters as CSV. An empty
// payload is an error; an unexpected content type is only logged.
func ExportOrders(ctx context.Context, rc *resty.Client, bust CacheBuster, filters map[string]string) ([]byte, error) {
	const op = "export orders"
	logger := zerolog.Ctx(ctx)
	logger.Debug().Interface("filters", filters).Msg("exporting orders")

	req := bustCache(newRequest(ctx, rc), bust, filters).SetHeader("Accept", csvContentType)
	body, resp, err := execute(req, http.MethodGet, "/orders/export", op)
	if err != nil {
		logger.Error().Err(err).Int("status", apierrors.StatusCode(err)).Msg("export orders failed")
		return nil, err
	}
	if len(body) == 0 {
		err := apierrors.NewBodyError(op, apierrors.ErrInvalidExport)
		logger.Error().Err(err).Msg("export orders failed")
		return nil, err
	}
	if ct := resp.Header().Get("Content-Type"); !strings.Contains(ct, csvContentType) {
		logger.Warn().Str("content_type", ct).Msg("unexpected content type")
	}
	return body, nil
}

// GetOrder fetches a single order.
func GetOrder(ctx context.Context, rc *resty.Client, id string) (json.RawMessage, error) {
	const op = "get order"
	if err := requireID(op, "id", id); err != nil {
		return nil, err
	}
	return passThrough(newRequest(ctx, rc).SetPathParam("id", id), http.MethodGet, "/orders/{id}", op)
}

// CreateOrder places an order.
func CreateOrder(ctx context.Context, rc *resty.Client, order any) (json.RawMessage, error) {
	return passThrough(newRequest(ctx, rc).SetBody(order), http.MethodPost, "/orders", "create order")
}
