package types

import (
	"bytes"
	"encoding/json"
	"sort"
)

// ------------------------------
// Response Types
// ------------------------------

// OrderPage is the normalized result of GET /orders.
type OrderPage struct {
	Orders     []Order `json:"orders"`
	Total      int     `json:"total"`
	Page       int     `json:"page"`
	TotalPages int     `json:"totalPages"`
}

// OrderStats is the normalized result of GET /orders/stats.
type OrderStats struct {
	TotalOrders       int            `json:"totalOrders"`
	TotalRevenue      float64        `json:"totalRevenue"`
	AverageOrderValue float64        `json:"averageOrderValue"`
	StatusBreakdown   map[string]int `json:"statusBreakdown"`
	DailyStats        []DailyStat    `json:"dailyStats"`

	// IgnoredStatuses lists statusBreakdown entries whose count was not a
	// number. They are left out of StatusBreakdown.
	IgnoredStatuses []string `json:"ignoredStatuses,omitempty"`
}

// ------------------------------
// List envelopes
// ------------------------------

// EnvelopeKind is the shape a list endpoint answered with.
type EnvelopeKind int

const (
	// EnvelopeEmpty is an absent body or JSON null.
	EnvelopeEmpty EnvelopeKind = iota
	// EnvelopeArray is a bare JSON array.
	EnvelopeArray
	// EnvelopeKeyed is an object holding the array under one of the family keys.
	EnvelopeKeyed
	// EnvelopeUnrecognized is any other valid JSON value.
	EnvelopeUnrecognized
)

// Family keys, in lookup order.
var (
	ProductKeys = []string{"products", "data"}
	OrderKeys   = []string{"orders", "data"}
)

// ListEnvelope is a classified list response.
type ListEnvelope struct {
	Kind  EnvelopeKind
	Key   string          // set for EnvelopeKeyed
	Items json.RawMessage // the array, for EnvelopeArray and EnvelopeKeyed
}

// ClassifyList sorts body into exactly one EnvelopeKind. keys are tried in
// order; the first one holding an array wins. Bodies that are not JSON at
// all, such as an HTML error page served with 200, are unrecognized.
func ClassifyList(body []byte, keys []string) ListEnvelope {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ListEnvelope{Kind: EnvelopeEmpty}
	}
	if !json.Valid(trimmed) {
		return ListEnvelope{Kind: EnvelopeUnrecognized}
	}
	if isArray(trimmed) {
		return ListEnvelope{Kind: EnvelopeArray, Items: trimmed}
	}
	fields := fieldsOf(trimmed)
	for _, k := range keys {
		if isArray(fields[k]) {
			return ListEnvelope{Kind: EnvelopeKeyed, Key: k, Items: fields[k]}
		}
	}
	return ListEnvelope{Kind: EnvelopeUnrecognized}
}

// DecodeList maps an envelope to a sequence. Empty and unrecognized
// envelopes yield an empty, non-nil slice.
func DecodeList[T any](env ListEnvelope) ([]T, error) {
	switch env.Kind {
	case EnvelopeArray, EnvelopeKeyed:
		var out []T
		if err := json.Unmarshal(env.Items, &out); err != nil {
			return nil, err
		}
		if out == nil {
			out = []T{}
		}
		return out, nil
	case EnvelopeEmpty, EnvelopeUnrecognized:
		return []T{}, nil
	default:
		return []T{}, nil
	}
}

// ------------------------------
// Object normalization
// ------------------------------

// IsAbsent reports whether body counts as "no data": empty, null or a
// falsy scalar.
func IsAbsent(body []byte) bool {
	switch string(bytes.TrimSpace(body)) {
	case "", "null", "false", "0", `""`:
		return true
	}
	return false
}

// NormalizeOrderPage builds an OrderPage from a body already known to be
// present. Missing or falsy fields take their defaults: [] / 0 / 1 / 1.
func NormalizeOrderPage(body []byte) (*OrderPage, error) {
	fields, err := objectFields(body)
	if err != nil {
		return nil, err
	}
	page := &OrderPage{
		Orders:     []Order{},
		Total:      int(numberOr(fields["total"], 0)),
		Page:       int(numberOr(fields["page"], 1)),
		TotalPages: int(numberOr(fields["totalPages"], 1)),
	}
	if isArray(fields["orders"]) {
		if err := json.Unmarshal(fields["orders"], &page.Orders); err != nil {
			return nil, err
		}
		if page.Orders == nil {
			page.Orders = []Order{}
		}
	}
	return page, nil
}

// NormalizeOrderStats builds OrderStats from a body already known to be
// present, defaulting every absent field.
func NormalizeOrderStats(body []byte) (*OrderStats, error) {
	fields, err := objectFields(body)
	if err != nil {
		return nil, err
	}
	stats := &OrderStats{
		TotalOrders:       int(numberOr(fields["totalOrders"], 0)),
		TotalRevenue:      numberOr(fields["totalRevenue"], 0),
		AverageOrderValue: numberOr(fields["averageOrderValue"], 0),
		StatusBreakdown:   map[string]int{},
		DailyStats:        []DailyStat{},
	}
	if isObject(fields["statusBreakdown"]) {
		var counts map[string]json.RawMessage
		if err := json.Unmarshal(fields["statusBreakdown"], &counts); err != nil {
			return nil, err
		}
		for status, n := range counts {
			v, ok := parseNumber(n)
			if !ok {
				stats.IgnoredStatuses = append(stats.IgnoredStatuses, status)
				continue
			}
			stats.StatusBreakdown[status] = int(v)
		}
		sort.Strings(stats.IgnoredStatuses)
	}
	if isArray(fields["dailyStats"]) {
		if err := json.Unmarshal(fields["dailyStats"], &stats.DailyStats); err != nil {
			return nil, err
		}
		if stats.DailyStats == nil {
			stats.DailyStats = []DailyStat{}
		}
	}
	return stats, nil
}

// objectFields returns the top-level fields of a JSON object. Valid JSON
// that is not an object has no fields.
func objectFields(body []byte) (map[string]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	var fields map[string]json.RawMessage
	if isObject(trimmed) {
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return nil, err
		}
		return fields, nil
	}
	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return nil, err
	}
	return map[string]json.RawMessage{}, nil
}

// numberOr returns the numeric value of raw, or def when raw is absent,
// zero, or not a number. Numeric strings are accepted.
func numberOr(raw json.RawMessage, def float64) float64 {
	f, ok := parseNumber(raw)
	if !ok || f == 0 {
		return def
	}
	return f
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
