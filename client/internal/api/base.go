package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	apierrors "github.com/Skillon-x/kissanbandi/client/internal/errors"
	"github.com/Skillon-x/kissanbandi/client/internal/types"
)

// CacheBuster yields the `_t` query value for listing endpoints. Values must
// differ between calls.
type CacheBuster interface {
	Next() int64
}

const cacheBustParam = "_t"

// newRequest starts a request bound to ctx.
func newRequest(ctx context.Context, rc *resty.Client) *resty.Request {
	return rc.R().SetContext(ctx)
}

// bustCache copies params onto req, stamps `_t` last so it overrides any
// caller value, and disables intermediary caching.
func bustCache(req *resty.Request, bust CacheBuster, params map[string]string) *resty.Request {
	for k, v := range params {
		req.SetQueryParam(k, v)
	}
	return req.
		SetQueryParam(cacheBustParam, strconv.FormatInt(bust.Next(), 10)).
		SetHeader("Cache-Control", "no-cache").
		SetHeader("Pragma", "no-cache")
}

// execute runs req and turns transport failures and non-2xx answers into
// classified errors. On success it returns the raw body.
func execute(req *resty.Request, method, path, op string) ([]byte, *resty.Response, error) {
	if err := req.Context().Err(); err != nil {
		return nil, nil, apierrors.NewTransportError(op, err)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, nil, apierrors.NewTransportError(op, err)
	}
	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return nil, resp, apierrors.NewStatusError(op, resp.StatusCode(), resp.Body())
	}
	return resp.Body(), resp, nil
}

// passThrough executes req and returns the body unmodified; nil when the
// response has no body, so callers can tell it apart from JSON null.
func passThrough(req *resty.Request, method, path, op string) (json.RawMessage, error) {
	body, _, err := execute(req, method, path, op)
	if err != nil {
		zerolog.Ctx(req.Context()).Error().Err(err).Str("op", op).Int("status", apierrors.StatusCode(err)).Msg("request failed")
		return nil, err
	}
	if len(body) == 0 {
		return nil, nil
	}
	return json.RawMessage(body), nil
}

// requireID rejects a blank path identifier before any request is built.
func requireID(op, field, id string) error {
	if err := types.ValidateIDPresent(id); err != nil {
		return apierrors.NewInputError(op, field, err)
	}
	return nil
}

// decodeError marks a body that could not be decoded.
func decodeError(op string, err error) error {
	return &apierrors.Error{Kind: apierrors.Body, Op: op, Err: err}
}
