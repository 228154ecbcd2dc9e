package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	apierrors "github.com/Skillon-x/kissanbandi/client/internal/errors"
	"github.com/Skillon-x/kissanbandi/client/internal/types"
)

// ListProducts returns the catalogue, optionally filtered. The backend may
// answer with a bare array, {products:[...]} or {data:[...]}; any other
// shape yields an empty slice.
func ListProducts(ctx context.Context, rc *resty.Client, bust CacheBuster, filters map[string]string) ([]types.Product, error) {
	const op = "list products"
	logger := zerolog.Ctx(ctx)
	logger.Debug().Interface("filters", filters).Msg("fetching products")

	req := bustCache(newRequest(ctx, rc), bust, filters)
	body, resp, err := execute(req, http.MethodGet, "/products", op)
	if err != nil {
		logger.Error().Err(err).Int("status", apierrors.StatusCode(err)).Msg("list products failed")
		return nil, err
	}

	env := types.ClassifyList(body, types.ProductKeys)
	products, err := types.DecodeList[types.Product](env)
	if err != nil {
		return nil, decodeError(op, err)
	}
	logger.Debug().
		Int("status", resp.StatusCode()).
		Int("envelope", int(env.Kind)).
		Str("key", env.Key).
		Int("count", len(products)).
		Msg("products fetched")
	return products, nil
}

// GetProduct fetches a single product.
func GetProduct(ctx context.Context, rc *resty.Client, id string) (*types.Product, error) {
	const op = "get product"
	if err := requireID(op, "id", id); err != nil {
		return nil, err
	}
	body, _, err := execute(newRequest(ctx, rc).SetPathParam("id", id), http.MethodGet, "/products/{id}", op)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("product_id", id).Int("status", apierrors.StatusCode(err)).Msg("get product failed")
		return nil, err
	}
	var p types.Product
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, decodeError(op, err)
	}
	return &p, nil
}

// CreateProduct adds a product. Admin only; the backend enforces it.
func CreateProduct(ctx context.Context, rc *resty.Client, product any) (json.RawMessage, error) {
	return passThrough(newRequest(ctx, rc).SetBody(product), http.MethodPost, "/products", "create product")
}

// UpdateProduct replaces a product. Admin only; the backend enforces it.
func UpdateProduct(ctx context.Context, rc *resty.Client, id string, product any) (json.RawMessage, error) {
	const op = "update product"
	if err := requireID(op, "id", id); err != nil {
		return nil, err
	}
	req := newRequest(ctx, rc).SetPathParam("id", id).SetBody(product)
	return passThrough(req, http.MethodPut, "/products/{id}", op)
}

// DeleteProduct removes a product. Admin only; the backend enforces it.
func DeleteProduct(ctx context.Context, rc *resty.Client, id string) (json.RawMessage, error) {
	const op = "delete product"
	if err := requireID(op, "id", id); err != nil {
		return nil, err
	}
	return passThrough(newRequest(ctx, rc).SetPathParam("id", id), http.MethodDelete, "/products/{id}", op)
}

// ProductsByCategory lists a category; subcategory is sent only when set.
func ProductsByCategory(ctx context.Context, rc *resty.Client, q types.CategoryQuery) (json.RawMessage, error) {
	const op = "products by category"
	if err := types.ValidateStruct(q); err != nil {
		return nil, apierrors.NewInputError(op, "category", err)
	}
	req := newRequest(ctx, rc).SetQueryParam("category", q.Category)
	if q.Subcategory != "" {
		req.SetQueryParam("subcategory", q.Subcategory)
	}
	return passThrough(req, http.MethodGet, "/products/category", op)
}

// SearchProducts runs a free-text search.
func SearchProducts(ctx context.Context, rc *resty.Client, query string) (json.RawMessage, error) {
	req := newRequest(ctx, rc).SetQueryParam("query", query)
	return passThrough(req, http.MethodGet, "/products/search", "search products")
}

// FeaturedProducts lists the products highlighted on the storefront.
func FeaturedProducts(ctx context.Context, rc *resty.Client) (json.RawMessage, error) {
	return passThrough(newRequest(ctx, rc), http.MethodGet, "/products/featured", "featured products")
}
