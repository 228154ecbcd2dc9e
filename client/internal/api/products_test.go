package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/Skillon-x/kissanbandi/client/internal/errors"
	"github.com/Skillon-x/kissanbandi/client/internal/types"
)

func TestListProducts_FilterAndCacheBusting(t *testing.T) {
	t.Parallel()
	rc := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/products", r.URL.Path)
		assert.Equal(t, "fruits", r.URL.Query().Get("category"))
		assert.Equal(t, "1000", r.URL.Query().Get("_t"))
		assert.Equal(t, "no-cache", r.Header.Get("Cache-Control"))
		assert.Equal(t, "no-cache", r.Header.Get("Pragma"))
		writeJSON(w, http.StatusOK, `{"data":[{"id":"1"}]}`)
	})

	got, err := ListProducts(context.Background(), rc, &seqBuster{}, map[string]string{"category": "fruits"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestListProducts_CallerCannotOverrideStamp(t *testing.T) {
	t.Parallel()
	rc := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1000", r.URL.Query().Get("_t"))
		writeJSON(w, http.StatusOK, `[]`)
	})
	_, err := ListProducts(context.Background(), rc, &seqBuster{}, map[string]string{"_t": "1"})
	require.NoError(t, err)
}

func TestListProducts_Shapes(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		body string
		ids  []string
	}{
		{"bare array", `[{"id":"a"},{"id":"b"}]`, []string{"a", "b"}},
		{"products key", `{"products":[{"_id":"a"}]}`, []string{"a"}},
		{"data key", `{"data":[{"id":"z"}]}`, []string{"z"}},
		{"other object", `{"message":"ok"}`, []string{}},
		{"null", `null`, []string{}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rc := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, tc.body)
			})
			got, err := ListProducts(context.Background(), rc, &seqBuster{}, nil)
			require.NoError(t, err)
			require.NotNil(t, got)
			ids := []string{}
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tc.ids, ids)
		})
	}
}

func TestListProducts_StatusErrorPropagates(t *testing.T) {
	t.Parallel()
	rc := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, `{"message":"boom"}`)
	})
	_, err := ListProducts(context.Background(), rc, &seqBuster{}, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apierrors.StatusCode(err))
}

func TestListProducts_NonJSONBodyIsEmpty(t *testing.T) {
	t.Parallel()
	for _, body := range []string{`{bad json`, `<html>maintenance</html>`} {
		rc := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(body))
		})
		got, err := ListProducts(context.Background(), rc, &seqBuster{}, nil)
		require.NoError(t, err, "body %q", body)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
}

func TestListProducts_DriftedRecords(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		body string
		id   string
	}{
		{"numeric id", `[{"id":1}]`, "1"},
		{"string price", `{"products":[{"_id":"a","price":"120"}]}`, "a"},
		{"empty timestamp", `{"data":[{"id":"a","createdAt":""}]}`, "a"},
		{"populated category", `[{"id":"a","category":{"_id":"c1"}}]`, "a"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rc := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, tc.body)
			})
			got, err := ListProducts(context.Background(), rc, &seqBuster{}, nil)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, tc.id, got[0].ID)
		})
	}
}

func TestGetProduct(t *testing.T) {
	t.Parallel()
	rc := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/p1", r.URL.Path)
		assert.Empty(t, r.URL.Query().Get("_t"))
		writeJSON(w, http.StatusOK, `{"_id":"p1","name":"Alphonso Mango","price":450,"unit":"dozen"}`)
	})
	p, err := GetProduct(context.Background(), rc, "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "Alphonso Mango", p.Name)
	assert.Equal(t, 450.0, p.Price)
}

func TestGetProduct_BlankIDIssuesNoRequest(t *testing.T) {
	t.Parallel()
	var called atomic.Bool
	rc := newServer(t, func(w http.ResponseWriter, r *http.Request) { called.Store(true) })
	_, err := GetProduct(context.Background(), rc, " ")
	require.Error(t, err)
	assert.ErrorIs(t, err, apierrors.ErrInvalidInput)
	assert.False(t, called.Load())
}

func TestProductMutations(t *testing.T) {
	t.Parallel()
	type seen struct{ method, path, body string }
	var (
		mu  sync.Mutex
		got []seen
	)
	rc := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		var b json.RawMessage
		_ = json.NewDecoder(r.Body).Decode(&b)
		mu.Lock()
		got = append(got, seen{r.Method, r.URL.Path, string(b)})
		mu.Unlock()
		writeJSON(w, http.StatusOK, `{"success":true}`)
	})
	ctx := context.Background()
	product := map[string]any{"name": "Tomato"}

	out, err := CreateProduct(ctx, rc, product)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true}`, string(out))
	_, err = UpdateProduct(ctx, rc, "p9", product)
	require.NoError(t, err)
	_, err = DeleteProduct(ctx, rc, "p9")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 3)
	assert.Equal(t, seen{http.MethodPost, "/api/products", `{"name":"Tomato"}`}, got[0])
	assert.Equal(t, seen{http.MethodPut, "/api/products/p9", `{"name":"Tomato"}`}, got[1])
	assert.Equal(t, http.MethodDelete, got[2].method)
	assert.Equal(t, "/api/products/p9", got[2].path)
}

func TestProductsByCategory_SubcategoryOptional(t *testing.T) {
	t.Parallel()
	var (
		mu      sync.Mutex
		queries []map[string][]string
	)
	rc := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/category", r.URL.Path)
		mu.Lock()
		queries = append(queries, r.URL.Query())
		mu.Unlock()
		writeJSON(w, http.StatusOK, `[]`)
	})
	ctx := context.Background()
	_, err := ProductsByCategory(ctx, rc, types.CategoryQuery{Category: "vegetables"})
	require.NoError(t, err)
	_, err = ProductsByCategory(ctx, rc, types.CategoryQuery{Category: "vegetables", Subcategory: "leafy"})
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, queries, 2)
	assert.Equal(t, map[string][]string{"category": {"vegetables"}}, queries[0])
	assert.Equal(t, map[string][]string{"category": {"vegetables"}, "subcategory": {"leafy"}}, queries[1])
}

func TestProductsByCategory_RequiresCategory(t *testing.T) {
	t.Parallel()
	_, err := ProductsByCategory(context.Background(), failingClient(), types.CategoryQuery{})
	assert.ErrorIs(t, err, apierrors.ErrInvalidInput)
}

func TestSearchAndFeatured(t *testing.T) {
	t.Parallel()
	rc := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/products/search":
			assert.Equal(t, "onion", r.URL.Query().Get("query"))
			writeJSON(w, http.StatusOK, `{"products":[{"id":"o"}]}`)
		case "/api/products/featured":
			writeJSON(w, http.StatusOK, `[{"id":"f"}]`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	ctx := context.Background()
	s, err := SearchProducts(ctx, rc, "onion")
	require.NoError(t, err)
	assert.JSONEq(t, `{"products":[{"id":"o"}]}`, string(s))
	f, err := FeaturedProducts(ctx, rc)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"f"}]`, string(f))
}

func TestProducts_HTTPDoError(t *testing.T) {
	t.Parallel()
	rc := failingClient()
	ctx := context.Background()
	_, err := ListProducts(ctx, rc, &seqBuster{}, nil)
	require.Error(t, err)
	kind, _ := apierrors.KindOf(err)
	assert.Equal(t, apierrors.Transport, kind)
	_, err = GetProduct(ctx, rc, "p1")
	assert.Error(t, err)
	_, err = FeaturedProducts(ctx, rc)
	assert.Error(t, err)
}

func TestProducts_CtxCanceled(t *testing.T) {
	t.Parallel()
	var called atomic.Bool
	rc := newServer(t, func(w http.ResponseWriter, r *http.Request) { called.Store(true) })
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ListProducts(ctx, rc, &seqBuster{}, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called.Load())
}
