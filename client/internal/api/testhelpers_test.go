package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/go-resty/resty/v2"
)

// errRT is an http.RoundTripper that always returns an error (simulates network failure).
type errRT struct{}

func (e *errRT) RoundTrip(*http.Request) (*http.Response, error) { return nil, fmt.Errorf("boom") }

// seqBuster hands out 1000, 1001, ...
type seqBuster struct{ n atomic.Int64 }

func (s *seqBuster) Next() int64 { return 1000 + s.n.Add(1) - 1 }

// newServer starts a backend mounted under /api and returns a resty client for it.
func newServer(t *testing.T, h http.HandlerFunc) *resty.Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.Handle("/api/", h)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return resty.New().SetBaseURL(srv.URL + "/api")
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func failingClient() *resty.Client {
	return resty.NewWithClient(&http.Client{Transport: &errRT{}}).SetBaseURL("http://example.com/api")
}
