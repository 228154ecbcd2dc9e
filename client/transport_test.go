package client

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain_Order(t *testing.T) {
	t.Parallel()
	var order []string
	mark := func(name string) Middleware {
		return func(next http.RoundTripper) http.RoundTripper {
			return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
				order = append(order, name)
				return next.RoundTrip(r)
			})
		}
	}
	base := RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		order = append(order, "base")
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
	})

	rt := Chain(base, mark("a"), mark("b"))
	req, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)
	_, err := rt.RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "base"}, order)
}

func TestRequestID_KeepsCallerValue(t *testing.T) {
	t.Parallel()
	var got string
	base := RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		got = r.Header.Get(RequestIDHeader)
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
	})
	rt := Chain(base, requestIDMiddleware())

	req, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)
	req.Header.Set(RequestIDHeader, "abc")
	_, err := rt.RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, "abc", got)

	req2, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)
	_, err = rt.RoundTrip(req2)
	require.NoError(t, err)
	assert.Len(t, got, 36)
	assert.Empty(t, req2.Header.Get(RequestIDHeader), "original request must not be mutated")
}

func TestStamper_StrictlyIncreasing(t *testing.T) {
	t.Parallel()
	fixed := time.UnixMilli(5000)
	s := newStamper(func() time.Time { return fixed })
	assert.Equal(t, int64(5000), s.Next())
	assert.Equal(t, int64(5001), s.Next())
	assert.Equal(t, int64(5002), s.Next())
}

func TestStamper_Concurrent(t *testing.T) {
	t.Parallel()
	s := newStamper(time.Now)
	const n = 200
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[int64]bool, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v := s.Next()
			mu.Lock()
			seen[v] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, seen, n)
}
