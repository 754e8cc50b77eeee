package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSONAppliesHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "verdict-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "/quote", r.URL.Path)
		w.Write([]byte(`{"price": 101.5}`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithHeader("User-Agent", "verdict-test"))

	var out struct {
		Price float64 `json:"price"`
	}
	require.NoError(t, c.GetJSON(context.Background(), "/quote", &out, nil))
	assert.Equal(t, 101.5, out.Price)
}

func TestDoWithRetryRecoversFromServerError(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`ok`))
	}))
	defer srv.Close()

	c := NewClient()
	resp, err := c.DoWithRetry(NewRequest(http.MethodGet, srv.URL), &RetryConfig{MaxAttempts: 3, InitialWait: time.Millisecond})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.String())
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestDoWithRetryStopsOnClientError(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient().DoWithRetry(NewRequest(http.MethodGet, srv.URL), &RetryConfig{MaxAttempts: 3, InitialWait: time.Millisecond})

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestDoWithRetryHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := NewClient().DoWithRetry(
		NewRequest(http.MethodGet, srv.URL).WithContext(ctx),
		&RetryConfig{MaxAttempts: 5, InitialWait: time.Second},
	)

	require.Error(t, err)
	assert.Less(t, time.Since(start), 900*time.Millisecond)
}

func TestHTTPErrorTruncatesBody(t *testing.T) {
	long := make([]byte, 500)
	for i := range long {
		long[i] = 'x'
	}
	err := &HTTPError{StatusCode: 500, Body: string(long)}
	assert.LessOrEqual(t, len(err.Error()), 220)
	assert.True(t, err.Retryable())
	assert.False(t, (&HTTPError{StatusCode: 403}).Retryable())
}
