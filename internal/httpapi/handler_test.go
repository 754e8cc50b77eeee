package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-verdict/internal/llm/noop"
	"stock-verdict/internal/metrics"
	"stock-verdict/internal/types"
	"stock-verdict/internal/verdict"
)

type fakeAnalyzer struct {
	ticker string
	docs   []string
	calls  int
	err    error
	panic  bool
}

func (f *fakeAnalyzer) Analyze(_ context.Context, ticker string, docs []string) (*verdict.Report, error) {
	if f.panic {
		panic("boom")
	}
	f.calls++
	f.ticker = ticker
	f.docs = docs
	if f.err != nil {
		return nil, f.err
	}
	return &verdict.Report{
		RequestID: "req-1",
		Ticker:    ticker,
		Verdict:   types.Verdict{Signal: types.Buy, Confidence: 72, Reasons: []string{"a"}},
	}, nil
}

func newTestServer(a Analyzer, reg *prometheus.Registry) *Server {
	return NewServer(":0", NewHandler(a, noop.New(), "test", time.Second), reg)
}

func serve(s *Server, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	return rec
}

func TestAnalyzePost(t *testing.T) {
	a := &fakeAnalyzer{}
	s := newTestServer(a, nil)

	rec := serve(s, http.MethodPost, "/api/analyze", `{"ticker":" reliance.ns ","documents":["https://example.com/ar.pdf"]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	analysis, ok := body["analysis"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "BUY", analysis["signal"])
	assert.Equal(t, "RELIANCE.NS", a.ticker)
	assert.Equal(t, []string{"https://example.com/ar.pdf"}, a.docs)
}

func TestAnalyzeGetVariants(t *testing.T) {
	a := &fakeAnalyzer{}
	s := newTestServer(a, nil)

	rec := serve(s, http.MethodGet, "/api/analyze/tcs.ns", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "TCS.NS", a.ticker)

	rec = serve(s, http.MethodGet, "/api/analyze?ticker=aapl", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "AAPL", a.ticker)
	assert.Equal(t, 2, a.calls)
}

func TestAnalyzeRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{"empty ticker", `{"ticker":""}`, "ERR_REQUIRED"},
		{"blank ticker", `{"ticker":"   "}`, "ERR_REQUIRED"},
		{"too long", `{"ticker":"ABCDEFGHIJKLMNOPQRSTUVWXYZ"}`, "ERR_MAX"},
		{"bad characters", `{"ticker":"TCS NS"}`, "ERR_TICKER"},
		{"bad document url", `{"ticker":"TCS.NS","documents":["not a url"]}`, "ERR_URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &fakeAnalyzer{}
			rec := serve(newTestServer(a, nil), http.MethodPost, "/api/analyze", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var resp struct {
				Status int               `json:"status"`
				Data   []ValidationError `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.NotEmpty(t, resp.Data)
			assert.Equal(t, tt.code, resp.Data[0].Code)
			assert.Zero(t, a.calls)
		})
	}
}

func TestAnalyzeMalformedJSON(t *testing.T) {
	rec := serve(newTestServer(&fakeAnalyzer{}, nil), http.MethodPost, "/api/analyze", `{"ticker":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeServiceError(t *testing.T) {
	a := &fakeAnalyzer{err: verdict.ErrEmptyTicker}
	rec := serve(newTestServer(a, nil), http.MethodGet, "/api/analyze/TCS.NS", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	a = &fakeAnalyzer{err: context.Canceled}
	rec = serve(newTestServer(a, nil), http.MethodGet, "/api/analyze/TCS.NS", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRecoverFromPanic(t *testing.T) {
	rec := serve(newTestServer(&fakeAnalyzer{panic: true}, nil), http.MethodGet, "/api/analyze/TCS.NS", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHealth(t *testing.T) {
	rec := serve(newTestServer(&fakeAnalyzer{}, nil), http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var h HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &h))
	assert.Equal(t, "healthy", h.Status)
	assert.Equal(t, "none", h.Provider)
	assert.False(t, h.LLMConfigured)
	assert.Equal(t, "test", h.Version)
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.New(reg).RecordUnavailable("news")

	rec := serve(newTestServer(&fakeAnalyzer{}, reg), http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `verdict_source_unavailable_total{source="news"} 1`)
}
