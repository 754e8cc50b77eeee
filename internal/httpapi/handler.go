// Package httpapi serves the verdict pipeline over HTTP.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"stock-verdict/internal/interfaces"
	"stock-verdict/internal/logger"
	"stock-verdict/internal/verdict"
)

// Analyzer produces a report for one ticker.
type Analyzer interface {
	Analyze(ctx context.Context, ticker string, documentURLs []string) (*verdict.Report, error)
}

// AnalyzeRequest is bound from the JSON body, the :ticker path segment or
// the ?ticker= query.
type AnalyzeRequest struct {
	Ticker    string   `json:"ticker" param:"ticker" query:"ticker" validate:"required,max=20,ticker"`
	Documents []string `json:"documents" validate:"max=5,dive,url"`
}

func (r *AnalyzeRequest) Normalize() {
	r.Ticker = strings.ToUpper(strings.TrimSpace(r.Ticker))
}

// HealthResponse reports liveness and the active LLM provider.
type HealthResponse struct {
	Status        string `json:"status"`
	Service       string `json:"service"`
	Version       string `json:"version"`
	Provider      string `json:"provider"`
	LLMConfigured bool   `json:"llm_configured"`
}

type Handler struct {
	analyzer Analyzer
	provider interfaces.Provider
	version  string
	timeout  time.Duration
}

func NewHandler(analyzer Analyzer, provider interfaces.Provider, version string, timeout time.Duration) *Handler {
	return &Handler{
		analyzer: analyzer,
		provider: provider,
		version:  version,
		timeout:  timeout,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/health", h.Health)
	g.POST("/analyze", h.Analyze)
	g.GET("/analyze", h.Analyze)
	g.GET("/analyze/:ticker", h.Analyze)
}

func (h *Handler) Health(c echo.Context) error {
	resp := HealthResponse{
		Status:  "healthy",
		Service: "stock-verdict",
		Version: h.version,
	}
	if h.provider != nil {
		resp.Provider = h.provider.Name()
		resp.LLMConfigured = h.provider.Configured()
	}
	return c.JSON(http.StatusOK, resp)
}

// Analyze runs the pipeline and returns the report as-is.
func (h *Handler) Analyze(c echo.Context) error {
	req := &AnalyzeRequest{}
	if verr := ReadAndValidateRequest(c, req); verr != nil {
		return BadRequestResponse(c, verr)
	}

	ctx := c.Request().Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	report, err := h.analyzer.Analyze(ctx, req.Ticker, req.Documents)
	switch {
	case errors.Is(err, verdict.ErrEmptyTicker):
		return BadRequestResponse(c, []ValidationError{{Code: "ERR_REQUIRED", Field: "Ticker", Message: err.Error()}})
	case err != nil:
		logger.ErrorWithErr(ctx, "Analyze failed", err, "ticker", req.Ticker)
		return InternalServerErrorResponse(c)
	case ctx.Err() != nil && errors.Is(ctx.Err(), context.DeadlineExceeded):
		logger.Warn(ctx, "Analyze exceeded request timeout", "ticker", req.Ticker, "timeout", h.timeout)
	}

	return c.JSON(http.StatusOK, report)
}
