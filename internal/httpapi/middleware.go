package httpapi

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/labstack/echo/v4"

	"stock-verdict/internal/logger"
	"stock-verdict/internal/trace"
)

// Recover turns handler panics into a 500 response.
func Recover() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					perr, ok := r.(error)
					if !ok {
						perr = fmt.Errorf("%v", r)
					}
					logger.ErrorWithErr(c.Request().Context(), "Handler panic", perr, "stack", string(debug.Stack()))
					err = c.JSON(http.StatusInternalServerError, APIResponse{
						Status:  http.StatusInternalServerError,
						Message: "Internal Server Error",
					})
				}
			}()
			return next(c)
		}
	}
}

// RequestLogging opens a span per request and logs method, path, status and latency.
func RequestLogging() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx, span := trace.StartSpan(req.Context(), req.Method+" "+c.Path())
			defer span.End()
			c.SetRequest(req.WithContext(ctx))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			logger.Info(ctx, "HTTP request",
				"method", req.Method,
				"path", req.URL.Path,
				"remote", c.RealIP(),
				"status", c.Response().Status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
			return nil
		}
	}
}
