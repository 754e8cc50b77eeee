package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// APIResponse is the envelope for errors and auxiliary endpoints.
type APIResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func DataResponse(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, APIResponse{
		Status:  statusCode,
		Message: http.StatusText(statusCode),
		Data:    data,
	})
}

func BadRequestResponse(c echo.Context, data any) error {
	return DataResponse(c, http.StatusBadRequest, data)
}

func GatewayTimeoutResponse(c echo.Context) error {
	return DataResponse(c, http.StatusGatewayTimeout, "analysis timed out")
}

func InternalServerErrorResponse(c echo.Context) error {
	return DataResponse(c, http.StatusInternalServerError, "Something went wrong")
}
