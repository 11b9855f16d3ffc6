package handler

import (
	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Error string `json:"error"`
}

// Error returns a JSON error response with the given status and message.
func Error(c echo.Context, status int, message string) error {
	return c.JSON(status, errorResponse{Error: message})
}

// PlainError returns a plain-text error body, used by the proxy and
// permalink routes for wire compatibility.
func PlainError(c echo.Context, status int, message string) error {
	return c.String(status, message)
}
