package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"xraynews/internal/config"
)

type HealthHandler struct{}

type healthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Time    string `json:"time"`
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
}

func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{
		OK:      true,
		Service: config.AppName,
		Time:    time.Now().UTC().Format(time.RFC3339),
	})
}
