package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"xraynews/internal/feed"
	"xraynews/internal/logger"
)

// ProxyHandler exposes the raw allowlisted feed proxy at /fetch, for
// browser clients that cannot reach the upstream feeds directly.
type ProxyHandler struct {
	proxy *feed.Proxy
}

func NewProxyHandler(proxy *feed.Proxy) *ProxyHandler {
	return &ProxyHandler{proxy: proxy}
}

func (h *ProxyHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/fetch", h.Fetch)
}

func (h *ProxyHandler) Fetch(c echo.Context) error {
	result, err := h.proxy.Fetch(c.Request().Context(), c.QueryParam("url"))
	if err != nil {
		return h.handleProxyError(c, err)
	}
	return c.Blob(result.Status, result.ContentType, result.Body)
}

func (h *ProxyHandler) handleProxyError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, feed.ErrMissingURL):
		return PlainError(c, http.StatusBadRequest, "Missing url")
	case errors.Is(err, feed.ErrInvalidURL):
		return PlainError(c, http.StatusBadRequest, "Invalid url")
	case errors.Is(err, feed.ErrScheme):
		return PlainError(c, http.StatusBadRequest, "Only http(s) allowed")
	case errors.Is(err, feed.ErrHostNotAllowed):
		return PlainError(c, http.StatusForbidden, "Host not allowed")
	case errors.Is(err, feed.ErrUpstream):
		return PlainError(c, http.StatusBadGateway, "Upstream fetch failed")
	default:
		logger.Error("proxy unexpected error", "module", "handler", "action", "fetch", "resource", "proxy", "result", "failed", "error", err)
		return PlainError(c, http.StatusInternalServerError, "Internal error")
	}
}
