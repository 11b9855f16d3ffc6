package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"xraynews/internal/logger"
)

// CORSMiddleware applies the permissive CORS surface every API
// consumer of this service expects, answers OPTIONS preflights with
// 204, and defaults responses to no-cache. Handlers that want caching
// (the HTML permalink) override Cache-Control afterwards.
func CORSMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("Access-Control-Allow-Origin", "*")
			h.Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			h.Set("Cache-Control", "no-cache")

			if c.Request().Method == http.MethodOptions {
				h.Set("Access-Control-Allow-Headers", "Content-Type,User-Agent,Authorization")
				h.Set("Access-Control-Max-Age", "86400")
				return c.NoContent(http.StatusNoContent)
			}

			return next(c)
		}
	}
}

// RequestLoggerMiddleware logs HTTP requests through the structured
// logger, at a level matching the response class.
func RequestLoggerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status
			args := []any{
				"module", "http",
				"action", "request",
				"resource", "http",
				"method", req.Method,
				"path", req.URL.Path,
				"status_code", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_ip", c.RealIP(),
			}

			switch {
			case status >= 500:
				logger.Error("http request", append(args, "result", "failed")...)
			case status >= 400:
				logger.Warn("http request", append(args, "result", "failed")...)
			default:
				logger.Debug("http request", append(args, "result", "ok")...)
			}

			return nil
		}
	}
}
