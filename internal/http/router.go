package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"xraynews/internal/handler"
	"xraynews/internal/metrics"
)

// NewRouter assembles the echo instance. Route registration order
// matters only for the catch-all origin passthrough, which must come
// last.
func NewRouter(
	healthHandler *handler.HealthHandler,
	proxyHandler *handler.ProxyHandler,
	aggregateHandler *handler.AggregateHandler,
	briefHandler *handler.BriefHandler,
	originHandler *handler.OriginHandler,
	gatherer prometheus.Gatherer,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(RequestLoggerMiddleware())
	e.Use(CORSMiddleware())

	healthHandler.RegisterRoutes(e)
	proxyHandler.RegisterRoutes(e)
	aggregateHandler.RegisterRoutes(e)
	briefHandler.RegisterRoutes(e)

	e.GET("/metrics", echo.WrapHandler(metrics.Handler(gatherer)))

	originHandler.RegisterRoutes(e)

	return e
}
