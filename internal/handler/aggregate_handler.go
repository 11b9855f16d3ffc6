package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"xraynews/internal/model"
)

// Aggregator is the engine surface the handler consumes.
type Aggregator interface {
	Aggregate(ctx context.Context, groups []string, query string) model.AggregateResult
}

// AggregateHandler serves the ranked news aggregation endpoint.
type AggregateHandler struct {
	engine Aggregator
}

type itemResponse struct {
	Title  string `json:"title"`
	Link   string `json:"link"`
	Date   int64  `json:"date"`
	Source string `json:"source"`
}

type aggregateResponse struct {
	Count  int            `json:"count"`
	Latest []itemResponse `json:"latest"`
	Top    []itemResponse `json:"top"`
}

func NewAggregateHandler(engine Aggregator) *AggregateHandler {
	return &AggregateHandler{engine: engine}
}

func (h *AggregateHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/aggregate", h.Aggregate)
}

// Aggregate handles /aggregate?sources=crypto,stocks,macro&q=BTC.
// sources defaults to crypto; unknown group names are ignored by the
// engine.
func (h *AggregateHandler) Aggregate(c echo.Context) error {
	sourcesParam := strings.ToLower(c.QueryParam("sources"))
	if sourcesParam == "" {
		sourcesParam = "crypto"
	}
	var groups []string
	for _, name := range strings.Split(sourcesParam, ",") {
		if name = strings.TrimSpace(name); name != "" {
			groups = append(groups, name)
		}
	}
	query := strings.TrimSpace(c.QueryParam("q"))

	result := h.engine.Aggregate(c.Request().Context(), groups, query)

	return c.JSON(http.StatusOK, aggregateResponse{
		Count:  result.Count,
		Latest: toItemResponses(result.Latest),
		Top:    toItemResponses(result.Top),
	})
}

func toItemResponses(items []model.FeedItem) []itemResponse {
	out := make([]itemResponse, len(items))
	for i, item := range items {
		out[i] = itemResponse{
			Title:  item.Title,
			Link:   item.Link,
			Date:   item.PublishedAt.UnixMilli(),
			Source: item.Source,
		}
	}
	return out
}
