package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"xraynews/internal/brief"
	"xraynews/internal/logger"
	"xraynews/internal/model"
	"xraynews/internal/store"
)

// OriginHandler is the catch-all: requests matching no API route are
// proxied from the fronted site, and HTML pages get the latest brief
// streamed into their placeholder element. The injection path never
// errors visibly; any failure passes the page through unmodified.
type OriginHandler struct {
	client *http.Client
	origin string
	store  store.BriefStore
}

func NewOriginHandler(client *http.Client, origin string, briefStore store.BriefStore) *OriginHandler {
	return &OriginHandler{
		client: client,
		origin: strings.TrimRight(origin, "/"),
		store:  briefStore,
	}
}

func (h *OriginHandler) RegisterRoutes(e *echo.Echo) {
	e.Any("/*", h.Passthrough)
}

func (h *OriginHandler) Passthrough(c echo.Context) error {
	if h.origin == "" {
		return PlainError(c, http.StatusNotFound, "Not found")
	}

	req := c.Request()
	target := h.origin + req.URL.Path
	if req.URL.RawQuery != "" {
		target += "?" + req.URL.RawQuery
	}

	upstream, err := http.NewRequestWithContext(req.Context(), req.Method, target, req.Body)
	if err != nil {
		return PlainError(c, http.StatusBadGateway, "Origin fetch failed")
	}
	copyHeader(upstream.Header, req.Header, "Accept", "Accept-Language", "User-Agent", "Content-Type")

	resp, err := h.client.Do(upstream)
	if err != nil {
		logger.Warn("origin fetch failed", "module", "handler", "action", "fetch", "resource", "origin", "result", "failed", "path", req.URL.Path, "error", err)
		return PlainError(c, http.StatusBadGateway, "Origin fetch failed")
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	res := c.Response()
	copyHeader(res.Header(), resp.Header, "Content-Type", "Cache-Control", "Last-Modified", "ETag")

	if !strings.Contains(contentType, "text/html") {
		res.WriteHeader(resp.StatusCode)
		_, err = io.Copy(res, resp.Body)
		return err
	}

	latest, ok := h.latestBrief(c)
	if !ok {
		res.WriteHeader(resp.StatusCode)
		_, err = io.Copy(res, resp.Body)
		return err
	}

	// Content-Length no longer matches once the body is rewritten.
	res.Header().Del("Content-Length")
	res.WriteHeader(resp.StatusCode)
	if err := brief.Inject(res, resp.Body, latest); err != nil {
		// Headers are already on the wire; log and end the stream.
		logger.Warn("brief injection failed", "module", "handler", "action", "inject", "resource", "origin", "result", "failed", "path", req.URL.Path, "error", err)
	}
	return nil
}

func (h *OriginHandler) latestBrief(c echo.Context) (model.Brief, bool) {
	ctx := c.Request().Context()
	index, err := h.store.GetIndex(ctx)
	if err != nil || index.Latest == nil {
		return model.Brief{}, false
	}
	b, err := h.store.GetBrief(ctx, *index.Latest)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logger.Warn("latest brief read failed", "module", "handler", "action", "get", "resource", "brief", "result", "failed", "error", err)
		}
		return model.Brief{}, false
	}
	return b, true
}

func copyHeader(dst, src http.Header, keys ...string) {
	for _, key := range keys {
		if v := src.Get(key); v != "" {
			dst.Set(key, v)
		}
	}
}
