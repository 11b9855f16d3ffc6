package handler

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"

	"xraynews/internal/brief"
	"xraynews/internal/logger"
	"xraynews/internal/model"
	"xraynews/internal/store"
)

var slugPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Generator triggers a brief generation run.
type Generator interface {
	Generate(ctx context.Context, force bool) (brief.GenerateResult, error)
}

// BriefHandler serves the stored market briefs: the feed index, raw
// brief JSON, rendered HTML permalinks and the generation trigger.
type BriefHandler struct {
	store     store.BriefStore
	generator Generator
}

type generateResponse struct {
	OK   bool     `json:"ok"`
	Slug string   `json:"slug,omitempty"`
	Keys []string `json:"keys,omitempty"`
}

type generateErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func NewBriefHandler(briefStore store.BriefStore, generator Generator) *BriefHandler {
	return &BriefHandler{store: briefStore, generator: generator}
}

func (h *BriefHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/marketbrief/feed/index.json", h.FeedIndex)
	e.GET("/marketbrief/briefs/:file", h.BriefFile)
	e.GET("/marketbrief/latest", h.Latest)
	e.GET("/marketbrief/:slug", h.BySlug)
	e.POST("/marketbrief/generate", h.Generate)
}

// FeedIndex returns the rolling brief index; an empty index when
// nothing has been generated yet.
func (h *BriefHandler) FeedIndex(c echo.Context) error {
	index, err := h.store.GetIndex(c.Request().Context())
	if err != nil {
		logger.Error("feed index read failed", "module", "handler", "action", "get", "resource", "index", "result", "failed", "error", err)
		return Error(c, http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, index)
}

// BriefFile serves /marketbrief/briefs/<slug>.json.
func (h *BriefHandler) BriefFile(c echo.Context) error {
	file := c.Param("file")
	if !strings.HasSuffix(file, ".json") {
		return Error(c, http.StatusNotFound, "not found")
	}
	return h.briefJSON(c, strings.TrimSuffix(file, ".json"))
}

// BySlug serves both /marketbrief/<slug>.json and the rendered
// /marketbrief/<YYYY-MM-DD> permalink.
func (h *BriefHandler) BySlug(c echo.Context) error {
	slug := c.Param("slug")
	if strings.HasSuffix(slug, ".json") {
		return h.briefJSON(c, strings.TrimSuffix(slug, ".json"))
	}
	if slugPattern.MatchString(slug) {
		return h.renderBrief(c, slug)
	}
	return PlainError(c, http.StatusNotFound, "Not found")
}

// Latest renders the most recent brief as HTML.
func (h *BriefHandler) Latest(c echo.Context) error {
	index, err := h.store.GetIndex(c.Request().Context())
	if err != nil || index.Latest == nil {
		return PlainError(c, http.StatusNotFound, "Not found: no-latest")
	}
	return h.renderBrief(c, *index.Latest)
}

// Generate triggers brief generation. It is POST-gated because it
// mutates the store; pass force=1 to regenerate today's brief.
func (h *BriefHandler) Generate(c echo.Context) error {
	force := c.QueryParam("force") == "1" || c.QueryParam("force") == "true"

	result, err := h.generator.Generate(c.Request().Context(), force)
	if err != nil {
		logger.Error("brief generation failed", "module", "handler", "action", "generate", "resource", "brief", "result", "failed", "error", err)
		return c.JSON(http.StatusInternalServerError, generateErrorResponse{OK: false, Error: err.Error()})
	}
	return c.JSON(http.StatusOK, generateResponse{OK: true, Slug: result.Slug, Keys: result.Keys})
}

func (h *BriefHandler) briefJSON(c echo.Context, slug string) error {
	b, err := h.getBrief(c, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Error(c, http.StatusNotFound, "not found")
		}
		return Error(c, http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, b)
}

func (h *BriefHandler) renderBrief(c echo.Context, slug string) error {
	b, err := h.getBrief(c, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return PlainError(c, http.StatusNotFound, "Not found: "+slug)
		}
		return PlainError(c, http.StatusInternalServerError, "Internal error")
	}

	page, err := brief.Render(b)
	if err != nil {
		logger.Error("brief render failed", "module", "handler", "action", "render", "resource", "brief", "result", "failed", "slug", slug, "error", err)
		return PlainError(c, http.StatusInternalServerError, "Internal error")
	}

	// Permalinks are safe to cache briefly, unlike the API routes.
	c.Response().Header().Set("Cache-Control", "public, max-age=120")
	return c.HTML(http.StatusOK, page)
}

func (h *BriefHandler) getBrief(c echo.Context, slug string) (model.Brief, error) {
	b, err := h.store.GetBrief(c.Request().Context(), slug)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		logger.Error("brief read failed", "module", "handler", "action", "get", "resource", "brief", "result", "failed", "slug", slug, "error", err)
	}
	return b, err
}
