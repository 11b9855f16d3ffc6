package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	transport "xraynews/internal/http"
)

func runMiddleware(t *testing.T, method string, next echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/aggregate", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := transport.CORSMiddleware()
	require.NoError(t, mw(next)(c))
	return rec
}

func TestCORSMiddleware_SetsHeaders(t *testing.T) {
	rec := runMiddleware(t, http.MethodGet, func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "GET,POST,OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	require.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	require.Equal(t, "ok", rec.Body.String())
}

func TestCORSMiddleware_PreflightShortCircuits(t *testing.T) {
	nextCalled := false
	rec := runMiddleware(t, http.MethodOptions, func(c echo.Context) error {
		nextCalled = true
		return nil
	})

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.False(t, nextCalled)
	require.Equal(t, "Content-Type,User-Agent,Authorization", rec.Header().Get("Access-Control-Allow-Headers"))
	require.Equal(t, "86400", rec.Header().Get("Access-Control-Max-Age"))
}

func TestCORSMiddleware_HandlerMayOverrideCacheControl(t *testing.T) {
	rec := runMiddleware(t, http.MethodGet, func(c echo.Context) error {
		c.Response().Header().Set("Cache-Control", "public, max-age=120")
		return c.String(http.StatusOK, "ok")
	})

	require.Equal(t, "public, max-age=120", rec.Header().Get("Cache-Control"))
}
