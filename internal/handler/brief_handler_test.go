package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"xraynews/internal/brief"
	"xraynews/internal/handler"
	"xraynews/internal/model"
	"xraynews/internal/store"
	"xraynews/internal/store/mock"
)

type fakeGenerator struct {
	force  bool
	called bool
	result brief.GenerateResult
	err    error
}

func (f *fakeGenerator) Generate(_ context.Context, force bool) (brief.GenerateResult, error) {
	f.called = true
	f.force = force
	return f.result, f.err
}

func storedBrief() model.Brief {
	return model.Brief{
		Slug:        "2026-01-02",
		Date:        "2026-01-02",
		Title:       "Markets hold their breath",
		Summary:     "A quiet session.",
		ArticleHTML: "<p>Stocks drifted.</p>",
		Author:      "XRayCrypto News",
		Canonical:   "https://xraycrypto.io/marketbrief/2026-01-02",
	}
}

func briefContext(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestBriefHandler_FeedIndex(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	latest := "2026-01-02"
	mockStore := mock.NewMockBriefStore(ctrl)
	mockStore.EXPECT().GetIndex(gomock.Any()).Return(model.FeedIndex{
		Latest: &latest,
		Items:  []model.FeedIndexItem{{Slug: latest, Title: "Brief", Date: latest}},
	}, nil)

	c, rec := briefContext(http.MethodGet, "/marketbrief/feed/index.json")
	h := handler.NewBriefHandler(mockStore, &fakeGenerator{})

	require.NoError(t, h.FeedIndex(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var index model.FeedIndex
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &index))
	require.Equal(t, latest, *index.Latest)
	require.Len(t, index.Items, 1)
}

func TestBriefHandler_BriefFile_JSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mock.NewMockBriefStore(ctrl)
	mockStore.EXPECT().GetBrief(gomock.Any(), "2026-01-02").Return(storedBrief(), nil)

	c, rec := briefContext(http.MethodGet, "/marketbrief/briefs/2026-01-02.json")
	c.SetParamNames("file")
	c.SetParamValues("2026-01-02.json")
	h := handler.NewBriefHandler(mockStore, &fakeGenerator{})

	require.NoError(t, h.BriefFile(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var b model.Brief
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	require.Equal(t, "2026-01-02", b.Slug)
}

func TestBriefHandler_BriefFile_RequiresJSONSuffix(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mock.NewMockBriefStore(ctrl)

	c, rec := briefContext(http.MethodGet, "/marketbrief/briefs/2026-01-02")
	c.SetParamNames("file")
	c.SetParamValues("2026-01-02")
	h := handler.NewBriefHandler(mockStore, &fakeGenerator{})

	require.NoError(t, h.BriefFile(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBriefHandler_BySlug_JSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mock.NewMockBriefStore(ctrl)
	mockStore.EXPECT().GetBrief(gomock.Any(), "2026-01-02").Return(storedBrief(), nil)

	c, rec := briefContext(http.MethodGet, "/marketbrief/2026-01-02.json")
	c.SetParamNames("slug")
	c.SetParamValues("2026-01-02.json")
	h := handler.NewBriefHandler(mockStore, &fakeGenerator{})

	require.NoError(t, h.BySlug(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}

func TestBriefHandler_BySlug_HTMLPermalink(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mock.NewMockBriefStore(ctrl)
	mockStore.EXPECT().GetBrief(gomock.Any(), "2026-01-02").Return(storedBrief(), nil)

	c, rec := briefContext(http.MethodGet, "/marketbrief/2026-01-02")
	c.SetParamNames("slug")
	c.SetParamValues("2026-01-02")
	h := handler.NewBriefHandler(mockStore, &fakeGenerator{})

	require.NoError(t, h.BySlug(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	require.Equal(t, "public, max-age=120", rec.Header().Get("Cache-Control"))
	require.Contains(t, rec.Body.String(), "<h1>Markets hold their breath</h1>")
}

func TestBriefHandler_BySlug_NotADate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mock.NewMockBriefStore(ctrl)

	c, rec := briefContext(http.MethodGet, "/marketbrief/whatever")
	c.SetParamNames("slug")
	c.SetParamValues("whatever")
	h := handler.NewBriefHandler(mockStore, &fakeGenerator{})

	require.NoError(t, h.BySlug(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBriefHandler_BySlug_MissingBrief(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mock.NewMockBriefStore(ctrl)
	mockStore.EXPECT().GetBrief(gomock.Any(), "1999-12-31").Return(model.Brief{}, store.ErrNotFound)

	c, rec := briefContext(http.MethodGet, "/marketbrief/1999-12-31")
	c.SetParamNames("slug")
	c.SetParamValues("1999-12-31")
	h := handler.NewBriefHandler(mockStore, &fakeGenerator{})

	require.NoError(t, h.BySlug(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Not found: 1999-12-31", rec.Body.String())
}

func TestBriefHandler_Latest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	latest := "2026-01-02"
	mockStore := mock.NewMockBriefStore(ctrl)
	mockStore.EXPECT().GetIndex(gomock.Any()).Return(model.FeedIndex{Latest: &latest}, nil)
	mockStore.EXPECT().GetBrief(gomock.Any(), latest).Return(storedBrief(), nil)

	c, rec := briefContext(http.MethodGet, "/marketbrief/latest")
	h := handler.NewBriefHandler(mockStore, &fakeGenerator{})

	require.NoError(t, h.Latest(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Markets hold their breath")
}

func TestBriefHandler_Latest_NoneGenerated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mock.NewMockBriefStore(ctrl)
	mockStore.EXPECT().GetIndex(gomock.Any()).Return(model.FeedIndex{Items: []model.FeedIndexItem{}}, nil)

	c, rec := briefContext(http.MethodGet, "/marketbrief/latest")
	h := handler.NewBriefHandler(mockStore, &fakeGenerator{})

	require.NoError(t, h.Latest(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Not found: no-latest", rec.Body.String())
}

func TestBriefHandler_Generate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gen := &fakeGenerator{result: brief.GenerateResult{
		Slug: "2026-01-02",
		Keys: []string{"brief:2026-01-02", "feed:index"},
	}}
	mockStore := mock.NewMockBriefStore(ctrl)

	c, rec := briefContext(http.MethodPost, "/marketbrief/generate")
	h := handler.NewBriefHandler(mockStore, gen)

	require.NoError(t, h.Generate(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, gen.called)
	require.False(t, gen.force)
	require.JSONEq(t, `{"ok":true,"slug":"2026-01-02","keys":["brief:2026-01-02","feed:index"]}`, rec.Body.String())
}

func TestBriefHandler_Generate_Force(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gen := &fakeGenerator{result: brief.GenerateResult{Slug: "2026-01-02"}}
	mockStore := mock.NewMockBriefStore(ctrl)

	c, _ := briefContext(http.MethodPost, "/marketbrief/generate?force=1")
	h := handler.NewBriefHandler(mockStore, gen)

	require.NoError(t, h.Generate(c))
	require.True(t, gen.force)

	gen.force = false
	c, _ = briefContext(http.MethodPost, "/marketbrief/generate?force=true")
	require.NoError(t, h.Generate(c))
	require.True(t, gen.force)
}

func TestBriefHandler_Generate_Failure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gen := &fakeGenerator{err: errors.New("store unavailable")}
	mockStore := mock.NewMockBriefStore(ctrl)

	c, rec := briefContext(http.MethodPost, "/marketbrief/generate")
	h := handler.NewBriefHandler(mockStore, gen)

	require.NoError(t, h.Generate(c))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"ok":false,"error":"store unavailable"}`, rec.Body.String())
}
