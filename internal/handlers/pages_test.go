package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	sitecontent "github.com/plettj/lichess.ai/content"
	"github.com/plettj/lichess.ai/internal/content"
	"github.com/plettj/lichess.ai/internal/observability"
	"github.com/plettj/lichess.ai/internal/testutil"
	"github.com/plettj/lichess.ai/internal/view"
)

func newPages(t *testing.T, renderer *view.Renderer) *Pages {
	t.Helper()
	site, err := content.Load(sitecontent.FS())
	require.NoError(t, err)
	return NewPages(renderer, site, "")
}

func embeddedRenderer(t *testing.T) *view.Renderer {
	t.Helper()
	r, err := view.NewRenderer(view.TemplatesFS(), false)
	require.NoError(t, err)
	return r
}

func TestHomeHandlerRendersPage(t *testing.T) {
	pages := newPages(t, embeddedRenderer(t))

	rec := httptest.NewRecorder()
	pages.Home(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	require.Equal(t, "Lichess.ai", doc.Find("h1").Text())
}

func TestNotFoundHandlerUsesLayout(t *testing.T) {
	pages := newPages(t, embeddedRenderer(t))

	rec := httptest.NewRecorder()
	pages.NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	require.Equal(t, "Page not found | Lichess.ai", doc.Find("title").Text())
	require.Equal(t, "Page not found", doc.Find("h1").Text())
	require.Equal(t, 1, doc.Find("#toploader").Length())
	robots, _ := doc.Find(`meta[name="robots"]`).Attr("content")
	require.Equal(t, "noindex", robots)
}

func TestRenderFailureIsLoggedAndAnswered500(t *testing.T) {
	broken, err := view.NewRenderer(fstest.MapFS{
		"layout.tmpl": {Data: []byte(`{{define "layout"}}{{.Content}}{{end}}`)},
	}, false)
	require.NoError(t, err)
	pages := newPages(t, broken)

	core, logs := observer.New(zapcore.InfoLevel)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(observability.WithLogger(context.Background(), zap.New(core)))
	rec := httptest.NewRecorder()
	pages.Home(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "home")
	require.Equal(t, 1, logs.FilterMessage("render page").Len())
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}
