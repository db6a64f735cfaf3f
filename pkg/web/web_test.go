package web_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/fraudguard/pkg/web"
)

var (
	home    = web.ViewDef{Route: "/{$}", Template: "home.html", Title: "Home"}
	missing = web.ViewDef{Route: "/", Template: "missing.html", Title: "Not Found"}
)

func templates(t *testing.T) *web.TemplateSet {
	t.Helper()
	fsys := fstest.MapFS{
		"layouts/app.html":   {Data: []byte(`{{ define "app" }}<title>{{ .Title }}</title><a href="{{ .BasePath }}/">home</a>{{ template "content" . }}{{ end }}`)},
		"views/home.html":    {Data: []byte(`{{ define "content" }}<p>{{ .Data }}</p>{{ end }}`)},
		"views/missing.html": {Data: []byte(`{{ define "content" }}<p>gone</p>{{ end }}`)},
	}

	ts, err := web.NewTemplateSet(fsys, "layouts/*.html", "views", "/app", []web.ViewDef{home, missing})
	require.NoError(t, err)
	return ts
}

func TestRender(t *testing.T) {
	ts := templates(t)
	assert.Equal(t, "/app", ts.BasePath())

	rec := httptest.NewRecorder()
	require.NoError(t, ts.Render(rec, http.StatusAccepted, "app", home, "<fraud>"))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<title>Home</title>")
	assert.Contains(t, rec.Body.String(), `href="/app/"`)
	assert.Contains(t, rec.Body.String(), "&lt;fraud&gt;")
}

func TestRenderUnknownView(t *testing.T) {
	ts := templates(t)

	rec := httptest.NewRecorder()
	err := ts.Render(rec, http.StatusOK, "app", web.ViewDef{Template: "nope.html"}, nil)
	assert.Error(t, err)
	assert.Empty(t, rec.Body.String())
}

func TestErrorHandler(t *testing.T) {
	ts := templates(t)

	rec := httptest.NewRecorder()
	ts.ErrorHandler("app", missing, http.StatusNotFound)(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "gone")
}

func TestServeEmbeddedFile(t *testing.T) {
	rec := httptest.NewRecorder()
	web.ServeEmbeddedFile([]byte("body{}"), "text/css")(rec, httptest.NewRequest(http.MethodGet, "/app.css", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/css", rec.Header().Get("Content-Type"))
	assert.Equal(t, "body{}", rec.Body.String())
}

func TestNewTemplateSetFailsFast(t *testing.T) {
	fsys := fstest.MapFS{
		"layouts/app.html": {Data: []byte(`{{ define "app" }}{{ end }}`)},
		"views/bad.html":   {Data: []byte(`{{ define "content" }}{{ .Title `)},
	}

	_, err := web.NewTemplateSet(fsys, "layouts/*.html", "views", "", []web.ViewDef{{Template: "bad.html"}})
	assert.Error(t, err)
}
