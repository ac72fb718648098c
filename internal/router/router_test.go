package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/metrics"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/middleware"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/router"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/testutil"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	e, err := router.New(router.Deps{
		DB:        testutil.NewTestDB(t),
		Logger:    zerolog.New(io.Discard),
		Metrics:   metrics.NewManager(),
		Version:   "test",
		StartTime: time.Now(),
	})
	require.NoError(t, err)
	return e
}

func serve(e http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func TestRouter_RoutesAreMounted(t *testing.T) {
	e := newEngine(t)

	cases := []struct {
		method, path string
		status       int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/ready", http.StatusOK},
		{http.MethodGet, "/api/authors", http.StatusOK},
		{http.MethodGet, "/api/books", http.StatusOK},
		{http.MethodGet, "/api/authors/1", http.StatusNotFound},
		{http.MethodGet, "/api/books/1", http.StatusNotFound},
		{http.MethodGet, "/swagger/doc.json", http.StatusOK},
	}

	for _, tc := range cases {
		w := serve(e, tc.method, tc.path, "")
		assert.Equal(t, tc.status, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	e := newEngine(t)

	w := serve(e, http.MethodGet, "/api/publishers", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp validation.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ROUTE_NOT_FOUND", resp.Code)
}

func TestRouter_WrongMethod(t *testing.T) {
	e := newEngine(t)

	w := serve(e, http.MethodPatch, "/api/authors/1", "{}")
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)

	var resp validation.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "METHOD_NOT_ALLOWED", resp.Code)
}

func TestRouter_FullFlow(t *testing.T) {
	e := newEngine(t)

	w := serve(e, http.MethodPost, "/api/authors", `{"firstName":"Jane","lastName":"Austen"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w = serve(e, http.MethodPost, "/api/books",
		`{"title":"Emma","authorId":1,"datePublished":"1815-12-23","isFiction":true}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = serve(e, http.MethodDelete, "/api/authors/1", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = serve(e, http.MethodDelete, "/api/books/1", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(e, http.MethodDelete, "/api/authors/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_MetricsRecordRoutePatterns(t *testing.T) {
	e := newEngine(t)

	serve(e, http.MethodGet, "/api/books/7", "")

	w := serve(e, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.True(t, strings.Contains(body, `route="/api/books/:id"`), "expected route pattern label in metrics output")
	assert.Contains(t, body, "catalog_api_http_requests_total")
}

func TestRouter_IndependentEngines(t *testing.T) {
	a := newEngine(t)
	b := newEngine(t)

	serve(a, http.MethodPost, "/api/authors", `{"firstName":"Jane","lastName":"Austen"}`)

	w := serve(b, http.MethodGet, "/api/authors", "")
	assert.JSONEq(t, "[]", w.Body.String())
}
