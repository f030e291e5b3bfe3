package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveRequest(handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestRouteTable(t *testing.T) {
	app, _ := newTestApplication(t)
	router := app.setupRouter()

	w := serveRequest(router, http.MethodPost, "/todos/new", `{"title":"buy milk"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":1,"title":"buy milk","completed":false}`, w.Body.String())

	tests := []struct {
		method     string
		path       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{http.MethodGet, "/todos/all", "", http.StatusOK, `[{"id":1,"title":"buy milk","completed":false}]`},
		{http.MethodGet, "/todos/by_id/1", "", http.StatusOK, `{"id":1,"title":"buy milk","completed":false}`},
		{http.MethodGet, "/todos/by_status/complete", "", http.StatusOK, `[]`},
		{http.MethodGet, "/todos/by_status/incomplete", "", http.StatusOK, `[{"id":1,"title":"buy milk","completed":false}]`},
		{http.MethodPut, "/todos/update/1", `{"title":"buy milk","completed":true}`, http.StatusOK, `{"id":1,"title":"buy milk","completed":true}`},
		{http.MethodDelete, "/todos/delete/1", "", http.StatusOK, `1`},
		{http.MethodDelete, "/todos/delete/1", "", http.StatusOK, `0`},
	}

	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := serveRequest(router, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.wantStatus, w.Code)
			assert.JSONEq(t, tc.wantBody, w.Body.String())
		})
	}

	w = serveRequest(router, http.MethodGet, "/todos/by_id/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestRouterRejectsUnknownRoutes(t *testing.T) {
	app, _ := newTestApplication(t)
	router := app.setupRouter()

	assert.Equal(t, http.StatusNotFound, serveRequest(router, http.MethodGet, "/todos", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, serveRequest(router, http.MethodPost, "/todos/all", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, serveRequest(router, http.MethodGet, "/todos/delete/1", "").Code)
}

func TestRouterHealth(t *testing.T) {
	app, _ := newTestApplication(t)

	w := serveRequest(app.setupRouter(), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestRouterCORS(t *testing.T) {
	app, _ := newTestApplication(t)
	router := app.setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/todos/all", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouterLogsTraceID(t *testing.T) {
	app, logBuf := newTestApplication(t)

	serveRequest(app.setupRouter(), http.MethodGet, "/todos/by_id/nope", "")

	entries, err := logBuf.GetLogEntries()
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	for _, entry := range entries {
		assert.NotEmpty(t, entry["trace_id"], "entry %v", entry["msg"])
	}
}
