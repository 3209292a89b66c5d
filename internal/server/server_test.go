package server

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebasr/greeting-service/internal/assets"
	"github.com/sebasr/greeting-service/internal/greeting"
	"github.com/sebasr/greeting-service/internal/models"
	"github.com/sebasr/greeting-service/internal/templates"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	store, err := assets.NewFileStore(t.TempDir())
	require.NoError(t, err)
	_, err = assets.EnsurePlaceholders(context.Background(), store, templates.Default().Images())
	require.NoError(t, err)

	return New(&Dependencies{
		Resolver: greeting.NewResolver(greeting.Dependencies{Assets: store}),
		Assets:   store,
	})
}

func TestRoutes(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
		contains       string
	}{
		{name: "index", method: "GET", path: "/", expectedStatus: http.StatusOK, contains: "<form"},
		{name: "health", method: "GET", path: "/api/v1/health", expectedStatus: http.StatusOK, contains: `"status":"ok"`},
		{name: "static default", method: "GET", path: "/static/default.jpg", expectedStatus: http.StatusOK},
		{name: "static missing", method: "GET", path: "/static/missing.jpg", expectedStatus: http.StatusNotFound},
		{name: "metrics", method: "GET", path: "/metrics", expectedStatus: http.StatusOK, contains: "go_goroutines"},
		{
			name:           "generate rule",
			method:         "POST",
			path:           "/generate_message",
			body:           `{"prompt":"birthday party","mode":"rule","name":"Sam"}`,
			expectedStatus: http.StatusOK,
			contains:       "Happy Birthday",
		},
		{
			name:           "generate invalid mode",
			method:         "POST",
			path:           "/generate_message",
			body:           `{"prompt":"hello","mode":"poetry"}`,
			expectedStatus: http.StatusBadRequest,
			contains:       greeting.InvalidModeMessage,
		},
		{name: "unknown route", method: "GET", path: "/nope", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			require.NoError(t, err)
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
			if tt.contains != "" {
				assert.Contains(t, w.Body.String(), tt.contains)
			}
		})
	}
}

func TestGzipRequestDecompression(t *testing.T) {
	router := newTestRouter(t)

	payload := []byte(`{"prompt":"Happy Diwali","mode":"rule","name":"Ravi"}`)
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write(payload)
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	req, err := http.NewRequest("POST", "/generate_message", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var result models.GenerationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "Hello Ravi, Diwali greetings! We wish you a prosperous and joyful holiday season.", result.Message)
	assert.Equal(t, "/static/watermarked/diwali.jpg", result.ImageURL)
}

func TestGzipResponseCompression(t *testing.T) {
	router := newTestRouter(t)

	t.Run("json is compressed", func(t *testing.T) {
		req, err := http.NewRequest("GET", "/api/v1/health", nil)
		require.NoError(t, err)
		req.Header.Set("Accept-Encoding", "gzip")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
		gz, err := gzip.NewReader(w.Body)
		require.NoError(t, err)
		body, err := io.ReadAll(gz)
		require.NoError(t, err)
		assert.Contains(t, string(body), `"status":"ok"`)
	})

	t.Run("metrics are compressed once", func(t *testing.T) {
		req, err := http.NewRequest("GET", MetricsPath, nil)
		require.NoError(t, err)
		req.Header.Set("Accept-Encoding", "gzip")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
		gz, err := gzip.NewReader(w.Body)
		require.NoError(t, err)
		body, err := io.ReadAll(gz)
		require.NoError(t, err)
		assert.Contains(t, string(body), "go_goroutines")
	})

	t.Run("images are not", func(t *testing.T) {
		req, err := http.NewRequest("GET", "/static/default.jpg", nil)
		require.NoError(t, err)
		req.Header.Set("Accept-Encoding", "gzip")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Content-Encoding"))
		assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	})
}

func TestCORS(t *testing.T) {
	router := newTestRouter(t)

	req, err := http.NewRequest("OPTIONS", "/generate_message", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
