package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCreateCORSMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("disabled returns nil", func(t *testing.T) {
		assert.Nil(t, createCORSMiddleware(false, "https://example.com", logger))
	})

	t.Run("enabled without origins returns nil", func(t *testing.T) {
		assert.Nil(t, createCORSMiddleware(true, "", logger))
	})

	t.Run("enabled with origins returns middleware", func(t *testing.T) {
		assert.NotNil(t, createCORSMiddleware(true, "https://app.example.com,https://admin.example.com", logger))
	})
}

func TestParseOrigins(t *testing.T) {
	t.Run("parses comma separated origins", func(t *testing.T) {
		origins := parseOrigins("https://app.example.com,https://admin.example.com")
		assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, origins)
	})

	t.Run("trims whitespace", func(t *testing.T) {
		origins := parseOrigins(" https://app.example.com , https://admin.example.com ")
		assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, origins)
	})

	t.Run("empty string returns nil", func(t *testing.T) {
		assert.Nil(t, parseOrigins(""))
	})
}

func TestCORSIntegration(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	newRouter := func(enabled bool) *gin.Engine {
		router := gin.New()
		if middleware := createCORSMiddleware(enabled, "https://app.example.com", logger); middleware != nil {
			router.Use(middleware)
		}
		router.POST("/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		return router
	}

	t.Run("headers added when enabled", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/test", nil)
		req.Header.Set("Origin", "https://app.example.com")
		newRouter(true).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("no headers when disabled", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/test", nil)
		req.Header.Set("Origin", "https://app.example.com")
		newRouter(false).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight allows signature header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/test", nil)
		req.Header.Set("Origin", "https://app.example.com")
		req.Header.Set("Access-Control-Request-Method", "POST")
		req.Header.Set("Access-Control-Request-Headers", "Webhooks-Signature")
		newRouter(true).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Webhooks-Signature")
	})
}
