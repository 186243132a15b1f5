//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"restaurant-booking/internal/handler/middleware"
	"restaurant-booking/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func preflight(t *testing.T, cfg config.CORSConfig, origin string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.NewCORSMiddleware(cfg))
	r.POST("/api/reservations", func(c *gin.Context) { c.Status(http.StatusCreated) })

	req := httptest.NewRequest(http.MethodOptions, "/api/reservations", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCORSMiddleware(t *testing.T) {
	t.Run("listed origin is echoed", func(t *testing.T) {
		cfg := config.NewTestConfig().CORS

		w := preflight(t, cfg, "http://localhost:3000")

		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unlisted origin is refused", func(t *testing.T) {
		cfg := config.NewTestConfig().CORS

		w := preflight(t, cfg, "http://evil.example")

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard allows any origin without credentials", func(t *testing.T) {
		cfg := config.NewTestConfig().CORS
		cfg.AllowOrigins = []string{"*"}
		cfg.AllowCredentials = true

		w := preflight(t, cfg, "http://anywhere.example")

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})
}
