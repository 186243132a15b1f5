//go:build unit

package middleware_test

import (
	"errors"
	"net/http"
	"testing"

	"restaurant-booking/internal/handler/middleware"
	"restaurant-booking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler(), middleware.CustomRecovery())
	r.GET("/private-error", func(c *gin.Context) {
		_ = c.Error(errors.New("leaky detail"))
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	r.GET("/ok", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	t.Run("private errors become a generic 500", func(t *testing.T) {
		w := httptest.PerformRequest(t, r, http.MethodGet, "/private-error", nil, "")

		httptest.AssertErrorResponse(t, w, http.StatusInternalServerError, "Internal server error")
		assert.NotContains(t, w.Body.String(), "leaky detail")
	})

	t.Run("panics are recovered", func(t *testing.T) {
		w := httptest.PerformRequest(t, r, http.MethodGet, "/panic", nil, "")

		httptest.AssertErrorResponse(t, w, http.StatusInternalServerError, "Internal server error")
	})

	t.Run("successful responses are untouched", func(t *testing.T) {
		w := httptest.PerformRequest(t, r, http.MethodGet, "/ok", nil, "")

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
