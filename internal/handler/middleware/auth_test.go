//go:build unit

package middleware_test

import (
	"net/http"
	"testing"

	"restaurant-booking/internal/domain/user"
	"restaurant-booking/internal/handler/middleware"
	"restaurant-booking/internal/pkg/clock"
	"restaurant-booking/internal/pkg/config"
	"restaurant-booking/internal/pkg/jwt"
	"restaurant-booking/internal/usecase"
	"restaurant-booking/tests/common/authtest"
	"restaurant-booking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	service := jwt.NewService(cfg.JWT.Secret, cfg.JWT.Duration, clock.NewRealClock())
	auth := middleware.NewAuthMiddleware(usecase.NewTokenValidator(service))

	r := gin.New()
	r.GET("/private", auth.RequireAuth(), func(c *gin.Context) {
		id, _ := middleware.GetUserID(c)
		role, _ := middleware.GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id.String(), "role": string(role)})
	})
	r.GET("/admin", auth.RequireAuth(), auth.RequireRoleAtLeast(user.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/misconfigured", auth.RequireRoleAtLeast(user.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	cfg := config.NewTestConfig()
	router := newRouter(cfg)
	tokens := authtest.NewJWTHelper(cfg.JWT)
	userID := uuid.New()

	t.Run("valid token populates the context", func(t *testing.T) {
		token := tokens.GenerateToken(t, userID, user.RoleStaff)

		w := httptest.PerformRequest(t, router, http.MethodGet, "/private", nil, token)

		var body map[string]string
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &body)
		assert.Equal(t, userID.String(), body["user_id"])
		assert.Equal(t, "staff", body["role"])
	})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.PerformRequest(t, router, http.MethodGet, "/private", nil, "")

		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Access token required")
	})

	t.Run("expired token", func(t *testing.T) {
		token := tokens.CreateExpiredToken(t, userID, user.RoleAdmin)

		w := httptest.PerformRequest(t, router, http.MethodGet, "/private", nil, token)

		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Invalid or expired token")
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := cfg.JWT
		other.Secret = "some-other-secret"
		token := authtest.NewJWTHelper(other).GenerateToken(t, userID, user.RoleAdmin)

		w := httptest.PerformRequest(t, router, http.MethodGet, "/private", nil, token)

		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Invalid or expired token")
	})
}

func TestRequireRoleAtLeast(t *testing.T) {
	cfg := config.NewTestConfig()
	router := newRouter(cfg)
	tokens := authtest.NewJWTHelper(cfg.JWT)

	cases := []struct {
		role user.Role
		want int
	}{
		{role: user.RoleViewer, want: http.StatusForbidden},
		{role: user.RoleStaff, want: http.StatusForbidden},
		{role: user.RoleAdmin, want: http.StatusNoContent},
	}
	for _, c := range cases {
		t.Run(string(c.role), func(t *testing.T) {
			token := tokens.GenerateToken(t, uuid.New(), c.role)

			w := httptest.PerformRequest(t, router, http.MethodGet, "/admin", nil, token)

			assert.Equal(t, c.want, w.Code)
		})
	}

	t.Run("without RequireAuth", func(t *testing.T) {
		w := httptest.PerformRequest(t, router, http.MethodGet, "/misconfigured", nil, "")

		httptest.AssertErrorResponse(t, w, http.StatusInternalServerError, "Internal server error")
	})
}
