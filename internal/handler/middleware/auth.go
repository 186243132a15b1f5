package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"restaurant-booking/internal/domain/user"
	"restaurant-booking/internal/handler/httperr"
	"restaurant-booking/internal/pkg/errs"
	"restaurant-booking/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxPrincipalKey = "principal"

	bearerPrefix = "Bearer "
)

var (
	errTokenRequired      = errs.New("access token required")
	errInsufficientRole   = errs.New("insufficient permissions")
	errMissingAuthContext = errs.New("RequireRoleAtLeast used without RequireAuth")
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errTokenRequired, "Access token required", nil)
			return
		}

		principal, err := m.tokenValidator.Authenticate(token)
		if err != nil {
			slog.WarnContext(c.Request.Context(), "rejected bearer token", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}

		c.Set(ctxPrincipalKey, principal)
		c.Next()
	}
}

func (m *AuthMiddleware) RequireRoleAtLeast(minRole user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			httperr.AbortWithError(c, http.StatusInternalServerError, errMissingAuthContext, "Internal server error", nil)
			return
		}

		if !principal.HasRoleAtLeast(minRole) {
			httperr.AbortWithError(c, http.StatusForbidden, errInsufficientRole, "Insufficient permissions", nil)
			return
		}

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(authHeader[len(bearerPrefix):])
}

// GetPrincipal reports the caller set by RequireAuth.
func GetPrincipal(c *gin.Context) (usecase.Principal, bool) {
	v, exists := c.Get(ctxPrincipalKey)
	if !exists {
		return usecase.Principal{}, false
	}
	p, ok := v.(usecase.Principal)
	return p, ok
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	p, ok := GetPrincipal(c)
	return p.UserID, ok
}

func GetUserRole(c *gin.Context) (user.Role, bool) {
	p, ok := GetPrincipal(c)
	return p.Role, ok
}
