//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	"restaurant-booking/internal/handler/dto/request"
	"restaurant-booking/internal/handler/dto/response"
	"restaurant-booking/tests/common/dbtest"
	"restaurant-booking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func LoginUser(t *testing.T, router *gin.Engine, username, password string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		request.LoginRequest{Username: username, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body response.LoginResponse
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &body)
	require.NotEmpty(t, body.AccessToken, "Access token is empty")

	return body.AccessToken
}

func LoginAsSeedAdmin(t *testing.T, router *gin.Engine) string {
	t.Helper()
	return LoginUser(t, router, dbtest.SeedAdminUsername, dbtest.SeedAdminPassword)
}

func CreateAndLogin(t *testing.T, db dbtest.DBLike, router *gin.Engine, username, role string) string {
	t.Helper()
	dbtest.CreateTestUser(t, db, username, "password123", role)
	return LoginUser(t, router, username, "password123")
}
