//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"restaurant-booking/internal/domain/user"
	"restaurant-booking/internal/handler/dto/request"
	"restaurant-booking/internal/handler/dto/response"
	"restaurant-booking/tests/common/authtest"
	"restaurant-booking/tests/common/dbtest"
	"restaurant-booking/tests/common/httptest"
	"restaurant-booking/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	loginURL = "/api/auth/login"
	meURL    = "/api/auth/me"
)

type authSuite struct {
	e2e.SharedSuite
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	// テスト用ユーザーを作成
	dbtest.CreateTestUser(s.T(), s.DB, "viewer", "password123", string(user.RoleViewer))
	dbtest.CreateTestUser(s.T(), s.DB, "inactive", "password123", string(user.RoleAdmin))

	// 非アクティブユーザーを作成
	_, err := s.DB.Exec(s.T().Context(), "UPDATE users SET is_active = false WHERE username = 'inactive'")
	require.NoError(s.T(), err)
}

func (s *authSuite) TestLogin() {
	tests := []struct {
		name           string
		username       string
		password       string
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "シード管理者でログインできること",
			username:       dbtest.SeedAdminUsername,
			password:       dbtest.SeedAdminPassword,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "存在しないユーザーは拒否されること",
			username:       "nobody",
			password:       "password123",
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Invalid username or password",
		},
		{
			name:           "間違ったパスワードは拒否されること",
			username:       dbtest.SeedAdminUsername,
			password:       "wrongpassword",
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Invalid username or password",
		},
		{
			name:           "非アクティブユーザーは拒否されること",
			username:       "inactive",
			password:       "password123",
			expectedStatus: http.StatusForbidden,
			expectedMsg:    "Account is inactive",
		},
		{
			name:           "空のユーザー名は拒否されること",
			username:       "",
			password:       "password123",
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request",
		},
		{
			name:           "空のパスワードは拒否されること",
			username:       dbtest.SeedAdminUsername,
			password:       "",
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			reqBody := request.LoginRequest{Username: tt.username, Password: tt.password}
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL, reqBody, "")

			if tt.expectedStatus != http.StatusOK {
				httptest.AssertErrorResponse(t, w, tt.expectedStatus, tt.expectedMsg)
				return
			}

			var resp response.LoginResponse
			httptest.AssertSuccessResponse(t, w, http.StatusOK, &resp)
			s.NotEmpty(resp.AccessToken)
			s.Equal("Bearer", resp.TokenType)
			s.Equal(int64(s.Config.JWT.Duration.Seconds()), resp.ExpiresIn)

			var lastLogin *string
			err := s.DB.QueryRow(t.Context(),
				"SELECT to_char(last_login_at, 'YYYY') FROM users WHERE username = $1", tt.username).Scan(&lastLogin)
			require.NoError(t, err)
			s.NotNil(lastLogin, "ログイン時刻が記録されること")
		})
	}
}

func (s *authSuite) TestMe() {
	s.Run("ログイン済みユーザーの情報を取得できること", func() {
		t := s.T()
		token := authtest.LoginAsSeedAdmin(t, s.Router)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)

		var resp response.CurrentUserResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &resp)
		s.Equal(dbtest.SeedAdminUsername, resp.Username)
		s.Equal(string(user.RoleAdmin), resp.Role)
	})

	s.Run("トークンなしは401を返すこと", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, meURL, nil, "")
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("期限切れトークンは401を返すこと", func() {
		t := s.T()
		id := dbtest.CreateTestUser(t, s.DB, "expired", "password123", string(user.RoleAdmin))
		token := authtest.NewJWTHelper(s.Config.JWT).CreateExpiredToken(t, id, user.RoleAdmin)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("削除されたユーザーのトークンは404を返すこと", func() {
		t := s.T()
		id := dbtest.CreateTestUser(t, s.DB, "ghost", "password123", string(user.RoleViewer))
		token := authtest.NewJWTHelper(s.Config.JWT).GenerateToken(t, id, user.RoleViewer)
		_, err := s.DB.Exec(t.Context(), "DELETE FROM users WHERE id = $1", id)
		require.NoError(t, err)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "User not found")
	})
}
