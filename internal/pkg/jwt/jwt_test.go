//go:build unit

package jwt

import (
	"testing"
	"time"

	"restaurant-booking/internal/domain/user"
	"restaurant-booking/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()

	t.Run("generated token validates and carries claims", func(t *testing.T) {
		clk := clock.NewMockClock(start)
		svc := NewService("secret", time.Hour, clk)

		token, expiresAt, err := svc.GenerateToken(userID, user.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, start.Add(time.Hour), expiresAt)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		clk := clock.NewMockClock(start)
		svc := NewService("secret", time.Hour, clk)

		token, _, err := svc.GenerateToken(userID, user.RoleAdmin)
		require.NoError(t, err)

		clk.Add(2 * time.Hour)
		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		clk := clock.NewMockClock(start)
		token, _, err := NewService("other", time.Hour, clk).GenerateToken(userID, user.RoleAdmin)
		require.NoError(t, err)

		_, err = NewService("secret", time.Hour, clk).ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		svc := NewService("secret", time.Hour, clock.NewMockClock(start))
		_, err := svc.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
