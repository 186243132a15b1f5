//go:build unit

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PORT", "8080")
	t.Setenv("DB_USER", "booking")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "booking")
	t.Setenv("JWT_SECRET", "jwt-secret")
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "America/Bogota", cfg.Booking.TimeZone)
		assert.Equal(t, 6, cfg.Booking.CodeLength)
		assert.Equal(t, 5*time.Second, cfg.DB.LockTimeout)
		assert.Contains(t, cfg.CORS.ExposeHeaders, "X-Next-Cursor")
	})

	t.Run("missing required variable", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("JWT_SECRET", "")
		require.NoError(t, os.Unsetenv("JWT_SECRET"))

		_, err := LoadConfig()

		assert.Error(t, err)
	})

	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"misspelled booking zone", map[string]string{"BOOKING_TIMEZONE": "America/Bogata"}, "BOOKING_TIMEZONE"},
		{"code too short", map[string]string{"BOOKING_CODE_LENGTH": "3"}, "BOOKING_CODE_LENGTH"},
		{"code too long", map[string]string{"BOOKING_CODE_LENGTH": "21"}, "BOOKING_CODE_LENGTH"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadConfig()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("other valid zone", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("BOOKING_TIMEZONE", "Europe/Madrid")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "Europe/Madrid", cfg.Booking.TimeZone)
	})
}

func TestLoadLocation(t *testing.T) {
	assert.Equal(t, time.UTC, LoadLocation("Not/AZone"))
	assert.Equal(t, "America/Bogota", LoadLocation("America/Bogota").String())
}
