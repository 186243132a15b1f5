//go:build unit

package queries_test

import (
	"encoding/base64"
	"testing"
	"time"

	"restaurant-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	id := uuid.New()
	at := time.Date(2026, 10, 15, 12, 30, 45, 123456789, time.UTC)

	ks, err := queries.DecodeAfterCursor(queries.EncodeAfterCursor(at, id))

	require.NoError(t, err)
	assert.Equal(t, id, ks.ID)
	// truncated to microseconds
	assert.Equal(t, at.Truncate(time.Microsecond), ks.CreatedAt)
}

func TestDecodeAfterCursor_Invalid(t *testing.T) {
	enc := func(s string) string { return base64.RawURLEncoding.EncodeToString([]byte(s)) }

	cases := map[string]string{
		"empty":         "",
		"not base64":    "%%%",
		"wrong version": enc("v2:1-" + uuid.NewString()),
		"no separator":  enc("v1:12345"),
		"bad micros":    enc("v1:abc-" + uuid.NewString()),
		"bad uuid":      enc("v1:12345-nope"),
	}
	for name, cursor := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := queries.DecodeAfterCursor(cursor)
			assert.Error(t, err)
		})
	}
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(0))
	assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(-3))
	assert.Equal(t, 10, queries.ValidateLimit(10))
	assert.Equal(t, queries.MaxListLimit, queries.ValidateLimit(1000))
}
