//go:build unit

package reservation_test

import (
	"errors"
	"testing"
	"time"

	"restaurant-booking/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCodes struct {
	code  string
	err   error
	calls int
}

func (s *stubCodes) Generate() (reservation.Code, error) {
	s.calls++
	if s.err != nil {
		return reservation.Code{}, s.err
	}
	return reservation.NewCode(s.code)
}

var now = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func newParams(t *testing.T) reservation.NewReservationParams {
	t.Helper()
	customer, err := reservation.NewCustomer("Ana Gómez", "ana@example.com", "1020304050")
	require.NoError(t, err)
	return reservation.NewReservationParams{
		RestaurantID: uuid.New(),
		Date:         reservation.NewDate(2026, 12, 24),
		Customer:     customer,
	}
}

func TestNewReservation(t *testing.T) {
	t.Run("基本成功ケース", func(t *testing.T) {
		p := newParams(t)
		codes := &stubCodes{code: "ABC234"}

		r, err := reservation.NewReservation(p, reservation.Occupancy{Restaurant: 14, Global: 19}, codes, now)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, r.ID())
		assert.Equal(t, p.RestaurantID, r.RestaurantID())
		assert.Equal(t, "2026-12-24", r.Date().String())
		assert.Equal(t, "ABC234", r.Code().String())
		assert.Equal(t, reservation.StatusActive, r.Status())
		assert.True(t, r.IsActive())
		assert.Nil(t, r.DeletedAt())
		assert.Equal(t, now, r.CreatedAt())
		assert.Equal(t, 1, codes.calls)
	})

	t.Run("満杯ならコードを発行しない", func(t *testing.T) {
		codes := &stubCodes{code: "ABC234"}

		r, err := reservation.NewReservation(newParams(t), reservation.Occupancy{Restaurant: 15, Global: 15}, codes, now)

		require.ErrorIs(t, err, reservation.ErrCapacityExceeded)
		assert.Nil(t, r)
		assert.Zero(t, codes.calls)
	})

	t.Run("日付なしNG", func(t *testing.T) {
		p := newParams(t)
		p.Date = reservation.Date{}

		_, err := reservation.NewReservation(p, reservation.Occupancy{}, &stubCodes{code: "ABC234"}, now)

		require.ErrorIs(t, err, reservation.ErrInvalidDate)
	})

	t.Run("コード生成失敗", func(t *testing.T) {
		boom := errors.New("entropy exhausted")

		_, err := reservation.NewReservation(newParams(t), reservation.Occupancy{}, &stubCodes{err: boom}, now)

		require.ErrorIs(t, err, boom)
	})
}

func TestReservationLifecycle(t *testing.T) {
	r, err := reservation.NewReservation(newParams(t), reservation.Occupancy{}, &stubCodes{code: "ABC234"}, now)
	require.NoError(t, err)

	cred, err := reservation.NewCredential("1020304050", "abc234")
	require.NoError(t, err)
	assert.True(t, r.Matches(cred))

	other, err := reservation.NewCredential("1020304050", "ZZZ999")
	require.NoError(t, err)
	assert.False(t, r.Matches(other))

	later := now.Add(time.Hour)
	require.NoError(t, r.Reschedule(reservation.NewDate(2026, 12, 31), later))
	assert.Equal(t, "2026-12-31", r.Date().String())
	assert.Equal(t, later, r.UpdatedAt())
	assert.ErrorIs(t, r.Reschedule(reservation.Date{}, later), reservation.ErrInvalidDate)

	require.NoError(t, r.SoftDelete(later))
	assert.Equal(t, reservation.StatusDeleted, r.Status())
	require.NotNil(t, r.DeletedAt())
	assert.Equal(t, later, *r.DeletedAt())

	assert.ErrorIs(t, r.SoftDelete(later), reservation.ErrReservationDeleted)
	assert.ErrorIs(t, r.Reschedule(reservation.NewDate(2027, 1, 2), later), reservation.ErrReservationDeleted)
}

func TestRandomCodeGenerator(t *testing.T) {
	gen := reservation.NewRandomCodeGenerator(8)
	seen := map[string]bool{}

	for range 200 {
		code, err := gen.Generate()
		require.NoError(t, err)
		require.Len(t, code.String(), 8)
		assert.NotContains(t, code.String(), "0")
		assert.NotContains(t, code.String(), "O")
		assert.NotContains(t, code.String(), "I")
		seen[code.String()] = true
	}
	// 31^8 possibilities; a collision across 200 draws would mean a broken source
	assert.Len(t, seen, 200)
}
