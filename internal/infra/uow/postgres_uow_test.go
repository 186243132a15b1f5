//go:build unit

package uow

import (
	"errors"
	"testing"
	"time"

	"restaurant-booking/internal/infra"
	"restaurant-booking/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMarkConflict(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		conflict bool
	}{
		{"serialization failure", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, true},
		{"booking lock timeout from the repository", infra.WrapRepoErr("failed to lock reservation date", &pgconn.PgError{Code: "55P03"}), true},
		{"commit serialization failure", errs.Mark(&pgconn.PgError{Code: "40001"}, errTransactionCommit), true},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := markConflict(tt.err)

			assert.Equal(t, tt.conflict, errs.Is(got, errs.ErrConflict))
			assert.True(t, errs.Is(got, tt.err), "original cause stays reachable")
		})
	}

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, markConflict(nil))
	})
}

func TestLockTimeoutSQL(t *testing.T) {
	assert.Equal(t, "SET LOCAL lock_timeout = '5000ms'", lockTimeoutSQL(5*time.Second))
	assert.Equal(t, "SET LOCAL lock_timeout = '250ms'", lockTimeoutSQL(250*time.Millisecond))
}
