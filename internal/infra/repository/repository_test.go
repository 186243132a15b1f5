//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"restaurant-booking/internal/domain/reservation"
	"restaurant-booking/internal/infra"
	"restaurant-booking/internal/infra/repository"
	"restaurant-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockDBTX struct {
	mock.Mock
}

func (m *mockDBTX) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	ret := m.Called(ctx, sql, args)
	return ret.Get(0).(pgconn.CommandTag), ret.Error(1)
}

func (m *mockDBTX) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	ret := m.Called(ctx, sql, args)
	rows, _ := ret.Get(0).(pgx.Rows)
	return rows, ret.Error(1)
}

func (m *mockDBTX) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	ret := m.Called(ctx, sql, args)
	return ret.Get(0).(pgx.Row)
}

// fakeRow scans fixed values or fails with err.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = r.values[i].(int64)
		default:
			return errors.New("fakeRow: unsupported scan target")
		}
	}
	return nil
}

func pgErr(code string) error {
	return &pgconn.PgError{Code: code, Message: "constraint violated"}
}

func assertKind(t *testing.T, err error, kind infra.RepositoryErrorKind) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, infra.IsKind(err, kind), "expected kind [%v] but got [%T] (%v)", kind, err, err)
}

// =============================================================================
// Reservation Repository Tests
// =============================================================================

func TestReservationRepository_LockDate(t *testing.T) {
	db := &mockDBTX{}
	repo := repository.NewReservationRepository(db)
	date := reservation.NewDate(2026, 12, 24)
	db.On("Exec", mock.Anything, mock.Anything, []any{"reservations:2026-12-24"}).
		Return(pgconn.NewCommandTag("SELECT 1"), nil).Once()

	require.NoError(t, repo.LockDate(context.Background(), date))
	db.AssertExpectations(t)
}

func TestReservationRepository_CountActive(t *testing.T) {
	ctx := context.Background()
	restaurantID := uuid.New()
	date := reservation.NewDate(2026, 12, 24)

	t.Run("success", func(t *testing.T) {
		db := &mockDBTX{}
		db.On("QueryRow", mock.Anything, mock.Anything, mock.Anything).
			Return(fakeRow{values: []any{int64(4), int64(17)}})

		occ, err := repository.NewReservationRepository(db).CountActive(ctx, restaurantID, date)

		require.NoError(t, err)
		assert.Equal(t, 4, occ.Restaurant)
		assert.Equal(t, 17, occ.Global)
		assert.Equal(t, restaurantID, occ.RestaurantID)
		assert.True(t, occ.Date.Equal(date))
	})

	t.Run("db failure", func(t *testing.T) {
		db := &mockDBTX{}
		db.On("QueryRow", mock.Anything, mock.Anything, mock.Anything).
			Return(fakeRow{err: errors.New("connection reset")})

		_, err := repository.NewReservationRepository(db).CountActive(ctx, restaurantID, date)

		assertKind(t, err, infra.KindDBFailure)
	})
}

func TestReservationRepository_FindActiveByCredential(t *testing.T) {
	db := &mockDBTX{}
	cred, err := reservation.NewCredential("1020304050", "ABC234")
	require.NoError(t, err)
	id := uuid.New()
	db.On("QueryRow", mock.Anything, mock.Anything, []any{id, "1020304050", "ABC234"}).
		Return(fakeRow{err: pgx.ErrNoRows})

	_, err = repository.NewReservationRepository(db).FindActiveByCredential(context.Background(), id, cred)

	assertKind(t, err, infra.KindNotFound)
	db.AssertExpectations(t)
}

func TestReservationRepository_Create(t *testing.T) {
	testCases := []struct {
		name       string
		execErr    error
		expectKind infra.RepositoryErrorKind
	}{
		{name: "success: reservation created"},
		{name: "error: duplicate id", execErr: pgErr("23505"), expectKind: infra.KindDuplicateKey},
		{name: "error: unknown restaurant", execErr: pgErr("23503"), expectKind: infra.KindForeignKeyViolated},
		{name: "error: lifecycle check", execErr: pgErr("23514"), expectKind: infra.KindCheckViolated},
		{name: "error: database error occurs", execErr: errors.New("database connection error"), expectKind: infra.KindDBFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db := &mockDBTX{}
			db.On("Exec", mock.Anything, mock.Anything, mock.Anything).
				Return(pgconn.NewCommandTag("INSERT 0 1"), tc.execErr)

			err := repository.NewReservationRepository(db).Create(context.Background(), builder.NewReservationBuilder().BuildDomain())

			if tc.expectKind == "" {
				assert.NoError(t, err)
				return
			}
			assertKind(t, err, tc.expectKind)
		})
	}
}

func TestReservationRepository_Update(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := &mockDBTX{}
		db.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return(pgconn.NewCommandTag("UPDATE 1"), nil)

		err := repository.NewReservationRepository(db).Update(context.Background(), builder.NewReservationBuilder().BuildDomain())

		assert.NoError(t, err)
	})

	t.Run("no rows affected", func(t *testing.T) {
		db := &mockDBTX{}
		db.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return(pgconn.NewCommandTag("UPDATE 0"), nil)

		err := repository.NewReservationRepository(db).Update(context.Background(), builder.NewReservationBuilder().BuildDomain())

		assertKind(t, err, infra.KindNotFound)
	})
}

// =============================================================================
// Restaurant Repository Tests
// =============================================================================

func TestRestaurantRepository(t *testing.T) {
	ctx := context.Background()
	rest := builder.NewRestaurantBuilder().BuildStored()

	t.Run("find: not found", func(t *testing.T) {
		db := &mockDBTX{}
		db.On("QueryRow", mock.Anything, mock.Anything, []any{rest.ID()}).Return(fakeRow{err: pgx.ErrNoRows})

		_, err := repository.NewRestaurantRepository(db).FindByIDForUpdate(ctx, rest.ID())

		assertKind(t, err, infra.KindNotFound)
	})

	t.Run("create: duplicate", func(t *testing.T) {
		db := &mockDBTX{}
		db.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return(pgconn.CommandTag{}, pgErr("23505"))

		err := repository.NewRestaurantRepository(db).Create(ctx, rest)

		assertKind(t, err, infra.KindDuplicateKey)
	})

	t.Run("update: no rows affected", func(t *testing.T) {
		db := &mockDBTX{}
		db.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return(pgconn.NewCommandTag("UPDATE 0"), nil)

		err := repository.NewRestaurantRepository(db).Update(ctx, rest)

		assertKind(t, err, infra.KindNotFound)
	})
}

// =============================================================================
// Notification / User Repository Tests
// =============================================================================

func TestNotificationRepository_CreateJob(t *testing.T) {
	db := &mockDBTX{}
	runAt := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	db.On("Exec", mock.Anything, mock.Anything, mock.MatchedBy(func(args []any) bool {
		return len(args) == 5 && args[1] == "email" && args[2] == "reservation.created" && args[3] == `{"a":1}`
	})).Return(pgconn.NewCommandTag("INSERT 0 1"), nil).Once()

	err := repository.NewNotificationRepository(db).CreateJob(context.Background(), "email", "reservation.created", []byte(`{"a":1}`), runAt)

	require.NoError(t, err)
	db.AssertExpectations(t)
}

func TestUserRepository_UpdateLastLogin(t *testing.T) {
	db := &mockDBTX{}
	db.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return(pgconn.NewCommandTag("UPDATE 0"), nil)

	err := repository.NewUserRepository(db).UpdateLastLogin(context.Background(), uuid.New(), time.Now())

	assertKind(t, err, infra.KindNotFound)
}
