package uow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"restaurant-booking/internal/infra"
	"restaurant-booking/internal/infra/repository"
	"restaurant-booking/internal/pkg/config"
	"restaurant-booking/internal/pkg/errs"
	"restaurant-booking/internal/pkg/pgconv"
	"restaurant-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	errTransactionBegin  = errs.New("failed to begin transaction")
	errLockTimeoutSetup  = errs.New("failed to set lock timeout")
	errTransactionCommit = errs.New("failed to commit transaction")
)

type PostgresUoW struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
}

func NewPostgresUoW(pool *pgxpool.Pool, cfg config.Config) shared.UnitOfWork {
	return &PostgresUoW{pool: pool, lockTimeout: cfg.DB.LockTimeout}
}

// lockTimeoutSQL is applied per transaction so a caller queued behind a busy
// booking date gets 55P03 instead of waiting forever.
func lockTimeoutSQL(d time.Duration) string {
	return fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", d.Milliseconds())
}

// Within runs fn exactly once in a ReadCommitted transaction. Admission is
// serialised by the per-date advisory lock, not by isolation. Lock timeouts,
// deadlocks and serialization failures are not retried here; they come back
// marked errs.ErrConflict and the client decides whether to resend.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, options)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	if u.lockTimeout > 0 {
		if _, err = pgxTx.Exec(ctx, lockTimeoutSQL(u.lockTimeout)); err != nil {
			err = errs.Mark(err, errLockTimeoutSetup)
		}
	}
	if err == nil {
		err = fn(ctx, &pgTx{dbtx: pgxTx})
	}
	if err == nil {
		if err = pgxTx.Commit(ctx); err == nil {
			return nil
		}
		err = errs.Mark(err, errTransactionCommit)
	}

	if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
		if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.WarnContext(ctx, "rollback failed", "error", rollbackErr.Error())
		}
	}

	return markConflict(err)
}

// markConflict tags transient concurrency failures so the HTTP layer can
// answer 409 instead of 500.
func markConflict(err error) error {
	if !pgconv.IsTransientConflict(err) {
		return err
	}
	return errs.Mark(err, errs.ErrConflict)
}

type pgTx struct {
	dbtx infra.DBTX

	// Lazy-initialized repositories
	restaurantRepo   shared.RestaurantRepository
	reservationRepo  shared.ReservationRepository
	notificationRepo shared.NotificationRepository
	userRepo         shared.UserRepository
}

func (t *pgTx) Restaurants() shared.RestaurantRepository {
	if t.restaurantRepo == nil {
		t.restaurantRepo = repository.NewRestaurantRepository(t.dbtx)
	}
	return t.restaurantRepo
}

func (t *pgTx) Reservations() shared.ReservationRepository {
	if t.reservationRepo == nil {
		t.reservationRepo = repository.NewReservationRepository(t.dbtx)
	}
	return t.reservationRepo
}

func (t *pgTx) Notifications() shared.NotificationRepository {
	if t.notificationRepo == nil {
		t.notificationRepo = repository.NewNotificationRepository(t.dbtx)
	}
	return t.notificationRepo
}

func (t *pgTx) Users() shared.UserRepository {
	if t.userRepo == nil {
		t.userRepo = repository.NewUserRepository(t.dbtx)
	}
	return t.userRepo
}
