package repository

import (
	"context"

	"restaurant-booking/internal/domain/reservation"
	"restaurant-booking/internal/infra"
	"restaurant-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	lockDateSQL = `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`

	countActiveSQL = `
SELECT count(*) FILTER (WHERE restaurant_id = $1), count(*)
FROM reservations
WHERE date = $2 AND status = 'active'`

	findActiveByCredentialSQL = `
SELECT id, restaurant_id, date, customer_name, customer_email, customer_dni, code, status, created_at, updated_at, deleted_at
FROM reservations
WHERE id = $1 AND customer_dni = $2 AND code = $3 AND status = 'active'
FOR UPDATE`

	createReservationSQL = `
INSERT INTO reservations (id, restaurant_id, date, customer_name, customer_email, customer_dni, code, status, created_at, updated_at, deleted_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	updateReservationSQL = `
UPDATE reservations
SET date = $2, status = $3, updated_at = $4, deleted_at = $5
WHERE id = $1`
)

type ReservationRepository struct {
	db infra.DBTX
}

func NewReservationRepository(db infra.DBTX) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// LockDate must run inside a transaction; the lock is released on commit or rollback.
func (r *ReservationRepository) LockDate(ctx context.Context, date reservation.Date) error {
	if _, err := r.db.Exec(ctx, lockDateSQL, date.LockKey()); err != nil {
		return infra.WrapRepoErr("failed to lock reservation date", err)
	}
	return nil
}

func (r *ReservationRepository) CountActive(ctx context.Context, restaurantID uuid.UUID, date reservation.Date) (reservation.Occupancy, error) {
	var perRestaurant, global int64
	err := r.db.QueryRow(ctx, countActiveSQL, restaurantID, pgconv.DateToPgtype(date.Time())).Scan(&perRestaurant, &global)
	if err != nil {
		return reservation.Occupancy{}, infra.WrapRepoErr("failed to count active reservations", err)
	}
	return reservation.Occupancy{
		RestaurantID: restaurantID,
		Date:         date,
		Restaurant:   int(perRestaurant),
		Global:       int(global),
	}, nil
}

func (r *ReservationRepository) FindActiveByCredential(ctx context.Context, id uuid.UUID, cred reservation.Credential) (*reservation.Reservation, error) {
	var (
		rid, restaurantID    uuid.UUID
		date                 pgtype.Date
		name, email, dni     string
		code, status         string
		createdAt, updatedAt pgtype.Timestamptz
		deletedAt            pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, findActiveByCredentialSQL, id, cred.DNI().String(), cred.Code().String()).Scan(
		&rid, &restaurantID, &date, &name, &email, &dni, &code, &status, &createdAt, &updatedAt, &deletedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}

	customer, err := reservation.NewCustomer(name, email, dni)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid customer in storage", err)
	}
	c, err := reservation.NewCode(code)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid reservation code in storage", err)
	}
	st, err := reservation.NewStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid reservation status in storage", err)
	}

	return reservation.ReconstructReservation(
		rid,
		restaurantID,
		reservation.DateFromTime(pgconv.DateFromPgtype(date)),
		customer,
		c,
		st,
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
		pgconv.TimePtrFromPgtype(deletedAt),
	), nil
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	_, err := r.db.Exec(ctx, createReservationSQL,
		res.ID(),
		res.RestaurantID(),
		pgconv.DateToPgtype(res.Date().Time()),
		res.Customer().Name().String(),
		res.Customer().Email().String(),
		res.Customer().DNI().String(),
		res.Code().String(),
		res.Status().String(),
		pgconv.TimeToPgtype(res.CreatedAt()),
		pgconv.TimeToPgtype(res.UpdatedAt()),
		pgconv.TimePtrToPgtype(res.DeletedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) Update(ctx context.Context, res *reservation.Reservation) error {
	tag, err := r.db.Exec(ctx, updateReservationSQL,
		res.ID(),
		pgconv.DateToPgtype(res.Date().Time()),
		res.Status().String(),
		pgconv.TimeToPgtype(res.UpdatedAt()),
		pgconv.TimePtrToPgtype(res.DeletedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}
