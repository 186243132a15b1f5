package readstore

import (
	"context"

	"restaurant-booking/internal/domain/reservation"
	"restaurant-booking/internal/infra"
	"restaurant-booking/internal/pkg/pgconv"
	"restaurant-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	reservationViewColumns = `
r.id, r.restaurant_id, rs.name, r.date, r.customer_name, r.customer_email, r.customer_dni,
r.status, r.created_at, r.updated_at, r.deleted_at`

	findActiveReservationSQL = `
SELECT ` + reservationViewColumns + `
FROM reservations r
JOIN restaurants rs ON rs.id = r.restaurant_id
WHERE r.id = $1 AND r.status = 'active'`

	listReservationsSQL = `
SELECT ` + reservationViewColumns + `
FROM reservations r
JOIN restaurants rs ON rs.id = r.restaurant_id
WHERE r.status = ANY($1::text[])
  AND ($2::date IS NULL OR r.date = $2)
  AND ($3::uuid IS NULL OR r.restaurant_id = $3)
  AND ($4::timestamptz IS NULL OR (r.created_at, r.id) < ($4, $5::uuid))
ORDER BY r.created_at DESC, r.id DESC
LIMIT $6`

	searchActiveReservationsSQL = `
SELECT ` + reservationViewColumns + `
FROM reservations r
JOIN restaurants rs ON rs.id = r.restaurant_id
WHERE r.status = 'active'
  AND r.date >= $1
  AND ($2::text IS NULL OR r.customer_dni = $2)
  AND ($3::text IS NULL OR r.code = $3)
ORDER BY r.date, r.created_at`
)

type ReservationReadStore struct {
	db infra.DBTX
}

func NewReservationReadStore(db infra.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: db}
}

func (s *ReservationReadStore) FindActiveByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	v, err := scanReservationView(s.db.QueryRow(ctx, findActiveReservationSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}
	return v, nil
}

func (s *ReservationReadStore) List(ctx context.Context, filter queries.ReservationFilter, after *queries.Keyset, limit int32) ([]*queries.ReservationView, error) {
	statuses := make([]string, 0, 2)
	for _, st := range filter.Status.Statuses() {
		statuses = append(statuses, st.String())
	}

	var date pgtype.Date
	if filter.Date != nil {
		date = pgconv.DateToPgtype(filter.Date.Time())
	}
	var restaurantID pgtype.UUID
	if filter.RestaurantID != nil {
		restaurantID = pgtype.UUID{Bytes: *filter.RestaurantID, Valid: true}
	}
	var afterAt pgtype.Timestamptz
	var afterID pgtype.UUID
	if after != nil {
		afterAt = pgconv.TimeToPgtype(after.CreatedAt)
		afterID = pgtype.UUID{Bytes: after.ID, Valid: true}
	}

	rows, err := s.db.Query(ctx, listReservationsSQL, statuses, date, restaurantID, afterAt, afterID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	return collectReservationViews(rows)
}

func (s *ReservationReadStore) SearchActiveFrom(ctx context.Context, from reservation.Date, dni *reservation.DNI, code *reservation.Code) ([]*queries.ReservationView, error) {
	var dniArg, codeArg pgtype.Text
	if dni != nil {
		dniArg = pgtype.Text{String: dni.String(), Valid: true}
	}
	if code != nil {
		codeArg = pgtype.Text{String: code.String(), Valid: true}
	}

	rows, err := s.db.Query(ctx, searchActiveReservationsSQL, pgconv.DateToPgtype(from.Time()), dniArg, codeArg)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to search reservations", err)
	}
	return collectReservationViews(rows)
}

func collectReservationViews(rows pgx.Rows) ([]*queries.ReservationView, error) {
	views, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.ReservationView, error) {
		return scanReservationView(row)
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan reservations", err)
	}
	return views, nil
}

func scanReservationView(row pgx.Row) (*queries.ReservationView, error) {
	var (
		v                    queries.ReservationView
		date                 pgtype.Date
		createdAt, updatedAt pgtype.Timestamptz
		deletedAt            pgtype.Timestamptz
	)
	err := row.Scan(
		&v.ID, &v.RestaurantID, &v.RestaurantName, &date, &v.CustomerName, &v.CustomerEmail, &v.CustomerDNI,
		&v.Status, &createdAt, &updatedAt, &deletedAt,
	)
	if err != nil {
		return nil, err
	}
	v.Date = pgconv.DateFromPgtype(date)
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	v.DeletedAt = pgconv.TimePtrFromPgtype(deletedAt)
	return &v, nil
}
