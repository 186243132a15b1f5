package queries

import (
	"context"
	"strings"
	"time"

	"restaurant-booking/internal/domain/reservation"
	"restaurant-booking/internal/infra"
	"restaurant-booking/internal/pkg/clock"
	"restaurant-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/queries/reservation_mock.go -package=queriesmock

var (
	ErrReservationNotFound    = errs.New("Reserva no encontrada o fue eliminada.")
	ErrSearchCriteriaRequired = errs.New("Debe indicar al menos un dni o un código de reserva.")
	ErrInvalidCursor          = errs.New("invalid cursor")
)

// ReservationFilter drives the back-office listing. Status is required;
// the zero value is rejected rather than silently meaning "active".
type ReservationFilter struct {
	Status       reservation.StatusFilter
	Date         *reservation.Date
	RestaurantID *uuid.UUID
}

type ClientSearch struct {
	DNI  *string
	Code *string
}

type ReservationReadStore interface {
	FindActiveByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	List(ctx context.Context, filter ReservationFilter, after *Keyset, limit int32) ([]*ReservationView, error)
	SearchActiveFrom(ctx context.Context, from reservation.Date, dni *reservation.DNI, code *reservation.Code) ([]*ReservationView, error)
}

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	List(ctx context.Context, filter ReservationFilter, cursor *Cursor, limit int) ([]*ReservationView, *Cursor, error)
	SearchByClient(ctx context.Context, search ClientSearch) ([]*ReservationView, error)
}

type reservationQueriesImpl struct {
	store ReservationReadStore
	clock clock.Clock
	loc   *time.Location
}

func NewReservationQueries(store ReservationReadStore, clk clock.Clock, loc *time.Location) ReservationQueries {
	return &reservationQueriesImpl{store: store, clock: clk, loc: loc}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	v, err := q.store.FindActiveByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return v, nil
}

func (q *reservationQueriesImpl) List(ctx context.Context, filter ReservationFilter, cursor *Cursor, limit int) ([]*ReservationView, *Cursor, error) {
	if filter.Status.Statuses() == nil {
		return nil, nil, errs.Mark(reservation.ErrInvalidStatus, errs.ErrDomainValidation)
	}

	var after *Keyset
	if cursor != nil && cursor.After != "" {
		ks, err := DecodeAfterCursor(cursor.After)
		if err != nil {
			return nil, nil, errs.Mark(ErrInvalidCursor, errs.ErrDomainValidation)
		}
		after = ks
	}

	limit = ValidateLimit(limit)
	rows, err := q.store.List(ctx, filter, after, int32(limit+1))
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}

// SearchByClient returns active reservations dated today or later in the
// booking time zone. Supplied filters are combined with AND.
func (q *reservationQueriesImpl) SearchByClient(ctx context.Context, search ClientSearch) ([]*ReservationView, error) {
	rawDNI, rawCode := trimmed(search.DNI), trimmed(search.Code)
	if rawDNI == nil && rawCode == nil {
		return nil, errs.Mark(ErrSearchCriteriaRequired, errs.ErrDomainValidation)
	}

	var dni *reservation.DNI
	if rawDNI != nil {
		d, err := reservation.NewDNI(*rawDNI)
		if err != nil {
			return []*ReservationView{}, nil
		}
		dni = &d
	}
	var code *reservation.Code
	if rawCode != nil {
		c, err := reservation.NewCode(*rawCode)
		if err != nil {
			return []*ReservationView{}, nil
		}
		code = &c
	}

	today := reservation.DateOf(q.clock.Now(), q.loc)
	rows, err := q.store.SearchActiveFrom(ctx, today, dni, code)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []*ReservationView{}
	}
	return rows, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
