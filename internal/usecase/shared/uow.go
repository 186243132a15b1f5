package shared

import (
	"context"
	"time"

	"restaurant-booking/internal/domain/reservation"
	"restaurant-booking/internal/domain/restaurant"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: one transaction for write operations, never retried.
	// fn may run more than once; it must not keep side effects outside tx.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx hands out repositories bound to one transaction.
type Tx interface {
	Restaurants() RestaurantRepository
	Reservations() ReservationRepository
	Notifications() NotificationRepository
	Users() UserRepository
}

type RestaurantRepository interface {
	// FindByIDForShare returns the restaurant (deleted or not) and blocks
	// concurrent deletes until the transaction ends.
	FindByIDForShare(ctx context.Context, id uuid.UUID) (*restaurant.Restaurant, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*restaurant.Restaurant, error)
	Create(ctx context.Context, r *restaurant.Restaurant) error
	Update(ctx context.Context, r *restaurant.Restaurant) error
}

type ReservationRepository interface {
	// LockDate serialises admission for one calendar day until commit.
	LockDate(ctx context.Context, date reservation.Date) error
	CountActive(ctx context.Context, restaurantID uuid.UUID, date reservation.Date) (reservation.Occupancy, error)
	// FindActiveByCredential locks the matching row. Any mismatch yields NOT_FOUND.
	FindActiveByCredential(ctx context.Context, id uuid.UUID, cred reservation.Credential) (*reservation.Reservation, error)
	Create(ctx context.Context, r *reservation.Reservation) error
	Update(ctx context.Context, r *reservation.Reservation) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}

type UserRepository interface {
	UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error
}
