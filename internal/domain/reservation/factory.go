package reservation

import (
	"time"

	"github.com/google/uuid"
)

type NewReservationParams struct {
	RestaurantID uuid.UUID
	Date         Date
	Customer     Customer
}

// NewReservation admits a booking against occ and only then asks gen for a
// code, so rejected bookings never consume one.
func NewReservation(p NewReservationParams, occ Occupancy, gen CodeGenerator, now time.Time) (*Reservation, error) {
	if p.Date.IsZero() {
		return nil, ErrInvalidDate
	}
	if err := occ.Admit(); err != nil {
		return nil, err
	}
	code, err := gen.Generate()
	if err != nil {
		return nil, err
	}
	return &Reservation{
		id:           uuid.New(),
		restaurantID: p.RestaurantID,
		date:         p.Date,
		customer:     p.Customer,
		code:         code,
		status:       StatusActive,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}
