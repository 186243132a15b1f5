package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrReservationDeleted = errors.New("reservation is deleted")

type Reservation struct {
	id           uuid.UUID
	restaurantID uuid.UUID
	date         Date
	customer     Customer
	code         Code
	status       Status
	createdAt    time.Time
	updatedAt    time.Time
	deletedAt    *time.Time
}

func ReconstructReservation(
	id, restaurantID uuid.UUID,
	date Date,
	customer Customer,
	code Code,
	status Status,
	createdAt, updatedAt time.Time,
	deletedAt *time.Time,
) *Reservation {
	return &Reservation{
		id:           id,
		restaurantID: restaurantID,
		date:         date,
		customer:     customer,
		code:         code,
		status:       status,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		deletedAt:    deletedAt,
	}
}

// Reschedule moves an active reservation. Capacity for the target date is
// the caller's responsibility (see Occupancy.Admit).
func (r *Reservation) Reschedule(date Date, now time.Time) error {
	if !r.IsActive() {
		return ErrReservationDeleted
	}
	if date.IsZero() {
		return ErrInvalidDate
	}
	r.date = date
	r.updatedAt = now
	return nil
}

// SoftDelete is not idempotent: a second call fails.
func (r *Reservation) SoftDelete(now time.Time) error {
	if !r.IsActive() {
		return ErrReservationDeleted
	}
	r.status = StatusDeleted
	r.deletedAt = &now
	r.updatedAt = now
	return nil
}

func (r *Reservation) Matches(cred Credential) bool {
	return r.customer.DNI() == cred.DNI() && r.code == cred.Code()
}

func (r *Reservation) ID() uuid.UUID           { return r.id }
func (r *Reservation) RestaurantID() uuid.UUID { return r.restaurantID }
func (r *Reservation) Date() Date              { return r.date }
func (r *Reservation) Customer() Customer      { return r.customer }
func (r *Reservation) Code() Code              { return r.code }
func (r *Reservation) Status() Status          { return r.status }
func (r *Reservation) CreatedAt() time.Time    { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time    { return r.updatedAt }
func (r *Reservation) DeletedAt() *time.Time   { return r.deletedAt }
func (r *Reservation) IsActive() bool          { return r.status == StatusActive }
