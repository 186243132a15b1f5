package shared

import (
	"encoding/json"
	"time"

	"restaurant-booking/internal/domain/reservation"

	"github.com/google/uuid"
)

const (
	NotificationKindEmail = "email"

	TopicReservationCreated     = "reservation.created"
	TopicReservationRescheduled = "reservation.rescheduled"
	TopicReservationCancelled   = "reservation.cancelled"
)

// ReservationNotice is the outbox payload for customer e-mails.
type ReservationNotice struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	RestaurantID  uuid.UUID `json:"restaurant_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	Code          string    `json:"code"`
	Date          string    `json:"date"`
	PreviousDate  string    `json:"previous_date,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func NewReservationNotice(r *reservation.Reservation, now time.Time) ReservationNotice {
	return ReservationNotice{
		ReservationID: r.ID(),
		RestaurantID:  r.RestaurantID(),
		CustomerName:  r.Customer().Name().String(),
		CustomerEmail: r.Customer().Email().String(),
		Code:          r.Code().String(),
		Date:          r.Date().String(),
		OccurredAt:    now,
	}
}

func (n ReservationNotice) Marshal() ([]byte, error) {
	return json.Marshal(n)
}
