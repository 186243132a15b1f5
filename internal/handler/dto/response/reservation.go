package response

import (
	"fmt"
	"time"

	"restaurant-booking/internal/domain/reservation"
	"restaurant-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID             uuid.UUID  `json:"id"`
	RestaurantID   uuid.UUID  `json:"restaurant_id"`
	RestaurantName string     `json:"restaurant_name"`
	Date           string     `json:"date"`
	CustomerName   string     `json:"customer_name"`
	CustomerEmail  string     `json:"customer_email"`
	CustomerDNI    string     `json:"customer_dni"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
}

// ReservationCreatedResponse is the only payload that carries the code.
type ReservationCreatedResponse struct {
	ReservationResponse
	Code string `json:"code"`
}

// NextCursorHeader carries the keyset cursor of the next listing page. The
// body stays a plain array; the header is absent on the last page.
const NextCursorHeader = "X-Next-Cursor"

type MessageResponse struct {
	Message string `json:"message"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:             v.ID,
		RestaurantID:   v.RestaurantID,
		RestaurantName: v.RestaurantName,
		Date:           v.Date.Format(reservation.DateLayout),
		CustomerName:   v.CustomerName,
		CustomerEmail:  v.CustomerEmail,
		CustomerDNI:    v.CustomerDNI,
		Status:         v.Status,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
		DeletedAt:      v.DeletedAt,
	}
}

func FromReservationViews(views []*queries.ReservationView) []*ReservationResponse {
	out := make([]*ReservationResponse, len(views))
	for i, v := range views {
		out[i] = FromReservationView(v)
	}
	return out
}

func ReservationDeleted(id uuid.UUID) MessageResponse {
	return MessageResponse{Message: fmt.Sprintf("Reserva %s eliminado lógicamente", id)}
}
