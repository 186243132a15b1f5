//go:build unit || e2e

package builder

import (
	"time"

	"restaurant-booking/internal/domain/reservation"
	reqdto "restaurant-booking/internal/handler/dto/request"
	"restaurant-booking/internal/usecase/commands"
	"restaurant-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID            uuid.UUID
	RestaurantID  uuid.UUID
	Date          string
	CustomerName  string
	CustomerEmail string
	CustomerDNI   string
	Code          string
	Status        reservation.Status
	CreatedAt     time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		ID:            uuid.New(),
		RestaurantID:  uuid.New(),
		Date:          "2026-12-24",
		CustomerName:  "Ana Gómez",
		CustomerEmail: "ana@example.com",
		CustomerDNI:   "1020304050",
		Code:          "ABC234",
		Status:        reservation.StatusActive,
		CreatedAt:     time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	if mutate != nil {
		mutate(b)
	}
	return b
}

func (b *ReservationBuilder) WithRestaurant(id uuid.UUID) *ReservationBuilder {
	b.RestaurantID = id
	return b
}

func (b *ReservationBuilder) WithDate(date string) *ReservationBuilder {
	b.Date = date
	return b
}

func (b *ReservationBuilder) WithDNI(dni string) *ReservationBuilder {
	b.CustomerDNI = dni
	return b
}

func (b *ReservationBuilder) WithCode(code string) *ReservationBuilder {
	b.Code = code
	return b
}

func (b *ReservationBuilder) AsDeleted() *ReservationBuilder {
	b.Status = reservation.StatusDeleted
	return b
}

func (b *ReservationBuilder) BuildCreateInput() commands.CreateReservationInput {
	return commands.CreateReservationInput{
		RestaurantID:  b.RestaurantID,
		Date:          b.Date,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerDNI:   b.CustomerDNI,
	}
}

func (b *ReservationBuilder) BuildCreateDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		RestaurantID:  b.RestaurantID.String(),
		Date:          b.Date,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerDNI:   b.CustomerDNI,
	}
}

func (b *ReservationBuilder) BuildUpdateDTO() reqdto.UpdateReservationRequest {
	return reqdto.UpdateReservationRequest{DNI: b.CustomerDNI, Code: b.Code, Date: b.Date}
}

func (b *ReservationBuilder) BuildCredentialDTO() reqdto.ReservationCredentialRequest {
	return reqdto.ReservationCredentialRequest{DNI: b.CustomerDNI, Code: b.Code}
}

// BuildDomain panics on invalid builder state; use it only with valid fixtures.
func (b *ReservationBuilder) BuildDomain() *reservation.Reservation {
	date, err := reservation.ParseDate(b.Date)
	if err != nil {
		panic(err)
	}
	customer, err := reservation.NewCustomer(b.CustomerName, b.CustomerEmail, b.CustomerDNI)
	if err != nil {
		panic(err)
	}
	code, err := reservation.NewCode(b.Code)
	if err != nil {
		panic(err)
	}
	var deletedAt *time.Time
	if b.Status == reservation.StatusDeleted {
		at := b.CreatedAt.Add(time.Hour)
		deletedAt = &at
	}
	return reservation.ReconstructReservation(b.ID, b.RestaurantID, date, customer, code, b.Status, b.CreatedAt, b.CreatedAt, deletedAt)
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	date, _ := reservation.ParseDate(b.Date)
	view := &queries.ReservationView{
		ID:             b.ID,
		RestaurantID:   b.RestaurantID,
		RestaurantName: "Costillas Grills",
		Date:           date.Time(),
		CustomerName:   b.CustomerName,
		CustomerEmail:  b.CustomerEmail,
		CustomerDNI:    b.CustomerDNI,
		Status:         string(b.Status),
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.CreatedAt,
	}
	if b.Status == reservation.StatusDeleted {
		at := b.CreatedAt.Add(time.Hour)
		view.DeletedAt = &at
	}
	return view
}
