package request

import (
	"strings"

	"restaurant-booking/internal/domain/reservation"
	"restaurant-booking/internal/usecase/commands"
	"restaurant-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	RestaurantID  string `json:"restaurant_id" binding:"required,uuid"`
	Date          string `json:"date" binding:"required,datetime=2006-01-02"`
	CustomerName  string `json:"customer_name" binding:"required,max=100"`
	CustomerEmail string `json:"customer_email" binding:"required,email,max=100"`
	CustomerDNI   string `json:"customer_dni" binding:"required,max=20"`
}

func (r CreateReservationRequest) ToInput() (commands.CreateReservationInput, error) {
	id, err := uuid.Parse(r.RestaurantID)
	if err != nil {
		return commands.CreateReservationInput{}, err
	}
	return commands.CreateReservationInput{
		RestaurantID:  id,
		Date:          r.Date,
		CustomerName:  strings.TrimSpace(r.CustomerName),
		CustomerEmail: strings.TrimSpace(r.CustomerEmail),
		CustomerDNI:   strings.TrimSpace(r.CustomerDNI),
	}, nil
}

type UpdateReservationRequest struct {
	DNI  string `json:"dni" binding:"required,max=20"`
	Code string `json:"code" binding:"required,max=20"`
	Date string `json:"date" binding:"required,datetime=2006-01-02"`
}

func (r UpdateReservationRequest) ToInput(id uuid.UUID) commands.UpdateReservationDateInput {
	return commands.UpdateReservationDateInput{ID: id, DNI: r.DNI, Code: r.Code, Date: r.Date}
}

type ReservationCredentialRequest struct {
	DNI  string `json:"dni" binding:"required,max=20"`
	Code string `json:"code" binding:"required,max=20"`
}

func (r ReservationCredentialRequest) ToInput(id uuid.UUID) commands.ReservationCredentialInput {
	return commands.ReservationCredentialInput{ID: id, DNI: r.DNI, Code: r.Code}
}

type ListReservationsQuery struct {
	Status       string `form:"status" binding:"omitempty,oneof=active deleted all"`
	Date         string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	RestaurantID string `form:"restaurant_id" binding:"omitempty,uuid"`
	After        string `form:"after"`
	Limit        int    `form:"limit" binding:"omitempty,gte=1,lte=200"`
}

// ToFilter applies the listing defaults: status falls back to "active".
func (q ListReservationsQuery) ToFilter() (queries.ReservationFilter, error) {
	status := reservation.FilterActive
	if q.Status != "" {
		s, err := reservation.NewStatusFilter(q.Status)
		if err != nil {
			return queries.ReservationFilter{}, err
		}
		status = s
	}

	filter := queries.ReservationFilter{Status: status}
	if q.Date != "" {
		d, err := reservation.ParseDate(q.Date)
		if err != nil {
			return queries.ReservationFilter{}, err
		}
		filter.Date = &d
	}
	if q.RestaurantID != "" {
		id, err := uuid.Parse(q.RestaurantID)
		if err != nil {
			return queries.ReservationFilter{}, err
		}
		filter.RestaurantID = &id
	}
	return filter, nil
}

func (q ListReservationsQuery) Cursor() *queries.Cursor {
	if q.After == "" {
		return nil
	}
	return &queries.Cursor{After: q.After}
}

type SearchReservationsQuery struct {
	DNI  *string `form:"dni" binding:"omitempty,max=20"`
	Code *string `form:"code" binding:"omitempty,max=20"`
}

func (q SearchReservationsQuery) ToSearch() queries.ClientSearch {
	return queries.ClientSearch{DNI: q.DNI, Code: q.Code}
}
