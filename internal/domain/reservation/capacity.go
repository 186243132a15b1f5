package reservation

import (
	"errors"

	"github.com/google/uuid"
)

const (
	// RestaurantDailyCapacity caps active reservations per (restaurant, date).
	RestaurantDailyCapacity = 15
	// GlobalDailyCapacity caps active reservations per date across all restaurants.
	GlobalDailyCapacity = 20
)

type CapacityScope string

const (
	ScopeRestaurant CapacityScope = "restaurant"
	ScopeGlobal     CapacityScope = "global"
)

var ErrCapacityExceeded = errors.New("capacity exceeded")

// CapacityExceededError carries which cap rejected the booking. It matches
// ErrCapacityExceeded under errors.Is.
type CapacityExceededError struct {
	Scope CapacityScope
	Date  Date
}

func (e *CapacityExceededError) Error() string {
	switch e.Scope {
	case ScopeRestaurant:
		return "No hay mesas disponibles para este restaurante en la fecha seleccionada."
	default:
		return "No hay mesas disponibles en ningún restaurante para la fecha seleccionada."
	}
}

func (e *CapacityExceededError) Is(target error) bool {
	return target == ErrCapacityExceeded
}

// Occupancy is a fresh count of active reservations taken under the date lock.
type Occupancy struct {
	RestaurantID uuid.UUID
	Date         Date
	Restaurant   int
	Global       int
}

// Admit checks whether one more active reservation fits. The restaurant cap
// is reported first when both are full.
func (o Occupancy) Admit() error {
	if o.Restaurant >= RestaurantDailyCapacity {
		return &CapacityExceededError{Scope: ScopeRestaurant, Date: o.Date}
	}
	if o.Global >= GlobalDailyCapacity {
		return &CapacityExceededError{Scope: ScopeGlobal, Date: o.Date}
	}
	return nil
}

func (o Occupancy) RestaurantRemaining() int {
	return max(RestaurantDailyCapacity-o.Restaurant, 0)
}

func (o Occupancy) GlobalRemaining() int {
	return max(GlobalDailyCapacity-o.Global, 0)
}
