package response

import (
	"fmt"
	"time"

	"restaurant-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type RestaurantResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Address     string     `json:"address"`
	City        string     `json:"city"`
	PhotoURL    *string    `json:"photo_url"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

func FromRestaurantView(v *queries.RestaurantView) *RestaurantResponse {
	return &RestaurantResponse{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Address:     v.Address,
		City:        v.City,
		PhotoURL:    v.PhotoURL,
		IsActive:    v.IsActive,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
		DeletedAt:   v.DeletedAt,
	}
}

func FromRestaurantViews(views []*queries.RestaurantView) []*RestaurantResponse {
	out := make([]*RestaurantResponse, len(views))
	for i, v := range views {
		out[i] = FromRestaurantView(v)
	}
	return out
}

func RestaurantDeleted(id uuid.UUID) MessageResponse {
	return MessageResponse{Message: fmt.Sprintf("Restaurante %s eliminado lógicamente", id)}
}
