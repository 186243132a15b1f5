package request

import (
	"restaurant-booking/internal/usecase/commands"
	"restaurant-booking/internal/usecase/queries"
)

type CreateRestaurantRequest struct {
	Name        string  `json:"name" binding:"required,max=50"`
	Description *string `json:"description"`
	Address     string  `json:"address" binding:"required,max=200"`
	City        string  `json:"city" binding:"required,max=100"`
	PhotoURL    *string `json:"photo_url" binding:"omitempty,max=255"`
	IsActive    *bool   `json:"is_active"`
}

func (r CreateRestaurantRequest) ToInput() commands.CreateRestaurantInput {
	return commands.CreateRestaurantInput{
		Name:        r.Name,
		Description: r.Description,
		Address:     r.Address,
		City:        r.City,
		PhotoURL:    r.PhotoURL,
		IsActive:    r.IsActive,
	}
}

// UpdateRestaurantRequest is a partial update; omitted fields are left as is.
type UpdateRestaurantRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=50"`
	Description *string `json:"description"`
	Address     *string `json:"address" binding:"omitempty,max=200"`
	City        *string `json:"city" binding:"omitempty,max=100"`
	PhotoURL    *string `json:"photo_url" binding:"omitempty,max=255"`
	IsActive    *bool   `json:"is_active"`
}

func (r UpdateRestaurantRequest) ToInput() commands.UpdateRestaurantInput {
	return commands.UpdateRestaurantInput{
		Name:        r.Name,
		Description: r.Description,
		Address:     r.Address,
		City:        r.City,
		PhotoURL:    r.PhotoURL,
		IsActive:    r.IsActive,
	}
}

type ListRestaurantsQuery struct {
	City   *string `form:"city" binding:"omitempty,max=100"`
	Letter *string `form:"letter"`
}

func (q ListRestaurantsQuery) ToFilter() queries.RestaurantFilter {
	return queries.RestaurantFilter{City: q.City, Letter: q.Letter}
}
