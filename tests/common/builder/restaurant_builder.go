//go:build unit || e2e

package builder

import (
	"time"

	"restaurant-booking/internal/domain/restaurant"
	reqdto "restaurant-booking/internal/handler/dto/request"
	"restaurant-booking/internal/usecase/commands"
	"restaurant-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type RestaurantBuilder struct {
	ID          uuid.UUID
	Name        string
	Description *string
	Address     string
	City        string
	PhotoURL    *string
	IsActive    bool
	Deleted     bool
	CreatedAt   time.Time
}

func NewRestaurantBuilder() *RestaurantBuilder {
	desc := "Parrilla tradicional"
	return &RestaurantBuilder{
		ID:          uuid.New(),
		Name:        "Costillas Grills",
		Description: &desc,
		Address:     "Calle 85 #12-20",
		City:        "Bogotá",
		IsActive:    true,
		CreatedAt:   time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *RestaurantBuilder) With(mutate func(*RestaurantBuilder)) *RestaurantBuilder {
	if mutate != nil {
		mutate(b)
	}
	return b
}

func (b *RestaurantBuilder) WithName(name string) *RestaurantBuilder {
	b.Name = name
	return b
}

func (b *RestaurantBuilder) WithCity(city string) *RestaurantBuilder {
	b.City = city
	return b
}

func (b *RestaurantBuilder) WithPhotoURL(u string) *RestaurantBuilder {
	b.PhotoURL = &u
	return b
}

func (b *RestaurantBuilder) AsInactive() *RestaurantBuilder {
	b.IsActive = false
	return b
}

func (b *RestaurantBuilder) AsDeleted() *RestaurantBuilder {
	b.Deleted = true
	b.IsActive = false
	return b
}

func (b *RestaurantBuilder) Params() restaurant.Params {
	return restaurant.Params{
		Name:        b.Name,
		Description: b.Description,
		Address:     b.Address,
		City:        b.City,
		PhotoURL:    b.PhotoURL,
		IsActive:    b.IsActive,
	}
}

func (b *RestaurantBuilder) BuildDomain() (*restaurant.Restaurant, error) {
	return restaurant.NewRestaurant(b.Params(), b.CreatedAt)
}

// BuildStored keeps the builder's ID, as if the row had been loaded.
func (b *RestaurantBuilder) BuildStored() *restaurant.Restaurant {
	name, err := restaurant.NewName(b.Name)
	if err != nil {
		panic(err)
	}
	address, err := restaurant.NewAddress(b.Address)
	if err != nil {
		panic(err)
	}
	city, err := restaurant.NewCity(b.City)
	if err != nil {
		panic(err)
	}
	var deletedAt *time.Time
	if b.Deleted {
		at := b.CreatedAt.Add(time.Hour)
		deletedAt = &at
	}
	return restaurant.ReconstructRestaurant(b.ID, name, b.Description, address, city, b.PhotoURL, b.IsActive, b.CreatedAt, b.CreatedAt, deletedAt)
}

func (b *RestaurantBuilder) BuildCreateInput() commands.CreateRestaurantInput {
	active := b.IsActive
	return commands.CreateRestaurantInput{
		Name:        b.Name,
		Description: b.Description,
		Address:     b.Address,
		City:        b.City,
		PhotoURL:    b.PhotoURL,
		IsActive:    &active,
	}
}

func (b *RestaurantBuilder) BuildCreateDTO() reqdto.CreateRestaurantRequest {
	active := b.IsActive
	return reqdto.CreateRestaurantRequest{
		Name:        b.Name,
		Description: b.Description,
		Address:     b.Address,
		City:        b.City,
		PhotoURL:    b.PhotoURL,
		IsActive:    &active,
	}
}

func (b *RestaurantBuilder) BuildView() *queries.RestaurantView {
	view := &queries.RestaurantView{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Address:     b.Address,
		City:        b.City,
		PhotoURL:    b.PhotoURL,
		IsActive:    b.IsActive,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.CreatedAt,
	}
	if b.Deleted {
		at := b.CreatedAt.Add(time.Hour)
		view.DeletedAt = &at
	}
	return view
}
