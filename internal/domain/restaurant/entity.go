package restaurant

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Restaurant struct {
	id          uuid.UUID
	name        Name
	description *string
	address     Address
	city        City
	photoURL    *string
	isActive    bool
	createdAt   time.Time
	updatedAt   time.Time
	deletedAt   *time.Time
}

type Params struct {
	Name        string
	Description *string
	Address     string
	City        string
	PhotoURL    *string
	IsActive    bool
}

func NewRestaurant(p Params, now time.Time) (*Restaurant, error) {
	r := &Restaurant{
		id:        uuid.New(),
		createdAt: now,
		updatedAt: now,
	}
	if err := r.apply(p); err != nil {
		return nil, err
	}
	return r, nil
}

func ReconstructRestaurant(id uuid.UUID, name Name, description *string, address Address, city City, photoURL *string, isActive bool, createdAt, updatedAt time.Time, deletedAt *time.Time) *Restaurant {
	return &Restaurant{
		id:          id,
		name:        name,
		description: description,
		address:     address,
		city:        city,
		photoURL:    photoURL,
		isActive:    isActive,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		deletedAt:   deletedAt,
	}
}

// Update replaces every field. Callers merge partial input beforehand.
func (r *Restaurant) Update(p Params, now time.Time) error {
	if r.IsDeleted() {
		return ErrAlreadyDeleted
	}
	if err := r.apply(p); err != nil {
		return err
	}
	r.updatedAt = now
	return nil
}

// SoftDelete also deactivates: a deleted restaurant is never active.
func (r *Restaurant) SoftDelete(now time.Time) error {
	if r.IsDeleted() {
		return ErrAlreadyDeleted
	}
	r.deletedAt = &now
	r.isActive = false
	r.updatedAt = now
	return nil
}

func (r *Restaurant) apply(p Params) error {
	name, err := NewName(p.Name)
	if err != nil {
		return err
	}
	address, err := NewAddress(p.Address)
	if err != nil {
		return err
	}
	city, err := NewCity(p.City)
	if err != nil {
		return err
	}
	photo, err := NewPhotoURL(p.PhotoURL)
	if err != nil {
		return err
	}

	r.name = name
	r.description = trimOptional(p.Description)
	r.address = address
	r.city = city
	r.photoURL = photo
	r.isActive = p.IsActive
	return nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func (r *Restaurant) ID() uuid.UUID         { return r.id }
func (r *Restaurant) Name() Name            { return r.name }
func (r *Restaurant) Description() *string  { return r.description }
func (r *Restaurant) Address() Address      { return r.address }
func (r *Restaurant) City() City            { return r.city }
func (r *Restaurant) PhotoURL() *string     { return r.photoURL }
func (r *Restaurant) IsActive() bool        { return r.isActive }
func (r *Restaurant) CreatedAt() time.Time  { return r.createdAt }
func (r *Restaurant) UpdatedAt() time.Time  { return r.updatedAt }
func (r *Restaurant) DeletedAt() *time.Time { return r.deletedAt }
func (r *Restaurant) IsDeleted() bool       { return r.deletedAt != nil }

// AcceptsReservations reports whether new bookings may reference r.
func (r *Restaurant) AcceptsReservations() bool {
	return !r.IsDeleted() && r.isActive
}

// Snapshot exposes r's fields as Params for partial updates.
func (r *Restaurant) Snapshot() Params {
	return Params{
		Name:        r.name.String(),
		Description: r.description,
		Address:     r.address.String(),
		City:        r.city.String(),
		PhotoURL:    r.photoURL,
		IsActive:    r.isActive,
	}
}
