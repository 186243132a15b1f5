package commands

import (
	"context"

	"restaurant-booking/internal/domain/restaurant"
	"restaurant-booking/internal/infra"
	"restaurant-booking/internal/pkg/clock"
	"restaurant-booking/internal/pkg/errs"
	"restaurant-booking/internal/pkg/patch"
	"restaurant-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=restaurant.go -destination=../../../tests/mock/commands/restaurant_mock.go -package=commandsmock

var ErrRestaurantNotFound = errs.New("Restaurante no encontrado.")

type CreateRestaurantInput struct {
	Name        string
	Description *string
	Address     string
	City        string
	PhotoURL    *string
	IsActive    *bool
}

// UpdateRestaurantInput is a partial update: nil fields keep their value.
// An empty Description or PhotoURL clears it.
type UpdateRestaurantInput struct {
	Name        *string
	Description *string
	Address     *string
	City        *string
	PhotoURL    *string
	IsActive    *bool
}

type RestaurantCommands interface {
	Create(ctx context.Context, in CreateRestaurantInput) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateRestaurantInput) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type restaurantCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewRestaurantCommands(uow shared.UnitOfWork, clk clock.Clock) RestaurantCommands {
	return &restaurantCommandsImpl{uow: uow, clock: clk}
}

func (uc *restaurantCommandsImpl) Create(ctx context.Context, in CreateRestaurantInput) (uuid.UUID, error) {
	r, err := restaurant.NewRestaurant(restaurant.Params{
		Name:        in.Name,
		Description: in.Description,
		Address:     in.Address,
		City:        in.City,
		PhotoURL:    in.PhotoURL,
		IsActive:    patch.Coalesce(in.IsActive, true),
	}, uc.clock.Now())
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Restaurants().Create(ctx, r)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return r.ID(), nil
}

func (uc *restaurantCommandsImpl) Update(ctx context.Context, id uuid.UUID, in UpdateRestaurantInput) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := uc.findLive(ctx, tx, id)
		if err != nil {
			return err
		}

		cur := r.Snapshot()
		next := restaurant.Params{
			Name:        patch.Coalesce(in.Name, cur.Name),
			Description: patch.Optional(in.Description, cur.Description),
			Address:     patch.Coalesce(in.Address, cur.Address),
			City:        patch.Coalesce(in.City, cur.City),
			PhotoURL:    patch.Optional(in.PhotoURL, cur.PhotoURL),
			IsActive:    patch.Coalesce(in.IsActive, cur.IsActive),
		}
		if err = r.Update(next, uc.clock.Now()); err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}
		return tx.Restaurants().Update(ctx, r)
	})
}

func (uc *restaurantCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := uc.findLive(ctx, tx, id)
		if err != nil {
			return err
		}
		if err = r.SoftDelete(uc.clock.Now()); err != nil {
			return ErrRestaurantNotFound
		}
		return tx.Restaurants().Update(ctx, r)
	})
}

func (uc *restaurantCommandsImpl) findLive(ctx context.Context, tx shared.Tx, id uuid.UUID) (*restaurant.Restaurant, error) {
	r, err := tx.Restaurants().FindByIDForUpdate(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	if r.IsDeleted() {
		return nil, ErrRestaurantNotFound
	}
	return r, nil
}
