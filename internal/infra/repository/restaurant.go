package repository

import (
	"context"

	"restaurant-booking/internal/domain/restaurant"
	"restaurant-booking/internal/infra"
	"restaurant-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	restaurantColumns = `id, name, description, address, city, photo_url, is_active, created_at, updated_at, deleted_at`

	findRestaurantForShareSQL  = `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = $1 FOR SHARE`
	findRestaurantForUpdateSQL = `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = $1 FOR UPDATE`

	createRestaurantSQL = `
INSERT INTO restaurants (id, name, description, address, city, photo_url, is_active, created_at, updated_at, deleted_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	updateRestaurantSQL = `
UPDATE restaurants
SET name = $2, description = $3, address = $4, city = $5, photo_url = $6,
    is_active = $7, updated_at = $8, deleted_at = $9
WHERE id = $1`
)

type RestaurantRepository struct {
	db infra.DBTX
}

func NewRestaurantRepository(db infra.DBTX) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

func (r *RestaurantRepository) FindByIDForShare(ctx context.Context, id uuid.UUID) (*restaurant.Restaurant, error) {
	return r.find(ctx, findRestaurantForShareSQL, id)
}

func (r *RestaurantRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*restaurant.Restaurant, error) {
	return r.find(ctx, findRestaurantForUpdateSQL, id)
}

func (r *RestaurantRepository) find(ctx context.Context, query string, id uuid.UUID) (*restaurant.Restaurant, error) {
	var (
		rid                   uuid.UUID
		name, address, city   string
		description, photoURL pgtype.Text
		isActive              bool
		createdAt, updatedAt  pgtype.Timestamptz
		deletedAt             pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&rid, &name, &description, &address, &city, &photoURL, &isActive, &createdAt, &updatedAt, &deletedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("restaurant not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find restaurant", err)
	}

	return toRestaurantEntity(rid, name, description, address, city, photoURL, isActive, createdAt, updatedAt, deletedAt)
}

func (r *RestaurantRepository) Create(ctx context.Context, rest *restaurant.Restaurant) error {
	_, err := r.db.Exec(ctx, createRestaurantSQL,
		rest.ID(),
		rest.Name().String(),
		pgconv.StringPtrToPgtype(rest.Description()),
		rest.Address().String(),
		rest.City().String(),
		pgconv.StringPtrToPgtype(rest.PhotoURL()),
		rest.IsActive(),
		pgconv.TimeToPgtype(rest.CreatedAt()),
		pgconv.TimeToPgtype(rest.UpdatedAt()),
		pgconv.TimePtrToPgtype(rest.DeletedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create restaurant", err)
	}
	return nil
}

func (r *RestaurantRepository) Update(ctx context.Context, rest *restaurant.Restaurant) error {
	tag, err := r.db.Exec(ctx, updateRestaurantSQL,
		rest.ID(),
		rest.Name().String(),
		pgconv.StringPtrToPgtype(rest.Description()),
		rest.Address().String(),
		rest.City().String(),
		pgconv.StringPtrToPgtype(rest.PhotoURL()),
		rest.IsActive(),
		pgconv.TimeToPgtype(rest.UpdatedAt()),
		pgconv.TimePtrToPgtype(rest.DeletedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update restaurant", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("restaurant not found", nil, infra.KindNotFound)
	}
	return nil
}

func toRestaurantEntity(
	id uuid.UUID,
	name string,
	description pgtype.Text,
	address, city string,
	photoURL pgtype.Text,
	isActive bool,
	createdAt, updatedAt, deletedAt pgtype.Timestamptz,
) (*restaurant.Restaurant, error) {
	n, err := restaurant.NewName(name)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid restaurant name in storage", err)
	}
	addr, err := restaurant.NewAddress(address)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid restaurant address in storage", err)
	}
	c, err := restaurant.NewCity(city)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid restaurant city in storage", err)
	}

	return restaurant.ReconstructRestaurant(
		id,
		n,
		pgconv.StringPtrFromPgtype(description),
		addr,
		c,
		pgconv.StringPtrFromPgtype(photoURL),
		isActive,
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
		pgconv.TimePtrFromPgtype(deletedAt),
	), nil
}
