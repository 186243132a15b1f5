package readstore

import (
	"context"
	"strings"

	"restaurant-booking/internal/infra"
	"restaurant-booking/internal/pkg/pgconv"
	"restaurant-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	restaurantViewColumns = `id, name, description, address, city, photo_url, is_active, created_at, updated_at, deleted_at`

	findRestaurantSQL = `SELECT ` + restaurantViewColumns + ` FROM restaurants WHERE id = $1`

	listAvailableRestaurantsSQL = `
SELECT ` + restaurantViewColumns + `
FROM restaurants
WHERE deleted_at IS NULL
  AND is_active
  AND ($1::text IS NULL OR city ILIKE $1)
  AND ($2::text IS NULL OR name ILIKE $2)
ORDER BY name, id`
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type RestaurantReadStore struct {
	db infra.DBTX
}

func NewRestaurantReadStore(db infra.DBTX) *RestaurantReadStore {
	return &RestaurantReadStore{db: db}
}

// FindByID returns deleted restaurants too; callers decide visibility.
func (s *RestaurantReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RestaurantView, error) {
	v, err := scanRestaurantView(s.db.QueryRow(ctx, findRestaurantSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("restaurant not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find restaurant", err)
	}
	return v, nil
}

func (s *RestaurantReadStore) ListAvailable(ctx context.Context, filter queries.RestaurantFilter) ([]*queries.RestaurantView, error) {
	var city, name pgtype.Text
	if filter.City != nil {
		city = pgtype.Text{String: "%" + likeEscaper.Replace(*filter.City) + "%", Valid: true}
	}
	if filter.Letter != nil {
		name = pgtype.Text{String: likeEscaper.Replace(*filter.Letter) + "%", Valid: true}
	}

	rows, err := s.db.Query(ctx, listAvailableRestaurantsSQL, city, name)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list restaurants", err)
	}
	views, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.RestaurantView, error) {
		return scanRestaurantView(row)
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan restaurants", err)
	}
	return views, nil
}

func scanRestaurantView(row pgx.Row) (*queries.RestaurantView, error) {
	var (
		v                     queries.RestaurantView
		description, photoURL pgtype.Text
		createdAt, updatedAt  pgtype.Timestamptz
		deletedAt             pgtype.Timestamptz
	)
	err := row.Scan(
		&v.ID, &v.Name, &description, &v.Address, &v.City, &photoURL, &v.IsActive, &createdAt, &updatedAt, &deletedAt,
	)
	if err != nil {
		return nil, err
	}
	v.Description = pgconv.StringPtrFromPgtype(description)
	v.PhotoURL = pgconv.StringPtrFromPgtype(photoURL)
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	v.DeletedAt = pgconv.TimePtrFromPgtype(deletedAt)
	return &v, nil
}
