package queries

import (
	"context"
	"unicode/utf8"

	"restaurant-booking/internal/infra"
	"restaurant-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=restaurant.go -destination=../../../tests/mock/queries/restaurant_mock.go -package=queriesmock

var (
	ErrRestaurantNotFound = errs.New("Restaurante no encontrado.")
	ErrInvalidLetter      = errs.New("letter must be a single character")
)

// RestaurantFilter matches City as a case-insensitive substring and Letter
// as a case-insensitive name prefix.
type RestaurantFilter struct {
	City   *string
	Letter *string
}

type RestaurantReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RestaurantView, error)
	ListAvailable(ctx context.Context, filter RestaurantFilter) ([]*RestaurantView, error)
}

type RestaurantQueries interface {
	List(ctx context.Context, filter RestaurantFilter) ([]*RestaurantView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*RestaurantView, error)
}

type restaurantQueriesImpl struct {
	store RestaurantReadStore
}

func NewRestaurantQueries(store RestaurantReadStore) RestaurantQueries {
	return &restaurantQueriesImpl{store: store}
}

// List only ever returns restaurants that are active and not deleted.
func (q *restaurantQueriesImpl) List(ctx context.Context, filter RestaurantFilter) ([]*RestaurantView, error) {
	filter.City = trimmed(filter.City)
	filter.Letter = trimmed(filter.Letter)
	if filter.Letter != nil && utf8.RuneCountInString(*filter.Letter) != 1 {
		return nil, errs.Mark(ErrInvalidLetter, errs.ErrDomainValidation)
	}

	rows, err := q.store.ListAvailable(ctx, filter)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []*RestaurantView{}
	}
	return rows, nil
}

func (q *restaurantQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*RestaurantView, error) {
	v, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	if v.DeletedAt != nil {
		return nil, ErrRestaurantNotFound
	}
	return v, nil
}
