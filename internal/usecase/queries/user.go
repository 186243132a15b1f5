package queries

import (
	"context"

	"github.com/google/uuid"

	"restaurant-booking/internal/domain/user"
	"restaurant-booking/internal/infra"
	"restaurant-booking/internal/pkg/errs"
)

//go:generate mockgen -source=user.go -destination=../../../tests/mock/queries/user_mock.go -package=queriesmock

var (
	ErrUserNotFound = errs.New("user not found")
	ErrUserInactive = errs.New("user inactive")
)

type UserQueries interface {
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*AuthorizedUserView, error)
}

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
	// FindByUsername also returns the stored password hash for login.
	FindByUsername(ctx context.Context, username string) (*AuthorizedUserView, string, error)
}

type userQueries struct {
	readStore UserReadStore
}

func NewUserQueries(readStore UserReadStore) UserQueries {
	return &userQueries{readStore: readStore}
}

// GetCurrentUser reloads the token subject so a deactivated or demoted
// account is reported with its stored state, not the token's.
func (q *userQueries) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*AuthorizedUserView, error) {
	view, err := q.readStore.FindByID(ctx, userID)
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return nil, ErrUserNotFound
	case err != nil:
		return nil, err
	case !view.IsActive:
		return nil, ErrUserInactive
	}

	if _, err := user.NewRole(view.Role); err != nil {
		return nil, errs.Wrapf(err, "user %s has unknown role %q", view.ID, view.Role)
	}
	return view, nil
}
