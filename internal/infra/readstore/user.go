package readstore

import (
	"context"

	"github.com/google/uuid"

	"restaurant-booking/internal/infra"
	"restaurant-booking/internal/pkg/pgconv"
	"restaurant-booking/internal/usecase/queries"
)

const (
	findUserByIDSQL       = `SELECT id, username, role, is_active FROM users WHERE id = $1`
	findUserByUsernameSQL = `SELECT id, username, role, is_active, password_hash FROM users WHERE username = $1`
)

type UserReadStore struct {
	db infra.DBTX
}

func NewUserReadStore(db infra.DBTX) *UserReadStore {
	return &UserReadStore{db: db}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	var v queries.AuthorizedUserView
	err := r.db.QueryRow(ctx, findUserByIDSQL, id).Scan(&v.ID, &v.Username, &v.Role, &v.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &v, nil
}

func (r *UserReadStore) FindByUsername(ctx context.Context, username string) (*queries.AuthorizedUserView, string, error) {
	var (
		v            queries.AuthorizedUserView
		passwordHash string
	)
	err := r.db.QueryRow(ctx, findUserByUsernameSQL, username).Scan(&v.ID, &v.Username, &v.Role, &v.IsActive, &passwordHash)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by username", err)
	}
	return &v, passwordHash, nil
}
