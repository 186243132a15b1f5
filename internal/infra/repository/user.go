package repository

import (
	"context"
	"time"

	"restaurant-booking/internal/infra"
	"restaurant-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const updateLastLoginSQL = `UPDATE users SET last_login_at = $2, updated_at = $2 WHERE id = $1`

type UserRepository struct {
	db infra.DBTX
}

func NewUserRepository(db infra.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error {
	tag, err := r.db.Exec(ctx, updateLastLoginSQL, userID, pgconv.TimeToPgtype(at))
	if err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}
