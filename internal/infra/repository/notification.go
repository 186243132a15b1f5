package repository

import (
	"context"
	"time"

	"restaurant-booking/internal/infra"
	"restaurant-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const createNotificationJobSQL = `
INSERT INTO notification_jobs (id, kind, topic, payload, status, attempts, run_at, created_at)
VALUES ($1, $2, $3, $4, 'pending', 0, $5, $5)`

type NotificationRepository struct {
	db infra.DBTX
}

func NewNotificationRepository(db infra.DBTX) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	id, err := uuid.NewV7()
	if err != nil {
		return infra.WrapRepoErr("failed to generate notification job id", err)
	}

	// payload is already JSON; pass it as a string so it lands in the jsonb column verbatim
	_, err = r.db.Exec(ctx, createNotificationJobSQL, id, kind, topic, string(payload), pgconv.TimeToPgtype(runAt))
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}
