package repository

import (
	"context"
	"time"

	"campsite-booking/internal/infra"
	"campsite-booking/internal/infra/readstore"
	sqlc "campsite-booking/internal/infra/sqlc/generated"
	"campsite-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	JobStatusQueued = "queued"
	JobKindEvent    = "event"
)

type NotificationWriteQueries interface {
	readstore.NotificationReadQueries
	CreateNotificationJob(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateNotificationJobParams) error
	MarkNotificationJobSent(ctx context.Context, db sqlc.DBTX, id uuid.UUID) error
	MarkNotificationJobFailed(ctx context.Context, db sqlc.DBTX, arg sqlc.MarkNotificationJobFailedParams) error
}

type NotificationRepository struct {
	*readstore.NotificationReadStore
	queries NotificationWriteQueries
	db      sqlc.DBTX
}

func NewNotificationRepository(queries NotificationWriteQueries, db sqlc.DBTX) *NotificationRepository {
	return &NotificationRepository{
		NotificationReadStore: readstore.NewNotificationReadStore(queries, db),
		queries:               queries,
		db:                    db,
	}
}

// Enqueue records an event in the outbox and returns its id.
func (r *NotificationRepository) Enqueue(ctx context.Context, topic string, payload []byte, runAt time.Time) (uuid.UUID, error) {
	id := uuid.New()
	params := sqlc.CreateNotificationJobParams{
		ID:      id,
		Kind:    JobKindEvent,
		Topic:   topic,
		Payload: payload,
		Status:  JobStatusQueued,
		RunAt:   pgconv.TimeToPgtype(runAt),
	}

	if err := r.queries.CreateNotificationJob(ctx, r.db, params); err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create notification job", err)
	}
	return id, nil
}

func (r *NotificationRepository) MarkSent(ctx context.Context, jobID uuid.UUID) error {
	if err := r.queries.MarkNotificationJobSent(ctx, r.db, jobID); err != nil {
		return infra.WrapRepoErr("failed to mark notification job sent", err)
	}
	return nil
}

// MarkFailed requeues the job at nextRunAt, or parks it as failed once
// maxAttempts is reached.
func (r *NotificationRepository) MarkFailed(ctx context.Context, jobID uuid.UUID, cause string, nextRunAt time.Time, maxAttempts int32) error {
	params := sqlc.MarkNotificationJobFailedParams{
		MaxAttempts: maxAttempts,
		LastError:   pgtype.Text{String: cause, Valid: cause != ""},
		NextRunAt:   pgconv.TimeToPgtype(nextRunAt),
		ID:          jobID,
	}

	if err := r.queries.MarkNotificationJobFailed(ctx, r.db, params); err != nil {
		return infra.WrapRepoErr("failed to mark notification job failed", err)
	}
	return nil
}
