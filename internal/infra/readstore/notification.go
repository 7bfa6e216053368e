package readstore

import (
	"context"

	"campsite-booking/internal/infra"
	sqlc "campsite-booking/internal/infra/sqlc/generated"
	"campsite-booking/internal/pkg/pgconv"
	"campsite-booking/internal/usecase/readmodel"
)

type NotificationReadQueries interface {
	ClaimPendingNotificationJobs(ctx context.Context, db sqlc.DBTX, limit int32) ([]sqlc.NotificationJobs, error)
}

type NotificationReadStore struct {
	queries NotificationReadQueries
	db      sqlc.DBTX
}

func NewNotificationReadStore(queries NotificationReadQueries, db sqlc.DBTX) *NotificationReadStore {
	return &NotificationReadStore{
		queries: queries,
		db:      db,
	}
}

// ClaimPending locks up to limit due jobs. Rows stay locked until the
// surrounding transaction ends, so concurrent relays skip them.
func (s *NotificationReadStore) ClaimPending(ctx context.Context, limit int32) ([]*readmodel.NotificationJobRM, error) {
	rows, err := s.queries.ClaimPendingNotificationJobs(ctx, s.db, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim pending notification jobs", err)
	}

	result := make([]*readmodel.NotificationJobRM, len(rows))
	for i, row := range rows {
		result[i] = toNotificationJobRM(row)
	}

	return result, nil
}

func toNotificationJobRM(row sqlc.NotificationJobs) *readmodel.NotificationJobRM {
	return &readmodel.NotificationJobRM{
		ID:        row.ID,
		Kind:      row.Kind,
		Topic:     row.Topic,
		Payload:   row.Payload,
		RunAt:     pgconv.TimeFromPgtype(row.RunAt),
		Attempts:  row.Attempts,
		Status:    row.Status,
		LastError: pgconv.StringPtrFromPgtype(row.LastError),
		CreatedAt: pgconv.TimeFromPgtype(row.CreatedAt),
	}
}
