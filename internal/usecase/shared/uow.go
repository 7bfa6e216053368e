package shared

import (
	"context"
	"time"

	"campsite-booking/internal/domain/daterange"
	"campsite-booking/internal/domain/reservation"
	"campsite-booking/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Read-decide-write transaction; transient store faults re-run fn
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Single snapshot for multi-statement reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx ReadTx) error) error
}

type Tx interface {
	Reservations() ReservationStore
	Notifications() NotificationRepository
}

type ReadTx interface {
	Reservations() ReservationReader
}

// ReservationReader is the read half of the reservation gateway.
// FindOverlapping uses inclusive bounds and returns rows of every status.
type ReservationReader interface {
	Get(ctx context.Context, id int64) (*reservation.Reservation, error)
	FindOverlapping(ctx context.Context, window daterange.Range) ([]*reservation.Reservation, error)
}

type ReservationStore interface {
	ReservationReader
	// Insert assigns id and version 0.
	Insert(ctx context.Context, res *reservation.Reservation) (*reservation.Reservation, error)
	// ConditionalSave persists res only if the stored version equals res.Version().
	ConditionalSave(ctx context.Context, res *reservation.Reservation) (*reservation.Reservation, error)
}

type NotificationRepository interface {
	Enqueue(ctx context.Context, topic string, payload []byte, runAt time.Time) (uuid.UUID, error)
	ClaimPending(ctx context.Context, limit int32) ([]*readmodel.NotificationJobRM, error)
	MarkSent(ctx context.Context, jobID uuid.UUID) error
	MarkFailed(ctx context.Context, jobID uuid.UUID, cause string, nextRunAt time.Time, maxAttempts int32) error
}
