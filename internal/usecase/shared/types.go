package shared

import (
	"context"

	"campsite-booking/internal/domain/daterange"
)

// AvailabilityCache memoizes free ranges per window. Get reports the cache
// generation it looked at; Put stores under that generation so a result
// computed before an Invalidate can never be served after it.
type AvailabilityCache interface {
	Get(ctx context.Context, window daterange.Range) (free []daterange.Range, gen int64, hit bool, err error)
	Put(ctx context.Context, window daterange.Range, gen int64, free []daterange.Range) error
	Invalidate(ctx context.Context) error
}

// Reservation event topics written to the outbox.
const (
	TopicReservationCreated   = "reservation.created"
	TopicReservationUpdated   = "reservation.updated"
	TopicReservationCancelled = "reservation.cancelled"
)
