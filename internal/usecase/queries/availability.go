package queries

import (
	"context"
	"log/slog"
	"time"

	"campsite-booking/internal/domain/daterange"
	"campsite-booking/internal/pkg/errs"
	"campsite-booking/internal/usecase/shared"
)

type AvailabilityQueries interface {
	// AvailabilityFor returns the free sub-ranges of [from, to]. Requires from < to.
	AvailabilityFor(ctx context.Context, from, to time.Time) (*AvailabilityView, error)
}

type availabilityQueriesImpl struct {
	uow    shared.UnitOfWork
	cache  shared.AvailabilityCache
	logger *slog.Logger
}

func NewAvailabilityQueries(uow shared.UnitOfWork, cache shared.AvailabilityCache, logger *slog.Logger) AvailabilityQueries {
	return &availabilityQueriesImpl{
		uow:    uow,
		cache:  cache,
		logger: logger,
	}
}

func (q *availabilityQueriesImpl) AvailabilityFor(ctx context.Context, from, to time.Time) (*AvailabilityView, error) {
	from, to = daterange.Of(from), daterange.Of(to)
	if !from.Before(to) {
		return nil, errs.Wrapf(errs.ErrInvalidWindow, "from %s must be before to %s", daterange.Format(from), daterange.Format(to))
	}
	window, err := daterange.NewRange(from, to)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidWindow)
	}

	cached, gen, hit, lookupErr := q.cache.Get(ctx, window)
	if lookupErr != nil {
		q.logger.Warn("availability cache lookup failed", "window", window.String(), "error", lookupErr.Error())
	}
	if hit {
		return &AvailabilityView{Window: window, Free: cached}, nil
	}

	var free []daterange.Range
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.ReadTx) error {
		overlapping, err := tx.Reservations().FindOverlapping(ctx, window)
		if err != nil {
			return err
		}

		occupied := make([]daterange.Range, 0, len(overlapping))
		for _, res := range overlapping {
			if res.Blocks() {
				occupied = append(occupied, *res.DateRange())
			}
		}
		free = daterange.ComplementWithin(window, occupied)
		return nil
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	// gen is unknown after a failed lookup, so nothing is stored.
	if lookupErr == nil {
		if putErr := q.cache.Put(ctx, window, gen, free); putErr != nil {
			q.logger.Warn("availability cache store failed", "window", window.String(), "error", putErr.Error())
		}
	}

	return &AvailabilityView{Window: window, Free: free}, nil
}
