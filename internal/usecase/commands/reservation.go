package commands

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"campsite-booking/internal/domain/daterange"
	"campsite-booking/internal/domain/reservation"
	"campsite-booking/internal/infra"
	"campsite-booking/internal/pkg/clock"
	"campsite-booking/internal/pkg/errs"
	"campsite-booking/internal/pkg/patch"
	"campsite-booking/internal/usecase/queries"
	"campsite-booking/internal/usecase/shared"
)

var errPartialDates = errors.New("arrival and departure must be provided together")

// ReservationCommands is the single write path for reservations. Each call
// runs in one transaction; conflicts are reported, never retried.
type ReservationCommands interface {
	CreateReservation(ctx context.Context, in CreateReservationInput) (*queries.ReservationView, error)
	UpdateReservation(ctx context.Context, id int64, in UpdateReservationInput) (*queries.ReservationView, error)
	CancelReservation(ctx context.Context, id int64) (*queries.ReservationView, error)
}

type reservationUseCaseImpl struct {
	uow    shared.UnitOfWork
	cache  shared.AvailabilityCache
	clock  clock.Clock
	logger *slog.Logger
}

func NewReservationUseCase(
	uow shared.UnitOfWork,
	cache shared.AvailabilityCache,
	clk clock.Clock,
	logger *slog.Logger,
) ReservationCommands {
	return &reservationUseCaseImpl{
		uow:    uow,
		cache:  cache,
		clock:  clk,
		logger: logger,
	}
}

func (uc *reservationUseCaseImpl) CreateReservation(ctx context.Context, in CreateReservationInput) (*queries.ReservationView, error) {
	stay, err := daterange.NewStay(in.Arrival, in.Departure)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	candidate := reservation.NewReservation(reservation.NewHolder(in.Name, in.Email), stay)

	var created *reservation.Reservation
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := ensureAvailable(ctx, tx.Reservations(), stay, 0); err != nil {
			return err
		}

		saved, err := tx.Reservations().Insert(ctx, candidate)
		if err != nil {
			return err
		}

		if err := uc.enqueue(ctx, tx, shared.TopicReservationCreated, saved, saved.DateRange()); err != nil {
			return err
		}
		created = saved
		return nil
	})
	if err != nil {
		return nil, translateError(err)
	}

	uc.invalidateAvailability(ctx)
	uc.logger.Info("reservation created",
		"reservation_id", created.ID(),
		"arrival", daterange.Format(stay.Start),
		"departure", daterange.Format(stay.End))

	return queries.ToReservationView(created), nil
}

func (uc *reservationUseCaseImpl) UpdateReservation(ctx context.Context, id int64, in UpdateReservationInput) (*queries.ReservationView, error) {
	if !patch.BothOrNone(in.Arrival, in.Departure) {
		return nil, errs.Mark(errPartialDates, errs.ErrDomainValidation)
	}

	changes := reservation.Changes{Name: in.Name, Email: in.Email}
	if in.Arrival != nil {
		stay, err := daterange.NewStay(*in.Arrival, *in.Departure)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDomainValidation)
		}
		changes.Stay = &stay
	}

	var updated *reservation.Reservation
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().Get(ctx, id)
		if err != nil {
			return err
		}

		if err := res.Apply(changes); err != nil {
			return errs.Mark(err, errs.ErrInvalidState)
		}

		if changes.ChangesDates() {
			if err := ensureAvailable(ctx, tx.Reservations(), *changes.Stay, res.ID()); err != nil {
				return err
			}
		}

		saved, err := tx.Reservations().ConditionalSave(ctx, res)
		if err != nil {
			return err
		}

		if err := uc.enqueue(ctx, tx, shared.TopicReservationUpdated, saved, saved.DateRange()); err != nil {
			return err
		}
		updated = saved
		return nil
	})
	if err != nil {
		return nil, translateError(err)
	}

	if changes.ChangesDates() {
		uc.invalidateAvailability(ctx)
	}
	uc.logger.Info("reservation updated",
		"reservation_id", updated.ID(),
		"version", updated.Version(),
		"dates_changed", changes.ChangesDates())

	return queries.ToReservationView(updated), nil
}

func (uc *reservationUseCaseImpl) CancelReservation(ctx context.Context, id int64) (*queries.ReservationView, error) {
	var cancelled *reservation.Reservation
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().Get(ctx, id)
		if err != nil {
			return err
		}

		var released *daterange.Range
		if r := res.DateRange(); r != nil {
			copied := *r
			released = &copied
		}

		if err := res.Cancel(); err != nil {
			return errs.Mark(err, errs.ErrInvalidState)
		}

		saved, err := tx.Reservations().ConditionalSave(ctx, res)
		if err != nil {
			return err
		}

		if err := uc.enqueue(ctx, tx, shared.TopicReservationCancelled, saved, released); err != nil {
			return err
		}
		cancelled = saved
		return nil
	})
	if err != nil {
		return nil, translateError(err)
	}

	uc.invalidateAvailability(ctx)
	uc.logger.Info("reservation cancelled",
		"reservation_id", cancelled.ID(),
		"version", cancelled.Version())

	return queries.ToReservationView(cancelled), nil
}

// ensureAvailable fails with ErrDateUnavailable when an active reservation
// other than excludeID overlaps stay. Store ids start at 1, so 0 excludes nothing.
func ensureAvailable(ctx context.Context, store shared.ReservationReader, stay daterange.Range, excludeID int64) error {
	overlapping, err := store.FindOverlapping(ctx, stay)
	if err != nil {
		return err
	}
	for _, other := range overlapping {
		if other.IsActive() && other.ID() != excludeID {
			return errs.Wrapf(errs.ErrDateUnavailable, "%s overlaps reservation %d", stay, other.ID())
		}
	}
	return nil
}

func (uc *reservationUseCaseImpl) enqueue(
	ctx context.Context,
	tx shared.Tx,
	topic string,
	res *reservation.Reservation,
	dates *daterange.Range,
) error {
	event := reservationEvent{
		ReservationID: res.ID(),
		Version:       res.Version(),
		Status:        res.Status().String(),
		Name:          res.Holder().Name(),
		Email:         res.Holder().Email(),
		OccurredAt:    uc.clock.Now().UTC(),
	}
	if dates != nil {
		event.Arrival = daterange.Format(dates.Start)
		event.Departure = daterange.Format(dates.End)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return errs.Wrap(err, "marshal reservation event")
	}

	_, err = tx.Notifications().Enqueue(ctx, topic, payload, uc.clock.Now())
	return err
}

// invalidateAvailability runs after commit; a cache failure never fails the write.
func (uc *reservationUseCaseImpl) invalidateAvailability(ctx context.Context) {
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.logger.Warn("failed to invalidate availability cache", "error", err.Error())
	}
}

// translateError maps gateway outcomes onto business errors. Anything the
// store did not classify is an opaque internal fault.
func translateError(err error) error {
	switch {
	case errs.Is(err, errs.ErrDateUnavailable),
		errs.Is(err, errs.ErrInvalidState),
		errs.Is(err, errs.ErrDomainValidation):
		return err
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, errs.ErrReservationNotFound)
	case infra.IsKind(err, infra.KindExclusionViolated):
		return errs.Mark(err, errs.ErrDateUnavailable)
	case infra.IsKind(err, infra.KindVersionMismatch):
		return errs.Mark(err, errs.ErrVersionConflict)
	default:
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
}
