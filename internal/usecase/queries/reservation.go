package queries

import (
	"context"

	"campsite-booking/internal/domain/reservation"
	"campsite-booking/internal/infra"
	"campsite-booking/internal/pkg/errs"
	"campsite-booking/internal/usecase/shared"
)

type ReservationQueries interface {
	GetByID(ctx context.Context, id int64) (*ReservationView, error)
}

type reservationQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewReservationQueries(uow shared.UnitOfWork) ReservationQueries {
	return &reservationQueriesImpl{uow: uow}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id int64) (*ReservationView, error) {
	var res *reservation.Reservation
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.ReadTx) error {
		found, err := tx.Reservations().Get(ctx, id)
		if err != nil {
			return err
		}
		res = found
		return nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrReservationNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return ToReservationView(res), nil
}
