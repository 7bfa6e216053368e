package readstore

import (
	"context"

	"campsite-booking/internal/domain/daterange"
	"campsite-booking/internal/domain/reservation"
	"campsite-booking/internal/infra"
	"campsite-booking/internal/infra/repository/converter"
	sqlc "campsite-booking/internal/infra/sqlc/generated"
	"campsite-booking/internal/pkg/pgconv"
)

type ReservationReadQueries interface {
	GetReservationByID(ctx context.Context, db sqlc.DBTX, id int64) (sqlc.Reservations, error)
	FindOverlappingReservations(ctx context.Context, db sqlc.DBTX, arg sqlc.FindOverlappingReservationsParams) ([]sqlc.Reservations, error)
}

// ReservationReadStore serves the gateway's read operations. Every overlap is
// returned regardless of status; filtering is left to callers.
type ReservationReadStore struct {
	queries ReservationReadQueries
	db      sqlc.DBTX
}

func NewReservationReadStore(queries ReservationReadQueries, db sqlc.DBTX) *ReservationReadStore {
	return &ReservationReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ReservationReadStore) Get(ctx context.Context, id int64) (*reservation.Reservation, error) {
	row, err := r.queries.GetReservationByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	res, err := converter.ReservationFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode reservation", err)
	}
	return res, nil
}

func (r *ReservationReadStore) FindOverlapping(ctx context.Context, window daterange.Range) ([]*reservation.Reservation, error) {
	params := sqlc.FindOverlappingReservationsParams{
		FromDate: pgconv.DateToPgtype(window.Start),
		ToDate:   pgconv.DateToPgtype(window.End),
	}

	rows, err := r.queries.FindOverlappingReservations(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find overlapping reservations", err)
	}

	result, err := converter.ReservationsFromRows(rows)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode overlapping reservations", err)
	}
	return result, nil
}
