package repository

import (
	"context"

	"campsite-booking/internal/domain/reservation"
	"campsite-booking/internal/infra"
	"campsite-booking/internal/infra/readstore"
	"campsite-booking/internal/infra/repository/converter"
	sqlc "campsite-booking/internal/infra/sqlc/generated"
	"campsite-booking/internal/pkg/pgconv"
)

type ReservationWriteQueries interface {
	readstore.ReservationReadQueries
	CreateReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateReservationParams) (sqlc.Reservations, error)
	UpdateReservationIfVersion(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateReservationIfVersionParams) (sqlc.Reservations, error)
}

// ReservationRepository is the transactional side of the gateway. Reads go
// through the embedded read store on the same connection.
type ReservationRepository struct {
	*readstore.ReservationReadStore
	queries ReservationWriteQueries
	db      sqlc.DBTX
}

func NewReservationRepository(queries ReservationWriteQueries, db sqlc.DBTX) *ReservationRepository {
	return &ReservationRepository{
		ReservationReadStore: readstore.NewReservationReadStore(queries, db),
		queries:              queries,
		db:                   db,
	}
}

func (r *ReservationRepository) Insert(ctx context.Context, res *reservation.Reservation) (*reservation.Reservation, error) {
	row, err := r.queries.CreateReservation(ctx, r.db, converter.ReservationToCreateParams(res))
	if err != nil {
		if pgconv.IsExclusionViolation(err) {
			return nil, infra.WrapRepoErr("reservation dates overlap an active reservation", err, infra.KindExclusionViolated)
		}
		return nil, infra.WrapRepoErr("failed to create reservation", err)
	}
	return decode(row)
}

// ConditionalSave writes res only if the stored version still equals
// res.Version(). The returned reservation carries the incremented version.
func (r *ReservationRepository) ConditionalSave(ctx context.Context, res *reservation.Reservation) (*reservation.Reservation, error) {
	row, err := r.queries.UpdateReservationIfVersion(ctx, r.db, converter.ReservationToUpdateParams(res))
	if err != nil {
		switch {
		case pgconv.IsNoRows(err):
			return nil, infra.WrapRepoErr("reservation version changed", err, infra.KindVersionMismatch)
		case pgconv.IsExclusionViolation(err):
			return nil, infra.WrapRepoErr("reservation dates overlap an active reservation", err, infra.KindExclusionViolated)
		default:
			return nil, infra.WrapRepoErr("failed to update reservation", err)
		}
	}
	return decode(row)
}

func decode(row sqlc.Reservations) (*reservation.Reservation, error) {
	res, err := converter.ReservationFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode reservation", err)
	}
	return res, nil
}
