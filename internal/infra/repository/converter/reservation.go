package converter

import (
	"campsite-booking/internal/domain/reservation"
	sqlc "campsite-booking/internal/infra/sqlc/generated"
	"campsite-booking/internal/pkg/errs"
	"campsite-booking/internal/pkg/pgconv"
)

func ReservationToCreateParams(res *reservation.Reservation) sqlc.CreateReservationParams {
	return sqlc.CreateReservationParams{
		HolderName:  res.Holder().Name(),
		HolderEmail: res.Holder().Email(),
		Status:      res.Status().String(),
		DateRange:   pgconv.DateRangeToPgtype(res.DateRange()),
	}
}

// ReservationToUpdateParams carries the version the caller read; the store
// only applies the write if it still matches.
func ReservationToUpdateParams(res *reservation.Reservation) sqlc.UpdateReservationIfVersionParams {
	return sqlc.UpdateReservationIfVersionParams{
		ID:          res.ID(),
		Version:     res.Version(),
		HolderName:  res.Holder().Name(),
		HolderEmail: res.Holder().Email(),
		Status:      res.Status().String(),
		DateRange:   pgconv.DateRangeToPgtype(res.DateRange()),
	}
}

func ReservationFromRow(row sqlc.Reservations) (*reservation.Reservation, error) {
	res, err := reservation.ReconstructReservation(
		row.ID,
		row.Version,
		reservation.NewHolder(row.HolderName, row.HolderEmail),
		reservation.Status(row.Status),
		pgconv.DateRangeFromPgtype(row.DateRange),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
	if err != nil {
		return nil, errs.Wrapf(err, "reconstruct reservation %d", row.ID)
	}
	return res, nil
}

func ReservationsFromRows(rows []sqlc.Reservations) ([]*reservation.Reservation, error) {
	result := make([]*reservation.Reservation, 0, len(rows))
	for _, row := range rows {
		res, err := ReservationFromRow(row)
		if err != nil {
			return nil, err
		}
		result = append(result, res)
	}
	return result, nil
}
