package queries

import (
	"time"

	"campsite-booking/internal/domain/daterange"
	"campsite-booking/internal/domain/reservation"
)

// ReservationView is the read model returned by both the command and query side.
// Arrival and Departure are nil once the reservation is cancelled.
type ReservationView struct {
	ID        int64      `json:"id"`
	Version   int64      `json:"version"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Status    string     `json:"status"`
	Arrival   *time.Time `json:"arrival,omitempty"`
	Departure *time.Time `json:"departure,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// AvailabilityView lists the maximal free ranges of Window in ascending order.
type AvailabilityView struct {
	Window daterange.Range
	Free   []daterange.Range
}

func ToReservationView(res *reservation.Reservation) *ReservationView {
	view := &ReservationView{
		ID:        res.ID(),
		Version:   res.Version(),
		Name:      res.Holder().Name(),
		Email:     res.Holder().Email(),
		Status:    res.Status().String(),
		CreatedAt: res.CreatedAt(),
		UpdatedAt: res.UpdatedAt(),
	}
	if r := res.DateRange(); r != nil {
		arrival, departure := r.Start, r.End
		view.Arrival = &arrival
		view.Departure = &departure
	}
	return view
}
