package response

import (
	"time"

	"campsite-booking/internal/domain/daterange"
	"campsite-booking/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type ReservationResponse struct {
	ID            int64     `json:"id"`
	Version       int64     `json:"version"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Status        string    `json:"status"`
	ArrivalDate   *string   `json:"arrivalDate,omitempty"`
	DepartureDate *string   `json:"departureDate,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type DateRangeResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type AvailabilityResponse struct {
	From           string              `json:"from"`
	To             string              `json:"to"`
	AvailableDates []DateRangeResponse `json:"availableDates"`
}

func FromReservationView(view *queries.ReservationView) *ReservationResponse {
	resp := &ReservationResponse{}
	// Same-named scalar fields; dates are formatted below.
	_ = copier.Copy(resp, view)

	resp.ArrivalDate = formatDate(view.Arrival)
	resp.DepartureDate = formatDate(view.Departure)
	return resp
}

func FromAvailabilityView(view *queries.AvailabilityView) *AvailabilityResponse {
	dates := make([]DateRangeResponse, len(view.Free))
	for i, r := range view.Free {
		dates[i] = DateRangeResponse{
			From: daterange.Format(r.Start),
			To:   daterange.Format(r.End),
		}
	}
	return &AvailabilityResponse{
		From:           daterange.Format(view.Window.Start),
		To:             daterange.Format(view.Window.End),
		AvailableDates: dates,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := daterange.Format(*t)
	return &s
}
