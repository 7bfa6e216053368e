package request

import (
	"errors"
	"time"

	"campsite-booking/internal/domain/daterange"
	"campsite-booking/internal/pkg/patch"
	"campsite-booking/internal/usecase/commands"
)

var ErrPartialDates = errors.New("arrivalDate and departureDate must be provided together")

type CreateReservationRequest struct {
	Name          string `json:"name" binding:"required,notblank,max=255"`
	Email         string `json:"email" binding:"required,email,max=255"`
	ArrivalDate   string `json:"arrivalDate" binding:"required,isodate" example:"2030-01-10"`
	DepartureDate string `json:"departureDate" binding:"required,isodate" example:"2030-01-12"`
}

func (r CreateReservationRequest) ToInput() (commands.CreateReservationInput, error) {
	arrival, err := daterange.Parse(r.ArrivalDate)
	if err != nil {
		return commands.CreateReservationInput{}, err
	}
	departure, err := daterange.Parse(r.DepartureDate)
	if err != nil {
		return commands.CreateReservationInput{}, err
	}
	return commands.CreateReservationInput{
		Name:      r.Name,
		Email:     r.Email,
		Arrival:   arrival,
		Departure: departure,
	}, nil
}

// UpdateReservationRequest is a partial update: omitted fields keep their value.
type UpdateReservationRequest struct {
	Name          *string `json:"name,omitempty" binding:"omitempty,notblank,max=255"`
	Email         *string `json:"email,omitempty" binding:"omitempty,email,max=255"`
	ArrivalDate   *string `json:"arrivalDate,omitempty" binding:"omitempty,isodate"`
	DepartureDate *string `json:"departureDate,omitempty" binding:"omitempty,isodate"`
}

func (r UpdateReservationRequest) ToInput() (commands.UpdateReservationInput, error) {
	if !patch.BothOrNone(r.ArrivalDate, r.DepartureDate) {
		return commands.UpdateReservationInput{}, ErrPartialDates
	}

	in := commands.UpdateReservationInput{
		Name:  r.Name,
		Email: r.Email,
	}
	if r.ArrivalDate == nil {
		return in, nil
	}

	arrival, err := daterange.Parse(*r.ArrivalDate)
	if err != nil {
		return commands.UpdateReservationInput{}, err
	}
	departure, err := daterange.Parse(*r.DepartureDate)
	if err != nil {
		return commands.UpdateReservationInput{}, err
	}
	in.Arrival = &arrival
	in.Departure = &departure
	return in, nil
}

type AvailabilityRequest struct {
	From string `form:"from" binding:"required,isodate" example:"2030-01-01"`
	To   string `form:"to" binding:"required,isodate" example:"2030-01-31"`
}

func (r AvailabilityRequest) Window() (from, to time.Time, err error) {
	if from, err = daterange.Parse(r.From); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if to, err = daterange.Parse(r.To); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}
