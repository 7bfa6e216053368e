package commands

import (
	"time"
)

type CreateReservationInput struct {
	Name      string
	Email     string
	Arrival   time.Time
	Departure time.Time
}

// UpdateReservationInput is a partial update; nil fields keep their stored
// value. Arrival and Departure must be given together.
type UpdateReservationInput struct {
	Name      *string
	Email     *string
	Arrival   *time.Time
	Departure *time.Time
}

// reservationEvent is the outbox payload for every lifecycle transition.
// Dates are the range held after the transition, or the released range
// for a cancellation.
type reservationEvent struct {
	ReservationID int64     `json:"reservation_id"`
	Version       int64     `json:"version"`
	Status        string    `json:"status"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Arrival       string    `json:"arrival,omitempty"`
	Departure     string    `json:"departure,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
