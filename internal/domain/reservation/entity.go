package reservation

import (
	"errors"
	"time"

	"campsite-booking/internal/domain/daterange"
	"campsite-booking/internal/pkg/patch"
)

var (
	ErrAlreadyCancelled = errors.New("reservation is already cancelled")
	ErrInvalidStatus    = errors.New("invalid reservation status")
	ErrMissingDates     = errors.New("active reservation requires a date range")
)

// Reservation is a hold on a contiguous span of days. ID and version are
// owned by the store; a zero ID means the reservation has not been persisted.
type Reservation struct {
	id        int64
	version   int64
	holder    Holder
	status    Status
	dateRange *daterange.Range
	createdAt time.Time
	updatedAt time.Time
}

func NewReservation(holder Holder, stay daterange.Range) *Reservation {
	return &Reservation{
		holder:    holder,
		status:    StatusActive,
		dateRange: &stay,
	}
}

func ReconstructReservation(
	id, version int64,
	holder Holder,
	status Status,
	dateRange *daterange.Range,
	createdAt, updatedAt time.Time,
) (*Reservation, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	if status == StatusActive && dateRange == nil {
		return nil, ErrMissingDates
	}
	return &Reservation{
		id:        id,
		version:   version,
		holder:    holder,
		status:    status,
		dateRange: dateRange,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

// Changes carries an update; nil fields keep the current value.
type Changes struct {
	Name  *string
	Email *string
	Stay  *daterange.Range
}

func (c Changes) ChangesDates() bool {
	return c.Stay != nil
}

// Apply merges c into r. Only active reservations may change.
func (r *Reservation) Apply(c Changes) error {
	if r.IsCancelled() {
		return ErrAlreadyCancelled
	}
	r.holder = NewHolder(
		patch.Coalesce(c.Name, r.holder.name),
		patch.Coalesce(c.Email, r.holder.email),
	)
	if c.Stay != nil {
		stay := *c.Stay
		r.dateRange = &stay
	}
	return nil
}

// Cancel releases the reservation's dates. It is a one-way transition.
func (r *Reservation) Cancel() error {
	if r.IsCancelled() {
		return ErrAlreadyCancelled
	}
	r.status = StatusCancelled
	r.dateRange = nil
	return nil
}

func (r *Reservation) IsActive() bool {
	return r.status == StatusActive
}

func (r *Reservation) IsCancelled() bool {
	return r.status == StatusCancelled
}

// Blocks reports whether r occupies dates that other reservations may not claim.
func (r *Reservation) Blocks() bool {
	return r.IsActive() && r.dateRange != nil
}

func (r *Reservation) ID() int64                   { return r.id }
func (r *Reservation) Version() int64              { return r.version }
func (r *Reservation) Holder() Holder              { return r.holder }
func (r *Reservation) Status() Status              { return r.status }
func (r *Reservation) DateRange() *daterange.Range { return r.dateRange }
func (r *Reservation) CreatedAt() time.Time        { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time        { return r.updatedAt }
