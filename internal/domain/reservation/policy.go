package reservation

import (
	"errors"
	"fmt"
	"time"

	"campsite-booking/internal/domain/daterange"
	"campsite-booking/internal/pkg/clock"
)

var (
	ErrStayTooLong       = errors.New("stay exceeds the maximum number of nights")
	ErrInsufficientLead  = errors.New("arrival is too soon")
	ErrTooFarAhead       = errors.New("arrival is too far ahead")
	ErrWindowNotInFuture = errors.New("availability window must be in the future")
)

// StayPolicy holds the booking window rules that are checked before a
// request reaches the lifecycle use cases.
type StayPolicy struct {
	Clock            clock.Clock
	MaxStayNights    int
	MinLeadDays      int
	MaxAdvanceMonths int
}

func NewStayPolicy(clk clock.Clock, maxStayNights, minLeadDays, maxAdvanceMonths int) *StayPolicy {
	return &StayPolicy{
		Clock:            clk,
		MaxStayNights:    maxStayNights,
		MinLeadDays:      minLeadDays,
		MaxAdvanceMonths: maxAdvanceMonths,
	}
}

func (p *StayPolicy) today() time.Time {
	return daterange.Of(p.Clock.Now())
}

func (p *StayPolicy) ValidateStay(stay daterange.Range) error {
	if nights := stay.Nights(); nights > p.MaxStayNights {
		return fmt.Errorf("%w: %d > %d", ErrStayTooLong, nights, p.MaxStayNights)
	}

	today := p.today()
	earliest := daterange.AddDays(today, p.MinLeadDays)
	if stay.Start.Before(earliest) {
		return fmt.Errorf("%w: must arrive on or after %s", ErrInsufficientLead, daterange.Format(earliest))
	}

	latest := today.AddDate(0, p.MaxAdvanceMonths, 0)
	if stay.Start.After(latest) {
		return fmt.Errorf("%w: must arrive on or before %s", ErrTooFarAhead, daterange.Format(latest))
	}
	return nil
}

// ValidateWindow checks an availability query; both ends must lie after today.
func (p *StayPolicy) ValidateWindow(window daterange.Range) error {
	today := p.today()
	if !window.Start.After(today) || !window.End.After(today) {
		return ErrWindowNotInFuture
	}
	return nil
}
