package daterange

import (
	"errors"
	"fmt"
	"time"
)

const Layout = "2006-01-02"

var (
	ErrInvalidRange = errors.New("range start must not be after its end")
	ErrInvalidStay  = errors.New("departure date must be after arrival date")
)

// Day returns the calendar day y-m-d as a UTC midnight instant.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Of drops the time-of-day of t, keeping its calendar day in t's location.
func Of(t time.Time) time.Time {
	y, m, d := t.Date()
	return Day(y, m, d)
}

func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

func Format(t time.Time) string {
	return t.Format(Layout)
}

func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// DaysBetween counts whole days from a to b (negative when b is before a).
func DaysBetween(a, b time.Time) int {
	return int(Of(b).Sub(Of(a)).Hours() / 24)
}

// Range is a closed interval of calendar days: both Start and End are included.
type Range struct {
	Start time.Time
	End   time.Time
}

func NewRange(start, end time.Time) (Range, error) {
	start, end = Of(start), Of(end)
	if start.After(end) {
		return Range{}, ErrInvalidRange
	}
	return Range{Start: start, End: end}, nil
}

// NewStay builds the range of a reservation, which must span at least one night.
func NewStay(arrival, departure time.Time) (Range, error) {
	arrival, departure = Of(arrival), Of(departure)
	if !arrival.Before(departure) {
		return Range{}, ErrInvalidStay
	}
	return Range{Start: arrival, End: departure}, nil
}

func (r Range) Contains(day time.Time) bool {
	day = Of(day)
	return !day.Before(r.Start) && !day.After(r.End)
}

func (r Range) Nights() int {
	return DaysBetween(r.Start, r.End)
}

func (r Range) Equal(o Range) bool {
	return r.Start.Equal(o.Start) && r.End.Equal(o.End)
}

func (r Range) String() string {
	return "[" + Format(r.Start) + "," + Format(r.End) + "]"
}

// Overlaps reports whether a and b share at least one day.
func Overlaps(a, b Range) bool {
	return !a.Start.After(b.End) && !b.Start.After(a.End)
}
