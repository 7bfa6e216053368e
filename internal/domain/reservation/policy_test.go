//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"campsite-booking/internal/domain/daterange"
	"campsite-booking/internal/domain/reservation"
	"campsite-booking/internal/pkg/clock"
	"campsite-booking/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPolicy() *reservation.StayPolicy {
	// late in the day so truncation to the calendar day is exercised
	now := builder.FixedToday.Add(23 * time.Hour)
	return reservation.NewStayPolicy(clock.NewMockClock(now), 3, 1, 1)
}

func stay(from, to int) daterange.Range {
	return daterange.Range{
		Start: daterange.AddDays(builder.FixedToday, from),
		End:   daterange.AddDays(builder.FixedToday, to),
	}
}

func TestStayPolicy_ValidateStay(t *testing.T) {
	testCases := []struct {
		name  string
		stay  daterange.Range
		errIs error
	}{
		{name: "one night tomorrow OK", stay: stay(1, 2)},
		{name: "three nights OK", stay: stay(1, 4)},
		{name: "four nights NG", stay: stay(1, 5), errIs: reservation.ErrStayTooLong},
		{name: "arrival today NG", stay: stay(0, 1), errIs: reservation.ErrInsufficientLead},
		{name: "arrival in the past NG", stay: stay(-3, -1), errIs: reservation.ErrInsufficientLead},
		{name: "arrival exactly one month ahead OK", stay: stay(31, 32)},
		{name: "arrival beyond one month NG", stay: stay(32, 33), errIs: reservation.ErrTooFarAhead},
	}

	p := newPolicy()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := p.ValidateStay(tc.stay)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestStayPolicy_ValidateWindow(t *testing.T) {
	p := newPolicy()

	assert.NoError(t, p.ValidateWindow(stay(1, 30)))
	assert.ErrorIs(t, p.ValidateWindow(stay(0, 30)), reservation.ErrWindowNotInFuture)
	assert.ErrorIs(t, p.ValidateWindow(stay(-5, -1)), reservation.ErrWindowNotInFuture)
}
