//go:build unit

package reservation_test

import (
	"testing"

	"campsite-booking/internal/domain/daterange"
	"campsite-booking/internal/domain/reservation"
	"campsite-booking/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReservation(t *testing.T) {
	t.Run("基本成功ケース", func(t *testing.T) {
		b := builder.NewReservationBuilder().WithName("  Hanako  ").WithEmail(" hanako@example.com ")

		actual := b.BuildNew()

		assert.Zero(t, actual.ID())
		assert.Zero(t, actual.Version())
		assert.True(t, actual.IsActive())
		assert.True(t, actual.Blocks())
		assert.Equal(t, "Hanako", actual.Holder().Name())
		assert.Equal(t, "hanako@example.com", actual.Holder().Email())

		want := daterange.Range{Start: b.Arrival, End: b.Departure}
		if diff := cmp.Diff(&want, actual.DateRange()); diff != "" {
			t.Errorf("DateRange mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestReconstructReservation(t *testing.T) {
	stay := daterange.Range{Start: builder.FixedToday, End: daterange.AddDays(builder.FixedToday, 2)}
	holder := reservation.NewHolder("n", "e@example.com")

	testCases := []struct {
		name   string
		status reservation.Status
		dates  *daterange.Range
		errIs  error
	}{
		{name: "active with dates OK", status: reservation.StatusActive, dates: &stay},
		{name: "cancelled without dates OK", status: reservation.StatusCancelled},
		{name: "active without dates NG", status: reservation.StatusActive, errIs: reservation.ErrMissingDates},
		{name: "unknown status NG", status: reservation.Status("PENDING"), dates: &stay, errIs: reservation.ErrInvalidStatus},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := reservation.ReconstructReservation(7, 3, holder, tc.status, tc.dates, builder.FixedToday, builder.FixedToday)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				assert.Nil(t, res)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(7), res.ID())
			assert.Equal(t, int64(3), res.Version())
		})
	}
}

func TestReservation_Apply(t *testing.T) {
	t.Run("nil fields keep current values", func(t *testing.T) {
		res := builder.NewReservationBuilder().BuildDomain()
		before := *res.DateRange()

		require.NoError(t, res.Apply(reservation.Changes{}))

		assert.Equal(t, "Taro Yamada", res.Holder().Name())
		assert.Equal(t, "taro@example.com", res.Holder().Email())
		assert.Equal(t, before, *res.DateRange())
	})

	t.Run("updates name, email and dates", func(t *testing.T) {
		res := builder.NewReservationBuilder().BuildDomain()
		name, email := "Jiro", "jiro@example.com"
		stay := daterange.Range{Start: daterange.AddDays(builder.FixedToday, 10), End: daterange.AddDays(builder.FixedToday, 12)}

		changes := reservation.Changes{Name: &name, Email: &email, Stay: &stay}
		require.NoError(t, res.Apply(changes))

		assert.True(t, changes.ChangesDates())
		assert.Equal(t, name, res.Holder().Name())
		assert.Equal(t, email, res.Holder().Email())
		assert.Equal(t, stay, *res.DateRange())
		assert.Zero(t, res.Version(), "version is owned by the store")
	})

	t.Run("the applied range is a copy", func(t *testing.T) {
		res := builder.NewReservationBuilder().BuildDomain()
		stay := daterange.Range{Start: daterange.AddDays(builder.FixedToday, 10), End: daterange.AddDays(builder.FixedToday, 12)}
		require.NoError(t, res.Apply(reservation.Changes{Stay: &stay}))

		stay.End = daterange.AddDays(stay.End, 30)
		assert.Equal(t, daterange.AddDays(builder.FixedToday, 12), res.DateRange().End)
	})

	t.Run("cancelled reservation rejects changes", func(t *testing.T) {
		res := builder.NewReservationBuilder().AsCancelled().BuildDomain()
		name := "x"

		err := res.Apply(reservation.Changes{Name: &name})

		require.ErrorIs(t, err, reservation.ErrAlreadyCancelled)
		assert.Equal(t, "Taro Yamada", res.Holder().Name())
	})
}

func TestReservation_Cancel(t *testing.T) {
	t.Run("active reservation releases its dates", func(t *testing.T) {
		res := builder.NewReservationBuilder().BuildDomain()

		require.NoError(t, res.Cancel())

		assert.True(t, res.IsCancelled())
		assert.False(t, res.Blocks())
		assert.Nil(t, res.DateRange())
	})

	t.Run("second cancel fails", func(t *testing.T) {
		res := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, res.Cancel())

		require.ErrorIs(t, res.Cancel(), reservation.ErrAlreadyCancelled)
		assert.Equal(t, reservation.StatusCancelled, res.Status())
	})
}
