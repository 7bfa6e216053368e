//go:build unit

package queries_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"campsite-booking/internal/domain/daterange"
	"campsite-booking/internal/pkg/errs"
	"campsite-booking/internal/usecase/queries"
	"campsite-booking/internal/usecase/shared"
	"campsite-booking/tests/common/uowtest"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = daterange.Day(2030, time.January, 1)

func day(n int) time.Time {
	return daterange.AddDays(base, n)
}

func rng(a, b int) daterange.Range {
	return daterange.Range{Start: day(a), End: day(b)}
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestAvailabilityFor(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name     string
		occupied []daterange.Range
		from, to int
		want     []daterange.Range
	}{
		{
			name:     "single booking splits the window",
			occupied: []daterange.Range{rng(45, 46)},
			from:     44, to: 48,
			want: []daterange.Range{rng(44, 44), rng(47, 48)},
		},
		{
			name: "empty campsite is free for the whole window",
			from: 1, to: 30,
			want: []daterange.Range{rng(1, 30)},
		},
		{
			name:     "booking covering the window leaves nothing",
			occupied: []daterange.Range{rng(5, 20)},
			from:     10, to: 12,
			want: []daterange.Range{},
		},
		{
			name:     "adjacent bookings merge into one occupied block",
			occupied: []daterange.Range{rng(3, 4), rng(5, 6), rng(9, 10)},
			from:     1, to: 12,
			want: []daterange.Range{rng(1, 2), rng(7, 8), rng(11, 12)},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := uowtest.NewStore()
			for _, r := range tc.occupied {
				store.Seed("n", "e@example.com", r)
			}
			q := queries.NewAvailabilityQueries(store, uowtest.NewCache(), discard)

			view, err := q.AvailabilityFor(ctx, day(tc.from), day(tc.to))

			require.NoError(t, err)
			assert.Equal(t, rng(tc.from, tc.to), view.Window)
			if diff := cmp.Diff(tc.want, view.Free, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("free ranges mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAvailabilityFor_CancelledDoNotBlock(t *testing.T) {
	store := uowtest.NewStore()
	id := store.Seed("n", "e@example.com", rng(5, 6))
	err := store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().Get(ctx, id)
		require.NoError(t, err)
		require.NoError(t, res.Cancel())
		_, err = tx.Reservations().ConditionalSave(ctx, res)
		return err
	})
	require.NoError(t, err)

	q := queries.NewAvailabilityQueries(store, uowtest.NewCache(), discard)
	view, err := q.AvailabilityFor(context.Background(), day(1), day(10))

	require.NoError(t, err)
	assert.Equal(t, []daterange.Range{rng(1, 10)}, view.Free)
}

func TestAvailabilityFor_InvalidWindow(t *testing.T) {
	q := queries.NewAvailabilityQueries(uowtest.NewStore(), uowtest.NewCache(), discard)

	for _, w := range [][2]int{{5, 5}, {6, 5}} {
		_, err := q.AvailabilityFor(context.Background(), day(w[0]), day(w[1]))
		assert.True(t, errs.Is(err, errs.ErrInvalidWindow), "window %v: %v", w, err)
	}
}

func TestAvailabilityFor_Cache(t *testing.T) {
	ctx := context.Background()

	t.Run("second lookup is served from the cache", func(t *testing.T) {
		store := uowtest.NewStore()
		cache := uowtest.NewCache()
		q := queries.NewAvailabilityQueries(store, cache, discard)

		first, err := q.AvailabilityFor(ctx, day(1), day(10))
		require.NoError(t, err)
		reads := store.Reads.Load()

		second, err := q.AvailabilityFor(ctx, day(1), day(10))
		require.NoError(t, err)

		assert.Equal(t, first.Free, second.Free)
		assert.Equal(t, reads, store.Reads.Load(), "cache hit must not touch the store")
		assert.Equal(t, 1, cache.Hits)
	})

	t.Run("invalidation hides entries stored under an older generation", func(t *testing.T) {
		store := uowtest.NewStore()
		cache := uowtest.NewCache()
		q := queries.NewAvailabilityQueries(store, cache, discard)

		_, err := q.AvailabilityFor(ctx, day(1), day(10))
		require.NoError(t, err)

		store.Seed("n", "e@example.com", rng(4, 5))
		require.NoError(t, cache.Invalidate(ctx))

		view, err := q.AvailabilityFor(ctx, day(1), day(10))
		require.NoError(t, err)
		assert.Equal(t, []daterange.Range{rng(1, 3), rng(6, 10)}, view.Free)
	})

	t.Run("a broken cache falls through to the store", func(t *testing.T) {
		store := uowtest.NewStore()
		cache := uowtest.NewCache()
		cache.Err = errors.New("redis down")
		q := queries.NewAvailabilityQueries(store, cache, discard)

		view, err := q.AvailabilityFor(ctx, day(1), day(3))

		require.NoError(t, err)
		assert.Equal(t, []daterange.Range{rng(1, 3)}, view.Free)
	})

	t.Run("store failure is internal", func(t *testing.T) {
		store := uowtest.NewStore()
		store.Fail = errors.New("connection reset")
		q := queries.NewAvailabilityQueries(store, uowtest.NewCache(), discard)

		_, err := q.AvailabilityFor(ctx, day(1), day(3))

		assert.True(t, errs.Is(err, errs.ErrDatabaseOperationFailed))
	})
}
