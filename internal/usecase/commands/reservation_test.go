//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"campsite-booking/internal/domain/daterange"
	"campsite-booking/internal/domain/reservation"
	"campsite-booking/internal/pkg/clock"
	"campsite-booking/internal/pkg/errs"
	"campsite-booking/internal/pkg/ptr"
	"campsite-booking/internal/usecase/commands"
	"campsite-booking/internal/usecase/shared"
	"campsite-booking/tests/common/uowtest"

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

type fixture struct {
	store *uowtest.Store
	cache *uowtest.Cache
	uc    commands.ReservationCommands
}

func newFixture() *fixture {
	store := uowtest.NewStore()
	cache := uowtest.NewCache()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &fixture{
		store: store,
		cache: cache,
		uc:    commands.NewReservationUseCase(store, cache, clock.NewMockClock(base), logger),
	}
}

func (f *fixture) create(t *testing.T, a, b int) int64 {
	t.Helper()
	view, err := f.uc.CreateReservation(context.Background(), commands.CreateReservationInput{
		Name: "guest", Email: "guest@example.com", Arrival: day(a), Departure: day(b),
	})
	require.NoError(t, err)
	return view.ID
}

func TestCreateReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("success: stores an ACTIVE reservation at version 0", func(t *testing.T) {
		f := newFixture()

		view, err := f.uc.CreateReservation(ctx, commands.CreateReservationInput{
			Name: "Taro", Email: "taro@example.com", Arrival: day(10), Departure: day(11),
		})

		require.NoError(t, err)
		assert.NotZero(t, view.ID)
		assert.Zero(t, view.Version)
		assert.Equal(t, reservation.StatusActive.String(), view.Status)
		assert.Equal(t, day(10), *view.Arrival)
		assert.Equal(t, day(11), *view.Departure)
		assert.Equal(t, []string{shared.TopicReservationCreated}, f.store.Topics())
		assert.Equal(t, 1, f.cache.InvalidationCount())
	})

	t.Run("error: the same dates twice are unavailable", func(t *testing.T) {
		f := newFixture()
		f.create(t, 10, 11)

		_, err := f.uc.CreateReservation(ctx, commands.CreateReservationInput{
			Name: "other", Email: "other@example.com", Arrival: day(10), Departure: day(11),
		})

		require.True(t, errs.Is(err, errs.ErrDateUnavailable), "got %v", err)
		assert.Len(t, f.store.ActiveRanges(), 1)
		assert.Len(t, f.store.Jobs(), 1, "the failed create must not leave an outbox row")
	})

	t.Run("error: touching ranges overlap on the shared day", func(t *testing.T) {
		f := newFixture()
		f.create(t, 10, 12)

		_, err := f.uc.CreateReservation(ctx, commands.CreateReservationInput{
			Name: "n", Email: "e@example.com", Arrival: day(12), Departure: day(13),
		})

		assert.True(t, errs.Is(err, errs.ErrDateUnavailable))
	})

	t.Run("error: departure must be after arrival", func(t *testing.T) {
		f := newFixture()

		_, err := f.uc.CreateReservation(ctx, commands.CreateReservationInput{
			Name: "n", Email: "e@example.com", Arrival: day(5), Departure: day(5),
		})

		require.True(t, errs.Is(err, errs.ErrDomainValidation))
		assert.Empty(t, f.store.ActiveRanges())
	})

	t.Run("success: dates released by a cancellation can be reserved again", func(t *testing.T) {
		f := newFixture()
		a := f.create(t, 16, 18)

		_, err := f.uc.CancelReservation(ctx, a)
		require.NoError(t, err)

		b := f.create(t, 16, 18)
		assert.NotEqual(t, a, b)
	})

	t.Run("error: unclassified store faults are internal", func(t *testing.T) {
		f := newFixture()
		f.store.Fail = errors.New("connection reset")

		_, err := f.uc.CreateReservation(ctx, commands.CreateReservationInput{
			Name: "n", Email: "e@example.com", Arrival: day(1), Departure: day(2),
		})

		require.True(t, errs.Is(err, errs.ErrDatabaseOperationFailed))
		assert.False(t, errs.Is(err, errs.ErrDateUnavailable))
		assert.Zero(t, f.cache.InvalidationCount())
	})
}

func TestCreateReservation_MutualExclusion(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// pairwise-overlapping windows, all containing day 20
	windows := [][2]int{{18, 20}, {19, 21}, {20, 22}, {20, 21}, {17, 20}, {19, 20}, {20, 23}, {18, 22}}

	var (
		wg      sync.WaitGroup
		start   = make(chan struct{})
		results = make([]error, len(windows))
	)
	for i, w := range windows {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, results[i] = f.uc.CreateReservation(ctx, commands.CreateReservationInput{
				Name: "racer", Email: "racer@example.com", Arrival: day(w[0]), Departure: day(w[1]),
			})
		}()
	}
	close(start)
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errs.Is(err, errs.ErrDateUnavailable), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, succeeded)
	assert.Len(t, f.store.ActiveRanges(), 1)
	assert.Len(t, f.store.Jobs(), 1)
}

func TestUpdateReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("success: only the supplied email changes", func(t *testing.T) {
		f := newFixture()
		id := f.create(t, 10, 12)

		view, err := f.uc.UpdateReservation(ctx, id, commands.UpdateReservationInput{Email: ptr.Of("new@example.com")})

		require.NoError(t, err)
		assert.Equal(t, "new@example.com", view.Email)
		assert.Equal(t, "guest", view.Name)
		assert.Equal(t, day(10), *view.Arrival)
		assert.Equal(t, day(12), *view.Departure)
		assert.Equal(t, int64(1), view.Version)
		assert.Equal(t, 1, f.cache.InvalidationCount(), "a contact-only change keeps cached availability")
	})

	t.Run("success: moving within its own range never conflicts with itself", func(t *testing.T) {
		f := newFixture()
		id := f.create(t, 10, 12)

		view, err := f.uc.UpdateReservation(ctx, id, commands.UpdateReservationInput{
			Arrival: ptr.Of(day(11)), Departure: ptr.Of(day(13)),
		})

		require.NoError(t, err)
		assert.Equal(t, day(11), *view.Arrival)
		assert.Equal(t, []daterange.Range{rng(11, 13)}, f.store.ActiveRanges())
		assert.Equal(t, 2, f.cache.InvalidationCount())
	})

	t.Run("error: moving onto another reservation is unavailable", func(t *testing.T) {
		f := newFixture()
		f.create(t, 2, 3)
		second := f.create(t, 37, 38)
		f.store.Seed("blocker", "b@example.com", rng(30, 36))

		_, err := f.uc.UpdateReservation(ctx, second, commands.UpdateReservationInput{
			Arrival: ptr.Of(day(36)), Departure: ptr.Of(day(38)),
		})

		require.True(t, errs.Is(err, errs.ErrDateUnavailable))
		snap := f.store.Snapshot(second)
		assert.Equal(t, rng(37, 38), *snap.DateRange())
		assert.Zero(t, snap.Version())
	})

	t.Run("error: only one date supplied", func(t *testing.T) {
		f := newFixture()
		id := f.create(t, 10, 12)

		_, err := f.uc.UpdateReservation(ctx, id, commands.UpdateReservationInput{Arrival: ptr.Of(day(11))})

		assert.True(t, errs.Is(err, errs.ErrDomainValidation))
	})

	t.Run("error: unknown id", func(t *testing.T) {
		f := newFixture()

		_, err := f.uc.UpdateReservation(ctx, 999, commands.UpdateReservationInput{Name: ptr.Of("x")})

		assert.True(t, errs.Is(err, errs.ErrReservationNotFound))
	})

	t.Run("error: cancelled reservation cannot change", func(t *testing.T) {
		f := newFixture()
		id := f.create(t, 10, 12)
		_, err := f.uc.CancelReservation(ctx, id)
		require.NoError(t, err)

		_, err = f.uc.UpdateReservation(ctx, id, commands.UpdateReservationInput{Name: ptr.Of("x")})

		assert.True(t, errs.Is(err, errs.ErrInvalidState))
	})

	t.Run("success: versions strictly increase", func(t *testing.T) {
		f := newFixture()
		id := f.create(t, 10, 12)

		var last int64
		for _, name := range []string{"a", "b", "c"} {
			view, err := f.uc.UpdateReservation(ctx, id, commands.UpdateReservationInput{Name: ptr.Of(name)})
			require.NoError(t, err)
			assert.Greater(t, view.Version, last)
			last = view.Version
		}
		assert.Equal(t, int64(3), last)
	})
}

func TestUpdateReservation_ConcurrentWriters(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.create(t, 10, 12)

	names := []string{"1", "2", "3"}

	// every writer reads version 0 before any of them writes
	var barrier sync.WaitGroup
	barrier.Add(len(names))
	f.store.AfterGet = func(int64) {
		barrier.Done()
		barrier.Wait()
	}

	var (
		wg      sync.WaitGroup
		results = make([]error, len(names))
	)
	for i, name := range names {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, results[i] = f.uc.UpdateReservation(ctx, id, commands.UpdateReservationInput{Name: ptr.Of(name)})
		}()
	}
	wg.Wait()

	winner := ""
	for i, err := range results {
		if err == nil {
			require.Empty(t, winner, "more than one writer succeeded")
			winner = names[i]
			continue
		}
		assert.True(t, errs.Is(err, errs.ErrVersionConflict), "unexpected error: %v", err)
		assert.False(t, errs.Is(err, errs.ErrDateUnavailable))
	}
	require.NotEmpty(t, winner)

	snap := f.store.Snapshot(id)
	assert.Equal(t, winner, snap.Holder().Name())
	assert.Equal(t, int64(1), snap.Version())
	assert.Len(t, f.store.Topics(), 2, "created + one update")
}

func TestCancelReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("success: releases the dates and records them in the event", func(t *testing.T) {
		f := newFixture()
		id := f.create(t, 16, 18)

		view, err := f.uc.CancelReservation(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, reservation.StatusCancelled.String(), view.Status)
		assert.Nil(t, view.Arrival)
		assert.Nil(t, view.Departure)
		assert.Equal(t, int64(1), view.Version)
		assert.Empty(t, f.store.ActiveRanges())

		jobs := f.store.Jobs()
		require.Len(t, jobs, 2)
		assert.Equal(t, shared.TopicReservationCancelled, jobs[1].Topic)

		var payload map[string]any
		require.NoError(t, json.Unmarshal(jobs[1].Payload, &payload))
		assert.Equal(t, "CANCELLED", payload["status"])
		assert.Equal(t, daterange.Format(day(16)), payload["arrival"])
		assert.Equal(t, daterange.Format(day(18)), payload["departure"])
	})

	t.Run("error: cancelling twice is an invalid state", func(t *testing.T) {
		f := newFixture()
		id := f.create(t, 16, 18)
		_, err := f.uc.CancelReservation(ctx, id)
		require.NoError(t, err)

		_, err = f.uc.CancelReservation(ctx, id)

		require.True(t, errs.Is(err, errs.ErrInvalidState))
		assert.Equal(t, int64(1), f.store.Snapshot(id).Version())
	})

	t.Run("error: unknown id", func(t *testing.T) {
		f := newFixture()

		_, err := f.uc.CancelReservation(ctx, 42)

		assert.True(t, errs.Is(err, errs.ErrReservationNotFound))
	})

	t.Run("success: a failing cache does not fail the write", func(t *testing.T) {
		f := newFixture()
		id := f.create(t, 16, 18)
		f.cache.Err = errors.New("redis down")

		_, err := f.uc.CancelReservation(ctx, id)

		require.NoError(t, err)
	})
}
