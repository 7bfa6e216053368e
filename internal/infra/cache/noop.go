package cache

import (
	"context"

	"campsite-booking/internal/domain/daterange"
)

// Noop is used when no Redis URL is configured; every lookup misses.
type Noop struct{}

func (Noop) Get(context.Context, daterange.Range) ([]daterange.Range, int64, bool, error) {
	return nil, 0, false, nil
}

func (Noop) Put(context.Context, daterange.Range, int64, []daterange.Range) error {
	return nil
}

func (Noop) Invalidate(context.Context) error {
	return nil
}
