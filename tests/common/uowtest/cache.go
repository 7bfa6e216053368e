//go:build unit || e2e

package uowtest

import (
	"context"
	"sync"

	"campsite-booking/internal/domain/daterange"
	"campsite-booking/internal/usecase/shared"
)

type cacheKey struct {
	gen    int64
	window daterange.Range
}

// Cache is an in-memory shared.AvailabilityCache with the same generation
// semantics as the Redis implementation.
type Cache struct {
	mu            sync.Mutex
	gen           int64
	entries       map[cacheKey][]daterange.Range
	Invalidations int
	Hits          int
	Err           error
}

var _ shared.AvailabilityCache = (*Cache)(nil)

func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey][]daterange.Range)}
}

func (c *Cache) Get(_ context.Context, window daterange.Range) ([]daterange.Range, int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, 0, false, c.Err
	}
	free, ok := c.entries[cacheKey{c.gen, window}]
	if ok {
		c.Hits++
	}
	return free, c.gen, ok, nil
}

func (c *Cache) Put(_ context.Context, window daterange.Range, gen int64, free []daterange.Range) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.entries[cacheKey{gen, window}] = free
	return nil
}

func (c *Cache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Invalidations++
	if c.Err != nil {
		return c.Err
	}
	c.gen++
	return nil
}

func (c *Cache) InvalidationCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Invalidations
}
