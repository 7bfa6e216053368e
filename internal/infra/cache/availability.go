package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"campsite-booking/internal/domain/daterange"
	"campsite-booking/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const (
	generationKey = "availability:gen"
	keyPrefix     = "availability:"
	defaultTTL    = 30 * time.Second
)

type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// RedisAvailabilityCache stores free-range results keyed by generation and
// window. Invalidate bumps the generation, orphaning every older entry until
// its TTL expires.
type RedisAvailabilityCache struct {
	client redisClient
	ttl    time.Duration
}

func NewRedisAvailabilityCache(client redisClient, ttl time.Duration) *RedisAvailabilityCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisAvailabilityCache{
		client: client,
		ttl:    ttl,
	}
}

type cachedRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (c *RedisAvailabilityCache) Get(ctx context.Context, window daterange.Range) ([]daterange.Range, int64, bool, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return nil, 0, false, err
	}

	val, err := c.client.Get(ctx, entryKey(gen, window)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, gen, false, nil
	}
	if err != nil {
		return nil, gen, false, errs.Wrap(err, "read availability entry")
	}

	free, err := decodeRanges(val)
	if err != nil {
		return nil, gen, false, err
	}
	return free, gen, true, nil
}

func (c *RedisAvailabilityCache) Put(ctx context.Context, window daterange.Range, gen int64, free []daterange.Range) error {
	val, err := encodeRanges(free)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, entryKey(gen, window), val, c.ttl).Err(); err != nil {
		return errs.Wrap(err, "write availability entry")
	}
	return nil
}

func (c *RedisAvailabilityCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		return errs.Wrap(err, "bump availability generation")
	}
	return nil
}

func (c *RedisAvailabilityCache) generation(ctx context.Context) (int64, error) {
	val, err := c.client.Get(ctx, generationKey).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, errs.Wrap(err, "read availability generation")
	}
	gen, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, errs.Wrapf(err, "parse availability generation %q", val)
	}
	return gen, nil
}

func entryKey(gen int64, window daterange.Range) string {
	return fmt.Sprintf("%s%d:%s:%s", keyPrefix, gen, daterange.Format(window.Start), daterange.Format(window.End))
}

func encodeRanges(free []daterange.Range) (string, error) {
	out := make([]cachedRange, len(free))
	for i, r := range free {
		out[i] = cachedRange{From: daterange.Format(r.Start), To: daterange.Format(r.End)}
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", errs.Wrap(err, "encode availability entry")
	}
	return string(b), nil
}

func decodeRanges(val string) ([]daterange.Range, error) {
	var in []cachedRange
	if err := json.Unmarshal([]byte(val), &in); err != nil {
		return nil, errs.Wrap(err, "decode availability entry")
	}
	free := make([]daterange.Range, 0, len(in))
	for _, cr := range in {
		from, err := daterange.Parse(cr.From)
		if err != nil {
			return nil, err
		}
		to, err := daterange.Parse(cr.To)
		if err != nil {
			return nil, err
		}
		r, err := daterange.NewRange(from, to)
		if err != nil {
			return nil, err
		}
		free = append(free, r)
	}
	return free, nil
}
