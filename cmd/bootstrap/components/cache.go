package components

import (
	"context"
	"log/slog"

	"campsite-booking/internal/infra/cache"
	"campsite-booking/internal/pkg/config"
	"campsite-booking/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewAvailabilityCache,
	),
)

// NewAvailabilityCache falls back to a no-op cache when REDIS_URL is unset.
func NewAvailabilityCache(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.AvailabilityCache, error) {
	if !cfg.Redis.Enabled() {
		logger.Info("REDIS_URL is not set; availability cache disabled")
		return cache.Noop{}, nil
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				// reads fall through to the database while redis is down
				logger.Warn("redis ping failed", "error", err.Error())
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return cache.NewRedisAvailabilityCache(client, cfg.Redis.AvailabilityTTL), nil
}
