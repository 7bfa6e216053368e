package bootstrap

import (
	"context"
	"log/slog"

	"campsite-booking/internal/infra/mq"
	"campsite-booking/internal/infra/relay"
	"campsite-booking/internal/pkg/clock"
	"campsite-booking/internal/pkg/config"
	"campsite-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var RelayModule = fx.Module("relay",
	fx.Invoke(StartRelay),
)

// StartRelay runs the outbox relay for the lifetime of the app. Without an
// AMQP_URL jobs stay queued in the outbox.
func StartRelay(lc fx.Lifecycle, cfg config.Config, uow shared.UnitOfWork, clk clock.Clock, logger *slog.Logger) {
	if !cfg.AMQP.Enabled() {
		logger.Info("AMQP_URL is not set; outbox relay disabled")
		return
	}

	var (
		publisher *mq.Publisher
		cancel    context.CancelFunc
		done      = make(chan struct{})
	)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			p, err := mq.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
			if err != nil {
				return err
			}
			publisher = p

			r := relay.NewRelay(uow, publisher, clk, cfg.AMQP, logger)
			var runCtx context.Context
			runCtx, cancel = context.WithCancel(context.Background())
			go func() {
				defer close(done)
				r.Run(runCtx)
			}()
			logger.Info("outbox relay started", "exchange", cfg.AMQP.Exchange, "interval", cfg.AMQP.PollInterval.String())
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if cancel != nil {
				cancel()
				select {
				case <-done:
				case <-ctx.Done():
				}
			}
			if publisher != nil {
				return publisher.Close()
			}
			return nil
		},
	})
}
