package relay

import (
	"context"
	"log/slog"
	"time"

	"campsite-booking/internal/pkg/clock"
	"campsite-booking/internal/pkg/config"
	"campsite-booking/internal/usecase/shared"
)

const (
	defaultInterval = 2 * time.Second
	maxBackoff      = 5 * time.Minute
)

type Publisher interface {
	Publish(ctx context.Context, routingKey, messageID string, body []byte) error
}

// Relay drains the notification outbox into the message broker. Delivery is
// at-least-once: a crash between publish and commit republishes the job, and
// consumers dedupe on the message id.
type Relay struct {
	uow         shared.UnitOfWork
	publisher   Publisher
	clock       clock.Clock
	interval    time.Duration
	batchSize   int32
	maxAttempts int32
	logger      *slog.Logger
}

func NewRelay(uow shared.UnitOfWork, publisher Publisher, clk clock.Clock, cfg config.AMQPConfig, logger *slog.Logger) *Relay {
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Relay{
		uow:         uow,
		publisher:   publisher,
		clock:       clk,
		interval:    interval,
		batchSize:   cfg.BatchSize,
		maxAttempts: cfg.MaxAttempts,
		logger:      logger,
	}
}

// Run polls until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		if _, err := r.RelayOnce(ctx); err != nil && ctx.Err() == nil {
			r.logger.Error("outbox relay pass failed", "error", err.Error())
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RelayOnce publishes one batch of due jobs and returns how many were sent.
func (r *Relay) RelayOnce(ctx context.Context) (int, error) {
	var sent int
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		sent = 0
		jobs, err := tx.Notifications().ClaimPending(ctx, r.batchSize)
		if err != nil {
			return err
		}

		for _, job := range jobs {
			if pubErr := r.publisher.Publish(ctx, job.Topic, job.ID.String(), job.Payload); pubErr != nil {
				r.logger.Warn("failed to publish notification job",
					"job_id", job.ID.String(),
					"topic", job.Topic,
					"attempts", job.Attempts+1,
					"error", pubErr.Error())

				nextRun := r.clock.Now().Add(backoff(r.interval, job.Attempts))
				if err := tx.Notifications().MarkFailed(ctx, job.ID, pubErr.Error(), nextRun, r.maxAttempts); err != nil {
					return err
				}
				continue
			}

			if err := tx.Notifications().MarkSent(ctx, job.ID); err != nil {
				return err
			}
			sent++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if sent > 0 {
		r.logger.Debug("outbox relay published jobs", "count", sent)
	}
	return sent, nil
}

func backoff(base time.Duration, attempts int32) time.Duration {
	if base <= 0 {
		base = time.Second
	}
	wait := base
	for i := int32(0); i < attempts && wait < maxBackoff; i++ {
		wait *= 2
	}
	return min(wait, maxBackoff)
}
