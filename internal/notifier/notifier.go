package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/band-ledger/internal/domain"
	"github.com/feral-file/band-ledger/internal/logger"
	"github.com/feral-file/band-ledger/internal/messaging"
)

// Notifier hands committed events to the message broker off the command path
//
//go:generate mockgen -source=notifier.go -destination=../mocks/notifier.go -package=mocks -mock_names=Notifier=MockNotifier
type Notifier interface {
	// Notify schedules the event for publishing; it never blocks on the broker
	Notify(ctx context.Context, event *domain.Event)
	// Close waits for scheduled publishes and closes the publisher
	Close()
}

// Config holds the notifier configuration
type Config struct {
	PoolSize        int
	QueueSize       int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

func (c *Config) normalize() {
	if c.PoolSize <= 0 {
		c.PoolSize = 4
	}
	if c.QueueSize <= 0 {
		c.QueueSize = 1000
	}
	if c.InitialInterval <= 0 {
		c.InitialInterval = 500 * time.Millisecond
	}
	if c.MaxInterval <= 0 {
		c.MaxInterval = 30 * time.Second
	}
	if c.MaxElapsedTime <= 0 {
		c.MaxElapsedTime = 5 * time.Minute
	}
}

type notifier struct {
	config    Config
	publisher messaging.Publisher
	pool      pond.Pool
}

// New creates a notifier publishing through publisher with a bounded worker pool
func New(cfg Config, publisher messaging.Publisher) Notifier {
	cfg.normalize()

	return &notifier{
		config:    cfg,
		publisher: publisher,
		pool: pond.NewPool(
			cfg.PoolSize,
			pond.WithQueueSize(cfg.QueueSize),
		),
	}
}

func (n *notifier) Notify(ctx context.Context, event *domain.Event) {
	// the command's context usually ends with the request
	ctx = context.WithoutCancel(ctx)
	e := *event

	_, ok := n.pool.TrySubmit(func() {
		if err := n.publishWithRetry(ctx, &e); err != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("failed to publish event: %w", err),
				zap.String("id", e.ID),
				zap.Uint64("sequence", e.Sequence),
				zap.String("type", string(e.Type)),
			)
		}
	})
	if !ok {
		logger.WarnCtx(ctx, "Notifier queue full or stopped, event not published",
			zap.String("id", e.ID),
			zap.Uint64("sequence", e.Sequence),
		)
	}
}

// publishWithRetry publishes the event with exponential backoff
func (n *notifier) publishWithRetry(ctx context.Context, event *domain.Event) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = n.config.InitialInterval
	b.MaxInterval = n.config.MaxInterval
	b.MaxElapsedTime = n.config.MaxElapsedTime
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5

	operation := func() error {
		return n.publisher.PublishEvent(ctx, event)
	}

	var attemptCount int
	notifyOnError := func(err error, duration time.Duration) {
		attemptCount++
		logger.WarnCtx(ctx, "Event publish failed, retrying",
			zap.Error(err),
			zap.String("id", event.ID),
			zap.Int("attempt", attemptCount),
			zap.Duration("next_retry_in", duration),
		)
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notifyOnError); err != nil {
		return fmt.Errorf("failed after %d attempts: %w", attemptCount+1, err)
	}

	return nil
}

func (n *notifier) Close() {
	n.pool.StopAndWait()
	n.publisher.Close()
}
