package factory

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/band-ledger/internal/domain"
	"github.com/feral-file/band-ledger/internal/logger"
)

// DefaultReplayBatchSize is the number of events read per page during Restore
const DefaultReplayBatchSize = 500

// EventSource reads committed events in journal order
type EventSource interface {
	ListEvents(ctx context.Context, afterSequence uint64, limit int) ([]domain.Event, error)
}

// Apply rebuilds state from one committed event without journaling it
func (f *Factory) Apply(event *domain.Event) error {
	if event.Type != domain.EventTypeBandCreated {
		b, err := f.Band(event.Band)
		if err != nil {
			return fmt.Errorf("%w: %w", domain.ErrReplayMismatch, err)
		}
		return b.Apply(event)
	}

	if !event.Valid() {
		return fmt.Errorf("%w: malformed band.created event %s", domain.ErrReplayMismatch, event.ID)
	}
	created := event.BandCreated

	f.mu.Lock()
	defer f.mu.Unlock()

	if created.Nonce != f.nonce+1 {
		return fmt.Errorf("%w: expected nonce %d, got %d", domain.ErrReplayMismatch, f.nonce+1, created.Nonce)
	}
	if f.HandleAt(created.Nonce) != created.Band {
		return fmt.Errorf("%w: handle %s does not derive from nonce %d", domain.ErrReplayMismatch, created.Band.Hex(), created.Nonce)
	}

	b, err := f.newBand(created)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrReplayMismatch, err)
	}
	f.register(b, created.Nonce)

	return nil
}

// Restore replays every event of source in sequence order and returns the
// last applied sequence
func (f *Factory) Restore(ctx context.Context, source EventSource, batchSize int) (uint64, error) {
	if batchSize <= 0 {
		batchSize = DefaultReplayBatchSize
	}

	var last uint64
	var applied int
	for {
		events, err := source.ListEvents(ctx, last, batchSize)
		if err != nil {
			return last, fmt.Errorf("failed to list events after %d: %w", last, err)
		}

		for i := range events {
			event := &events[i]
			if event.Sequence <= last {
				return last, fmt.Errorf("%w: sequence %d after %d", domain.ErrReplayMismatch, event.Sequence, last)
			}
			if err := f.Apply(event); err != nil {
				return last, fmt.Errorf("failed to apply event %d: %w", event.Sequence, err)
			}
			last = event.Sequence
			applied++
		}

		if len(events) < batchSize {
			break
		}
	}

	logger.Info("Ledger state restored",
		zap.Int("events", applied),
		zap.Uint64("lastSequence", last),
		zap.Int("bands", len(f.AllBands())),
	)

	return last, nil
}
