package journal

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/band-ledger/internal/adapter"
	"github.com/feral-file/band-ledger/internal/domain"
	"github.com/feral-file/band-ledger/internal/logger"
	"github.com/feral-file/band-ledger/internal/notifier"
	"github.com/feral-file/band-ledger/internal/store"
)

type storeJournal struct {
	store    store.Store
	clock    adapter.Clock
	notifier notifier.Notifier
}

// NewStoreJournal creates a journal backed by the database store.
// Committed events are handed to the notifier; notifier may be nil.
func NewStoreJournal(s store.Store, clock adapter.Clock, n notifier.Notifier) Journal {
	return &storeJournal{
		store:    s,
		clock:    clock,
		notifier: n,
	}
}

// Append persists the event with its projection in one transaction, then notifies
func (j *storeJournal) Append(ctx context.Context, event *domain.Event) error {
	if !event.Valid() {
		return fmt.Errorf("%w: malformed %s event", domain.ErrInvalidInput, event.Type)
	}

	stamp(event, j.clock)
	if err := j.store.AppendEvent(ctx, event); err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}

	logger.DebugCtx(ctx, "Event committed",
		zap.String("id", event.ID),
		zap.Uint64("sequence", event.Sequence),
		zap.String("type", string(event.Type)),
		zap.String("band", event.Band.Hex()),
	)

	if j.notifier != nil {
		j.notifier.Notify(ctx, event)
	}

	return nil
}
