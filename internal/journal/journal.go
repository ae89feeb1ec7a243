package journal

import (
	"context"
	"fmt"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/feral-file/band-ledger/internal/adapter"
	"github.com/feral-file/band-ledger/internal/domain"
)

// Journal is the append-only log every ledger command commits through.
// A command's effect becomes visible only after Append returns nil.
//
//go:generate mockgen -source=journal.go -destination=../mocks/journal.go -package=mocks -mock_names=Journal=MockJournal
type Journal interface {
	// Append stamps and durably records an event
	Append(ctx context.Context, event *domain.Event) error
}

// stamp assigns the event identifier and timestamp
func stamp(event *domain.Event, clock adapter.Clock) {
	now := clock.Now().UTC()
	event.ID = ulid.MustNewDefault(now).String()
	event.Timestamp = now
}

// MemoryJournal keeps events in process memory
type MemoryJournal struct {
	mu     sync.RWMutex
	events []domain.Event
	clock  adapter.Clock
}

// NewMemory creates an empty in-memory journal
func NewMemory(clock adapter.Clock) *MemoryJournal {
	return &MemoryJournal{clock: clock}
}

// Append records the event and assigns the next sequence number
func (j *MemoryJournal) Append(ctx context.Context, event *domain.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !event.Valid() {
		return fmt.Errorf("%w: malformed %s event", domain.ErrInvalidInput, event.Type)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	stamp(event, j.clock)
	event.Sequence = uint64(len(j.events)) + 1
	j.events = append(j.events, *event)

	return nil
}

// Events returns a copy of all recorded events in append order
func (j *MemoryJournal) Events() []domain.Event {
	j.mu.RLock()
	defer j.mu.RUnlock()

	events := make([]domain.Event, len(j.events))
	copy(events, j.events)
	return events
}

// Len returns the number of recorded events
func (j *MemoryJournal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()

	return len(j.events)
}
