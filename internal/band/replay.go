package band

import (
	"fmt"

	"github.com/feral-file/band-ledger/internal/domain"
)

// Apply rebuilds band state from an already committed journal event.
// Nothing is journaled; authorization was checked when the event was committed.
func (b *Band) Apply(event *domain.Event) error {
	if event.Band != b.handle {
		return fmt.Errorf("%w: event for %s applied to %s", domain.ErrReplayMismatch, event.Band.Hex(), b.handle.Hex())
	}
	if !event.Valid() {
		return fmt.Errorf("%w: malformed %s event %s", domain.ErrReplayMismatch, event.Type, event.ID)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	switch event.Type {
	case domain.EventTypeMemberAdded:
		b.addMember(event.MemberAdded.Owner)
		return nil

	case domain.EventTypeSongAdded:
		added := event.SongAdded
		if err := ValidateSplit(added.Name, added.Supply, added.Owners, added.Shares); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrReplayMismatch, err)
		}
		_, _, err := b.minter.MintFunc(added.Name, added.Supply, func(tokenID uint64, uri string) error {
			if tokenID != added.SongID {
				return fmt.Errorf("%w: expected song %d, minter is at %d", domain.ErrReplayMismatch, added.SongID, tokenID)
			}
			if added.URI != "" && uri != added.URI {
				return fmt.Errorf("%w: metadata URI of song %d differs", domain.ErrReplayMismatch, added.SongID)
			}
			return nil
		})
		if err != nil {
			return err
		}
		b.appendSong(added)
		return nil

	default:
		return fmt.Errorf("%w: %s cannot be applied to a band", domain.ErrReplayMismatch, event.Type)
	}
}
