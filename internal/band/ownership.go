package band

import (
	"context"
	"fmt"
	"math/bits"

	"github.com/feral-file/band-ledger/internal/domain"
)

// Song is a registered song and its ownership split. Songs are immutable.
type Song struct {
	ID     uint64
	Name   string
	Supply uint64
	URI    string

	owners []domain.Account
	shares map[domain.Account]uint64
}

func newSong(added *domain.SongAdded) *Song {
	s := &Song{
		ID:     added.SongID,
		Name:   added.Name,
		Supply: added.Supply,
		URI:    added.URI,
		owners: append([]domain.Account(nil), added.Owners...),
		shares: make(map[domain.Account]uint64, len(added.Owners)),
	}
	for i, owner := range added.Owners {
		s.shares[owner] = added.Shares[i]
	}
	return s
}

// Owners returns the owners in registration order
func (s *Song) Owners() []domain.Account {
	return append([]domain.Account(nil), s.owners...)
}

// Shares returns the shares aligned with Owners
func (s *Song) Shares() []uint64 {
	shares := make([]uint64, len(s.owners))
	for i, owner := range s.owners {
		shares[i] = s.shares[owner]
	}
	return shares
}

// Share returns the share held by account, 0 if none
func (s *Song) Share(account domain.Account) uint64 {
	return s.shares[account]
}

// AddSong mints a token for the song and records its ownership split.
// The caller must be a member; shares must be positive-length, aligned with
// owners, free of duplicate owners and sum exactly to supply.
func (b *Band) AddSong(ctx context.Context, caller domain.Account, name string, supply uint64, owners []domain.Account, shares []uint64) (*domain.SongAdded, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.isMember(caller) {
		return nil, fmt.Errorf("%w: %s is not a member of %s", domain.ErrUnauthorized, caller.Hex(), b.handle.Hex())
	}
	if err := ValidateSplit(name, supply, owners, shares); err != nil {
		return nil, err
	}

	var result *domain.SongAdded
	_, _, err := b.minter.MintFunc(name, supply, func(tokenID uint64, uri string) error {
		if _, exists := b.songIndex[tokenID]; exists {
			return fmt.Errorf("%w: song %d already registered", domain.ErrReplayMismatch, tokenID)
		}
		result = &domain.SongAdded{
			SongID: tokenID,
			Name:   name,
			Supply: supply,
			Owners: append([]domain.Account(nil), owners...),
			Shares: append([]uint64(nil), shares...),
			URI:    uri,
		}
		return b.journal.Append(ctx, domain.NewSongAddedEvent(b.handle, result))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add song: %w", err)
	}
	b.appendSong(result)

	return result, nil
}

// GetOwnership returns the share account holds in the song.
// Unknown songs and accounts without a share read as 0.
func (b *Band) GetOwnership(songID uint64, account domain.Account) uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()

	i, ok := b.songIndex[songID]
	if !ok {
		return 0
	}
	return b.songs[i].Share(account)
}

// Song returns a registered song
func (b *Band) Song(songID uint64) (*Song, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	i, ok := b.songIndex[songID]
	if !ok {
		return nil, fmt.Errorf("%w: %d in band %s", domain.ErrSongNotFound, songID, b.handle.Hex())
	}
	return b.songs[i], nil
}

// Songs returns the songs in registration order
func (b *Band) Songs() []*Song {
	b.mu.RLock()
	defer b.mu.RUnlock()

	songs := make([]*Song, len(b.songs))
	copy(songs, b.songs)
	return songs
}

// SongCount returns the number of registered songs
func (b *Band) SongCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.songs)
}

func (b *Band) appendSong(added *domain.SongAdded) {
	b.songIndex[added.SongID] = len(b.songs)
	b.songs = append(b.songs, newSong(added))
}

// ValidateSplit checks the arguments of a song registration
func ValidateSplit(name string, supply uint64, owners []domain.Account, shares []uint64) error {
	if err := domain.ValidateName("song", name); err != nil {
		return err
	}
	if supply == 0 {
		return fmt.Errorf("%w: supply must be positive", domain.ErrInvalidInput)
	}
	if len(owners) == 0 {
		return fmt.Errorf("%w: at least one owner is required", domain.ErrInvalidInput)
	}
	if len(owners) != len(shares) {
		return fmt.Errorf("%w: %d owners but %d shares", domain.ErrInvalidInput, len(owners), len(shares))
	}

	seen := make(map[domain.Account]struct{}, len(owners))
	for _, owner := range owners {
		if domain.IsZeroAddress(owner) {
			return fmt.Errorf("%w: zero address cannot own a share", domain.ErrInvalidInput)
		}
		if _, dup := seen[owner]; dup {
			return fmt.Errorf("%w: duplicate owner %s", domain.ErrInvalidInput, owner.Hex())
		}
		seen[owner] = struct{}{}
	}

	var total, carry uint64
	for _, share := range shares {
		total, carry = bits.Add64(total, share, 0)
		if carry != 0 {
			return fmt.Errorf("%w: shares overflow", domain.ErrInvalidSplit)
		}
	}
	if total != supply {
		return fmt.Errorf("%w: shares sum to %d, supply is %d", domain.ErrInvalidSplit, total, supply)
	}

	return nil
}
