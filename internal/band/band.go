package band

import (
	"fmt"
	"sync"

	"github.com/feral-file/band-ledger/internal/domain"
	"github.com/feral-file/band-ledger/internal/journal"
	"github.com/feral-file/band-ledger/internal/minter"
)

// Config describes a band at construction
type Config struct {
	Handle  domain.Handle
	Name    string
	Creator domain.Account
}

// Band is one instance of the membership registry and ownership ledger.
// Mutating calls are serialized and atomic: either the event is journaled and
// the change is applied, or nothing changes.
type Band struct {
	mu sync.RWMutex

	handle  domain.Handle
	name    string
	creator domain.Account

	minter  minter.TokenMinter
	journal journal.Journal

	// membership registry
	members     map[domain.Account]struct{}
	memberOrder []domain.Account

	// ownership ledger
	songs     []*Song
	songIndex map[uint64]int
}

// New creates a band whose creator is its first authorized member
func New(cfg Config, tokenMinter minter.TokenMinter, j journal.Journal) (*Band, error) {
	if err := domain.ValidateName("band", cfg.Name); err != nil {
		return nil, err
	}
	if domain.IsZeroAddress(cfg.Handle) {
		return nil, fmt.Errorf("%w: band handle is required", domain.ErrInvalidInput)
	}
	if domain.IsZeroAddress(cfg.Creator) {
		return nil, fmt.Errorf("%w: band creator is required", domain.ErrInvalidInput)
	}
	if tokenMinter == nil || j == nil {
		return nil, fmt.Errorf("%w: band requires a minter and a journal", domain.ErrInvalidInput)
	}

	b := &Band{
		handle:    cfg.Handle,
		name:      cfg.Name,
		creator:   cfg.Creator,
		minter:    tokenMinter,
		journal:   j,
		members:   make(map[domain.Account]struct{}),
		songIndex: make(map[uint64]int),
	}
	b.addMember(cfg.Creator)

	return b, nil
}

// Handle returns the band handle
func (b *Band) Handle() domain.Handle {
	return b.handle
}

// Name returns the band name
func (b *Band) Name() string {
	return b.name
}

// Creator returns the account that created the band
func (b *Band) Creator() domain.Account {
	return b.creator
}

// Minter returns the token minter the band registers songs with
func (b *Band) Minter() minter.TokenMinter {
	return b.minter
}
