package factory

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/feral-file/band-ledger/internal/adapter"
	"github.com/feral-file/band-ledger/internal/band"
	"github.com/feral-file/band-ledger/internal/domain"
	"github.com/feral-file/band-ledger/internal/journal"
	"github.com/feral-file/band-ledger/internal/minter"
)

// Config holds the factory configuration
type Config struct {
	// Address is the account band handles are derived from
	Address domain.Account
}

// Factory creates bands and indexes them by creator
type Factory struct {
	mu sync.RWMutex

	address domain.Account
	nonce   uint64

	journal journal.Journal
	base64  adapter.Base64

	bands     map[domain.Handle]*band.Band
	order     []domain.Handle
	byCreator map[domain.Account][]domain.Handle
}

// New creates an empty factory
func New(cfg Config, j journal.Journal, b64 adapter.Base64) (*Factory, error) {
	if domain.IsZeroAddress(cfg.Address) {
		return nil, fmt.Errorf("%w: factory address is required", domain.ErrInvalidInput)
	}
	if j == nil || b64 == nil {
		return nil, fmt.Errorf("%w: factory requires a journal and a base64 encoder", domain.ErrInvalidInput)
	}

	return &Factory{
		address:   cfg.Address,
		journal:   j,
		base64:    b64,
		bands:     make(map[domain.Handle]*band.Band),
		byCreator: make(map[domain.Account][]domain.Handle),
	}, nil
}

// Address returns the account band handles are derived from
func (f *Factory) Address() domain.Account {
	return f.address
}

// Nonce returns the nonce of the most recently created band
func (f *Factory) Nonce() uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.nonce
}

// HandleAt derives the band handle for a factory nonce
func (f *Factory) HandleAt(nonce uint64) domain.Handle {
	return crypto.CreateAddress(f.address, nonce)
}

// Create deploys a new band with creator as its first member
func (f *Factory) Create(ctx context.Context, creator domain.Account, name string) (*domain.BandCreated, error) {
	if domain.IsZeroAddress(creator) {
		return nil, fmt.Errorf("%w: creator is required", domain.ErrInvalidInput)
	}
	if err := domain.ValidateName("band", name); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	nonce := f.nonce + 1
	result := &domain.BandCreated{
		Band:    f.HandleAt(nonce),
		Name:    name,
		Creator: creator,
		Nonce:   nonce,
	}
	b, err := f.newBand(result)
	if err != nil {
		return nil, err
	}

	if err := f.journal.Append(ctx, domain.NewBandCreatedEvent(result)); err != nil {
		return nil, fmt.Errorf("failed to create band: %w", err)
	}
	f.register(b, nonce)

	return result, nil
}

// GetAllBands returns the handles of the bands created by creator, in creation order
func (f *Factory) GetAllBands(creator domain.Account) []domain.Handle {
	f.mu.RLock()
	defer f.mu.RUnlock()

	handles := f.byCreator[creator]
	result := make([]domain.Handle, len(handles))
	copy(result, handles)
	return result
}

// AllBands returns the handles of every band, in creation order
func (f *Factory) AllBands() []domain.Handle {
	f.mu.RLock()
	defer f.mu.RUnlock()

	result := make([]domain.Handle, len(f.order))
	copy(result, f.order)
	return result
}

// Band returns the band registered under handle
func (f *Factory) Band(handle domain.Handle) (*band.Band, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	b, ok := f.bands[handle]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrBandNotFound, handle.Hex())
	}
	return b, nil
}

// newBand builds a band with its own minter; the caller holds the lock
func (f *Factory) newBand(created *domain.BandCreated) (*band.Band, error) {
	if _, exists := f.bands[created.Band]; exists {
		return nil, fmt.Errorf("%w: band %s already exists", domain.ErrInvalidInput, created.Band.Hex())
	}

	return band.New(band.Config{
		Handle:  created.Band,
		Name:    created.Name,
		Creator: created.Creator,
	}, minter.New(f.base64), f.journal)
}

// register indexes a band; the caller holds the lock
func (f *Factory) register(b *band.Band, nonce uint64) {
	f.nonce = nonce
	f.bands[b.Handle()] = b
	f.order = append(f.order, b.Handle())
	f.byCreator[b.Creator()] = append(f.byCreator[b.Creator()], b.Handle())
}
