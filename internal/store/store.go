package store

import (
	"context"

	"github.com/feral-file/band-ledger/internal/domain"
	"github.com/feral-file/band-ledger/internal/store/schema"
)

// OwnedSong is a song in which an account holds a share
type OwnedSong struct {
	BandAddress  string `gorm:"column:band_address"`
	BandName     string `gorm:"column:band_name"`
	SongNumber   int64  `gorm:"column:song_number"`
	Name         string `gorm:"column:name"`
	Supply       string `gorm:"column:supply"`
	MetadataHash string `gorm:"column:metadata_hash"`
	Share        string `gorm:"column:share"`
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// AppendEvent records the event and its projection in a single transaction
	// and sets the event sequence on success
	AppendEvent(ctx context.Context, event *domain.Event) error
	// ListEvents returns up to limit events with a sequence greater than afterSequence, in order
	ListEvents(ctx context.Context, afterSequence uint64, limit int) ([]domain.Event, error)
	// GetLastSequence returns the sequence of the most recent event, 0 when the journal is empty
	GetLastSequence(ctx context.Context) (uint64, error)

	// GetBand retrieves a band by its address, nil if it does not exist
	GetBand(ctx context.Context, address string) (*schema.Band, error)
	// GetBandsByCreator retrieves the bands created by an account in creation order
	GetBandsByCreator(ctx context.Context, creator string) ([]schema.Band, error)
	// GetBandMembers retrieves the members of a band in the order they were added
	GetBandMembers(ctx context.Context, bandAddress string) ([]schema.BandMember, error)
	// GetSongOwnerships retrieves the split of a song in registration order
	GetSongOwnerships(ctx context.Context, bandAddress string, songNumber uint64) ([]schema.SongOwnership, error)
	// GetSongsByOwner retrieves the songs in which an account holds a positive share
	GetSongsByOwner(ctx context.Context, owner string) ([]OwnedSong, error)
}
