package store

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/band-ledger/internal/adapter"
	"github.com/feral-file/band-ledger/internal/domain"
	"github.com/feral-file/band-ledger/internal/minter"
	"github.com/feral-file/band-ledger/internal/store/schema"
)

type pgStore struct {
	db     *gorm.DB
	json   adapter.JSON
	base64 adapter.Base64
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB, jsonAdapter adapter.JSON, b64 adapter.Base64) Store {
	return &pgStore{
		db:     db,
		json:   jsonAdapter,
		base64: b64,
	}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// Zero values fall back to the defaults of NormalizeConnectionPoolSettings.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// AppendEvent writes the journal row and the projection rows in one transaction
func (s *pgStore) AppendEvent(ctx context.Context, event *domain.Event) error {
	payload, err := s.json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	row := schema.LedgerEvent{
		EventID:     event.ID,
		EventType:   string(event.Type),
		BandAddress: event.Band.Hex(),
		Payload:     datatypes.JSON(payload),
		OccurredAt:  event.Timestamp,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to create ledger event: %w", err)
		}

		switch event.Type {
		case domain.EventTypeBandCreated:
			return s.projectBandCreated(tx, event)
		case domain.EventTypeMemberAdded:
			return s.projectMemberAdded(tx, event)
		case domain.EventTypeSongAdded:
			return s.projectSongAdded(tx, event)
		default:
			return fmt.Errorf("%w: unknown event type %s", domain.ErrInvalidInput, event.Type)
		}
	})
	if err != nil {
		return err
	}

	event.Sequence = uint64(row.Sequence) //nolint:gosec,G115
	return nil
}

func (s *pgStore) projectBandCreated(tx *gorm.DB, event *domain.Event) error {
	created := event.BandCreated
	band := schema.Band{
		Address:        created.Band.Hex(),
		Name:           created.Name,
		CreatorAddress: created.Creator.Hex(),
		Nonce:          int64(created.Nonce), //nolint:gosec,G115
		CreatedAt:      event.Timestamp,
	}
	if err := tx.Create(&band).Error; err != nil {
		return fmt.Errorf("failed to create band: %w", err)
	}

	creator := schema.BandMember{
		BandID:        band.ID,
		MemberAddress: band.CreatorAddress,
		CreatedAt:     event.Timestamp,
	}
	if err := tx.Create(&creator).Error; err != nil {
		return fmt.Errorf("failed to create band creator membership: %w", err)
	}

	return nil
}

func (s *pgStore) projectMemberAdded(tx *gorm.DB, event *domain.Event) error {
	bandID, err := findBandID(tx, event.Band)
	if err != nil {
		return err
	}

	addedBy := event.MemberAdded.AddedBy.Hex()
	member := schema.BandMember{
		BandID:        bandID,
		MemberAddress: event.MemberAdded.Owner.Hex(),
		AddedBy:       &addedBy,
		CreatedAt:     event.Timestamp,
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "band_id"}, {Name: "member_address"}},
		DoNothing: true,
	}).Create(&member).Error; err != nil {
		return fmt.Errorf("failed to create band member: %w", err)
	}

	return nil
}

func (s *pgStore) projectSongAdded(tx *gorm.DB, event *domain.Event) error {
	added := event.SongAdded
	bandID, err := findBandID(tx, event.Band)
	if err != nil {
		return err
	}

	metadataHash, err := s.metadataHash(added.URI)
	if err != nil {
		return err
	}

	song := schema.Song{
		BandID:       bandID,
		SongNumber:   int64(added.SongID), //nolint:gosec,G115
		Name:         added.Name,
		Supply:       strconv.FormatUint(added.Supply, 10),
		MetadataURI:  added.URI,
		MetadataHash: metadataHash,
		CreatedAt:    event.Timestamp,
	}
	if err := tx.Create(&song).Error; err != nil {
		return fmt.Errorf("failed to create song: %w", err)
	}

	ownerships := make([]schema.SongOwnership, len(added.Owners))
	for i, owner := range added.Owners {
		ownerships[i] = schema.SongOwnership{
			SongID:       song.ID,
			OwnerAddress: owner.Hex(),
			Share:        strconv.FormatUint(added.Shares[i], 10),
			Position:     i,
		}
	}
	if err := tx.Create(&ownerships).Error; err != nil {
		return fmt.Errorf("failed to create song ownerships: %w", err)
	}

	return nil
}

// metadataHash returns the hex hash of the metadata carried by uri
func (s *pgStore) metadataHash(uri string) (string, error) {
	metadata, err := minter.ParseURI(uri, s.base64)
	if err != nil {
		return "", fmt.Errorf("failed to parse metadata uri: %w", err)
	}

	hash, err := metadata.Hash()
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(hash), nil
}

func findBandID(tx *gorm.DB, address domain.Handle) (int64, error) {
	var band schema.Band
	err := tx.Select("id").Where("address = ?", address.Hex()).First(&band).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: %s", domain.ErrBandNotFound, address.Hex())
		}
		return 0, fmt.Errorf("failed to get band: %w", err)
	}

	return band.ID, nil
}

// ListEvents returns committed events after afterSequence in journal order
func (s *pgStore) ListEvents(ctx context.Context, afterSequence uint64, limit int) ([]domain.Event, error) {
	var rows []schema.LedgerEvent
	err := s.db.WithContext(ctx).
		Where("sequence > ?", afterSequence).
		Order("sequence ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger events: %w", err)
	}

	events := make([]domain.Event, len(rows))
	for i, row := range rows {
		if err := s.json.Unmarshal(row.Payload, &events[i]); err != nil {
			return nil, fmt.Errorf("failed to unmarshal ledger event %d: %w", row.Sequence, err)
		}
		events[i].Sequence = uint64(row.Sequence) //nolint:gosec,G115
	}

	return events, nil
}

// GetLastSequence returns the highest committed sequence
func (s *pgStore) GetLastSequence(ctx context.Context) (uint64, error) {
	var last int64
	err := s.db.WithContext(ctx).
		Model(&schema.LedgerEvent{}).
		Select("COALESCE(MAX(sequence), 0)").
		Scan(&last).Error
	if err != nil {
		return 0, fmt.Errorf("failed to get last sequence: %w", err)
	}

	return uint64(last), nil //nolint:gosec,G115
}

// GetBand retrieves a band by its address
func (s *pgStore) GetBand(ctx context.Context, address string) (*schema.Band, error) {
	var band schema.Band
	err := s.db.WithContext(ctx).Where("address = ?", domain.NormalizeAddress(address)).First(&band).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get band: %w", err)
	}

	return &band, nil
}

// GetBandsByCreator retrieves the bands created by an account
func (s *pgStore) GetBandsByCreator(ctx context.Context, creator string) ([]schema.Band, error) {
	var bands []schema.Band
	err := s.db.WithContext(ctx).
		Where("creator_address = ?", domain.NormalizeAddress(creator)).
		Order("nonce ASC").
		Find(&bands).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get bands by creator: %w", err)
	}

	return bands, nil
}

// GetBandMembers retrieves the members of a band
func (s *pgStore) GetBandMembers(ctx context.Context, bandAddress string) ([]schema.BandMember, error) {
	var members []schema.BandMember
	err := s.db.WithContext(ctx).
		Joins("JOIN bands ON bands.id = band_members.band_id").
		Where("bands.address = ?", domain.NormalizeAddress(bandAddress)).
		Order("band_members.id ASC").
		Find(&members).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get band members: %w", err)
	}

	return members, nil
}

// GetSongOwnerships retrieves the split of a song
func (s *pgStore) GetSongOwnerships(ctx context.Context, bandAddress string, songNumber uint64) ([]schema.SongOwnership, error) {
	var ownerships []schema.SongOwnership
	err := s.db.WithContext(ctx).
		Joins("JOIN songs ON songs.id = song_ownerships.song_id").
		Joins("JOIN bands ON bands.id = songs.band_id").
		Where("bands.address = ? AND songs.song_number = ?", domain.NormalizeAddress(bandAddress), songNumber).
		Order("song_ownerships.position ASC").
		Find(&ownerships).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get song ownerships: %w", err)
	}

	return ownerships, nil
}

// GetSongsByOwner retrieves the songs in which owner holds a positive share
func (s *pgStore) GetSongsByOwner(ctx context.Context, owner string) ([]OwnedSong, error) {
	var songs []OwnedSong
	err := s.db.WithContext(ctx).
		Table("song_ownerships").
		Select(`bands.address AS band_address, bands.name AS band_name, songs.song_number, songs.name,
			songs.supply::text AS supply, songs.metadata_hash, song_ownerships.share::text AS share`).
		Joins("JOIN songs ON songs.id = song_ownerships.song_id").
		Joins("JOIN bands ON bands.id = songs.band_id").
		Where("song_ownerships.owner_address = ? AND song_ownerships.share > 0", domain.NormalizeAddress(owner)).
		Order("bands.nonce ASC, songs.song_number ASC").
		Scan(&songs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get songs by owner: %w", err)
	}

	return songs, nil
}
