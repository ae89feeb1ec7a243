package schema

import (
	"time"
)

// Song represents the songs table - songs registered with a band and minted as tokens
type Song struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// BandID references the band the song belongs to
	BandID int64 `gorm:"column:band_id;not null;uniqueIndex:idx_songs_band_song,priority:1"`
	// SongNumber is the token identifier issued by the band's minter
	SongNumber int64 `gorm:"column:song_number;not null;uniqueIndex:idx_songs_band_song,priority:2"`
	// Name is the song display name
	Name string `gorm:"column:name;not null;type:text"`
	// Supply is the total of all shares (stored as string to support up to 78 digits)
	Supply string `gorm:"column:supply;not null;type:numeric(78,0)"`
	// MetadataURI is the data URI of the token metadata
	MetadataURI string `gorm:"column:metadata_uri;not null;type:text"`
	// MetadataHash is the hex SHA-256 of the canonical metadata JSON
	MetadataHash string `gorm:"column:metadata_hash;not null;type:text"`
	// CreatedAt is the timestamp when the song was registered
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	Band Band `gorm:"foreignKey:BandID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Song model
func (Song) TableName() string {
	return "songs"
}
