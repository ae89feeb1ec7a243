package schema

// SongOwnership represents the song_ownerships table - the split of a song's supply across owners
type SongOwnership struct {
	ID     int64 `gorm:"column:id;primaryKey;autoIncrement"`
	SongID int64 `gorm:"column:song_id;not null;uniqueIndex:idx_song_ownerships_song_owner,priority:1"`
	// OwnerAddress is the account holding the share
	OwnerAddress string `gorm:"column:owner_address;not null;type:text;uniqueIndex:idx_song_ownerships_song_owner,priority:2;index:idx_song_ownerships_owner_address"`
	// Share is the owned quantity (stored as string to support up to 78 digits)
	Share string `gorm:"column:share;not null;type:numeric(78,0)"`
	// Position is the index of the owner in the registration call
	Position int `gorm:"column:position;not null"`

	// Associations
	Song Song `gorm:"foreignKey:SongID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the SongOwnership model
func (SongOwnership) TableName() string {
	return "song_ownerships"
}
