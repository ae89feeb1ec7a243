package schema

import (
	"time"
)

// BandMember represents the band_members table - accounts authorized on a band
type BandMember struct {
	ID     int64 `gorm:"column:id;primaryKey;autoIncrement"`
	BandID int64 `gorm:"column:band_id;not null;uniqueIndex:idx_band_members_band_member,priority:1"`
	// MemberAddress is the authorized account
	MemberAddress string `gorm:"column:member_address;not null;type:text;uniqueIndex:idx_band_members_band_member,priority:2"`
	// AddedBy is the member that authorized this account, nil for the creator
	AddedBy   *string   `gorm:"column:added_by;type:text"`
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	Band Band `gorm:"foreignKey:BandID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the BandMember model
func (BandMember) TableName() string {
	return "band_members"
}
