package schema

import (
	"time"
)

// Band represents the bands table - projection of the bands created through the factory
type Band struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Address is the band handle
	Address string `gorm:"column:address;not null;type:text;uniqueIndex:idx_bands_address"`
	// Name is the band display name
	Name string `gorm:"column:name;not null;type:text"`
	// CreatorAddress is the account that created the band
	CreatorAddress string `gorm:"column:creator_address;not null;type:text;index:idx_bands_creator_address"`
	// Nonce is the factory nonce the address was derived from
	Nonce int64 `gorm:"column:nonce;not null;uniqueIndex:idx_bands_nonce"`
	// CreatedAt is the timestamp when the band was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Band model
func (Band) TableName() string {
	return "bands"
}
