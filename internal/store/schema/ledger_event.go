package schema

import (
	"time"

	"gorm.io/datatypes"
)

// LedgerEvent represents the ledger_events table - the append-only journal every ledger change commits through
type LedgerEvent struct {
	// Sequence is the journal position, assigned by the database and strictly increasing
	Sequence int64 `gorm:"column:sequence;primaryKey;autoIncrement"`
	// EventID is the ULID assigned when the event was stamped
	EventID string `gorm:"column:event_id;not null;type:text;uniqueIndex:idx_ledger_events_event_id"`
	// EventType is one of band.created, band.member_added, band.song_added
	EventType string `gorm:"column:event_type;not null;type:text"`
	// BandAddress is the handle of the band the event belongs to
	BandAddress string `gorm:"column:band_address;not null;type:text;index:idx_ledger_events_band_address"`
	// Payload is the JSON-encoded event envelope
	Payload datatypes.JSON `gorm:"column:payload;not null;type:jsonb"`
	// OccurredAt is the time the event was stamped
	OccurredAt time.Time `gorm:"column:occurred_at;not null;type:timestamptz"`
	// CreatedAt is the timestamp when the row was written
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the LedgerEvent model
func (LedgerEvent) TableName() string {
	return "ledger_events"
}
