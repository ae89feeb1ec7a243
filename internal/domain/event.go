package domain

import (
	"time"
)

// EventType represents the type of a ledger event
type EventType string

const (
	EventTypeBandCreated EventType = "band.created"
	EventTypeMemberAdded EventType = "band.member_added"
	EventTypeSongAdded   EventType = "band.song_added"
)

// BandCreated is the outcome of creating a band through the factory
type BandCreated struct {
	Band    Handle  `json:"band"`
	Name    string  `json:"name"`
	Creator Account `json:"creator"`
	Nonce   uint64  `json:"nonce"` // factory nonce the handle was derived from
}

// MemberAdded is the outcome of adding a member to a band
type MemberAdded struct {
	Owner   Account `json:"owner"`
	AddedBy Account `json:"added_by"`
}

// SongAdded is the outcome of registering a song with a band
type SongAdded struct {
	SongID uint64    `json:"song_id"`
	Name   string    `json:"name"`
	Supply uint64    `json:"supply"`
	Owners []Account `json:"owners"`
	Shares []uint64  `json:"shares"`
	URI    string    `json:"uri"`
}

// Event is the journal envelope of a committed ledger change.
// Exactly one payload is set and it matches Type.
type Event struct {
	ID          string       `json:"id"`       // ULID assigned by the journal
	Sequence    uint64       `json:"sequence"` // journal position assigned on append
	Type        EventType    `json:"type"`
	Band        Handle       `json:"band"`
	Timestamp   time.Time    `json:"timestamp"`
	BandCreated *BandCreated `json:"band_created,omitempty"`
	MemberAdded *MemberAdded `json:"member_added,omitempty"`
	SongAdded   *SongAdded   `json:"song_added,omitempty"`
}

// NewBandCreatedEvent wraps a BandCreated outcome in an event envelope
func NewBandCreatedEvent(payload *BandCreated) *Event {
	return &Event{
		Type:        EventTypeBandCreated,
		Band:        payload.Band,
		BandCreated: payload,
	}
}

// NewMemberAddedEvent wraps a MemberAdded outcome in an event envelope
func NewMemberAddedEvent(band Handle, payload *MemberAdded) *Event {
	return &Event{
		Type:        EventTypeMemberAdded,
		Band:        band,
		MemberAdded: payload,
	}
}

// NewSongAddedEvent wraps a SongAdded outcome in an event envelope
func NewSongAddedEvent(band Handle, payload *SongAdded) *Event {
	return &Event{
		Type:      EventTypeSongAdded,
		Band:      band,
		SongAdded: payload,
	}
}

// Valid checks that the envelope carries exactly the payload its type requires
func (e *Event) Valid() bool {
	if IsZeroAddress(e.Band) {
		return false
	}

	switch e.Type {
	case EventTypeBandCreated:
		if e.BandCreated == nil || e.MemberAdded != nil || e.SongAdded != nil {
			return false
		}
		if e.BandCreated.Band != e.Band || IsZeroAddress(e.BandCreated.Creator) {
			return false
		}
	case EventTypeMemberAdded:
		if e.MemberAdded == nil || e.BandCreated != nil || e.SongAdded != nil {
			return false
		}
		if IsZeroAddress(e.MemberAdded.Owner) {
			return false
		}
	case EventTypeSongAdded:
		if e.SongAdded == nil || e.BandCreated != nil || e.MemberAdded != nil {
			return false
		}
		s := e.SongAdded
		if s.Supply == 0 || len(s.Owners) == 0 || len(s.Owners) != len(s.Shares) {
			return false
		}
	default:
		return false
	}

	return true
}

// Subject returns the messaging subject suffix for the event, e.g. "band.song_added"
func (e *Event) Subject() string {
	return string(e.Type)
}
