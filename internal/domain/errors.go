package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned when the caller is not an authorized member of the band
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidInput is returned when a command carries malformed arguments
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidSplit is returned when song shares do not sum to the song supply
	ErrInvalidSplit = errors.New("invalid split")

	// ErrNotFound is the root of all lookup failures
	ErrNotFound = errors.New("not found")

	// ErrTokenNotFound is returned when a token identifier was never minted
	ErrTokenNotFound = fmt.Errorf("token %w", ErrNotFound)

	// ErrBandNotFound is returned when no band exists for a handle
	ErrBandNotFound = fmt.Errorf("band %w", ErrNotFound)

	// ErrSongNotFound is returned when a band has no song with the given identifier
	ErrSongNotFound = fmt.Errorf("song %w", ErrNotFound)

	// ErrReplayMismatch is returned when a journal entry does not fit the rebuilt state
	ErrReplayMismatch = errors.New("replay mismatch")
)
