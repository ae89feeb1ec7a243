package minter

import (
	"fmt"
	"sync"

	"github.com/feral-file/band-ledger/internal/adapter"
	"github.com/feral-file/band-ledger/internal/domain"
)

// Token is a minted song token
type Token struct {
	ID     uint64
	Name   string
	Supply uint64
	URI    string
}

// CommitFunc is called with the identifier and URI a mint is about to record.
// Returning an error discards the mint and leaves the counter untouched.
type CommitFunc func(tokenID uint64, uri string) error

// TokenMinter issues sequential token identifiers starting at 0 and derives
// their metadata URIs
type TokenMinter interface {
	// Mint allocates the next identifier for a song token
	Mint(name string, supply uint64) (uint64, string, error)
	// MintFunc allocates the next identifier only if commit accepts it
	MintFunc(name string, supply uint64, commit CommitFunc) (uint64, string, error)
	// URI returns the metadata URI of a minted token
	URI(tokenID uint64) (string, error)
	// Token returns a minted token
	Token(tokenID uint64) (*Token, error)
	// Count returns how many tokens were minted
	Count() uint64
}

type tokenMinter struct {
	mu     sync.RWMutex
	tokens []Token
	base64 adapter.Base64
}

// New creates a token minter with an empty identifier space
func New(b64 adapter.Base64) TokenMinter {
	return &tokenMinter{
		base64: b64,
	}
}

func (m *tokenMinter) Mint(name string, supply uint64) (uint64, string, error) {
	return m.MintFunc(name, supply, nil)
}

func (m *tokenMinter) MintFunc(name string, supply uint64, commit CommitFunc) (uint64, string, error) {
	if err := domain.ValidateName("song", name); err != nil {
		return 0, "", err
	}
	if supply == 0 {
		return 0, "", fmt.Errorf("%w: supply must be positive", domain.ErrInvalidInput)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tokenID := uint64(len(m.tokens))
	uri := NewMetadata(name, m.base64).URI(m.base64)

	if commit != nil {
		if err := commit(tokenID, uri); err != nil {
			return 0, "", err
		}
	}

	m.tokens = append(m.tokens, Token{
		ID:     tokenID,
		Name:   name,
		Supply: supply,
		URI:    uri,
	})

	return tokenID, uri, nil
}

func (m *tokenMinter) URI(tokenID uint64) (string, error) {
	token, err := m.Token(tokenID)
	if err != nil {
		return "", err
	}
	return token.URI, nil
}

func (m *tokenMinter) Token(tokenID uint64) (*Token, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if tokenID >= uint64(len(m.tokens)) {
		return nil, fmt.Errorf("%w: %d", domain.ErrTokenNotFound, tokenID)
	}

	token := m.tokens[tokenID]
	return &token, nil
}

func (m *tokenMinter) Count() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return uint64(len(m.tokens))
}
