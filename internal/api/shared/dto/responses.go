package dto

import (
	"fmt"
	"strconv"

	"github.com/feral-file/band-ledger/internal/band"
	"github.com/feral-file/band-ledger/internal/domain"
	"github.com/feral-file/band-ledger/internal/store"
)

// BandCreatedResponse represents a newly created band
type BandCreatedResponse struct {
	Band    string `json:"band"`
	Name    string `json:"name"`
	Creator string `json:"creator"`
	Nonce   uint64 `json:"nonce"`
}

// BandResponse summarizes a band
type BandResponse struct {
	Band      string   `json:"band"`
	Name      string   `json:"name"`
	Creator   string   `json:"creator"`
	Members   []string `json:"members"`
	SongCount int      `json:"song_count"`
}

// BandListResponse lists band handles in creation order
type BandListResponse struct {
	Bands []string `json:"bands"`
}

// MemberAddedResponse represents a membership grant
type MemberAddedResponse struct {
	Band    string `json:"band"`
	Owner   string `json:"owner"`
	AddedBy string `json:"added_by"`
}

// MembershipResponse answers whether an account is a member
type MembershipResponse struct {
	Member bool `json:"member"`
}

// OwnershipResponse is one entry of a song split
type OwnershipResponse struct {
	Account string `json:"account"`
	Share   uint64 `json:"share"`
}

// SongResponse represents a registered song and its split
type SongResponse struct {
	SongID uint64              `json:"song_id"`
	Name   string              `json:"name"`
	Supply uint64              `json:"supply"`
	URI    string              `json:"uri"`
	Owners []OwnershipResponse `json:"owners"`
}

// SongListResponse lists the songs of a band in registration order
type SongListResponse struct {
	Songs []SongResponse `json:"songs"`
}

// ShareResponse carries the share an account holds in a song
type ShareResponse struct {
	Share uint64 `json:"share"`
}

// URIResponse carries a token metadata URI
type URIResponse struct {
	URI string `json:"uri"`
}

// OwnedSongResponse is a song in which an account holds a share
type OwnedSongResponse struct {
	Band         string `json:"band"`
	BandName     string `json:"band_name"`
	SongID       uint64 `json:"song_id"`
	Name         string `json:"name"`
	Supply       uint64 `json:"supply"`
	Share        uint64 `json:"share"`
	MetadataHash string `json:"metadata_hash"`
}

// OwnedSongListResponse lists the songs an account holds shares in
type OwnedSongListResponse struct {
	Songs []OwnedSongResponse `json:"songs"`
}

// MapBandCreatedToDTO maps a band creation to its response
func MapBandCreatedToDTO(created *domain.BandCreated) *BandCreatedResponse {
	return &BandCreatedResponse{
		Band:    created.Band.Hex(),
		Name:    created.Name,
		Creator: created.Creator.Hex(),
		Nonce:   created.Nonce,
	}
}

// MapBandToDTO maps a band to its summary
func MapBandToDTO(b *band.Band) *BandResponse {
	members := b.Members()
	return &BandResponse{
		Band:      b.Handle().Hex(),
		Name:      b.Name(),
		Creator:   b.Creator().Hex(),
		Members:   MapAddresses(members),
		SongCount: b.SongCount(),
	}
}

// MapAddresses maps addresses to their checksummed hex form
func MapAddresses(addresses []domain.Account) []string {
	out := make([]string, len(addresses))
	for i, address := range addresses {
		out[i] = address.Hex()
	}
	return out
}

// MapSongToDTO maps a song to its response
func MapSongToDTO(song *band.Song) SongResponse {
	owners := song.Owners()
	shares := song.Shares()

	resp := SongResponse{
		SongID: song.ID,
		Name:   song.Name,
		Supply: song.Supply,
		URI:    song.URI,
		Owners: make([]OwnershipResponse, len(owners)),
	}
	for i, owner := range owners {
		resp.Owners[i] = OwnershipResponse{Account: owner.Hex(), Share: shares[i]}
	}
	return resp
}

// MapOwnedSongToDTO maps a store row to its response
func MapOwnedSongToDTO(song store.OwnedSong) (OwnedSongResponse, error) {
	supply, err := strconv.ParseUint(song.Supply, 10, 64)
	if err != nil {
		return OwnedSongResponse{}, fmt.Errorf("invalid supply %q: %w", song.Supply, err)
	}
	share, err := strconv.ParseUint(song.Share, 10, 64)
	if err != nil {
		return OwnedSongResponse{}, fmt.Errorf("invalid share %q: %w", song.Share, err)
	}

	return OwnedSongResponse{
		Band:         song.BandAddress,
		BandName:     song.BandName,
		SongID:       uint64(song.SongNumber), //nolint:gosec,G115
		Name:         song.Name,
		Supply:       supply,
		Share:        share,
		MetadataHash: song.MetadataHash,
	}, nil
}
