package dto

import (
	"fmt"

	"github.com/feral-file/band-ledger/internal/api/shared/constants"
	apierrors "github.com/feral-file/band-ledger/internal/api/shared/errors"
	"github.com/feral-file/band-ledger/internal/domain"
)

// CreateBandRequest represents the request body for creating a band
type CreateBandRequest struct {
	Name string `json:"name"`
}

// Validate validates the request body
func (r *CreateBandRequest) Validate() error {
	if err := domain.ValidateName("band", r.Name); err != nil {
		return apierrors.NewValidationError(err.Error())
	}
	if len(r.Name) > constants.MAX_BAND_NAME_LENGTH {
		return apierrors.NewValidationError(fmt.Sprintf("name must be at most %d bytes", constants.MAX_BAND_NAME_LENGTH))
	}
	return nil
}

// AddMemberRequest represents the request body for adding a band member
type AddMemberRequest struct {
	Account string `json:"account"`
}

// Validate validates the request body and returns the parsed account
func (r *AddMemberRequest) Validate() (domain.Account, error) {
	if r.Account == "" {
		return domain.Account{}, apierrors.NewValidationError("account is required")
	}
	account, err := domain.ParseAccount(r.Account)
	if err != nil {
		return domain.Account{}, apierrors.NewValidationError(err.Error())
	}
	return account, nil
}

// AddSongRequest represents the request body for registering a song.
// The split itself is checked by the ledger.
type AddSongRequest struct {
	Name   string   `json:"name"`
	Supply uint64   `json:"supply"`
	Owners []string `json:"owners"`
	Shares []uint64 `json:"shares"`
}

// Validate validates the request body and returns the parsed owners
func (r *AddSongRequest) Validate() ([]domain.Account, error) {
	if len(r.Name) > constants.MAX_SONG_NAME_LENGTH {
		return nil, apierrors.NewValidationError(fmt.Sprintf("name must be at most %d bytes", constants.MAX_SONG_NAME_LENGTH))
	}
	if len(r.Owners) > constants.MAX_SONG_OWNERS {
		return nil, apierrors.NewValidationError(fmt.Sprintf("maximum %d owners allowed", constants.MAX_SONG_OWNERS))
	}

	owners, err := domain.ParseAccounts(r.Owners)
	if err != nil {
		return nil, apierrors.NewValidationError(err.Error())
	}

	return owners, nil
}
