package rest

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	apierrors "github.com/feral-file/band-ledger/internal/api/shared/errors"
	"github.com/feral-file/band-ledger/internal/domain"
)

// parseHandle reads the :handle path parameter
func parseHandle(c *gin.Context) (domain.Handle, error) {
	handle, err := domain.ParseHandle(c.Param("handle"))
	if err != nil {
		return domain.Handle{}, apierrors.NewBadRequestError("Invalid band handle", err.Error())
	}
	return handle, nil
}

// parseAccountParam reads an account path parameter
func parseAccountParam(c *gin.Context, name string) (domain.Account, error) {
	account, err := domain.ParseAccount(c.Param(name))
	if err != nil {
		return domain.Account{}, apierrors.NewBadRequestError("Invalid account address", err.Error())
	}
	return account, nil
}

// parseSongID reads the :song_id path parameter
func parseSongID(c *gin.Context) (uint64, error) {
	songID, err := strconv.ParseUint(c.Param("song_id"), 10, 64)
	if err != nil {
		return 0, apierrors.NewBadRequestError("Invalid song ID", "song_id must be a non-negative integer")
	}
	return songID, nil
}

// parseSongPath reads the :handle and :song_id path parameters
func parseSongPath(c *gin.Context) (domain.Handle, uint64, error) {
	handle, err := parseHandle(c)
	if err != nil {
		return domain.Handle{}, 0, err
	}
	songID, err := parseSongID(c)
	if err != nil {
		return domain.Handle{}, 0, err
	}
	return handle, songID, nil
}

// asAPIError unwraps the API error produced by the parsers above
func asAPIError(err error) *apierrors.APIError {
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return apierrors.NewBadRequestError(err.Error())
}
