package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/band-ledger/internal/api/shared/errors"
)

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, message string) {
	respondWithAPIError(c, errors.NewValidationError(message))
}

// respondUnauthorized responds with an authentication error
func respondUnauthorized(c *gin.Context, message string) {
	respondWithAPIError(c, errors.NewUnauthorizedError(message))
}

// respondError maps an executor error to its HTTP status
func respondError(c *gin.Context, err error, message string) {
	respondWithAPIError(c, errors.FromError(err, message))
}

func respondWithAPIError(c *gin.Context, apiErr *errors.APIError) {
	c.JSON(apiErr.StatusCode(), apiErr)
}
