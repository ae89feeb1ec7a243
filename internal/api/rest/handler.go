package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/band-ledger/internal/api/middleware"
	"github.com/feral-file/band-ledger/internal/api/shared/constants"
	"github.com/feral-file/band-ledger/internal/api/shared/dto"
	"github.com/feral-file/band-ledger/internal/api/shared/executor"
	"github.com/feral-file/band-ledger/internal/domain"
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// CreateBand creates a band owned by the caller
	// POST /api/v1/bands
	CreateBand(c *gin.Context)

	// ListCallerBands lists the bands created by the caller
	// GET /api/v1/bands
	ListCallerBands(c *gin.Context)

	// ListBandsByCreator lists the bands created by an account
	// GET /api/v1/accounts/:address/bands
	ListBandsByCreator(c *gin.Context)

	// GetBand summarizes a band
	// GET /api/v1/bands/:handle
	GetBand(c *gin.Context)

	// AddMember grants membership of a band (caller must be a member)
	// POST /api/v1/bands/:handle/members
	AddMember(c *gin.Context)

	// IsMember reports whether an account is a member of a band
	// GET /api/v1/bands/:handle/members/:account
	IsMember(c *gin.Context)

	// AddSong registers a song and its ownership split (caller must be a member)
	// POST /api/v1/bands/:handle/songs
	AddSong(c *gin.Context)

	// ListSongs lists the songs of a band in registration order
	// GET /api/v1/bands/:handle/songs
	ListSongs(c *gin.Context)

	// GetSong retrieves a song and its split
	// GET /api/v1/bands/:handle/songs/:song_id
	GetSong(c *gin.Context)

	// GetOwnership returns the share an account holds in a song
	// GET /api/v1/bands/:handle/songs/:song_id/ownership/:account
	GetOwnership(c *gin.Context)

	// GetSongURI returns the metadata URI of a song token
	// GET /api/v1/bands/:handle/songs/:song_id/uri
	GetSongURI(c *gin.Context)

	// GetSongImage renders the artwork of a song token as PNG
	// GET /api/v1/bands/:handle/songs/:song_id/image
	GetSongImage(c *gin.Context)

	// ListSongsByOwner lists the songs in which an account holds a share
	// GET /api/v1/accounts/:address/songs
	ListSongsByOwner(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(exec executor.Executor) Handler {
	return &handler{
		executor: exec,
	}
}

func (h *handler) CreateBand(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		respondUnauthorized(c, "Authentication required")
		return
	}

	var req dto.CreateBandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err, "Invalid request body")
		return
	}

	response, err := h.executor.CreateBand(c.Request.Context(), caller, req.Name)
	if err != nil {
		respondError(c, err, "Failed to create band")
		return
	}

	c.JSON(http.StatusCreated, response)
}

func (h *handler) ListCallerBands(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		respondUnauthorized(c, "Authentication required")
		return
	}

	h.listBands(c, caller)
}

func (h *handler) ListBandsByCreator(c *gin.Context) {
	creator, err := parseAccountParam(c, "address")
	if err != nil {
		respondWithAPIError(c, asAPIError(err))
		return
	}

	h.listBands(c, creator)
}

func (h *handler) listBands(c *gin.Context, creator domain.Account) {
	response, err := h.executor.GetBandsByCreator(c.Request.Context(), creator)
	if err != nil {
		respondError(c, err, "Failed to list bands")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) GetBand(c *gin.Context) {
	handle, err := parseHandle(c)
	if err != nil {
		respondWithAPIError(c, asAPIError(err))
		return
	}

	response, err := h.executor.GetBand(c.Request.Context(), handle)
	if err != nil {
		respondError(c, err, "Failed to get band")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) AddMember(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		respondUnauthorized(c, "Authentication required")
		return
	}

	handle, err := parseHandle(c)
	if err != nil {
		respondWithAPIError(c, asAPIError(err))
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	account, err := req.Validate()
	if err != nil {
		respondError(c, err, "Invalid request body")
		return
	}

	response, err := h.executor.AddMember(c.Request.Context(), caller, handle, account)
	if err != nil {
		respondError(c, err, "Failed to add member")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) IsMember(c *gin.Context) {
	handle, err := parseHandle(c)
	if err != nil {
		respondWithAPIError(c, asAPIError(err))
		return
	}
	account, err := parseAccountParam(c, "account")
	if err != nil {
		respondWithAPIError(c, asAPIError(err))
		return
	}

	response, err := h.executor.IsMember(c.Request.Context(), handle, account)
	if err != nil {
		respondError(c, err, "Failed to check membership")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) AddSong(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		respondUnauthorized(c, "Authentication required")
		return
	}

	handle, err := parseHandle(c)
	if err != nil {
		respondWithAPIError(c, asAPIError(err))
		return
	}

	var req dto.AddSongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	owners, err := req.Validate()
	if err != nil {
		respondError(c, err, "Invalid request body")
		return
	}

	response, err := h.executor.AddSong(c.Request.Context(), caller, handle, req.Name, req.Supply, owners, req.Shares)
	if err != nil {
		respondError(c, err, "Failed to add song")
		return
	}

	c.JSON(http.StatusCreated, response)
}

func (h *handler) ListSongs(c *gin.Context) {
	handle, err := parseHandle(c)
	if err != nil {
		respondWithAPIError(c, asAPIError(err))
		return
	}

	response, err := h.executor.GetSongs(c.Request.Context(), handle)
	if err != nil {
		respondError(c, err, "Failed to list songs")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) GetSong(c *gin.Context) {
	handle, songID, err := parseSongPath(c)
	if err != nil {
		respondWithAPIError(c, asAPIError(err))
		return
	}

	response, err := h.executor.GetSong(c.Request.Context(), handle, songID)
	if err != nil {
		respondError(c, err, "Failed to get song")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) GetOwnership(c *gin.Context) {
	handle, songID, err := parseSongPath(c)
	if err != nil {
		respondWithAPIError(c, asAPIError(err))
		return
	}
	account, err := parseAccountParam(c, "account")
	if err != nil {
		respondWithAPIError(c, asAPIError(err))
		return
	}

	response, err := h.executor.GetOwnership(c.Request.Context(), handle, songID, account)
	if err != nil {
		respondError(c, err, "Failed to get ownership")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) GetSongURI(c *gin.Context) {
	handle, songID, err := parseSongPath(c)
	if err != nil {
		respondWithAPIError(c, asAPIError(err))
		return
	}

	response, err := h.executor.GetSongURI(c.Request.Context(), handle, songID)
	if err != nil {
		respondError(c, err, "Failed to get token URI")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) GetSongImage(c *gin.Context) {
	handle, songID, err := parseSongPath(c)
	if err != nil {
		respondWithAPIError(c, asAPIError(err))
		return
	}

	png, err := h.executor.GetSongImage(c.Request.Context(), handle, songID)
	if err != nil {
		respondError(c, err, "Failed to render artwork")
		return
	}

	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.Data(http.StatusOK, constants.PNG_CONTENT_TYPE, png)
}

func (h *handler) ListSongsByOwner(c *gin.Context) {
	owner, err := parseAccountParam(c, "address")
	if err != nil {
		respondWithAPIError(c, asAPIError(err))
		return
	}

	response, err := h.executor.GetSongsByOwner(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err, "Failed to list songs")
		return
	}

	c.JSON(http.StatusOK, response)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "band-ledger-api",
	})
}
