package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/band-ledger/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	auth := middleware.Auth(authCfg)

	v1 := router.Group("/api/v1")
	{
		// Band endpoints (commands require authentication)
		v1.POST("/bands", auth, handler.CreateBand)
		v1.GET("/bands", auth, handler.ListCallerBands)
		v1.GET("/bands/:handle", handler.GetBand)

		// Membership registry
		v1.POST("/bands/:handle/members", auth, handler.AddMember)
		v1.GET("/bands/:handle/members/:account", handler.IsMember)

		// Ownership ledger
		v1.POST("/bands/:handle/songs", auth, handler.AddSong)
		v1.GET("/bands/:handle/songs", handler.ListSongs)
		v1.GET("/bands/:handle/songs/:song_id", handler.GetSong)
		v1.GET("/bands/:handle/songs/:song_id/ownership/:account", handler.GetOwnership)
		v1.GET("/bands/:handle/songs/:song_id/uri", handler.GetSongURI)
		v1.GET("/bands/:handle/songs/:song_id/image", handler.GetSongImage)

		// Account views (public read access)
		v1.GET("/accounts/:address/bands", handler.ListBandsByCreator)
		v1.GET("/accounts/:address/songs", handler.ListSongsByOwner)
	}
}
