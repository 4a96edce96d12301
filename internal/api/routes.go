package api

import (
	"github.com/gin-gonic/gin"
)

// Configures all API routes
func (s *Server) setupRoutes(router *gin.Engine) {
	// API version prefix
	v1 := router.Group("/api/v1")

	// Health check endpoint
	v1.GET("/health", s.getHandlerHealth())

	batches := v1.Group("/batches")
	{
		batches.POST("/submit", s.getHandlerSubmitBatch())
	}

	mfa := v1.Group("/mfa")
	{
		mfa.POST("/setup", s.getHandlerMFASetup())
		mfa.POST("/verify", s.getHandlerMFAVerify())
	}

	password := v1.Group("/password")
	{
		password.POST("/request", s.getHandlerPasswordRequest())
		password.POST("/reset", s.getHandlerPasswordReset())
	}
}
