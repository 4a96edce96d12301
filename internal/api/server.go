package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/concave-dev/attest/internal/api/handlers"
	"github.com/concave-dev/attest/internal/logging"
	"github.com/concave-dev/attest/internal/version"
	"github.com/gin-gonic/gin"
)

// Represents the attestd API server
type Server struct {
	config     *Config
	httpServer *http.Server
	bindAddr   string
	bindPort   int

	mu       sync.Mutex
	listener net.Listener
}

var startTime = time.Now() // Track server start time for uptime calculation

// NewServer creates a new gateway server instance. A nil config panics.
func NewServer(config *Config) *Server {
	// Set Gin to release mode for production
	gin.SetMode(gin.ReleaseMode)

	return &Server{
		config:   config,
		bindAddr: config.BindAddr,
		bindPort: config.BindPort,
	}
}

// Handler builds the gin engine with middleware and routes.
func (s *Server) Handler() http.Handler {
	router := gin.New()

	// Configure Gin logging only if not already configured by CLI tools
	if !logging.IsConfiguredByCLI() {
		gin.DefaultWriter = logging.NewLevelWriter("DEBUG", "gin")
		gin.DefaultErrorWriter = logging.NewLevelWriter("ERROR", "gin")
	}

	router.Use(s.requestIDMiddleware())
	router.Use(s.loggingMiddleware())
	router.Use(s.corsMiddleware())
	router.Use(gin.Recovery())

	s.setupRoutes(router)
	return router
}

// Start binds the listen address and serves in the background. Bind errors
// are returned immediately.
func (s *Server) Start() error {
	addr := net.JoinHostPort(s.bindAddr, strconv.Itoa(s.bindPort))
	logging.Info("Starting HTTP API server on %s", addr)

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
		// Submissions wait on several upstream calls plus the settle delay
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind to %s: %w", addr, err)
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logging.Error("HTTP server failed: %v", err)
		}
	}()

	logging.Success("HTTP API server started successfully on %s", listener.Addr())
	return nil
}

// Addr returns the bound address once started, or "" before.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down HTTP API server...")

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

// getHandlerHealth is a health endpoint handler factory
func (s *Server) getHandlerHealth() gin.HandlerFunc {
	return handlers.HandleHealth(version.AttestdVersion, startTime, s.config.BackendURL, s.config.Features)
}

// getHandlerSubmitBatch is a batch submission endpoint handler factory
func (s *Server) getHandlerSubmitBatch() gin.HandlerFunc {
	return handlers.HandleSubmitBatch(s.config.Submitter, s.config.Batches)
}

// getHandlerMFASetup is an MFA setup endpoint handler factory
func (s *Server) getHandlerMFASetup() gin.HandlerFunc {
	return handlers.HandleMFASetup(s.config.Auth)
}

// getHandlerMFAVerify is an MFA verification endpoint handler factory
func (s *Server) getHandlerMFAVerify() gin.HandlerFunc {
	return handlers.HandleMFAVerify(s.config.Auth)
}

// getHandlerPasswordRequest is a reset code request endpoint handler factory
func (s *Server) getHandlerPasswordRequest() gin.HandlerFunc {
	return handlers.HandlePasswordRequest(s.config.Auth)
}

// getHandlerPasswordReset is a password reset endpoint handler factory
func (s *Server) getHandlerPasswordReset() gin.HandlerFunc {
	return handlers.HandlePasswordReset(s.config.Auth)
}
