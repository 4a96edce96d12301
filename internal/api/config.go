// Package api provides HTTP API server configuration for the attestd gateway.
//
// The gateway hosts the batch submission, MFA enrollment and password reset
// flows over HTTP/JSON for the browser UI. It keeps no state of its own: every
// request runs one flow step against the REST backend and the directory and
// mail services the daemon was configured with.
//
// Config is the dependency injection point between the daemon, which builds
// the outbound clients from flags and environment, and the server, which only
// routes requests to them. Tests pass fakes through the same interfaces.
package api

import (
	"fmt"

	"github.com/concave-dev/attest/internal/api/handlers"
	"github.com/concave-dev/attest/internal/authflow"
	"github.com/concave-dev/attest/internal/batch"
	"github.com/concave-dev/attest/internal/config"
	"github.com/concave-dev/attest/internal/validate"
)

// AuthService serves both account flows. *authflow.Client implements it.
type AuthService interface {
	authflow.MFA
	authflow.Passwords
}

// Config holds all configuration parameters required for running the gateway.
//
// TODO: Add support for configurable timeouts (read, write, idle)
type Config struct {
	BindAddr string // HTTP server bind address (e.g., "0.0.0.0")
	BindPort int    // HTTP server bind port

	BackendURL string            // Reported by /health; not dialed by the server itself
	Features   handlers.Features // Optional integrations, reported by /health

	Submitter *batch.Submitter // Runs batch submissions
	Batches   batch.EditLoader // Reads existing batches for edits
	Auth      AuthService      // MFA and password reset endpoints
}

// DefaultConfig creates a Config with the default bind address and port.
// Submitter, Batches and Auth must be set by the caller.
func DefaultConfig() *Config {
	return &Config{
		BindAddr:   config.DefaultBindAddr,
		BindPort:   config.DefaultGatewayPort,
		BackendURL: config.DefaultAPIURL,
	}
}

// Validate checks the network settings and that every flow dependency is
// wired.
func (c *Config) Validate() error {
	if err := validate.ValidateRequiredString(c.BindAddr, "bind address"); err != nil {
		return err
	}
	if err := validate.ValidatePortRange(c.BindPort); err != nil {
		return fmt.Errorf("bind port validation failed: %w", err)
	}
	if c.Submitter == nil {
		return fmt.Errorf("batch submitter cannot be nil")
	}
	if c.Batches == nil {
		return fmt.Errorf("batch loader cannot be nil")
	}
	if c.Auth == nil {
		return fmt.Errorf("auth service cannot be nil")
	}

	return nil
}
