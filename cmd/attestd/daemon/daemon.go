// Package daemon provides attestd lifecycle management.
//
// The daemon builds the outbound clients from the validated configuration,
// starts the HTTP gateway and waits for SIGINT or SIGTERM before shutting the
// gateway down gracefully. Requests in flight get a bounded grace period to
// finish; a submission cut off there has already reported its outcome up to
// the step it reached.
//
// STARTUP SEQUENCE:
// 1. Build backend, auth, directory and mail clients
// 2. Assemble and validate the gateway configuration
// 3. Bind the listen address (bind errors abort startup)
// 4. Report which optional features are enabled
package daemon

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/concave-dev/attest/cmd/attestd/config"
	"github.com/concave-dev/attest/internal/api"
	"github.com/concave-dev/attest/internal/api/handlers"
	"github.com/concave-dev/attest/internal/httpclient"
	"github.com/concave-dev/attest/internal/logging"
	"github.com/concave-dev/attest/internal/netutil"
	"github.com/concave-dev/attest/internal/services"
	"github.com/concave-dev/attest/internal/version"
)

// shutdownTimeout bounds how long in-flight requests may run after a signal.
const shutdownTimeout = 10 * time.Second

// buildServices converts the daemon config into outbound clients
func buildServices() (*services.Services, error) {
	return services.Build(services.Settings{
		APIURL:      config.Global.APIURL,
		Timeout:     config.Global.Timeout,
		SettleDelay: config.Global.SettleDelay,
		UserAgent:   httpclient.UserAgent("attestd", version.AttestdVersion),
		Env:         config.Global.Env,
	})
}

// buildAPIConfig converts daemon config and clients into gateway config
func buildAPIConfig(svc *services.Services) *api.Config {
	apiConfig := api.DefaultConfig()
	apiConfig.BindAddr = config.Global.BindAddr
	apiConfig.BindPort = config.Global.BindPort
	apiConfig.BackendURL = config.Global.APIURL
	apiConfig.Features = handlers.Features{
		Directory: svc.DirectoryEnabled(),
		Mail:      svc.MailEnabled(),
	}
	apiConfig.Submitter = svc.Submitter
	apiConfig.Batches = svc.Backend
	apiConfig.Auth = svc.Auth
	return apiConfig
}

// Run starts the gateway and blocks until a shutdown signal is received.
func Run() error {
	logging.Info("Starting attestd v%s", version.AttestdVersion)
	logging.Info("Backend: %s (timeout %s)", config.Global.APIURL, config.Global.Timeout)

	svc, err := buildServices()
	if err != nil {
		return fmt.Errorf("failed to build clients: %w", err)
	}

	apiConfig := buildAPIConfig(svc)
	if err := apiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid gateway config: %w", err)
	}

	server := api.NewServer(apiConfig)
	if err := server.Start(); err != nil {
		if hint := netutil.Describe(err, config.Global.ListenAddr); hint != "" {
			logging.Error("%s", hint)
		}
		return fmt.Errorf("failed to start gateway: %w", err)
	}

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	logging.Success("attestd started successfully")
	logging.Info("Gateway services:")
	logging.Info("  - HTTP gateway: %s", server.Addr())
	logging.Info("  - Group selection: %s", enabled(svc.DirectoryEnabled()))
	logging.Info("  - Email notifications: %s", enabled(svc.MailEnabled()))
	if config.Global.SettleDelay > 0 {
		logging.Debug("Waiting %s after each create before confirming the batch", config.Global.SettleDelay)
	}
	logging.Info("Gateway running... Press Ctrl+C to shutdown")

	sig := <-sigCh
	logging.Info("Received signal: %v", sig)
	logging.Info("Initiating graceful shutdown...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error("Error shutting down gateway: %v", err)
	}

	logging.Success("attestd shutdown completed")
	return nil
}

func enabled(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled (credentials not configured)"
}
