// Package commands provides the CLI command structure for the attestd gateway.
//
// attestd has a single root command: it validates its configuration, builds
// the backend, directory and mail clients and serves the browser UI's flows
// until interrupted. Flags override ATTEST_* environment variables, which
// override built-in defaults.
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/concave-dev/attest/cmd/attestd/config"
	"github.com/concave-dev/attest/cmd/attestd/daemon"
	"github.com/concave-dev/attest/cmd/attestd/utils"
	"github.com/concave-dev/attest/internal/logging"
	"github.com/concave-dev/attest/internal/version"
	"github.com/spf13/cobra"
)

// Global variable to track log file handle for cleanup
var logFileHandle *os.File

// CleanupLogFile closes the log file handle if it exists
func CleanupLogFile() {
	if logFileHandle != nil {
		if err := logFileHandle.Close(); err != nil {
			// Use fmt.Fprintf instead of logging since the log file is going away
			fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
		}
		logFileHandle = nil
	}
}

// Root command for the attestd gateway
var RootCmd = &cobra.Command{
	Use:   "attestd",
	Short: "HTTP gateway for document acknowledgement batches",
	Long: `Attest gateway (attestd) serves the batch editor, MFA enrollment and
password reset flows over HTTP/JSON for the browser UI.

It forwards to the REST backend and, when credentials are configured, the
directory service for group members and the mail service for notifications.
Settings come from flags, ATTEST_* environment variables and an optional .env file.`,
	Version:      version.AttestdVersion,
	SilenceUsage: true, // Don't show usage on errors
	Example: `  # Serve on the default address against a local backend
  attestd

  # Explicit backend and listen address
  attestd --api=https://attest.example.com --listen=127.0.0.1:9000

  # Debug logging to a file
  attestd --log-level=DEBUG --log-file=/var/log/attest/attestd.log`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Display logo first, before any validation or logging
		utils.DisplayLogo(version.AttestdVersion)
	},
	PreRunE: func(cmd *cobra.Command, args []string) error {
		CheckExplicitFlags(cmd)

		// Setup log file redirection if --log-file was specified
		if config.Global.IsExplicitlySet(config.LogFileField) && config.Global.LogFile != "" {
			logDir := filepath.Dir(config.Global.LogFile)
			if err := os.MkdirAll(logDir, 0755); err != nil {
				return fmt.Errorf("failed to create log directory %s: %w", logDir, err)
			}

			var err error
			logFileHandle, err = os.OpenFile(config.Global.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				return fmt.Errorf("failed to open log file %s: %w", config.Global.LogFile, err)
			}

			logging.SetOutput(logFileHandle)
			logging.RedirectStandardLog(logging.NewLevelWriter("INFO", "stdlog"))
		}

		// Configure logging level immediately after flags are parsed to prevent
		// INFO logs during config initialization when ERROR level is requested
		logging.SetLevel(config.Global.LogLevel)
		if err := config.InitializeConfig(); err != nil {
			CleanupLogFile()
			return err
		}
		// Re-apply to pick up ATTEST_LOG_LEVEL or DEBUG=true
		logging.SetLevel(config.Global.LogLevel)

		if err := config.ValidateConfig(); err != nil {
			CleanupLogFile()
			return err
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		defer CleanupLogFile()
		return daemon.Run()
	},
}

// SetupCommands initializes all commands and their relationships
func SetupCommands() {
	SetupFlags(RootCmd)
}
