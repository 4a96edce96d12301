// Package commands contains Cobra CLI command definitions for attestd.
package commands

import (
	"github.com/concave-dev/attest/cmd/attestd/config"
	configDefaults "github.com/concave-dev/attest/internal/config"
	"github.com/spf13/cobra"
)

// SetupFlags configures all command line flags for the gateway
func SetupFlags(cmd *cobra.Command) {
	// Network flags
	cmd.Flags().StringVar(&config.Global.ListenAddr, "listen", config.DefaultListen,
		"Address and port for the HTTP gateway (e.g., "+config.DefaultListen+")")

	// Backend flags
	cmd.Flags().StringVar(&config.Global.APIURL, "api", configDefaults.DefaultAPIURL,
		"Base URL of the REST backend (overrides ATTEST_API_URL)")
	cmd.Flags().DurationVar(&config.Global.Timeout, "timeout", configDefaults.DefaultTimeout,
		"Timeout for each request to the backend, directory and mail services (overrides ATTEST_TIMEOUT)")

	// Operational flags
	cmd.Flags().StringVar(&config.Global.LogLevel, "log-level", config.DefaultLogLevel,
		"Log level: DEBUG, INFO, WARN, ERROR (overrides ATTEST_LOG_LEVEL)")
	cmd.Flags().StringVar(&config.Global.LogFile, "log-file", "",
		"Write logs to this file instead of stdout/stderr")
}

// CheckExplicitFlags checks if flags were explicitly set by the user
func CheckExplicitFlags(cmd *cobra.Command) {
	config.Global.SetExplicitlySet(config.ListenField, cmd.Flags().Changed("listen"))
	config.Global.SetExplicitlySet(config.APIField, cmd.Flags().Changed("api"))
	config.Global.SetExplicitlySet(config.TimeoutField, cmd.Flags().Changed("timeout"))
	config.Global.SetExplicitlySet(config.LogLevelField, cmd.Flags().Changed("log-level"))
	config.Global.SetExplicitlySet(config.LogFileField, cmd.Flags().Changed("log-file"))
}
