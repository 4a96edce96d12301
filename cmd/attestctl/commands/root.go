// Package commands contains the cobra command tree of attestctl. Handlers and
// flags are attached by the main package.
package commands

import (
	"time"

	"github.com/spf13/cobra"
)

// RootCmd is the base command for attestctl
var RootCmd = &cobra.Command{
	Use:   "attestctl",
	Short: "CLI for submitting document acknowledgement batches",
	Long: `Attest CLI (attestctl) creates and edits document acknowledgement
batches, links recipients and documents to them, and runs the two-factor
and password-reset flows against the Attest backend.

Configuration is read from ATTEST_* environment variables (and a .env file
in the working directory); global flags override them.`,
	SilenceUsage: true,
	Example: `  # Submit a new batch described in a YAML form
  attestctl batch submit -f q3-policies.yaml

  # Add recipients and documents to an existing batch
  attestctl batch submit -f q3-additions.yaml --edit 42

  # List batches
  attestctl batch ls

  # Show who a batch was sent to
  attestctl batch recipients 42

  # Talk to a different backend and print JSON
  attestctl --api=http://backend.internal:3000 -o json batch ls`,
}

// SetupCommands adds all top-level commands to root
func SetupCommands() {
	RootCmd.AddCommand(batchCmd)
	RootCmd.AddCommand(mfaCmd)
	RootCmd.AddCommand(passwordCmd)
}

// SetupGlobalFlags configures persistent flags shared by every command
func SetupGlobalFlags(rootCmd *cobra.Command, apiURLPtr *string, logLevelPtr *string,
	timeoutPtr *time.Duration, verbosePtr *bool, outputPtr *string,
	defaultAPIURL, defaultLogLevel string, defaultTimeout time.Duration) {
	rootCmd.PersistentFlags().StringVar(apiURLPtr, "api", defaultAPIURL,
		"Backend base URL (overrides ATTEST_API_URL)")
	rootCmd.PersistentFlags().StringVar(logLevelPtr, "log-level", defaultLogLevel,
		"Log level: DEBUG, INFO, WARN, ERROR")
	rootCmd.PersistentFlags().DurationVar(timeoutPtr, "timeout", defaultTimeout,
		"Per-request timeout (overrides ATTEST_TIMEOUT)")
	rootCmd.PersistentFlags().BoolVarP(verbosePtr, "verbose", "v", false,
		"Show verbose output")
	rootCmd.PersistentFlags().StringVarP(outputPtr, "output", "o", "table",
		"Output format: table, json")
}
