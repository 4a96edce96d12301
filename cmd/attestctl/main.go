// Package main provides the entry point for the Attest CLI (attestctl).
//
// The CLI drives the same flows as the web editor against the REST backend:
// batch submission (create or edit, with recipient expansion and email
// notifications), batch listing, and the two-factor and password-reset flows.
//
// INITIALIZATION FLOW:
// 1. Command structure setup (batch, mfa, password)
// 2. Global and command-specific flags
// 3. Handler assignment linking commands to operations
// 4. Environment merge and validation in PersistentPreRunE
package main

import (
	"os"

	"github.com/concave-dev/attest/cmd/attestctl/commands"
	"github.com/concave-dev/attest/cmd/attestctl/config"
	"github.com/concave-dev/attest/cmd/attestctl/handlers"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd := commands.RootCmd

	rootCmd.Version = config.Version
	rootCmd.PersistentPreRunE = config.ValidateGlobalFlags

	commands.SetupCommands()
	commands.SetupBatchCommands()
	commands.SetupAuthCommands()

	commands.SetupGlobalFlags(rootCmd, &config.Global.APIURL, &config.Global.LogLevel,
		&config.Global.Timeout, &config.Global.Verbose, &config.Global.Output,
		config.DefaultAPIURL, config.DefaultLogLevel, config.DefaultTimeout)

	submitCmd, lsCmd, recipientsCmd := commands.GetBatchCommands()
	setupBatchFlags(submitCmd, lsCmd, recipientsCmd)

	mfaSetupCmd, mfaVerifyCmd := commands.GetMFACommands()
	passwordRequestCmd, passwordResetCmd := commands.GetPasswordCommands()
	setupAuthFlags(mfaSetupCmd, mfaVerifyCmd, passwordRequestCmd, passwordResetCmd)

	setupCommandHandlers()
}

// setupCommandHandlers assigns RunE functions to commands
func setupCommandHandlers() {
	submitCmd, lsCmd, recipientsCmd := commands.GetBatchCommands()
	submitCmd.RunE = handlers.HandleBatchSubmit
	lsCmd.RunE = handlers.HandleBatchList
	recipientsCmd.RunE = handlers.HandleBatchRecipients

	mfaSetupCmd, mfaVerifyCmd := commands.GetMFACommands()
	mfaSetupCmd.RunE = handlers.HandleMFASetup
	mfaVerifyCmd.RunE = handlers.HandleMFAVerify

	passwordRequestCmd, passwordResetCmd := commands.GetPasswordCommands()
	passwordRequestCmd.RunE = handlers.HandlePasswordRequest
	passwordResetCmd.RunE = handlers.HandlePasswordReset
}

// setupBatchFlags configures flags for batch commands
func setupBatchFlags(submitCmd, lsCmd, recipientsCmd *cobra.Command) {
	submitCmd.Flags().StringVarP(&config.Batch.File, "file", "f", "", "Batch form YAML file (- for stdin)")
	submitCmd.Flags().StringVar(&config.Batch.Edit, "edit", "", "Update this batch (id, id prefix or name) instead of creating one")
	submitCmd.MarkFlagRequired("file")

	lsCmd.Flags().BoolVarP(&config.Batch.Watch, "watch", "w", false, "Watch for live updates")

	recipientsCmd.Flags().BoolVarP(&config.Batch.Watch, "watch", "w", false, "Watch for live updates, alternating tabs")
	recipientsCmd.Flags().BoolVar(&config.Batch.Documents, "documents", false, "Open the documents tab")
}

// setupAuthFlags configures flags for mfa and password commands
func setupAuthFlags(mfaSetupCmd, mfaVerifyCmd, passwordRequestCmd, passwordResetCmd *cobra.Command) {
	mfaSetupCmd.Flags().StringVar(&config.MFA.Email, "email", "", "Account email address")
	mfaSetupCmd.MarkFlagRequired("email")

	mfaVerifyCmd.Flags().StringVar(&config.MFA.Email, "email", "", "Account email address")
	mfaVerifyCmd.Flags().StringVar(&config.MFA.Code, "code", "", "6-digit code from the authenticator app")
	mfaVerifyCmd.MarkFlagRequired("email")
	mfaVerifyCmd.MarkFlagRequired("code")

	passwordRequestCmd.Flags().StringVar(&config.Password.Email, "email", "", "Account email address")
	passwordRequestCmd.MarkFlagRequired("email")

	passwordResetCmd.Flags().StringVar(&config.Password.Email, "email", "", "Account email address")
	passwordResetCmd.Flags().StringVar(&config.Password.Code, "code", "", "Reset code from the email")
	passwordResetCmd.Flags().StringVar(&config.Password.Password, "password", "", "New password (at least 8 characters)")
	passwordResetCmd.Flags().StringVar(&config.Password.Confirm, "confirm", "", "New password again")
	for _, name := range []string{"email", "code", "password", "confirm"} {
		passwordResetCmd.MarkFlagRequired(name)
	}
}

// main is the main entry point
func main() {
	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
