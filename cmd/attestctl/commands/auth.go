package commands

import (
	"github.com/spf13/cobra"
)

// MFA command (parent command for two-factor enrollment)
var mfaCmd = &cobra.Command{
	Use:   "mfa",
	Short: "Enroll an account in two-factor authentication",
	Long: `Two-factor enrollment runs in two steps: setup returns a shared secret
to add to an authenticator app, and verify confirms a code from that app.`,
}

var mfaSetupCmd = &cobra.Command{
	Use:     "setup --email=EMAIL",
	Short:   "Request a two-factor secret for an account",
	Example: `  attestctl mfa setup --email=amy@example.com`,
	Args:    cobra.NoArgs,
}

var mfaVerifyCmd = &cobra.Command{
	Use:     "verify --email=EMAIL --code=CODE",
	Short:   "Confirm two-factor enrollment with a 6-digit code",
	Example: `  attestctl mfa verify --email=amy@example.com --code=123456`,
	Args:    cobra.NoArgs,
}

// Password command (parent command for password reset)
var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Reset an account password",
	Long: `Password reset runs in two steps: request emails a reset code to the
account, and reset sets a new password using that code.`,
}

var passwordRequestCmd = &cobra.Command{
	Use:     "request --email=EMAIL",
	Short:   "Email a password reset code",
	Example: `  attestctl password request --email=amy@example.com`,
	Args:    cobra.NoArgs,
}

var passwordResetCmd = &cobra.Command{
	Use:   "reset --email=EMAIL --code=CODE --password=NEW --confirm=NEW",
	Short: "Set a new password with a reset code",
	Long: `Set a new password with the code from the reset email.

The password must be at least 8 characters and match --confirm; both are
checked before anything is sent.`,
	Example: `  attestctl password reset --email=amy@example.com --code=123456 \
    --password='correct horse' --confirm='correct horse'`,
	Args: cobra.NoArgs,
}

// SetupAuthCommands wires the mfa and password subcommands
func SetupAuthCommands() {
	mfaCmd.AddCommand(mfaSetupCmd)
	mfaCmd.AddCommand(mfaVerifyCmd)
	passwordCmd.AddCommand(passwordRequestCmd)
	passwordCmd.AddCommand(passwordResetCmd)
}

// GetMFACommands returns the mfa subcommands for flag and handler setup
func GetMFACommands() (*cobra.Command, *cobra.Command) {
	return mfaSetupCmd, mfaVerifyCmd
}

// GetPasswordCommands returns the password subcommands for flag and handler setup
func GetPasswordCommands() (*cobra.Command, *cobra.Command) {
	return passwordRequestCmd, passwordResetCmd
}
