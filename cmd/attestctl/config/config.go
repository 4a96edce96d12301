// Package config holds attestctl's command-line state: global flags, the
// per-command flag values, and the environment they are merged over.
package config

import (
	"time"

	"github.com/concave-dev/attest/internal/config"
	"github.com/concave-dev/attest/internal/version"
)

const (
	DefaultAPIURL   = config.DefaultAPIURL // Default REST backend base URL
	DefaultLogLevel = "ERROR"              // CLI stays quiet unless asked
	DefaultTimeout  = config.DefaultTimeout
)

// Version is the attestctl version reported by --version
var Version = version.AttestctlVersion

// Global holds flags shared by every command
var Global struct {
	APIURL   string        // Base URL of the REST backend
	LogLevel string        // Log level for CLI operations
	Timeout  time.Duration // Per-request timeout
	Verbose  bool          // Show verbose output
	Output   string        // Output format: table, json
}

// Env is the ATTEST_* environment loaded during flag validation. Directory
// and mail credentials only come from here.
var Env *config.Environment

// SettleDelay is resolved from ATTEST_SETTLE_DELAY during flag validation
var SettleDelay = config.DefaultSettleDelay

// Batch holds flags for batch commands
var Batch struct {
	File      string // Form YAML for submit
	Edit      string // Batch id or name to update instead of creating
	Watch     bool   // Refresh ls/recipients output
	Documents bool   // Open the documents tab of the recipients view
}

// MFA holds flags for mfa commands
var MFA struct {
	Email string
	Code  string
}

// Password holds flags for password commands
var Password struct {
	Email    string
	Code     string
	Password string
	Confirm  string
}
