// Package utils provides helpers shared by attestctl handlers.
package utils

import (
	"os"

	"github.com/concave-dev/attest/cmd/attestctl/config"
	"github.com/concave-dev/attest/internal/logging"
)

// SetupLogging configures logging for a command run. DEBUG=true shows every
// log line; otherwise the configured level applies and routine output is
// suppressed so table and JSON output stay clean.
func SetupLogging() {
	if os.Getenv("DEBUG") == "true" {
		logging.RestoreOutput()
		logging.SetLevel("DEBUG")
		return
	}
	logging.SetLevel(config.Global.LogLevel)
	if config.Global.Verbose {
		logging.RestoreOutput()
		return
	}
	logging.SuppressOutput()
}
