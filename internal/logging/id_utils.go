// Package logging provides ID formatting helpers for log lines.
//
// Batch ids returned by the backend and request ids generated per submission
// can be long. At DEBUG level the full id is printed so a log line can be
// matched against backend logs; at every other level the id is shortened to
// keep lines readable.
package logging

import (
	"github.com/charmbracelet/log"
	"github.com/concave-dev/attest/internal/utils"
)

// FormatID formats an ID for logging based on the current log level context.
func FormatID(id string) string {
	mu.RLock()
	debug := stderrLogger.GetLevel() <= log.DebugLevel
	mu.RUnlock()

	if debug {
		return id
	}
	return utils.TruncateIDSafe(id)
}

// FormatBatchID formats a server-assigned batch id for logging.
//
// Usage: logging.Info("Created batch %s", logging.FormatBatchID(batchID))
func FormatBatchID(batchID string) string {
	return FormatID(batchID)
}

// FormatRequestID formats a per-submission request id for logging.
func FormatRequestID(requestID string) string {
	return FormatID(requestID)
}
