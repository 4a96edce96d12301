// Package logging provides centralized log level validation for attest.
//
// Both binaries accept --log-level and the ATTEST_LOG_LEVEL environment
// variable; this file is the single place that decides which strings are
// acceptable so the CLI, the gateway and the environment loader agree.
//
// SUPPORTED LOG LEVELS:
//   - DEBUG: Outbound request lines, step-by-step submission progress
//   - INFO:  Submission milestones and gateway access logs
//   - WARN:  Degraded steps (group fetch, recipient verification)
//   - ERROR: Aborted operations and failed requests
//
// Level strings are case-sensitive and must be uppercase.
package logging

import "fmt"

// ValidLogLevels defines the canonical set of supported log levels.
var ValidLogLevels = map[string]bool{
	"DEBUG": true,
	"INFO":  true,
	"WARN":  true,
	"ERROR": true,
}

// IsValidLogLevel checks if the provided log level string is supported.
func IsValidLogLevel(level string) bool {
	return ValidLogLevels[level]
}

// ValidateLogLevel validates a log level string and returns an error if invalid.
// Used by flag validation in both binaries and by the environment loader.
func ValidateLogLevel(level string) error {
	if !IsValidLogLevel(level) {
		return fmt.Errorf("invalid log level: %s (valid: DEBUG, INFO, WARN, ERROR)", level)
	}
	return nil
}
