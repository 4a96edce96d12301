// Package config provides configuration management for the attestd gateway.
//
// Settings come from three places, in increasing precedence: built-in
// defaults, ATTEST_* environment variables (optionally loaded from .env), and
// command line flags. The configuration tracks which flags the user set
// explicitly so environment values only fill in what was left unset.
//
// CONFIGURATION SOURCES:
//   - --listen: gateway bind address, flag only
//   - --api / ATTEST_API_URL: REST backend base URL
//   - --log-level / ATTEST_LOG_LEVEL (DEBUG=true forces DEBUG)
//   - --log-file: redirect logs to a file, flag only
//   - --timeout / ATTEST_TIMEOUT: per-request timeout for outbound calls
//   - ATTEST_SETTLE_DELAY and the directory/mail credentials: env only
package config

import (
	"time"

	configDefaults "github.com/concave-dev/attest/internal/config"
)

// ConfigField represents a configuration field that can be explicitly set
type ConfigField int

const (
	// Configuration field identifiers
	ListenField ConfigField = iota
	APIField
	LogLevelField
	LogFileField
	TimeoutField
)

const (
	DefaultListen   = configDefaults.DefaultBindAddr + ":8090" // Default gateway listen address
	DefaultLogLevel = configDefaults.DefaultLogLevel           // Default log level
)

// Config holds all gateway configuration values
type Config struct {
	ListenAddr  string        // Listen address from --listen (host:port)
	BindAddr    string        // Host part of ListenAddr after validation
	BindPort    int           // Port part of ListenAddr after validation
	APIURL      string        // REST backend base URL
	LogLevel    string        // Log level: DEBUG, INFO, WARN, ERROR
	LogFile     string        // Optional log file path
	Timeout     time.Duration // Timeout for each outbound request
	SettleDelay time.Duration // Wait before confirming a created batch

	// Env holds the loaded ATTEST_* environment, including directory and
	// mail credentials that have no flags.
	Env *configDefaults.Environment

	// Flags to track if values were explicitly set by user
	listenExplicitlySet   bool
	apiExplicitlySet      bool
	logLevelExplicitlySet bool
	logFileExplicitlySet  bool
	timeoutExplicitlySet  bool
}

// Global configuration instance
var Global Config

// SetExplicitlySet marks a configuration field as explicitly set by the user.
func (c *Config) SetExplicitlySet(field ConfigField, value bool) {
	switch field {
	case ListenField:
		c.listenExplicitlySet = value
	case APIField:
		c.apiExplicitlySet = value
	case LogLevelField:
		c.logLevelExplicitlySet = value
	case LogFileField:
		c.logFileExplicitlySet = value
	case TimeoutField:
		c.timeoutExplicitlySet = value
	}
}

// IsExplicitlySet returns whether a configuration field was explicitly set by the user.
func (c *Config) IsExplicitlySet(field ConfigField) bool {
	switch field {
	case ListenField:
		return c.listenExplicitlySet
	case APIField:
		return c.apiExplicitlySet
	case LogLevelField:
		return c.logLevelExplicitlySet
	case LogFileField:
		return c.logFileExplicitlySet
	case TimeoutField:
		return c.timeoutExplicitlySet
	}
	return false
}
