// Package config provides default values and environment loading shared by the
// attestctl CLI and the attestd gateway.
package config

import "time"

const (
	// DefaultBindAddr is the default bind address for the attestd gateway
	DefaultBindAddr = "0.0.0.0"

	// DefaultGatewayPort is the default attestd HTTP port
	DefaultGatewayPort = 8090

	// DefaultLogLevel is the default log level for all components
	DefaultLogLevel = "INFO"

	// DefaultAPIURL is the default REST backend base URL
	DefaultAPIURL = "http://localhost:3000"

	// DefaultGraphURL is the default directory and mail service base URL
	DefaultGraphURL = "https://graph.microsoft.com/v1.0"

	// DefaultTokenURLFormat builds the client-credentials token endpoint from a tenant id
	DefaultTokenURLFormat = "https://login.microsoftonline.com/%s/oauth2/v2.0/token"

	// DefaultTokenScope is requested for directory and mail access tokens
	DefaultTokenScope = "https://graph.microsoft.com/.default"

	// DefaultTimeout bounds every outbound HTTP request
	DefaultTimeout = 30 * time.Second

	// DefaultSettleDelay is how long to wait after creating a batch before
	// listing batches to confirm it was stored
	DefaultSettleDelay = time.Second
)
