// Package client builds attestctl's outbound clients from the global flags
// and the loaded environment.
package client

import (
	"github.com/concave-dev/attest/cmd/attestctl/config"
	"github.com/concave-dev/attest/internal/httpclient"
	"github.com/concave-dev/attest/internal/services"
	"github.com/concave-dev/attest/internal/toast"
)

// Settings resolves services.Settings from the current configuration.
func Settings(sink toast.Sink) services.Settings {
	return services.Settings{
		APIURL:      config.Global.APIURL,
		Timeout:     config.Global.Timeout,
		SettleDelay: config.SettleDelay,
		UserAgent:   httpclient.UserAgent("attestctl", config.Version),
		Env:         config.Env,
		Sink:        sink,
	}
}

// CreateServices builds the backend, auth, directory and mail clients and the
// batch submitter. Toasts from submissions go to sink.
func CreateServices(sink toast.Sink) (*services.Services, error) {
	return services.Build(Settings(sink))
}
