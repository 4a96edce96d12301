package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/concave-dev/attest/internal/config"
	"github.com/concave-dev/attest/internal/logging"
	"github.com/concave-dev/attest/internal/validate"
	"github.com/spf13/cobra"
)

// ValidateGlobalFlags runs before every command. It loads the environment,
// fills in any global flag the user did not pass, and validates the result.
func ValidateGlobalFlags(cmd *cobra.Command, args []string) error {
	env, err := config.LoadEnvironment()
	if err != nil {
		logging.Error("Failed to load environment: %v", err)
		return err
	}
	if err := ApplyEnvironment(env, cmd.Flags().Changed); err != nil {
		return err
	}

	if err := ValidateAPIURL(); err != nil {
		return err
	}
	if err := ValidateOutputFormat(); err != nil {
		return err
	}
	if err := logging.ValidateLogLevel(Global.LogLevel); err != nil {
		logging.Error("Invalid log level '%s'", Global.LogLevel)
		return err
	}
	if err := validate.ValidatePositiveTimeout(Global.Timeout, "timeout"); err != nil {
		logging.Error("Invalid timeout %s", Global.Timeout)
		return err
	}

	return nil
}

// ApplyEnvironment stores env and copies its values into Global for every
// flag changed reports as not set on the command line.
func ApplyEnvironment(env *config.Environment, changed func(name string) bool) error {
	Env = env

	if !changed("api") && env.APIURL != "" {
		Global.APIURL = env.APIURL
	}
	if !changed("timeout") && env.Timeout != "" {
		d, err := env.TimeoutDuration()
		if err != nil {
			return err
		}
		Global.Timeout = d
	}
	// ATTEST_LOG_LEVEL has a default for the gateway; the CLI only honours it
	// when it is really set.
	if !changed("log-level") {
		if _, ok := os.LookupEnv("ATTEST_LOG_LEVEL"); ok {
			Global.LogLevel = env.LogLevel
		}
	}
	Global.LogLevel = strings.ToUpper(strings.TrimSpace(Global.LogLevel))

	if env.SettleDelay != "" {
		d, err := env.SettleDelayDuration()
		if err != nil {
			return err
		}
		SettleDelay = d
	}
	return nil
}

// ValidateAPIURL checks that the backend URL is an absolute http(s) URL.
func ValidateAPIURL() error {
	Global.APIURL = strings.TrimRight(strings.TrimSpace(Global.APIURL), "/")
	if err := validate.ValidateBaseURL(Global.APIURL, "API URL"); err != nil {
		logging.Error("Invalid API URL '%s': %v", Global.APIURL, err)
		return fmt.Errorf("invalid API URL - expected format: http://host:port (e.g., %s)", DefaultAPIURL)
	}
	return nil
}

// ValidateOutputFormat validates the output format flag
func ValidateOutputFormat() error {
	validOutputs := map[string]bool{
		"table": true,
		"json":  true,
	}
	if !validOutputs[Global.Output] {
		logging.Error("Invalid output format '%s' - valid formats are: table, json", Global.Output)
		return fmt.Errorf("invalid output format - valid: table, json")
	}
	return nil
}
