package config

import (
	"fmt"
	"os"
	"strings"

	configDefaults "github.com/concave-dev/attest/internal/config"
	"github.com/concave-dev/attest/internal/logging"
	"github.com/concave-dev/attest/internal/validate"
)

// InitializeConfig loads the environment and fills every field the user did
// not set with a flag.
func InitializeConfig() error {
	env, err := configDefaults.LoadEnvironment()
	if err != nil {
		return err
	}
	return applyEnvironment(env)
}

// applyEnvironment merges env under the explicitly set flags.
func applyEnvironment(env *configDefaults.Environment) error {
	Global.Env = env

	if !Global.apiExplicitlySet {
		Global.APIURL = env.APIURL
	}
	if !Global.logLevelExplicitlySet && env.LogLevel != "" {
		Global.LogLevel = env.LogLevel
	}
	if !Global.timeoutExplicitlySet {
		timeout, err := env.TimeoutDuration()
		if err != nil {
			return err
		}
		Global.Timeout = timeout
	}

	delay, err := env.SettleDelayDuration()
	if err != nil {
		return err
	}
	Global.SettleDelay = delay

	// DEBUG environment variable wins over everything
	if os.Getenv("DEBUG") == "true" {
		Global.LogLevel = "DEBUG"
		logging.Info("DEBUG environment variable detected, setting log level to DEBUG")
	}
	Global.LogLevel = strings.ToUpper(Global.LogLevel)
	return nil
}

// urlSettings groups the values checked with struct tags.
type urlSettings struct {
	APIURL     string `json:"api" validate:"required,url"`
	GraphURL   string `json:"graphUrl" validate:"omitempty,url"`
	AppURL     string `json:"appUrl" validate:"omitempty,url"`
	MailSender string `json:"mailSender" validate:"omitempty,email"`
}

// ValidateConfig validates and normalizes the gateway configuration before
// any client is built.
//
// Directory credentials must be complete when any of them is set, so a typo
// does not silently disable group selection.
func ValidateConfig() error {
	netAddr, err := validate.ParseBindAddress(Global.ListenAddr)
	if err != nil {
		logging.Error("Invalid listen address '%s': %v", Global.ListenAddr, err)
		return fmt.Errorf("invalid listen address: %w", err)
	}
	if err := validate.ValidateField(netAddr.Port, "required,min=1,max=65535"); err != nil {
		return fmt.Errorf("gateway requires a specific port (not 0): %w", err)
	}
	Global.BindAddr = netAddr.Host
	Global.BindPort = netAddr.Port

	Global.APIURL = strings.TrimRight(strings.TrimSpace(Global.APIURL), "/")
	if err := validate.ValidateBaseURL(Global.APIURL, "API URL"); err != nil {
		return err
	}

	if err := logging.ValidateLogLevel(Global.LogLevel); err != nil {
		return err
	}
	if err := validate.ValidatePositiveTimeout(Global.Timeout, "timeout"); err != nil {
		return err
	}
	if Global.SettleDelay < 0 {
		return fmt.Errorf("settle delay must not be negative")
	}

	env := Global.Env
	if env == nil {
		return nil
	}
	if err := validate.Struct(urlSettings{
		APIURL:     Global.APIURL,
		GraphURL:   env.GraphURL,
		AppURL:     env.AppURL,
		MailSender: env.MailSender,
	}); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	anySet := env.TenantID != "" || env.TokenURL != "" || env.ClientID != "" || env.ClientSecret != ""
	if anySet && !env.DirectoryConfigured() {
		return fmt.Errorf("incomplete directory credentials: ATTEST_CLIENT_ID, ATTEST_CLIENT_SECRET and ATTEST_TENANT_ID (or ATTEST_TOKEN_URL) are all required")
	}
	if env.MailSender != "" && !env.DirectoryConfigured() {
		logging.Warn("ATTEST_MAIL_SENDER is set but directory credentials are missing; email notifications are disabled")
	}

	return nil
}
