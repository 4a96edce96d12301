package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

// Environment holds the ATTEST_* settings read from the process environment
// (and an optional .env file). Command-line flags override these values.
//
// Durations are kept as strings and parsed by the accessor methods so a bad
// value surfaces as a named configuration error instead of a generic decode
// failure.
type Environment struct {
	APIURL       string `env:"ATTEST_API_URL,default=http://localhost:3000"`
	AppURL       string `env:"ATTEST_APP_URL"`
	TenantID     string `env:"ATTEST_TENANT_ID"`
	ClientID     string `env:"ATTEST_CLIENT_ID"`
	ClientSecret string `env:"ATTEST_CLIENT_SECRET"`
	TokenURL     string `env:"ATTEST_TOKEN_URL"`
	GraphURL     string `env:"ATTEST_GRAPH_URL,default=https://graph.microsoft.com/v1.0"`
	MailSender   string `env:"ATTEST_MAIL_SENDER"`
	SettleDelay  string `env:"ATTEST_SETTLE_DELAY,default=1s"`
	Timeout      string `env:"ATTEST_TIMEOUT,default=30s"`
	LogLevel     string `env:"ATTEST_LOG_LEVEL,default=INFO"`
}

// LoadEnvironment loads .env files (".env" when none are given) into the
// process environment and unmarshals ATTEST_* variables. Missing files are
// ignored; variables already set in the environment win over file values.
func LoadEnvironment(files ...string) (*Environment, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	var e Environment
	if _, err := env.UnmarshalFromEnviron(&e); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	e.LogLevel = strings.ToUpper(strings.TrimSpace(e.LogLevel))
	return &e, nil
}

// SettleDelayDuration parses ATTEST_SETTLE_DELAY. Zero disables the wait.
func (e *Environment) SettleDelayDuration() (time.Duration, error) {
	d, err := time.ParseDuration(e.SettleDelay)
	if err != nil {
		return 0, fmt.Errorf("invalid ATTEST_SETTLE_DELAY %q: %w", e.SettleDelay, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("ATTEST_SETTLE_DELAY must not be negative")
	}
	return d, nil
}

// TimeoutDuration parses ATTEST_TIMEOUT, which must be positive.
func (e *Environment) TimeoutDuration() (time.Duration, error) {
	d, err := time.ParseDuration(e.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid ATTEST_TIMEOUT %q: %w", e.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("ATTEST_TIMEOUT must be positive")
	}
	return d, nil
}

// ResolvedTokenURL returns ATTEST_TOKEN_URL, or the tenant's default token
// endpoint when only ATTEST_TENANT_ID is set.
func (e *Environment) ResolvedTokenURL() string {
	if e.TokenURL != "" {
		return e.TokenURL
	}
	if e.TenantID == "" {
		return ""
	}
	return fmt.Sprintf(DefaultTokenURLFormat, e.TenantID)
}

// DirectoryConfigured reports whether enough credentials are present to call
// the directory service. Group expansion and email notifications need it.
func (e *Environment) DirectoryConfigured() bool {
	return e.ClientID != "" && e.ClientSecret != "" && e.ResolvedTokenURL() != ""
}

// MailConfigured reports whether email notifications can be sent.
func (e *Environment) MailConfigured() bool {
	return e.DirectoryConfigured() && e.MailSender != ""
}
