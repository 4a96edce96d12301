// Package services builds the outbound clients and the batch submitter from
// resolved settings. attestd and attestctl both use it, so the two surfaces
// reach the backend, directory and mail services in the same way.
//
// Directory and mail are optional. Without credentials the corresponding
// client is nil and the submitter rejects forms that need it before any
// network call.
package services

import (
	"fmt"
	"time"

	"github.com/concave-dev/attest/internal/authflow"
	"github.com/concave-dev/attest/internal/backend"
	"github.com/concave-dev/attest/internal/batch"
	"github.com/concave-dev/attest/internal/config"
	"github.com/concave-dev/attest/internal/directory"
	"github.com/concave-dev/attest/internal/httpclient"
	"github.com/concave-dev/attest/internal/logging"
	"github.com/concave-dev/attest/internal/mailer"
	"github.com/concave-dev/attest/internal/notify"
	"github.com/concave-dev/attest/internal/toast"
	"github.com/concave-dev/attest/internal/validate"
)

// Settings are the resolved values clients are built from. Flags have
// already been merged over the environment by the caller.
type Settings struct {
	APIURL      string
	Timeout     time.Duration
	SettleDelay time.Duration
	UserAgent   string

	// Env supplies directory and mail credentials and the app link used in
	// notification emails.
	Env *config.Environment

	// Sink receives submission toasts. Defaults to toast.Discard.
	Sink toast.Sink
}

// Services holds every client a surface needs.
type Services struct {
	Backend   *backend.Client
	Auth      *authflow.Client
	Directory *directory.Client // nil when directory credentials are missing
	Mailer    *mailer.Client    // nil when mail is not configured
	Submitter *batch.Submitter
}

// Build validates s and constructs the clients.
func Build(s Settings) (*Services, error) {
	if err := validate.ValidateBaseURL(s.APIURL, "API URL"); err != nil {
		return nil, err
	}
	if err := validate.ValidatePositiveTimeout(s.Timeout, "timeout"); err != nil {
		return nil, err
	}
	if s.SettleDelay < 0 {
		return nil, fmt.Errorf("settle delay must not be negative")
	}
	env := s.Env
	if env == nil {
		env = &config.Environment{GraphURL: config.DefaultGraphURL}
	}

	svc := &Services{
		Backend: backend.New(s.APIURL, s.Timeout, s.UserAgent),
		Auth:    authflow.NewClient(s.APIURL, s.Timeout, s.UserAgent),
	}

	if env.DirectoryConfigured() {
		if err := validate.ValidateBaseURL(env.GraphURL, "graph URL"); err != nil {
			return nil, err
		}
		tokens := directory.NewClientCredentials(
			httpclient.New(httpclient.Options{Timeout: s.Timeout, UserAgent: s.UserAgent, Name: "token"}),
			directory.Credentials{
				TokenURL:     env.ResolvedTokenURL(),
				ClientID:     env.ClientID,
				ClientSecret: env.ClientSecret,
				Scope:        config.DefaultTokenScope,
			},
		)
		svc.Directory = directory.New(env.GraphURL, tokens, s.Timeout, s.UserAgent)
		logging.Debug("Directory service configured at %s", env.GraphURL)

		if env.MailConfigured() {
			if err := validate.ValidateEmail(env.MailSender); err != nil {
				return nil, fmt.Errorf("invalid mail sender: %w", err)
			}
			svc.Mailer = mailer.New(env.GraphURL, env.MailSender, tokens, s.Timeout, s.UserAgent)
			logging.Debug("Email notifications will be sent as %s", env.MailSender)
		}
	}

	opts := batch.Options{
		Backend:     svc.Backend,
		Composer:    notify.NewComposer(env.AppURL),
		Sink:        s.Sink,
		SettleDelay: s.SettleDelay,
	}
	// Leave the interfaces nil rather than holding typed nil pointers.
	if svc.Directory != nil {
		opts.Members = svc.Directory
	}
	if svc.Mailer != nil {
		opts.Mailer = svc.Mailer
	}
	svc.Submitter = batch.NewSubmitter(opts)

	return svc, nil
}

// DirectoryEnabled reports whether group selection is available.
func (s *Services) DirectoryEnabled() bool {
	return s.Directory != nil
}

// MailEnabled reports whether email notifications are available.
func (s *Services) MailEnabled() bool {
	return s.Mailer != nil
}
