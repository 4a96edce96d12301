package authflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/concave-dev/attest/internal/logging"
	"github.com/concave-dev/attest/internal/validate"
)

// Step is the current screen of a flow.
type Step string

const (
	StepSetup   Step = "setup"
	StepVerify  Step = "verify"
	StepRequest Step = "request"
	StepReset   Step = "reset"
	StepDone    Step = "done"
)

// StepError is returned when an action is invoked on the wrong step.
type StepError struct {
	Action string
	Step   Step
}

func (e *StepError) Error() string {
	return fmt.Sprintf("cannot %s while on step %q", e.Action, e.Step)
}

// InputError is a local validation failure; nothing was sent.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

func invalid(err error) error {
	return &InputError{Message: err.Error()}
}

// IsInputError reports whether err is an *InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

// MFA is the subset of Client used by Enrollment.
type MFA interface {
	SetupMFA(ctx context.Context, email string) (*SetupResult, error)
	VerifyMFA(ctx context.Context, email, code string) error
}

// Enrollment walks a user through setup → verify → done.
type Enrollment struct {
	api   MFA
	step  Step
	email string
	setup *SetupResult
}

// NewEnrollment starts a new enrollment on the setup step.
func NewEnrollment(api MFA) *Enrollment {
	return &Enrollment{api: api, step: StepSetup}
}

// ResumeEnrollment returns an enrollment already on the verify step for
// email. Stateless callers (the gateway, attestctl) use it between requests.
func ResumeEnrollment(api MFA, email string) *Enrollment {
	return &Enrollment{api: api, step: StepVerify, email: strings.TrimSpace(email)}
}

// Step returns the current step.
func (e *Enrollment) Step() Step { return e.step }

// Email returns the address being enrolled.
func (e *Enrollment) Email() string { return e.email }

// Setup returns the secret from the setup step, or nil.
func (e *Enrollment) Setup() *SetupResult { return e.setup }

// Start requests a new authenticator secret for email and moves to verify.
func (e *Enrollment) Start(ctx context.Context, email string) (*SetupResult, error) {
	if e.step != StepSetup {
		return nil, &StepError{Action: "start setup", Step: e.step}
	}
	email = strings.TrimSpace(email)
	if err := validate.ValidateEmail(email); err != nil {
		return nil, invalid(err)
	}

	result, err := e.api.SetupMFA(ctx, email)
	if err != nil {
		logging.Warn("MFA setup failed for %s: %v", email, err)
		return nil, err
	}

	e.email = email
	e.setup = result
	e.step = StepVerify
	logging.Info("MFA setup started for %s", email)
	return result, nil
}

// Verify confirms the 6-digit code and moves to done.
func (e *Enrollment) Verify(ctx context.Context, code string) error {
	if e.step != StepVerify {
		return &StepError{Action: "verify code", Step: e.step}
	}
	code = strings.TrimSpace(code)
	if err := validate.ValidateEmail(e.email); err != nil {
		return invalid(err)
	}
	if err := validate.ValidateOTPCode(code); err != nil {
		return invalid(err)
	}

	if err := e.api.VerifyMFA(ctx, e.email, code); err != nil {
		logging.Warn("MFA verification failed for %s: %v", e.email, err)
		return err
	}

	e.step = StepDone
	logging.Success("MFA enabled for %s", e.email)
	return nil
}

// Passwords is the subset of Client used by PasswordReset.
type Passwords interface {
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, email, code, password string) error
}

// PasswordReset walks a user through request → reset → done.
type PasswordReset struct {
	api   Passwords
	step  Step
	email string
}

// NewPasswordReset starts a new reset on the request step.
func NewPasswordReset(api Passwords) *PasswordReset {
	return &PasswordReset{api: api, step: StepRequest}
}

// ResumePasswordReset returns a reset already on the reset step for email.
func ResumePasswordReset(api Passwords, email string) *PasswordReset {
	return &PasswordReset{api: api, step: StepReset, email: strings.TrimSpace(email)}
}

// Step returns the current step.
func (p *PasswordReset) Step() Step { return p.step }

// Email returns the address being reset.
func (p *PasswordReset) Email() string { return p.email }

// Request asks for a reset code to be emailed and moves to reset.
func (p *PasswordReset) Request(ctx context.Context, email string) (string, error) {
	if p.step != StepRequest {
		return "", &StepError{Action: "request a code", Step: p.step}
	}
	email = strings.TrimSpace(email)
	if err := validate.ValidateEmail(email); err != nil {
		return "", invalid(err)
	}

	msg, err := p.api.RequestPasswordReset(ctx, email)
	if err != nil {
		logging.Warn("Password reset request failed for %s: %v", email, err)
		return "", err
	}

	p.email = email
	p.step = StepReset
	if msg == "" {
		msg = "If an account exists for that address, a reset code has been sent"
	}
	return msg, nil
}

// Reset sets a new password. The password and its confirmation must match and
// meet the minimum length before anything is sent.
func (p *PasswordReset) Reset(ctx context.Context, code, password, confirm string) error {
	if p.step != StepReset {
		return &StepError{Action: "reset password", Step: p.step}
	}
	code = strings.TrimSpace(code)
	if err := validate.ValidateEmail(p.email); err != nil {
		return invalid(err)
	}
	if code == "" {
		return &InputError{Message: "reset code is required"}
	}
	if err := validate.ValidatePassword(password, confirm); err != nil {
		return invalid(err)
	}

	if err := p.api.ResetPassword(ctx, p.email, code, password); err != nil {
		logging.Warn("Password reset failed for %s: %v", p.email, err)
		return err
	}

	p.step = StepDone
	logging.Success("Password reset for %s", p.email)
	return nil
}
