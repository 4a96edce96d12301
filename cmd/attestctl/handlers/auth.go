package handlers

import (
	"github.com/concave-dev/attest/cmd/attestctl/client"
	"github.com/concave-dev/attest/cmd/attestctl/config"
	"github.com/concave-dev/attest/cmd/attestctl/display"
	"github.com/concave-dev/attest/cmd/attestctl/utils"
	"github.com/concave-dev/attest/internal/authflow"
	"github.com/concave-dev/attest/internal/toast"
	"github.com/spf13/cobra"
)

// Messages shown when a flow finishes.
const (
	msgMFAEnabled    = "Two-factor authentication is enabled"
	msgPasswordReset = "Your password has been reset"
)

// HandleMFASetup handles mfa setup: it requests a new shared secret for the
// account and prints it with the follow-up verify command.
func HandleMFASetup(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	svc, err := client.CreateServices(toast.Discard)
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()

	flow := authflow.NewEnrollment(svc.Auth)
	setup, err := flow.Start(ctx, config.MFA.Email)
	if err != nil {
		if authflow.IsInputError(err) {
			return err
		}
		return failed("start two-factor setup", err)
	}

	display.DisplayMFASetup(display.FlowResult{
		Email: flow.Email(),
		Step:  flow.Step(),
		Setup: setup,
	})
	return nil
}

// HandleMFAVerify handles mfa verify
func HandleMFAVerify(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	svc, err := client.CreateServices(toast.Discard)
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()

	flow := authflow.ResumeEnrollment(svc.Auth, config.MFA.Email)
	if err := flow.Verify(ctx, config.MFA.Code); err != nil {
		if authflow.IsInputError(err) {
			return err
		}
		return failed("verify code", err)
	}

	display.DisplayFlowResult(display.FlowResult{
		Email:   flow.Email(),
		Step:    flow.Step(),
		Message: msgMFAEnabled,
	})
	return nil
}

// HandlePasswordRequest handles password request
func HandlePasswordRequest(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	svc, err := client.CreateServices(toast.Discard)
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()

	flow := authflow.NewPasswordReset(svc.Auth)
	msg, err := flow.Request(ctx, config.Password.Email)
	if err != nil {
		if authflow.IsInputError(err) {
			return err
		}
		return failed("request reset code", err)
	}

	display.DisplayFlowResult(display.FlowResult{
		Email:   flow.Email(),
		Step:    flow.Step(),
		Message: msg,
	})
	return nil
}

// HandlePasswordReset handles password reset. The password and its
// confirmation are checked locally before the code is sent.
func HandlePasswordReset(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	svc, err := client.CreateServices(toast.Discard)
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()

	flow := authflow.ResumePasswordReset(svc.Auth, config.Password.Email)
	if err := flow.Reset(ctx, config.Password.Code, config.Password.Password, config.Password.Confirm); err != nil {
		if authflow.IsInputError(err) {
			return err
		}
		return failed("reset password", err)
	}

	display.DisplayFlowResult(display.FlowResult{
		Email:   flow.Email(),
		Step:    flow.Step(),
		Message: msgPasswordReset,
	})
	return nil
}
