package handlers

import (
	"net/http"

	"github.com/concave-dev/attest/internal/authflow"
	"github.com/gin-gonic/gin"
)

// Represents the state of an account flow after a request
type FlowResponse struct {
	Step    authflow.Step         `json:"step"`
	Message string                `json:"message,omitempty"`
	Setup   *authflow.SetupResult `json:"setup,omitempty"`
}

// Represents an MFA setup or password reset code request
type EmailRequest struct {
	Email string `json:"email"`
}

// Represents an MFA verification request
type VerifyMFARequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// Represents a password reset request
type ResetPasswordRequest struct {
	Email           string `json:"email"`
	Code            string `json:"code"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// The gateway is stateless, so each handler builds a flow already on the
// step the request belongs to. Input validation stays inside the flows.

// HandleMFASetup starts authenticator enrollment and returns the secret.
func HandleMFASetup(api authflow.MFA) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EmailRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, err)
			return
		}

		flow := authflow.NewEnrollment(api)
		setup, err := flow.Start(c.Request.Context(), req.Email)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, FlowResponse{
			Step:    flow.Step(),
			Message: "Scan the QR code with your authenticator app, then enter the 6-digit code",
			Setup:   setup,
		})
	}
}

// HandleMFAVerify confirms the first code from the authenticator app.
func HandleMFAVerify(api authflow.MFA) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyMFARequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, err)
			return
		}

		flow := authflow.ResumeEnrollment(api, req.Email)
		if err := flow.Verify(c.Request.Context(), req.Code); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, FlowResponse{
			Step:    flow.Step(),
			Message: "Two-factor authentication is enabled",
		})
	}
}

// HandlePasswordRequest emails a reset code.
func HandlePasswordRequest(api authflow.Passwords) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EmailRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, err)
			return
		}

		flow := authflow.NewPasswordReset(api)
		msg, err := flow.Request(c.Request.Context(), req.Email)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, FlowResponse{Step: flow.Step(), Message: msg})
	}
}

// HandlePasswordReset sets a new password using the emailed code.
func HandlePasswordReset(api authflow.Passwords) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResetPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, err)
			return
		}

		flow := authflow.ResumePasswordReset(api, req.Email)
		if err := flow.Reset(c.Request.Context(), req.Code, req.Password, req.ConfirmPassword); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, FlowResponse{
			Step:    flow.Step(),
			Message: "Your password has been reset",
		})
	}
}
