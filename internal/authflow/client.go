// Package authflow implements the two account flows attest offers outside of
// batch management: enrolling an authenticator app for multi-factor sign-in,
// and resetting a forgotten password with an emailed code.
//
// Both flows are small state machines over opaque auth endpoints. Inputs are
// validated locally before any call; a failed call leaves the flow on the
// same step so the user can correct the input and try again. Nothing is
// retried automatically.
package authflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/concave-dev/attest/internal/apierror"
	"github.com/concave-dev/attest/internal/httpclient"
	"github.com/go-resty/resty/v2"
)

// SetupResult is what the MFA setup endpoint returns: the shared secret in
// raw, otpauth:// and QR-code (data URL) forms.
type SetupResult struct {
	Secret     string `json:"secret"`
	OTPAuthURL string `json:"otpauthUrl"`
	QRCode     string `json:"qrCode"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Client calls the auth endpoints of the backend.
type Client struct {
	client  *resty.Client
	baseURL string
}

// NewClient creates an auth client for the backend at baseURL.
func NewClient(baseURL string, timeout time.Duration, userAgent string) *Client {
	return NewClientWithResty(baseURL, httpclient.New(httpclient.Options{
		BaseURL:   baseURL,
		Timeout:   timeout,
		UserAgent: userAgent,
		Name:      "auth",
	}))
}

// NewClientWithResty wraps an existing resty client whose base URL already
// points at the backend.
func NewClientWithResty(baseURL string, client *resty.Client) *Client {
	return &Client{client: client, baseURL: baseURL}
}

// post sends body to path and decodes a JSON success response into result
// when result is non-nil.
func (c *Client) post(ctx context.Context, path string, body any, result any, fallback string) error {
	req := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body)
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Post(path)
	if err != nil {
		return apierror.Transport(err, fmt.Sprintf("failed to connect to backend at %s", c.baseURL))
	}
	return apierror.FromResponse(resp, fallback)
}

// SetupMFA starts authenticator enrollment for email.
func (c *Client) SetupMFA(ctx context.Context, email string) (*SetupResult, error) {
	var result SetupResult
	err := c.post(ctx, "/api/auth/mfa/setup",
		map[string]string{"email": email}, &result, "Failed to start MFA setup")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(result.Secret) == "" && strings.TrimSpace(result.OTPAuthURL) == "" {
		return nil, fmt.Errorf("MFA setup response did not include a secret")
	}
	return &result, nil
}

// VerifyMFA confirms enrollment with a code from the authenticator app.
func (c *Client) VerifyMFA(ctx context.Context, email, code string) error {
	return c.post(ctx, "/api/auth/mfa/verify",
		map[string]string{"email": email, "code": code}, nil, "Invalid verification code")
}

// RequestPasswordReset asks the backend to email a reset code. The returned
// message, if any, is the backend's confirmation text.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	var result messageResponse
	err := c.post(ctx, "/api/auth/password/request",
		map[string]string{"email": email}, &result, "Failed to request password reset")
	return result.Message, err
}

// ResetPassword sets a new password using the emailed code.
func (c *Client) ResetPassword(ctx context.Context, email, code, password string) error {
	return c.post(ctx, "/api/auth/password/reset",
		map[string]string{"email": email, "code": code, "password": password}, nil, "Failed to reset password")
}
