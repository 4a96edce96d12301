package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/concave-dev/attest/internal/apierror"
	"github.com/concave-dev/attest/internal/authflow"
	"github.com/gin-gonic/gin"
)

func authRouter(api *fakeAuth) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/mfa/setup", HandleMFASetup(api))
	router.POST("/mfa/verify", HandleMFAVerify(api))
	router.POST("/password/request", HandlePasswordRequest(api))
	router.POST("/password/reset", HandlePasswordReset(api))
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandlers_Success(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		body     string
		wantStep authflow.Step
		wantMsg  string
	}{
		{
			name:     "mfa setup",
			path:     "/mfa/setup",
			body:     `{"email": "ada@example.com"}`,
			wantStep: authflow.StepVerify,
		},
		{
			name:     "mfa verify",
			path:     "/mfa/verify",
			body:     `{"email": "ada@example.com", "code": "123456"}`,
			wantStep: authflow.StepDone,
			wantMsg:  "Two-factor authentication is enabled",
		},
		{
			name:     "password request",
			path:     "/password/request",
			body:     `{"email": "ada@example.com"}`,
			wantStep: authflow.StepReset,
			wantMsg:  "Check your inbox",
		},
		{
			name:     "password reset",
			path:     "/password/reset",
			body:     `{"email": "ada@example.com", "code": "654321", "password": "hunter22!", "confirmPassword": "hunter22!"}`,
			wantStep: authflow.StepDone,
			wantMsg:  "Your password has been reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAuth{
				setup:    &authflow.SetupResult{Secret: "JBSWY3DPEHPK3PXP", OTPAuthURL: "otpauth://totp/attest:ada"},
				resetMsg: "Check your inbox",
			}
			w := postJSON(authRouter(api), tt.path, tt.body)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d (%s)", w.Code, http.StatusOK, w.Body.String())
			}
			var response FlowResponse
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				t.Fatalf("Failed to parse response: %v", err)
			}
			if response.Step != tt.wantStep {
				t.Errorf("step = %q, want %q", response.Step, tt.wantStep)
			}
			if tt.wantMsg != "" && response.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", response.Message, tt.wantMsg)
			}
			if api.lastEmail != "ada@example.com" {
				t.Errorf("email sent = %q", api.lastEmail)
			}
		})
	}
}

func TestHandleMFASetup_ReturnsSecret(t *testing.T) {
	api := &fakeAuth{setup: &authflow.SetupResult{Secret: "JBSWY3DPEHPK3PXP", QRCode: "data:image/png;base64,AAAA"}}
	w := postJSON(authRouter(api), "/mfa/setup", `{"email": " ada@example.com "}`)

	var response FlowResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response.Setup == nil || response.Setup.Secret != "JBSWY3DPEHPK3PXP" {
		t.Fatalf("setup = %+v", response.Setup)
	}
	if response.Setup.QRCode == "" {
		t.Error("qrCode missing from response")
	}
}

func TestAuthHandlers_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		apiErr     error
		wantStatus int
		wantError  string
		wantCalls  int
	}{
		{
			name:       "missing email",
			path:       "/mfa/setup",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "email is required",
		},
		{
			name:       "short code",
			path:       "/mfa/verify",
			body:       `{"email": "ada@example.com", "code": "12"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "verification code must be 6 digits",
		},
		{
			name:       "rejected code",
			path:       "/mfa/verify",
			body:       `{"email": "ada@example.com", "code": "123456"}`,
			apiErr:     &apierror.Error{StatusCode: 401, Message: "Invalid verification code"},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid verification code",
			wantCalls:  1,
		},
		{
			name:       "mismatched passwords",
			path:       "/password/reset",
			body:       `{"email": "ada@example.com", "code": "1", "password": "hunter22!", "confirmPassword": "hunter23!"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "passwords do not match",
		},
		{
			name:       "backend down",
			path:       "/password/request",
			body:       `{"email": "ada@example.com"}`,
			apiErr:     &apierror.Error{StatusCode: 503, Message: "Service unavailable"},
			wantStatus: http.StatusBadGateway,
			wantError:  "Service unavailable",
			wantCalls:  1,
		},
		{
			name:       "malformed body",
			path:       "/password/request",
			body:       `not json`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAuth{err: tt.apiErr}
			w := postJSON(authRouter(api), tt.path, tt.body)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.wantStatus, w.Body.String())
			}
			var response ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				t.Fatalf("Failed to parse response: %v", err)
			}
			if response.Error != tt.wantError {
				t.Errorf("error = %q, want %q", response.Error, tt.wantError)
			}
			if api.calls != tt.wantCalls {
				t.Errorf("api calls = %d, want %d", api.calls, tt.wantCalls)
			}
		})
	}
}
