// Package apierror turns failed HTTP exchanges with the backend, the directory
// service and the auth endpoints into typed errors with a user-facing message.
//
// Every service attest talks to reports failures as a JSON body with an
// "error" (or "message") field. FromResponse extracts that text so it can be
// shown verbatim in toasts and CLI output, falling back to a per-call generic
// message when the body carries nothing useful.
package apierror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// Error is a failed call to an external service.
type Error struct {
	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int

	// Message is safe to show to users.
	Message string

	// Cause is the transport error, if any.
	Cause error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// FromResponse returns nil for 2xx responses and an *Error otherwise. The
// message is the body's "error" or "message" field, or fallback when neither
// is present.
func FromResponse(resp *resty.Response, fallback string) error {
	if resp == nil {
		return &Error{Message: fallback}
	}
	if resp.IsSuccess() {
		return nil
	}

	msg := ExtractMessage(resp.Body())
	if msg == "" {
		msg = fallback
	}
	return &Error{StatusCode: resp.StatusCode(), Message: msg}
}

// Transport wraps a request that never produced a response (DNS failure,
// refused connection, cancelled context).
func Transport(err error, fallback string) error {
	if err == nil {
		return nil
	}
	return &Error{Message: fallback, Cause: err}
}

// ExtractMessage pulls a readable message out of a JSON error body. It accepts
// {"error": "text"}, {"message": "text"} and the nested directory form
// {"error": {"code": "...", "message": "text"}}. Non-JSON bodies yield "".
func ExtractMessage(body []byte) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return ""
	}

	for _, key := range []string{"error", "message"} {
		raw, ok := fields[key]
		if !ok {
			continue
		}

		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
			continue
		}

		var nested struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw, &nested); err == nil {
			if msg := strings.TrimSpace(nested.Message); msg != "" {
				return msg
			}
			if code := strings.TrimSpace(nested.Code); code != "" {
				return code
			}
		}
	}
	return ""
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// Message returns the user-facing message carried by err, or err.Error().
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "" {
		return apiErr.Message
	}
	return err.Error()
}

// HTTPStatus maps err to a status for gateway responses: upstream 4xx are
// passed through, everything else becomes 502.
func HTTPStatus(err error) int {
	code := StatusCode(err)
	if code >= http.StatusBadRequest && code < http.StatusInternalServerError {
		return code
	}
	return http.StatusBadGateway
}
