package apierror

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
)

func TestExtractMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"error string", `{"error":"Invalid code"}`, "Invalid code"},
		{"message string", `{"message":"Batch not found"}`, "Batch not found"},
		{"error preferred over message", `{"error":"first","message":"second"}`, "first"},
		{"nested directory error", `{"error":{"code":"Request_ResourceNotFound","message":"Group does not exist"}}`, "Group does not exist"},
		{"nested code only", `{"error":{"code":"Forbidden"}}`, "Forbidden"},
		{"blank error falls through", `{"error":"  ","message":"used"}`, "used"},
		{"no known fields", `{"status":"bad"}`, ""},
		{"plain text", `Internal Server Error`, ""},
		{"empty", ``, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractMessage([]byte(tt.body)); got != tt.want {
				t.Errorf("ExtractMessage(%s) = %q, want %q", tt.body, got, tt.want)
			}
		})
	}
}

func TestFromResponse(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantErr    bool
		wantMsg    string
		wantStatus int
	}{
		{"success", http.StatusOK, `{"id":"b-1"}`, false, "", 0},
		{"created", http.StatusCreated, ``, false, "", 0},
		{"json error", http.StatusBadRequest, `{"error":"Name is required"}`, true, "Name is required", 400},
		{"fallback on html", http.StatusInternalServerError, `<html>oops</html>`, true, "Failed to create batch", 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			resp, err := resty.New().R().Get(server.URL)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}

			got := FromResponse(resp, "Failed to create batch")
			if (got != nil) != tt.wantErr {
				t.Fatalf("FromResponse() error = %v, wantErr %v", got, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}

			if Message(got) != tt.wantMsg {
				t.Errorf("Message() = %q, want %q", Message(got), tt.wantMsg)
			}
			if StatusCode(got) != tt.wantStatus {
				t.Errorf("StatusCode() = %d, want %d", StatusCode(got), tt.wantStatus)
			}
		})
	}
}

func TestTransport(t *testing.T) {
	if Transport(nil, "ignored") != nil {
		t.Error("Transport(nil) should return nil")
	}

	cause := errors.New("connection refused")
	err := Transport(cause, "Failed to reach backend")
	if !errors.Is(err, cause) {
		t.Error("Transport() should wrap its cause")
	}
	if err.Error() != "Failed to reach backend: connection refused" {
		t.Errorf("Error() = %q", err.Error())
	}
	if Message(err) != "Failed to reach backend" {
		t.Errorf("Message() = %q", Message(err))
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&Error{StatusCode: 400, Message: "bad"}, 400},
		{&Error{StatusCode: 404, Message: "missing"}, 404},
		{&Error{StatusCode: 503, Message: "down"}, 502},
		{&Error{Message: "no response"}, 502},
		{errors.New("plain"), 502},
	}

	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestErrorWithoutMessage(t *testing.T) {
	err := &Error{StatusCode: 418}
	if err.Error() != "request failed with status 418" {
		t.Errorf("Error() = %q", err.Error())
	}
	if Message(err) != "request failed with status 418" {
		t.Errorf("Message() = %q", Message(err))
	}
}
