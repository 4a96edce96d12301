package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/concave-dev/attest/internal/authflow"
	"github.com/concave-dev/attest/internal/backend"
	"github.com/concave-dev/attest/internal/batch"
)

// upstream is an httptest REST backend serving the batch and auth endpoints.
type upstream struct {
	*httptest.Server

	mu         sync.Mutex
	requestIDs []string
	recipients []map[string]any
}

func newUpstream(t *testing.T) *upstream {
	t.Helper()
	u := &upstream{}
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/batches", func(w http.ResponseWriter, r *http.Request) {
		u.seen(r)
		writeJSON(w, http.StatusCreated, map[string]any{"batchId": 42})
	})
	mux.HandleFunc("GET /api/batches", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"batches": []map[string]any{{"id": "42", "name": "Q3"}}})
	})
	mux.HandleFunc("POST /api/batches/{id}/documents", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{})
	})
	mux.HandleFunc("POST /api/batches/{id}/recipients", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Recipients []map[string]any `json:"recipients"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		u.mu.Lock()
		u.recipients = append(u.recipients, body.Recipients...)
		u.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{})
	})
	mux.HandleFunc("GET /api/batches/{id}/recipients", func(w http.ResponseWriter, r *http.Request) {
		u.mu.Lock()
		defer u.mu.Unlock()
		writeJSON(w, http.StatusOK, u.recipients)
	})
	mux.HandleFunc("POST /api/auth/mfa/setup", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, authflow.SetupResult{Secret: "JBSWY3DPEHPK3PXP", OTPAuthURL: "otpauth://totp/attest"})
	})
	mux.HandleFunc("POST /api/auth/mfa/verify", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "Invalid verification code"})
	})

	u.Server = httptest.NewServer(mux)
	t.Cleanup(u.Close)
	return u
}

func (u *upstream) seen(r *http.Request) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.requestIDs = append(u.requestIDs, r.Header.Get("X-Request-ID"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// testConfig wires real clients against u.
func testConfig(u *upstream) *Config {
	client := backend.New(u.URL, 5*time.Second, "attest-test")
	cfg := DefaultConfig()
	cfg.BindAddr = "127.0.0.1"
	cfg.BindPort = 8090
	cfg.BackendURL = u.URL
	cfg.Submitter = batch.NewSubmitter(batch.Options{Backend: client})
	cfg.Batches = client
	cfg.Auth = authflow.NewClient(u.URL, 5*time.Second, "attest-test")
	return cfg
}
