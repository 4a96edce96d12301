// Package httpclient builds the resty clients attest uses for every outbound
// call: the REST backend, the directory service, the mail sender and the auth
// endpoints.
//
// All clients share the same conventions:
//   - No retries. A failed call either aborts the operation or is recorded as a
//     degradation by the caller; re-sending a create is never safe.
//   - A per-operation request id travels in the context and is sent as
//     X-Request-ID so one batch submission can be followed across services.
//   - Request and response lines are logged at DEBUG through internal/logging.
package httpclient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/concave-dev/attest/internal/logging"
	"github.com/concave-dev/attest/internal/utils"
	"github.com/go-resty/resty/v2"
)

// RequestIDHeader carries the per-operation request id.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// WithRequestID returns a context carrying id for outbound requests.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request id carried by ctx, or "".
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// EnsureRequestID returns ctx unchanged if it already carries a request id,
// otherwise a child context with a new one.
func EnsureRequestID(ctx context.Context) (context.Context, string) {
	if id := RequestID(ctx); id != "" {
		return ctx, id
	}
	id := utils.NewRequestID()
	return WithRequestID(ctx, id), id
}

// Options configures a client built by New.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string

	// Name prefixes debug log lines ("backend", "directory", ...).
	Name string
}

// RestyLogger implements resty.Logger and routes resty's own messages through
// structured logging.
type RestyLogger struct{}

// Errorf routes error messages through structured logging.
func (RestyLogger) Errorf(format string, v ...any) {
	logging.Error(format, v...)
}

// Warnf routes warning messages through structured logging.
func (RestyLogger) Warnf(format string, v ...any) {
	logging.Warn(format, v...)
}

// Debugf routes debug messages through structured logging.
func (RestyLogger) Debugf(format string, v ...any) {
	logging.Debug(format, v...)
}

// New creates a resty client with JSON headers, no retries, request-id
// propagation and debug logging hooks.
func New(opts Options) *resty.Client {
	client := resty.New()
	client.SetLogger(RestyLogger{})

	name := opts.Name
	if name == "" {
		name = "http"
	}

	client.
		SetTimeout(opts.Timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
	if opts.BaseURL != "" {
		client.SetBaseURL(strings.TrimRight(opts.BaseURL, "/"))
	}
	if opts.UserAgent != "" {
		client.SetHeader("User-Agent", opts.UserAgent)
	}

	client.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		if id := RequestID(req.Context()); id != "" && req.Header.Get(RequestIDHeader) == "" {
			req.SetHeader(RequestIDHeader, id)
		}
		logging.Debug("%s request: %s %s (request %s)",
			name, req.Method, req.URL, logging.FormatRequestID(req.Header.Get(RequestIDHeader)))
		return nil
	})

	client.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logging.Debug("%s response: %d %s (took %v)",
			name, resp.StatusCode(), resp.Request.URL, resp.Time())
		return nil
	})

	client.OnError(func(req *resty.Request, err error) {
		logging.Debug("%s request failed: %s %s - %v", name, req.Method, req.URL, err)
	})

	return client
}

// UserAgent formats the User-Agent header for a component.
func UserAgent(component, version string) string {
	return fmt.Sprintf("%s/%s", component, version)
}
