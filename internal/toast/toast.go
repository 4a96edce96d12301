// Package toast defines the short user-facing notifications emitted by the
// batch, MFA and password-reset flows, and the sinks that deliver them.
//
// A browser shows toasts as transient popups; attestctl prints them and the
// attestd gateway returns them in the JSON response. Flows depend only on the
// Sink interface so each surface picks its own delivery.
package toast

import (
	"sync"
	"time"

	"github.com/concave-dev/attest/internal/logging"
)

// Level is the severity of a toast.
type Level string

const (
	Info    Level = "info"
	Success Level = "success"
	Warning Level = "warning"
	Error   Level = "error"
)

// Toast is one notification.
type Toast struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// New returns a toast stamped with the current time.
func New(level Level, message string) Toast {
	return Toast{Level: level, Message: message, Time: time.Now()}
}

// Sink receives toasts.
type Sink interface {
	Notify(t Toast)
}

// Func adapts a function to Sink.
type Func func(Toast)

// Notify implements Sink.
func (f Func) Notify(t Toast) {
	f(t)
}

// Discard drops every toast.
var Discard Sink = Func(func(Toast) {})

// Recorder stores toasts in memory. The gateway uses one per request and
// tests use it to assert on emitted toasts. Safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

// Notify implements Sink.
func (r *Recorder) Notify(t Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, t)
}

// Toasts returns a copy of the recorded toasts in emission order.
func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Toast, len(r.toasts))
	copy(out, r.toasts)
	return out
}

// Messages returns the recorded messages in emission order.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.toasts))
	for i, t := range r.toasts {
		out[i] = t.Message
	}
	return out
}

// Count returns how many toasts of level were recorded.
func (r *Recorder) Count(level Level) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, t := range r.toasts {
		if t.Level == level {
			n++
		}
	}
	return n
}

// Log writes toasts to the structured logger at the matching level.
type Log struct{}

// Notify implements Sink.
func (Log) Notify(t Toast) {
	switch t.Level {
	case Success:
		logging.Success("%s", t.Message)
	case Warning:
		logging.Warn("%s", t.Message)
	case Error:
		logging.Error("%s", t.Message)
	default:
		logging.Info("%s", t.Message)
	}
}

// Multi fans a toast out to several sinks in order.
func Multi(sinks ...Sink) Sink {
	return Func(func(t Toast) {
		for _, s := range sinks {
			s.Notify(t)
		}
	})
}
