package logging

import (
	"bytes"
	"strings"
	"testing"
)

// captureLogOutput is a test helper to capture log output at the given level
func captureLogOutput(t *testing.T, level string, fn func()) string {
	t.Helper()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(level)
	t.Cleanup(func() {
		RestoreOutput()
	})

	fn()

	return strings.TrimSpace(buf.String())
}

// TestLogLevels tests that logging functions work at different levels
func TestLogLevels(t *testing.T) {
	tests := []struct {
		name     string
		logFunc  func()
		expected string
	}{
		{
			name:     "Info level",
			logFunc:  func() { Info("test info message") },
			expected: "test info message",
		},
		{
			name:     "Warn level",
			logFunc:  func() { Warn("test warn message") },
			expected: "test warn message",
		},
		{
			name:     "Error level",
			logFunc:  func() { Error("test error message") },
			expected: "test error message",
		},
		{
			name:     "Success level",
			logFunc:  func() { Success("batch saved") },
			expected: "batch saved",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureLogOutput(t, "DEBUG", tt.logFunc)

			if !strings.Contains(output, tt.expected) {
				t.Errorf("Expected output to contain '%s', got '%s'", tt.expected, output)
			}
		})
	}
}

// TestSetLevel tests that log level filtering works correctly
func TestSetLevel(t *testing.T) {
	tests := []struct {
		name         string
		level        string
		logFunc      func()
		shouldOutput bool
	}{
		{
			name:         "Info logged at INFO level",
			level:        "INFO",
			logFunc:      func() { Info("info message") },
			shouldOutput: true,
		},
		{
			name:         "Debug filtered at INFO level",
			level:        "INFO",
			logFunc:      func() { Debug("debug message") },
			shouldOutput: false,
		},
		{
			name:         "Error logged at WARN level",
			level:        "WARN",
			logFunc:      func() { Error("error message") },
			shouldOutput: true,
		},
		{
			name:         "Success filtered at ERROR level",
			level:        "ERROR",
			logFunc:      func() { Success("done") },
			shouldOutput: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureLogOutput(t, tt.level, tt.logFunc)

			if tt.shouldOutput && output == "" {
				t.Error("Expected output but got none")
			}
			if !tt.shouldOutput && output != "" {
				t.Errorf("Expected no output but got: %s", output)
			}
		})
	}
}

// TestLogFormatting tests formatted logging
func TestLogFormatting(t *testing.T) {
	output := captureLogOutput(t, "DEBUG", func() {
		Info("formatted %s %d", "message", 123)
	})

	expected := "formatted message 123"
	if !strings.Contains(output, expected) {
		t.Errorf("Expected output to contain '%s', got '%s'", expected, output)
	}
}

// TestLevelWriter tests that multi-line writes are split and prefixed
func TestLevelWriter(t *testing.T) {
	output := captureLogOutput(t, "DEBUG", func() {
		w := NewLevelWriter("warn", "gin")
		n, err := w.Write([]byte("first line\n\nsecond line\n"))
		if err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		if n != len("first line\n\nsecond line\n") {
			t.Errorf("Write() n = %d, want full length", n)
		}
	})

	for _, want := range []string{"gin: first line", "gin: second line"} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q, got %q", want, output)
		}
	}
	if strings.Count(output, "gin:") != 2 {
		t.Errorf("Expected exactly two log lines, got %q", output)
	}
}

// TestValidateLogLevel tests log level validation
func TestValidateLogLevel(t *testing.T) {
	for _, level := range []string{"DEBUG", "INFO", "WARN", "ERROR"} {
		if err := ValidateLogLevel(level); err != nil {
			t.Errorf("ValidateLogLevel(%q) unexpected error: %v", level, err)
		}
	}
	for _, level := range []string{"", "debug", "TRACE"} {
		if err := ValidateLogLevel(level); err == nil {
			t.Errorf("ValidateLogLevel(%q) expected error", level)
		}
	}
}

// TestFormatID tests context-aware id truncation
func TestFormatID(t *testing.T) {
	id := "6f1c2a9e-03b4-4d51-9a7e-2f6b0c1d8e90"

	captureLogOutput(t, "INFO", func() {
		if got := FormatBatchID(id); got != "6f1c2a9e-03b" {
			t.Errorf("FormatBatchID() at INFO = %q, want truncated", got)
		}
	})

	captureLogOutput(t, "DEBUG", func() {
		if got := FormatRequestID(id); got != id {
			t.Errorf("FormatRequestID() at DEBUG = %q, want full id", got)
		}
	})
}
