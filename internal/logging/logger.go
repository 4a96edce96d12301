// Package logging provides structured, colorful logging utilities for attest
// components, keeping log formatting consistent between the attestctl CLI and
// the attestd gateway.
//
// Implements a unified logging interface on top of charmbracelet/log with
// color-coded levels and RFC3339 timestamps. Third-party libraries that expect
// an io.Writer (gin, the standard library logger) are routed through
// LevelWriter so their output lands in the same stream with the same styling.
//
// LOGGING FEATURES:
//   - Color-coded levels: DEBUG (purple), INFO (blue), WARN (yellow), ERROR (red), SUCCESS (green)
//   - Flexible output: Configurable log levels and output suppression for CLI tools
//   - Standard redirection: Routes standard library logs through the unified system
//
// INFO/SUCCESS go to stdout and WARN/ERROR/DEBUG go to stderr unless a single
// output is configured with SetOutput, in which case everything goes there.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	stdlog "log"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	mu sync.RWMutex

	// Logger for INFO/SUCCESS messages (stdout by default, follows Unix conventions)
	stdoutLogger = newLogger(os.Stdout)

	// Logger for WARN/ERROR/DEBUG messages (stderr by default, follows Unix conventions)
	stderrLogger = newLogger(os.Stderr)

	// Logger used only for SUCCESS lines; shares stdoutLogger's destination
	successLogger = newSuccessLogger(os.Stdout)

	// Track if logging has been explicitly configured by CLI tools
	cliConfigured = false
)

// newLogger builds a charmbracelet logger with the shared timestamp format and
// level colors.
func newLogger(w io.Writer) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
	l.SetStyles(setupCustomStyles())
	return l
}

// newSuccessLogger builds the logger behind Success. It logs at INFO level but
// renders the level label as SUCCESS in light green.
func newSuccessLogger(w io.Writer) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
	styles := setupCustomStyles()
	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		SetString("SUCCESS").
		Foreground(lipgloss.Color("#60F281"))
	l.SetStyles(styles)
	return l
}

// setupCustomStyles creates custom color styling for log levels. The colors
// read well on both light and dark terminals.
func setupCustomStyles() *log.Styles {
	styles := log.DefaultStyles()

	// DEBUG: light purple
	styles.Levels[log.DebugLevel] = lipgloss.NewStyle().
		SetString("DEBUG").
		Foreground(lipgloss.Color("#7F6DFF"))

	// INFO: light blue
	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO").
		Foreground(lipgloss.Color("#42E7FF"))

	// WARN: light yellow
	styles.Levels[log.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Foreground(lipgloss.Color("#FFE763"))

	// ERROR: light red/pink
	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Foreground(lipgloss.Color("#FF4473"))

	return styles
}

// Info logs informational messages for submission progress and status updates.
// Uses stdout following Unix conventions (or the configured output).
func Info(format string, v ...any) {
	mu.RLock()
	defer mu.RUnlock()
	stdoutLogger.Info(fmt.Sprintf(format, v...))
}

// Warn logs warning messages for degraded steps that did not abort an operation.
// Uses stderr following Unix conventions (or the configured output).
func Warn(format string, v ...any) {
	mu.RLock()
	defer mu.RUnlock()
	stderrLogger.Warn(fmt.Sprintf(format, v...))
}

// Error logs error messages for failed requests and aborted operations.
// Uses stderr following Unix conventions (or the configured output).
func Error(format string, v ...any) {
	mu.RLock()
	defer mu.RUnlock()
	stderrLogger.Error(fmt.Sprintf(format, v...))
}

// Success logs completed operations in green. It respects INFO level filtering.
func Success(format string, v ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if stdoutLogger.GetLevel() > log.InfoLevel {
		return
	}
	successLogger.Info(fmt.Sprintf(format, v...))
}

// Debug logs detailed debugging information such as outbound request lines.
// Uses stderr following Unix conventions (or the configured output).
func Debug(format string, v ...any) {
	mu.RLock()
	defer mu.RUnlock()
	stderrLogger.Debug(fmt.Sprintf(format, v...))
}

// parseLevel maps the level strings accepted on the command line to
// charmbracelet levels. Unknown levels fall back to INFO.
func parseLevel(level string) log.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return log.DebugLevel
	case "INFO":
		return log.InfoLevel
	case "WARN":
		return log.WarnLevel
	case "ERROR":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// SetLevel configures the minimum logging level for both loggers. Accepts the
// standard level strings (DEBUG, INFO, WARN, ERROR); unknown levels fall back
// to INFO.
func SetLevel(level string) {
	mu.Lock()
	defer mu.Unlock()
	logLevel := parseLevel(level)
	stdoutLogger.SetLevel(logLevel)
	stderrLogger.SetLevel(logLevel)
	successLogger.SetLevel(logLevel)
}

// SetOutput sends every level to w, overriding the stdout/stderr split. The
// gateway uses this for --log-file and tests use it to capture output. A nil
// writer suppresses all output. The current level is preserved.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	level := stdoutLogger.GetLevel()
	if w == nil {
		stdoutLogger.SetLevel(log.FatalLevel + 1)
		stderrLogger.SetLevel(log.FatalLevel + 1)
		successLogger.SetLevel(log.FatalLevel + 1)
		return
	}

	stdoutLogger = newLogger(w)
	stderrLogger = newLogger(w)
	successLogger = newSuccessLogger(w)
	stdoutLogger.SetLevel(level)
	stderrLogger.SetLevel(level)
	successLogger.SetLevel(level)
}

// SuppressOutput disables INFO/WARN/DEBUG logs while keeping ERROR logs visible.
// Used by attestctl so table and JSON output are not interleaved with logs.
func SuppressOutput() {
	mu.Lock()
	defer mu.Unlock()
	stdoutLogger.SetLevel(log.ErrorLevel)
	stderrLogger.SetLevel(log.ErrorLevel)
	successLogger.SetLevel(log.ErrorLevel)
	cliConfigured = true
}

// RestoreOutput restores normal logging with Unix conventions at INFO level and
// above: INFO/SUCCESS go to stdout, WARN/ERROR/DEBUG go to stderr.
func RestoreOutput() {
	mu.Lock()
	defer mu.Unlock()

	stdoutLogger = newLogger(os.Stdout)
	stderrLogger = newLogger(os.Stderr)
	successLogger = newSuccessLogger(os.Stdout)

	stdoutLogger.SetLevel(log.InfoLevel)
	stderrLogger.SetLevel(log.InfoLevel)
	successLogger.SetLevel(log.InfoLevel)
	cliConfigured = true
}

// IsConfiguredByCLI returns true if logging has been explicitly configured by CLI tools.
func IsConfiguredByCLI() bool {
	mu.RLock()
	defer mu.RUnlock()
	return cliConfigured
}

// ============================================================================
// GENERIC LOG INTEGRATION - General purpose writers for third-party libraries
// ============================================================================

// LevelWriter forwards log lines to a specific log level with optional prefix.
// Useful for integrating third-party libraries that expect io.Writer interfaces.
type LevelWriter struct {
	level  string
	prefix string
}

// NewLevelWriter creates a writer that logs each line at the specified level with prefix.
// Valid levels: DEBUG, INFO, WARN, ERROR
func NewLevelWriter(level, prefix string) io.Writer {
	return &LevelWriter{level: strings.ToUpper(level), prefix: prefix}
}

// Write implements io.Writer by splitting input into lines and logging each
// non-empty line at the configured level.
func (w *LevelWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(string(p), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		msg := line
		if w.prefix != "" {
			msg = w.prefix + ": " + line
		}
		switch w.level {
		case "DEBUG":
			Debug("%s", msg)
		case "WARN":
			Warn("%s", msg)
		case "ERROR":
			Error("%s", msg)
		default:
			Info("%s", msg)
		}
	}
	return len(p), nil
}

// RedirectStandardLog redirects Go's standard library logger output to the provided writer.
// Passing nil discards standard log output.
func RedirectStandardLog(w io.Writer) {
	if w == nil {
		stdlog.SetOutput(io.Discard)
		return
	}
	stdlog.SetOutput(w)
}
