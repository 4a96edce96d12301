// Package netutil classifies network errors so attestd and attestctl can
// print an actionable message instead of a raw dial error.
//
// Checks use error types rather than string matching, and unwrap through
// the url.Error and apierror.Error layers added by the HTTP clients.
package netutil

import (
	"errors"
	"net"
	"syscall"
)

// IsAddressInUseError checks if an error indicates "address already in use".
// attestd reports it when the listen port is taken.
func IsAddressInUseError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errors.Is(opErr.Err, syscall.EADDRINUSE)
	}
	return false
}

// IsConnectionRefusedError checks if an error indicates "connection refused",
// typically a backend that is not running at the configured URL.
func IsConnectionRefusedError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errors.Is(opErr.Err, syscall.ECONNREFUSED)
	}
	return false
}

// IsTimeoutError checks if an error is a network timeout.
func IsTimeoutError(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Describe returns a short hint for common connectivity failures against
// target, or "" when err is not one of them.
func Describe(err error, target string) string {
	switch {
	case err == nil:
		return ""
	case IsConnectionRefusedError(err):
		return "cannot connect to " + target + ": is it running?"
	case IsTimeoutError(err):
		return "timed out waiting for " + target
	case IsAddressInUseError(err):
		return target + " is already in use"
	}
	return ""
}
