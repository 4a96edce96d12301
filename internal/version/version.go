// Package version provides centralized version information for the attest
// binaries. attestctl and attestd are versioned independently so the CLI can
// evolve separately from the gateway it sometimes talks to.
// All versions follow semantic versioning (semver) conventions.

package version

// AttestdVersion holds the current attestd gateway version.
// Format: major.minor.patch[-prerelease][+build]
const AttestdVersion = "0.1.0-dev"

// AttestctlVersion holds the current attestctl CLI version.
// Also sent in the User-Agent header of every outbound API request.
// Format: major.minor.patch[-prerelease][+build]
const AttestctlVersion = "0.1.0-dev"
