// Package utils provides common helpers shared by attestctl and attestd.
//
// This file implements identifier helpers. Every batch submission, MFA call and
// password-reset call carries a request id in the X-Request-ID header so a
// single operation can be followed across the gateway, backend and directory
// logs. Request ids are random UUIDs (google/uuid); batch ids are assigned by
// the backend and only ever truncated here for display.
package utils

import (
	"strings"

	"github.com/google/uuid"
)

// ShortIDLength is the number of characters kept when displaying long ids.
const ShortIDLength = 12

// NewRequestID returns a fresh random request id for outbound calls.
func NewRequestID() string {
	return uuid.NewString()
}

// IsRequestID reports whether s parses as a request id produced by NewRequestID.
// The gateway uses it to decide whether to trust an inbound X-Request-ID.
func IsRequestID(s string) bool {
	_, err := uuid.Parse(strings.TrimSpace(s))
	return err == nil
}

// TruncateIDSafe shortens an id to ShortIDLength characters for tables and
// log lines. Shorter ids are returned unchanged.
func TruncateIDSafe(id string) string {
	if len(id) <= ShortIDLength {
		return id
	}
	return id[:ShortIDLength]
}
