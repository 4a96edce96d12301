// Package validate provides input validation for attest: gateway listen
// addresses, configuration values, and the fields users type into the batch,
// MFA and password-reset forms.
//
// All rules are expressed as go-playground/validator tags so the CLI, the
// gateway and the orchestrator reject the same inputs with the same messages.
//
// VALIDATION FEATURES:
//   - Addresses: "host:port" parsing for the attestd listener
//   - Config: port ranges, required strings, positive timeouts, base URLs
//   - Forms: emails, ISO dates, one-time codes, passwords, tagged structs
package validate

import (
	"fmt"
	"net"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// Global validator instance shared by every helper in this package
	validate *validator.Validate
)

func init() {
	validate = validator.New()

	// Report json field names ("dueDate") instead of Go names ("DueDate") so
	// messages read the same in the CLI and in gateway responses.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// NetworkAddress is a validated "host:port" listen address. Port 0 parses;
// callers that need a fixed port reject it themselves.
type NetworkAddress struct {
	Host string `validate:"required,ip"`
	Port int    `validate:"min=0,max=65535"`
}

// String returns the address in "host:port" form.
func (na NetworkAddress) String() string {
	return net.JoinHostPort(na.Host, strconv.Itoa(na.Port))
}

// ParseBindAddress parses and validates a "host:port" listen address for the
// gateway. The host must be a literal IP address; hostnames are rejected so the
// bound interface is unambiguous.
func ParseBindAddress(addr string) (*NetworkAddress, error) {
	if addr == "" {
		return nil, fmt.Errorf("address cannot be empty")
	}

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid address format '%s': %w", addr, err)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid port '%s': %w", portStr, err)
	}

	netAddr := &NetworkAddress{
		Host: host,
		Port: port,
	}

	if err := validate.Struct(netAddr); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return netAddr, nil
}

// ValidateField validates a single value against validator tags.
//
// Example: ValidateField("ops@example.com", "required,email")
func ValidateField(value any, tag string) error {
	return validate.Var(value, tag)
}
