package validate

import (
	"fmt"
	"net/url"
	"time"
)

// ValidatePortRange validates that a port number is within 1-65535.
func ValidatePortRange(port int) error {
	return ValidateField(port, "required,min=1,max=65535")
}

// ValidateRequiredString validates that a string field is not empty.
func ValidateRequiredString(value, fieldName string) error {
	if err := ValidateField(value, "required"); err != nil {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	return nil
}

// ValidatePositiveTimeout validates that a timeout duration is positive (> 0).
func ValidatePositiveTimeout(timeout time.Duration, name string) error {
	if timeout <= 0 {
		return fmt.Errorf("%s must be positive", name)
	}
	return nil
}

// ValidateBaseURL validates an absolute http(s) URL such as the backend API
// address. Trailing paths are allowed; query strings are not.
func ValidateBaseURL(value, fieldName string) error {
	if err := ValidateField(value, "required,url"); err != nil {
		return fmt.Errorf("%s must be an absolute URL: %q", fieldName, value)
	}

	u, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", fieldName, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got %q", fieldName, u.Scheme)
	}
	if u.RawQuery != "" {
		return fmt.Errorf("%s must not contain a query string", fieldName)
	}
	return nil
}
