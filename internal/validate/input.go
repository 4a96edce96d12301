package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the calendar-date format used by every date field.
const DateLayout = "2006-01-02"

// MinPasswordLength is the shortest password accepted by the reset form.
const MinPasswordLength = 8

// ValidateEmail validates a single email address.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("email is required")
	}
	if err := ValidateField(email, "email"); err != nil {
		return fmt.Errorf("invalid email address: %s", email)
	}
	return nil
}

// ValidateOTPCode validates a 6-digit authenticator code.
func ValidateOTPCode(code string) error {
	if err := ValidateField(code, "required,len=6,numeric"); err != nil {
		return fmt.Errorf("verification code must be 6 digits")
	}
	return nil
}

// ValidatePassword validates a new password and its confirmation.
func ValidatePassword(password, confirm string) error {
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}
	if err := ValidateField(password, fmt.Sprintf("required,min=%d", MinPasswordLength)); err != nil {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// Struct validates a tagged struct and flattens validator errors into a single
// readable message ("dueDate must be a date in YYYY-MM-DD format").
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// describe renders one field error using the json field path.
func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "datetime":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "len":
		return fmt.Sprintf("%s must be %s characters long", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
	case "numeric":
		return fmt.Sprintf("%s must contain only digits", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
