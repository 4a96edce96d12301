package validate

import (
	"testing"
	"time"
)

func TestValidatePortRange(t *testing.T) {
	tests := []struct {
		port    int
		wantErr bool
	}{
		{8090, false},
		{1, false},
		{65535, false},
		{0, true},
		{65536, true},
		{-1, true},
	}

	for _, tt := range tests {
		if err := ValidatePortRange(tt.port); (err != nil) != tt.wantErr {
			t.Errorf("ValidatePortRange(%d) error = %v, wantErr %v", tt.port, err, tt.wantErr)
		}
	}
}

func TestValidateRequiredString(t *testing.T) {
	if err := ValidateRequiredString("sender@example.com", "mail sender"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	err := ValidateRequiredString("", "mail sender")
	if err == nil {
		t.Fatal("expected error for empty value")
	}
	if err.Error() != "mail sender cannot be empty" {
		t.Errorf("error = %q, want %q", err.Error(), "mail sender cannot be empty")
	}
}

func TestValidatePositiveTimeout(t *testing.T) {
	if err := ValidatePositiveTimeout(10*time.Second, "timeout"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	for _, d := range []time.Duration{0, -time.Second} {
		if err := ValidatePositiveTimeout(d, "timeout"); err == nil {
			t.Errorf("ValidatePositiveTimeout(%v) expected error", d)
		}
	}
}

func TestValidateBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"http with port", "http://localhost:3000", false},
		{"https with path", "https://attest.example.com/backend", false},
		{"empty", "", true},
		{"relative", "/api", true},
		{"ftp scheme", "ftp://files.example.com", true},
		{"query string", "https://attest.example.com?x=1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateBaseURL(tt.value, "api url"); (err != nil) != tt.wantErr {
				t.Errorf("ValidateBaseURL(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}
