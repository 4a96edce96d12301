package handlers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleForm = `
name: Q3 Policies
startDate: "2026-10-01"
dueDate: "2026-10-31"
description: Quarterly policy review
notifyByEmail: true
users:
  - id: u1
    displayName: Amy Adams
    mail: amy@example.com
    department: Legal
groups:
  - id: g1
    displayName: Engineering
documents:
  - title: Code of Conduct
    url: https://docs.example.com/coc.pdf
    version: "3"
    requiresSignature: true
`

// TestParseForm tests decoding a complete form
func TestParseForm(t *testing.T) {
	form, err := ParseForm([]byte(sampleForm))
	if err != nil {
		t.Fatalf("ParseForm: %v", err)
	}

	if form.Name != "Q3 Policies" || form.DueDate != "2026-10-31" || !form.NotifyByEmail {
		t.Errorf("unexpected header fields: %+v", form)
	}
	if len(form.SelectedUsers) != 1 || form.SelectedUsers[0].Mail != "amy@example.com" {
		t.Errorf("unexpected users: %+v", form.SelectedUsers)
	}
	if len(form.SelectedGroups) != 1 || form.SelectedGroups[0].ID != "g1" {
		t.Errorf("unexpected groups: %+v", form.SelectedGroups)
	}
	if len(form.SelectedDocuments) != 1 || !form.SelectedDocuments[0].RequiresSignature {
		t.Errorf("unexpected documents: %+v", form.SelectedDocuments)
	}
	if err := form.Validate(); err != nil {
		t.Errorf("sample form should validate: %v", err)
	}
}

// TestParseForm_Errors tests rejected input
func TestParseForm_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: "form is empty"},
		{name: "unknown field", input: "name: x\nrecipients: []\n", want: "invalid form"},
		{name: "wrong type", input: "name: x\nusers: nope\n", want: "invalid form"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseForm([]byte(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

// TestLoadForm tests reading a form from disk
func TestLoadForm(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.yaml")
	if err := os.WriteFile(path, []byte(sampleForm), 0o600); err != nil {
		t.Fatal(err)
	}

	form, err := LoadForm(path)
	if err != nil {
		t.Fatalf("LoadForm: %v", err)
	}
	if form.Name != "Q3 Policies" {
		t.Errorf("Name = %q", form.Name)
	}

	if _, err := LoadForm(""); err == nil {
		t.Error("expected error for missing path")
	}
	if _, err := LoadForm(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
