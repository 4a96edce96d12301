package batch

import (
	"errors"
	"strings"

	"github.com/concave-dev/attest/internal/backend"
	"github.com/concave-dev/attest/internal/directory"
	"github.com/concave-dev/attest/internal/validate"
)

// Form is the state of the batch editor: everything the user has entered or
// selected before pressing save. The caller owns it; Submit resets it after a
// successful save.
type Form struct {
	Name        string `json:"name" yaml:"name"`
	StartDate   string `json:"startDate" yaml:"startDate" validate:"omitempty,datetime=2006-01-02"`
	DueDate     string `json:"dueDate" yaml:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	Description string `json:"description" yaml:"description"`

	SelectedUsers     []directory.User  `json:"selectedUsers" yaml:"users"`
	SelectedGroups    []directory.Group `json:"selectedGroups" yaml:"groups"`
	SelectedDocuments []Document        `json:"selectedDocuments" yaml:"documents" validate:"dive"`

	NotifyByEmail bool `json:"notifyByEmail" yaml:"notifyByEmail"`
}

// Document is a document selected for the batch. DriveID and ItemID identify
// the file in the document store when it was picked from there.
type Document struct {
	Title             string `json:"title" yaml:"title" validate:"required"`
	URL               string `json:"url" yaml:"url" validate:"required,url"`
	Version           string `json:"version,omitempty" yaml:"version,omitempty"`
	RequiresSignature bool   `json:"requiresSignature" yaml:"requiresSignature"`
	DriveID           string `json:"driveId,omitempty" yaml:"driveId,omitempty"`
	ItemID            string `json:"itemId,omitempty" yaml:"itemId,omitempty"`
}

// EditContext identifies the batch being edited and what was already linked
// to it when the editor was opened. A nil *EditContext means a new batch.
type EditContext struct {
	BatchID         string   `json:"batchId"`
	OriginalEmails  []string `json:"originalEmails"`
	OriginalDocURLs []string `json:"originalDocUrls"`
}

// ValidationError is a problem with the form found before any network call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidationError reports whether err is a *ValidationError.
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// Messages shown for local validation failures.
const (
	msgNameRequired    = "Please enter a batch name"
	msgDueBeforeStart  = "Due date cannot be before start date"
	msgMailUnavailable = "Email notifications are not configured"
	msgDirUnavailable  = "Group selection is not available: directory service is not configured"
)

// Validate checks the form locally. A blank name is reported on its own so
// the user sees exactly one message for the most common mistake.
func (f *Form) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return &ValidationError{Message: msgNameRequired}
	}
	if err := validate.Struct(f); err != nil {
		return &ValidationError{Message: err.Error()}
	}
	// Both dates passed the YYYY-MM-DD check, so string order is date order.
	if f.StartDate != "" && f.DueDate != "" && f.DueDate < f.StartDate {
		return &ValidationError{Message: msgDueBeforeStart}
	}
	return nil
}

// Reset clears the form after a successful save.
func (f *Form) Reset() {
	*f = Form{}
}

func (d Document) toBackend() backend.Document {
	return backend.Document{
		Title:             strings.TrimSpace(d.Title),
		URL:               strings.TrimSpace(d.URL),
		Version:           d.Version,
		RequiresSignature: d.RequiresSignature,
		DriveID:           d.DriveID,
		ItemID:            d.ItemID,
	}
}
