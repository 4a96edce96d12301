package batch

import (
	"fmt"

	"github.com/concave-dev/attest/internal/notify"
)

// Status is the overall result of a submission.
type Status string

const (
	// StatusSucceeded means every step completed.
	StatusSucceeded Status = "succeeded"

	// StatusDegraded means the batch was saved but a non-essential step
	// (group expansion, recipient verification) failed.
	StatusDegraded Status = "degraded"

	// StatusFailed means the submission stopped at a fatal step.
	StatusFailed Status = "failed"
)

// Submission steps, used in degradations and step errors.
const (
	StepValidate          = "validate"
	StepResolveRecipients = "resolve-recipients"
	StepCompose           = "compose-notification"
	StepNotify            = "send-notification"
	StepSaveBatch         = "save-batch"
	StepVerifyBatch       = "verify-batch"
	StepAddDocuments      = "add-documents"
	StepAddRecipients     = "add-recipients"
	StepVerifyRecipients  = "verify-recipients"
)

// Degradation is a step that failed without stopping the submission.
type Degradation struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// StepError is a fatal failure at a named step.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Outcome describes what a submission did.
type Outcome struct {
	Status            Status        `json:"status"`
	BatchID           string        `json:"batchId,omitempty"`
	Action            notify.Action `json:"action"`
	DocumentsAdded    int           `json:"documentsAdded"`
	RecipientsAdded   int           `json:"recipientsAdded"`
	NotificationsSent bool          `json:"notificationsSent"`
	NotifiedCount     int           `json:"notifiedCount"`
	Degradations      []Degradation `json:"degradations,omitempty"`
	Error             string        `json:"error,omitempty"`
	Err               error         `json:"-"`
}

// Summary returns the success message shown when the batch was saved.
func (o *Outcome) Summary(name string) string {
	notified := "no email notifications sent"
	if o.NotificationsSent {
		notified = "email notifications sent"
	}
	return fmt.Sprintf("Batch \"%s\" %s successfully: %d documents added, %d recipients added, %s",
		name, o.Action, o.DocumentsAdded, o.RecipientsAdded, notified)
}

func (o *Outcome) degrade(step string, err error) {
	o.Degradations = append(o.Degradations, Degradation{Step: step, Message: err.Error(), Err: err})
}
