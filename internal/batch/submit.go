// Package batch implements batch submission: turning the batch editor's form
// into a stored batch with its documents and recipients, optionally emailing
// the recipients, and checking that what was written can be read back.
//
// SUBMISSION STEPS:
//  1. Validate the form locally (no network on failure)
//  2. Resolve recipients: selected users, then members of selected groups
//     fetched concurrently; a failed group contributes no members
//  3. Compose the notification email
//  4. Pick notification targets (new recipients only when editing, unless
//     that leaves nobody)
//  5. Send the notification email
//  6. Create or update the batch
//  7. After a create, wait briefly and confirm the batch is listed
//  8. Link documents not already on the batch
//  9. Link recipients not already on the batch
//  10. Read recipients back; an empty or failed read is a warning
//  11. Report a summary and reset the form
//
// Every outcome is reported twice: as toasts through the configured sink and
// as a typed *Outcome for callers that need counts and degradations.
package batch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/concave-dev/attest/internal/apierror"
	"github.com/concave-dev/attest/internal/backend"
	"github.com/concave-dev/attest/internal/directory"
	"github.com/concave-dev/attest/internal/httpclient"
	"github.com/concave-dev/attest/internal/logging"
	"github.com/concave-dev/attest/internal/notify"
	"github.com/concave-dev/attest/internal/toast"
	"golang.org/x/sync/errgroup"
)

// maxGroupFetches bounds concurrent group-member requests.
const maxGroupFetches = 8

// Options configures a Submitter.
type Options struct {
	Backend Backend

	// Members expands groups. Nil disables group selection.
	Members MemberSource

	// Mailer sends notifications. Nil disables email notifications.
	Mailer Mailer

	// Composer renders notifications. Defaults to notify.NewComposer("").
	Composer Composer

	// Sink receives toasts. Defaults to toast.Discard.
	Sink toast.Sink

	// SettleDelay is the wait between creating a batch and listing batches to
	// confirm it. Negative values are treated as zero.
	SettleDelay time.Duration
}

// Submitter runs batch submissions. It holds no per-submission state and is
// safe for concurrent use when its dependencies are.
type Submitter struct {
	backend     Backend
	members     MemberSource
	mailer      Mailer
	composer    Composer
	sink        toast.Sink
	settleDelay time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
}

// NewSubmitter creates a Submitter. A nil Backend panics.
func NewSubmitter(opts Options) *Submitter {
	if opts.Backend == nil {
		panic("batch: NewSubmitter requires a Backend")
	}
	s := &Submitter{
		backend:     opts.Backend,
		members:     opts.Members,
		mailer:      opts.Mailer,
		composer:    opts.Composer,
		sink:        opts.Sink,
		settleDelay: max(opts.SettleDelay, 0),
		sleep:       sleepContext,
	}
	if s.composer == nil {
		s.composer = notify.NewComposer("")
	}
	if s.sink == nil {
		s.sink = toast.Discard
	}
	return s
}

// WithSink returns a copy of s that delivers toasts to sink. The gateway
// uses it to collect one request's toasts.
func (s *Submitter) WithSink(sink toast.Sink) *Submitter {
	c := *s
	c.sink = sink
	if c.sink == nil {
		c.sink = toast.Discard
	}
	return &c
}

// Submit saves form as a new batch (edit == nil) or as changes to an existing
// one. On success the form is reset. The returned error is also stored in
// Outcome.Err; a nil error with Status degraded means the batch was saved but
// a non-essential step failed.
func (s *Submitter) Submit(ctx context.Context, form *Form, edit *EditContext) (*Outcome, error) {
	ctx, requestID := httpclient.EnsureRequestID(ctx)

	out := &Outcome{Action: notify.ActionCreated}
	if edit != nil {
		out.Action = notify.ActionUpdated
		out.BatchID = edit.BatchID
	}

	// 1. Validate
	if err := s.validate(form, edit); err != nil {
		logging.Warn("Batch form rejected: %v", err)
		s.sink.Notify(toast.New(toast.Error, err.Error()))
		out.Status = StatusFailed
		out.Err = &StepError{Step: StepValidate, Err: err}
		out.Error = err.Error()
		return out, out.Err
	}

	name := strings.TrimSpace(form.Name)
	logging.Info("Submitting batch %q (%s, request %s)", name, out.Action, logging.FormatRequestID(requestID))

	// 2. Resolve recipients
	recipients := s.resolveRecipients(ctx, form, out).List()
	logging.Debug("Resolved %d distinct recipients", len(recipients))

	// 3-5. Compose, pick targets, send
	if form.NotifyByEmail {
		targets := notificationTargets(recipients, edit)
		if len(targets) > 0 {
			msg, err := s.composer.Compose(notify.Batch{
				Name:        name,
				Description: form.Description,
				StartDate:   form.StartDate,
				DueDate:     form.DueDate,
				Documents:   notifyDocuments(form.SelectedDocuments),
				Action:      out.Action,
			})
			if err != nil {
				return s.fail(out, StepCompose, err)
			}

			if err := s.mailer.Send(ctx, Emails(targets), msg.Subject, msg.HTMLBody); err != nil {
				return s.fail(out, StepNotify, err)
			}
			out.NotificationsSent = true
			out.NotifiedCount = len(targets)
			logging.Info("Sent notification email to %d recipients", len(targets))
		}
	}

	// 6. Create or update
	input := backend.BatchInput{
		Name:        name,
		StartDate:   form.StartDate,
		DueDate:     form.DueDate,
		Description: form.Description,
		Status:      backend.StatusActive,
	}
	if edit == nil {
		id, err := s.backend.CreateBatch(ctx, input)
		if err != nil {
			return s.fail(out, StepSaveBatch, err)
		}
		out.BatchID = id
		logging.Info("Created batch %s", logging.FormatBatchID(id))

		// 7. Confirm the batch is listed
		if err := s.confirmCreated(ctx, id); err != nil {
			return s.fail(out, StepVerifyBatch, err)
		}
	} else {
		if err := s.backend.UpdateBatch(ctx, edit.BatchID, input); err != nil {
			return s.fail(out, StepSaveBatch, err)
		}
		logging.Info("Updated batch %s", logging.FormatBatchID(edit.BatchID))
	}

	// 8. Documents
	docs := form.SelectedDocuments
	if edit != nil {
		docs = excludeDocuments(docs, edit.OriginalDocURLs)
	}
	if len(docs) > 0 {
		payload := make([]backend.Document, len(docs))
		for i, d := range docs {
			payload[i] = d.toBackend()
		}
		if err := s.backend.AddDocuments(ctx, out.BatchID, payload); err != nil {
			return s.fail(out, StepAddDocuments, err)
		}
		out.DocumentsAdded = len(docs)
	} else {
		logging.Debug("No new documents to add to batch %s", logging.FormatBatchID(out.BatchID))
	}

	// 9. Recipients
	newRecipients := recipients
	if edit != nil {
		newRecipients = excludeEmails(recipients, edit.OriginalEmails)
	}
	if len(newRecipients) > 0 {
		payload := make([]backend.Recipient, len(newRecipients))
		for i, r := range newRecipients {
			payload[i] = r.toBackend()
		}
		if err := s.backend.AddRecipients(ctx, out.BatchID, payload); err != nil {
			return s.fail(out, StepAddRecipients, err)
		}
		out.RecipientsAdded = len(newRecipients)

		// 10. Read back
		s.verifyRecipients(ctx, out)
	} else {
		logging.Debug("No new recipients to add to batch %s", logging.FormatBatchID(out.BatchID))
	}

	// 11. Report
	out.Status = StatusSucceeded
	if len(out.Degradations) > 0 {
		out.Status = StatusDegraded
	}
	summary := out.Summary(name)
	logging.Success("%s", summary)
	s.sink.Notify(toast.New(toast.Success, summary))
	form.Reset()
	return out, nil
}

// validate runs local checks, including whether the features the form asks
// for are configured.
func (s *Submitter) validate(form *Form, edit *EditContext) error {
	if form == nil {
		return &ValidationError{Message: msgNameRequired}
	}
	if err := form.Validate(); err != nil {
		return err
	}
	if edit != nil && strings.TrimSpace(edit.BatchID) == "" {
		return &ValidationError{Message: "Batch id is required when editing"}
	}
	if len(form.SelectedGroups) > 0 && s.members == nil {
		return &ValidationError{Message: msgDirUnavailable}
	}
	if form.NotifyByEmail && s.mailer == nil {
		return &ValidationError{Message: msgMailUnavailable}
	}
	return nil
}

// resolveRecipients merges selected users and group members. Users come first
// so their display names take precedence; groups follow in selection order.
func (s *Submitter) resolveRecipients(ctx context.Context, form *Form, out *Outcome) *RecipientSet {
	set := NewRecipientSet()
	for _, u := range form.SelectedUsers {
		if !set.AddUser(u, "") {
			logging.Warn("Skipping selected user %q: no email address", u.DisplayName)
		}
	}

	groups := form.SelectedGroups
	if len(groups) == 0 {
		return set
	}

	members := make([][]directory.User, len(groups))
	errs := make([]error, len(groups))

	var g errgroup.Group
	g.SetLimit(maxGroupFetches)
	for i, group := range groups {
		g.Go(func() error {
			members[i], errs[i] = s.members.GroupMembers(ctx, group.ID)
			return nil
		})
	}
	g.Wait()

	for i, group := range groups {
		if errs[i] != nil {
			logging.Warn("Could not load members of group %q: %v", groupLabel(group), errs[i])
			out.degrade(StepResolveRecipients, fmt.Errorf("group %s: %w", groupLabel(group), errs[i]))
			continue
		}
		for _, u := range members[i] {
			set.AddUser(u, group.ID)
		}
	}
	return set
}

func groupLabel(g directory.Group) string {
	if g.DisplayName != "" {
		return g.DisplayName
	}
	return g.ID
}

// notificationTargets picks who gets the email. When editing, people already
// on the batch were notified before; if everyone already was, everyone is
// notified again rather than nobody.
func notificationTargets(recipients []Recipient, edit *EditContext) []Recipient {
	if edit == nil {
		return recipients
	}
	if fresh := excludeEmails(recipients, edit.OriginalEmails); len(fresh) > 0 {
		return fresh
	}
	return recipients
}

func notifyDocuments(docs []Document) []notify.Document {
	out := make([]notify.Document, len(docs))
	for i, d := range docs {
		out[i] = notify.Document{
			Title:             d.Title,
			URL:               d.URL,
			Version:           d.Version,
			RequiresSignature: d.RequiresSignature,
		}
	}
	return out
}

// confirmCreated waits for the settle delay and checks that id is listed.
func (s *Submitter) confirmCreated(ctx context.Context, id string) error {
	if err := s.sleep(ctx, s.settleDelay); err != nil {
		return err
	}

	batches, err := s.backend.ListBatches(ctx)
	if err != nil {
		return err
	}
	for _, b := range batches {
		if b.ID == id {
			return nil
		}
	}
	return fmt.Errorf("batch %s was created but is not listed", id)
}

// verifyRecipients reads recipients back. Failures are recorded, not fatal.
func (s *Submitter) verifyRecipients(ctx context.Context, out *Outcome) {
	linked, err := s.backend.ListRecipients(ctx, out.BatchID)
	switch {
	case err != nil:
		logging.Warn("Could not verify recipients of batch %s: %v", logging.FormatBatchID(out.BatchID), err)
		out.degrade(StepVerifyRecipients, err)
		s.sink.Notify(toast.New(toast.Warning,
			fmt.Sprintf("Batch saved, but recipients could not be verified: %s", apierror.Message(err))))
	case len(linked) == 0:
		err := fmt.Errorf("no recipients found after adding %d", out.RecipientsAdded)
		logging.Warn("Recipients of batch %s not found on read-back", logging.FormatBatchID(out.BatchID))
		out.degrade(StepVerifyRecipients, err)
		s.sink.Notify(toast.New(toast.Warning, "Batch saved, but no recipients were found when verifying"))
	default:
		logging.Debug("Verified %d recipients on batch %s", len(linked), logging.FormatBatchID(out.BatchID))
	}
}

// fail records a fatal step error, emits the failure toast and returns.
func (s *Submitter) fail(out *Outcome, step string, err error) (*Outcome, error) {
	logging.Error("Batch submission failed at %s: %v", step, err)
	s.sink.Notify(toast.New(toast.Error, "Failed to save batch: "+apierror.Message(err)))
	out.Status = StatusFailed
	out.Err = &StepError{Step: step, Err: err}
	out.Error = apierror.Message(err)
	return out, out.Err
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
