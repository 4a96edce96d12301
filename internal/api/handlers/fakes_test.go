package handlers

import (
	"context"
	"sync"

	"github.com/concave-dev/attest/internal/authflow"
	"github.com/concave-dev/attest/internal/backend"
)

// fakeBackend is an in-memory batch backend that counts calls.
type fakeBackend struct {
	mu sync.Mutex

	createErr  error
	recipients []backend.Recipient
	documents  []backend.Document

	calls map[string]int
}

func (f *fakeBackend) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[call]++
}

func (f *fakeBackend) count(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[call]
}

func (f *fakeBackend) CreateBatch(ctx context.Context, in backend.BatchInput) (string, error) {
	f.record("CreateBatch")
	if f.createErr != nil {
		return "", f.createErr
	}
	return "b-1", nil
}

func (f *fakeBackend) UpdateBatch(ctx context.Context, id string, in backend.BatchInput) error {
	f.record("UpdateBatch")
	return nil
}

func (f *fakeBackend) ListBatches(ctx context.Context) ([]backend.Batch, error) {
	f.record("ListBatches")
	return []backend.Batch{{ID: "b-1"}}, nil
}

func (f *fakeBackend) AddDocuments(ctx context.Context, id string, docs []backend.Document) error {
	f.record("AddDocuments")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.documents = append(f.documents, docs...)
	return nil
}

func (f *fakeBackend) ListDocuments(ctx context.Context, id string) ([]backend.Document, error) {
	f.record("ListDocuments")
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]backend.Document(nil), f.documents...), nil
}

func (f *fakeBackend) AddRecipients(ctx context.Context, id string, recipients []backend.Recipient) error {
	f.record("AddRecipients")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recipients = append(f.recipients, recipients...)
	return nil
}

func (f *fakeBackend) ListRecipients(ctx context.Context, id string) ([]backend.Recipient, error) {
	f.record("ListRecipients")
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]backend.Recipient(nil), f.recipients...), nil
}

// fakeAuth answers the auth endpoints from canned values.
type fakeAuth struct {
	setup     *authflow.SetupResult
	err       error
	resetMsg  string
	lastEmail string
	lastCode  string
	calls     int
}

func (f *fakeAuth) SetupMFA(ctx context.Context, email string) (*authflow.SetupResult, error) {
	f.calls++
	f.lastEmail = email
	return f.setup, f.err
}

func (f *fakeAuth) VerifyMFA(ctx context.Context, email, code string) error {
	f.calls++
	f.lastEmail, f.lastCode = email, code
	return f.err
}

func (f *fakeAuth) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	f.calls++
	f.lastEmail = email
	return f.resetMsg, f.err
}

func (f *fakeAuth) ResetPassword(ctx context.Context, email, code, password string) error {
	f.calls++
	f.lastEmail, f.lastCode = email, code
	return f.err
}
