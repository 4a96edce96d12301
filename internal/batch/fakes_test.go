package batch

import (
	"context"
	"fmt"
	"sync"

	"github.com/concave-dev/attest/internal/backend"
	"github.com/concave-dev/attest/internal/directory"
)

// fakeBackend records every call and returns canned results.
type fakeBackend struct {
	mu sync.Mutex

	createID  string
	createErr error
	updateErr error
	listErr   error
	unlisted  bool
	docsErr   error
	recipErr  error

	readBack    []backend.Recipient
	readBackErr error
	readBackSet bool
	originalDoc []backend.Document

	calls      []string
	created    []backend.BatchInput
	updated    []backend.BatchInput
	documents  [][]backend.Document
	recipients [][]backend.Recipient
	batchIDs   []string
}

func (f *fakeBackend) record(call, id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	if id != "" {
		f.batchIDs = append(f.batchIDs, id)
	}
}

func (f *fakeBackend) count(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeBackend) CreateBatch(ctx context.Context, in backend.BatchInput) (string, error) {
	f.record("CreateBatch", "")
	f.mu.Lock()
	f.created = append(f.created, in)
	f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	if f.createID == "" {
		return "b-1", nil
	}
	return f.createID, nil
}

func (f *fakeBackend) UpdateBatch(ctx context.Context, id string, in backend.BatchInput) error {
	f.record("UpdateBatch", id)
	f.mu.Lock()
	f.updated = append(f.updated, in)
	f.mu.Unlock()
	return f.updateErr
}

func (f *fakeBackend) ListBatches(ctx context.Context) ([]backend.Batch, error) {
	f.record("ListBatches", "")
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.unlisted {
		return []backend.Batch{{ID: "someone-else"}}, nil
	}
	id := f.createID
	if id == "" {
		id = "b-1"
	}
	return []backend.Batch{{ID: "older"}, {ID: id}}, nil
}

func (f *fakeBackend) AddDocuments(ctx context.Context, id string, docs []backend.Document) error {
	f.record("AddDocuments", id)
	f.mu.Lock()
	f.documents = append(f.documents, docs)
	f.mu.Unlock()
	return f.docsErr
}

func (f *fakeBackend) ListDocuments(ctx context.Context, id string) ([]backend.Document, error) {
	f.record("ListDocuments", id)
	return f.originalDoc, nil
}

func (f *fakeBackend) AddRecipients(ctx context.Context, id string, recipients []backend.Recipient) error {
	f.record("AddRecipients", id)
	f.mu.Lock()
	f.recipients = append(f.recipients, recipients)
	f.mu.Unlock()
	return f.recipErr
}

func (f *fakeBackend) ListRecipients(ctx context.Context, id string) ([]backend.Recipient, error) {
	f.record("ListRecipients", id)
	if f.readBackErr != nil {
		return nil, f.readBackErr
	}
	if f.readBackSet {
		return f.readBack, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []backend.Recipient
	for _, batch := range f.recipients {
		all = append(all, batch...)
	}
	return all, nil
}

// fakeMembers serves group members from a map; groups listed in failing error.
type fakeMembers struct {
	groups  map[string][]directory.User
	failing map[string]error

	mu    sync.Mutex
	calls []string
}

func (f *fakeMembers) GroupMembers(ctx context.Context, groupID string) ([]directory.User, error) {
	f.mu.Lock()
	f.calls = append(f.calls, groupID)
	f.mu.Unlock()
	if err, ok := f.failing[groupID]; ok {
		return nil, err
	}
	users, ok := f.groups[groupID]
	if !ok {
		return nil, fmt.Errorf("group %s not found", groupID)
	}
	return users, nil
}

type sentMail struct {
	to      []string
	subject string
	body    string
}

type fakeMailer struct {
	err  error
	sent []sentMail
}

func (f *fakeMailer) Send(ctx context.Context, to []string, subject, htmlBody string) error {
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: htmlBody})
	return f.err
}
