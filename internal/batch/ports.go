package batch

import (
	"context"

	"github.com/concave-dev/attest/internal/backend"
	"github.com/concave-dev/attest/internal/directory"
	"github.com/concave-dev/attest/internal/notify"
)

// Backend persists batches. *backend.Client implements it.
type Backend interface {
	CreateBatch(ctx context.Context, in backend.BatchInput) (string, error)
	UpdateBatch(ctx context.Context, id string, in backend.BatchInput) error
	ListBatches(ctx context.Context) ([]backend.Batch, error)
	AddDocuments(ctx context.Context, id string, docs []backend.Document) error
	ListDocuments(ctx context.Context, id string) ([]backend.Document, error)
	AddRecipients(ctx context.Context, id string, recipients []backend.Recipient) error
	ListRecipients(ctx context.Context, id string) ([]backend.Recipient, error)
}

// MemberSource expands a group into its users. *directory.Client implements it.
type MemberSource interface {
	GroupMembers(ctx context.Context, groupID string) ([]directory.User, error)
}

// Mailer sends one HTML email to a list of addresses. *mailer.Client
// implements it.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, htmlBody string) error
}

// Composer renders notification content. *notify.Composer implements it.
type Composer interface {
	Compose(b notify.Batch) (notify.Message, error)
}
