package batch

import (
	"context"
	"fmt"
	"strings"

	"github.com/concave-dev/attest/internal/backend"
	"golang.org/x/sync/errgroup"
)

// EditLoader reads what is already linked to a batch.
type EditLoader interface {
	ListRecipients(ctx context.Context, id string) ([]backend.Recipient, error)
	ListDocuments(ctx context.Context, id string) ([]backend.Document, error)
}

// LoadEditContext builds the EditContext for batch id from its currently
// linked recipients and documents. Both reads run concurrently; either
// failing fails the load, since editing against a partial original set would
// re-send existing links.
func LoadEditContext(ctx context.Context, loader EditLoader, id string) (*EditContext, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("batch id is required")
	}

	var (
		recipients []backend.Recipient
		documents  []backend.Document
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		recipients, err = loader.ListRecipients(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to load recipients of batch %s: %w", id, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		documents, err = loader.ListDocuments(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to load documents of batch %s: %w", id, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	edit := &EditContext{
		BatchID:         id,
		OriginalEmails:  make([]string, 0, len(recipients)),
		OriginalDocURLs: make([]string, 0, len(documents)),
	}
	for _, r := range recipients {
		if e := NormalizeEmail(r.Email); e != "" {
			edit.OriginalEmails = append(edit.OriginalEmails, e)
		}
	}
	for _, d := range documents {
		if u := strings.TrimSpace(d.URL); u != "" {
			edit.OriginalDocURLs = append(edit.OriginalDocURLs, u)
		}
	}
	return edit, nil
}
