package handlers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/concave-dev/attest/cmd/attestctl/client"
	"github.com/concave-dev/attest/cmd/attestctl/config"
	"github.com/concave-dev/attest/cmd/attestctl/display"
	"github.com/concave-dev/attest/cmd/attestctl/utils"
	"github.com/concave-dev/attest/internal/backend"
	"github.com/concave-dev/attest/internal/batch"
	"github.com/concave-dev/attest/internal/logging"
	"github.com/concave-dev/attest/internal/toast"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// BatchLister lists stored batches.
type BatchLister interface {
	ListBatches(ctx context.Context) ([]backend.Batch, error)
}

// BatchReader reads batches and their linked recipients and documents.
type BatchReader interface {
	BatchLister
	batch.EditLoader
}

// HandleBatchSubmit handles batch submit. The form is read from --file; with
// --edit the named batch is updated and only new recipients and documents are
// linked. Toasts print as the submission progresses.
func HandleBatchSubmit(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	form, err := LoadForm(config.Batch.File)
	if err != nil {
		return err
	}
	name := strings.TrimSpace(form.Name)

	// JSON output carries the toasts in the result, so they only go to the
	// log while the submission runs.
	recorder := &toast.Recorder{}
	sink := toast.Multi(recorder, toast.Log{})
	if config.Global.Output != "json" {
		sink = toast.Multi(recorder, display.ToastPrinter(os.Stdout))
	}

	svc, err := client.CreateServices(sink)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	var edit *batch.EditContext
	if config.Batch.Edit != "" {
		edit, err = LoadEdit(ctx, svc.Backend, config.Batch.Edit)
		if err != nil {
			return failed("load batch for editing", err)
		}
		logging.Info("Editing batch %s: %d recipients and %d documents already linked",
			edit.BatchID, len(edit.OriginalEmails), len(edit.OriginalDocURLs))
	}

	logging.Info("Submitting batch '%s' to %s", name, config.Global.APIURL)
	outcome, err := svc.Submitter.Submit(ctx, form, edit)
	display.DisplayOutcome(name, outcome, recorder.Toasts())
	if err != nil {
		if batch.IsValidationError(err) {
			return err
		}
		return failed("submit batch", err)
	}
	return nil
}

// LoadEdit resolves identifier to a stored batch and loads what is already
// linked to it.
func LoadEdit(ctx context.Context, reader BatchReader, identifier string) (*batch.EditContext, error) {
	batches, err := reader.ListBatches(ctx)
	if err != nil {
		return nil, err
	}
	b, err := utils.ResolveBatch(batches, identifier)
	if err != nil {
		return nil, err
	}
	return batch.LoadEditContext(ctx, reader, b.ID)
}

// HandleBatchList handles batch ls
func HandleBatchList(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	svc, err := client.CreateServices(toast.Discard)
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()

	return utils.RunWithWatch(func() error {
		logging.Info("Fetching batches from %s", config.Global.APIURL)
		batches, err := svc.Backend.ListBatches(ctx)
		if err != nil {
			return failed("list batches", err)
		}
		display.DisplayBatches(batches)
		return nil
	}, config.Batch.Watch)
}

// HandleBatchRecipients handles batch recipients. In watch mode the view
// alternates between the recipients and documents tabs on every refresh.
func HandleBatchRecipients(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	svc, err := client.CreateServices(toast.Discard)
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()

	batches, err := svc.Backend.ListBatches(ctx)
	if err != nil {
		return failed("list batches", err)
	}
	b, err := utils.ResolveBatch(batches, args[0])
	if err != nil {
		return err
	}

	tab := display.TabRecipients
	if config.Batch.Documents {
		tab = display.TabDocuments
	}

	return utils.RunWithWatch(func() error {
		view, err := LoadRecipientsView(ctx, svc.Backend, *b)
		if err != nil {
			return failed(fmt.Sprintf("load batch %s", b.ID), err)
		}
		view.Tab = tab
		display.DisplayRecipients(*view)
		if config.Batch.Watch {
			tab = display.CycleTab(tab, 1, len(display.RecipientTabs))
		}
		return nil
	}, config.Batch.Watch)
}

// LoadRecipientsView reads a batch's recipients and documents concurrently.
func LoadRecipientsView(ctx context.Context, loader batch.EditLoader, b backend.Batch) (*display.RecipientsView, error) {
	view := &display.RecipientsView{Batch: b}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		view.Recipients, err = loader.ListRecipients(gctx, b.ID)
		return err
	})
	g.Go(func() error {
		var err error
		view.Documents, err = loader.ListDocuments(gctx, b.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return view, nil
}
