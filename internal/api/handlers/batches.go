package handlers

import (
	"context"
	"net/http"

	"github.com/concave-dev/attest/internal/batch"
	"github.com/concave-dev/attest/internal/logging"
	"github.com/concave-dev/attest/internal/toast"
	"github.com/gin-gonic/gin"
)

// EditRequest identifies the batch being edited. When both original lists
// are omitted the gateway loads them from the backend.
type EditRequest struct {
	BatchID         string   `json:"batchId" binding:"required"`
	OriginalEmails  []string `json:"originalEmails,omitempty"`
	OriginalDocURLs []string `json:"originalDocUrls,omitempty"`
}

// Represents a batch submission request
type SubmitBatchRequest struct {
	Form batch.Form   `json:"form"`
	Edit *EditRequest `json:"edit,omitempty"`
}

// Represents a batch submission response. Form is the editor state after the
// submission: cleared on success, unchanged otherwise.
type SubmitBatchResponse struct {
	Outcome *batch.Outcome `json:"outcome"`
	Toasts  []toast.Toast  `json:"toasts"`
	Form    batch.Form     `json:"form"`
	Error   string         `json:"error,omitempty"`
}

// HandleSubmitBatch runs one batch submission and returns its outcome with
// every toast it emitted. A created batch answers 201, an updated one 200.
func HandleSubmitBatch(submitter *batch.Submitter, loader batch.EditLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SubmitBatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, err)
			return
		}

		ctx := c.Request.Context()
		edit, err := resolveEdit(ctx, loader, req.Edit)
		if err != nil {
			logging.Warn("Failed to load edit context for batch %s: %v",
				logging.FormatBatchID(req.Edit.BatchID), err)
			respondError(c, err)
			return
		}

		recorder := &toast.Recorder{}
		outcome, err := submitter.WithSink(toast.Multi(recorder, toast.Log{})).Submit(ctx, &req.Form, edit)

		response := SubmitBatchResponse{
			Outcome: outcome,
			Toasts:  recorder.Toasts(),
			Form:    req.Form,
		}
		if err != nil {
			response.Error = outcome.Error
			c.JSON(StatusFor(err), response)
			return
		}

		status := http.StatusOK
		if edit == nil {
			status = http.StatusCreated
		}
		c.JSON(status, response)
	}
}

// resolveEdit turns an EditRequest into the submitter's EditContext, fetching
// the originals when the caller did not send them.
func resolveEdit(ctx context.Context, loader batch.EditLoader, req *EditRequest) (*batch.EditContext, error) {
	if req == nil {
		return nil, nil
	}
	if req.OriginalEmails == nil && req.OriginalDocURLs == nil {
		return batch.LoadEditContext(ctx, loader, req.BatchID)
	}
	return &batch.EditContext{
		BatchID:         req.BatchID,
		OriginalEmails:  req.OriginalEmails,
		OriginalDocURLs: req.OriginalDocURLs,
	}, nil
}
