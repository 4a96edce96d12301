// Package backend provides the REST client for the attest batch backend.
//
// The backend stores batches, the documents linked to them and the recipients
// they are sent to. Every call is a single JSON request with no retries; error
// bodies are decoded by apierror so the backend's own message reaches the user.
//
// ENDPOINTS:
//   - POST /api/batches, PUT /api/batches/{id}: create and update batches
//   - GET /api/batches: list batches (post-create verification, CLI listing)
//   - POST/GET /api/batches/{id}/documents: link and read documents
//   - POST/GET /api/batches/{id}/recipients: link and read recipients
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/concave-dev/attest/internal/apierror"
	"github.com/concave-dev/attest/internal/httpclient"
	"github.com/go-resty/resty/v2"
)

// Client talks to the batch backend.
type Client struct {
	client  *resty.Client
	baseURL string
}

// New creates a backend client for baseURL (for example
// "http://localhost:3000").
func New(baseURL string, timeout time.Duration, userAgent string) *Client {
	return NewWithClient(baseURL, httpclient.New(httpclient.Options{
		BaseURL:   baseURL,
		Timeout:   timeout,
		UserAgent: userAgent,
		Name:      "backend",
	}))
}

// NewWithClient wraps an existing resty client. The client's base URL must
// already point at the backend.
func NewWithClient(baseURL string, client *resty.Client) *Client {
	return &Client{client: client, baseURL: baseURL}
}

// BaseURL returns the backend address this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CreateBatch creates a batch and returns its id. A success response without a
// recognizable id is an error.
func (c *Client) CreateBatch(ctx context.Context, in BatchInput) (string, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(in).
		Post("/api/batches")
	if err != nil {
		return "", apierror.Transport(err, fmt.Sprintf("failed to connect to backend at %s", c.baseURL))
	}
	if err := apierror.FromResponse(resp, "Failed to create batch"); err != nil {
		return "", err
	}

	var created CreatedBatch
	if err := decodeBody(resp.Body(), &created); err != nil {
		return "", fmt.Errorf("failed to decode create batch response: %w", err)
	}
	if created.ID == "" {
		return "", fmt.Errorf("batch created but response did not include an id")
	}
	return created.ID, nil
}

// UpdateBatch replaces the metadata of batch id.
func (c *Client) UpdateBatch(ctx context.Context, id string, in BatchInput) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", id).
		SetBody(in).
		Put("/api/batches/{id}")
	if err != nil {
		return apierror.Transport(err, fmt.Sprintf("failed to connect to backend at %s", c.baseURL))
	}
	return apierror.FromResponse(resp, "Failed to update batch")
}

// ListBatches returns every batch visible to the caller.
func (c *Client) ListBatches(ctx context.Context) ([]Batch, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		Get("/api/batches")
	if err != nil {
		return nil, apierror.Transport(err, fmt.Sprintf("failed to connect to backend at %s", c.baseURL))
	}
	if err := apierror.FromResponse(resp, "Failed to list batches"); err != nil {
		return nil, err
	}

	var list batchList
	if err := decodeBody(resp.Body(), &list); err != nil {
		return nil, fmt.Errorf("failed to decode batch list: %w", err)
	}
	return list, nil
}

// AddDocuments links documents to batch id.
func (c *Client) AddDocuments(ctx context.Context, id string, docs []Document) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", id).
		SetBody(map[string]any{"documents": docs}).
		Post("/api/batches/{id}/documents")
	if err != nil {
		return apierror.Transport(err, fmt.Sprintf("failed to connect to backend at %s", c.baseURL))
	}
	return apierror.FromResponse(resp, "Failed to add documents")
}

// ListDocuments returns the documents linked to batch id.
func (c *Client) ListDocuments(ctx context.Context, id string) ([]Document, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		Get("/api/batches/{id}/documents")
	if err != nil {
		return nil, apierror.Transport(err, fmt.Sprintf("failed to connect to backend at %s", c.baseURL))
	}
	if err := apierror.FromResponse(resp, "Failed to load documents"); err != nil {
		return nil, err
	}

	var list documentList
	if err := decodeBody(resp.Body(), &list); err != nil {
		return nil, fmt.Errorf("failed to decode document list: %w", err)
	}
	return list, nil
}

// AddRecipients links recipients to batch id.
func (c *Client) AddRecipients(ctx context.Context, id string, recipients []Recipient) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", id).
		SetBody(map[string]any{"recipients": recipients}).
		Post("/api/batches/{id}/recipients")
	if err != nil {
		return apierror.Transport(err, fmt.Sprintf("failed to connect to backend at %s", c.baseURL))
	}
	return apierror.FromResponse(resp, "Failed to add recipients")
}

// ListRecipients returns the recipients linked to batch id. Caches are
// bypassed so the result reflects writes made moments earlier.
func (c *Client) ListRecipients(ctx context.Context, id string) ([]Recipient, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Cache-Control", "no-cache").
		SetHeader("Pragma", "no-cache").
		SetPathParam("id", id).
		Get("/api/batches/{id}/recipients")
	if err != nil {
		return nil, apierror.Transport(err, fmt.Sprintf("failed to connect to backend at %s", c.baseURL))
	}
	if err := apierror.FromResponse(resp, "Failed to load recipients"); err != nil {
		return nil, err
	}

	var list recipientList
	if err := decodeBody(resp.Body(), &list); err != nil {
		return nil, fmt.Errorf("failed to decode recipient list: %w", err)
	}
	return list, nil
}

// decodeBody unmarshals a response body. An empty body leaves v unchanged.
func decodeBody(body []byte, v any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	return json.Unmarshal(body, v)
}
