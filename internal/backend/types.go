package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// StatusActive is the status new and edited batches are saved with.
const StatusActive = "active"

// BatchInput is the body of batch create and update calls.
type BatchInput struct {
	Name        string `json:"name"`
	StartDate   string `json:"startDate"`
	DueDate     string `json:"dueDate"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// Batch is a stored batch as returned by the list endpoint.
type Batch struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	StartDate   string `json:"startDate,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// UnmarshalJSON decodes a batch, normalizing its id the same way as
// CreatedBatch.
func (b *Batch) UnmarshalJSON(data []byte) error {
	type plain Batch
	var p struct {
		plain
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*b = Batch(p.plain)

	id, err := extractID(data)
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

// Document is a document linked to a batch.
type Document struct {
	Title             string `json:"title"`
	URL               string `json:"url"`
	Version           string `json:"version,omitempty"`
	RequiresSignature bool   `json:"requiresSignature"`
	DriveID           string `json:"driveId,omitempty"`
	ItemID            string `json:"itemId,omitempty"`
}

// Recipient is a person a batch is sent to.
type Recipient struct {
	Email       string   `json:"email"`
	DisplayName string   `json:"displayName,omitempty"`
	Department  string   `json:"department,omitempty"`
	JobTitle    string   `json:"jobTitle,omitempty"`
	Location    string   `json:"location,omitempty"`
	GroupIDs    []string `json:"groupIds,omitempty"`
}

// CreatedBatch is the response of POST /api/batches. The backend has returned
// the new id under several names over time; UnmarshalJSON accepts all of them
// and exposes a single string ID.
type CreatedBatch struct {
	ID string
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *CreatedBatch) UnmarshalJSON(data []byte) error {
	id, err := extractID(data)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

// idFields lists accepted id field names in priority order.
var idFields = []string{"id", "batchId", "batch_id", "_id"}

// extractID finds the batch id in a JSON object: a top-level id field, or the
// same fields under "data". Numeric ids are rendered in decimal. A body without
// any id yields "" and no error; callers decide whether that is fatal.
func extractID(data []byte) (string, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return "", fmt.Errorf("decode batch: %w", err)
	}

	if id := idFrom(fields); id != "" {
		return id, nil
	}

	if raw, ok := fields["data"]; ok {
		var nested map[string]json.RawMessage
		if err := json.Unmarshal(raw, &nested); err == nil {
			return idFrom(nested), nil
		}
	}
	return "", nil
}

func idFrom(fields map[string]json.RawMessage) string {
	for _, key := range idFields {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		if id := scalarString(raw); id != "" {
			return id
		}
	}
	return ""
}

// scalarString renders a JSON string or number as a trimmed string.
func scalarString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&n); err == nil {
		if i, err := n.Int64(); err == nil {
			return strconv.FormatInt(i, 10)
		}
		return n.String()
	}
	return ""
}

// batchList accepts the list endpoint's three shapes: a bare array,
// {"batches": [...]} or {"data": [...]}.
type batchList []Batch

func (l *batchList) UnmarshalJSON(data []byte) error {
	return decodeList(data, "batches", (*[]Batch)(l))
}

// documentList accepts [...] or {"documents": [...]} or {"data": [...]}.
type documentList []Document

func (l *documentList) UnmarshalJSON(data []byte) error {
	return decodeList(data, "documents", (*[]Document)(l))
}

// recipientList accepts [...] or {"recipients": [...]} or {"data": [...]}.
type recipientList []Recipient

func (l *recipientList) UnmarshalJSON(data []byte) error {
	return decodeList(data, "recipients", (*[]Recipient)(l))
}

func decodeList[T any](data []byte, key string, out *[]T) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, out)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for _, k := range []string{key, "data"} {
		if raw, ok := fields[k]; ok {
			return json.Unmarshal(raw, out)
		}
	}
	*out = nil
	return nil
}
