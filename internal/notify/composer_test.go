package notify

import (
	"strings"
	"testing"
)

func TestCompose_Created(t *testing.T) {
	c := NewComposer("https://attest.example.com")
	msg, err := c.Compose(Batch{
		Name:        "Q3 policies",
		Description: "Quarterly policy refresh",
		StartDate:   "2026-07-01",
		DueDate:     "2026-07-31",
		Action:      ActionCreated,
		Documents: []Document{
			{Title: "Handbook", URL: "https://docs.example.com/handbook.pdf", Version: "3", RequiresSignature: true},
			{Title: "Code of conduct", URL: "https://docs.example.com/coc.pdf"},
		},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	if msg.Subject != "[Attest] Documents to acknowledge: Q3 policies" {
		t.Errorf("Subject = %q", msg.Subject)
	}
	for _, want := range []string{
		"Quarterly policy refresh",
		"<strong>Due:</strong> 2026-07-31",
		"2 documents, 1 requiring your signature",
		`<a href="https://docs.example.com/handbook.pdf">Handbook</a> (v3)`,
		`<a href="https://attest.example.com">Attest</a>`,
	} {
		if !strings.Contains(msg.HTMLBody, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestCompose_UpdatedSingleDocument(t *testing.T) {
	c := &Composer{}
	msg, err := c.Compose(Batch{
		Name:      "Onboarding",
		Action:    ActionUpdated,
		Documents: []Document{{Title: "Laptop policy", URL: "https://docs.example.com/laptop.pdf"}},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	if msg.Subject != "[Attest] Batch updated: Onboarding" {
		t.Errorf("Subject = %q", msg.Subject)
	}
	if !strings.Contains(msg.HTMLBody, "1 document:") {
		t.Errorf("body should use singular noun: %s", msg.HTMLBody)
	}
	if strings.Contains(msg.HTMLBody, "Due:") {
		t.Error("body should omit dates when none are set")
	}
}

func TestCompose_EscapesContent(t *testing.T) {
	msg, err := NewComposer("").Compose(Batch{
		Name:        "Policies",
		Description: `<script>alert("x")</script>`,
		Documents:   []Document{{Title: "A & B", URL: "javascript:alert(1)"}},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	if strings.Contains(msg.HTMLBody, "<script>") {
		t.Error("description was not escaped")
	}
	if strings.Contains(msg.HTMLBody, `href="javascript:`) {
		t.Error("unsafe URL was not sanitized")
	}
	if !strings.Contains(msg.HTMLBody, "A &amp; B") {
		t.Error("title was not escaped")
	}
}
