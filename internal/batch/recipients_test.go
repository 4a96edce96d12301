package batch

import (
	"slices"
	"testing"

	"github.com/concave-dev/attest/internal/directory"
)

func TestRecipientSet_OneEntryPerEmail(t *testing.T) {
	set := NewRecipientSet()
	set.AddUser(directory.User{DisplayName: "Ada Lovelace", Mail: "Ada@Example.com"}, "")
	set.AddUser(directory.User{DisplayName: "A. Lovelace", Mail: "  ada@example.com "}, "g-eng")
	set.AddUser(directory.User{DisplayName: "ADA", UserPrincipalName: "ADA@EXAMPLE.COM"}, "g-all")
	set.AddUser(directory.User{DisplayName: "Grace Hopper", Mail: "grace@example.com"}, "g-all")

	if set.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", set.Len())
	}

	ada, ok := set.Get("ADA@example.com")
	if !ok {
		t.Fatal("Get() did not find ada")
	}
	if ada.Email != "ada@example.com" {
		t.Errorf("Email = %q, want normalized", ada.Email)
	}
	if ada.DisplayName != "Ada Lovelace" {
		t.Errorf("DisplayName = %q, first seen should win", ada.DisplayName)
	}

	if got := Emails(set.List()); !slices.Equal(got, []string{"ada@example.com", "grace@example.com"}) {
		t.Errorf("Emails() = %v, want insertion order", got)
	}
}

func TestRecipientSet_GroupOriginsAccumulate(t *testing.T) {
	set := NewRecipientSet()
	u := directory.User{DisplayName: "Linus", Mail: "linus@example.com"}
	set.AddUser(u, "g-kernel")
	set.AddUser(u, "g-git")
	set.AddUser(u, "g-kernel")

	r, _ := set.Get("linus@example.com")
	if !slices.Equal(r.GroupIDs, []string{"g-kernel", "g-git"}) {
		t.Errorf("GroupIDs = %v, want both groups once each", r.GroupIDs)
	}
}

func TestRecipientSet_FillsEmptyProfileFields(t *testing.T) {
	set := NewRecipientSet()
	set.AddUser(directory.User{Mail: "ken@example.com", Department: "Research"}, "")
	set.AddUser(directory.User{DisplayName: "Ken", Mail: "ken@example.com", Department: "Sales", JobTitle: "Engineer", OfficeLocation: "Murray Hill"}, "g-1")

	r, _ := set.Get("ken@example.com")
	if r.DisplayName != "Ken" {
		t.Errorf("DisplayName = %q, empty name should be filled", r.DisplayName)
	}
	if r.Department != "Research" {
		t.Errorf("Department = %q, existing value should be kept", r.Department)
	}
	if r.JobTitle != "Engineer" || r.Location != "Murray Hill" {
		t.Errorf("profile = %+v, empty fields should be filled", r)
	}
}

func TestRecipientSet_SkipsUsersWithoutEmail(t *testing.T) {
	set := NewRecipientSet()
	if set.AddUser(directory.User{DisplayName: "Printer", UserPrincipalName: "printer01"}, "") {
		t.Error("AddUser() = true for user without email")
	}
	if set.Len() != 0 {
		t.Errorf("Len() = %d, want 0", set.Len())
	}
}

func TestNotificationTargets(t *testing.T) {
	all := []Recipient{{Email: "a@example.com"}, {Email: "b@example.com"}}

	tests := []struct {
		name string
		edit *EditContext
		want []string
	}{
		{"create notifies everyone", nil, []string{"a@example.com", "b@example.com"}},
		{"edit notifies only new", &EditContext{BatchID: "b", OriginalEmails: []string{"A@example.com"}}, []string{"b@example.com"}},
		{"edit with no new recipients notifies everyone", &EditContext{BatchID: "b", OriginalEmails: []string{"a@example.com", "B@EXAMPLE.COM"}}, []string{"a@example.com", "b@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Emails(notificationTargets(all, tt.edit)); !slices.Equal(got, tt.want) {
				t.Errorf("notificationTargets() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExcludeDocuments(t *testing.T) {
	docs := []Document{
		{Title: "A", URL: "https://docs.example.com/a.pdf"},
		{Title: "B", URL: "https://docs.example.com/b.pdf"},
	}

	got := excludeDocuments(docs, []string{" https://docs.example.com/a.pdf "})
	if len(got) != 1 || got[0].Title != "B" {
		t.Errorf("excludeDocuments() = %+v", got)
	}
	if got := excludeDocuments(docs, []string{"https://docs.example.com/a.pdf", "https://docs.example.com/b.pdf"}); len(got) != 0 {
		t.Errorf("excludeDocuments() = %+v, want none", got)
	}
}
