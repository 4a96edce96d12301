package batch

import (
	"slices"
	"strings"

	"github.com/concave-dev/attest/internal/backend"
	"github.com/concave-dev/attest/internal/directory"
)

// Recipient is a person the batch is sent to, derived from the selected users
// and the members of the selected groups.
type Recipient struct {
	Email       string   `json:"email"`
	DisplayName string   `json:"displayName,omitempty"`
	GroupIDs    []string `json:"groupIds,omitempty"`
	Department  string   `json:"department,omitempty"`
	JobTitle    string   `json:"jobTitle,omitempty"`
	Location    string   `json:"location,omitempty"`
}

// NormalizeEmail returns the case-insensitive key for an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RecipientSet is an insertion-ordered set of recipients keyed by normalized
// email.
//
// Merging rules when the same address is added more than once:
//   - the first non-empty display name wins
//   - group ids accumulate, each recorded once
//   - empty profile fields are filled from later sightings
type RecipientSet struct {
	index map[string]int
	list  []Recipient
}

// NewRecipientSet returns an empty set.
func NewRecipientSet() *RecipientSet {
	return &RecipientSet{index: make(map[string]int)}
}

// AddUser adds a directory user. groupID is the group the user was found
// through, or "" for a directly selected user. Users without an address are
// ignored and reported as false.
func (s *RecipientSet) AddUser(u directory.User, groupID string) bool {
	key := NormalizeEmail(u.Email())
	if key == "" {
		return false
	}

	i, ok := s.index[key]
	if !ok {
		s.index[key] = len(s.list)
		s.list = append(s.list, Recipient{Email: key})
		i = len(s.list) - 1
	}

	r := &s.list[i]
	if r.DisplayName == "" {
		r.DisplayName = strings.TrimSpace(u.DisplayName)
	}
	if groupID != "" && !slices.Contains(r.GroupIDs, groupID) {
		r.GroupIDs = append(r.GroupIDs, groupID)
	}
	fillEmpty(&r.Department, u.Department)
	fillEmpty(&r.JobTitle, u.JobTitle)
	fillEmpty(&r.Location, u.OfficeLocation)
	return true
}

func fillEmpty(dst *string, v string) {
	if *dst == "" {
		*dst = strings.TrimSpace(v)
	}
}

// Len returns the number of distinct recipients.
func (s *RecipientSet) Len() int {
	return len(s.list)
}

// Get returns the recipient for email.
func (s *RecipientSet) Get(email string) (Recipient, bool) {
	i, ok := s.index[NormalizeEmail(email)]
	if !ok {
		return Recipient{}, false
	}
	return s.list[i], true
}

// List returns the recipients in insertion order.
func (s *RecipientSet) List() []Recipient {
	return slices.Clone(s.list)
}

// Emails returns the normalized addresses in insertion order.
func Emails(recipients []Recipient) []string {
	out := make([]string, len(recipients))
	for i, r := range recipients {
		out[i] = r.Email
	}
	return out
}

// excludeEmails returns the recipients whose address is not in original.
func excludeEmails(recipients []Recipient, original []string) []Recipient {
	seen := make(map[string]struct{}, len(original))
	for _, e := range original {
		seen[NormalizeEmail(e)] = struct{}{}
	}

	var out []Recipient
	for _, r := range recipients {
		if _, ok := seen[r.Email]; !ok {
			out = append(out, r)
		}
	}
	return out
}

// excludeDocuments returns the documents whose URL is not in original.
func excludeDocuments(docs []Document, original []string) []Document {
	seen := make(map[string]struct{}, len(original))
	for _, u := range original {
		seen[strings.TrimSpace(u)] = struct{}{}
	}

	var out []Document
	for _, d := range docs {
		if _, ok := seen[strings.TrimSpace(d.URL)]; !ok {
			out = append(out, d)
		}
	}
	return out
}

func (r Recipient) toBackend() backend.Recipient {
	return backend.Recipient{
		Email:       r.Email,
		DisplayName: r.DisplayName,
		Department:  r.Department,
		JobTitle:    r.JobTitle,
		Location:    r.Location,
		GroupIDs:    slices.Clone(r.GroupIDs),
	}
}
