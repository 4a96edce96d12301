// Package directory is the client for the organization directory (a
// Graph-style REST API). attest uses it to expand selected groups into their
// member users so each member becomes a batch recipient.
//
// Group listings are paged: each page may carry an "@odata.nextLink" with the
// absolute URL of the next page, which is followed until absent.
package directory

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/concave-dev/attest/internal/apierror"
	"github.com/concave-dev/attest/internal/httpclient"
	"github.com/go-resty/resty/v2"
)

// memberFields are the user properties requested for group members.
const memberFields = "id,displayName,mail,userPrincipalName,department,jobTitle,officeLocation"

// maxPages bounds nextLink following.
const maxPages = 100

// User is a directory user.
type User struct {
	ID                string `json:"id" yaml:"id"`
	DisplayName       string `json:"displayName" yaml:"displayName"`
	Mail              string `json:"mail" yaml:"mail"`
	UserPrincipalName string `json:"userPrincipalName,omitempty" yaml:"userPrincipalName,omitempty"`
	Department        string `json:"department,omitempty" yaml:"department,omitempty"`
	JobTitle          string `json:"jobTitle,omitempty" yaml:"jobTitle,omitempty"`
	OfficeLocation    string `json:"officeLocation,omitempty" yaml:"officeLocation,omitempty"`
}

// Email returns the user's mail address, falling back to the user principal
// name, which is an address for most accounts.
func (u User) Email() string {
	if m := strings.TrimSpace(u.Mail); m != "" {
		return m
	}
	if upn := strings.TrimSpace(u.UserPrincipalName); strings.Contains(upn, "@") {
		return upn
	}
	return ""
}

// Group is a directory group.
type Group struct {
	ID          string `json:"id" yaml:"id"`
	DisplayName string `json:"displayName" yaml:"displayName"`
	Mail        string `json:"mail,omitempty" yaml:"mail,omitempty"`
}

type memberPage struct {
	Value    []member `json:"value"`
	NextLink string   `json:"@odata.nextLink"`
}

type member struct {
	User
	ODataType string `json:"@odata.type"`
}

// Client lists group members.
type Client struct {
	client   *resty.Client
	graphURL string
	tokens   TokenSource
}

// New creates a directory client for graphURL authenticated by tokens.
func New(graphURL string, tokens TokenSource, timeout time.Duration, userAgent string) *Client {
	return NewWithClient(graphURL, tokens, httpclient.New(httpclient.Options{
		Timeout:   timeout,
		UserAgent: userAgent,
		Name:      "directory",
	}))
}

// NewWithClient wraps an existing resty client.
func NewWithClient(graphURL string, tokens TokenSource, client *resty.Client) *Client {
	return &Client{client: client, graphURL: strings.TrimRight(graphURL, "/"), tokens: tokens}
}

// GroupMembers returns the users in group groupID, following every page.
// Nested groups, devices and other non-user members are skipped, as are users
// without an email address.
func (c *Client) GroupMembers(ctx context.Context, groupID string) ([]User, error) {
	if strings.TrimSpace(groupID) == "" {
		return nil, fmt.Errorf("group id is required")
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get directory token: %w", err)
	}

	next := fmt.Sprintf("%s/groups/%s/members?$select=%s", c.graphURL, url.PathEscape(groupID), memberFields)
	var users []User

	for page := 0; next != ""; page++ {
		if page >= maxPages {
			return nil, fmt.Errorf("group %s has more than %d pages of members", groupID, maxPages)
		}

		var result memberPage
		resp, err := c.client.R().
			SetContext(ctx).
			SetAuthToken(token).
			SetResult(&result).
			Get(next)
		if err != nil {
			return nil, apierror.Transport(err, fmt.Sprintf("failed to list members of group %s", groupID))
		}
		if err := apierror.FromResponse(resp, fmt.Sprintf("Failed to list members of group %s", groupID)); err != nil {
			return nil, err
		}

		for _, m := range result.Value {
			if m.ODataType != "" && m.ODataType != "#microsoft.graph.user" {
				continue
			}
			if m.User.Email() == "" {
				continue
			}
			users = append(users, m.User)
		}
		next = result.NextLink
	}

	return users, nil
}
