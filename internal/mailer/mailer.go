// Package mailer sends HTML email through the directory service's sendMail
// endpoint, authenticated with the same client-credentials token used for
// group expansion.
package mailer

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/concave-dev/attest/internal/apierror"
	"github.com/concave-dev/attest/internal/directory"
	"github.com/concave-dev/attest/internal/httpclient"
	"github.com/go-resty/resty/v2"
)

type emailAddress struct {
	Address string `json:"address"`
}

type recipient struct {
	EmailAddress emailAddress `json:"emailAddress"`
}

type itemBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type message struct {
	Subject      string      `json:"subject"`
	Body         itemBody    `json:"body"`
	ToRecipients []recipient `json:"toRecipients"`
}

type sendMailRequest struct {
	Message         message `json:"message"`
	SaveToSentItems bool    `json:"saveToSentItems"`
}

// Client sends mail on behalf of a fixed sender mailbox.
type Client struct {
	client   *resty.Client
	graphURL string
	sender   string
	tokens   directory.TokenSource
}

// New creates a mail client sending as sender.
func New(graphURL, sender string, tokens directory.TokenSource, timeout time.Duration, userAgent string) *Client {
	return NewWithClient(graphURL, sender, tokens, httpclient.New(httpclient.Options{
		Timeout:   timeout,
		UserAgent: userAgent,
		Name:      "mailer",
	}))
}

// NewWithClient wraps an existing resty client.
func NewWithClient(graphURL, sender string, tokens directory.TokenSource, client *resty.Client) *Client {
	return &Client{
		client:   client,
		graphURL: strings.TrimRight(graphURL, "/"),
		sender:   sender,
		tokens:   tokens,
	}
}

// Send delivers one HTML message to every address in to. The message is sent
// once with all addresses on the To line.
func (c *Client) Send(ctx context.Context, to []string, subject, htmlBody string) error {
	if c.sender == "" {
		return fmt.Errorf("mail sender is not configured")
	}

	recipients := make([]recipient, 0, len(to))
	for _, addr := range to {
		if addr = strings.TrimSpace(addr); addr != "" {
			recipients = append(recipients, recipient{EmailAddress: emailAddress{Address: addr}})
		}
	}
	if len(recipients) == 0 {
		return fmt.Errorf("no recipients to send to")
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("failed to get mail token: %w", err)
	}

	body := sendMailRequest{
		Message: message{
			Subject:      subject,
			Body:         itemBody{ContentType: "HTML", Content: htmlBody},
			ToRecipients: recipients,
		},
		SaveToSentItems: true,
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(fmt.Sprintf("%s/users/%s/sendMail", c.graphURL, url.PathEscape(c.sender)))
	if err != nil {
		return apierror.Transport(err, "failed to reach mail service")
	}
	return apierror.FromResponse(resp, "Failed to send notification email")
}
