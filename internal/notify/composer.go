// Package notify renders the email sent to batch recipients when a batch is
// created or updated.
package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/dustin/go-humanize/english"
)

// Action says whether a batch was just created or updated.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
)

// Document is a document listed in the notification.
type Document struct {
	Title             string
	URL               string
	Version           string
	RequiresSignature bool
}

// Batch is the batch metadata shown in the notification.
type Batch struct {
	Name        string
	Description string
	StartDate   string
	DueDate     string
	Documents   []Document
	Action      Action
}

// Message is a rendered notification.
type Message struct {
	Subject  string
	HTMLBody string
}

// Composer renders notifications.
type Composer struct {
	// AppName appears in the subject and the footer.
	AppName string

	// AppURL is linked from the footer when set.
	AppURL string
}

// NewComposer returns a composer with the default product name.
func NewComposer(appURL string) *Composer {
	return &Composer{AppName: "Attest", AppURL: appURL}
}

type templateData struct {
	AppName      string
	AppURL       string
	Heading      string
	Description  string
	StartDate    string
	DueDate      string
	Documents    []Document
	DocumentNoun string
	SignCount    int
}

var notificationTemplate = template.Must(template.New("notification").Parse(notificationHTML))

// Compose renders the subject and HTML body for b.
func (c *Composer) Compose(b Batch) (Message, error) {
	appName := c.AppName
	if appName == "" {
		appName = "Attest"
	}

	name := strings.TrimSpace(b.Name)
	subject := fmt.Sprintf("[%s] Documents to acknowledge: %s", appName, name)
	heading := fmt.Sprintf("You have been asked to acknowledge %q", name)
	if b.Action == ActionUpdated {
		subject = fmt.Sprintf("[%s] Batch updated: %s", appName, name)
		heading = fmt.Sprintf("%q has been updated", name)
	}

	signCount := 0
	for _, d := range b.Documents {
		if d.RequiresSignature {
			signCount++
		}
	}

	data := templateData{
		AppName:      appName,
		AppURL:       c.AppURL,
		Heading:      heading,
		Description:  strings.TrimSpace(b.Description),
		StartDate:    b.StartDate,
		DueDate:      b.DueDate,
		Documents:    b.Documents,
		DocumentNoun: english.PluralWord(len(b.Documents), "document", ""),
		SignCount:    signCount,
	}

	var buf bytes.Buffer
	if err := notificationTemplate.Execute(&buf, data); err != nil {
		return Message{}, fmt.Errorf("failed to render notification: %w", err)
	}
	return Message{Subject: subject, HTMLBody: buf.String()}, nil
}

const notificationHTML = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Heading}}</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h1 style="color: #2563eb; font-size: 20px;">{{.Heading}}</h1>
        {{- if .Description}}
        <p>{{.Description}}</p>
        {{- end}}
        {{- if or .StartDate .DueDate}}
        <p>
            {{- if .StartDate}}<strong>Opens:</strong> {{.StartDate}}<br>{{end}}
            {{- if .DueDate}}<strong>Due:</strong> {{.DueDate}}{{end}}
        </p>
        {{- end}}
        <p>{{len .Documents}} {{.DocumentNoun}}{{if .SignCount}}, {{.SignCount}} requiring your signature{{end}}:</p>
        <ul>
        {{- range .Documents}}
            <li><a href="{{.URL}}">{{.Title}}</a>{{if .Version}} (v{{.Version}}){{end}}{{if .RequiresSignature}} &mdash; signature required{{end}}</li>
        {{- end}}
        </ul>
        <hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">
        <p style="color: #999; font-size: 12px;">
            Sent by {{if .AppURL}}<a href="{{.AppURL}}">{{.AppName}}</a>{{else}}{{.AppName}}{{end}}.
        </p>
    </div>
</body>
</html>
`
