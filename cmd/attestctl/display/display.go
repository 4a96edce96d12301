package display

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/concave-dev/attest/cmd/attestctl/config"
	"github.com/concave-dev/attest/cmd/attestctl/utils"
	"github.com/concave-dev/attest/internal/backend"
	"github.com/concave-dev/attest/internal/logging"
	internalutils "github.com/concave-dev/attest/internal/utils"
	"github.com/concave-dev/attest/internal/validate"
	"github.com/dustin/go-humanize"
)

// RecipientTabs are the sections of the batch recipients view.
var RecipientTabs = []string{"Recipients", "Documents"}

const (
	TabRecipients = 0
	TabDocuments  = 1
)

func jsonOutput() bool {
	return config.Global.Output == "json"
}

// writeJSON encodes v indented, the way every --output=json view does.
func writeJSON(w io.Writer, v any) {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		logging.Error("Failed to encode JSON: %v", err)
		fmt.Fprintln(w, "Error encoding JSON output")
	}
}

// FormatDue renders a YYYY-MM-DD date with its distance from now, e.g.
// "2026-10-20 (2 days from now)". Unparseable dates are returned as is and
// an empty date becomes "-".
func FormatDue(date string, now time.Time) string {
	if date == "" {
		return "-"
	}
	t, err := time.ParseInLocation(validate.DateLayout, date, now.Location())
	if err != nil {
		return date
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if t.Equal(today) {
		return date + " (today)"
	}
	return fmt.Sprintf("%s (%s)", date, humanize.RelTime(t, today, "ago", "from now"))
}

// FormatCreated renders an RFC 3339 timestamp as an age such as "3d".
func FormatCreated(created string, now time.Time) string {
	if created == "" {
		return "-"
	}
	t, err := time.Parse(time.RFC3339, created)
	if err != nil {
		return created
	}
	return utils.FormatDuration(now.Sub(t))
}

// DisplayBatches prints stored batches, newest id first.
func DisplayBatches(batches []backend.Batch) {
	writeBatches(os.Stdout, batches, time.Now())
}

func writeBatches(w io.Writer, batches []backend.Batch, now time.Time) {
	if len(batches) == 0 {
		if jsonOutput() {
			fmt.Fprintln(w, "[]")
		} else {
			fmt.Fprintln(w, "No batches found")
		}
		return
	}

	sorted := make([]backend.Batch, len(batches))
	copy(sorted, batches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return idLess(sorted[j].ID, sorted[i].ID)
	})

	if jsonOutput() {
		writeJSON(w, sorted)
		return
	}

	fmt.Fprintln(w, PageHeader("Batches",
		fmt.Sprintf("%s batches at %s", humanize.Comma(int64(len(sorted))), config.Global.APIURL)))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	if config.Global.Verbose {
		fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tSTART\tDUE\tCREATED\tDESCRIPTION")
	} else {
		fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tDUE\tCREATED")
	}
	for _, b := range sorted {
		status := b.Status
		if status == "" {
			status = "-"
		}
		if config.Global.Verbose {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				b.ID, b.Name, status, dash(b.StartDate), FormatDue(b.DueDate, now),
				FormatCreated(b.CreatedAt, now), truncate(b.Description, 40))
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			internalutils.TruncateIDSafe(b.ID), b.Name, status, FormatDue(b.DueDate, now),
			FormatCreated(b.CreatedAt, now))
	}
}

// idLess orders numeric ids numerically and everything else lexically.
func idLess(a, b string) bool {
	if len(a) != len(b) && isDigits(a) && isDigits(b) {
		return len(a) < len(b)
	}
	return a < b
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// RecipientsView is one render of the batch recipients screen.
type RecipientsView struct {
	Batch      backend.Batch
	Recipients []backend.Recipient
	Documents  []backend.Document
	Tab        int
}

// DisplayRecipients prints the active tab of the recipients view.
func DisplayRecipients(view RecipientsView) {
	writeRecipients(os.Stdout, view)
}

func writeRecipients(w io.Writer, view RecipientsView) {
	tab := CycleTab(view.Tab, 0, len(RecipientTabs))

	if jsonOutput() {
		if tab == TabDocuments {
			writeJSON(w, nonNil(view.Documents))
		} else {
			writeJSON(w, nonNil(view.Recipients))
		}
		return
	}

	subtitle := fmt.Sprintf("Batch %s: %s recipients, %s documents",
		view.Batch.ID, humanize.Comma(int64(len(view.Recipients))), humanize.Comma(int64(len(view.Documents))))
	title := view.Batch.Name
	if title == "" {
		title = "Batch " + view.Batch.ID
	}
	fmt.Fprintln(w, PageHeader(title, subtitle))
	fmt.Fprintln(w, SectionStrip(RecipientTabs, tab))
	fmt.Fprintln(w)

	if tab == TabDocuments {
		writeDocumentTable(w, view.Documents)
		return
	}
	writeRecipientTable(w, view.Recipients)
}

func writeRecipientTable(w io.Writer, recipients []backend.Recipient) {
	if len(recipients) == 0 {
		fmt.Fprintln(w, "No recipients found")
		return
	}

	sorted := make([]backend.Recipient, len(recipients))
	copy(sorted, recipients)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Email) < strings.ToLower(sorted[j].Email)
	})

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	if config.Global.Verbose {
		fmt.Fprintln(tw, "EMAIL\tNAME\tDEPARTMENT\tJOB TITLE\tLOCATION\tGROUPS")
	} else {
		fmt.Fprintln(tw, "EMAIL\tNAME\tDEPARTMENT\tGROUPS")
	}
	for _, r := range sorted {
		groups := "-"
		if n := len(r.GroupIDs); n > 0 {
			groups = humanize.Comma(int64(n))
		}
		if config.Global.Verbose {
			if len(r.GroupIDs) > 0 {
				groups = strings.Join(r.GroupIDs, ",")
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				r.Email, dash(r.DisplayName), dash(r.Department), dash(r.JobTitle), dash(r.Location), groups)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Email, dash(r.DisplayName), dash(r.Department), groups)
	}
}

func writeDocumentTable(w io.Writer, documents []backend.Document) {
	if len(documents) == 0 {
		fmt.Fprintln(w, "No documents found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "TITLE\tVERSION\tSIGNATURE\tURL")
	for _, d := range documents {
		signature := "no"
		if d.RequiresSignature {
			signature = "required"
		}
		url := d.URL
		if !config.Global.Verbose {
			url = truncate(url, 60)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.Title, dash(d.Version), signature, url)
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
