package display

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/concave-dev/attest/internal/authflow"
	"github.com/concave-dev/attest/internal/batch"
	"github.com/concave-dev/attest/internal/toast"
	"github.com/dustin/go-humanize"
)

var toastStyles = map[toast.Level]lipgloss.Style{
	toast.Success: lipgloss.NewStyle().Foreground(lipgloss.Color("#60F281")),
	toast.Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE763")),
	toast.Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4473")),
	toast.Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("#42E7FF")),
}

var toastIcons = map[toast.Level]string{
	toast.Success: "✓",
	toast.Warning: "!",
	toast.Error:   "✗",
	toast.Info:    "•",
}

// FormatToast renders a toast as a single colored line.
func FormatToast(t toast.Toast) string {
	icon, ok := toastIcons[t.Level]
	if !ok {
		icon = toastIcons[toast.Info]
	}
	style, ok := toastStyles[t.Level]
	if !ok {
		style = toastStyles[toast.Info]
	}
	return style.Render(icon + " " + t.Message)
}

// ToastPrinter returns a sink that prints each toast to w as it arrives.
func ToastPrinter(w io.Writer) toast.Sink {
	return toast.Func(func(t toast.Toast) {
		fmt.Fprintln(w, FormatToast(t))
	})
}

// SubmitResult is the JSON document printed by batch submit.
type SubmitResult struct {
	Outcome *batch.Outcome `json:"outcome"`
	Toasts  []toast.Toast  `json:"toasts"`
}

// DisplayOutcome prints the result of a submission. In table mode the toasts
// were already printed live, so only the summary follows.
func DisplayOutcome(name string, outcome *batch.Outcome, toasts []toast.Toast) {
	writeOutcome(os.Stdout, name, outcome, toasts)
}

func writeOutcome(w io.Writer, name string, outcome *batch.Outcome, toasts []toast.Toast) {
	if outcome == nil {
		return
	}
	if jsonOutput() {
		writeJSON(w, SubmitResult{Outcome: outcome, Toasts: nonNil(toasts)})
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Batch:         %s\n", dash(outcome.BatchID))
	fmt.Fprintf(w, "Name:          %s\n", dash(name))
	fmt.Fprintf(w, "Status:        %s\n", outcome.Status)
	if outcome.BatchID != "" {
		fmt.Fprintf(w, "Action:        %s\n", outcome.Action)
	}
	fmt.Fprintf(w, "Documents:     %s added\n", humanize.Comma(int64(outcome.DocumentsAdded)))
	fmt.Fprintf(w, "Recipients:    %s added\n", humanize.Comma(int64(outcome.RecipientsAdded)))
	if outcome.NotificationsSent {
		fmt.Fprintf(w, "Notifications: sent to %s recipients\n", humanize.Comma(int64(outcome.NotifiedCount)))
	} else {
		fmt.Fprintln(w, "Notifications: not sent")
	}

	if len(outcome.Degradations) > 0 {
		fmt.Fprintln(w, "\nWarnings:")
		for _, d := range outcome.Degradations {
			fmt.Fprintf(w, "  %s: %s\n", d.Step, d.Message)
		}
	}
	if outcome.Error != "" {
		fmt.Fprintf(w, "\nError: %s\n", outcome.Error)
	}
}

// FlowResult is the JSON document printed by mfa and password commands.
type FlowResult struct {
	Email   string                `json:"email"`
	Step    authflow.Step         `json:"step"`
	Message string                `json:"message,omitempty"`
	Setup   *authflow.SetupResult `json:"setup,omitempty"`
}

// DisplayMFASetup prints the shared secret returned by MFA setup.
func DisplayMFASetup(result FlowResult) {
	writeMFASetup(os.Stdout, result)
}

func writeMFASetup(w io.Writer, result FlowResult) {
	if jsonOutput() {
		writeJSON(w, result)
		return
	}

	fmt.Fprintln(w, PageHeader("Two-factor authentication", result.Email))
	if result.Setup != nil {
		fmt.Fprintf(w, "Secret:      %s\n", dash(result.Setup.Secret))
		fmt.Fprintf(w, "OTPAuth URL: %s\n", dash(result.Setup.OTPAuthURL))
		if n := len(result.Setup.QRCode); n > 0 {
			fmt.Fprintf(w, "QR code:     data URL, %s (use --output=json to export)\n", humanize.IBytes(uint64(n)))
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Add the secret to your authenticator app, then run:\n")
	fmt.Fprintf(w, "  attestctl mfa verify --email=%s --code=CODE\n", result.Email)
}

// DisplayFlowResult prints the message that ends an mfa or password step.
func DisplayFlowResult(result FlowResult) {
	writeFlowResult(os.Stdout, result)
}

func writeFlowResult(w io.Writer, result FlowResult) {
	if jsonOutput() {
		writeJSON(w, result)
		return
	}
	fmt.Fprintln(w, FormatToast(toast.New(toast.Success, result.Message)))
}
