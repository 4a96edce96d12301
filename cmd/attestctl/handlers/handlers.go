// Package handlers contains the RunE functions behind attestctl commands.
//
// Each handler sets up logging, builds the clients it needs from the global
// configuration, performs one operation against the backend and hands the
// result to the display package. Errors are returned to cobra, with a short
// hint when the backend could not be reached at all.
package handlers

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/concave-dev/attest/cmd/attestctl/config"
	"github.com/concave-dev/attest/internal/httpclient"
	"github.com/concave-dev/attest/internal/logging"
	"github.com/concave-dev/attest/internal/netutil"
	"github.com/spf13/cobra"
)

// commandContext returns the command's context with a fresh request id,
// cancelled on SIGINT or SIGTERM.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, id := httpclient.EnsureRequestID(ctx)
	logging.Debug("Request %s", logging.FormatRequestID(id))
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

// failed logs err and returns it, replacing transport errors with a hint
// about the backend.
func failed(action string, err error) error {
	if hint := netutil.Describe(err, config.Global.APIURL); hint != "" {
		logging.Error("Failed to %s: %v", action, err)
		return fmt.Errorf("failed to %s: %s", action, hint)
	}
	logging.Error("Failed to %s: %v", action, err)
	return err
}
