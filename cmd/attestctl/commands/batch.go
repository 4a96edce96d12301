package commands

import (
	"fmt"

	"github.com/concave-dev/attest/internal/logging"
	"github.com/spf13/cobra"
)

// Batch command (parent command for batch operations)
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Create, edit and inspect acknowledgement batches",
	Long: `Commands for managing document acknowledgement batches.

A batch links a set of documents to a set of recipients with a start and due
date. Recipients come from individually selected users and from the members
of selected directory groups; duplicates are merged by email address.`,
}

// Batch submit command
var batchSubmitCmd = &cobra.Command{
	Use:   "submit -f FORM.yaml [--edit=BATCH]",
	Short: "Create a batch, or update one with --edit",
	Long: `Submit a batch form.

The form names the batch, its dates, the selected users, groups and
documents, and whether recipients are emailed. Without --edit a new batch is
created. With --edit the batch is updated and only recipients and documents
not already linked to it are added; only those new recipients are emailed.`,
	Example: `  # Create a batch
  attestctl batch submit -f q3-policies.yaml

  # Read the form from stdin
  cat q3-policies.yaml | attestctl batch submit -f -

  # Update batch 42 (id, unique id prefix or exact name)
  attestctl batch submit -f q3-additions.yaml --edit 42`,
	Args: cobra.NoArgs,
	// RunE will be set by the main package that imports this
}

// Batch list command
var batchLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List batches",
	Example: `  # List batches, newest first
  attestctl batch ls

  # Include start dates and descriptions
  attestctl --verbose batch ls

  # Refresh every 2 seconds
  attestctl batch ls --watch`,
	Args: cobra.NoArgs,
	// RunE will be set by the main package that imports this
}

// Batch recipients command
var batchRecipientsCmd = &cobra.Command{
	Use:   "recipients BATCH",
	Short: "Show the recipients and documents linked to a batch",
	Long: `Show the recipients and documents linked to a batch.

BATCH is a batch id, a unique id prefix or an exact batch name. The view has
two tabs; --documents opens the documents tab and --watch alternates between
them on every refresh.`,
	Example: `  # Recipients of batch 42
  attestctl batch recipients 42

  # Documents of the batch named "Q3 Policies"
  attestctl batch recipients "Q3 Policies" --documents`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			cmd.Help()
			fmt.Println()
			logging.Error("Invalid arguments: expected 1 batch id or name, got %d", len(args))
			return fmt.Errorf("requires exactly 1 argument (batch id or name)")
		}
		return nil
	},
	// RunE will be set by the main package that imports this
}

// SetupBatchCommands wires the batch subcommands
func SetupBatchCommands() {
	batchCmd.AddCommand(batchSubmitCmd)
	batchCmd.AddCommand(batchLsCmd)
	batchCmd.AddCommand(batchRecipientsCmd)
}

// GetBatchCommands returns the batch subcommands for flag and handler setup
func GetBatchCommands() (*cobra.Command, *cobra.Command, *cobra.Command) {
	return batchSubmitCmd, batchLsCmd, batchRecipientsCmd
}
