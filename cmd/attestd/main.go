// Package main implements the attest gateway daemon (attestd).
package main

import (
	"os"

	"github.com/concave-dev/attest/cmd/attestd/commands"
)

func init() {
	commands.SetupCommands()
}

// Main entry point
func main() {
	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
