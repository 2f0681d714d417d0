// Package cli provides the cloudstub CLI commands.
package cli

import (
	"github.com/spf13/cobra"
)

// Version is stamped at build time via ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "cloudstub",
	Short: "In-memory emulator of hosted log, storage and function APIs",
	Long: `cloudstub is a test double for hosted cloud APIs.

It keeps log groups, log streams, log events, object listings and
function listings in memory, serves them over a JSON HTTP API, and
simulates the ingestion delay a real log pipeline shows between writing
an event and seeing it reflected in stream metadata.

State is loaded from fixture snapshots at startup and lost on exit;
nothing is persisted.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI and returns the command error, if any.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}
