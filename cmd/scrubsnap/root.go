package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for scrubsnap.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrubsnap",
		Short: "Anonymize saved HTML snapshots of member pages",
		Long: `scrubsnap produces a sanitized copy of a saved HTML page and its "_files"
asset directory. Real member names, member IDs, the team name, and the
organization path segment are replaced with consistent synthetic values.

The original snapshot is never modified. The same input and seed always
produce the same output.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
