package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/nao1215/scrubsnap/internal/config"
	"github.com/nao1215/scrubsnap/internal/database"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List earlier anonymization runs",
		Long: `History lists the runs recorded in the history database, newest first.

Each run shows its date, counts, findings, and the SHA3-256 digest of the
input document. Real names and member IDs are never recorded.

Examples:
  # List the last 20 runs
  scrubsnap history

  # List every run as JSON
  scrubsnap history -n 0 --json

  # Show one run in full
  scrubsnap history --id 3`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 20,
		"Maximum number of runs to list (0 lists all)")
	cmd.Flags().Int64("id", 0,
		"Show only the run with this ID")
	cmd.Flags().BoolP("json", "j", false,
		"Output history in JSON format")
	cmd.Flags().String("history-dir", config.XDGDataDir(),
		"Directory of the history database")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	id, err := cmd.Flags().GetInt64("id")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	dbDir, err := cmd.Flags().GetString("history-dir")
	if err != nil {
		return err
	}

	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	if id > 0 {
		run, err := db.GetRun(context.Background(), id)
		if err != nil {
			return err
		}
		if jsonOutput {
			return encodeJSON(cmd.OutOrStdout(), run)
		}
		printRun(cmd.OutOrStdout(), run)
		return nil
	}

	runs, err := db.ListRuns(context.Background(), limit)
	if err != nil {
		return err
	}

	if jsonOutput {
		return encodeJSON(cmd.OutOrStdout(), runs)
	}

	printHistory(cmd.OutOrStdout(), runs)
	return nil
}

// printHistory writes runs as a plain-text table.
func printHistory(w io.Writer, runs []database.RunRecord) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded")
		return
	}

	fmt.Fprintf(w, "Anonymization history (%d runs):\n\n", len(runs))
	fmt.Fprintf(w, "  %-6s  %-20s  %-6s  %-6s  %-8s  %-8s  %s\n",
		"ID", "Date", "Names", "IDs", "Findings", "Mode", "Input digest")

	for _, r := range runs {
		mode := "write"
		if r.DryRun {
			mode = "dry-run"
		}
		fmt.Fprintf(w, "  %-6d  %-20s  %-6d  %-6d  %-8d  %-8s  %s\n",
			r.ID,
			r.Timestamp.Local().Format("2006-01-02 15:04:05"),
			r.NameCount,
			r.IDCount,
			r.FindingCount,
			mode,
			shortDigest(r.InputDigest),
		)
	}
}

// printRun writes every recorded field of one run.
func printRun(w io.Writer, r *database.RunRecord) {
	mode := "write"
	if r.DryRun {
		mode = "dry-run"
	}

	fmt.Fprintf(w, "Run %d\n\n", r.ID)
	fmt.Fprintf(w, "  Date:           %s\n", r.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "  Mode:           %s\n", mode)
	fmt.Fprintf(w, "  Input:          %s\n", r.InputPath)
	fmt.Fprintf(w, "  Output:         %s\n", r.OutputPath)
	fmt.Fprintf(w, "  Input digest:   %s\n", orDash(r.InputDigest))
	fmt.Fprintf(w, "  Output digest:  %s\n", orDash(r.OutputDigest))
	fmt.Fprintf(w, "  Names:          %d\n", r.NameCount)
	fmt.Fprintf(w, "  Member IDs:     %d\n", r.IDCount)
	fmt.Fprintf(w, "  Substitutions:  %d\n", r.SubstitutionCount)
	fmt.Fprintf(w, "  Findings:       %d\n", r.FindingCount)
	for _, severity := range []string{"critical", "high", "medium", "low", "info"} {
		if n := r.RiskSummary[severity]; n > 0 {
			fmt.Fprintf(w, "    %-12s  %d\n", severity, n)
		}
	}
}

func encodeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// shortDigest returns the first 12 characters of a hex digest.
func shortDigest(digest string) string {
	if len(digest) > 12 {
		return digest[:12]
	}
	if digest == "" {
		return "-"
	}
	return digest
}
