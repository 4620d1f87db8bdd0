package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/nao1215/scrubsnap/internal/model"
)

// SimpleWriter outputs the plain-text run summary printed to the terminal.
// It lists both mappings with their originals, so its output must be
// treated as sensitive as the source snapshot.
type SimpleWriter struct {
	baseWriter

	// showEmpty prints the findings section even when there are none.
	showEmpty bool

	// verbose adds per-rule substitution counts and finding advice.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.RunReport) (int, error) {
	var sb strings.Builder

	if report.ErrorMessage != "" {
		fmt.Fprintf(&sb, "Error: %s\n", report.ErrorMessage)
		return w.output.Write([]byte(sb.String()))
	}

	w.writeIDs(&sb, report)
	w.writeDestination(&sb, report)
	w.writeNames(&sb, report)
	w.writeSubstitutions(&sb, report)
	w.writeFindings(&sb, report)
	w.writeFooter(&sb, report)

	return w.output.Write([]byte(sb.String()))
}

func (w *SimpleWriter) writeIDs(sb *strings.Builder, report *model.RunReport) {
	fmt.Fprintf(sb, "Anonymized %d member IDs:\n", report.IDs.Len())
	for _, p := range report.IDs.Pairs() {
		fmt.Fprintf(sb, "  %s -> %s\n", p.Original, p.Replacement)
	}
}

func (w *SimpleWriter) writeDestination(sb *strings.Builder, report *model.RunReport) {
	if report.DryRun {
		fmt.Fprintf(sb, "Dry run: nothing written to %s\n", report.OutputPath)
		return
	}
	fmt.Fprintf(sb, "Anonymized HTML file written to: %s\n", report.OutputPath)
}

func (w *SimpleWriter) writeNames(sb *strings.Builder, report *model.RunReport) {
	fmt.Fprintf(sb, "Replaced %d unique names:\n", report.Names.Len())
	for _, p := range report.Names.Pairs() {
		fmt.Fprintf(sb, "  '%s' -> '%s'\n", p.Original, p.Replacement)
	}
}

func (w *SimpleWriter) writeSubstitutions(sb *strings.Builder, report *model.RunReport) {
	if !w.verbose {
		return
	}
	fmt.Fprintf(sb, "Identity pool: %d of %d used, %d extra draws\n",
		report.PoolUsed, report.PoolSize, report.PoolOverflow)
	fmt.Fprintf(sb, "Applied %d substitutions:\n", report.TotalSubstitutions())
	for _, s := range report.Substitutions {
		fmt.Fprintf(sb, "  %-22s %d\n", s.Rule, s.Count)
	}
}

func (w *SimpleWriter) writeFindings(sb *strings.Builder, report *model.RunReport) {
	if !report.HasFindings() {
		if w.showEmpty {
			sb.WriteString("\nNo findings\n")
		}
		return
	}

	fmt.Fprintf(sb, "\nFindings (%d):\n", len(report.Findings))
	for _, severity := range severityOrder {
		for _, f := range findingsBySeverity(report, severity) {
			fmt.Fprintf(sb, "  [%s] %s\n", severity.String(), f.Title)
			if f.Value != "" {
				fmt.Fprintf(sb, "    Value: %s\n", f.Value)
			}
			if f.Location != "" {
				fmt.Fprintf(sb, "    Location: %s\n", f.Location)
			}
			if w.verbose && f.Recommendation != "" {
				fmt.Fprintf(sb, "    Recommendation: %s\n", f.Recommendation)
			}
		}
	}
}

func (w *SimpleWriter) writeFooter(sb *strings.Builder, report *model.RunReport) {
	if report.DryRun {
		sb.WriteString("\nDry run complete!\n")
		return
	}
	sb.WriteString("\nAnonymization complete!\n")
	fmt.Fprintf(sb, "Original files remain untouched in: %s\n", filepath.Dir(report.InputPath))
	fmt.Fprintf(sb, "Anonymized files created in: %s\n", filepath.Dir(report.OutputPath))
}
