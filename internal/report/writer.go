package report

import (
	"io"

	"github.com/nao1215/scrubsnap/internal/model"
)

// Writer defines the interface for run summary output.
// Implementations write the same RunReport in different formats.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.RunReport) (int, error)
}

// MultiWriter writes to multiple Writers in order.
// It is used to print the summary and save a copy to a file at once.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(report *model.RunReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// severityOrder lists severities from most to least urgent.
var severityOrder = []model.Severity{
	model.SeverityCritical,
	model.SeverityHigh,
	model.SeverityMedium,
	model.SeverityLow,
	model.SeverityInfo,
}

// findingsBySeverity returns the findings of report at severity, in order.
func findingsBySeverity(report *model.RunReport, severity model.Severity) []model.Finding {
	findings := make([]model.Finding, 0)
	for _, f := range report.Findings {
		if f.Severity == severity {
			findings = append(findings, f)
		}
	}
	return findings
}

// status returns a one-word run status.
func status(report *model.RunReport) string {
	switch {
	case report.ErrorMessage != "":
		return "failed"
	case report.DryRun:
		return "dry run"
	default:
		return "complete"
	}
}
