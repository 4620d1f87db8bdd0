package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/scrubsnap/internal/model"
)

// MarkdownWriter outputs reports in Markdown format, for attaching a run
// summary to a ticket or pull request.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.RunReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeIDs(md, report)
	w.writeNames(md, report)
	w.writeSubstitutions(md, report)
	w.writeFindings(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.RunReport) {
	md.H1("Snapshot Anonymization Report")
	md.PlainText("")

	rows := [][]string{
		{"Input", "`" + report.InputPath + "`"},
		{"Output", "`" + report.OutputPath + "`"},
		{"Date", report.DateRun.Format("2006-01-02 15:04:05 MST")},
		{"Status", w.getStatusText(report)},
	}
	if report.InputDigest != "" {
		rows = append(rows, []string{"Input SHA3-256", "`" + report.InputDigest + "`"})
	}
	if report.OutputDigest != "" {
		rows = append(rows, []string{"Output SHA3-256", "`" + report.OutputDigest + "`"})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// getStatusText returns the status text based on report state.
func (w *MarkdownWriter) getStatusText(report *model.RunReport) string {
	switch {
	case report.ErrorMessage != "":
		return "❌ Failed - " + report.ErrorMessage
	case report.DryRun:
		return "📝 Dry run (nothing written)"
	default:
		return "✅ Complete"
	}
}

func (w *MarkdownWriter) writeIDs(md *markdown.Markdown, report *model.RunReport) {
	md.H2("Member IDs")
	md.PlainText("")
	md.PlainTextf("Anonymized %d member IDs.", report.IDs.Len())
	md.PlainText("")
	if report.IDs.Len() > 0 {
		md.Table(markdown.TableSet{
			Header: []string{"Original", "Replacement"},
			Rows:   pairRows(report.IDs),
		})
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeNames(md *markdown.Markdown, report *model.RunReport) {
	md.H2("Names")
	md.PlainText("")
	md.PlainTextf("Replaced %d unique names using %d of %d pooled identities.",
		report.Names.Len(), report.PoolUsed, report.PoolSize)
	md.PlainText("")
	if report.Names.Len() > 0 {
		md.Table(markdown.TableSet{
			Header: []string{"Original", "Replacement"},
			Rows:   pairRows(report.Names),
		})
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeSubstitutions(md *markdown.Markdown, report *model.RunReport) {
	if len(report.Substitutions) == 0 {
		return
	}

	md.H2("Substitutions")
	md.PlainText("")

	rows := make([][]string, 0, len(report.Substitutions)+1)
	for _, s := range report.Substitutions {
		rows = append(rows, []string{s.Rule, strconv.Itoa(s.Count)})
	}
	rows = append(rows, []string{"**Total**", "**" + strconv.Itoa(report.TotalSubstitutions()) + "**"})

	md.Table(markdown.TableSet{
		Header: []string{"Rule", "Replacements"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeFindings(md *markdown.Markdown, report *model.RunReport) {
	md.H2("Findings")
	md.PlainText("")

	if !report.HasFindings() {
		md.Tip("No residual personal data detected.")
		md.PlainText("")
		return
	}

	w.writePieChart(md, report)
	w.writeAlert(md, report)

	headers := map[model.Severity]string{
		model.SeverityCritical: "### 🔴 Critical",
		model.SeverityHigh:     "### 🟠 High",
		model.SeverityMedium:   "### 🟡 Medium",
		model.SeverityLow:      "### 🔵 Low",
		model.SeverityInfo:     "### ⚪ Info",
	}

	for _, severity := range severityOrder {
		findings := findingsBySeverity(report, severity)
		if len(findings) == 0 {
			continue
		}
		md.PlainText(headers[severity])
		md.PlainText("")
		w.writeFindingsTable(md, findings)
	}
}

// writePieChart writes a mermaid pie chart for severity distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.RunReport) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Finding Severity Distribution"),
		piechart.WithShowData(true),
	)

	for _, severity := range severityOrder {
		if n := report.CountBySeverity(severity); n > 0 {
			chart.LabelAndIntValue(severity.String(), uint64(n))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an alert for the most severe finding level present.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.RunReport) {
	switch {
	case report.CountBySeverity(model.SeverityCritical) > 0:
		md.Cautionf(
			"%d critical finding(s): an asset can locate a real person. Do not share this snapshot yet.",
			report.CountBySeverity(model.SeverityCritical),
		)
	case report.CountBySeverity(model.SeverityHigh) > 0:
		md.Warningf(
			"%d high severity finding(s): real names or the real team survive in the output.",
			report.CountBySeverity(model.SeverityHigh),
		)
	case report.CountBySeverity(model.SeverityMedium) > 0:
		md.Importantf(
			"%d medium severity finding(s) should be reviewed before sharing.",
			report.CountBySeverity(model.SeverityMedium),
		)
	default:
		md.Note("Only low severity and informational findings detected.")
	}
	md.PlainText("")
}

// writeFindingsTable writes a table of findings with details.
func (w *MarkdownWriter) writeFindingsTable(md *markdown.Markdown, findings []model.Finding) {
	rows := make([][]string, len(findings))
	for i, f := range findings {
		rows[i] = []string{
			f.Title,
			truncateString(orDash(f.Value), 50),
			truncateString(orDash(f.Location), 40),
			truncateString(orDash(f.Recommendation), 60),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Title", "Value", "Location", "Recommendation"},
		Rows:   rows,
	})
	md.PlainText("")

	for _, f := range findings {
		if f.Impact != "" {
			md.Details(f.Title, f.Impact)
		}
	}
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [scrubsnap](https://github.com/nao1215/scrubsnap)*")
}

func pairRows(m *model.Mapping) [][]string {
	rows := make([][]string, 0, m.Len())
	for _, p := range m.Pairs() {
		rows = append(rows, []string{p.Original, p.Replacement})
	}
	return rows
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
