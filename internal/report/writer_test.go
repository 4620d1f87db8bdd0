package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/scrubsnap/internal/model"
)

// createTestReport creates a report with sample data for testing.
func createTestReport() *model.RunReport {
	report := model.NewRunReport(
		filepath.Join("revsport-sample", "in.html"),
		filepath.Join("revsport-sample-anonymized", "out.html"),
	)
	report.Names.Set("Jane Doe", "Pat Quinn")
	report.Names.Set("John Roe", "Sam Lee")
	report.IDs.Set("55", "1001")
	report.PoolSize = 180
	report.PoolUsed = 2
	report.Substitutions = []model.RuleCount{
		{Rule: "team-name", Count: 2},
		{Rule: "member-names", Count: 4},
	}
	report.InputDigest = "aaaa"
	report.OutputDigest = "bbbb"
	report.AddFinding(model.NewFinding(
		model.FindingResidualName,
		"Original member name still present",
		"Jane Doe",
		"out.html <img alt>",
	))
	return report
}

// TestSimpleWriter tests the human-readable report writer.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes both mappings", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"Anonymized 1 member IDs:\n  55 -> 1001\n",
			"Replaced 2 unique names:\n  'Jane Doe' -> 'Pat Quinn'\n  'John Roe' -> 'Sam Lee'\n",
			"Anonymized HTML file written to: " + filepath.Join("revsport-sample-anonymized", "out.html"),
			"Anonymization complete!",
			"Original files remain untouched in: revsport-sample\n",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, output)
			}
		}
	})

	t.Run("writes findings with severity", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "[HIGH] Original member name still present") {
			t.Error("expected output to contain HIGH finding")
		}
		if strings.Contains(output, "Recommendation:") {
			t.Error("expected recommendation only in verbose mode")
		}
	})

	t.Run("verbose adds substitutions and recommendations", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithVerbose(true)).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "Applied 6 substitutions:") {
			t.Error("expected substitution total")
		}
		if !strings.Contains(output, "Identity pool: 2 of 180 used, 0 extra draws\n") {
			t.Errorf("expected pool usage, got:\n%s", output)
		}
		if !strings.Contains(output, "Recommendation:") {
			t.Error("expected recommendation")
		}
	})

	t.Run("empty findings hidden unless requested", func(t *testing.T) {
		t.Parallel()

		report := model.NewRunReport("in.html", "out.html")

		var quiet, loud bytes.Buffer
		if _, err := NewSimpleWriter(&quiet).Write(report); err != nil {
			t.Fatal(err)
		}
		if _, err := NewSimpleWriter(&loud, WithShowEmpty(true)).Write(report); err != nil {
			t.Fatal(err)
		}

		if strings.Contains(quiet.String(), "No findings") {
			t.Error("expected no findings section by default")
		}
		if !strings.Contains(loud.String(), "No findings") {
			t.Error("expected findings section with WithShowEmpty")
		}
		if !strings.Contains(quiet.String(), "Anonymized 0 member IDs:") {
			t.Error("expected zero counts to be reported")
		}
	})

	t.Run("dry run", func(t *testing.T) {
		t.Parallel()

		report := createTestReport()
		report.DryRun = true

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(report); err != nil {
			t.Fatal(err)
		}

		output := buf.String()
		if !strings.Contains(output, "Dry run: nothing written") {
			t.Error("expected dry-run notice")
		}
		if strings.Contains(output, "Anonymization complete!") {
			t.Error("expected no success line in dry run")
		}
	})
}

// TestSimpleWriterWithError tests the failure output.
func TestSimpleWriterWithError(t *testing.T) {
	t.Parallel()

	report := model.NewRunReport("in.html", "out.html")
	report.Error = errors.New("input not found")
	report.ErrorMessage = report.Error.Error()

	var buf bytes.Buffer
	if _, err := NewSimpleWriter(&buf).Write(report); err != nil {
		t.Fatal(err)
	}

	output := buf.String()
	if !strings.Contains(output, "Error: input not found") {
		t.Errorf("expected error line, got %q", output)
	}
	if strings.Contains(output, "complete") {
		t.Error("expected no success line")
	}
}

// TestJSONWriter tests the JSON report writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes valid JSON with ordered mappings", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var decoded struct {
			Names    []model.Pair    `json:"names"`
			IDs      []model.Pair    `json:"ids"`
			Findings []model.Finding `json:"findings"`
		}
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(decoded.Names) != 2 || decoded.Names[0].Original != "Jane Doe" {
			t.Errorf("unexpected names: %+v", decoded.Names)
		}
		if len(decoded.IDs) != 1 || decoded.IDs[0].Replacement != "1001" {
			t.Errorf("unexpected IDs: %+v", decoded.IDs)
		}
		if len(decoded.Findings) != 1 {
			t.Errorf("expected 1 finding, got %d", len(decoded.Findings))
		}
	})

	t.Run("compact by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatal(err)
		}
		if strings.Count(buf.String(), "\n") != 1 {
			t.Error("expected single-line output")
		}
	})

	t.Run("pretty print", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(createTestReport()); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "\n  \"input_path\"") {
			t.Error("expected indented output")
		}
	})
}

// TestFullJSONWriter tests the metadata wrapper.
func TestFullJSONWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, err := NewFullJSONWriter(&buf, "v1.2.3").Write(createTestReport()); err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		Version string          `json:"version"`
		Status  string          `json:"status"`
		Report  json.RawMessage `json:"report"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.Version != "v1.2.3" {
		t.Errorf("expected version v1.2.3, got %q", decoded.Version)
	}
	if decoded.Status != "complete" {
		t.Errorf("expected status complete, got %q", decoded.Status)
	}
	if len(decoded.Report) == 0 {
		t.Error("expected embedded report")
	}
}

// TestMultiWriter tests writing to several writers.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var text, js bytes.Buffer
	w := NewMultiWriter(NewSimpleWriter(&text), NewJSONWriter(&js))

	n, err := w.Write(createTestReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != text.Len()+js.Len() {
		t.Errorf("expected %d bytes, got %d", text.Len()+js.Len(), n)
	}
	if text.Len() == 0 || js.Len() == 0 {
		t.Error("expected both writers to receive output")
	}
}

// TestMarkdownWriter tests the Markdown report writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes header and mappings", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"# Snapshot Anonymization Report",
			"## Member IDs",
			"## Names",
			"## Substitutions",
			"Jane Doe",
			"Pat Quinn",
			"1001",
			"✅ Complete",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("writes findings with chart", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatal(err)
		}

		output := buf.String()
		if !strings.Contains(output, "### 🟠 High") {
			t.Error("expected high severity section")
		}
		if !strings.Contains(output, "mermaid") {
			t.Error("expected mermaid pie chart")
		}
	})

	t.Run("no findings", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(model.NewRunReport("in.html", "out.html")); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "No residual personal data detected.") {
			t.Error("expected no-findings tip")
		}
	})

	t.Run("failed run", func(t *testing.T) {
		t.Parallel()

		report := model.NewRunReport("in.html", "out.html")
		report.ErrorMessage = "input not found"

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(report); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "Failed - input not found") {
			t.Error("expected failure status")
		}
	})
}

// TestTruncateString tests string truncation.
func TestTruncateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is a longer string", 10, "this is..."},
		{"abc", 3, "abc"},
		{"abcd", 3, "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := truncateString(tt.input, tt.maxLen); got != tt.expected {
				t.Errorf("truncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.expected)
			}
		})
	}
}
