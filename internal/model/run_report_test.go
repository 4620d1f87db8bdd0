package model

import "testing"

// TestRunReport tests report helpers.
func TestRunReport(t *testing.T) {
	t.Parallel()

	t.Run("new report starts empty", func(t *testing.T) {
		t.Parallel()

		r := NewRunReport("in.html", "out.html")
		if r.Names.Len() != 0 || r.IDs.Len() != 0 {
			t.Error("expected empty mappings")
		}
		if r.HasFindings() {
			t.Error("expected no findings")
		}
		if r.DateRun.IsZero() {
			t.Error("expected DateRun to be set")
		}
	})

	t.Run("counts substitutions and findings", func(t *testing.T) {
		t.Parallel()

		r := NewRunReport("in.html", "out.html")
		r.Substitutions = []RuleCount{{Rule: "team", Count: 3}, {Rule: "org", Count: 2}}
		r.AddFinding(NewFinding(FindingResidualName, "Residual name", "Jane Doe", "text"))
		r.AddFinding(NewFinding(FindingExifGPS, "GPS", "GPSLatitude", "a.jpg"))

		if got := r.TotalSubstitutions(); got != 5 {
			t.Errorf("expected 5 substitutions, got %d", got)
		}
		if got := r.CountBySeverity(SeverityHigh); got != 1 {
			t.Errorf("expected 1 high finding, got %d", got)
		}
		if got := r.CountBySeverity(SeverityCritical); got != 1 {
			t.Errorf("expected 1 critical finding, got %d", got)
		}
	})
}

// TestSeverityString tests severity names.
func TestSeverityString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityInfo, "INFO"},
		{SeverityLow, "LOW"},
		{SeverityMedium, "MEDIUM"},
		{SeverityHigh, "HIGH"},
		{SeverityCritical, "CRITICAL"},
		{Severity(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.severity.String(); got != tt.want {
			t.Errorf("Severity(%d).String() = %q, want %q", tt.severity, got, tt.want)
		}
	}
}

// TestGetFindingInfo tests finding metadata lookup.
func TestGetFindingInfo(t *testing.T) {
	t.Parallel()

	if got := GetFindingInfo(FindingResidualName).Severity; got != SeverityHigh {
		t.Errorf("expected HIGH for residual name, got %v", got)
	}
	if got := GetFindingInfo("no_such_type").Severity; got != SeverityInfo {
		t.Errorf("expected INFO for unknown type, got %v", got)
	}
}
