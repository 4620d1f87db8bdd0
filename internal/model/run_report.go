package model

import (
	"time"
)

// RuleCount records how many replacements one substitution rule made.
type RuleCount struct {
	Rule  string `json:"rule"`
	Count int    `json:"count"`
}

// RunReport is the result of one anonymization run.
// Pipeline steps fill it in order; report writers and the history
// database read it.
type RunReport struct {
	// InputPath is the HTML document that was read.
	InputPath string `json:"input_path"`

	// OutputPath is where the anonymized document was written.
	OutputPath string `json:"output_path"`

	// AssetDir is the copied asset directory, empty when the snapshot had none.
	AssetDir string `json:"asset_dir,omitempty"`

	// DateRun is when the run started.
	DateRun time.Time `json:"date_run"`

	// DryRun is true when nothing was written.
	DryRun bool `json:"dry_run"`

	// Document is the text being anonymized. It is not serialized.
	Document *Document `json:"-"`

	// Candidates are the raw name matches, duplicates and placeholders included.
	Candidates []string `json:"-"`

	// MemberIDs are the distinct member IDs in first-discovery order.
	MemberIDs []string `json:"-"`

	// Names maps real display names to fake ones.
	Names *Mapping `json:"names"`

	// IDs maps real member IDs to synthetic ones.
	IDs *Mapping `json:"ids"`

	// PoolSize is the number of identities generated up front.
	PoolSize int `json:"pool_size"`

	// PoolUsed is the number of generated identities handed out.
	PoolUsed int `json:"pool_used"`

	// PoolOverflow is the number of identities drawn after the pool ran out.
	PoolOverflow int `json:"pool_overflow"`

	// Substitutions lists the replacement count of every rule, in order.
	Substitutions []RuleCount `json:"substitutions,omitempty"`

	// InputDigest and OutputDigest fingerprint the document before and
	// after anonymization.
	InputDigest  string `json:"input_digest,omitempty"`
	OutputDigest string `json:"output_digest,omitempty"`

	// Findings are residual risks noticed by the audits.
	Findings []Finding `json:"findings,omitempty"`

	// PerformedSteps lists the pipeline steps that ran.
	PerformedSteps []string `json:"performed_steps"`

	// Error is the error that stopped the run, if any.
	Error error `json:"-"`

	// ErrorMessage is Error as text for serialization.
	ErrorMessage string `json:"error,omitempty"`
}

// NewRunReport creates an empty report for anonymizing inputPath into outputPath.
func NewRunReport(inputPath, outputPath string) *RunReport {
	return &RunReport{
		InputPath:      inputPath,
		OutputPath:     outputPath,
		DateRun:        time.Now(),
		Names:          NewMapping(),
		IDs:            NewMapping(),
		Substitutions:  make([]RuleCount, 0),
		Findings:       make([]Finding, 0),
		PerformedSteps: make([]string, 0),
	}
}

// AddFinding appends a finding.
func (r *RunReport) AddFinding(f Finding) {
	r.Findings = append(r.Findings, f)
}

// TotalSubstitutions returns the number of replacements across all rules.
func (r *RunReport) TotalSubstitutions() int {
	total := 0
	for _, s := range r.Substitutions {
		total += s.Count
	}
	return total
}

// CountBySeverity returns the number of findings at severity.
func (r *RunReport) CountBySeverity(severity Severity) int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == severity {
			n++
		}
	}
	return n
}

// HasFindings returns true if there are any findings.
func (r *RunReport) HasFindings() bool {
	return len(r.Findings) > 0
}
