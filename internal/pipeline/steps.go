package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/nao1215/scrubsnap/internal/anonymize"
	"github.com/nao1215/scrubsnap/internal/audit"
	"github.com/nao1215/scrubsnap/internal/model"
	"github.com/nao1215/scrubsnap/internal/snapshot"
)

// ErrNoDocument is returned by steps that run before the document is loaded.
var ErrNoDocument = errors.New("document not loaded")

// Step names, in default execution order.
const (
	StepCopy               = "copy_snapshot"
	StepLoad               = "load"
	StepExtractCandidates  = "extract_candidates"
	StepBuildNameMapping   = "build_name_mapping"
	StepExtractIDs         = "extract_ids"
	StepBuildIDMapping     = "build_id_mapping"
	StepApplySubstitutions = "apply_substitutions"
	StepWrite              = "write"
	StepAuditLeaks         = "audit_leaks"
	StepAuditAssets        = "audit_assets"
)

// CopySnapshotStep copies the source HTML file and its asset directory to
// the output location. The input is checked, and the output is checked not
// to overlap it, before anything is copied.
// In dry-run mode only the check runs.
type CopySnapshotStep struct {
	layout snapshot.Layout
	dryRun bool
	logger *slog.Logger
}

// NewCopySnapshotStep creates a CopySnapshotStep for layout.
func NewCopySnapshotStep(layout snapshot.Layout, dryRun bool, logger *slog.Logger) *CopySnapshotStep {
	return &CopySnapshotStep{layout: layout, dryRun: dryRun, logger: logger}
}

// Name returns the step name.
func (s *CopySnapshotStep) Name() string {
	return StepCopy
}

// Do executes the copy step.
func (s *CopySnapshotStep) Do(_ context.Context, report *model.RunReport) error {
	if err := snapshot.RequireInput(s.layout.SourceHTML); err != nil {
		return err
	}
	if err := s.layout.CheckSeparate(); err != nil {
		return err
	}

	hasAssets := snapshot.Exists(s.layout.SourceAssets)

	if s.dryRun {
		if hasAssets {
			report.AssetDir = s.layout.SourceAssets
		}
		return nil
	}

	if err := os.MkdirAll(s.layout.OutputDir, 0750); err != nil {
		return fmt.Errorf("%w: create directory %s: %w", snapshot.ErrIOFailure, s.layout.OutputDir, err)
	}

	if err := snapshot.CopyFile(s.layout.SourceHTML, s.layout.OutputHTML); err != nil {
		return err
	}

	if hasAssets {
		if err := snapshot.CopyTree(s.layout.SourceAssets, s.layout.OutputAssets); err != nil {
			return err
		}
		report.AssetDir = s.layout.OutputAssets
		s.logger.Debug("copied asset directory", "dir", s.layout.OutputAssets)
	} else {
		s.logger.Warn("no asset directory found", "dir", s.layout.SourceAssets)
	}

	return nil
}

// LoadStep reads the document into the report.
type LoadStep struct {
	path string
}

// NewLoadStep creates a LoadStep reading path.
func NewLoadStep(path string) *LoadStep {
	return &LoadStep{path: path}
}

// Name returns the step name.
func (s *LoadStep) Name() string {
	return StepLoad
}

// Do executes the load step.
func (s *LoadStep) Do(_ context.Context, report *model.RunReport) error {
	doc, err := snapshot.ReadDocument(s.path)
	if err != nil {
		return err
	}
	report.Document = doc
	report.InputDigest = snapshot.Digest(doc.Content)
	return nil
}

// ExtractCandidatesStep records every candidate name, links first.
type ExtractCandidatesStep struct{}

// NewExtractCandidatesStep creates an ExtractCandidatesStep.
func NewExtractCandidatesStep() *ExtractCandidatesStep {
	return &ExtractCandidatesStep{}
}

// Name returns the step name.
func (s *ExtractCandidatesStep) Name() string {
	return StepExtractCandidates
}

// Do executes the extraction step.
func (s *ExtractCandidatesStep) Do(_ context.Context, report *model.RunReport) error {
	if report.Document == nil {
		return ErrNoDocument
	}
	report.Candidates = anonymize.ExtractCandidateNames(report.Document.Content)
	return nil
}

// BuildNameMappingStep assigns a fake identity to every real candidate.
type BuildNameMappingStep struct {
	anonymizer *anonymize.Anonymizer
}

// NewBuildNameMappingStep creates a BuildNameMappingStep.
func NewBuildNameMappingStep(a *anonymize.Anonymizer) *BuildNameMappingStep {
	return &BuildNameMappingStep{anonymizer: a}
}

// Name returns the step name.
func (s *BuildNameMappingStep) Name() string {
	return StepBuildNameMapping
}

// Do executes the name mapping step.
func (s *BuildNameMappingStep) Do(_ context.Context, report *model.RunReport) error {
	pool := s.anonymizer.NewPool()
	s.anonymizer.MapCandidates(report.Names, report.Candidates, pool)
	report.PoolSize = pool.Len()
	report.PoolUsed = pool.Used()
	report.PoolOverflow = pool.Overflowed()
	return nil
}

// ExtractIDsStep records the distinct member IDs in discovery order.
type ExtractIDsStep struct{}

// NewExtractIDsStep creates an ExtractIDsStep.
func NewExtractIDsStep() *ExtractIDsStep {
	return &ExtractIDsStep{}
}

// Name returns the step name.
func (s *ExtractIDsStep) Name() string {
	return StepExtractIDs
}

// Do executes the ID extraction step.
func (s *ExtractIDsStep) Do(_ context.Context, report *model.RunReport) error {
	if report.Document == nil {
		return ErrNoDocument
	}
	report.MemberIDs = anonymize.ExtractMemberIDs(report.Document.Content)
	return nil
}

// BuildIDMappingStep assigns sequential synthetic IDs.
type BuildIDMappingStep struct {
	base int
}

// NewBuildIDMappingStep creates a BuildIDMappingStep starting at base.
func NewBuildIDMappingStep(base int) *BuildIDMappingStep {
	return &BuildIDMappingStep{base: base}
}

// Name returns the step name.
func (s *BuildIDMappingStep) Name() string {
	return StepBuildIDMapping
}

// Do executes the ID mapping step.
func (s *BuildIDMappingStep) Do(_ context.Context, report *model.RunReport) error {
	report.IDs = anonymize.BuildIDMapping(report.MemberIDs, s.base)
	return nil
}

// ApplySubstitutionsStep rewrites the document with the ordered rules.
type ApplySubstitutionsStep struct {
	anonymizer *anonymize.Anonymizer
}

// NewApplySubstitutionsStep creates an ApplySubstitutionsStep.
func NewApplySubstitutionsStep(a *anonymize.Anonymizer) *ApplySubstitutionsStep {
	return &ApplySubstitutionsStep{anonymizer: a}
}

// Name returns the step name.
func (s *ApplySubstitutionsStep) Name() string {
	return StepApplySubstitutions
}

// Do executes the substitution step.
func (s *ApplySubstitutionsStep) Do(_ context.Context, report *model.RunReport) error {
	if report.Document == nil {
		return ErrNoDocument
	}
	content, counts := s.anonymizer.ApplySubstitutions(report.Document.Content, report.Names, report.IDs)
	report.Document = model.NewDocument(report.OutputPath, content)
	report.Substitutions = counts
	report.OutputDigest = snapshot.Digest(content)
	return nil
}

// WriteStep writes the anonymized document in one write.
// It does nothing in dry-run mode.
type WriteStep struct {
	dryRun bool
}

// NewWriteStep creates a WriteStep.
func NewWriteStep(dryRun bool) *WriteStep {
	return &WriteStep{dryRun: dryRun}
}

// Name returns the step name.
func (s *WriteStep) Name() string {
	return StepWrite
}

// Do executes the write step.
func (s *WriteStep) Do(_ context.Context, report *model.RunReport) error {
	if report.Document == nil {
		return ErrNoDocument
	}
	if s.dryRun {
		return nil
	}
	return snapshot.WriteDocument(report.OutputPath, report.Document)
}

// AuditLeaksStep reports original values left in the anonymized document,
// shared fake identities, and pool overflow.
type AuditLeaksStep struct {
	settings anonymize.Settings
	logger   *slog.Logger
}

// NewAuditLeaksStep creates an AuditLeaksStep.
func NewAuditLeaksStep(settings anonymize.Settings, logger *slog.Logger) *AuditLeaksStep {
	return &AuditLeaksStep{settings: settings, logger: logger}
}

// Name returns the step name.
func (s *AuditLeaksStep) Name() string {
	return StepAuditLeaks
}

// Do executes the leak audit. A document the HTML parser rejects is
// logged and skipped; audits never fail a run.
func (s *AuditLeaksStep) Do(_ context.Context, report *model.RunReport) error {
	if report.Document == nil {
		return ErrNoDocument
	}

	for _, f := range audit.CheckMapping(report.Names, report.PoolSize, report.PoolOverflow) {
		report.AddFinding(f)
	}

	auditor := audit.NewLeakAuditor(
		s.settings.TeamName,
		anonymize.EncodeSpaces(s.settings.TeamName),
		s.settings.OrgSegment,
		report.Names,
		report.IDs,
	)
	findings, err := auditor.Audit(report.Document.Content, report.OutputPath)
	if err != nil {
		s.logger.Warn("leak audit skipped", "error", err)
		return nil
	}
	for _, f := range findings {
		report.AddFinding(f)
	}

	if len(findings) > 0 {
		s.logger.Warn("residual personal data found", "findings", len(findings))
	}
	return nil
}

// AuditAssetsStep reports identifying EXIF metadata in the asset directory.
type AuditAssetsStep struct {
	auditor *audit.ExifAuditor
	logger  *slog.Logger
}

// NewAuditAssetsStep creates an AuditAssetsStep.
func NewAuditAssetsStep(auditor *audit.ExifAuditor, logger *slog.Logger) *AuditAssetsStep {
	return &AuditAssetsStep{auditor: auditor, logger: logger}
}

// Name returns the step name.
func (s *AuditAssetsStep) Name() string {
	return StepAuditAssets
}

// Do executes the asset audit. Walk errors are logged; the findings
// gathered before the error are kept.
func (s *AuditAssetsStep) Do(ctx context.Context, report *model.RunReport) error {
	if report.AssetDir == "" {
		return nil
	}

	findings, err := s.auditor.AuditDir(ctx, report.AssetDir)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.logger.Warn("asset audit incomplete", "dir", report.AssetDir, "error", err)
	}
	for _, f := range findings {
		report.AddFinding(f)
	}
	return nil
}

// DefaultPipelineConfig holds the options of DefaultPipeline.
type DefaultPipelineConfig struct {
	// DryRun reads the source and skips every write.
	DryRun bool

	// SkipAudit omits the leak and asset audits.
	SkipAudit bool

	// MaxImageSize is the largest asset the EXIF audit reads.
	MaxImageSize int64
}

// DefaultPipelineOption configures a DefaultPipelineConfig.
type DefaultPipelineOption func(*DefaultPipelineConfig)

// WithPipelineDryRun enables dry-run mode.
func WithPipelineDryRun(dryRun bool) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.DryRun = dryRun
	}
}

// WithPipelineSkipAudit disables the audit steps.
func WithPipelineSkipAudit(skip bool) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.SkipAudit = skip
	}
}

// WithPipelineMaxImageSize sets the largest asset the EXIF audit reads.
func WithPipelineMaxImageSize(size int64) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.MaxImageSize = size
	}
}

// DefaultPipeline creates the standard anonymization pipeline:
// copy, load, extract candidates, build name mapping, extract IDs, build
// ID mapping, apply substitutions, write, then the audits.
//
// The copy is transformed in place, so the source snapshot is only read.
// In dry-run mode the source document is loaded instead and nothing is
// written.
func DefaultPipeline(a *anonymize.Anonymizer, layout snapshot.Layout, pipelineOpts []Option, configOpts ...DefaultPipelineOption) *Pipeline {
	p := New(pipelineOpts...)

	cfg := &DefaultPipelineConfig{
		MaxImageSize: audit.DefaultMaxImageSize,
	}
	for _, opt := range configOpts {
		opt(cfg)
	}

	loadPath := layout.OutputHTML
	if cfg.DryRun {
		loadPath = layout.SourceHTML
	}

	p.AddSteps(
		NewCopySnapshotStep(layout, cfg.DryRun, p.logger),
		NewLoadStep(loadPath),
		NewExtractCandidatesStep(),
		NewBuildNameMappingStep(a),
		NewExtractIDsStep(),
		NewBuildIDMappingStep(a.Settings().IDBase),
		NewApplySubstitutionsStep(a),
		NewWriteStep(cfg.DryRun),
	)

	if !cfg.SkipAudit {
		p.AddStep(NewAuditLeaksStep(a.Settings(), p.logger))
		p.AddStep(NewAuditAssetsStep(audit.NewExifAuditor(audit.WithMaxImageSize(cfg.MaxImageSize)), p.logger))
	}

	return p
}
