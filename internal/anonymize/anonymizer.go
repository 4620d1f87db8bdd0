package anonymize

import (
	"log/slog"

	"github.com/nao1215/scrubsnap/internal/identity"
	"github.com/nao1215/scrubsnap/internal/model"
	"github.com/nao1215/scrubsnap/internal/snapshot"
)

// Anonymizer rewrites snapshot documents according to its Settings.
// It holds no per-document state; every call builds fresh mappings.
type Anonymizer struct {
	settings Settings
	logger   *slog.Logger

	// picker overrides the seeded picker when set.
	picker identity.Picker
}

// Option is a function that configures an Anonymizer.
type Option func(*Anonymizer)

// WithLogger sets the logger used by Run.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Anonymizer) {
		a.logger = logger
	}
}

// WithPicker replaces the seeded picker used to build identity pools.
// The picker is consumed by the next pool only; pass a fresh one per run.
func WithPicker(picker identity.Picker) Option {
	return func(a *Anonymizer) {
		a.picker = picker
	}
}

// New creates an Anonymizer for settings.
func New(settings Settings, opts ...Option) *Anonymizer {
	a := &Anonymizer{settings: settings}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	return a
}

// Settings returns the settings the Anonymizer was built with.
func (a *Anonymizer) Settings() Settings {
	return a.settings
}

// NewPool generates the identity pool for one run.
func (a *Anonymizer) NewPool() *identity.Pool {
	picker := a.picker
	if picker == nil {
		picker = identity.NewSeededPicker(a.settings.Seed)
	}
	return identity.NewPool(picker, a.settings.FirstNames, a.settings.LastNames, a.settings.PoolDraws)
}

// BuildNameMapping scans content for link names, then attribute names,
// assigning identities from source to each new real name.
func (a *Anonymizer) BuildNameMapping(content string, source IdentitySource) *model.Mapping {
	names := model.NewMapping()
	a.MapCandidates(names, ExtractCandidateNames(content), source)
	return names
}

// MapCandidates extends names with identities for candidates, skipping
// placeholders and the guarded name. It returns the number of entries added.
func (a *Anonymizer) MapCandidates(names *model.Mapping, candidates []string, source IdentitySource) int {
	return AssignNames(names, candidates, source, a.reserved(), a.settings.GuardedName)
}

// BuildIDMapping assigns synthetic IDs to the member IDs in content.
func (a *Anonymizer) BuildIDMapping(content string) *model.Mapping {
	return BuildIDMapping(ExtractMemberIDs(content), a.settings.IDBase)
}

// ApplySubstitutions runs every substitution rule over content in order.
func (a *Anonymizer) ApplySubstitutions(content string, names, ids *model.Mapping) (string, []model.RuleCount) {
	return ApplyRules(content, BuildRules(a.settings, names, ids))
}

// reserved lists the candidates that never become mapping keys.
func (a *Anonymizer) reserved() []string {
	reserved := a.settings.Placeholders()
	if a.settings.GuardedName != "" {
		reserved = append(reserved, a.settings.GuardedName)
	}
	return reserved
}

// Result is the outcome of anonymizing one document.
type Result struct {
	Content       string
	Names         *model.Mapping
	IDs           *model.Mapping
	Substitutions []model.RuleCount
	PoolSize      int
	PoolUsed      int
	PoolOverflow  int
}

// Anonymize returns content with every sensitive token replaced.
func (a *Anonymizer) Anonymize(content string) *Result {
	pool := a.NewPool()
	names := a.BuildNameMapping(content, pool)
	ids := a.BuildIDMapping(content)
	out, counts := a.ApplySubstitutions(content, names, ids)

	return &Result{
		Content:       out,
		Names:         names,
		IDs:           ids,
		Substitutions: counts,
		PoolSize:      pool.Len(),
		PoolUsed:      pool.Used(),
		PoolOverflow:  pool.Overflowed(),
	}
}

// Run reads the document at inputPath, anonymizes it, and writes it to
// outputPath, which may equal inputPath. A missing input returns
// snapshot.ErrInputNotFound before anything is written.
//
// Run is the single-document library entry point. It neither copies the
// asset directory nor audits the result; the scrubsnap command runs
// pipeline.DefaultPipeline, whose load to write steps call the same
// Anonymizer methods in the same order and produce identical output.
func (a *Anonymizer) Run(inputPath, outputPath string) (*Result, error) {
	doc, err := snapshot.ReadDocument(inputPath)
	if err != nil {
		return nil, err
	}

	result := a.Anonymize(doc.Content)

	if err := snapshot.WriteDocument(outputPath, model.NewDocument(outputPath, result.Content)); err != nil {
		return nil, err
	}

	a.logResult(result)
	return result, nil
}

func (a *Anonymizer) logResult(r *Result) {
	a.logger.Info("anonymized member IDs", "count", r.IDs.Len())
	for _, p := range r.IDs.Pairs() {
		a.logger.Debug("member ID mapping", "original", p.Original, "replacement", p.Replacement)
	}

	a.logger.Info("replaced unique names", "count", r.Names.Len())
	for _, p := range r.Names.Pairs() {
		a.logger.Debug("name mapping", "original", p.Original, "replacement", p.Replacement)
	}

	if r.PoolOverflow > 0 {
		a.logger.Warn("identity pool exhausted", "pool_size", r.PoolSize, "overflow", r.PoolOverflow)
	}
}
