package anonymize

import (
	"strings"

	"github.com/nao1215/scrubsnap/internal/config"
)

// Settings holds every literal the anonymizer matches or produces.
type Settings struct {
	Seed      int64
	IDBase    int
	PoolDraws int

	FirstNames []string
	LastNames  []string

	TeamName              string
	ReplacementTeamName   string
	OrgSegment            string
	ReplacementOrgSegment string

	TextPlaceholder string
	AttrPlaceholder string
	DefaultIdentity string

	GuardedName   string
	TemplateToken string

	SnapshotTitle    string
	ReplacementTitle string
}

// SettingsFromConfig extracts anonymizer settings from cfg.
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		Seed:                  cfg.Seed,
		IDBase:                cfg.IDBase,
		PoolDraws:             cfg.PoolDraws,
		FirstNames:            cfg.FirstNames,
		LastNames:             cfg.LastNames,
		TeamName:              cfg.TeamName,
		ReplacementTeamName:   cfg.ReplacementTeamName,
		OrgSegment:            cfg.OrgSegment,
		ReplacementOrgSegment: cfg.ReplacementOrgSegment,
		TextPlaceholder:       cfg.TextPlaceholder,
		AttrPlaceholder:       cfg.AttrPlaceholder,
		DefaultIdentity:       cfg.DefaultIdentity,
		GuardedName:           cfg.GuardedName,
		TemplateToken:         cfg.TemplateToken,
		SnapshotTitle:         cfg.SnapshotTitle,
		ReplacementTitle:      cfg.ReplacementTitle(),
	}
}

// DefaultSettings returns the settings of an unmodified default config.
func DefaultSettings() Settings {
	return SettingsFromConfig(config.NewConfig())
}

// Placeholders returns the candidate strings that never denote a real person.
func (s Settings) Placeholders() []string {
	return []string{s.TextPlaceholder, ">" + s.TextPlaceholder, s.AttrPlaceholder}
}

// EncodeSpaces returns s with every space written as %20, the form the
// team name takes inside saved asset URLs.
func EncodeSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "%20")
}
