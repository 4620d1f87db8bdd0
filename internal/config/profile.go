package config

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TeamProfile overrides the team name pair.
type TeamProfile struct {
	Name        string `yaml:"name,omitempty"`
	Replacement string `yaml:"replacement,omitempty"`
}

// OrgProfile overrides the organization path segment pair.
type OrgProfile struct {
	Segment     string `yaml:"segment,omitempty"`
	Replacement string `yaml:"replacement,omitempty"`
}

// PlaceholderProfile overrides the "no real name" markers and their replacement.
type PlaceholderProfile struct {
	Text            string `yaml:"text,omitempty"`
	Attribute       string `yaml:"attribute,omitempty"`
	DefaultIdentity string `yaml:"defaultIdentity,omitempty"`
}

// GuardProfile overrides the guarded template name.
// An explicit empty name disables the guard.
type GuardProfile struct {
	Name  *string `yaml:"name,omitempty"`
	Token string  `yaml:"token,omitempty"`
}

// NamesProfile replaces the identity pool name lists.
type NamesProfile struct {
	First []string `yaml:"first,omitempty"`
	Last  []string `yaml:"last,omitempty"`
}

// SnapshotProfile overrides the snapshot layout.
type SnapshotProfile struct {
	Title     string `yaml:"title,omitempty"`
	SourceDir string `yaml:"sourceDir,omitempty"`
	OutputDir string `yaml:"outputDir,omitempty"`
}

// File represents the structure of the .scrubsnap profile file.
// Every field is optional; zero values keep the built-in default.
type File struct {
	Seed         *int64             `yaml:"seed,omitempty"`
	IDBase       int                `yaml:"idBase,omitempty"`
	PoolDraws    int                `yaml:"poolDraws,omitempty"`
	Team         TeamProfile        `yaml:"team,omitempty"`
	Org          OrgProfile         `yaml:"org,omitempty"`
	Placeholders PlaceholderProfile `yaml:"placeholders,omitempty"`
	Guard        GuardProfile       `yaml:"guard,omitempty"`
	Names        NamesProfile       `yaml:"names,omitempty"`
	Snapshot     SnapshotProfile    `yaml:"snapshot,omitempty"`
}

// Apply copies every non-zero profile value onto cfg.
func (f *File) Apply(cfg *Config) {
	if f.Seed != nil {
		cfg.Seed = *f.Seed
	}
	if f.IDBase != 0 {
		cfg.IDBase = f.IDBase
	}
	if f.PoolDraws != 0 {
		cfg.PoolDraws = f.PoolDraws
	}

	overrideString(&cfg.TeamName, f.Team.Name)
	overrideString(&cfg.ReplacementTeamName, f.Team.Replacement)
	overrideString(&cfg.OrgSegment, f.Org.Segment)
	overrideString(&cfg.ReplacementOrgSegment, f.Org.Replacement)
	overrideString(&cfg.TextPlaceholder, f.Placeholders.Text)
	overrideString(&cfg.AttrPlaceholder, f.Placeholders.Attribute)
	overrideString(&cfg.DefaultIdentity, f.Placeholders.DefaultIdentity)
	overrideString(&cfg.TemplateToken, f.Guard.Token)
	overrideString(&cfg.SnapshotTitle, f.Snapshot.Title)
	overrideString(&cfg.SourceDir, f.Snapshot.SourceDir)
	overrideString(&cfg.OutputDir, f.Snapshot.OutputDir)

	if f.Guard.Name != nil {
		cfg.GuardedName = *f.Guard.Name
	}

	if names := NormalizeNames(f.Names.First); len(names) > 0 {
		cfg.FirstNames = names
	}
	if names := NormalizeNames(f.Names.Last); len(names) > 0 {
		cfg.LastNames = names
	}
}

func overrideString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// NormalizeNames trims each name, drops empty entries, and title-cases
// names written entirely in lower case. Mixed-case names such as
// "O'Connor" are kept as written. Order and duplicates are preserved.
func NormalizeNames(names []string) []string {
	caser := cases.Title(language.English)
	result := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if strings.ToLower(name) == name {
			name = caser.String(name)
		}
		result = append(result, name)
	}
	return result
}
