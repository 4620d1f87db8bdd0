package config

import (
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Default configuration values.
// The literals below are tuned to one known document shape: a saved
// revolutioniseSPORT "Edit crew" page. A profile file can override all of them.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "scrubsnap"

	// DefaultSeed initializes the identity pool generator. A fixed seed keeps
	// fake identities identical across runs over the same input.
	DefaultSeed int64 = 42

	// DefaultIDBase is the first synthetic member ID handed out.
	DefaultIDBase = 1001

	// MinPoolDraws is the smallest number of random draws used to build the
	// identity pool, regardless of how many unique names result.
	MinPoolDraws = 200

	// DefaultPoolDraws is the number of random draws used to build the pool.
	DefaultPoolDraws = MinPoolDraws

	// DefaultTeamName is the real team name found in the snapshot.
	DefaultTeamName = "CYSM Sea Dragons"

	// DefaultReplacementTeamName replaces DefaultTeamName everywhere,
	// including file and directory names.
	DefaultReplacementTeamName = "Blue River Sharks"

	// DefaultOrgSegment is the organization path segment found in URLs.
	DefaultOrgSegment = "/cysm/"

	// DefaultReplacementOrgSegment replaces DefaultOrgSegment.
	DefaultReplacementOrgSegment = "/sampleclub/"

	// DefaultTextPlaceholder is the visible-text placeholder that never
	// denotes a real person.
	DefaultTextPlaceholder = "Member Name"

	// DefaultAttrPlaceholder is the sentinel data-member_name value for
	// members without a name.
	DefaultAttrPlaceholder = "Anonymous Member"

	// DefaultIdentity replaces leftover placeholders.
	DefaultIdentity = "Alex Johnson"

	// DefaultGuardedName is a hardcoded name inside the page's JavaScript
	// row templates. It is rewritten to DefaultTemplateToken instead of a
	// static fake name.
	DefaultGuardedName = "Jonathan Henderson"

	// DefaultTemplateToken is the template variable the guarded name becomes.
	DefaultTemplateToken = "{memberName}"

	// DefaultSnapshotTitle is the browser "Save page as" title of the
	// snapshot. The HTML file is "<title>.html" and the asset directory is
	// "<title>_files".
	DefaultSnapshotTitle = "Edit crew - CYSM Sea Dragons - revolutioniseSPORT"

	// AssetDirSuffix is appended to the snapshot title to name the asset directory.
	AssetDirSuffix = "_files"

	// HTMLExtension is the extension of the snapshot document.
	HTMLExtension = ".html"

	// DefaultSourceDir holds the original snapshot.
	DefaultSourceDir = "revsport-sample"

	// DefaultOutputDir receives the anonymized copy.
	DefaultOutputDir = "revsport-sample-anonymized"

	// DefaultMaxImageSize is the largest asset, in bytes, the EXIF audit reads.
	DefaultMaxImageSize int64 = 5 * 1024 * 1024
)

// DefaultFirstNames is the ordered first-name list the identity pool draws from.
// Order and duplicates are part of the deterministic output.
var DefaultFirstNames = []string{
	"Alex", "Sarah", "Mike", "Emma", "David", "Lisa", "James", "Maya",
	"Ryan", "Sophie", "Kevin", "Rachel", "Daniel", "Amanda", "Chris", "Jessica",
	"Michael", "Ashley", "Brandon", "Samantha", "Tyler", "Nicole", "Jordan", "Lauren",
	"Matthew", "Megan", "Andrew", "Kelly", "Joshua", "Jennifer", "Anthony", "Stephanie",
	"Christopher", "Michelle", "Jonathan", "Amy", "Robert", "Angela", "Jason", "Elizabeth",
	"Nicholas", "Kimberly", "William", "Rebecca", "Steven", "Katherine", "Brian", "Hannah",
	"Aaron", "Melissa", "Nathan", "Christina", "Ryan", "Patricia", "Adam", "Laura",
	"Eric", "Maria", "Mark", "Julie", "Paul", "Linda", "Charles", "Carol",
	"Thomas", "Nancy", "Scott", "Sharon", "Kevin", "Helen", "Richard", "Sandra",
	"Jacob", "Betty", "Peter", "Dorothy", "Benjamin", "Lisa", "Henry", "Karen",
	"Carlos", "Anna", "Diego", "Diana", "Luis", "Sofia", "Marco", "Grace",
	"Antonio", "Victoria", "Miguel", "Olivia", "Jose", "Chloe", "Francisco", "Zoe",
}

// DefaultLastNames is the ordered last-name list the identity pool draws from.
var DefaultLastNames = []string{
	"Johnson", "Wilson", "Chen", "Rodriguez", "Kim", "Thompson", "Anderson", "Patel",
	"O'Connor", "Martinez", "Zhang", "Brown", "Lee", "Taylor", "Garcia", "White",
	"Torres", "Davis", "Miller", "Jones", "Smith", "Williams", "Moore", "Jackson",
	"Martin", "Clark", "Lewis", "Walker", "Hall", "Allen", "Young", "King",
	"Wright", "Lopez", "Hill", "Scott", "Green", "Adams", "Baker", "Gonzalez",
	"Nelson", "Carter", "Mitchell", "Perez", "Roberts", "Turner", "Phillips", "Campbell",
	"Parker", "Evans", "Edwards", "Collins", "Stewart", "Sanchez", "Morris", "Rogers",
	"Reed", "Cook", "Morgan", "Bell", "Murphy", "Bailey", "Rivera", "Cooper",
	"Richardson", "Cox", "Howard", "Ward", "Torres", "Peterson", "Gray", "Ramirez",
	"James", "Watson", "Brooks", "Kelly", "Sanders", "Price", "Bennett", "Wood",
	"Barnes", "Ross", "Henderson", "Coleman", "Jenkins", "Perry", "Powell", "Long",
}

// Config holds all configuration options for scrubsnap.
// It is populated from defaults, an optional profile file, and CLI flags,
// then passed through the application explicitly.
type Config struct {
	// Seed initializes the identity pool generator.
	Seed int64

	// IDBase is the first synthetic member ID.
	IDBase int

	// PoolDraws is the number of random draws used to build the identity pool.
	PoolDraws int

	// TeamName is the real team name to remove.
	TeamName string

	// ReplacementTeamName replaces TeamName.
	ReplacementTeamName string

	// OrgSegment is the organization URL path segment to remove.
	OrgSegment string

	// ReplacementOrgSegment replaces OrgSegment.
	ReplacementOrgSegment string

	// TextPlaceholder is the visible-text "no real name" marker.
	TextPlaceholder string

	// AttrPlaceholder is the data-member_name "no real name" sentinel.
	AttrPlaceholder string

	// DefaultIdentity replaces placeholders in the output.
	DefaultIdentity string

	// GuardedName must become TemplateToken rather than a fake name.
	// Empty disables the guard.
	GuardedName string

	// TemplateToken is the replacement for GuardedName.
	TemplateToken string

	// FirstNames and LastNames feed the identity pool.
	FirstNames []string
	LastNames  []string

	// SnapshotTitle names the snapshot file and its asset directory.
	SnapshotTitle string

	// SourceDir holds the original snapshot. It is never written.
	SourceDir string

	// OutputDir receives the anonymized snapshot.
	OutputDir string

	// ConfigFilePath is the path to the profile file.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string

	// Verbose enables detailed log output using slog.LevelDebug.
	Verbose bool

	// DryRun performs the transformation without writing any file.
	DryRun bool

	// SkipAudit disables the residual-leak and EXIF audits.
	SkipAudit bool

	// MaxImageSize is the largest asset the EXIF audit reads. Larger
	// files are skipped.
	MaxImageSize int64

	// JSONReport and MarkdownReport select the summary format.
	// They are mutually exclusive; plain text is the default.
	JSONReport     bool
	MarkdownReport bool

	// ReportFile receives the summary instead of stdout when set.
	ReportFile string

	// SaveToDB records the run in the history database.
	SaveToDB bool

	// DBDir is the directory of the history database.
	DBDir string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Seed:                  DefaultSeed,
		IDBase:                DefaultIDBase,
		PoolDraws:             DefaultPoolDraws,
		TeamName:              DefaultTeamName,
		ReplacementTeamName:   DefaultReplacementTeamName,
		OrgSegment:            DefaultOrgSegment,
		ReplacementOrgSegment: DefaultReplacementOrgSegment,
		TextPlaceholder:       DefaultTextPlaceholder,
		AttrPlaceholder:       DefaultAttrPlaceholder,
		DefaultIdentity:       DefaultIdentity,
		GuardedName:           DefaultGuardedName,
		TemplateToken:         DefaultTemplateToken,
		FirstNames:            append([]string(nil), DefaultFirstNames...),
		LastNames:             append([]string(nil), DefaultLastNames...),
		SnapshotTitle:         DefaultSnapshotTitle,
		SourceDir:             DefaultSourceDir,
		OutputDir:             DefaultOutputDir,
		MaxImageSize:          DefaultMaxImageSize,
		SaveToDB:              true,
		DBDir:                 XDGDataDir(),
	}
}

// ReplacementTitle returns the snapshot title with the team name substituted.
func (c *Config) ReplacementTitle() string {
	return strings.ReplaceAll(c.SnapshotTitle, c.TeamName, c.ReplacementTeamName)
}

// XDGDataDir returns the XDG data directory for scrubsnap.
// On Linux: ~/.local/share/scrubsnap
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for scrubsnap.
// On Linux: ~/.config/scrubsnap
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.TeamName) == "" || strings.TrimSpace(c.ReplacementTeamName) == "" {
		return ErrEmptyTeamName
	}

	if c.ReplacementTeamName == c.TeamName {
		return ErrSameTeamName
	}

	if !strings.Contains(c.SnapshotTitle, c.TeamName) {
		return ErrTitleWithoutTeamName
	}

	if c.IDBase <= 0 {
		return ErrInvalidIDBase
	}

	if c.PoolDraws < MinPoolDraws {
		return ErrInvalidPoolDraws
	}

	if len(c.FirstNames) == 0 || len(c.LastNames) == 0 {
		return ErrEmptyNameList
	}

	if c.MaxImageSize <= 0 {
		return ErrInvalidMaxImageSize
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if absPath(c.SourceDir) == absPath(c.OutputDir) {
		return ErrSameSourceAndOutput
	}

	return nil
}

// absPath returns the cleaned absolute form of path, or the cleaned path
// itself when the working directory is unknown.
func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
