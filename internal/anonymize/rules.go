package anonymize

import (
	"regexp"
	"strings"

	"github.com/nao1215/scrubsnap/internal/config"
	"github.com/nao1215/scrubsnap/internal/model"
)

// Rule names, reported with each rule's replacement count.
const (
	RuleTeamName         = "team-name"
	RuleTeamNameEncoded  = "team-name-encoded"
	RuleOrgSegment       = "org-segment"
	RuleMemberNames      = "member-names"
	RuleTextPlaceholder  = "text-placeholder"
	RuleAttrPlaceholder  = "attr-placeholder"
	RuleGuardedNameText  = "guarded-name-text"
	RuleGuardedNameAttr  = "guarded-name-attr"
	RuleMemberIDs        = "member-ids"
	RuleAssetDirFragment = "asset-dir-reference"
)

// Rule rewrites document text and reports how many replacements it made.
type Rule interface {
	Name() string
	Apply(content string) (string, int)
}

// PatternRule replaces every match of a fixed pattern with a fixed string.
// The replacement is inserted literally; $ has no special meaning.
type PatternRule struct {
	name        string
	pattern     *regexp.Regexp
	replacement string
}

// NewLiteralPatternRule returns a PatternRule matching literal exactly.
// An empty literal yields a rule that never matches.
func NewLiteralPatternRule(name, literal, replacement string) *PatternRule {
	r := &PatternRule{name: name, replacement: replacement}
	if literal != "" {
		r.pattern = regexp.MustCompile(regexp.QuoteMeta(literal))
	}
	return r
}

// Name returns the rule name.
func (r *PatternRule) Name() string {
	return r.name
}

// Apply replaces every match in content.
func (r *PatternRule) Apply(content string) (string, int) {
	if r.pattern == nil {
		return content, 0
	}
	n := len(r.pattern.FindAllStringIndex(content, -1))
	if n == 0 {
		return content, 0
	}
	return r.pattern.ReplaceAllLiteralString(content, r.replacement), n
}

// MappingRule rewrites every mapped original, wrapped in each of a set of
// formats, to the same format around its replacement. All formats and
// pairs are applied in one pass over the text.
type MappingRule struct {
	name     string
	keys     []string
	replacer *strings.Replacer
}

// NewMappingRule builds a MappingRule. Each format holds the marker {}
// where the value goes, e.g. `>{}<`.
func NewMappingRule(name string, mapping *model.Mapping, formats ...string) *MappingRule {
	oldnew := make([]string, 0, mapping.Len()*len(formats)*2)
	keys := make([]string, 0, mapping.Len()*len(formats))
	for _, pair := range mapping.Pairs() {
		for _, format := range formats {
			from := strings.Replace(format, "{}", pair.Original, 1)
			to := strings.Replace(format, "{}", pair.Replacement, 1)
			oldnew = append(oldnew, from, to)
			keys = append(keys, from)
		}
	}
	return &MappingRule{
		name:     name,
		keys:     keys,
		replacer: strings.NewReplacer(oldnew...),
	}
}

// Name returns the rule name.
func (r *MappingRule) Name() string {
	return r.name
}

// Apply rewrites every mapped occurrence in content.
func (r *MappingRule) Apply(content string) (string, int) {
	if len(r.keys) == 0 {
		return content, 0
	}
	before := 0
	for _, k := range r.keys {
		before += strings.Count(content, k)
	}
	if before == 0 {
		return content, 0
	}
	return r.replacer.Replace(content), before
}

// memberIDRefPattern matches every place a member ID is embedded.
var memberIDRefPattern = regexp.MustCompile(`(data-member_id="|/members/|id="eligibleMember_)(\d+)`)

// IDRule rewrites mapped member IDs in data-member_id attributes,
// /members/<id> URLs, and eligibleMember_<id> element IDs. The whole number
// is matched, so ID 55 never rewrites part of 5512.
type IDRule struct {
	ids *model.Mapping
}

// NewIDRule returns an IDRule for ids.
func NewIDRule(ids *model.Mapping) *IDRule {
	return &IDRule{ids: ids}
}

// Name returns the rule name.
func (r *IDRule) Name() string {
	return RuleMemberIDs
}

// Apply rewrites every mapped ID reference in content.
func (r *IDRule) Apply(content string) (string, int) {
	if r.ids.Len() == 0 {
		return content, 0
	}
	n := 0
	out := memberIDRefPattern.ReplaceAllStringFunc(content, func(match string) string {
		sub := memberIDRefPattern.FindStringSubmatch(match)
		fake, ok := r.ids.Get(sub[2])
		if !ok {
			return match
		}
		n++
		return sub[1] + fake
	})
	return out, n
}

// BuildRules returns the substitution rules in the order they must run.
func BuildRules(s Settings, names, ids *model.Mapping) []Rule {
	rules := []Rule{
		NewLiteralPatternRule(RuleTeamName, s.TeamName, s.ReplacementTeamName),
		NewLiteralPatternRule(RuleTeamNameEncoded, EncodeSpaces(s.TeamName), EncodeSpaces(s.ReplacementTeamName)),
		NewLiteralPatternRule(RuleOrgSegment, s.OrgSegment, s.ReplacementOrgSegment),
		NewMappingRule(RuleMemberNames, names, `>{}<`, `data-member_name="{}"`),
		NewLiteralPatternRule(RuleTextPlaceholder, wrapText(s.TextPlaceholder), ">"+s.DefaultIdentity+"<"),
		NewLiteralPatternRule(RuleAttrPlaceholder, wrapAttr(s.AttrPlaceholder), attr(s.DefaultIdentity)),
	}

	if s.GuardedName != "" {
		rules = append(rules,
			NewLiteralPatternRule(RuleGuardedNameText, ">"+s.GuardedName+"<", ">"+s.TemplateToken+"<"),
			NewLiteralPatternRule(RuleGuardedNameAttr, attr(s.GuardedName), attr(s.TemplateToken)),
		)
	}

	rules = append(rules,
		NewIDRule(ids),
		NewLiteralPatternRule(RuleAssetDirFragment,
			EncodeSpaces(s.SnapshotTitle+config.AssetDirSuffix),
			EncodeSpaces(s.ReplacementTitle+config.AssetDirSuffix)),
	)

	return rules
}

func attr(value string) string {
	return `data-member_name="` + value + `"`
}

// wrapText and wrapAttr return "" for an empty value so the rule is disabled
// instead of matching every "><" or empty attribute.
func wrapText(value string) string {
	if value == "" {
		return ""
	}
	return ">" + value + "<"
}

func wrapAttr(value string) string {
	if value == "" {
		return ""
	}
	return attr(value)
}

// ApplyRules runs rules in order over content.
func ApplyRules(content string, rules []Rule) (string, []model.RuleCount) {
	counts := make([]model.RuleCount, 0, len(rules))
	for _, rule := range rules {
		var n int
		content, n = rule.Apply(content)
		counts = append(counts, model.RuleCount{Rule: rule.Name(), Count: n})
	}
	return content, counts
}
