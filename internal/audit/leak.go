package audit

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/nao1215/scrubsnap/internal/model"
)

// memberIDRefPattern matches the places a member ID is embedded.
var memberIDRefPattern = regexp.MustCompile(`(?:data-member_id="|/members/|eligibleMember_)(\d+)`)

// fragment is one piece of document text together with where it sits.
type fragment struct {
	text     string
	location string
}

// term is an original value and the forms it can take in parsed text.
// Originals are taken from raw markup and may hold character references,
// which the parser decodes.
type term struct {
	value string
	forms []string
}

func newTerm(value string) term {
	t := term{value: value, forms: []string{value}}
	if decoded := html.UnescapeString(value); decoded != value {
		t.forms = append(t.forms, decoded)
	}
	return t
}

func (t term) foundIn(text string) bool {
	for _, form := range t.forms {
		if strings.Contains(text, form) {
			return true
		}
	}
	return false
}

// LeakAuditor searches an anonymized document for original values.
type LeakAuditor struct {
	names      []term
	ids        map[string]bool
	teamNames  []term
	orgSegment *term
}

// NewLeakAuditor returns a LeakAuditor for the given originals.
// Originals that are also used as a replacement are not searched for,
// since finding them proves nothing.
func NewLeakAuditor(teamName, encodedTeamName, orgSegment string, names, ids *model.Mapping) *LeakAuditor {
	replacements := make(map[string]bool, names.Len())
	for _, p := range names.Pairs() {
		replacements[p.Replacement] = true
	}

	a := &LeakAuditor{
		names:     make([]term, 0, names.Len()),
		ids:       make(map[string]bool, ids.Len()),
		teamNames: make([]term, 0, 2),
	}
	if orgSegment != "" {
		org := newTerm(orgSegment)
		a.orgSegment = &org
	}

	for _, original := range names.Originals() {
		if !replacements[original] {
			a.names = append(a.names, newTerm(original))
		}
	}

	idReplacements := make(map[string]bool, ids.Len())
	for _, p := range ids.Pairs() {
		idReplacements[p.Replacement] = true
	}
	for _, original := range ids.Originals() {
		if !idReplacements[original] {
			a.ids[original] = true
		}
	}

	for _, t := range []string{teamName, encodedTeamName} {
		if t != "" {
			a.teamNames = append(a.teamNames, newTerm(t))
		}
	}

	return a
}

// Audit parses content and returns one finding per leaked value.
// source names the document in finding locations.
func (a *LeakAuditor) Audit(content, source string) ([]model.Finding, error) {
	fragments, err := collectFragments(content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", source, err)
	}

	findings := make([]model.Finding, 0)
	seen := make(map[string]bool)

	report := func(findingType, title, value, location string) {
		key := findingType + "\x00" + value
		if seen[key] {
			return
		}
		seen[key] = true
		findings = append(findings, model.NewFinding(findingType, title, value, source+" "+location))
	}

	for _, f := range fragments {
		for _, name := range a.names {
			if name.foundIn(f.text) {
				report(model.FindingResidualName, "Original member name still present", name.value, f.location)
			}
		}

		for _, team := range a.teamNames {
			if team.foundIn(f.text) {
				report(model.FindingResidualTeamName, "Original team name still present", team.value, f.location)
			}
		}

		if a.orgSegment != nil && a.orgSegment.foundIn(f.text) {
			report(model.FindingResidualOrg, "Original organization segment still present", a.orgSegment.value, f.location)
		}

		for _, m := range memberIDRefPattern.FindAllStringSubmatch(f.text, -1) {
			if a.ids[m[1]] {
				report(model.FindingResidualMemberID, "Original member ID still referenced", m[1], f.location)
			}
		}
	}

	return findings, nil
}

// collectFragments parses content and returns every text node, comment,
// and attribute in document order. Attributes are rendered as name="value"
// so attribute-shaped patterns match them.
func collectFragments(content string) ([]fragment, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, err
	}

	fragments := make([]fragment, 0)

	var walk func(n *html.Node, parent string)
	walk = func(n *html.Node, parent string) {
		switch n.Type {
		case html.ElementNode:
			for _, attr := range n.Attr {
				fragments = append(fragments, fragment{
					text:     attr.Key + `="` + attr.Val + `"`,
					location: "<" + n.Data + " " + attr.Key + ">",
				})
			}
			parent = n.Data
		case html.TextNode:
			if strings.TrimSpace(n.Data) != "" {
				// Text is wrapped so >name< patterns still match.
				fragments = append(fragments, fragment{
					text:     ">" + n.Data + "<",
					location: "<" + parent + "> text",
				})
			}
		case html.CommentNode:
			fragments = append(fragments, fragment{text: n.Data, location: "comment"})
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, parent)
		}
	}

	walk(doc, "document")

	return fragments, nil
}

// CheckMapping reports fake names shared by several real names, and pool
// overflow.
func CheckMapping(names *model.Mapping, poolSize, poolOverflow int) []model.Finding {
	findings := make([]model.Finding, 0)

	owners := make(map[string]int, names.Len())
	for _, p := range names.Pairs() {
		owners[p.Replacement]++
	}
	for _, p := range names.Pairs() {
		if owners[p.Replacement] > 1 {
			findings = append(findings, model.NewFinding(
				model.FindingIdentityCollision,
				"Fake identity assigned to more than one member",
				p.Replacement,
				fmt.Sprintf("%d members", owners[p.Replacement]),
			))
			owners[p.Replacement] = 0
		}
	}

	if poolOverflow > 0 {
		findings = append(findings, model.NewFinding(
			model.FindingPoolOverflow,
			"Identity pool exhausted",
			fmt.Sprintf("%d extra draws", poolOverflow),
			fmt.Sprintf("pool of %d", poolSize),
		))
	}

	return findings
}
