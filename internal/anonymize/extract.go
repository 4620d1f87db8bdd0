package anonymize

import "regexp"

var (
	// memberLinkPattern captures the text of an eligible member link.
	memberLinkPattern = regexp.MustCompile(`<a class="fw-bold eligibleMemberName"[^>]*>([^<]+)</a>`)

	// memberNameAttrPattern captures data-member_name attribute values.
	memberNameAttrPattern = regexp.MustCompile(`data-member_name="([^"]+)"`)

	// memberIDAttrPattern captures numeric data-member_id attribute values.
	memberIDAttrPattern = regexp.MustCompile(`data-member_id="(\d+)"`)
)

// ExtractLinkNames returns the inner text of every eligible member link,
// in document order, duplicates included.
func ExtractLinkNames(content string) []string {
	return submatches(memberLinkPattern, content)
}

// ExtractAttributeNames returns every data-member_name value, in document
// order, duplicates included.
func ExtractAttributeNames(content string) []string {
	return submatches(memberNameAttrPattern, content)
}

// ExtractCandidateNames returns all link names followed by all attribute
// names. Placeholders are not filtered here.
func ExtractCandidateNames(content string) []string {
	return append(ExtractLinkNames(content), ExtractAttributeNames(content)...)
}

// ExtractMemberIDs returns the distinct data-member_id values in the order
// they first appear.
func ExtractMemberIDs(content string) []string {
	ids := make([]string, 0)
	seen := make(map[string]struct{})
	for _, id := range submatches(memberIDAttrPattern, content) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

func submatches(re *regexp.Regexp, content string) []string {
	matches := re.FindAllStringSubmatch(content, -1)
	result := make([]string, 0, len(matches))
	for _, m := range matches {
		result = append(result, m[1])
	}
	return result
}
