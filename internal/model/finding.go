package model

// Finding represents a single residual risk noticed after anonymization.
type Finding struct {
	// Type is the finding type identifier, one of the Finding* constants.
	Type string `json:"type"`

	// Severity is the risk level.
	Severity Severity `json:"severity"`

	// SeverityText is the human-readable severity.
	SeverityText string `json:"severity_text"`

	// Title is a short description of the finding.
	Title string `json:"title"`

	// Impact explains why this finding matters.
	Impact string `json:"impact,omitempty"`

	// Recommendation provides guidance on how to address this finding.
	Recommendation string `json:"recommendation,omitempty"`

	// Value is the specific value found (name, ID, EXIF tag).
	Value string `json:"value,omitempty"`

	// Location is where the finding was discovered.
	Location string `json:"location,omitempty"`
}

// NewFinding builds a Finding whose severity, impact, and recommendation
// come from the finding type.
func NewFinding(findingType, title, value, location string) Finding {
	info := GetFindingInfo(findingType)
	return Finding{
		Type:           findingType,
		Severity:       info.Severity,
		SeverityText:   info.Severity.String(),
		Title:          title,
		Impact:         info.Impact,
		Recommendation: info.Recommendation,
		Value:          value,
		Location:       location,
	}
}
