package model

// Severity represents how much a finding risks re-identifying someone
// in the anonymized snapshot.
type Severity int

const (
	// SeverityInfo indicates informational findings with no direct privacy impact.
	SeverityInfo Severity = iota

	// SeverityLow indicates minor issues with limited impact.
	// Examples: EXIF timestamps, editing software.
	SeverityLow

	// SeverityMedium indicates issues that warrant a manual look.
	// Examples: leftover organization path segments, camera models.
	SeverityMedium

	// SeverityHigh indicates data that identifies a real person or team.
	// Examples: a real name surviving in the output.
	SeverityHigh

	// SeverityCritical indicates data that locates a real person.
	// Examples: GPS coordinates in an image.
	SeverityCritical
)

// String returns a human-readable representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Finding types.
const (
	FindingResidualName      = "residual_name"
	FindingResidualMemberID  = "residual_member_id"
	FindingResidualTeamName  = "residual_team_name"
	FindingResidualOrg       = "residual_org_segment"
	FindingIdentityCollision = "identity_collision"
	FindingPoolOverflow      = "pool_overflow"
	FindingExifGPS           = "exif_gps"
	FindingExifAuthor        = "exif_author"
	FindingExifSerial        = "exif_serial"
	FindingExifCamera        = "exif_camera"
	FindingExifSoftware      = "exif_software"
	FindingExifDateTime      = "exif_datetime"
)

// FindingInfo contains metadata about a finding type including severity,
// impact description, and remediation recommendation.
type FindingInfo struct {
	Severity       Severity
	Impact         string
	Recommendation string
}

// findingInfoMapping maps finding types to their metadata.
var findingInfoMapping = map[string]FindingInfo{
	FindingExifGPS: {
		Severity:       SeverityCritical,
		Impact:         "An asset image carries GPS coordinates that reveal where it was taken.",
		Recommendation: "Strip EXIF metadata from the asset before sharing the snapshot.",
	},
	FindingResidualName: {
		Severity:       SeverityHigh,
		Impact:         "A real member name is still present in the anonymized document.",
		Recommendation: "Add the markup that carries this name to the extraction patterns, or replace it by hand.",
	},
	FindingResidualTeamName: {
		Severity:       SeverityHigh,
		Impact:         "The real team name is still present and identifies the club.",
		Recommendation: "Check for encodings of the team name other than plain and %20-encoded text.",
	},
	FindingExifAuthor: {
		Severity:       SeverityHigh,
		Impact:         "An asset image names its author or copyright holder.",
		Recommendation: "Strip EXIF metadata from the asset before sharing the snapshot.",
	},
	FindingExifSerial: {
		Severity:       SeverityHigh,
		Impact:         "An asset image carries a device serial number.",
		Recommendation: "Strip EXIF metadata from the asset before sharing the snapshot.",
	},
	FindingResidualMemberID: {
		Severity:       SeverityMedium,
		Impact:         "A real member ID is still referenced by an element or link.",
		Recommendation: "Add the attribute carrying this ID to the ID substitution rules.",
	},
	FindingResidualOrg: {
		Severity:       SeverityMedium,
		Impact:         "The real organization path segment is still present in a link.",
		Recommendation: "Check for the segment without surrounding slashes or with different casing.",
	},
	FindingIdentityCollision: {
		Severity:       SeverityMedium,
		Impact:         "Two different real names received the same fake name, merging two people in the output.",
		Recommendation: "Increase the pool draw count or extend the first and last name lists.",
	},
	FindingExifCamera: {
		Severity:       SeverityMedium,
		Impact:         "An asset image names the camera make or model used.",
		Recommendation: "Strip EXIF metadata from the asset before sharing the snapshot.",
	},
	FindingExifSoftware: {
		Severity:       SeverityLow,
		Impact:         "An asset image names the software that produced it.",
		Recommendation: "Strip EXIF metadata if the editing environment should stay private.",
	},
	FindingExifDateTime: {
		Severity:       SeverityLow,
		Impact:         "An asset image carries capture timestamps.",
		Recommendation: "Strip EXIF metadata if the capture time should stay private.",
	},
	FindingPoolOverflow: {
		Severity:       SeverityInfo,
		Impact:         "The identity pool ran out and extra names were drawn without a uniqueness check.",
		Recommendation: "Increase the pool draw count if identity collisions are reported.",
	},
}

// GetFindingInfo returns the metadata for a finding type.
// Unknown types are reported as informational.
func GetFindingInfo(findingType string) FindingInfo {
	if info, ok := findingInfoMapping[findingType]; ok {
		return info
	}
	return FindingInfo{
		Severity:       SeverityInfo,
		Impact:         "Unknown finding type. Review manually.",
		Recommendation: "Investigate the finding and assess risk.",
	}
}
