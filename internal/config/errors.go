package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() so callers can use
// errors.Is() to tell which setting is wrong.
var (
	// ErrEmptyTeamName is returned when either the original or the
	// replacement team name is empty. Both appear in file names and in
	// the substitution rules.
	ErrEmptyTeamName = errors.New("invalid team name: original and replacement must be non-empty")

	// ErrSameTeamName is returned when the replacement team name equals the
	// original one. The output would then be named like the source and
	// the team name would never be replaced.
	ErrSameTeamName = errors.New("invalid team name: replacement must differ from the original")

	// ErrTitleWithoutTeamName is returned when the snapshot title does not
	// contain the original team name, which would leave the output file
	// named after the real team.
	ErrTitleWithoutTeamName = errors.New("invalid snapshot title: must contain the original team name")

	// ErrInvalidIDBase is returned when the synthetic ID base is not positive.
	ErrInvalidIDBase = errors.New("invalid id base: must be positive")

	// ErrInvalidPoolDraws is returned when the identity pool draw count is
	// below MinPoolDraws.
	ErrInvalidPoolDraws = errors.New("invalid pool draws: must be at least 200")

	// ErrEmptyNameList is returned when the first or last name list is empty.
	// The identity pool cannot draw from an empty list.
	ErrEmptyNameList = errors.New("invalid name lists: first and last names must be non-empty")

	// ErrInvalidMaxImageSize is returned when the EXIF audit size limit is
	// not positive.
	ErrInvalidMaxImageSize = errors.New("invalid max image size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrSameSourceAndOutput is returned when the output directory equals the
	// source directory. The source snapshot must stay untouched.
	ErrSameSourceAndOutput = errors.New("invalid output directory: must differ from the source directory")
)
