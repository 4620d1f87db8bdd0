// Package log provides slog loggers that keep original personal data out
// of log output.
//
// scrubsnap handles exactly the data it is meant to remove: real member
// names, member IDs, and the real team name. The SecureHandler masks
// attributes whose keys carry such values (original, real_name,
// member_name, member_id, ...) and values that look like contact details,
// even in verbose mode. Replacement values are not masked.
//
// The run summary printed by the report package is the only place the
// original -> replacement mappings are shown in full.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("name mapping",
//	    "original", "Jane Doe",      // written as ***REDACTED***
//	    "replacement", "Pat Quinn",
//	)
package log
