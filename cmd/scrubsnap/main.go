// Package main provides the entry point for the scrubsnap CLI.
//
// scrubsnap produces an anonymized copy of a saved revolutioniseSPORT
// "Edit crew" page: member names, member IDs, the team name, and the
// organization path segment are replaced with synthetic values. The
// original snapshot is only read.
//
// Usage:
//
//	scrubsnap run
//	scrubsnap run --source revsport-sample --output-dir revsport-sample-anonymized
//	scrubsnap history
//
// See --help for all available options.
package main

// main is the entry point for scrubsnap.
func main() {
	Execute()
}
