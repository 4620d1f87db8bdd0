// Package snapshot provides the filesystem side of anonymization: where a
// saved page and its asset directory live, and reading, writing, and
// copying them.
//
// A browser "Save page as, complete" produces "<title>.html" next to a
// "<title>_files" directory. The anonymized copy uses the same convention
// with the replacement team name substituted into the title.
package snapshot
