// Package anonymize replaces real people, teams, organizations, and member
// IDs in a saved HTML snapshot with synthetic values.
//
// The document is treated as an opaque string. Sensitive tokens are found
// with a handful of regular expressions tuned to one known page shape, a
// consistent original -> replacement mapping is built for names and IDs,
// and an ordered list of substitution rules rewrites the text:
//
//  1. team name, plain and %20-encoded
//  2. organization path segment
//  3. mapped member names, in element text and data-member_name attributes
//  4. leftover placeholders, rewritten to a default identity
//  5. the guarded template name, rewritten to a template token
//  6. mapped member IDs, in data-member_id, /members/ URLs, and element IDs
//  7. the encoded asset directory reference
//
// Rules that rewrite mapped values do so in a single pass, so a replacement
// that happens to equal another original is never rewritten again.
package anonymize
