// Package report writes the summary of an anonymization run.
//
// Three formats are available:
//   - SimpleWriter: the plain-text console summary
//   - JSONWriter and FullJSONWriter: structured output for other tools
//   - MarkdownWriter: a summary for tickets and pull requests
//
// Every format lists both mappings with their originals. Report files are
// created with owner-only permissions by the CLI.
package report
