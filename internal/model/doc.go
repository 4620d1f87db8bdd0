// Package model defines the core data structures used throughout scrubsnap.
//
// This package contains the following main types:
//   - Document: the in-memory text of the snapshot being anonymized
//   - Mapping: an insertion-ordered original -> replacement table, used for
//     both personal names and member IDs
//   - Finding: a residual risk noticed after anonymization
//   - RunReport: everything one run produced, handed to report writers
//
// The models live in their own package so the anonymizer, the pipeline,
// the audits, and the report writers can share them without import cycles.
package model
