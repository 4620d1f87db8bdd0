// Package database stores the history of anonymization runs in SQLite
// (modernc.org/sqlite, no cgo).
//
// Each run is one row: timestamp, input and output paths, SHA3-256
// digests of the document before and after, and the name, ID,
// substitution, and finding counts. The mappings themselves are never
// stored. The input digest lets a later run notice that the same
// snapshot was already anonymized.
package database
