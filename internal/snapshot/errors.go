package snapshot

import "errors"

// Snapshot errors. Every failure aborts the run; there is no retry.
var (
	// ErrInputNotFound is returned when the input HTML document does not exist.
	// It is checked before anything is copied or written.
	ErrInputNotFound = errors.New("input snapshot not found")

	// ErrOutputOverlapsSource is returned when an output path is, or lies
	// inside, a source path. Copying would then overwrite or delete the
	// source snapshot.
	ErrOutputOverlapsSource = errors.New("output overlaps the source snapshot")

	// ErrIOFailure wraps every other read, write, or copy error.
	ErrIOFailure = errors.New("snapshot i/o failure")
)
