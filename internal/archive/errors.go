package archive

import "errors"

var (
	// ErrRunNotFound is returned when no run matches an id or prefix.
	ErrRunNotFound = errors.New("run not found")
	// ErrAmbiguousID is returned when a prefix matches more than one run.
	ErrAmbiguousID = errors.New("run id prefix is ambiguous")
	// ErrLocked is returned when another process holds the archive lock.
	ErrLocked = errors.New("archive is locked by another process")
)
