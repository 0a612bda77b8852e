package star

import (
	"errors"
	"fmt"
)

// Sentinel errors for malformed input.
var (
	// ErrInvalidMagic is returned when a header does not carry the STAR signature.
	ErrInvalidMagic = errors.New("star: invalid magic")

	// ErrTruncated is returned when a stream ends before a header, metadata
	// record, path or payload has been read in full.
	ErrTruncated = errors.New("star: truncated stream")
)

// Sentinel errors for resource limits.
var (
	// ErrSizeOverflow is returned when a size or offset exceeds supported limits.
	ErrSizeOverflow = errors.New("star: size overflow")

	// ErrTooManyEntries is returned when an entry count exceeds the configured limit.
	ErrTooManyEntries = errors.New("star: too many entries")
)

// Sentinel errors for precondition violations.
var (
	// ErrNilArchive is returned when an operation is given a nil archive.
	ErrNilArchive = errors.New("star: nil archive")

	// ErrNilStream is returned when an operation is given a nil reader or writer.
	ErrNilStream = errors.New("star: nil stream")

	// ErrEmptyArchive is returned by New when asked for zero entries.
	ErrEmptyArchive = errors.New("star: archive must hold at least one entry")

	// ErrIndexOutOfRange is returned when an entry index is not below the entry count.
	ErrIndexOutOfRange = errors.New("star: entry index out of range")

	// ErrIncomplete is returned when an entry slot is missing its path or payload.
	ErrIncomplete = errors.New("star: incomplete entry")

	// ErrPathLength is returned when an entry's recorded path length does not
	// match its path buffer.
	ErrPathLength = errors.New("star: path length mismatch")

	// ErrInvalidPath is returned when a path cannot be stored, such as one
	// containing a NUL byte.
	ErrInvalidPath = errors.New("star: invalid path")

	// ErrNotRegular is returned when an input file is not a regular file.
	ErrNotRegular = errors.New("star: not a regular file")
)

// EntryError records the entry an operation failed on.
type EntryError struct {
	Op    string
	Index uint64
	Err   error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("star: %s entry %d: %v", e.Op, e.Index, e.Err)
}

func (e *EntryError) Unwrap() error { return e.Err }
