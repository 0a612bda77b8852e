package star

import (
	"fmt"
	"io"

	"github.com/siiky/star/internal/sizing"
	"github.com/siiky/star/internal/wire"
)

// Validate checks that a is complete and internally consistent, so that
// writing it cannot fail on anything but the underlying stream.
//
// Every slot must hold a payload buffer of exactly Size bytes and a path
// buffer of exactly PathLen bytes whose content, up to the first NUL, is
// PathLen-1 bytes long.
func (a *Archive) Validate() error {
	if a == nil {
		return ErrNilArchive
	}
	if !a.CheckHeader() {
		return ErrInvalidMagic
	}
	count := a.Header.Count
	if a.Entries == nil || a.Data == nil {
		return ErrIncomplete
	}
	if uint64(len(a.Entries)) != count || uint64(len(a.Data)) != count {
		return fmt.Errorf("%w: %d entries and %d payloads for count %d", ErrIncomplete, len(a.Entries), len(a.Data), count)
	}
	for i := range a.Entries {
		e := &a.Entries[i]
		if a.Data[i] == nil || !e.populated() {
			return &EntryError{Op: "validate", Index: uint64(i), Err: ErrIncomplete}
		}
		if uint64(len(a.Data[i])) != e.Size {
			return &EntryError{Op: "validate", Index: uint64(i), Err: fmt.Errorf("%w: payload holds %d bytes, size is %d", ErrIncomplete, len(a.Data[i]), e.Size)}
		}
		content := uint64(len(pathContent(e.Path)))
		if e.PathLen != content+1 || uint64(len(e.Path)) != e.PathLen {
			return &EntryError{Op: "validate", Index: uint64(i), Err: fmt.Errorf("%w: recorded %d, path %q", ErrPathLength, e.PathLen, pathContent(e.Path))}
		}
	}
	return nil
}

// WriteTo serializes a to w and returns the number of bytes written.
//
// a is validated before anything is written; an invalid archive leaves w
// untouched. Once writing has started, the first failed or short write is
// returned and w is left at an undefined position.
func (a *Archive) WriteTo(w io.Writer) (int64, error) {
	if w == nil {
		return 0, ErrNilStream
	}
	if err := a.Validate(); err != nil {
		return 0, fmt.Errorf("write archive: %w", err)
	}

	cw := &wire.CountingWriter{W: w}
	n := func() int64 {
		written, _ := sizing.ToInt64(cw.N, ErrSizeOverflow)
		return written
	}

	if err := wire.WriteFull(cw, a.Header.appendBinary(make([]byte, 0, HeaderSize))); err != nil {
		return n(), fmt.Errorf("write header: %w", err)
	}

	fixed := make([]byte, 0, EntryFixedSize)
	for i := range a.Entries {
		e := &a.Entries[i]
		if err := wire.WriteFull(cw, e.appendFixed(fixed[:0])); err != nil {
			return n(), &EntryError{Op: "write metadata", Index: uint64(i), Err: err}
		}
		if err := wire.WriteFull(cw, e.Path); err != nil {
			return n(), &EntryError{Op: "write path", Index: uint64(i), Err: err}
		}
	}

	for i, data := range a.Data {
		if err := wire.WriteFull(cw, data); err != nil {
			return n(), &EntryError{Op: "write payload", Index: uint64(i), Err: err}
		}
	}

	a.log().Info("wrote archive", "entries", a.Header.Count, "bytes", cw.N)
	return n(), nil
}

// Write serializes a to w. See Archive.WriteTo.
func Write(a *Archive, w io.Writer) error {
	_, err := a.WriteTo(w)
	return err
}
