package star

import (
	"bytes"
	"log/slog"

	"github.com/siiky/star/internal/wire"
)

// Entry is the metadata record for one stored file.
type Entry struct {
	// Size is the payload size in bytes.
	Size uint64

	// Offset is the byte distance from the start of the archive stream to
	// this entry's payload.
	Offset uint64

	// PathLen is the length of Path including its NUL terminator.
	PathLen uint64

	// Path is the NUL-terminated path as stored in the metadata table.
	// It is nil for an unpopulated slot.
	Path []byte
}

// Name returns the path without its terminator.
func (e *Entry) Name() string {
	return string(pathContent(e.Path))
}

func (e *Entry) populated() bool {
	return e.Path != nil
}

func (e *Entry) appendFixed(dst []byte) []byte {
	dst = wire.AppendWidth(dst, e.Size, fieldWidth)
	dst = wire.AppendWidth(dst, e.Offset, fieldWidth)
	return wire.AppendWidth(dst, e.PathLen, fieldWidth)
}

func decodeFixed(buf []byte) Entry {
	return Entry{
		Size:    wire.DecodeWidth(buf[0:], fieldWidth),
		Offset:  wire.DecodeWidth(buf[fieldWidth:], fieldWidth),
		PathLen: wire.DecodeWidth(buf[2*fieldWidth:], fieldWidth),
	}
}

// pathContent returns p up to, not including, its first NUL.
func pathContent(p []byte) []byte {
	if i := bytes.IndexByte(p, 0); i >= 0 {
		return p[:i]
	}
	return p
}

// Archive is an in-memory STAR archive.
//
// Entries and Data are index-aligned: Entries[i] describes Data[i]. Both hold
// Header.Count slots once the archive is complete. The archive owns every
// buffer it references.
type Archive struct {
	Header  Header
	Entries []Entry
	Data    [][]byte

	cfg config
}

// log returns the logger, falling back to a discard logger if nil.
func (a *Archive) log() *slog.Logger {
	if a.cfg.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.cfg.logger
}

// Len returns the number of entry slots.
func (a *Archive) Len() int {
	if a == nil {
		return 0
	}
	return len(a.Entries)
}

// CheckHeader reports whether a is non-nil and its header carries the STAR signature.
func (a *Archive) CheckHeader() bool {
	return a != nil && CheckHeader(&a.Header)
}

// Complete reports whether every slot holds a path and a payload.
func (a *Archive) Complete() bool {
	return a.Validate() == nil
}

// Release drops every path and payload buffer held by a, then both
// sequences. It is safe to call on a nil, partial or already released
// archive. The header is left untouched.
func (a *Archive) Release() {
	if a == nil {
		return
	}
	for i := range a.Entries {
		a.Entries[i].Path = nil
	}
	for i := range a.Data {
		a.Data[i] = nil
	}
	a.Entries = nil
	a.Data = nil
}

// releaseUpTo drops the paths of the first paths entries and the first
// payloads payload buffers. Slots past those counts were never written and
// are not touched.
func (a *Archive) releaseUpTo(paths, payloads int) {
	for i := range min(paths, len(a.Entries)) {
		a.Entries[i].Path = nil
	}
	for i := range min(payloads, len(a.Data)) {
		a.Data[i] = nil
	}
	a.Entries = nil
	a.Data = nil
}
