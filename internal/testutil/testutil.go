// Package testutil provides fixtures shared by the STAR package tests.
package testutil

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

// TestEntry describes one entry for EncodeArchive.
type TestEntry struct {
	Path string
	Data []byte
}

// headerSize and fixedSize mirror the on-stream layout; they are spelled out
// here so fixtures do not depend on the package under test.
const (
	headerSize = 12
	fixedSize  = 24
)

// EncodeArchive serializes entries in the STAR layout with correct offsets.
func EncodeArchive(tb testing.TB, entries []TestEntry) []byte {
	tb.Helper()

	offset := uint64(headerSize + fixedSize*len(entries))
	for _, e := range entries {
		offset += uint64(len(e.Path) + 1)
	}

	var buf bytes.Buffer
	buf.WriteString("STAR")
	putUint64(&buf, uint64(len(entries)))
	for _, e := range entries {
		putUint64(&buf, uint64(len(e.Data)))
		putUint64(&buf, offset)
		putUint64(&buf, uint64(len(e.Path)+1))
		buf.WriteString(e.Path)
		buf.WriteByte(0)
		offset += uint64(len(e.Data))
	}
	for _, e := range entries {
		buf.Write(e.Data)
	}
	return buf.Bytes()
}

func putUint64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

// SampleEntries returns a small fixed set of entries with distinct sizes,
// including an empty payload.
func SampleEntries() []TestEntry {
	return []TestEntry{
		{Path: "a.txt", Data: []byte{1, 2, 3}},
		{Path: "bb.txt", Data: []byte{9, 9}},
		{Path: "dir/empty", Data: []byte{}},
		{Path: "dir/c.bin", Data: bytes.Repeat([]byte{0xc}, 64)},
	}
}

// ShortWriter accepts at most Limit bytes in total, then reports short
// writes without an error.
type ShortWriter struct {
	Limit int
	bytes.Buffer
}

// Write implements io.Writer.
func (w *ShortWriter) Write(p []byte) (int, error) {
	room := max(w.Limit-w.Len(), 0)
	n := min(len(p), room)
	w.Buffer.Write(p[:n])
	return n, nil
}

// ErrWriterFailed is returned by FailingWriter once its limit is reached.
var ErrWriterFailed = errors.New("testutil: writer failed")

// FailingWriter accepts at most Limit bytes in total, then fails.
type FailingWriter struct {
	Limit int
	bytes.Buffer
}

// Write implements io.Writer.
func (w *FailingWriter) Write(p []byte) (int, error) {
	if w.Len()+len(p) > w.Limit {
		n := max(w.Limit-w.Len(), 0)
		w.Buffer.Write(p[:n])
		return n, ErrWriterFailed
	}
	return w.Buffer.Write(p)
}
