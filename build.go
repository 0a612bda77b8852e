package star

import (
	"bytes"
	"fmt"
	"io"

	"github.com/siiky/star/internal/sizing"
	"github.com/siiky/star/internal/wire"
)

// New returns an archive with count empty slots, ready to be filled with
// AddEntry. It returns ErrEmptyArchive if count is zero.
//
// No limits apply unless set with WithMaxEntries, WithMaxEntrySize or
// WithMaxPathLen; the same limits then also bound AddEntry.
func New(count uint64, opts ...Option) (*Archive, error) {
	if count == 0 {
		return nil, ErrEmptyArchive
	}
	cfg := newConfig(opts)
	if cfg.maxEntries > 0 && count > cfg.maxEntries {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyEntries, count, cfg.maxEntries)
	}
	n, err := sizing.ToInt(count, ErrSizeOverflow)
	if err != nil {
		return nil, err
	}

	return &Archive{
		Header:  Header{Magic: Magic, Count: count},
		Entries: make([]Entry, n),
		Data:    make([][]byte, n),
		cfg:     cfg,
	}, nil
}

// AddEntry fills slot index with size bytes read from src, stored under path.
//
// The payload is read in full before the slot is touched; on any error the
// archive is left unchanged. A slot that was already filled is overwritten.
// Offsets are not assigned; call ComputeOffsets once every slot is filled.
func (a *Archive) AddEntry(index uint64, path string, size uint64, src io.Reader) error {
	if a == nil {
		return ErrNilArchive
	}
	if src == nil {
		return ErrNilStream
	}
	if index >= a.Header.Count || index >= uint64(len(a.Entries)) || index >= uint64(len(a.Data)) {
		return fmt.Errorf("%w: %d >= %d", ErrIndexOutOfRange, index, a.Header.Count)
	}
	if bytes.IndexByte([]byte(path), 0) >= 0 {
		return &EntryError{Op: "add", Index: index, Err: fmt.Errorf("%w: %q contains NUL", ErrInvalidPath, path)}
	}
	if a.cfg.maxPathLen > 0 && uint64(len(path))+1 > a.cfg.maxPathLen {
		return &EntryError{Op: "add", Index: index, Err: fmt.Errorf("%w: path length %d", ErrSizeOverflow, len(path)+1)}
	}
	if a.cfg.maxEntrySize > 0 && size > a.cfg.maxEntrySize {
		return &EntryError{Op: "add", Index: index, Err: fmt.Errorf("%w: payload size %d", ErrSizeOverflow, size)}
	}
	n, err := sizing.ToInt(size, ErrSizeOverflow)
	if err != nil {
		return &EntryError{Op: "add", Index: index, Err: err}
	}

	data := make([]byte, n)
	if err := wire.ReadFull(src, data, ErrTruncated); err != nil {
		return &EntryError{Op: "add", Index: index, Err: err}
	}

	p := make([]byte, len(path)+1)
	copy(p, path)

	a.Data[index] = data
	a.Entries[index] = Entry{
		Size:    size,
		PathLen: uint64(len(p)),
		Path:    p,
	}
	a.log().Debug("added entry", "index", index, "path", path, "size", size)
	return nil
}

// DataOffset returns the offset of the payload block: the encoded size of the
// header plus the full metadata table. Every slot must hold a path.
func (a *Archive) DataOffset() (uint64, error) {
	if a == nil {
		return 0, ErrNilArchive
	}
	count := a.Header.Count
	if uint64(len(a.Entries)) != count {
		return 0, fmt.Errorf("%w: %d entries for count %d", ErrIncomplete, len(a.Entries), count)
	}

	table, ok := sizing.MulUint64(count, EntryFixedSize)
	if !ok {
		return 0, ErrSizeOverflow
	}
	pathLens := make([]uint64, len(a.Entries))
	for i := range a.Entries {
		if !a.Entries[i].populated() {
			return 0, &EntryError{Op: "compute offsets", Index: uint64(i), Err: ErrIncomplete}
		}
		pathLens[i] = a.Entries[i].PathLen
	}
	base, ok := sizing.SumUint64(HeaderSize, append(pathLens, table)...)
	if !ok {
		return 0, ErrSizeOverflow
	}
	return base, nil
}

// ComputeOffsets assigns every entry's Offset from the sizes and path lengths
// already recorded. The first payload starts right after the metadata table;
// each following payload starts where the previous one ends.
func (a *Archive) ComputeOffsets() error {
	offset, err := a.DataOffset()
	if err != nil {
		return err
	}
	for i := range a.Entries {
		a.Entries[i].Offset = offset
		if offset, err = nextOffset(offset, a.Entries[i].Size); err != nil {
			return &EntryError{Op: "compute offsets", Index: uint64(i), Err: err}
		}
	}
	a.log().Debug("computed offsets", "entries", len(a.Entries))
	return nil
}

func nextOffset(offset, size uint64) (uint64, error) {
	next, ok := sizing.AddUint64(offset, size)
	if !ok {
		return 0, ErrSizeOverflow
	}
	return next, nil
}
