package star

import (
	"fmt"
	"io"

	"github.com/siiky/star/internal/sizing"
	"github.com/siiky/star/internal/wire"
)

// initialSlots caps the up-front allocation for entry sequences read from a
// stream; the sequences grow as entries are actually read.
const initialSlots = 1024

// ReadHeader reads and validates the fixed-size header at the start of r.
//
// It returns ErrTruncated if r holds fewer than HeaderSize bytes and
// ErrInvalidMagic if the signature does not match.
func ReadHeader(r io.Reader) (Header, error) {
	if r == nil {
		return Header{}, ErrNilStream
	}
	buf := make([]byte, HeaderSize)
	if err := wire.ReadFull(r, buf, ErrTruncated); err != nil {
		return Header{}, err
	}
	h := decodeHeader(buf)
	if !CheckHeader(&h) {
		return Header{}, fmt.Errorf("%w: %q", ErrInvalidMagic, h.Magic[:])
	}
	return h, nil
}

// ReadEntryMetadataTable reads up to a.Header.Count metadata records from r
// and stores them in a.Entries at their index.
//
// It returns the number of records read in full. Reading stops at the first
// record whose fixed fields or path cannot be read completely; that record is
// not counted and its path buffer is dropped. The returned error describes why
// reading stopped and is nil only when every record was read.
func ReadEntryMetadataTable(a *Archive, r io.Reader) (int, error) {
	if a == nil {
		return 0, ErrNilArchive
	}
	if r == nil {
		return 0, ErrNilStream
	}

	count := a.Header.Count
	if a.Entries == nil {
		a.Entries = make([]Entry, 0, min(count, initialSlots))
	}

	fixed := make([]byte, EntryFixedSize)
	for i := range count {
		if err := wire.ReadFull(r, fixed, ErrTruncated); err != nil {
			return stopAt("read metadata", i, err)
		}
		e := decodeFixed(fixed)
		if a.cfg.maxPathLen > 0 && e.PathLen > a.cfg.maxPathLen {
			return stopAt("read metadata", i, fmt.Errorf("%w: path length %d", ErrSizeOverflow, e.PathLen))
		}
		n, err := sizing.ToInt(e.PathLen, ErrSizeOverflow)
		if err != nil {
			return stopAt("read metadata", i, err)
		}

		e.Path = make([]byte, n)
		if err := wire.ReadFull(r, e.Path, ErrTruncated); err != nil {
			return stopAt("read path", i, err)
		}

		if i < uint64(len(a.Entries)) {
			a.Entries[i] = e
		} else {
			a.Entries = append(a.Entries, e)
		}
	}

	a.log().Debug("read metadata table", "entries", count)
	return int(count), nil //nolint:gosec // count entries are stored in memory
}

// ReadEntryPayloads reads one payload per metadata record from r and stores
// them in a.Data at their index. The metadata table must have been read.
//
// It returns the number of payloads read in full. Reading stops at the first
// payload that cannot be read completely; its buffer is dropped and it is not
// counted.
func ReadEntryPayloads(a *Archive, r io.Reader) (int, error) {
	if a == nil {
		return 0, ErrNilArchive
	}
	if r == nil {
		return 0, ErrNilStream
	}

	count := a.Header.Count
	if uint64(len(a.Entries)) < count {
		return 0, fmt.Errorf("%w: metadata table holds %d of %d entries", ErrIncomplete, len(a.Entries), count)
	}
	if a.Data == nil {
		a.Data = make([][]byte, 0, min(count, initialSlots))
	}

	for i := range count {
		size := a.Entries[i].Size
		if a.cfg.maxEntrySize > 0 && size > a.cfg.maxEntrySize {
			return stopAt("read payload", i, fmt.Errorf("%w: payload size %d", ErrSizeOverflow, size))
		}
		n, err := sizing.ToInt(size, ErrSizeOverflow)
		if err != nil {
			return stopAt("read payload", i, err)
		}

		buf := make([]byte, n)
		if err := wire.ReadFull(r, buf, ErrTruncated); err != nil {
			return stopAt("read payload", i, err)
		}

		if i < uint64(len(a.Data)) {
			a.Data[i] = buf
		} else {
			a.Data = append(a.Data, buf)
		}
	}

	a.log().Debug("read payloads", "entries", count)
	return int(count), nil //nolint:gosec // count <= len(a.Entries)
}

// Read reads a complete archive from r.
//
// The header, the metadata table and the payloads are read in that order.
// If any stage stops short, everything read so far is released and Read
// returns a nil archive; no partially read archive is ever returned.
func Read(r io.Reader, opts ...Option) (*Archive, error) {
	if r == nil {
		return nil, ErrNilStream
	}
	cfg := newReadConfig(opts)
	cr := &wire.CountingReader{R: r}
	r = cr

	h, err := ReadHeader(r)
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if cfg.maxEntries > 0 && h.Count > cfg.maxEntries {
		return nil, fmt.Errorf("read header: %w: %d > %d", ErrTooManyEntries, h.Count, cfg.maxEntries)
	}

	a := &Archive{Header: h, cfg: cfg}
	a.log().Debug("read header", "entries", h.Count)

	var nMeta, nData int
	success := false
	defer func() {
		if !success {
			a.releaseUpTo(nMeta, nData)
		}
	}()

	nMeta, err = ReadEntryMetadataTable(a, r)
	if err := stageResult(nMeta, h.Count, err); err != nil {
		a.log().Debug("metadata table incomplete", "read", nMeta, "entries", h.Count, "error", err)
		return nil, fmt.Errorf("read metadata table: %w", err)
	}

	nData, err = ReadEntryPayloads(a, r)
	if err := stageResult(nData, h.Count, err); err != nil {
		a.log().Debug("payload block incomplete", "read", nData, "entries", h.Count, "error", err)
		return nil, fmt.Errorf("read payloads: %w", err)
	}

	success = true
	a.log().Info("read archive", "entries", h.Count, "bytes", cr.N)
	return a, nil
}

// stopAt reports that a read stage stopped at entry i, having completed i
// entries.
func stopAt(op string, i uint64, err error) (int, error) {
	return int(i), &EntryError{Op: op, Index: i, Err: err} //nolint:gosec // i indexes an allocated slot
}

// stageResult turns a stage's completed count into an error when it falls
// short of want.
func stageResult(got int, want uint64, err error) error {
	if got >= 0 && uint64(got) == want {
		return nil
	}
	if err == nil {
		err = ErrTruncated
	}
	return fmt.Errorf("%d of %d entries: %w", got, want, err)
}

