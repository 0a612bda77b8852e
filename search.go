package star

import (
	"bytes"
	"cmp"
	"fmt"
	"sort"
)

// Search returns the index of the first entry whose path is exactly path.
//
// An entry matches when its recorded PathLen is len(path)+1 and its stored
// path starts with the bytes of path. Unfilled slots are skipped. Search works
// on entries in any order.
func (a *Archive) Search(path string) (int, bool) {
	if a == nil {
		return 0, false
	}
	want := uint64(len(path))
	for i := range a.Entries {
		e := &a.Entries[i]
		if !e.populated() || e.PathLen == 0 {
			continue
		}
		n := e.PathLen - 1
		if n != want || uint64(len(e.Path)) < n {
			continue
		}
		if string(e.Path[:n]) == path {
			return i, true
		}
	}
	return 0, false
}

// ComparePaths orders stored paths by content length first and bytewise
// within equal lengths, so "b" sorts before "aa". Content ends at the first
// NUL. The result is negative, zero or positive like bytes.Compare.
func ComparePaths(a, b []byte) int {
	ca, cb := pathContent(a), pathContent(b)
	if c := cmp.Compare(len(ca), len(cb)); c != 0 {
		return c
	}
	return bytes.Compare(ca, cb)
}

// SortedSearch finds path by binary search over the entries.
//
// The entries must already be ordered by ComparePaths, as Sort leaves them.
// Archives built in any other order, such as the order a shell expands a
// glob, yield an unspecified result: SortedSearch may report a miss for a
// path that is present. Use Search when the order is not known.
//
// SortedSearch compares path contents only and ignores PathLen, so it can
// disagree with Search on entries whose PathLen is inconsistent with their
// path.
func (a *Archive) SortedSearch(path string) (int, bool) {
	if a == nil || len(a.Entries) == 0 {
		return 0, false
	}
	key := []byte(path)
	i := sort.Search(len(a.Entries), func(i int) bool {
		return ComparePaths(a.Entries[i].Path, key) >= 0
	})
	if i < len(a.Entries) && a.Entries[i].populated() && ComparePaths(a.Entries[i].Path, key) == 0 {
		return i, true
	}
	return 0, false
}

// IsSorted reports whether the entries are ordered by ComparePaths.
func (a *Archive) IsSorted() bool {
	if a == nil {
		return true
	}
	for i := 1; i < len(a.Entries); i++ {
		if ComparePaths(a.Entries[i-1].Path, a.Entries[i].Path) > 0 {
			return false
		}
	}
	return true
}

// Sort reorders entries and their payloads together by ComparePaths, keeping
// the relative order of equal paths. If every slot holds a path, offsets are
// recomputed for the new order.
func (a *Archive) Sort() error {
	if a == nil {
		return ErrNilArchive
	}
	if len(a.Entries) != len(a.Data) {
		return fmt.Errorf("%w: %d entries and %d payloads", ErrIncomplete, len(a.Entries), len(a.Data))
	}

	perm := make([]int, len(a.Entries))
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(i, j int) bool {
		return ComparePaths(a.Entries[perm[i]].Path, a.Entries[perm[j]].Path) < 0
	})

	entries := make([]Entry, len(a.Entries))
	data := make([][]byte, len(a.Data))
	for dst, src := range perm {
		entries[dst] = a.Entries[src]
		data[dst] = a.Data[src]
	}
	a.Entries = entries
	a.Data = data

	for i := range a.Entries {
		if !a.Entries[i].populated() {
			return nil
		}
	}
	return a.ComputeOffsets()
}
