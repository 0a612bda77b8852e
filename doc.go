// Package star reads, writes and builds STAR archives.
//
// A STAR archive is a single stream with three blocks:
//   - Header: the 4-byte signature "STAR" and a little-endian uint64 entry count
//   - Metadata table: per entry, the payload size, payload offset and path
//     length (each a little-endian uint64), followed by the NUL-terminated path
//   - Payload block: the raw bytes of every entry, in table order
//
// An [Archive] is fully materialized in memory. It is produced either by
// [Read] from a stream or by [New] followed by [Archive.AddEntry] for every
// slot and [Archive.ComputeOffsets]. [Write] serializes a complete archive.
//
// Entries are looked up by path with [Archive.Search], a linear scan that
// works on any archive, or [Archive.SortedSearch], a binary search that is
// only correct when the entries are ordered by [ComparePaths]. Use
// [Archive.Sort] to establish that order before writing when sorted lookups
// are wanted.
//
// An Archive is not safe for concurrent mutation.
package star
