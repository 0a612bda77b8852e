// Package wire holds the low-level byte plumbing shared by the STAR read and
// write pipelines: the little-endian width codec, exact-length stream reads
// and writes, and byte counting wrappers.
package wire
