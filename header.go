package star

import (
	"bytes"

	"github.com/siiky/star/internal/wire"
)

// Magic is the signature every STAR archive starts with.
var Magic = [magicLen]byte{'S', 'T', 'A', 'R'}

// On-stream sizes of the fixed-width records.
const (
	// HeaderSize is the encoded size of a Header: the signature plus the entry count.
	HeaderSize = magicLen + fieldWidth

	// EntryFixedSize is the encoded size of the size, offset and path length
	// fields that precede every path in the metadata table.
	EntryFixedSize = 3 * fieldWidth

	// fieldWidth is the width of every integer field in the format.
	fieldWidth = 8

	magicLen = 4
)

// Header is the fixed-size record at the start of an archive.
type Header struct {
	// Magic must equal the package-level Magic for the header to be valid.
	Magic [magicLen]byte

	// Count is the number of entries in the archive.
	Count uint64
}

// CheckHeader reports whether h is non-nil and carries the STAR signature.
func CheckHeader(h *Header) bool {
	return h != nil && bytes.Equal(h.Magic[:], Magic[:])
}

func (h *Header) appendBinary(dst []byte) []byte {
	dst = append(dst, h.Magic[:]...)
	return wire.AppendWidth(dst, h.Count, fieldWidth)
}

func decodeHeader(buf []byte) Header {
	var h Header
	copy(h.Magic[:], buf[:len(Magic)])
	h.Count = wire.DecodeWidth(buf[len(Magic):], fieldWidth)
	return h
}

// EncodeWidth writes v into dst[:width] as a little-endian unsigned integer,
// dropping the high bytes that do not fit. dst must hold at least width bytes.
func EncodeWidth(dst []byte, v uint64, width int) {
	wire.EncodeWidth(dst, v, width)
}

// DecodeWidth reads a little-endian unsigned integer of width bytes from src.
func DecodeWidth(src []byte, width int) uint64 {
	return wire.DecodeWidth(src, width)
}

// AppendWidth appends the width-byte little-endian encoding of v to dst.
func AppendWidth(dst []byte, v uint64, width int) []byte {
	return wire.AppendWidth(dst, v, width)
}
