package wire

// MaxWidth is the widest integer the codec can represent without loss.
const MaxWidth = 8

// EncodeWidth writes v into dst[:width] as a little-endian unsigned integer.
// Bytes of v that do not fit in width are dropped. Bytes past MaxWidth are
// zeroed.
func EncodeWidth(dst []byte, v uint64, width int) {
	_ = dst[:width]
	for i := range width {
		if i >= MaxWidth {
			dst[i] = 0
			continue
		}
		dst[i] = byte(v >> (uint(i) * 8))
	}
}

// DecodeWidth reads a little-endian unsigned integer from src[:width].
// Bytes past MaxWidth do not contribute.
func DecodeWidth(src []byte, width int) uint64 {
	_ = src[:width]
	var v uint64
	for i := range min(width, MaxWidth) {
		v |= uint64(src[i]) << (uint(i) * 8)
	}
	return v
}

// AppendWidth appends the width-byte little-endian encoding of v to dst.
func AppendWidth(dst []byte, v uint64, width int) []byte {
	n := len(dst)
	dst = append(dst, make([]byte, width)...)
	EncodeWidth(dst[n:], v, width)
	return dst
}
