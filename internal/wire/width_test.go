package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		v     uint64
		width int
		want  []byte
	}{
		{"full width", 0x0807060504030201, 8, []byte{1, 2, 3, 4, 5, 6, 7, 8}},
		{"narrow", 0x0201, 2, []byte{1, 2}},
		{"truncates high bytes", 0x030201, 2, []byte{1, 2}},
		{"zero width", 0xff, 0, []byte{}},
		{"wider than uint64", 0xff, 10, []byte{0xff, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dst := make([]byte, tt.width)
			for i := range dst {
				dst[i] = 0xaa
			}
			EncodeWidth(dst, tt.v, tt.width)
			assert.Equal(t, tt.want, dst)
		})
	}
}

func TestDecodeWidth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint64(0x0807060504030201), DecodeWidth([]byte{1, 2, 3, 4, 5, 6, 7, 8}, 8))
	assert.Equal(t, uint64(0x0201), DecodeWidth([]byte{1, 2, 3, 4}, 2))
	assert.Equal(t, uint64(0), DecodeWidth(nil, 0))
	assert.Equal(t, uint64(7), DecodeWidth([]byte{7, 0, 0, 0, 0, 0, 0, 0, 9, 9}, 10))
}

func TestWidthRoundTrip(t *testing.T) {
	t.Parallel()

	for width := 1; width <= MaxWidth; width++ {
		limit := uint64(1)<<(uint(width)*8) - 1
		if width == MaxWidth {
			limit = ^uint64(0)
		}
		for _, v := range []uint64{0, 1, limit / 3, limit} {
			buf := make([]byte, width)
			EncodeWidth(buf, v, width)
			assert.Equal(t, v, DecodeWidth(buf, width), "width=%d v=%d", width, v)
		}
	}
}

func TestAppendWidth(t *testing.T) {
	t.Parallel()

	got := AppendWidth([]byte("STAR"), 2, 8)
	assert.Equal(t, []byte{'S', 'T', 'A', 'R', 2, 0, 0, 0, 0, 0, 0, 0}, got)
}
