package star

import (
	"bytes"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	a, err := New(3)
	require.NoError(t, err)
	assert.Equal(t, Header{Magic: Magic, Count: 3}, a.Header)
	assert.Len(t, a.Entries, 3)
	assert.Len(t, a.Data, 3)
	for i := range 3 {
		assert.Nil(t, a.Entries[i].Path)
		assert.Nil(t, a.Data[i])
	}
	assert.False(t, a.Complete())
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	a, err := New(0)
	require.ErrorIs(t, err, ErrEmptyArchive)
	assert.Nil(t, a)

	_, err = New(3, WithMaxEntries(2))
	require.ErrorIs(t, err, ErrTooManyEntries)

	_, err = New(math.MaxUint64, WithMaxEntries(0))
	require.ErrorIs(t, err, ErrSizeOverflow)
}

func TestNew_NoDefaultLimits(t *testing.T) {
	t.Parallel()

	a, err := New(DefaultMaxEntries + 1)
	require.NoError(t, err)
	assert.Len(t, a.Entries, DefaultMaxEntries+1)

	long := strings.Repeat("p", DefaultMaxPathLen)
	require.NoError(t, a.AddEntry(0, long, 1, bytes.NewReader([]byte{1})))
	assert.Equal(t, uint64(DefaultMaxPathLen+1), a.Entries[0].PathLen)

	_, err = New(DefaultMaxEntries+1, WithMaxEntries(DefaultMaxEntries))
	require.ErrorIs(t, err, ErrTooManyEntries)
}

func TestAddEntry(t *testing.T) {
	t.Parallel()

	a, err := New(2)
	require.NoError(t, err)

	src := bytes.NewReader([]byte("hello, world"))
	require.NoError(t, a.AddEntry(1, "greeting.txt", 5, src))

	e := a.Entries[1]
	assert.Equal(t, uint64(5), e.Size)
	assert.Equal(t, uint64(len("greeting.txt")+1), e.PathLen)
	assert.Equal(t, []byte("greeting.txt\x00"), e.Path)
	assert.Equal(t, []byte("hello"), a.Data[1])
	assert.Equal(t, 7, src.Len(), "AddEntry must read exactly size bytes")

	assert.Nil(t, a.Entries[0].Path)
	assert.Nil(t, a.Data[0])
}

func TestAddEntry_Overwrites(t *testing.T) {
	t.Parallel()

	a, err := New(1)
	require.NoError(t, err)
	require.NoError(t, a.AddEntry(0, "first", 1, bytes.NewReader([]byte{1})))
	require.NoError(t, a.AddEntry(0, "second", 2, bytes.NewReader([]byte{2, 2})))

	assert.Equal(t, "second", a.Entries[0].Name())
	assert.Equal(t, []byte{2, 2}, a.Data[0])
}

func TestAddEntry_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		index uint64
		path  string
		size  uint64
		src   []byte
		nilIn bool
		opts  []Option
		want  error
	}{
		{name: "index equals count", index: 2, path: "a", want: ErrIndexOutOfRange},
		{name: "index past count", index: 100, path: "a", want: ErrIndexOutOfRange},
		{name: "nil source", index: 0, path: "a", nilIn: true, want: ErrNilStream},
		{name: "NUL in path", index: 0, path: "a\x00b", want: ErrInvalidPath},
		{name: "short source", index: 0, path: "a", size: 4, src: []byte{1, 2}, want: ErrTruncated},
		{name: "payload over limit", index: 0, path: "a", size: 11, src: make([]byte, 11), opts: []Option{WithMaxEntrySize(10)}, want: ErrSizeOverflow},
		{name: "path over limit", index: 0, path: strings.Repeat("p", 8), opts: []Option{WithMaxPathLen(8)}, want: ErrSizeOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a, err := New(2, tt.opts...)
			require.NoError(t, err)

			var src io.Reader
			if !tt.nilIn {
				src = bytes.NewReader(tt.src)
			}
			err = a.AddEntry(tt.index, tt.path, tt.size, src)
			require.ErrorIs(t, err, tt.want)

			for i := range a.Entries {
				assert.Nil(t, a.Entries[i].Path, "slot %d must be untouched", i)
				assert.Nil(t, a.Data[i], "slot %d must be untouched", i)
			}
		})
	}

	var nilArchive *Archive
	require.ErrorIs(t, nilArchive.AddEntry(0, "a", 0, bytes.NewReader(nil)), ErrNilArchive)
}

func TestComputeOffsets(t *testing.T) {
	t.Parallel()

	a, err := New(3)
	require.NoError(t, err)
	sizes := []uint64{10, 0, 5}
	for i, name := range []string{"abc", "def", "ghi"} {
		require.NoError(t, a.AddEntry(uint64(i), name, sizes[i], bytes.NewReader(make([]byte, sizes[i]))))
		require.Equal(t, uint64(4), a.Entries[i].PathLen)
	}

	require.NoError(t, a.ComputeOffsets())

	base := uint64(HeaderSize + 3*24 + 12)
	assert.Equal(t, base, a.Entries[0].Offset)
	assert.Equal(t, a.Entries[0].Offset+10, a.Entries[1].Offset)
	assert.Equal(t, a.Entries[1].Offset+0, a.Entries[2].Offset)
	assert.Equal(t, uint64(96), a.Entries[0].Offset)

	dataOffset, err := a.DataOffset()
	require.NoError(t, err)
	assert.Equal(t, base, dataOffset)
}

func TestComputeOffsets_Errors(t *testing.T) {
	t.Parallel()

	var nilArchive *Archive
	require.ErrorIs(t, nilArchive.ComputeOffsets(), ErrNilArchive)

	a, err := New(2)
	require.NoError(t, err)
	require.NoError(t, a.AddEntry(0, "a", 0, bytes.NewReader(nil)))
	require.ErrorIs(t, a.ComputeOffsets(), ErrIncomplete)

	overflow := &Archive{
		Header: Header{Magic: Magic, Count: 2},
		Entries: []Entry{
			{Size: math.MaxUint64, PathLen: 2, Path: []byte("a\x00")},
			{Size: 1, PathLen: 2, Path: []byte("b\x00")},
		},
	}
	require.ErrorIs(t, overflow.ComputeOffsets(), ErrSizeOverflow)
}

func TestComputeOffsets_IgnoresPayloads(t *testing.T) {
	t.Parallel()

	a := &Archive{
		Header: Header{Magic: Magic, Count: 2},
		Entries: []Entry{
			{Size: 7, PathLen: 2, Path: []byte("a\x00")},
			{Size: 1, PathLen: 3, Path: []byte("bc\x00")},
		},
	}
	require.NoError(t, a.ComputeOffsets())
	assert.Equal(t, uint64(HeaderSize+2*EntryFixedSize+5), a.Entries[0].Offset)
	assert.Equal(t, a.Entries[0].Offset+7, a.Entries[1].Offset)
	assert.Nil(t, a.Data)
}
