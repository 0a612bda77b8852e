package wire

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTruncated = errors.New("truncated")

type shortWriter struct{ limit int }

func (w *shortWriter) Write(p []byte) (int, error) {
	return min(len(p), w.limit), nil
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestReadFull(t *testing.T) {
	t.Parallel()

	t.Run("exact", func(t *testing.T) {
		t.Parallel()
		buf := make([]byte, 3)
		require.NoError(t, ReadFull(bytes.NewReader([]byte{1, 2, 3, 4}), buf, errTruncated))
		assert.Equal(t, []byte{1, 2, 3}, buf)
	})

	t.Run("empty stream", func(t *testing.T) {
		t.Parallel()
		err := ReadFull(bytes.NewReader(nil), make([]byte, 1), errTruncated)
		require.ErrorIs(t, err, errTruncated)
		require.ErrorIs(t, err, io.EOF)
	})

	t.Run("short stream", func(t *testing.T) {
		t.Parallel()
		err := ReadFull(bytes.NewReader([]byte{1}), make([]byte, 2), errTruncated)
		require.ErrorIs(t, err, errTruncated)
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("zero length", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, ReadFull(bytes.NewReader(nil), nil, errTruncated))
	})

	t.Run("read error passes through", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		err := ReadFull(failingReader{err: boom}, make([]byte, 1), errTruncated)
		require.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, errTruncated)
	})
}

func TestWriteFull(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteFull(&buf, []byte("abc")))
	assert.Equal(t, "abc", buf.String())

	err := WriteFull(&shortWriter{limit: 1}, []byte("abc"))
	require.ErrorIs(t, err, io.ErrShortWrite)
}

func TestCountingWrappers(t *testing.T) {
	t.Parallel()

	cr := &CountingReader{R: bytes.NewReader([]byte("hello world"))}
	_, err := io.ReadAll(cr)
	require.NoError(t, err)
	assert.Equal(t, uint64(11), cr.N)

	var buf bytes.Buffer
	cw := &CountingWriter{W: &buf}
	_, err = cw.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, uint64(5), cw.N)

	cw.N = ^uint64(0)
	_, err = cw.Write([]byte("x"))
	require.ErrorIs(t, err, ErrOverflow)
}
