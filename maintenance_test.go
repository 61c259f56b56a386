package logring

import (
	"os"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClear(t *testing.T) {
	opts := DefaultOptions()
	r, path := newTestRing(t, 256, opts)
	fillAlphabet(t, r, 6)
	tail := r.Tail()

	require.NoError(t, r.Clear())
	assert.True(t, r.IsEmpty())
	assert.Equal(t, tail, r.Head())
	_, err := r.Shift()
	assert.True(t, errors.Is(err, ErrEmptyLog))

	r = reopen(t, r, path, opts)
	assert.True(t, r.IsEmpty())
	assert.Equal(t, tail, r.Tail())
}

func TestResizeGrowKeepsEverything(t *testing.T) {
	forEachBackend(t, func(t *testing.T, opts Options) {
		r, path := newTestRing(t, HeaderSize+5*oneChar+1, opts)
		// wrap the cursors first so Resize has to unroll the ring
		fillAlphabet(t, r, 8)

		dropped, err := r.Resize(HeaderSize + 20*oneChar + 1)
		require.NoError(t, err)
		assert.Zero(t, dropped)
		assert.EqualValues(t, HeaderSize+20*oneChar+1, r.Limit())
		assert.Zero(t, r.Head())
		assert.EqualValues(t, 5*oneChar, r.Tail())

		st, err := os.Stat(path)
		require.NoError(t, err)
		assert.EqualValues(t, HeaderSize+20*oneChar+1, st.Size())

		fillAlphabet(t, r, 10)
		letters, err := Map(r, func(rec Record) string { return string(rec.Payload) })
		require.NoError(t, err)
		assert.Equal(t, []string{"d", "e", "f", "g", "h", "a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}, letters)
	})
}

func TestResizeShrinkDropsOldest(t *testing.T) {
	forEachBackend(t, func(t *testing.T, opts Options) {
		r, path := newTestRing(t, HeaderSize+26*oneChar+1, opts)
		fillAlphabet(t, r, 26)

		dropped, err := r.Resize(HeaderSize + 3*oneChar + 1)
		require.NoError(t, err)
		assert.Equal(t, 23, dropped)
		assert.True(t, r.IsFull())

		r = reopen(t, r, path, opts)
		assert.EqualValues(t, HeaderSize+3*oneChar+1, r.Limit())
		letters, err := Map(r, func(rec Record) string { return string(rec.Payload) })
		require.NoError(t, err)
		assert.Equal(t, []string{"x", "y", "z"}, letters)
	})
}

func TestResizeSameLimitIsNoop(t *testing.T) {
	r, _ := newTestRing(t, 128, DefaultOptions())
	fillAlphabet(t, r, 3)
	head, tail := r.Head(), r.Tail()

	dropped, err := r.Resize(128)
	require.NoError(t, err)
	assert.Zero(t, dropped)
	assert.Equal(t, head, r.Head())
	assert.Equal(t, tail, r.Tail())
}

func TestResizeToMinimum(t *testing.T) {
	r, _ := newTestRing(t, 128, DefaultOptions())
	fillAlphabet(t, r, 3)

	dropped, err := r.Resize(0)
	require.NoError(t, err)
	assert.Equal(t, 3, dropped)
	assert.EqualValues(t, MinFileSize, r.Limit())
	assert.True(t, r.IsEmpty())
}

func TestResizeRejectsBadLimit(t *testing.T) {
	r, _ := newTestRing(t, 128, DefaultOptions())
	fillAlphabet(t, r, 2)

	for _, limit := range []int64{-1, 1 << 33} {
		_, err := r.Resize(limit)
		assert.True(t, errors.Is(err, ErrInvalidLimit), "limit %d: got %v", limit, err)
	}
	assert.EqualValues(t, 128, r.Limit())
	n, err := r.Len()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestResizeFillsUnused(t *testing.T) {
	opts := DefaultOptions()
	opts.FillUnused = true
	r, path := newTestRing(t, 64, opts)
	require.NoError(t, r.Push(1, []byte("k")))

	_, err := r.Resize(128)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, raw, 128)
	for i := HeaderSize + oneChar; i < len(raw); i++ {
		require.Equal(t, opts.FillByte, raw[i], "byte %d", i)
	}
}
