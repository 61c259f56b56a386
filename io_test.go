package logring

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// moveCursors pushes and shifts one filler frame so head == tail == at.
func moveCursors(t *testing.T, r *Ring, at int) {
	t.Helper()
	require.NoError(t, r.Push(0, bytes.Repeat([]byte{'-'}, at-frameOverhead)))
	_, err := r.Shift()
	require.NoError(t, err)
	require.EqualValues(t, at, r.Head())
}

func TestWriteWrappedSplitsAtBoundary(t *testing.T) {
	r, st := newMemRing(HeaderSize + 40)

	require.NoError(t, r.writeWrapped(37, []byte("ABCDE")))
	assert.Equal(t, []ioCall{{off: HeaderSize + 37, n: 3}, {off: HeaderSize, n: 2}}, st.writes)
	assert.Equal(t, []byte("ABC"), st.buf[HeaderSize+37:])
	assert.Equal(t, []byte("DE"), st.buf[HeaderSize:HeaderSize+2])

	got := make([]byte, 5)
	require.NoError(t, r.readWrapped(37, got))
	assert.Equal(t, []byte("ABCDE"), got)
}

func TestWriteWrappedNoSplitWhenItFits(t *testing.T) {
	r, st := newMemRing(HeaderSize + 40)

	require.NoError(t, r.writeWrapped(35, []byte("ABCDE")))
	assert.Equal(t, []ioCall{{off: HeaderSize + 35, n: 5}}, st.writes)
}

func TestReadWrappedShortRead(t *testing.T) {
	r, st := newMemRing(HeaderSize + 40)
	st.buf = st.buf[:HeaderSize+38]

	err := r.readWrapped(36, make([]byte, 4))
	assert.True(t, errors.Is(err, ErrIO), "got %v", err)
}

func TestPushShortWriteAcrossWrap(t *testing.T) {
	r, st := newMemRing(HeaderSize + 40)
	moveCursors(t, r, 37)
	st.writes = nil
	st.shortAfter = 1

	err := r.Push(1, []byte("hello"))
	assert.True(t, errors.Is(err, ErrIO), "got %v", err)
	assert.EqualValues(t, 37, r.Tail(), "tail must not advance")
	assert.Len(t, st.writes, 2)
}

func TestPushTailPersistFailure(t *testing.T) {
	r, st := newMemRing(HeaderSize + 40)
	st.failAfter = 1

	err := r.Push(1, []byte("hello"))
	assert.True(t, errors.Is(err, ErrIO), "got %v", err)
	assert.True(t, errors.Is(err, errInjected), "cause preserved: %v", err)
	assert.Zero(t, r.Tail())
	assert.True(t, r.IsEmpty())
}

func TestShiftHeadPersistFailure(t *testing.T) {
	r, st := newMemRing(HeaderSize + 40)
	require.NoError(t, r.Push(1, []byte("hello")))
	st.writes = nil
	st.failAfter = 0

	_, err := r.Shift()
	assert.True(t, errors.Is(err, ErrIO), "got %v", err)
	assert.Zero(t, r.Head())
	assert.False(t, r.IsEmpty())
}

func TestEvictionErrorAbortsPush(t *testing.T) {
	r, st := newMemRing(HeaderSize + 2*oneChar + 1)
	require.NoError(t, r.Push(1, []byte("a")))
	require.NoError(t, r.Push(2, []byte("b")))

	binary.LittleEndian.PutUint32(st.buf[HeaderSize:], 3)
	st.writes = nil

	err := r.Push(3, []byte("c"))
	assert.True(t, errors.Is(err, ErrCorruptRecord), "got %v", err)
	assert.Empty(t, st.writes, "nothing written after a failed eviction")
	assert.True(t, r.IsFull())
}
