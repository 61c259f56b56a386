package logring

import (
	"encoding/binary"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderInitialize(t *testing.T) {
	st := newMemStore(64)
	h := newHeader(st)

	require.NoError(t, h.initialize(64))
	require.Len(t, st.writes, 1, "one write for all three fields")
	assert.Equal(t, ioCall{off: 0, n: HeaderSize}, st.writes[0])

	assert.EqualValues(t, 64, binary.LittleEndian.Uint32(st.buf[0:]))
	assert.Zero(t, binary.LittleEndian.Uint32(st.buf[4:]))
	assert.Zero(t, binary.LittleEndian.Uint32(st.buf[8:]))
	assert.EqualValues(t, 52, h.size())
}

func TestHeaderSettersWriteOneField(t *testing.T) {
	st := newMemStore(64)
	h := newHeader(st)
	require.NoError(t, h.initialize(64))
	st.writes = nil

	require.NoError(t, h.setHead(7))
	require.NoError(t, h.setTail(9))
	require.NoError(t, h.setLimit(64))

	assert.Equal(t, []ioCall{{off: 4, n: 4}, {off: 8, n: 4}, {off: 0, n: 4}}, st.writes)
	assert.EqualValues(t, 7, binary.LittleEndian.Uint32(st.buf[4:]))
	assert.EqualValues(t, 9, binary.LittleEndian.Uint32(st.buf[8:]))
	assert.EqualValues(t, 7, h.head)
	assert.EqualValues(t, 9, h.tail)
}

func TestHeaderFailedWriteKeepsMirror(t *testing.T) {
	for name, setup := range map[string]func(*memStore){
		"error": func(st *memStore) { st.failAfter = 0 },
		"short": func(st *memStore) { st.shortAfter = 0 },
	} {
		setup := setup
		t.Run(name, func(t *testing.T) {
			st := newMemStore(64)
			h := newHeader(st)
			require.NoError(t, h.initialize(64))
			require.NoError(t, h.setHead(3))
			require.NoError(t, h.setTail(5))
			st.writes = nil
			setup(st)

			err := h.setHead(10)
			assert.True(t, errors.Is(err, ErrIO), "got %v", err)
			assert.EqualValues(t, 3, h.head)

			err = h.setTail(11)
			assert.True(t, errors.Is(err, ErrIO), "got %v", err)
			assert.EqualValues(t, 5, h.tail)

			err = h.setLimit(99)
			assert.True(t, errors.Is(err, ErrIO), "got %v", err)
			assert.EqualValues(t, 64, h.limit)
		})
	}
}

func TestHeaderLoad(t *testing.T) {
	st := newMemStore(100)
	binary.LittleEndian.PutUint32(st.buf[0:], 100)
	binary.LittleEndian.PutUint32(st.buf[4:], 17)
	binary.LittleEndian.PutUint32(st.buf[8:], 3)

	h := newHeader(st)
	require.NoError(t, h.load(100))
	assert.EqualValues(t, 100, h.limit)
	assert.EqualValues(t, 17, h.head)
	assert.EqualValues(t, 3, h.tail)
	assert.Empty(t, st.writes, "load never writes")
}

func TestHeaderLoadRejects(t *testing.T) {
	cases := []struct {
		name              string
		limit, head, tail uint32
		fileSize          int64
	}{
		{name: "size mismatch", limit: 100, fileSize: 101},
		{name: "below minimum", limit: HeaderSize, fileSize: HeaderSize},
		{name: "head at size", limit: 100, head: 88, fileSize: 100},
		{name: "tail past size", limit: 100, tail: 1000, fileSize: 100},
		{name: "truncated", limit: 100, fileSize: 8},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			st := newMemStore(HeaderSize)
			binary.LittleEndian.PutUint32(st.buf[0:], tc.limit)
			binary.LittleEndian.PutUint32(st.buf[4:], tc.head)
			binary.LittleEndian.PutUint32(st.buf[8:], tc.tail)

			h := newHeader(st)
			err := h.load(tc.fileSize)
			assert.True(t, errors.Is(err, ErrCorruptHeader), "got %v", err)
			assert.Zero(t, h.limit, "mirror untouched")
		})
	}
}
