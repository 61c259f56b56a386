package logring

import (
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type ioCall struct {
	off int64
	n   int
}

// memStore is an in-memory store that records writes and can be told to
// fail or cut a write short.
type memStore struct {
	buf    []byte
	writes []ioCall

	failAfter  int // writes allowed before failing, -1 = never
	shortAfter int // writes allowed before one comes up short, -1 = never
}

var errInjected = errors.New("injected write failure")

func newMemStore(size int) *memStore {
	return &memStore{buf: make([]byte, size), failAfter: -1, shortAfter: -1}
}

func (m *memStore) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(m.buf)) {
		return 0, io.EOF
	}
	n := copy(p, m.buf[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (m *memStore) WriteAt(p []byte, off int64) (int, error) {
	idx := len(m.writes)
	m.writes = append(m.writes, ioCall{off: off, n: len(p)})
	if m.failAfter >= 0 && idx >= m.failAfter {
		return 0, errInjected
	}
	if m.shortAfter >= 0 && idx >= m.shortAfter {
		return copy(m.buf[off:], p[:len(p)/2]), nil
	}
	return copy(m.buf[off:], p), nil
}

func (m *memStore) sync() error { return nil }

func (m *memStore) resize(size int64) error {
	grown := make([]byte, size)
	copy(grown, m.buf)
	m.buf = grown
	return nil
}

func (m *memStore) close() error { return nil }

// newMemRing builds a Ring over a memStore without touching the file system.
func newMemRing(limit uint32) (*Ring, *memStore) {
	st := newMemStore(int(limit))
	r := &Ring{
		path:    "mem",
		store:   st,
		hdr:     newHeader(st),
		options: DefaultOptions(),
		log:     zerolog.Nop(),
		isOpen:  true,
	}
	if err := r.hdr.initialize(limit); err != nil {
		panic(err)
	}
	st.writes = nil
	return r, st
}
