package logring

import (
	"encoding/binary"
	"io"
)

// header file layout: 12 bytes (little-endian)
// 0..3  : uint32 limit (total file length, header included)
// 4..7  : uint32 head  (oldest unread byte, relative to the data region)
// 8..11 : uint32 tail  (next byte to write, relative to the data region)
const (
	HeaderSize  = 12
	MinFileSize = HeaderSize + 1

	offLimit = 0
	offHead  = 4
	offTail  = 8
)

// positionedIO is what the header needs from the backing store.
type positionedIO interface {
	io.ReaderAt
	io.WriterAt
}

// header mirrors the persisted limit/head/tail fields. The mirror only ever
// changes after the corresponding bytes were written in full, so a failed
// write leaves durable and in-memory state in agreement.
type header struct {
	rw    positionedIO
	limit uint32
	head  uint32
	tail  uint32
}

func newHeader(rw positionedIO) *header {
	return &header{rw: rw}
}

// size is the length of the circular data region.
func (h *header) size() uint32 { return h.limit - HeaderSize }

// initialize writes limit, head=0 and tail=0 in one write.
func (h *header) initialize(limit uint32) error {
	var buf [HeaderSize]byte
	binary.LittleEndian.PutUint32(buf[offLimit:], limit)
	n, err := h.rw.WriteAt(buf[:], 0)
	if err != nil || n != HeaderSize {
		return ioErr(shortErr(err), "write header (%d of %d bytes)", n, HeaderSize)
	}
	h.limit, h.head, h.tail = limit, 0, 0
	return nil
}

// load reads the header back and checks it against the real file length.
func (h *header) load(fileSize int64) error {
	if fileSize < HeaderSize {
		return corruptHeaderf("file is %d bytes, shorter than the %d byte header", fileSize, HeaderSize)
	}
	var buf [HeaderSize]byte
	n, err := h.rw.ReadAt(buf[:], 0)
	if n != HeaderSize {
		return withKind(ErrCorruptHeader, ioErr(shortErr(err), "read header (%d of %d bytes)", n, HeaderSize))
	}

	limit := binary.LittleEndian.Uint32(buf[offLimit:])
	head := binary.LittleEndian.Uint32(buf[offHead:])
	tail := binary.LittleEndian.Uint32(buf[offTail:])

	switch {
	case int64(limit) != fileSize:
		return corruptHeaderf("stored limit %d does not match file size %d", limit, fileSize)
	case limit < MinFileSize:
		return corruptHeaderf("stored limit %d below minimum %d", limit, MinFileSize)
	case head >= limit-HeaderSize || tail >= limit-HeaderSize:
		return corruptHeaderf("cursors head=%d tail=%d outside data region of %d bytes", head, tail, limit-HeaderSize)
	}

	h.limit, h.head, h.tail = limit, head, tail
	return nil
}

func (h *header) setHead(v uint32) error {
	if err := h.putField(offHead, v); err != nil {
		return err
	}
	h.head = v
	return nil
}

func (h *header) setTail(v uint32) error {
	if err := h.putField(offTail, v); err != nil {
		return err
	}
	h.tail = v
	return nil
}

func (h *header) setLimit(v uint32) error {
	if err := h.putField(offLimit, v); err != nil {
		return err
	}
	h.limit = v
	return nil
}

func (h *header) putField(off int64, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	n, err := h.rw.WriteAt(buf[:], off)
	if err != nil || n != len(buf) {
		return ioErr(shortErr(err), "write header field at %d (%d of 4 bytes)", off, n)
	}
	return nil
}

// shortErr substitutes io.ErrShortWrite when a transfer came up short without
// the store reporting why.
func shortErr(err error) error {
	if err == nil {
		return io.ErrShortWrite
	}
	return err
}
