package logring

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Push appends a record, evicting the oldest records while there is not
// enough room for it. A record whose frame could not fit even in an empty
// ring fails with ErrRecordTooLarge and leaves the ring untouched.
//
// Any ErrIO leaves the ring in an unknown state; reopen before further use.
func (r *Ring) Push(id uint64, payload []byte) error {
	if !r.isOpen {
		return ErrClosed
	}

	need := frameSize(len(payload))
	size := int64(r.hdr.size())
	if need >= size {
		return errors.WithMessagef(ErrRecordTooLarge, "frame of %d bytes, data region is %d bytes", need, size)
	}

	// Free must stay above need: writing exactly Free bytes would make tail
	// catch up with head and read back as empty.
	for r.Free() <= need {
		evicted, n, err := r.pop(false)
		if err != nil {
			return errors.WithMessage(err, "evict oldest record")
		}
		r.stats.evictions.Add(1)
		r.log.Debug().Uint64("id", evicted.ID).Int64("bytes", n).Msg("record evicted")
	}

	buf := r.bufPool.get(int(need))
	defer r.bufPool.put(buf)
	encodeFrame(buf, id, payload)

	tail := r.hdr.tail
	if err := r.writeWrapped(tail, buf); err != nil {
		return errors.WithMessage(err, "write frame")
	}
	if err := r.hdr.setTail(uint32((int64(tail) + need) % size)); err != nil {
		return errors.WithMessage(err, "persist tail")
	}
	r.stats.pushes.Add(1)
	return r.syncIfNeeded()
}

// PushNow appends payload using the current time in milliseconds as its id.
func (r *Ring) PushNow(payload []byte) (uint64, error) {
	id := uint64(r.options.Clock().UnixMilli())
	return id, r.Push(id, payload)
}

// Shift removes and returns the oldest record. It fails with ErrEmptyLog
// when there is none.
func (r *Ring) Shift() (Record, error) {
	if !r.isOpen {
		return Record{}, ErrClosed
	}
	rec, _, err := r.pop(true)
	if err != nil {
		return Record{}, err
	}
	r.stats.shifts.Add(1)
	if err := r.syncIfNeeded(); err != nil {
		return rec, err
	}
	return rec, nil
}

// pop advances head past the oldest frame. With withPayload unset only the
// id is decoded, which is all eviction needs.
func (r *Ring) pop(withPayload bool) (Record, int64, error) {
	head, tail := r.hdr.head, r.hdr.tail
	if head == tail {
		return Record{}, 0, ErrEmptyLog
	}

	frameLen, err := r.frameLengthAt(head)
	if err != nil {
		return Record{}, 0, err
	}
	n := int64(lengthPrefix) + int64(frameLen)
	bodyAt := (head + lengthPrefix) % r.hdr.size()

	var rec Record
	if withPayload {
		body := make([]byte, frameLen)
		if err := r.readWrapped(bodyAt, body); err != nil {
			return Record{}, 0, errors.WithMessage(err, "read frame body")
		}
		rec = decodeBody(body)
	} else {
		var idBuf [idSize]byte
		if err := r.readWrapped(bodyAt, idBuf[:]); err != nil {
			return Record{}, 0, errors.WithMessage(err, "read frame id")
		}
		rec = decodeBody(idBuf[:])
	}

	next := uint32((int64(head) + n) % int64(r.hdr.size()))
	if err := r.hdr.setHead(next); err != nil {
		return Record{}, 0, errors.WithMessage(err, "persist head")
	}
	return rec, n, nil
}

// frameLengthAt reads and validates the length prefix of the frame at rel.
func (r *Ring) frameLengthAt(rel uint32) (uint32, error) {
	var lenBuf [lengthPrefix]byte
	if err := r.readWrapped(rel, lenBuf[:]); err != nil {
		return 0, errors.WithMessage(err, "read frame length")
	}
	frameLen := binary.LittleEndian.Uint32(lenBuf[:])

	avail := usedBytes(rel, r.hdr.tail, r.hdr.size())
	if frameLen < idSize || int64(lengthPrefix)+int64(frameLen) > avail {
		return 0, corruptRecordf("frame length %d at offset %d, %d bytes available", frameLen, rel, avail)
	}
	return frameLen, nil
}

func (r *Ring) syncIfNeeded() error {
	if !r.options.SyncWrites {
		return nil
	}
	if err := r.store.sync(); err != nil {
		return ioErr(err, "sync %s", r.path)
	}
	return nil
}
