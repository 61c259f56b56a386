package logring

import "encoding/binary"

// frame layout inside the data region (may be split by the wrap point):
//
//	0..3   uint32 LE  frameLength = 8 + len(payload)
//	4..7   uint32 BE  id >> 32
//	8..11  uint32 BE  id & 0xFFFFFFFF
//	12..   payload
const (
	lengthPrefix  = 4
	idSize        = 8
	frameOverhead = lengthPrefix + idSize
)

// Record is one entry of the log.
type Record struct {
	ID      uint64
	Payload []byte
}

// frameSize is the number of ring bytes a record with n payload bytes occupies.
func frameSize(n int) int64 {
	return int64(frameOverhead + n)
}

// encodeFrame writes the frame of (id, payload) into buf, which must be
// exactly frameSize(len(payload)) bytes.
func encodeFrame(buf []byte, id uint64, payload []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], uint32(idSize+len(payload)))
	binary.BigEndian.PutUint32(buf[4:8], uint32(id>>32))
	binary.BigEndian.PutUint32(buf[8:12], uint32(id&0xFFFFFFFF))
	copy(buf[frameOverhead:], payload)
}

// decodeBody splits the bytes following the length prefix into a record.
// The payload is copied out of body.
func decodeBody(body []byte) Record {
	hi := binary.BigEndian.Uint32(body[0:4])
	lo := binary.BigEndian.Uint32(body[4:8])
	payload := make([]byte, len(body)-idSize)
	copy(payload, body[idSize:])
	return Record{
		ID:      uint64(hi)<<32 | uint64(lo),
		Payload: payload,
	}
}
