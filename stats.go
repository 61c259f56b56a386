package logring

import "sync/atomic"

type counters struct {
	pushes       atomic.Uint64
	shifts       atomic.Uint64
	evictions    atomic.Uint64
	bytesWritten atomic.Uint64
	bytesRead    atomic.Uint64
}

// Stats menyimpan statistik operasi sejak ring dibuka.
type Stats struct {
	Pushes       uint64 `json:"pushes"`        // Push yang berhasil
	Shifts       uint64 `json:"shifts"`        // Shift yang berhasil (tanpa eviction)
	Evictions    uint64 `json:"evictions"`     // Record lama yang dibuang oleh Push
	BytesWritten uint64 `json:"bytes_written"` // Byte data region yang ditulis
	BytesRead    uint64 `json:"bytes_read"`    // Byte data region yang dibaca
}

// GetStats mengambil snapshot statistik tanpa lock.
func (r *Ring) GetStats() Stats {
	return Stats{
		Pushes:       r.stats.pushes.Load(),
		Shifts:       r.stats.shifts.Load(),
		Evictions:    r.stats.evictions.Load(),
		BytesWritten: r.stats.bytesWritten.Load(),
		BytesRead:    r.stats.bytesRead.Load(),
	}
}

// ResetStats mengatur ulang semua penghitung.
func (r *Ring) ResetStats() {
	r.stats.pushes.Store(0)
	r.stats.shifts.Store(0)
	r.stats.evictions.Store(0)
	r.stats.bytesWritten.Store(0)
	r.stats.bytesRead.Store(0)
}

// Snapshot is a point-in-time view of the header and the derived occupancy.
type Snapshot struct {
	Limit uint32 `json:"limit"`
	Head  uint32 `json:"head"`
	Tail  uint32 `json:"tail"`
	Used  int64  `json:"used"`
	Free  int64  `json:"free"`
	Full  bool   `json:"full"`
	Empty bool   `json:"empty"`
	Stats Stats  `json:"stats"`
}

func newSnapshot(limit, head, tail uint32) Snapshot {
	size := limit - HeaderSize
	used := usedBytes(head, tail, size)
	return Snapshot{
		Limit: limit,
		Head:  head,
		Tail:  tail,
		Used:  used,
		Free:  int64(size) - used,
		Full:  isFull(head, tail, size),
		Empty: head == tail,
	}
}

// Snapshot returns cursors, occupancy and counters. It does no I/O.
func (r *Ring) Snapshot() Snapshot {
	if !r.isOpen {
		return Snapshot{Empty: true, Stats: r.GetStats()}
	}
	s := newSnapshot(r.hdr.limit, r.hdr.head, r.hdr.tail)
	s.Stats = r.GetStats()
	return s
}
