package logring

// One byte of the data region always stays free so that a full ring
// (tail one byte behind head) can be told apart from an empty one
// (tail == head). Usable capacity is therefore size-1.

func usedBytes(head, tail, size uint32) int64 {
	if tail >= head {
		return int64(tail - head)
	}
	return int64(tail) + int64(size) - int64(head)
}

func isFull(head, tail, size uint32) bool {
	return tail == uint32((int64(head)-1+int64(size))%int64(size))
}

// Used returns the number of data bytes occupied by unread records.
func (r *Ring) Used() int64 {
	if !r.isOpen {
		return 0
	}
	return usedBytes(r.hdr.head, r.hdr.tail, r.hdr.size())
}

// Free returns size-Used. It includes the reserved byte, so a record of n
// frame bytes fits without eviction only while Free() > n.
func (r *Ring) Free() int64 {
	if !r.isOpen {
		return 0
	}
	return int64(r.hdr.size()) - r.Used()
}

// IsFull reports whether no further byte can be written without eviction.
func (r *Ring) IsFull() bool {
	return r.isOpen && isFull(r.hdr.head, r.hdr.tail, r.hdr.size())
}

// IsEmpty reports whether there is no record to shift.
func (r *Ring) IsEmpty() bool {
	return !r.isOpen || r.hdr.head == r.hdr.tail
}

// Limit returns the persisted file length, header included.
func (r *Ring) Limit() uint32 {
	if !r.isOpen {
		return 0
	}
	return r.hdr.limit
}

// Size returns the length of the circular data region.
func (r *Ring) Size() uint32 {
	if !r.isOpen {
		return 0
	}
	return r.hdr.size()
}

// Head returns the data-relative offset of the oldest unread byte.
func (r *Ring) Head() uint32 {
	if !r.isOpen {
		return 0
	}
	return r.hdr.head
}

// Tail returns the data-relative offset of the next byte to be written.
func (r *Ring) Tail() uint32 {
	if !r.isOpen {
		return 0
	}
	return r.hdr.tail
}
