// Package logring provides a bounded, persistent FIFO log stored in a single
// fixed-size file. Records of any length are appended to a ring buffer on
// disk; once the ring is full the oldest records are evicted so the file
// never grows past its configured limit.
//
// File layout: a 12-byte little-endian header (limit, head, tail) followed
// by the circular data region. Each record is framed as a little-endian
// length, the id as two big-endian 32-bit halves, then the payload. A frame
// may wrap around the end of the data region.
//
// The library is organised into several files:
//
//	options.go      – configuration struct & defaults
//	errors.go       – error kinds
//	header.go       – persisted header store
//	frame.go        – record framing
//	storage.go      – positioned I/O backends (pread/pwrite or mmap)
//	lock.go         – exclusive flock ownership
//	ring.go         – open & create
//	io.go           – wrap-aware reads and writes
//	push_shift.go   – append with eviction, consume oldest
//	capacity.go     – occupancy accessors
//	traverse.go     – non-consuming iteration helpers
//	maintenance.go  – clear & resize
//	stats.go        – counters & snapshots
//	inspect.go      – read-only header inspection
//	queue.go        – goroutine-safe facade
//	flush_close.go  – flush & close helpers
//
// A Ring is not safe for concurrent use; wrap it in a Queue to share it.
package logring
