package logring

import "io"

// The data region occupies [HeaderSize, HeaderSize+size) of the file. A
// transfer that reaches the end of the region continues at HeaderSize, so it
// takes at most two positioned calls. Each call must move its full length.

// writeWrapped writes buf starting at data-relative offset rel.
func (r *Ring) writeWrapped(rel uint32, buf []byte) error {
	pos := int64(HeaderSize) + int64(rel)
	boundary := int64(HeaderSize) + int64(r.hdr.size())
	n := int64(len(buf))

	sz1 := min(n, boundary-pos)
	if err := r.writeFull(buf[:sz1], pos); err != nil {
		return err
	}
	if n > sz1 {
		if err := r.writeFull(buf[sz1:], HeaderSize); err != nil {
			return err
		}
	}
	r.stats.bytesWritten.Add(uint64(n))
	return nil
}

// readWrapped fills buf from data-relative offset rel.
func (r *Ring) readWrapped(rel uint32, buf []byte) error {
	pos := int64(HeaderSize) + int64(rel)
	boundary := int64(HeaderSize) + int64(r.hdr.size())
	n := int64(len(buf))

	sz1 := min(n, boundary-pos)
	if err := r.readFull(buf[:sz1], pos); err != nil {
		return err
	}
	if n > sz1 {
		if err := r.readFull(buf[sz1:], HeaderSize); err != nil {
			return err
		}
	}
	r.stats.bytesRead.Add(uint64(n))
	return nil
}

func (r *Ring) writeFull(p []byte, off int64) error {
	n, err := r.store.WriteAt(p, off)
	if err != nil || n != len(p) {
		return ioErr(shortErr(err), "write %d bytes at %d (wrote %d)", len(p), off, n)
	}
	return nil
}

func (r *Ring) readFull(p []byte, off int64) error {
	n, err := r.store.ReadAt(p, off)
	if n == len(p) {
		return nil
	}
	if err == nil {
		err = io.ErrUnexpectedEOF
	}
	return ioErr(err, "read %d bytes at %d (got %d)", len(p), off, n)
}
