package logring

import "os"

// ReadHeader reads and validates the header of the log at path without
// taking ownership of it. Stats in the result are always zero.
//
// The file is opened read-only and no lock is taken, so the result may be
// stale by the time it returns if another handle is writing.
func ReadHeader(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, openErr(err, "open %s", path)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return Snapshot{}, openErr(err, "stat %s", path)
	}

	h := newHeader(readOnly{f})
	if err := h.load(st.Size()); err != nil {
		return Snapshot{}, err
	}
	return newSnapshot(h.limit, h.head, h.tail), nil
}

// readOnly refuses writes so a header loaded for inspection cannot be
// modified by accident.
type readOnly struct {
	f *os.File
}

func (r readOnly) ReadAt(p []byte, off int64) (int, error) { return r.f.ReadAt(p, off) }
func (r readOnly) WriteAt([]byte, int64) (int, error)      { return 0, os.ErrPermission }
