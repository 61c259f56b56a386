package logring

import "github.com/pkg/errors"

// Flush memaksa data dan header tersimpan ke disk (fsync atau msync).
// Push dan Shift sudah menulis cursor sebelum kembali; Flush hanya
// diperlukan bila SyncWrites tidak aktif dan data harus tahan crash.
func (r *Ring) Flush() error {
	if !r.isOpen {
		return ErrClosed
	}
	if err := r.store.sync(); err != nil {
		return ioErr(err, "sync %s", r.path)
	}
	return nil
}

// Close melepas lock, mapping dan file descriptor. Close kedua kali
// mengembalikan ErrClosed.
func (r *Ring) Close() error {
	if !r.isOpen {
		return ErrClosed
	}
	r.isOpen = false

	var firstErr error
	if r.locked {
		if err := unlockFile(r.file); err != nil {
			firstErr = errors.Wrapf(err, "unlock %s", r.path)
		}
		r.locked = false
	}
	if err := r.store.close(); err != nil && firstErr == nil {
		firstErr = errors.Wrapf(err, "close %s", r.path)
	}
	if firstErr != nil {
		r.log.Warn().Err(firstErr).Msg("log ring close failed")
	}
	return firstErr
}
