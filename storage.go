package logring

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// store is the positioned read/write primitive the ring is built on.
//
// Two implementations exist: fileStore issues pread/pwrite on the descriptor,
// mmapStore copies into a MAP_SHARED mapping of the whole file. Both report a
// short transfer through the returned count, the ring turns any shortfall
// into ErrIO.
type store interface {
	io.ReaderAt
	io.WriterAt
	sync() error
	resize(size int64) error
	close() error
}

func openStore(f *os.File, size int64, useMmap bool) (store, error) {
	if !useMmap {
		return &fileStore{file: f}, nil
	}
	s := &mmapStore{file: f}
	if err := s.mapFile(size); err != nil {
		return nil, err
	}
	return s, nil
}

// fileStore merepresentasikan akses langsung ke file tanpa memory-map.
type fileStore struct {
	file *os.File
}

func (s *fileStore) ReadAt(p []byte, off int64) (int, error)  { return s.file.ReadAt(p, off) }
func (s *fileStore) WriteAt(p []byte, off int64) (int, error) { return s.file.WriteAt(p, off) }

func (s *fileStore) sync() error {
	return s.file.Sync()
}

func (s *fileStore) resize(size int64) error {
	return s.file.Truncate(size)
}

func (s *fileStore) close() error {
	return s.file.Close()
}

// mmapStore melayani baca/tulis lewat copy memori pada region hasil unix.Mmap,
// sehingga tidak ada syscall per operasi.
type mmapStore struct {
	file *os.File
	data []byte
}

func (s *mmapStore) mapFile(size int64) error {
	data, err := unix.Mmap(int(s.file.Fd()), 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return errors.Wrapf(err, "mmap %d bytes", size)
	}
	s.data = data
	return nil
}

func (s *mmapStore) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= int64(len(s.data)) {
		return 0, io.EOF
	}
	n := copy(p, s.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (s *mmapStore) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= int64(len(s.data)) {
		return 0, io.ErrShortWrite
	}
	n := copy(s.data[off:], p)
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

func (s *mmapStore) sync() error {
	return unix.Msync(s.data, unix.MS_SYNC)
}

func (s *mmapStore) resize(size int64) error {
	if err := unix.Munmap(s.data); err != nil {
		return errors.Wrap(err, "munmap")
	}
	s.data = nil
	if err := s.file.Truncate(size); err != nil {
		return err
	}
	return s.mapFile(size)
}

func (s *mmapStore) close() error {
	var firstErr error
	if s.data != nil {
		if err := unix.Munmap(s.data); err != nil {
			firstErr = errors.Wrap(err, "munmap")
		}
		s.data = nil
	}
	if err := s.file.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
