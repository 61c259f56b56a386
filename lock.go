package logring

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// ErrLocked is the cause reported (wrapped in ErrOpen) when another handle
// already owns the file.
var ErrLocked = errors.New("logring: file is owned by another handle")

// lockFile takes a non-blocking exclusive flock. flock locks belong to the
// open file description, so a second Open of the same path fails even
// inside one process.
func lockFile(f *os.File) error {
	err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
	if errors.Is(err, unix.EWOULDBLOCK) {
		return ErrLocked
	}
	return err
}

func unlockFile(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_UN)
}
