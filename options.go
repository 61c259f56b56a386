package logring

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Options configures how a Ring opens and maintains its backing file.
//
//   - Mode:       permission bits used when the file is created
//   - UseMmap:    map the whole file and serve I/O from memory
//   - SyncWrites: fsync/msync after every cursor update
//   - NoLock:     skip the exclusive flock taken at open
//   - FillUnused: fill the data region of a new file with FillByte
//
// The zero value is usable; DefaultOptions documents the values Open uses.
type Options struct {
	Mode       os.FileMode // Permission bits for a newly created file (0 = 0644)
	UseMmap    bool        // Serve positioned I/O from a shared memory mapping
	SyncWrites bool        // Flush after every Push/Shift cursor update
	NoLock     bool        // Do not take flock(LOCK_EX) on the file
	FillUnused bool        // Fill unused data bytes of a fresh file for inspection
	FillByte   byte        // Sentinel written when FillUnused is set

	Logger zerolog.Logger   // Debug/info events; zero value logs nothing
	Clock  func() time.Time // Source of default ids for PushNow (nil = time.Now)
}

// DefaultOptions returns the configuration used by Open.
func DefaultOptions() Options {
	return Options{
		Mode:     0o644,
		FillByte: '.',
		Logger:   zerolog.Nop(),
		Clock:    time.Now,
	}
}

func (o *Options) normalize() {
	if o.Mode == 0 {
		o.Mode = 0o644
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
}
