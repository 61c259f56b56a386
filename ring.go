package logring

import (
	"math"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Ring is a bounded FIFO log of variable-length records kept in a single
// fixed-size file. Once the data region is full, Push evicts the oldest
// records to make room.
//
// A Ring has a single owner: it does no internal locking and calls must not
// overlap. Use Queue to share one between goroutines.
type Ring struct {
	path    string
	file    *os.File
	store   store
	hdr     *header
	options Options
	log     zerolog.Logger
	bufPool bufferPool
	stats   counters
	locked  bool
	isOpen  bool
}

// Open opens the log at path, creating it with the given total byte limit
// (header included) when it does not exist yet. An existing file keeps its
// persisted limit and cursors; the limit argument is then ignored.
func Open(path string, limit int64) (*Ring, error) {
	return OpenWithOptions(path, limit, DefaultOptions())
}

// OpenWithOptions is Open with explicit options.
func OpenWithOptions(path string, limit int64, opts Options) (*Ring, error) {
	opts.normalize()

	// Pastikan direktori ada
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, openErr(err, "create directory for %s", path)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, opts.Mode)
	if err != nil {
		return nil, openErr(err, "open %s", path)
	}

	r := &Ring{
		path:    path,
		file:    f,
		options: opts,
		log:     opts.Logger.With().Str("path", path).Logger(),
	}

	if !opts.NoLock {
		if err := lockFile(f); err != nil {
			f.Close()
			return nil, openErr(err, "lock %s", path)
		}
		r.locked = true
	}

	st, err := f.Stat()
	if err != nil {
		r.abort()
		return nil, openErr(err, "stat %s", path)
	}

	fresh := st.Size() == 0
	size := st.Size()
	if fresh {
		if limit < 0 || limit > math.MaxUint32 {
			r.abort()
			return nil, openErr(errors.WithMessagef(ErrInvalidLimit, "limit %d", limit), "create %s", path)
		}
		size = max(limit, MinFileSize)
		if err := f.Truncate(size); err != nil {
			r.abort()
			return nil, openErr(err, "allocate %d bytes for %s", size, path)
		}
	} else if size > math.MaxUint32 {
		r.abort()
		return nil, corruptHeaderf("file size %d exceeds the 32-bit limit field", size)
	}

	s, err := openStore(f, size, opts.UseMmap)
	if err != nil {
		r.abort()
		return nil, openErr(err, "map %s", path)
	}
	r.store = s
	r.hdr = newHeader(s)

	if fresh {
		err = r.create(uint32(size))
	} else {
		err = r.hdr.load(size)
	}
	if err != nil {
		r.abort()
		return nil, err
	}

	r.isOpen = true
	r.log.Debug().
		Bool("created", fresh).
		Uint32("limit", r.hdr.limit).
		Uint32("head", r.hdr.head).
		Uint32("tail", r.hdr.tail).
		Msg("log ring opened")
	return r, nil
}

func (r *Ring) create(limit uint32) error {
	if err := r.hdr.initialize(limit); err != nil {
		return err
	}
	if r.options.FillUnused {
		return r.fill(0, r.hdr.size())
	}
	return nil
}

// fill writes the sentinel byte over n data bytes starting at rel.
func (r *Ring) fill(rel, n uint32) error {
	const chunk = 64 * 1024
	buf := make([]byte, min(n, chunk))
	for i := range buf {
		buf[i] = r.options.FillByte
	}
	for n > 0 {
		part := min(n, uint32(len(buf)))
		if err := r.writeWrapped(rel, buf[:part]); err != nil {
			return errors.WithMessage(err, "fill data region")
		}
		rel = (rel + part) % r.hdr.size()
		n -= part
	}
	return nil
}

// abort releases whatever a failed open managed to acquire.
func (r *Ring) abort() {
	if r.locked {
		_ = unlockFile(r.file)
	}
	if r.store != nil {
		_ = r.store.close()
		return
	}
	_ = r.file.Close()
}

// Path returns the location of the backing file.
func (r *Ring) Path() string { return r.path }
