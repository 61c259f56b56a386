package logring

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// oneChar is the ring footprint of a record with a single payload byte.
const oneChar = frameOverhead + 1

type backend struct {
	name    string
	useMmap bool
}

var backends = []backend{
	{name: "pwrite", useMmap: false},
	{name: "mmap", useMmap: true},
}

// forEachBackend runs fn once per I/O backend.
func forEachBackend(t *testing.T, fn func(t *testing.T, opts Options)) {
	for _, b := range backends {
		b := b
		t.Run(b.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.UseMmap = b.useMmap
			fn(t, opts)
		})
	}
}

// newTestRing opens a fresh ring in a temporary directory.
func newTestRing(t *testing.T, limit int64, opts Options) (*Ring, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "log.ring")
	r, err := OpenWithOptions(path, limit, opts)
	require.NoError(t, err, "open ring")
	t.Cleanup(func() { _ = r.Close() })
	return r, path
}

// reopen closes r and opens path again with the same options.
func reopen(t *testing.T, r *Ring, path string, opts Options) *Ring {
	t.Helper()
	require.NoError(t, r.Close())
	r2, err := OpenWithOptions(path, 0, opts)
	require.NoError(t, err, "reopen ring")
	t.Cleanup(func() { _ = r2.Close() })
	return r2
}

func pushAll(t *testing.T, r *Ring, records ...Record) {
	t.Helper()
	for _, rec := range records {
		require.NoError(t, r.Push(rec.ID, rec.Payload), "push id %d", rec.ID)
	}
}

func collect(t *testing.T, r *Ring) []Record {
	t.Helper()
	var out []Record
	require.NoError(t, r.ForEach(func(rec Record) error {
		out = append(out, rec)
		return nil
	}))
	return out
}

func letter(i int) []byte {
	return []byte{byte('a' + i)}
}
