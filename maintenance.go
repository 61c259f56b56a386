package logring

import (
	"math"

	"github.com/pkg/errors"
)

// Clear drops every stored record with a single head update.
func (r *Ring) Clear() error {
	if !r.isOpen {
		return ErrClosed
	}
	dropped := r.Used()
	if err := r.hdr.setHead(r.hdr.tail); err != nil {
		return errors.WithMessage(err, "clear")
	}
	r.log.Info().Int64("bytes", dropped).Msg("log ring cleared")
	return r.syncIfNeeded()
}

// Resize rewrites the log at a new total limit (header included, clamped to
// MinFileSize). The newest records that fit are kept in their original
// order; older ones are dropped and counted in the result.
//
// Resize truncates or extends the file in place and is not crash-safe: an
// interrupted Resize leaves a file that may fail header validation.
func (r *Ring) Resize(limit int64) (dropped int, err error) {
	if !r.isOpen {
		return 0, ErrClosed
	}
	if limit < 0 || limit > math.MaxUint32 {
		return 0, errors.WithMessagef(ErrInvalidLimit, "resize to %d", limit)
	}
	if limit < MinFileSize {
		limit = MinFileSize
	}
	if uint32(limit) == r.hdr.limit {
		return 0, nil
	}

	var records []Record
	if err := r.ForEach(func(rec Record) error {
		records = append(records, rec)
		return nil
	}); err != nil {
		return 0, errors.WithMessage(err, "collect records")
	}

	newSize := limit - HeaderSize
	keepFrom := len(records)
	var total int64
	for i := len(records) - 1; i >= 0; i-- {
		n := frameSize(len(records[i].Payload))
		if total+n >= newSize {
			break
		}
		total += n
		keepFrom = i
	}
	kept := records[keepFrom:]

	frames := make([]byte, total)
	off := int64(0)
	for _, rec := range kept {
		n := frameSize(len(rec.Payload))
		encodeFrame(frames[off:off+n], rec.ID, rec.Payload)
		off += n
	}

	// Empty the ring first so the header never describes data that is gone.
	if err := r.hdr.setHead(0); err != nil {
		return 0, errors.WithMessage(err, "resize")
	}
	if err := r.hdr.setTail(0); err != nil {
		return 0, errors.WithMessage(err, "resize")
	}
	if err := r.store.resize(limit); err != nil {
		return 0, ioErr(err, "resize %s to %d bytes", r.path, limit)
	}
	if err := r.hdr.setLimit(uint32(limit)); err != nil {
		return 0, errors.WithMessage(err, "resize")
	}
	if r.options.FillUnused {
		if err := r.fill(0, r.hdr.size()); err != nil {
			return 0, err
		}
	}
	if total > 0 {
		if err := r.writeWrapped(0, frames); err != nil {
			return 0, errors.WithMessage(err, "rewrite records")
		}
		if err := r.hdr.setTail(uint32(total)); err != nil {
			return 0, errors.WithMessage(err, "resize")
		}
	}

	dropped = len(records) - len(kept)
	r.log.Info().
		Int64("limit", limit).
		Int("kept", len(kept)).
		Int("dropped", dropped).
		Msg("log ring resized")
	return dropped, r.syncIfNeeded()
}
