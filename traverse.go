package logring

import "github.com/pkg/errors"

// ForEach calls fn for every stored record, oldest first, without consuming
// anything. Returning ErrStopIteration from fn ends the walk with a nil
// error; any other error is returned as is.
//
// fn must not call Push, Shift or Clear on the same ring.
func (r *Ring) ForEach(fn func(Record) error) error {
	if !r.isOpen {
		return ErrClosed
	}

	size := r.hdr.size()
	pos, tail := r.hdr.head, r.hdr.tail
	for pos != tail {
		frameLen, err := r.frameLengthAt(pos)
		if err != nil {
			return err
		}
		body := make([]byte, frameLen)
		if err := r.readWrapped((pos+lengthPrefix)%size, body); err != nil {
			return errors.WithMessage(err, "read frame body")
		}
		if err := fn(decodeBody(body)); err != nil {
			if errors.Is(err, ErrStopIteration) {
				return nil
			}
			return err
		}
		pos = uint32((int64(pos) + lengthPrefix + int64(frameLen)) % int64(size))
	}
	return nil
}

// Len counts the stored records.
func (r *Ring) Len() (int, error) {
	n := 0
	err := r.ForEach(func(Record) error {
		n++
		return nil
	})
	return n, err
}

// Some reports whether pred holds for at least one stored record.
func (r *Ring) Some(pred func(Record) bool) (bool, error) {
	found := false
	err := r.ForEach(func(rec Record) error {
		if pred(rec) {
			found = true
			return ErrStopIteration
		}
		return nil
	})
	return found, err
}

// Map applies fn to every stored record, oldest first.
func Map[T any](r *Ring, fn func(Record) T) ([]T, error) {
	var out []T
	err := r.ForEach(func(rec Record) error {
		out = append(out, fn(rec))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Reduce folds the stored records, oldest first, into a single value.
func Reduce[T any](r *Ring, initial T, fn func(T, Record) T) (T, error) {
	acc := initial
	err := r.ForEach(func(rec Record) error {
		acc = fn(acc, rec)
		return nil
	})
	if err != nil {
		return initial, err
	}
	return acc, nil
}
