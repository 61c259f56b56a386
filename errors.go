package logring

import (
	"github.com/pkg/errors"
)

// Error kinds. Every error returned by this package matches at least one of
// them through errors.Is, while still carrying the underlying cause.
var (
	ErrOpen           = errors.New("logring: cannot open log file")
	ErrCorruptHeader  = errors.New("logring: corrupt header")
	ErrCorruptRecord  = errors.New("logring: corrupt record frame")
	ErrRecordTooLarge = errors.New("logring: record too large for ring")
	ErrEmptyLog       = errors.New("logring: log is empty")
	ErrIO             = errors.New("logring: i/o failure")
	ErrClosed         = errors.New("logring: log is closed")
	ErrInvalidLimit   = errors.New("logring: limit outside 0..4294967295")

	// ErrStopIteration may be returned from a ForEach callback to stop the
	// traversal early. ForEach itself then returns nil.
	ErrStopIteration = errors.New("logring: stop iteration")
)

// kindError attaches an error kind to a concrete cause.
type kindError struct {
	kind  error
	cause error
}

func (e *kindError) Error() string {
	if e.cause == nil {
		return e.kind.Error()
	}
	return e.kind.Error() + ": " + e.cause.Error()
}

func (e *kindError) Is(target error) bool { return target == e.kind }
func (e *kindError) Unwrap() error        { return e.cause }
func (e *kindError) Cause() error         { return e.cause }

func withKind(kind, cause error) error {
	return &kindError{kind: kind, cause: cause}
}

func ioErr(cause error, format string, args ...interface{}) error {
	return errors.WithMessagef(withKind(ErrIO, cause), format, args...)
}

func openErr(cause error, format string, args ...interface{}) error {
	return errors.WithMessagef(withKind(ErrOpen, cause), format, args...)
}

func corruptHeaderf(format string, args ...interface{}) error {
	return withKind(ErrCorruptHeader, errors.Errorf(format, args...))
}

func corruptRecordf(format string, args ...interface{}) error {
	return withKind(ErrCorruptRecord, errors.Errorf(format, args...))
}
