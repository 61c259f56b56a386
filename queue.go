package logring

import (
	"context"
	"sync"
)

// Queue shares one Ring between goroutines. Every operation is handed to a
// single worker goroutine, so Push, Shift and the rest run strictly one after
// another in the order the worker receives them.
type Queue struct {
	ring *Ring

	reqs chan func(*Ring)
	stop chan struct{}
	done chan struct{}

	closeOnce sync.Once
}

// ShiftResult carries the outcome of an asynchronous Shift.
type ShiftResult struct {
	Record Record
	Err    error
}

// NewQueue starts the worker for r. The Queue owns r from now on; close it
// through Queue.Close only.
func NewQueue(r *Ring) *Queue {
	q := &Queue{
		ring: r,
		reqs: make(chan func(*Ring)),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go q.run()
	return q
}

// OpenQueue opens the ring at path and wraps it in a Queue.
func OpenQueue(path string, limit int64, opts Options) (*Queue, error) {
	r, err := OpenWithOptions(path, limit, opts)
	if err != nil {
		return nil, err
	}
	return NewQueue(r), nil
}

func (q *Queue) run() {
	defer close(q.done)
	for {
		select {
		case fn := <-q.reqs:
			fn(q.ring)
		case <-q.stop:
			return
		}
	}
}

// submit hands fn to the worker. It fails with ErrClosed once Close has
// begun, or with the context error if ctx ends first.
func (q *Queue) submit(ctx context.Context, fn func(*Ring)) error {
	select {
	case q.reqs <- fn:
		return nil
	case <-q.stop:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PushAsync queues a Push. payload is copied, the caller may reuse it as
// soon as PushAsync returns. The channel receives exactly one value.
func (q *Queue) PushAsync(id uint64, payload []byte) <-chan error {
	return q.pushAsync(context.Background(), id, payload)
}

func (q *Queue) pushAsync(ctx context.Context, id uint64, payload []byte) <-chan error {
	res := make(chan error, 1)
	p := append([]byte(nil), payload...)
	if err := q.submit(ctx, func(r *Ring) { res <- r.Push(id, p) }); err != nil {
		res <- err
	}
	return res
}

// ShiftAsync queues a Shift. The channel receives exactly one value.
func (q *Queue) ShiftAsync() <-chan ShiftResult {
	return q.shiftAsync(context.Background())
}

func (q *Queue) shiftAsync(ctx context.Context) <-chan ShiftResult {
	res := make(chan ShiftResult, 1)
	if err := q.submit(ctx, func(r *Ring) {
		rec, err := r.Shift()
		res <- ShiftResult{Record: rec, Err: err}
	}); err != nil {
		res <- ShiftResult{Err: err}
	}
	return res
}

// Push appends a record and waits for the result.
func (q *Queue) Push(ctx context.Context, id uint64, payload []byte) error {
	select {
	case err := <-q.pushAsync(ctx, id, payload):
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shift removes the oldest record and waits for the result.
func (q *Queue) Shift(ctx context.Context) (Record, error) {
	select {
	case res := <-q.shiftAsync(ctx):
		return res.Record, res.Err
	case <-ctx.Done():
		return Record{}, ctx.Err()
	}
}

// Snapshot returns the ring's snapshot as seen by the worker.
func (q *Queue) Snapshot(ctx context.Context) (Snapshot, error) {
	res := make(chan Snapshot, 1)
	if err := q.submit(ctx, func(r *Ring) { res <- r.Snapshot() }); err != nil {
		return Snapshot{}, err
	}
	select {
	case s := <-res:
		return s, nil
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

// Flush syncs the ring to disk.
func (q *Queue) Flush(ctx context.Context) error {
	res := make(chan error, 1)
	if err := q.submit(ctx, func(r *Ring) { res <- r.Flush() }); err != nil {
		return err
	}
	select {
	case err := <-res:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the worker after the operation in progress and closes the
// ring. Calls submitted afterwards fail with ErrClosed, as does a second
// Close.
func (q *Queue) Close() error {
	err := ErrClosed
	q.closeOnce.Do(func() {
		close(q.stop)
		<-q.done
		err = q.ring.Close()
	})
	return err
}
