package replicast

import (
	"errors"
	"runtime"

	"m7s.live/replicast/bus"
)

// Applier is the one capability a replicated state needs: fold a message
// into itself. Apply is only ever called from the goroutine driving the
// reader, in publish order.
type Applier[M any] interface {
	Apply(msg M)
}

var ErrReaderConsumed = errors.New("replicast: reader already consumed")

// Reader keeps a local T in step with a channel, but only when asked to.
// Methods named Stale never synchronize; methods named Fresh or Update
// apply every buffered message first.
//
// A Reader is owned by one goroutine at a time. After IntoStale, IntoFresh
// or Close any further call panics with ErrReaderConsumed.
type Reader[M any, T Applier[M]] struct {
	ch       *bus.Channel[M]
	cursor   *bus.Cursor[M]
	state    T
	consumed bool
}

// AddReader registers a new reader on w's channel seeded with initial. The
// reader observes only messages published after AddReader returns. Readers
// of the same channel may wrap different state types.
func AddReader[M any, T Applier[M]](w *Writer[M], initial T) *Reader[M, T] {
	r := &Reader[M, T]{
		ch:     w.ch,
		cursor: w.ch.Register(),
		state:  initial,
	}
	runtime.SetFinalizer(r, func(r *Reader[M, T]) {
		if !r.consumed {
			r.ch.Unregister(r.cursor)
		}
	})
	return r
}

func (r *Reader[M, T]) live() {
	if r.consumed {
		panic(ErrReaderConsumed)
	}
}

func (r *Reader[M, T]) release() {
	r.consumed = true
	runtime.SetFinalizer(r, nil)
	r.ch.Unregister(r.cursor)
}

func (r *Reader[M, T]) ID() string {
	return r.cursor.ID()
}

// Consumed reports whether the reader has been turned into its state or closed.
func (r *Reader[M, T]) Consumed() bool {
	return r.consumed
}

// Pending is the number of buffered messages not yet applied.
func (r *Reader[M, T]) Pending() int {
	r.live()
	return r.ch.Pending(r.cursor)
}

// Update applies every buffered message and returns how many there were.
func (r *Reader[M, T]) Update() int {
	r.live()
	return r.ch.DrainFunc(r.cursor, -1, r.state.Apply)
}

// UpdateLimited applies at most max buffered messages, leaving the rest for
// a later call.
func (r *Reader[M, T]) UpdateLimited(max int) int {
	r.live()
	if max <= 0 {
		return 0
	}
	return r.ch.DrainFunc(r.cursor, max, r.state.Apply)
}

// UpdateCollect is Update that also returns the applied messages in order.
func (r *Reader[M, T]) UpdateCollect() []M {
	r.live()
	return r.collect(-1)
}

func (r *Reader[M, T]) UpdateCollectLimited(max int) []M {
	r.live()
	if max <= 0 {
		return nil
	}
	return r.collect(max)
}

func (r *Reader[M, T]) collect(limit int) (msgs []M) {
	r.ch.DrainFunc(r.cursor, limit, func(msg M) {
		r.state.Apply(msg)
		msgs = append(msgs, msg)
	})
	return
}

// PeekStale returns the local state as it is, without applying anything.
func (r *Reader[M, T]) PeekStale() T {
	r.live()
	return r.state
}

// PeekFresh applies every message published before the call and returns the
// local state. A publish racing with the call may or may not be included.
func (r *Reader[M, T]) PeekFresh() T {
	r.Update()
	return r.state
}

// IntoStale consumes the reader and returns its state without applying
// buffered messages.
func (r *Reader[M, T]) IntoStale() T {
	r.live()
	r.release()
	return r.state
}

// IntoFresh consumes the reader and returns its state after applying every
// buffered message.
func (r *Reader[M, T]) IntoFresh() T {
	r.Update()
	r.release()
	return r.state
}

// Close consumes the reader and drops its state. Closing twice is a no-op.
func (r *Reader[M, T]) Close() {
	if !r.consumed {
		r.release()
	}
}
