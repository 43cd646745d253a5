// Package bus is a bounded broadcast channel. Every message published is
// delivered to every registered cursor exactly once, in one global order.
// A publisher waits, or is refused, when the slowest cursor is a full buffer
// behind.
package bus

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/zap"
	"m7s.live/replicast/common"
	"m7s.live/replicast/log"
	"m7s.live/replicast/util"
)

type slot[M any] struct {
	msg     M
	seq     uint64
	pending atomic.Int64 // cursors that have not consumed this slot yet
}

type Channel[M any] struct {
	mu      sync.Mutex
	ring    *util.Ring[slot[M]]
	tail    atomic.Uint64 // sequence of the next message
	cursors map[uuid.UUID]*Cursor[M]
	space   chan struct{} // closed and replaced whenever a slot is freed for waiting publishers
	waiting atomic.Int32

	name   string
	logger *zap.Logger

	published uint64
	rejected  uint64
	blocked   uint64
	consumed  *xsync.Counter
}

func New[M any](capacity int, opts ...Option) (*Channel[M], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.name == "" {
		o.name = uuid.NewString()
	}
	if o.logger == nil {
		o.logger = log.Logger()
	}
	c := &Channel[M]{
		ring:     util.NewRing[slot[M]](capacity),
		cursors:  make(map[uuid.UUID]*Cursor[M]),
		space:    make(chan struct{}),
		name:     o.name,
		logger:   o.logger.With(zap.String("channel", o.name)),
		consumed: xsync.NewCounter(),
	}
	c.logger.Debug("channel created", zap.Int("capacity", capacity))
	return c, nil
}

func (c *Channel[M]) Name() string {
	return c.name
}

func (c *Channel[M]) Capacity() int {
	return c.ring.Size
}

// Sequence is the number of messages published so far, which is also the
// sequence number the next message will get.
func (c *Channel[M]) Sequence() uint64 {
	return c.tail.Load()
}

func (c *Channel[M]) Readers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cursors)
}

// full reports whether the slot the next message would occupy is still
// unread by some cursor. Caller holds c.mu.
func (c *Channel[M]) full() bool {
	return c.ring.At(c.tail.Load()).pending.Load() > 0
}

// write stores msg at the tail. Caller holds c.mu and has checked full.
func (c *Channel[M]) write(msg M) {
	seq := c.tail.Load()
	s := c.ring.At(seq)
	s.msg = msg
	s.seq = seq
	s.pending.Store(int64(len(c.cursors)))
	c.tail.Store(seq + 1)
	c.published++
	if log.Trace {
		c.logger.Debug("publish", zap.Uint64("sequence", seq), zap.Int("readers", len(c.cursors)))
	}
}

// wake releases every publisher waiting for space. Caller holds c.mu.
func (c *Channel[M]) wake() {
	close(c.space)
	c.space = make(chan struct{})
}

// Publish appends msg, waiting as long as the slowest registered reader is a
// full buffer behind. With no readers registered it never waits.
//
// If every reader is abandoned without draining or leaving, Publish waits
// forever. Use PublishContext to bound the wait.
func (c *Channel[M]) Publish(msg M) {
	_ = c.PublishContext(context.Background(), msg)
}

// PublishContext is Publish with a cancellable wait. When ctx ends first the
// message is not delivered and ctx.Err() is returned.
func (c *Channel[M]) PublishContext(ctx context.Context, msg M) error {
	c.mu.Lock()
	for waited := false; ; waited = true {
		// announce before looking so a reader freeing the slot right after
		// the check knows to wake us
		c.waiting.Add(1)
		if !c.full() {
			c.waiting.Add(-1)
			c.write(msg)
			c.mu.Unlock()
			return nil
		}
		if !waited {
			c.blocked++
			c.logger.Debug("publisher waiting for slow reader", zap.Uint64("sequence", c.tail.Load()), zap.Int("readers", len(c.cursors)))
		}
		space := c.space
		c.mu.Unlock()
		select {
		case <-space:
		case <-ctx.Done():
			c.waiting.Add(-1)
			return ctx.Err()
		}
		c.waiting.Add(-1)
		c.mu.Lock()
	}
}

// TryPublish appends msg if there is room and otherwise returns a
// *BackpressureError holding msg. It never waits.
func (c *Channel[M]) TryPublish(msg M) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.full() {
		c.rejected++
		return &BackpressureError[M]{Message: msg}
	}
	c.write(msg)
	return nil
}

// Register returns a cursor positioned at the current tail. It observes only
// messages published after Register returns.
func (c *Channel[M]) Register() *Cursor[M] {
	cur := &Cursor[M]{id: uuid.New(), ch: c}
	c.mu.Lock()
	start := c.tail.Load()
	cur.next.Store(start)
	c.cursors[cur.id] = cur
	readers := len(c.cursors)
	c.mu.Unlock()
	c.logger.Debug("reader joined", zap.Stringer("reader", cur.id), zap.Uint64("sequence", start), zap.Int("readers", readers))
	return cur
}

// Unregister removes cur and gives back every slot it had not consumed.
// Calling it again is a no-op.
func (c *Channel[M]) Unregister(cur *Cursor[M]) {
	c.own(cur)
	c.mu.Lock()
	if _, ok := c.cursors[cur.id]; !ok {
		c.mu.Unlock()
		return
	}
	delete(c.cursors, cur.id)
	cur.closed.Store(true)
	tail, next := c.tail.Load(), cur.next.Load()
	c.ring.Range(next, tail, func(_ uint64, s *slot[M]) bool {
		s.pending.Add(-1)
		return true
	})
	cur.next.Store(tail)
	if next < tail && c.waiting.Load() > 0 {
		c.wake()
	}
	readers := len(c.cursors)
	c.mu.Unlock()
	c.logger.Debug("reader left", zap.Stringer("reader", cur.id), zap.Uint64("skipped", tail-next), zap.Int("readers", readers))
}

// Pending is the number of messages buffered for cur.
func (c *Channel[M]) Pending(cur *Cursor[M]) int {
	c.own(cur)
	if cur.closed.Load() {
		return 0
	}
	return int(c.tail.Load() - cur.next.Load())
}

// Drain returns up to limit messages at or after cur, oldest first, and
// moves cur past them. A negative limit means everything buffered.
func (c *Channel[M]) Drain(cur *Cursor[M], limit int) []M {
	n := c.Pending(cur)
	if limit >= 0 && limit < n {
		n = limit
	}
	if n == 0 {
		return nil
	}
	msgs := make([]M, 0, n)
	c.DrainFunc(cur, limit, func(msg M) {
		msgs = append(msgs, msg)
	})
	return msgs
}

// DrainFunc is Drain without the slice: fn is called for each message in
// order and the count is returned. It takes the channel lock only to wake
// waiting publishers. Only the goroutine owning cur may call it.
func (c *Channel[M]) DrainFunc(cur *Cursor[M], limit int, fn func(M)) (n int) {
	c.own(cur)
	if cur.closed.Load() || limit == 0 {
		return 0
	}
	tail, next := c.tail.Load(), cur.next.Load()
	if next >= tail {
		return 0
	}
	released := false
	defer func() {
		c.consumed.Add(int64(n))
		if released && c.waiting.Load() > 0 {
			c.mu.Lock()
			c.wake()
			c.mu.Unlock()
		}
	}()
	for ; next < tail && (limit < 0 || n < limit); next++ {
		s := c.ring.At(next)
		msg := s.msg
		if log.Trace {
			c.logger.Debug("drain", zap.Stringer("reader", cur.id), zap.Uint64("sequence", s.seq))
		}
		cur.next.Store(next + 1)
		// once pending hits zero a publisher may overwrite s, so msg is copied first
		if s.pending.Add(-1) == 0 {
			released = true
		}
		n++
		fn(msg)
	}
	return
}

func (c *Channel[M]) own(cur *Cursor[M]) {
	if cur.ch != c {
		panic("bus: cursor registered on another channel")
	}
}

// Stats implements common.StatsSource.
func (c *Channel[M]) Stats() common.Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	tail := c.tail.Load()
	st := common.Stats{
		Name:      c.name,
		Capacity:  c.ring.Size,
		Readers:   len(c.cursors),
		Sequence:  tail,
		Published: c.published,
		Rejected:  c.rejected,
		Blocked:   c.blocked,
		Consumed:  uint64(c.consumed.Value()),
	}
	for _, cur := range c.cursors {
		if lag := tail - cur.next.Load(); lag > st.MaxLag {
			st.MaxLag = lag
		}
	}
	return st
}
