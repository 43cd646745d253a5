package bus

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Cursor is one reader's position in a Channel. It is not safe for
// concurrent use; exactly one goroutine at a time should drain it.
type Cursor[M any] struct {
	id     uuid.UUID
	ch     *Channel[M]
	next   atomic.Uint64 // sequence of the next message to consume
	closed atomic.Bool
}

func (cur *Cursor[M]) ID() string {
	return cur.id.String()
}

// Position is the sequence number of the next message cur will consume.
func (cur *Cursor[M]) Position() uint64 {
	return cur.next.Load()
}

// Closed reports whether the cursor was unregistered.
func (cur *Cursor[M]) Closed() bool {
	return cur.closed.Load()
}
