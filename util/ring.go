package util

// Ring is a fixed arena of slots addressed by an ever increasing sequence
// number. Sequence n lives in slot n % Size, so a slot is reused every Size
// sequences.
type Ring[T any] struct {
	items []T
	Size  int
}

func NewRing[T any](n int) *Ring[T] {
	return new(Ring[T]).Init(n)
}

func (r *Ring[T]) Init(n int) *Ring[T] {
	r.items = make([]T, n)
	r.Size = n
	return r
}

// At returns the slot holding sequence seq.
func (r *Ring[T]) At(seq uint64) *T {
	return &r.items[seq%uint64(r.Size)]
}

// Range calls f for sequences [from, to) in order and stops early when f
// returns false.
func (r *Ring[T]) Range(from, to uint64, f func(seq uint64, item *T) bool) {
	for seq := from; seq < to; seq++ {
		if !f(seq, r.At(seq)) {
			return
		}
	}
}
