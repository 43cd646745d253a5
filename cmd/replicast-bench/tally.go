package main

import "fmt"

type op struct {
	Writer int
	Seq    int
}

// tally is the replicated state of the bench: the last sequence seen from
// each writer. Any gap or repeat is recorded as a fault.
type tally struct {
	last   []int
	count  int
	faults int
}

func newTally(writers int) *tally {
	t := &tally{last: make([]int, writers)}
	for i := range t.last {
		t.last[i] = -1
	}
	return t
}

func (t *tally) Apply(o op) {
	if o.Seq != t.last[o.Writer]+1 {
		t.faults++
	}
	t.last[o.Writer] = o.Seq
	t.count++
}

// Verify checks that every writer's messages 0..each-1 arrived once, in order.
func (t *tally) Verify(each int) error {
	if t.faults > 0 {
		return fmt.Errorf("%d messages out of order or repeated", t.faults)
	}
	for w, last := range t.last {
		if last != each-1 {
			return fmt.Errorf("writer %d: last sequence %d, want %d", w, last, each-1)
		}
	}
	if want := len(t.last) * each; t.count != want {
		return fmt.Errorf("applied %d messages, want %d", t.count, want)
	}
	return nil
}
