package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRing(t *testing.T) {
	t.Run(t.Name(), func(t *testing.T) {
		r := NewRing[int](4)
		require.Equal(t, 4, r.Size)
		for seq := uint64(0); seq < 10; seq++ {
			*r.At(seq) = int(seq)
		}
		// the last Size writes survive
		assert.Equal(t, 8, *r.At(0))
		assert.Equal(t, 9, *r.At(1))
		assert.Equal(t, 6, *r.At(2))
		assert.Equal(t, 7, *r.At(7))
		assert.Same(t, r.At(3), r.At(11))
	})
}

func TestRingRange(t *testing.T) {
	r := NewRing[uint64](3)
	for seq := uint64(5); seq < 8; seq++ {
		*r.At(seq) = seq * 10
	}
	var seen []uint64
	r.Range(5, 8, func(seq uint64, item *uint64) bool {
		assert.Equal(t, seq*10, *item)
		seen = append(seen, seq)
		return seq < 6
	})
	assert.Equal(t, []uint64{5, 6}, seen)

	// Init clears every slot
	r.Init(3)
	assert.Zero(t, *r.At(5))
}
