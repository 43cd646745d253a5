package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	var m Map[string, int]
	assert.True(t, m.Add("a", 1))
	assert.False(t, m.Add("a", 2))
	assert.True(t, m.Add("b", 2))
	assert.Equal(t, 2, m.Len())

	sum := 0
	m.Range(func(_ string, v int) { sum += v })
	assert.Equal(t, 3, sum)

	assert.True(t, m.Delete("a"))
	assert.False(t, m.Delete("a"))
	assert.Equal(t, 1, m.Len())
}
