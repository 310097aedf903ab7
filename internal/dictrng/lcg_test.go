package dictrng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextIsDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestNextInRangeStaysInBounds(t *testing.T) {
	g := New(1)
	for i := 0; i < 1000; i++ {
		v := g.NextInRange(5, 12)
		assert.GreaterOrEqual(t, v, 5)
		assert.Less(t, v, 12)
	}
}

func TestNextInRangePanicsOnEmptyRange(t *testing.T) {
	g := New(1)
	assert.Panics(t, func() { g.NextInRange(5, 5) })
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)
	assert.NotEqual(t, a.Next(), b.Next())
}
