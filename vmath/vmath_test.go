package vmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFastRandDeterministic(t *testing.T) {
	a, b := NewFastRand(42), NewFastRand(42)
	for i := 0; i < 16; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestFastRandZeroSeed(t *testing.T) {
	r := NewFastRand(0)
	assert.NotZero(t, r.Next())
}

func TestFastRandRange(t *testing.T) {
	r := NewFastRand(7)
	for i := 0; i < 1000; i++ {
		v := r.Range(3, 9)
		assert.GreaterOrEqual(t, v, 3.0)
		assert.Less(t, v, 9.0)
		assert.Less(t, r.Intn(5), 5)
	}
	assert.Equal(t, 4.0, r.Range(4, 4))
	assert.Zero(t, r.Intn(0))
}

func TestBoxOverlaps(t *testing.T) {
	base := Box{X: 0, Y: 0, W: 4, H: 4}
	tests := []struct {
		name string
		o    Box
		want bool
	}{
		{"inside", Box{1, 1, 1, 1}, true},
		{"partial", Box{3, 3, 4, 4}, true},
		{"touching edge", Box{4, 0, 2, 2}, false},
		{"apart", Box{10, 10, 1, 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.o))
			assert.Equal(t, tt.want, tt.o.Overlaps(base))
		})
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1, 0, 5))
	assert.Equal(t, 5.0, Clamp(9, 0, 5))
	assert.Equal(t, 2.5, Clamp(2.5, 0, 5))
}
