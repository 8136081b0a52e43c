package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCentralDiff_Polynomial(t *testing.T) {
	f := func(x float64) float64 { return x * x * x }
	assert.InDelta(t, 12.0, CentralDiff(f, 2, 1e-5), 1e-6)
}

func TestSecondDiff_Sin(t *testing.T) {
	got := SecondDiff(math.Sin, 0.7, 1e-4)
	assert.InDelta(t, -math.Sin(0.7), got, 1e-5)
}

func TestAssertRelClose_Passes(t *testing.T) {
	assert.True(t, AssertRelClose(t, 100, 100.001, 1e-4))
}

func TestRelClose(t *testing.T) {
	assert.True(t, RelClose(1e6, 1e6+1, 1e-5))
	assert.False(t, RelClose(1e6, 1e6+100, 1e-5))

	// Near zero the comparison is absolute.
	assert.True(t, RelClose(0, 1e-9, 1e-8))
	assert.False(t, RelClose(0, 1e-6, 1e-8))
}
