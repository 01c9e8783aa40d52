package lattice

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExponentOf(t *testing.T) {
	assert.Equal(t, 0, ExponentOf(0, 0, 0))
	assert.Equal(t, 8, ExponentOf(1, 0, 0))
	assert.Equal(t, 15, ExponentOf(0, 1, 0))
	assert.Equal(t, 24, ExponentOf(0, 0, 1))
	assert.Equal(t, -2200, ExponentOf(-80, -40, -40))
	// many-to-one: 3·8 == 1·24
	assert.Equal(t, ExponentOf(3, 0, 0), ExponentOf(0, 0, 1))
}

func TestRatioLogRoundTrip(t *testing.T) {
	for q := -2200; q <= 2200; q++ {
		want := float64(q) / QuarterDivisor
		got := LogBase(RatioOf(q))
		tol := 1e-9 * math.Max(1, math.Abs(want))
		if math.Abs(got-want) > tol {
			t.Fatalf("q=%d: log_phi(ratio_of(q)) = %.17g, want %.17g", q, got, want)
		}
	}
}

func TestPhiConstant(t *testing.T) {
	assert.InDelta(t, 1.618033988749895, Phi, 1e-15)
	assert.InDelta(t, Phi*Phi, Phi+1, 1e-12)
	assert.Equal(t, 1.0, LogBase(Phi))
	assert.Equal(t, 0.0, LogBase(1))
}

func TestValidRatio(t *testing.T) {
	assert.True(t, ValidRatio(1e-300))
	assert.True(t, ValidRatio(3.5e5))
	assert.False(t, ValidRatio(0))
	assert.False(t, ValidRatio(-1))
	assert.False(t, ValidRatio(math.NaN()))
	assert.False(t, ValidRatio(math.Inf(1)))
}
