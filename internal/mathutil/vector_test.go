package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSafeUnit(t *testing.T) {
	tests := []struct {
		name string
		in   r3.Vec
		want r3.Vec
	}{
		{"x axis", r3.Vec{X: 3}, r3.Vec{X: 1}},
		{"diagonal", r3.Vec{X: 1, Y: 1}, r3.Vec{X: math.Sqrt2 / 2, Y: math.Sqrt2 / 2}},
		{"negative", r3.Vec{Z: -0.5}, r3.Vec{Z: -1}},
		{"zero", r3.Vec{}, r3.Vec{}},
		{"below epsilon", r3.Vec{X: UnitEpsilon / 10}, r3.Vec{}},
		{"nan", r3.Vec{X: math.NaN()}, r3.Vec{}},
		{"inf", r3.Vec{Y: math.Inf(1)}, r3.Vec{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafeUnit(tt.in)
			assert.InDelta(t, tt.want.X, got.X, 1e-12)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-12)
			assert.InDelta(t, tt.want.Z, got.Z, 1e-12)
			assert.True(t, IsFiniteVec(got))
		})
	}
}

func TestClampAndLerp(t *testing.T) {
	assert.InDelta(t, 0.0, Clamp(-1, 0, 1), 0)
	assert.InDelta(t, 1.0, Clamp(2, 0, 1), 0)
	assert.InDelta(t, 0.25, Clamp(0.25, 0, 1), 0)

	assert.InDelta(t, 2.0, Lerp(2, 4, 0), 0)
	assert.InDelta(t, 4.0, Lerp(2, 4, 1), 0)
	assert.InDelta(t, 3.0, Lerp(2, 4, 0.5), 1e-15)
}

func TestDegreesRadians(t *testing.T) {
	assert.InDelta(t, 180.0, Degrees(math.Pi), 1e-12)
	assert.InDelta(t, math.Pi/2, Radians(90), 1e-12)
	assert.InDelta(t, 37.5, Degrees(Radians(37.5)), 1e-12)
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(0))
	assert.True(t, IsFinite(-1e300))
	assert.False(t, IsFinite(math.NaN()))
	assert.False(t, IsFinite(math.Inf(-1)))
	assert.False(t, IsFiniteVec(r3.Vec{Z: math.NaN()}))
}
