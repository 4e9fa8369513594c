// Package testutil provides reusable test helper functions for motion estimator tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance  = 1e-9
	VelocityTolerance = 1e-6
	UnitTolerance     = 1e-9
	AngleTolerance    = 1e-6 // degrees
)

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertFiniteVec verifies that no component of v is NaN or Inf.
func AssertFiniteVec(t *testing.T, v r3.Vec, msgAndArgs ...any) bool {
	t.Helper()
	return AssertNoNaNOrInf(t, []float64{v.X, v.Y, v.Z}, msgAndArgs...)
}

// AssertInRange verifies that a value is within [min, max].
func AssertInRange(t *testing.T, value, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t, "value out of range",
			"value %f is outside range [%f, %f]", value, minVal, maxVal)
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}

// AssertVecInDelta verifies every component of actual is within delta of expected.
func AssertVecInDelta(t *testing.T, expected, actual r3.Vec, delta float64, msgAndArgs ...any) bool {
	t.Helper()
	d := r3.Sub(actual, expected)
	if math.Abs(d.X) > delta || math.Abs(d.Y) > delta || math.Abs(d.Z) > delta {
		return assert.Fail(t, "vectors differ",
			"expected %v, actual %v (delta %g)", expected, actual, delta)
	}
	return true
}

// AssertUnitOrZero verifies that v is either the zero vector or unit length.
func AssertUnitOrZero(t *testing.T, v r3.Vec, msgAndArgs ...any) bool {
	t.Helper()
	if !AssertFiniteVec(t, v, msgAndArgs...) {
		return false
	}
	if v == (r3.Vec{}) {
		return true
	}
	return assert.InDelta(t, 1.0, r3.Norm(v), UnitTolerance,
		"vector %v is neither unit length nor zero", v)
}

// AngleBetween returns the angle in degrees between a and b, or 0 when
// either is the zero vector.
func AngleBetween(a, b r3.Vec) float64 {
	na, nb := r3.Norm(a), r3.Norm(b)
	if na == 0 || nb == 0 {
		return 0
	}
	c := r3.Dot(a, b) / (na * nb)
	c = math.Max(-1, math.Min(1, c))
	return math.Acos(c) * 180 / math.Pi
}
