// Package mathutil provides vector and rotation helpers for motion estimation.
//
// Vectors are gonum r3.Vec values and rotations are gonum quat.Number values
// interpreted as unit quaternions. Every helper here is total: degenerate
// inputs (zero-length vectors, zero quaternions) map to the zero vector or
// the identity rotation, never to NaN.
package mathutil

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// SafeUnit returns the unit vector colinear with v, or the zero vector when
// |v| < UnitEpsilon or v is not finite.
//
// r3.Unit returns NaN components for the zero vector; callers that feed
// directions back into dot products need the zero vector instead.
func SafeUnit(v r3.Vec) r3.Vec {
	n := r3.Norm(v)
	if !(n >= UnitEpsilon) || math.IsInf(n, 0) {
		return r3.Vec{}
	}
	return r3.Scale(1/n, v)
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// IsFiniteVec reports whether every component of v is finite.
func IsFiniteVec(v r3.Vec) bool {
	return IsFinite(v.X) && IsFinite(v.Y) && IsFinite(v.Z)
}

// Clamp returns x within [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Lerp linearly interpolates between a and b. t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Degrees converts radians to degrees.
func Degrees(radians float64) float64 {
	return radians * degreesPerRadian
}

// Radians converts degrees to radians.
func Radians(degrees float64) float64 {
	return degrees * radiansPerDegree
}
