package mathutil

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Identity is the identity rotation.
var Identity = quat.Number{Real: 1}

// NormalizeQuat scales q to unit length. A zero or non-finite quaternion
// becomes the identity rotation.
func NormalizeQuat(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if !(n >= quatEpsilon) || math.IsInf(n, 0) {
		return Identity
	}
	return quat.Scale(1/n, q)
}

// IsFiniteQuat reports whether every component of q is finite.
func IsFiniteQuat(q quat.Number) bool {
	return IsFinite(q.Real) && IsFinite(q.Imag) && IsFinite(q.Jmag) && IsFinite(q.Kmag)
}

// DeltaRotation returns the world-frame rotation that takes lastRot to
// newRot, i.e. newRot * lastRot⁻¹. Both inputs are normalised first.
func DeltaRotation(newRot, lastRot quat.Number) quat.Number {
	return quat.Mul(NormalizeQuat(newRot), quat.Conj(NormalizeQuat(lastRot)))
}

// ToAngleAxis decomposes q into a rotation angle in degrees and a unit axis.
//
// The shortest arc is used, so the angle is always in [0, 180]. A rotation
// too small to define an axis yields (0, zero vector).
func ToAngleAxis(q quat.Number) (degrees float64, axis r3.Vec) {
	q = NormalizeQuat(q)

	// q and -q encode the same rotation; pick the one with w >= 0.
	if q.Real < 0 {
		q = quat.Scale(-1, q)
	}

	v := r3.Vec{X: q.Imag, Y: q.Jmag, Z: q.Kmag}
	s := r3.Norm(v)
	if s < quatEpsilon {
		return 0, r3.Vec{}
	}

	angle := halfAngleFactor * math.Atan2(s, Clamp(q.Real, -1, 1))
	return Degrees(angle), r3.Scale(1/s, v)
}

// FromAngleAxis builds the rotation of the given angle (degrees) about axis.
// A zero angle or zero axis yields the identity rotation.
func FromAngleAxis(degrees float64, axis r3.Vec) quat.Number {
	axis = SafeUnit(axis)
	if degrees == 0 || axis == (r3.Vec{}) || !IsFinite(degrees) {
		return Identity
	}
	return quat.Number(r3.NewRotation(Radians(degrees), axis))
}

// RotationVector returns the rotation of |v| radians about v, the
// exponential-map form used for angular velocity × time.
func RotationVector(v r3.Vec) quat.Number {
	return FromAngleAxis(Degrees(r3.Norm(v)), v)
}
