package mathutil

import "math"

// Numerical stability thresholds
const (
	// UnitEpsilon is the vector length below which a direction is treated as
	// absent. Normalising anything shorter returns the zero vector.
	UnitEpsilon = 1e-10

	// quatEpsilon is the quaternion norm (or vector-part norm) below which a
	// rotation is treated as identity.
	quatEpsilon = 1e-12
)

// Angle conversion factors
const (
	degreesPerRadian = 180.0 / math.Pi
	radiansPerDegree = math.Pi / 180.0
)

// halfAngleFactor converts between a rotation angle and the half angle
// stored in a unit quaternion.
const halfAngleFactor = 2.0
