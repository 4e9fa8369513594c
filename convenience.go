package motion

import (
	"fmt"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tphakala/go-motion-estimator/internal/mathutil"
)

// Pose is a position and orientation.
type Pose struct {
	Position r3.Vec
	Rotation quat.Number
}

// TimedPose is a pose observed at Time seconds.
type TimedPose struct {
	Time float64
	Pose
}

// Identity returns the identity rotation.
func Identity() quat.Number {
	return mathutil.Identity
}

// AxisAngle returns the rotation of radians about axis. A zero axis yields
// the identity rotation.
func AxisAngle(axis r3.Vec, radians float64) quat.Number {
	return mathutil.FromAngleAxis(mathutil.Degrees(radians), axis)
}

// Integrate returns rotation advanced by angularVelocity (radians per
// second) for dt seconds, applied in world frame.
func Integrate(rotation quat.Number, angularVelocity r3.Vec, dt float64) quat.Number {
	step := mathutil.RotationVector(r3.Scale(dt, angularVelocity))
	return mathutil.NormalizeQuat(quat.Mul(step, rotation))
}

// NewDefault creates an estimator with the default window.
func NewDefault() *Estimator {
	return newEstimator(DefaultConfig())
}

// NewFromPreset creates an estimator from a named preset.
func NewFromPreset(preset Preset) (*Estimator, error) {
	if preset == PresetCustom {
		return nil, fmt.Errorf("%w: custom preset needs explicit parameters", ErrInvalidConfig)
	}
	return New(&Config{Preset: preset})
}

// NewCustom creates an estimator with an explicit window.
func NewCustom(period float64, steps int, newSampleWeight float64) (*Estimator, error) {
	return New(&Config{
		Preset:          PresetCustom,
		Period:          period,
		Steps:           steps,
		NewSampleWeight: newSampleWeight,
	})
}

// EstimateAll runs a fresh estimator over a recorded trace and returns the
// estimate after every sample. The first sample seeds the estimator at rest.
// A nil config uses the default window.
func EstimateAll(samples []TimedPose, config *Config) ([]Estimate, error) {
	if config == nil {
		c := DefaultConfig()
		config = &c
	}

	e, err := New(config)
	if err != nil {
		return nil, err
	}

	out := make([]Estimate, len(samples))
	for i, s := range samples {
		if i == 0 {
			e.Reset(s.Position, s.Rotation, r3.Vec{}, r3.Vec{})
			out[i] = e.Estimate()
			continue
		}
		out[i] = e.Update(s.Position, s.Rotation, s.Time-samples[i-1].Time)
	}

	return out, nil
}
