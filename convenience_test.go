package motion

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tphakala/go-motion-estimator/internal/testutil"
)

func TestNewFromPreset(t *testing.T) {
	e, err := NewFromPreset(PresetSmooth)
	require.NoError(t, err)
	assert.Equal(t, smoothSteps, e.Config().Steps)

	_, err = NewFromPreset(PresetCustom)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewCustom_Invalid(t *testing.T) {
	_, err := NewCustom(0.1, 0, 2)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestAxisAngle(t *testing.T) {
	q := AxisAngle(r3.Vec{Z: 2}, math.Pi)
	assert.InDelta(t, 0.0, q.Real, 1e-12)
	assert.InDelta(t, 1.0, q.Kmag, 1e-12)

	assert.Equal(t, Identity(), AxisAngle(r3.Vec{}, 1))
}

// TestIntegrate verifies integrating an angular velocity for one second
// rotates by its magnitude.
func TestIntegrate(t *testing.T) {
	rot := Identity()
	omega := r3.Vec{X: math.Pi / 4}
	for range 100 {
		rot = Integrate(rot, omega, 0.01)
	}

	want := AxisAngle(r3.Vec{X: 1}, math.Pi/4)
	assert.InDelta(t, want.Real, rot.Real, 1e-12)
	assert.InDelta(t, want.Imag, rot.Imag, 1e-12)
}

// TestEstimateAll verifies batch evaluation matches driving an estimator by
// hand.
func TestEstimateAll(t *testing.T) {
	samples := make([]TimedPose, 60)
	for i := range samples {
		tt := float64(i) * 0.012
		samples[i] = TimedPose{
			Time: tt,
			Pose: Pose{
				Position: r3.Vec{X: tt * 2, Y: math.Sin(tt)},
				Rotation: AxisAngle(r3.Vec{Y: 1}, tt),
			},
		}
	}

	got, err := EstimateAll(samples, nil)
	require.NoError(t, err)
	require.Len(t, got, len(samples))

	e := NewDefault()
	e.Reset(samples[0].Position, samples[0].Rotation, r3.Vec{}, r3.Vec{})
	want := []Estimate{e.Estimate()}
	for i := 1; i < len(samples); i++ {
		want = append(want, e.Update(samples[i].Position, samples[i].Rotation, samples[i].Time-samples[i-1].Time))
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("EstimateAll mismatch (-want +got):\n%s", diff)
	}

	last := got[len(got)-1]
	assert.InDelta(t, 1.0, last.AngularVelocity.Y, 1e-6)
	testutil.AssertUnitOrZero(t, last.Direction)
}

func TestEstimateAll_InvalidConfig(t *testing.T) {
	_, err := EstimateAll(nil, &Config{Preset: PresetCustom})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestEstimateAll_Empty(t *testing.T) {
	got, err := EstimateAll(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
