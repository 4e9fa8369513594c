package trace

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tphakala/go-motion-estimator/internal/mathutil"
)

// Params describes a synthetic trace.
type Params struct {
	Ticks           int
	TickSeconds     float64
	Velocity        r3.Vec  // units per second
	AngularVelocity r3.Vec  // radians per second
	Noise           float64 // ± position noise per axis, Jitter only
	Seed            uint64  // Jitter only
	StopTick        int     // Stop only; tick after which the pose freezes
}

// DefaultParams returns one second of 90 Hz samples moving at 9 units/s
// along X while spinning at 1 rad/s about Y.
func DefaultParams() Params {
	const ticks = 90
	return Params{
		Ticks:           ticks,
		TickSeconds:     1.0 / ticks,
		Velocity:        r3.Vec{X: 9},
		AngularVelocity: r3.Vec{Y: 1},
		Noise:           0.004,
		Seed:            1,
		StopTick:        ticks / 2,
	}
}

// Linear moves at a constant velocity without rotating. Sample 0 is at the
// origin at t=0.
func Linear(p Params) []Sample {
	out := make([]Sample, p.Ticks+1)
	for i := range out {
		t := float64(i) * p.TickSeconds
		out[i] = Sample{Time: t, Position: r3.Scale(t, p.Velocity), Rotation: mathutil.Identity}
	}
	return out
}

// Spin rotates at a constant angular velocity without translating.
func Spin(p Params) []Sample {
	out := make([]Sample, p.Ticks+1)
	for i := range out {
		t := float64(i) * p.TickSeconds
		out[i] = Sample{Time: t, Rotation: spinAt(p.AngularVelocity, t)}
	}
	return out
}

// Jitter is Linear with uniform position noise of ±Noise on every axis.
// The same Seed always yields the same trace.
func Jitter(p Params) []Sample {
	rng := rand.New(rand.NewPCG(p.Seed, p.Seed^0x9e3779b97f4a7c15))
	noise := func() float64 { return p.Noise * (2*rng.Float64() - 1) }

	out := Linear(p)
	for i := range out {
		out[i].Position = r3.Add(out[i].Position, r3.Vec{X: noise(), Y: noise(), Z: noise()})
	}
	return out
}

// Stop moves and spins until StopTick, then holds the pose.
func Stop(p Params) []Sample {
	out := make([]Sample, p.Ticks+1)
	stopAt := float64(p.StopTick) * p.TickSeconds
	for i := range out {
		t := float64(i) * p.TickSeconds
		m := min(t, stopAt)
		out[i] = Sample{
			Time:     t,
			Position: r3.Scale(m, p.Velocity),
			Rotation: spinAt(p.AngularVelocity, m),
		}
	}
	return out
}

var generators = map[string]func(Params) []Sample{
	"linear": Linear,
	"spin":   Spin,
	"jitter": Jitter,
	"stop":   Stop,
}

// Scenarios lists the names accepted by Generate.
func Scenarios() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Generate builds the named scenario.
func Generate(name string, p Params) ([]Sample, error) {
	gen, ok := generators[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario %q (want one of %v)", name, Scenarios())
	}
	if p.Ticks < 1 || !(p.TickSeconds > 0) {
		return nil, fmt.Errorf("scenario needs at least one tick of positive length, got %d × %g", p.Ticks, p.TickSeconds)
	}
	return gen(p), nil
}
