package motion

import (
	"math"
	"time"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tphakala/go-motion-estimator/internal/mathutil"
	"github.com/tphakala/go-motion-estimator/internal/ring"
	"github.com/tphakala/go-motion-estimator/internal/simdops"
)

// OffsetSample is one bucket of motion accumulated within a sample period.
type OffsetSample struct {
	// Distance is the linear path length recorded in the bucket. Never negative.
	Distance float64

	// Angle is the rotation in degrees recorded in the bucket. Never negative.
	Angle float64

	// Offset is the accumulated displacement vector.
	Offset r3.Vec

	// AxisOffset is the accumulated rotation axis scaled by angle.
	AxisOffset r3.Vec
}

// SpeedSample is a snapshot of output speeds taken when a bucket closes.
type SpeedSample struct {
	Speed        float64
	AngularSpeed float64
}

// Estimate holds the estimator outputs after a Reset or Update.
type Estimate struct {
	// Speed is the linear speed in units per second.
	Speed float64

	// Direction is the unit direction of motion, or zero when at rest.
	Direction r3.Vec

	// Velocity is Direction × Speed.
	Velocity r3.Vec

	// AccelerationStrength is the rate of change of Speed in units/s².
	AccelerationStrength float64

	// Acceleration is Direction × AccelerationStrength.
	Acceleration r3.Vec

	// AngularSpeed is the rotation rate in degrees per second.
	AngularSpeed float64

	// AngularAxis is the unit rotation axis, or zero when not rotating.
	AngularAxis r3.Vec

	// AngularVelocity is AngularAxis × AngularSpeed in radians per second.
	AngularVelocity r3.Vec

	// AngularAccelerationStrength is the rate of change of AngularSpeed in degrees/s².
	AngularAccelerationStrength float64

	// AngularAcceleration is AngularAxis × AngularAccelerationStrength in radians/s².
	AngularAcceleration r3.Vec
}

// Estimator turns a stream of poses into smoothed, slightly predictive
// velocity and angular velocity estimates.
//
// Motion is accumulated into a ring of Steps+1 time buckets. Each Update
// spreads its displacement across the buckets it spans in proportion to
// time, then recombines the window with the newest bucket over-weighted.
//
// An Estimator is not safe for concurrent use. Give each tracked entity
// its own instance.
type Estimator struct {
	config          Config
	samplePeriod    float64
	additiveWeight  float64
	predictedPeriod float64

	samples      *ring.Ring[OffsetSample]
	speedHistory *ring.Ring[SpeedSample]

	// sampleTime is the time accumulated in the newest bucket, in [0, samplePeriod).
	sampleTime float64

	lastPosition r3.Vec
	lastRotation quat.Number
	seeded       bool

	estimate Estimate

	// Scratch space reused by recombine, one entry per slot.
	window    []OffsetSample
	speeds    []SpeedSample
	weights   []float64
	distances []float64
	angles    []float64
}

// newEstimator builds an estimator from a resolved, valid configuration.
func newEstimator(config Config) *Estimator {
	slots := config.Steps + extraSlots
	samplePeriod := config.Period / float64(config.Steps)
	additiveWeight := config.NewSampleWeight - 1

	return &Estimator{
		config:          config,
		samplePeriod:    samplePeriod,
		additiveWeight:  additiveWeight,
		predictedPeriod: config.Period + samplePeriod*additiveWeight,
		samples:         ring.New[OffsetSample](slots),
		speedHistory:    ring.New[SpeedSample](slots),
		lastRotation:    mathutil.Identity,
		window:          make([]OffsetSample, slots),
		speeds:          make([]SpeedSample, slots),
		weights:         make([]float64, slots),
		distances:       make([]float64, slots),
		angles:          make([]float64, slots),
	}
}

// Reset seeds the estimator at a pose with an assumed constant velocity.
//
// Every bucket except the newest is filled as if the entity had been moving
// at velocity and angularVelocity (radians per second) for a full window,
// so the next Updates continue smoothly instead of ramping up from zero.
// Pass zero vectors to start at rest.
func (e *Estimator) Reset(position r3.Vec, rotation quat.Number, velocity, angularVelocity r3.Vec) {
	direction := mathutil.SafeUnit(velocity)
	speed := 0.0
	if direction != (r3.Vec{}) {
		speed = r3.Norm(velocity)
	}

	axis := mathutil.SafeUnit(angularVelocity)
	angularSpeed := 0.0
	if axis != (r3.Vec{}) {
		angularSpeed = mathutil.Degrees(r3.Norm(angularVelocity))
	}

	e.estimate = Estimate{
		Speed:           speed,
		Direction:       direction,
		Velocity:        r3.Scale(speed, direction),
		AngularSpeed:    angularSpeed,
		AngularAxis:     axis,
		AngularVelocity: r3.Scale(mathutil.Radians(angularSpeed), axis),
	}

	distance := speed * e.samplePeriod
	angle := angularSpeed * e.samplePeriod
	e.samples.Fill(OffsetSample{
		Distance:   distance,
		Angle:      angle,
		Offset:     r3.Scale(distance, direction),
		AxisOffset: r3.Scale(angle, axis),
	})
	*e.samples.Newest() = OffsetSample{}

	e.speedHistory.Fill(SpeedSample{Speed: speed, AngularSpeed: angularSpeed})
	e.sampleTime = 0

	if mathutil.IsFiniteVec(position) {
		e.lastPosition = position
	} else {
		e.lastPosition = r3.Vec{}
	}
	e.lastRotation = mathutil.NormalizeQuat(rotation)
	e.seeded = true
}

// Update feeds the pose observed timeSlice seconds after the previous one
// and returns the new estimate.
//
// A non-positive or non-finite timeSlice leaves the estimate and internal
// state untouched. An Update on an unseeded estimator first seeds it at the
// given pose with zero velocity.
func (e *Estimator) Update(position r3.Vec, rotation quat.Number, timeSlice float64) Estimate {
	if !e.seeded {
		e.Reset(position, rotation, r3.Vec{}, r3.Vec{})
	}

	if !(timeSlice > 0) || math.IsInf(timeSlice, 1) {
		return e.estimate
	}

	// Per-call delta.
	var offset r3.Vec
	if mathutil.IsFiniteVec(position) {
		offset = r3.Sub(position, e.lastPosition)
		e.lastPosition = position
	}
	activeDirection := mathutil.SafeUnit(offset)
	currentDistance := 0.0
	if activeDirection != (r3.Vec{}) {
		currentDistance = r3.Norm(offset)
	}

	var currentAngle float64
	var activeAxis r3.Vec
	if mathutil.IsFiniteQuat(rotation) {
		currentAngle, activeAxis = mathutil.ToAngleAxis(mathutil.DeltaRotation(rotation, e.lastRotation))
		e.lastRotation = mathutil.NormalizeQuat(rotation)
	}

	// Treat gaps longer than the window as one window of constant-rate motion.
	if timeSlice > e.config.Period {
		scale := e.config.Period / timeSlice
		currentDistance *= scale
		currentAngle *= scale
		timeSlice = e.config.Period
	}

	e.distribute(currentDistance, currentAngle, activeDirection, activeAxis, timeSlice)

	// With no motion this call, gate against the last known heading so a
	// stationary tick decays speed without discarding direction.
	if activeDirection == (r3.Vec{}) {
		activeDirection = e.estimate.Direction
	}
	if activeAxis == (r3.Vec{}) {
		activeAxis = e.estimate.AngularAxis
	}

	e.recombine(activeDirection, activeAxis)

	return e.estimate
}

// UpdateElapsed is Update with the time slice given as a duration.
func (e *Estimator) UpdateElapsed(position r3.Vec, rotation quat.Number, elapsed time.Duration) Estimate {
	return e.Update(position, rotation, elapsed.Seconds())
}

// distribute shifts the ring by the number of buckets that fill during
// timeSlice and writes a time-proportional share of the motion into every
// bucket the slice touches.
func (e *Estimator) distribute(distance, angle float64, direction, axis r3.Vec, timeSlice float64) {
	slots := e.samples.Len()

	elapsed := e.sampleTime + timeSlice
	shift := int(math.Floor(elapsed / e.samplePeriod))
	remainder := elapsed - float64(shift)*e.samplePeriod
	if remainder < 0 {
		remainder = 0
	}
	if remainder >= e.samplePeriod {
		shift++
		remainder = 0
	}

	// Closed buckets keep the speed they ended with; opened ones start from
	// the current output.
	e.samples.Shift(shift, OffsetSample{})
	e.speedHistory.Shift(shift, SpeedSample{
		Speed:        e.estimate.Speed,
		AngularSpeed: e.estimate.AngularSpeed,
	})

	offset := r3.Scale(distance, direction)
	axisOffset := r3.Scale(angle, axis)

	// Walk from the bucket that was open before the shift to the newest.
	// Buckets that fell off the oldest end are consumed but not written.
	first := slots - 1 - shift
	for b := 0; b <= shift; b++ {
		var chunk float64
		switch {
		case shift == 0:
			chunk = timeSlice
		case b == 0:
			chunk = e.samplePeriod - e.sampleTime
		case b == shift:
			chunk = remainder
		default:
			chunk = e.samplePeriod
		}

		idx := first + b
		if idx < 0 || chunk <= 0 {
			continue
		}

		frac := chunk / timeSlice
		s := e.samples.Ptr(idx)
		s.Distance += distance * frac
		s.Angle += angle * frac
		s.Offset = r3.Add(s.Offset, r3.Scale(frac, offset))
		s.AxisOffset = r3.Add(s.AxisOffset, r3.Scale(frac, axisOffset))
	}

	e.sampleTime = remainder
}

// computeWeights fills e.weights for the current edge blend.
//
// Each slot covers one full bucket except the oldest, which fades out as
// the newest fills. On top of that the newest slot gains additiveWeight and
// the second-newest gains the share of it the newest cannot yet carry.
func (e *Estimator) computeWeights(invEdgeBlend float64) {
	n := len(e.weights)
	for i := range e.weights {
		e.weights[i] = 1
	}
	e.weights[0] = invEdgeBlend
	e.weights[n-2] += invEdgeBlend * e.additiveWeight
	e.weights[n-1] += e.additiveWeight
}

// recombine derives the outputs from the weighted window. Vector fields
// are additionally gated by each bucket's alignment with the reference
// direction and axis.
func (e *Estimator) recombine(direction, axis r3.Vec) {
	edgeBlend := e.sampleTime / e.samplePeriod
	e.computeWeights(1 - edgeBlend)

	e.window = e.samples.Snapshot(e.window)
	for i, s := range e.window {
		e.distances[i] = s.Distance
		e.angles[i] = s.Angle
	}

	distance := simdops.WeightedSum(e.weights, e.distances)
	angle := simdops.WeightedSum(e.weights, e.angles)

	var offset, axisOffset r3.Vec
	for i, s := range e.window {
		w := e.weights[i]
		if d := r3.Dot(mathutil.SafeUnit(s.Offset), direction); d != 0 {
			offset = r3.Add(offset, r3.Scale(w*d, s.Offset))
		}
		if d := r3.Dot(mathutil.SafeUnit(s.AxisOffset), axis); d != 0 {
			axisOffset = r3.Add(axisOffset, r3.Scale(w*d, s.AxisOffset))
		}
	}

	est := &e.estimate
	est.Speed = distance / e.predictedPeriod
	est.Direction = mathutil.SafeUnit(offset)
	est.Velocity = r3.Scale(est.Speed, est.Direction)

	est.AngularSpeed = angle / e.predictedPeriod
	est.AngularAxis = mathutil.SafeUnit(axisOffset)
	est.AngularVelocity = r3.Scale(mathutil.Radians(est.AngularSpeed), est.AngularAxis)

	*e.speedHistory.Newest() = SpeedSample{Speed: est.Speed, AngularSpeed: est.AngularSpeed}
	e.speeds = e.speedHistory.Snapshot(e.speeds)

	accel, angularAccel := e.blendedDifference(edgeBlend)
	est.AccelerationStrength = accel
	est.Acceleration = r3.Scale(accel, est.Direction)
	est.AngularAccelerationStrength = angularAccel
	est.AngularAcceleration = r3.Scale(mathutil.Radians(angularAccel), est.AngularAxis)
}

// blendedDifference returns the speed and angular speed change rates. Two
// finite differences across the history, one anchored a bucket later than
// the other, are cross-faded by edgeBlend so the result is continuous when
// the ring shifts.
func (e *Estimator) blendedDifference(edgeBlend float64) (accel, angularAccel float64) {
	h := e.speeds
	n := len(h)

	// A single bucket has only one interval to difference.
	if n == 2 {
		return (h[1].Speed - h[0].Speed) / e.config.Period,
			(h[1].AngularSpeed - h[0].AngularSpeed) / e.config.Period
	}

	early := h[n-2].Speed - h[0].Speed
	late := h[n-1].Speed - h[1].Speed
	accel = mathutil.Lerp(early, late, edgeBlend) / e.config.Period

	early = h[n-2].AngularSpeed - h[0].AngularSpeed
	late = h[n-1].AngularSpeed - h[1].AngularSpeed
	angularAccel = mathutil.Lerp(early, late, edgeBlend) / e.config.Period

	return accel, angularAccel
}

// Estimate returns the current outputs.
func (e *Estimator) Estimate() Estimate {
	return e.estimate
}

// Speed returns the current linear speed.
func (e *Estimator) Speed() float64 {
	return e.estimate.Speed
}

// Velocity returns the current linear velocity.
func (e *Estimator) Velocity() r3.Vec {
	return e.estimate.Velocity
}

// AngularVelocity returns the current angular velocity in radians per second.
func (e *Estimator) AngularVelocity() r3.Vec {
	return e.estimate.AngularVelocity
}

// Config returns the resolved configuration.
func (e *Estimator) Config() Config {
	return e.config
}

// Window returns a copy of the bucket ring ordered oldest to newest.
func (e *Estimator) Window() []OffsetSample {
	return e.samples.Snapshot(nil)
}

// Info returns the configuration and live window diagnostics.
func (e *Estimator) Info() Info {
	e.window = e.samples.Snapshot(e.window)
	for i, s := range e.window {
		e.distances[i] = s.Distance
		e.angles[i] = s.Angle
	}

	return Info{
		Preset:          e.config.Preset,
		Period:          e.config.Period,
		Steps:           e.config.Steps,
		Slots:           e.samples.Len(),
		SamplePeriod:    e.samplePeriod,
		PredictedPeriod: e.predictedPeriod,
		NewSampleWeight: e.config.NewSampleWeight,
		EdgeBlend:       e.sampleTime / e.samplePeriod,
		WindowDistance:  simdops.Sum(e.distances),
		WindowAngle:     simdops.Sum(e.angles),
		Seeded:          e.seeded,
		SIMDInfo:        simdops.CPUInfo(),
	}
}
