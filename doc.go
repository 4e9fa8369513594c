// Package motion estimates smoothed, predictive linear and angular velocity
// from discrete pose samples.
//
// Sources such as animation, hand tracking or scripted motion only provide
// position and rotation. Differencing consecutive frames amplifies noise,
// and low-pass filtering adds lag. This package accumulates motion into a
// short ring of time buckets instead and recombines them with the newest
// data over-weighted, giving velocity estimates that are both stable and
// responsive enough to hand to a physics system, e.g. when a held object is
// thrown.
//
// # Quick Start
//
// One Estimator per tracked entity:
//
//	est := motion.NewDefault()
//	est.Reset(pos, rot, r3.Vec{}, r3.Vec{}) // seed at rest
//
//	for tick := range ticks {
//	    e := est.Update(tick.Position, tick.Rotation, tick.DeltaSeconds)
//	    fmt.Println(e.Speed, e.Direction, e.AngularVelocity)
//	}
//
// Call Reset again whenever tracking resumes after a gap, passing the best
// known velocity so the window starts full instead of empty.
//
// Vectors are gonum spatial/r3 Vec values; rotations are unit quaternions as
// gonum num/quat Number values.
//
// # Window Presets
//
//   - [PresetDefault]: 125 ms window in 4 buckets, newest bucket weighted ×2.
//   - [PresetResponsive]: 62.5 ms window. Lower lag, more noise.
//   - [PresetSmooth]: 250 ms window in 8 buckets with milder prediction.
//   - [PresetLegacy]: the earlier 100 ms / 5 bucket tuning.
//
// Custom windows can be specified with [PresetCustom] or [NewCustom].
//
// # Algorithm
//
// Each Update computes the displacement and rotation since the previous
// pose and spreads it over the buckets covered by the time slice, in
// proportion to time, so a single step may straddle a bucket boundary.
// Slices longer than the window are scaled down to one window of
// constant-rate motion.
//
// The window is then recombined. The oldest bucket fades out as the newest
// fills; the newest bucket is counted NewSampleWeight times and the
// second-newest picks up the part of that extra weight the newest cannot
// carry yet. Vector contributions are further scaled by how well each
// bucket's direction agrees with the latest motion, which suppresses
// sideways jitter while letting reversals show up immediately.
//
// Acceleration is a finite difference of speed snapshots across the
// window, cross-faded by the newest bucket's fill level so it does not step
// when the ring shifts.
//
// # Edge Cases
//
// The estimator never returns errors and never produces NaN:
//
//   - Update with a zero, negative or non-finite time slice is a no-op.
//   - Update before Reset seeds the estimator at rest at the given pose.
//   - A non-finite position or rotation records no motion for that call.
//   - Directions and axes of zero-length motion are the zero vector.
//
// # Thread Safety
//
// An [Estimator] must not be used from multiple goroutines at once. A
// [Tracker] manages one estimator per entity behind a lock and can update
// entities in parallel.
package motion
