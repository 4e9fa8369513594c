// Package simdops wraps the float64 SIMD kernels used by the estimator's
// recombination pass.
//
// The bucket window is short, but the weighted sums run on every Update for
// every tracked entity, so they go through the same vectorised kernels
// regardless of window length.
package simdops

import (
	"github.com/tphakala/simd/cpu"
	"github.com/tphakala/simd/f64"
)

// Ops provides SIMD-accelerated float64 operations. Function pointers keep
// the call sites independent of the kernel selection.
type Ops struct {
	// DotProductUnsafe computes the dot product without bounds checking.
	// Use only when slices are guaranteed to have equal length.
	DotProductUnsafe func(a, b []float64) float64

	// Sum returns the sum of all elements.
	Sum func(a []float64) float64
}

var ops64 = Ops{
	DotProductUnsafe: f64.DotProductUnsafe,
	Sum:              f64.Sum,
}

// Float64Ops returns the float64 SIMD operations.
func Float64Ops() *Ops {
	return &ops64
}

// WeightedSum returns Σ weights[i]·values[i] over the common prefix of the
// two slices.
func WeightedSum(weights, values []float64) float64 {
	n := min(len(weights), len(values))
	if n == 0 {
		return 0
	}
	return ops64.DotProductUnsafe(weights[:n], values[:n])
}

// Sum returns the sum of values.
func Sum(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return ops64.Sum(values)
}

// CPUInfo describes the instruction set the kernels dispatch to.
func CPUInfo() string {
	return cpu.Info()
}
