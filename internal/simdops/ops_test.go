package simdops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightedSum(t *testing.T) {
	tests := []struct {
		name    string
		weights []float64
		values  []float64
		want    float64
	}{
		{"empty", nil, nil, 0},
		{"single", []float64{2}, []float64{3}, 6},
		{"window", []float64{0.5, 1, 1, 1.5, 2}, []float64{1, 1, 1, 1, 0.5}, 6},
		{"mismatched lengths use common prefix", []float64{1, 1, 1}, []float64{2, 2}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, WeightedSum(tt.weights, tt.values), 1e-12)
		})
	}
}

// TestWeightedSum_LongWindow exercises lengths past the SIMD lane width.
func TestWeightedSum_LongWindow(t *testing.T) {
	const n = 65
	w := make([]float64, n)
	v := make([]float64, n)
	var want float64
	for i := range n {
		w[i] = float64(i) * 0.5
		v[i] = 1.0 / float64(i+1)
		want += w[i] * v[i]
	}

	assert.InDelta(t, want, WeightedSum(w, v), 1e-9)
}

func TestSum(t *testing.T) {
	assert.Zero(t, Sum(nil))
	assert.InDelta(t, 10.0, Sum([]float64{1, 2, 3, 4}), 1e-12)
}

func TestFloat64Ops(t *testing.T) {
	ops := Float64Ops()
	assert.NotNil(t, ops.DotProductUnsafe)
	assert.NotNil(t, ops.Sum)
	assert.InDelta(t, 11.0, ops.DotProductUnsafe([]float64{1, 2}, []float64{3, 4}), 1e-12)
}

// BenchmarkWeightedSum measures the recombination kernel at the default
// window length.
func BenchmarkWeightedSum(b *testing.B) {
	w := []float64{0.5, 1, 1, 1.5, 2}
	v := []float64{0.01, 0.011, 0.012, 0.013, 0.006}

	b.ReportAllocs()
	for b.Loop() {
		_ = WeightedSum(w, v)
	}
}

func TestCPUInfo(t *testing.T) {
	assert.NotPanics(t, func() { _ = CPUInfo() })
}
