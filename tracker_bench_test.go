package motion

import (
	"fmt"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

// BenchmarkUpdate benchmarks a single estimator tick.
func BenchmarkUpdate(b *testing.B) {
	e := NewDefault()
	e.Reset(r3.Vec{}, Identity(), r3.Vec{}, r3.Vec{})

	pos := r3.Vec{}
	rot := Identity()
	omega := r3.Vec{Y: 1}

	b.ReportAllocs()
	for b.Loop() {
		pos.X += 0.01
		rot = Integrate(rot, omega, tick90Hz)
		e.Update(pos, rot, tick90Hz)
	}
}

// BenchmarkUpdateAllSequential benchmarks batch updates on one goroutine.
func BenchmarkUpdateAllSequential(b *testing.B) {
	benchmarkUpdateAll(b, false)
}

// BenchmarkUpdateAllParallel benchmarks batch updates across goroutines.
func BenchmarkUpdateAllParallel(b *testing.B) {
	benchmarkUpdateAll(b, true)
}

func benchmarkUpdateAll(b *testing.B, parallel bool) {
	b.Helper()

	const entities = 64

	tr, err := NewTracker(&Config{}, TrackerOptions{EnableParallel: parallel})
	if err != nil {
		b.Fatalf("Failed to create tracker: %v", err)
	}
	for i := range entities {
		tr.Acquire(fmt.Sprintf("e%02d", i), Pose{Rotation: Identity()}, r3.Vec{}, r3.Vec{})
	}

	frames := make([]map[string]Pose, 90)
	for i := range frames {
		frames[i] = tickPoses(entities, i+1)
	}

	b.ReportAllocs()

	i := 0
	for b.Loop() {
		if _, err := tr.UpdateAll(frames[i%len(frames)], tick90Hz); err != nil {
			b.Fatalf("UpdateAll failed: %v", err)
		}
		i++
	}
}
