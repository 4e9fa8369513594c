// Package ring provides a fixed-length circular window of values.
//
// Unlike a FIFO, a Ring is always full: it holds exactly Len() slots, and
// shifting drops the oldest slots while opening fresh ones at the newest
// end. Logical index 0 is the oldest slot and Len()-1 the newest.
package ring

// Ring is a fixed-length circular window. It is not safe for concurrent
// use; each owner keeps its own Ring.
type Ring[T any] struct {
	data []T
	head int // physical index of the oldest slot
}

// New creates a ring with n zero-valued slots. n is raised to 1 if smaller.
func New[T any](n int) *Ring[T] {
	if n < 1 {
		n = 1
	}
	return &Ring[T]{data: make([]T, n)}
}

// Len returns the number of slots.
func (r *Ring[T]) Len() int {
	return len(r.data)
}

// physical maps a logical index to its position in data.
func (r *Ring[T]) physical(i int) int {
	return (r.head + i) % len(r.data)
}

// At returns the value at logical index i (0 = oldest).
func (r *Ring[T]) At(i int) T {
	return r.data[r.physical(i)]
}

// Ptr returns a pointer to the slot at logical index i. The pointer is
// invalidated by the next Shift.
func (r *Ring[T]) Ptr(i int) *T {
	return &r.data[r.physical(i)]
}

// Set stores v at logical index i.
func (r *Ring[T]) Set(i int, v T) {
	r.data[r.physical(i)] = v
}

// Newest returns a pointer to the newest slot.
func (r *Ring[T]) Newest() *T {
	return r.Ptr(len(r.data) - 1)
}

// Shift drops the k oldest slots and opens k slots holding zero at the
// newest end. k is capped at Len(); k <= 0 is a no-op. It returns the
// number of slots actually shifted.
func (r *Ring[T]) Shift(k int, zero T) int {
	if k <= 0 {
		return 0
	}
	if k > len(r.data) {
		k = len(r.data)
	}

	// The k oldest physical slots become the k newest after the head moves.
	for i := 0; i < k; i++ {
		r.data[r.physical(i)] = zero
	}
	r.head = r.physical(k)

	return k
}

// Fill sets every slot to v and rewinds the head.
func (r *Ring[T]) Fill(v T) {
	for i := range r.data {
		r.data[i] = v
	}
	r.head = 0
}

// Snapshot copies the slots into dst ordered oldest to newest, allocating
// when dst is too short. It returns the filled slice.
func (r *Ring[T]) Snapshot(dst []T) []T {
	if cap(dst) < len(r.data) {
		dst = make([]T, len(r.data))
	}
	dst = dst[:len(r.data)]

	// Copy in at most two contiguous runs.
	n := copy(dst, r.data[r.head:])
	copy(dst[n:], r.data[:r.head])

	return dst
}
