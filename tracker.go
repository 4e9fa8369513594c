package motion

import (
	"fmt"
	"slices"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"
)

// TrackerOptions configures a Tracker.
type TrackerOptions struct {
	// EnableParallel updates entities concurrently in UpdateAll, one
	// goroutine per entity. Estimators share no state, so results are
	// identical to sequential processing.
	EnableParallel bool
}

// Tracker owns one Estimator per tracked entity.
//
// Tracker methods are safe for concurrent use. The estimators themselves
// are never shared: each is only touched while the Tracker's lock is held,
// and UpdateAll hands every estimator to exactly one goroutine.
type Tracker struct {
	config Config
	opts   TrackerOptions

	mu       sync.RWMutex
	entities map[string]*Estimator
}

// NewTracker creates a tracker whose estimators all use config.
func NewTracker(config *Config, opts TrackerOptions) (*Tracker, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Tracker{
		config:   config.resolve(),
		opts:     opts,
		entities: make(map[string]*Estimator),
	}, nil
}

// Acquire starts or restarts tracking id at pose, seeding its estimator
// with the given velocity and angular velocity (radians per second).
// Call it whenever tracking resumes after a gap, e.g. when an object is
// grabbed.
func (t *Tracker) Acquire(id string, pose Pose, velocity, angularVelocity r3.Vec) Estimate {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entities[id]
	if !ok {
		e = newEstimator(t.config)
		t.entities[id] = e
	}
	e.Reset(pose.Position, pose.Rotation, velocity, angularVelocity)

	return e.Estimate()
}

// Update feeds the latest pose of one entity.
func (t *Tracker) Update(id string, pose Pose, timeSlice float64) (Estimate, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entities[id]
	if !ok {
		return Estimate{}, fmt.Errorf("%w: %q", ErrUnknownEntity, id)
	}

	return e.Update(pose.Position, pose.Rotation, timeSlice), nil
}

// UpdateAll feeds one tick of poses for several entities. Every id must
// have been acquired; otherwise nothing is updated. Entities absent from
// poses are left untouched.
func (t *Tracker) UpdateAll(poses map[string]Pose, timeSlice float64) (map[string]Estimate, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids := make([]string, 0, len(poses))
	for id := range poses {
		if _, ok := t.entities[id]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEntity, id)
		}
		ids = append(ids, id)
	}

	results := make([]Estimate, len(ids))
	update := func(i int) {
		pose := poses[ids[i]]
		results[i] = t.entities[ids[i]].Update(pose.Position, pose.Rotation, timeSlice)
	}

	if !t.opts.EnableParallel || len(ids) <= 1 {
		for i := range ids {
			update(i)
		}
	} else {
		var wg sync.WaitGroup
		for i := range ids {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				update(i)
			}(i)
		}
		wg.Wait()
	}

	out := make(map[string]Estimate, len(ids))
	for i, id := range ids {
		out[id] = results[i]
	}

	return out, nil
}

// Release stops tracking id and returns its final estimate, typically the
// velocity handed to physics when a grabbed object is thrown.
func (t *Tracker) Release(id string) (Estimate, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entities[id]
	if !ok {
		return Estimate{}, false
	}
	delete(t.entities, id)

	return e.Estimate(), true
}

// Get returns the current estimate for id.
func (t *Tracker) Get(id string) (Estimate, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.entities[id]
	if !ok {
		return Estimate{}, false
	}
	return e.Estimate(), true
}

// Len returns the number of tracked entities.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entities)
}

// IDs returns the tracked entity ids in sorted order.
func (t *Tracker) IDs() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := make([]string, 0, len(t.entities))
	for id := range t.entities {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	return ids
}
