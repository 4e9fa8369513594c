package motion

// Default window parameters
const (
	defaultPeriod          = 0.125 // Total averaging window in seconds
	defaultSteps           = 4     // Buckets per window
	defaultNewSampleWeight = 2.0   // Predictive weight of the newest bucket
)

// Preset window parameters
const (
	// Responsive: half the default window, same predictive weight.
	responsivePeriod          = 0.0625
	responsiveSteps           = 4
	responsiveNewSampleWeight = 2.0

	// Smooth: long window with finer buckets and milder prediction.
	smoothPeriod          = 0.25
	smoothSteps           = 8
	smoothNewSampleWeight = 1.5

	// Legacy: the earlier tuning with five buckets over 100 ms.
	legacyPeriod          = 0.1
	legacySteps           = 5
	legacyNewSampleWeight = 1.5
)

// Configuration limits
const (
	minSteps           = 1    // One bucket plus the cross-fade slot
	maxSteps           = 64   // Upper bound on ring length
	maxPeriod          = 10.0 // Seconds
	minNewSampleWeight = 1.0  // Below 1 the newest bucket would be discounted
	maxNewSampleWeight = 16.0
)

// Ring layout
const (
	extraSlots = 1 // Cross-fade slot on top of Steps
)
