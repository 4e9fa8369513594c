package motion

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tphakala/go-motion-estimator/internal/mathutil"
)

// Config holds estimator configuration.
//
// The zero value selects PresetDefault. Period, Steps and NewSampleWeight
// are only read when Preset is PresetCustom; otherwise New overwrites them
// with the preset's values.
type Config struct {
	// Preset is a convenience setting for common window tunings.
	Preset Preset

	// Period is the total averaging window in seconds.
	Period float64

	// Steps is the number of buckets the window is divided into.
	// The ring holds Steps+1 buckets so the newest can cross-fade in.
	Steps int

	// NewSampleWeight multiplies the newest bucket during recombination.
	// 1 disables prediction; the default of 2 double-counts the newest
	// bucket to reduce perceived lag.
	NewSampleWeight float64
}

// Preset enumerates predefined window tunings.
type Preset int

const (
	// PresetDefault averages over 125 ms in four buckets with the newest
	// bucket weighted ×2. Suited to hand tracking at 72-120 Hz.
	PresetDefault Preset = iota

	// PresetResponsive halves the window. Lower lag, more noise.
	PresetResponsive

	// PresetSmooth averages over 250 ms in eight buckets with milder
	// prediction. Suited to noisy sources such as optical trackers.
	PresetSmooth

	// PresetLegacy reproduces the earlier 100 ms / five bucket tuning.
	PresetLegacy

	// PresetCustom indicates manual configuration of the window.
	PresetCustom
)

var presetNames = map[Preset]string{
	PresetDefault:    "default",
	PresetResponsive: "responsive",
	PresetSmooth:     "smooth",
	PresetLegacy:     "legacy",
	PresetCustom:     "custom",
}

// String returns the preset's lowercase name.
func (p Preset) String() string {
	if name, ok := presetNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Preset(%d)", int(p))
}

// ParsePreset returns the preset with the given name (case-insensitive).
func ParsePreset(name string) (Preset, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for p, n := range presetNames {
		if n == name {
			return p, nil
		}
	}
	return PresetDefault, fmt.Errorf("%w: unknown preset %q", ErrInvalidConfig, name)
}

// Common errors returned by the estimator package.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid estimator configuration")

	// ErrUnknownEntity indicates a Tracker call named an entity that was
	// never acquired or has been released.
	ErrUnknownEntity = errors.New("unknown tracked entity")
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, ok := presetNames[c.Preset]; !ok {
		return fmt.Errorf("%w: unknown preset %d", ErrInvalidConfig, int(c.Preset))
	}

	if c.Preset != PresetCustom {
		return nil
	}

	if !mathutil.IsFinite(c.Period) || c.Period <= 0 || c.Period > maxPeriod {
		return fmt.Errorf("%w: period must be in (0, %v] seconds", ErrInvalidConfig, maxPeriod)
	}

	if c.Steps < minSteps || c.Steps > maxSteps {
		return fmt.Errorf("%w: steps must be %d-%d", ErrInvalidConfig, minSteps, maxSteps)
	}

	if !mathutil.IsFinite(c.NewSampleWeight) ||
		c.NewSampleWeight < minNewSampleWeight || c.NewSampleWeight > maxNewSampleWeight {
		return fmt.Errorf("%w: new sample weight must be in [%v, %v]",
			ErrInvalidConfig, minNewSampleWeight, maxNewSampleWeight)
	}

	return nil
}

// PresetConfig returns the configuration for a preset. PresetCustom and
// unknown presets return the default tuning with Preset set as given.
func PresetConfig(preset Preset) Config {
	switch preset {
	case PresetResponsive:
		return Config{
			Preset:          PresetResponsive,
			Period:          responsivePeriod,
			Steps:           responsiveSteps,
			NewSampleWeight: responsiveNewSampleWeight,
		}

	case PresetSmooth:
		return Config{
			Preset:          PresetSmooth,
			Period:          smoothPeriod,
			Steps:           smoothSteps,
			NewSampleWeight: smoothNewSampleWeight,
		}

	case PresetLegacy:
		return Config{
			Preset:          PresetLegacy,
			Period:          legacyPeriod,
			Steps:           legacySteps,
			NewSampleWeight: legacyNewSampleWeight,
		}

	default:
		return Config{
			Preset:          preset,
			Period:          defaultPeriod,
			Steps:           defaultSteps,
			NewSampleWeight: defaultNewSampleWeight,
		}
	}
}

// DefaultConfig returns the PresetDefault configuration.
func DefaultConfig() Config {
	return PresetConfig(PresetDefault)
}

// resolve returns a copy of c with preset values applied.
func (c *Config) resolve() Config {
	if c.Preset == PresetCustom {
		return *c
	}
	return PresetConfig(c.Preset)
}

// SamplePeriod returns the time span of one bucket.
func (c *Config) SamplePeriod() float64 {
	r := c.resolve()
	return r.Period / float64(r.Steps)
}

// PredictedPeriod returns the divisor that converts the weighted window
// sum into a rate. It exceeds Period because the newest bucket is counted
// NewSampleWeight times.
func (c *Config) PredictedPeriod() float64 {
	r := c.resolve()
	return r.Period + r.Period/float64(r.Steps)*(r.NewSampleWeight-1)
}

// New creates an estimator with the specified configuration.
//
// The estimator starts unseeded: call Reset before the first Update, or
// let the first Update seed it with zero velocity at the observed pose.
func New(config *Config) (*Estimator, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return newEstimator(config.resolve()), nil
}

// Info describes an estimator's configuration and live window state.
type Info struct {
	// Preset is the preset the estimator was built from.
	Preset Preset

	// Period is the averaging window in seconds.
	Period float64

	// Steps is the number of buckets per window.
	Steps int

	// Slots is the ring length (Steps + 1).
	Slots int

	// SamplePeriod is the time span of one bucket.
	SamplePeriod float64

	// PredictedPeriod is the rate divisor including the predictive weight.
	PredictedPeriod float64

	// NewSampleWeight is the newest bucket's recombination weight.
	NewSampleWeight float64

	// EdgeBlend is the fill level of the newest bucket, in [0, 1).
	EdgeBlend float64

	// WindowDistance is the unweighted distance recorded across all slots.
	WindowDistance float64

	// WindowAngle is the unweighted rotation in degrees recorded across all slots.
	WindowAngle float64

	// Seeded reports whether Reset (explicit or implicit) has run.
	Seeded bool

	// SIMDInfo names the CPU features used by the recombination kernels.
	SIMDInfo string
}
