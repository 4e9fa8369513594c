package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	motion "github.com/tphakala/go-motion-estimator"
	"github.com/tphakala/go-motion-estimator/internal/trace"
)

func TestBuildConfig_Preset(t *testing.T) {
	config, err := buildConfig("smooth", 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, motion.PresetConfig(motion.PresetSmooth), config)
}

// TestBuildConfig_CustomOverlay verifies custom flags override only the
// fields they set.
func TestBuildConfig_CustomOverlay(t *testing.T) {
	config, err := buildConfig("legacy", 0, 10, 0)
	require.NoError(t, err)

	legacy := motion.PresetConfig(motion.PresetLegacy)
	assert.Equal(t, motion.PresetCustom, config.Preset)
	assert.Equal(t, 10, config.Steps)
	assert.InDelta(t, legacy.Period, config.Period, 0)
	assert.InDelta(t, legacy.NewSampleWeight, config.NewSampleWeight, 0)
}

func TestBuildConfig_Invalid(t *testing.T) {
	_, err := buildConfig("warp", 0, 0, 0)
	require.ErrorIs(t, err, motion.ErrInvalidConfig)

	_, err = buildConfig("default", -1, 0, 0)
	require.ErrorIs(t, err, motion.ErrInvalidConfig)
}

func TestLoadSamples_FileNotFound(t *testing.T) {
	_, err := loadSamples("/nonexistent/trace.csv", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input file")
}

func TestLoadSamples_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("not,a,trace\n"), 0o644))

	_, err := loadSamples(path, "")
	require.ErrorIs(t, err, trace.ErrMalformed)
}

func TestLoadSamples_Demo(t *testing.T) {
	samples, err := loadSamples("", "linear")
	require.NoError(t, err)
	assert.Len(t, samples, trace.DefaultParams().Ticks+1)

	_, err = loadSamples("", "orbit")
	require.Error(t, err)
}

// TestWriteEstimates verifies the output layout for a demo trace.
func TestWriteEstimates(t *testing.T) {
	samples, err := loadSamples("", "linear")
	require.NoError(t, err)
	config := motion.DefaultConfig()
	estimates, err := motion.EstimateAll(toTimedPoses(samples), &config)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeEstimates(&buf, samples, estimates))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(samples)+1)
	assert.Equal(t, estimateHeader, records[0])

	last := records[len(records)-1]
	speed, err := strconv.ParseFloat(last[1], 64)
	require.NoError(t, err)
	assert.InDelta(t, 9.0, speed, 1e-6)
	vx, err := strconv.ParseFloat(last[2], 64)
	require.NoError(t, err)
	assert.InDelta(t, 9.0, vx, 1e-6)
}

func TestWriteEstimates_LengthMismatch(t *testing.T) {
	err := writeEstimates(&bytes.Buffer{}, make([]trace.Sample, 2), nil)
	require.Error(t, err)
}

func TestPlotEstimates(t *testing.T) {
	samples, err := loadSamples("", "stop")
	require.NoError(t, err)
	estimates, err := motion.EstimateAll(toTimedPoses(samples), nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "stop.png")
	require.NoError(t, plotEstimates(path, samples, estimates))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	require.Error(t, plotEstimates(path, nil, nil))
}
