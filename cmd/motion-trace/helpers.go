package main

import (
	"encoding/csv"
	"fmt"
	"image/color"
	"io"
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	motion "github.com/tphakala/go-motion-estimator"
	"github.com/tphakala/go-motion-estimator/internal/trace"
)

// estimateHeader is the column layout of the output CSV.
var estimateHeader = []string{
	"t", "speed", "vx", "vy", "vz",
	"angular_speed", "wx", "wy", "wz",
	"accel", "angular_accel",
}

// buildConfig resolves the preset flag and, when any custom window flag is
// set, overlays it on the preset's values as a custom window.
func buildConfig(presetName string, period float64, steps int, weight float64) (motion.Config, error) {
	preset, err := motion.ParsePreset(presetName)
	if err != nil {
		return motion.Config{}, err
	}

	config := motion.PresetConfig(preset)
	if period != 0 || steps != 0 || weight != 0 {
		config.Preset = motion.PresetCustom
		if period != 0 {
			config.Period = period
		}
		if steps != 0 {
			config.Steps = steps
		}
		if weight != 0 {
			config.NewSampleWeight = weight
		}
	}

	if err := config.Validate(); err != nil {
		return motion.Config{}, err
	}
	return config, nil
}

func toTimedPoses(samples []trace.Sample) []motion.TimedPose {
	out := make([]motion.TimedPose, len(samples))
	for i, s := range samples {
		out[i] = motion.TimedPose{
			Time: s.Time,
			Pose: motion.Pose{Position: s.Position, Rotation: s.Rotation},
		}
	}
	return out
}

func speedsOf(estimates []motion.Estimate) []float64 {
	out := make([]float64, len(estimates))
	for i, e := range estimates {
		out[i] = e.Speed
	}
	return out
}

func writeEstimates(w io.Writer, samples []trace.Sample, estimates []motion.Estimate) error {
	if len(samples) != len(estimates) {
		return fmt.Errorf("have %d samples but %d estimates", len(samples), len(estimates))
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(estimateHeader); err != nil {
		return err
	}

	format := func(v float64) string { return strconv.FormatFloat(v, 'g', 10, 64) }
	record := make([]string, len(estimateHeader))
	for i, e := range estimates {
		vals := [...]float64{
			samples[i].Time, e.Speed, e.Velocity.X, e.Velocity.Y, e.Velocity.Z,
			e.AngularSpeed, e.AngularVelocity.X, e.AngularVelocity.Y, e.AngularVelocity.Z,
			e.AccelerationStrength, e.AngularAccelerationStrength,
		}
		for j, v := range vals {
			record[j] = format(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// plotEstimates renders speed and angular speed against time. Angular
// speed is plotted in radians per second so both curves share an axis.
func plotEstimates(path string, samples []trace.Sample, estimates []motion.Estimate) error {
	if len(estimates) == 0 {
		return fmt.Errorf("nothing to plot")
	}

	speedPts := make(plotter.XYs, len(estimates))
	angularPts := make(plotter.XYs, len(estimates))
	for i, e := range estimates {
		speedPts[i] = plotter.XY{X: samples[i].Time, Y: e.Speed}
		angularPts[i] = plotter.XY{X: samples[i].Time, Y: r3.Norm(e.AngularVelocity)}
	}

	p := plot.New()
	p.Title.Text = "Estimated motion"
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Speed (units/s, rad/s)"

	lines := []struct {
		label string
		pts   plotter.XYs
		color color.Color
		dash  []vg.Length
	}{
		{"speed", speedPts, color.RGBA{R: 31, G: 119, B: 180, A: 255}, nil},
		{"angular speed", angularPts, color.RGBA{R: 214, G: 39, B: 40, A: 255}, []vg.Length{vg.Points(4), vg.Points(2)}},
	}
	for _, l := range lines {
		line, err := plotter.NewLine(l.pts)
		if err != nil {
			return err
		}
		line.LineStyle = draw.LineStyle{Color: l.color, Width: vg.Points(plotLineWidth), Dashes: l.dash}
		p.Add(line)
		p.Legend.Add(l.label, line)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = legendOffset
	p.Legend.YOffs = legendOffset
	p.Add(plotter.NewGrid())

	if err := p.Save(plotWidthInches*vg.Inch, plotHeightInches*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}
