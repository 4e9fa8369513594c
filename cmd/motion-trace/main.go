// Command motion-trace runs the motion estimator over a recorded pose trace
// and writes the per-sample estimates as CSV.
//
// Usage:
//
//	motion-trace input.csv                       # estimates to stdout
//	motion-trace -preset smooth input.csv out.csv
//	motion-trace -period 0.2 -steps 5 input.csv  # custom window
//	motion-trace -demo jitter -plot jitter.png   # synthetic trace
//
// Input rows are t,px,py,pz,qw,qx,qy,qz with t in seconds.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	motion "github.com/tphakala/go-motion-estimator"
	"github.com/tphakala/go-motion-estimator/internal/simdops"
	"github.com/tphakala/go-motion-estimator/internal/trace"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	preset := flag.String("preset", defaultPreset, "Window preset: default, responsive, smooth, legacy")
	period := flag.Float64("period", 0, "Custom window length in seconds (overrides preset)")
	steps := flag.Int("steps", 0, "Custom number of window buckets (overrides preset)")
	weight := flag.Float64("weight", 0, "Custom weight of the newest bucket (overrides preset)")
	plotPath := flag.String("plot", "", "Write speed and angular speed curves to this PNG file")
	demo := flag.String("demo", "", "Generate a synthetic trace instead of reading input: "+strings.Join(trace.Scenarios(), ", "))
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	logger := newLogger(*verbose)

	args := flag.Args()
	if (*demo == "" && len(args) < minRequiredArgs) || len(args) > maxArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.csv [output.csv]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s hand.csv                   # Estimates to stdout\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -preset smooth hand.csv out.csv\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -demo stop -plot stop.png  # Synthetic trace\n", os.Args[0])
		return fmt.Errorf("insufficient arguments")
	}

	config, err := buildConfig(*preset, *period, *steps, *weight)
	if err != nil {
		return err
	}
	logger.Debug("estimator config",
		"preset", config.Preset,
		"period", config.Period,
		"steps", config.Steps,
		"weight", config.NewSampleWeight,
		"sample_period", config.SamplePeriod())

	// With -demo the single positional argument, if any, is the output.
	inputPath, outputPath := "", stdoutPath
	switch {
	case *demo != "" && len(args) > 0:
		outputPath = args[0]
	case *demo == "":
		inputPath = args[0]
		if len(args) == maxArgs {
			outputPath = args[1]
		}
	}

	samples, err := loadSamples(inputPath, *demo)
	if err != nil {
		return err
	}
	logger.Info("loaded trace", "source", sourceName(inputPath, *demo), "samples", len(samples))

	start := time.Now()
	estimates, err := motion.EstimateAll(toTimedPoses(samples), &config)
	if err != nil {
		return err
	}
	logger.Debug("estimated", "elapsed", time.Since(start), "simd", simdops.CPUInfo())

	if err := writeEstimatesFile(outputPath, samples, estimates); err != nil {
		return err
	}

	if *plotPath != "" {
		if err := plotEstimates(*plotPath, samples, estimates); err != nil {
			return err
		}
		logger.Info("wrote plot", "path", *plotPath)
	}

	if len(estimates) > 0 {
		speeds := speedsOf(estimates)
		last := estimates[len(estimates)-1]
		logger.Info("summary",
			"mean_speed", stat.Mean(speeds, nil),
			"max_speed", floats.Max(speeds),
			"final_speed", last.Speed,
			"final_direction", fmt.Sprintf("(%.3f, %.3f, %.3f)", last.Direction.X, last.Direction.Y, last.Direction.Z),
			"final_angular_speed", last.AngularSpeed)
	}

	return nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	// Estimates may go to stdout, so diagnostics go to stderr.
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func sourceName(inputPath, demo string) string {
	if demo != "" {
		return "demo:" + demo
	}
	return inputPath
}

func loadSamples(inputPath, demo string) ([]trace.Sample, error) {
	if demo != "" {
		return trace.Generate(demo, trace.DefaultParams())
	}

	f, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	samples, err := trace.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", inputPath, err)
	}
	return samples, nil
}

func writeEstimatesFile(path string, samples []trace.Sample, estimates []motion.Estimate) error {
	if path == stdoutPath {
		return writeEstimates(os.Stdout, samples, estimates)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := writeEstimates(f, samples, estimates); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
