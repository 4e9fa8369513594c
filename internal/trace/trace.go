// Package trace reads, writes and synthesises timestamped pose traces.
//
// A trace is a CSV file with one pose per row:
//
//	t,px,py,pz,qw,qx,qy,qz
//	0,0,0,0,1,0,0,0
//	0.011111,0.1,0,0,1,0,0,0
//
// Times are in seconds and must be strictly increasing. Rotations are
// quaternions in w,x,y,z order and are normalised on read.
package trace

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tphakala/go-motion-estimator/internal/mathutil"
)

// ErrMalformed indicates a trace that cannot be parsed.
var ErrMalformed = errors.New("malformed trace")

// Header is the column layout of a trace file.
var Header = []string{"t", "px", "py", "pz", "qw", "qx", "qy", "qz"}

// Sample is one timestamped pose.
type Sample struct {
	Time     float64
	Position r3.Vec
	Rotation quat.Number
}

// ReadCSV parses a trace. The header row is required.
func ReadCSV(r io.Reader) ([]Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty input", ErrMalformed)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	for i, name := range Header {
		if strings.ToLower(strings.TrimSpace(header[i])) != name {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", ErrMalformed, i+1, header[i], name)
		}
	}

	var samples []Sample
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		line, _ := cr.FieldPos(0)

		var v [8]float64
		for i, field := range record {
			v[i], err = strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %s: %w", ErrMalformed, line, Header[i], err)
			}
			if !mathutil.IsFinite(v[i]) {
				return nil, fmt.Errorf("%w: line %d column %s: non-finite value", ErrMalformed, line, Header[i])
			}
		}

		s := Sample{
			Time:     v[0],
			Position: r3.Vec{X: v[1], Y: v[2], Z: v[3]},
			Rotation: mathutil.NormalizeQuat(quat.Number{Real: v[4], Imag: v[5], Jmag: v[6], Kmag: v[7]}),
		}
		if n := len(samples); n > 0 && s.Time <= samples[n-1].Time {
			return nil, fmt.Errorf("%w: line %d: time %g does not increase", ErrMalformed, line, s.Time)
		}
		samples = append(samples, s)
	}

	return samples, nil
}

// WriteCSV writes samples in the format ReadCSV accepts.
func WriteCSV(w io.Writer, samples []Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}

	record := make([]string, len(Header))
	for _, s := range samples {
		vals := [...]float64{
			s.Time,
			s.Position.X, s.Position.Y, s.Position.Z,
			s.Rotation.Real, s.Rotation.Imag, s.Rotation.Jmag, s.Rotation.Kmag,
		}
		for i, v := range vals {
			record[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Durations returns the time slice preceding each sample. The first entry
// is zero.
func Durations(samples []Sample) []float64 {
	out := make([]float64, len(samples))
	for i := 1; i < len(samples); i++ {
		out[i] = samples[i].Time - samples[i-1].Time
	}
	return out
}

// spinAt returns the orientation after rotating at omega (radians per
// second) for t seconds from identity.
func spinAt(omega r3.Vec, t float64) quat.Number {
	return mathutil.RotationVector(r3.Scale(t, omega))
}
