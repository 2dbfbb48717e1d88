package factorial

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"
)

// DefaultN is the argument the executable computes the factorial of.
const DefaultN = 10

// Mode names one of the two ways of computing a factorial.
type Mode string

const (
	ModeAsync  Mode = "async"
	ModeThread Mode = "thread"
)

// Measurement is the outcome of one timed computation.
type Measurement struct {
	Mode    Mode
	N       uint64
	Value   uint64
	Elapsed time.Duration
}

// Driver runs [BlockOnAsync] and then [Threaded], timing each, and reports
// both to Out.
type Driver struct {
	N uint64

	// Now is the clock. Defaults to time.Now.
	Now func() time.Time

	// Out receives the report. Defaults to os.Stdout.
	Out io.Writer

	// Logger defaults to a no-op logger.
	Logger *zap.Logger

	// Colour highlights values and durations in the report.
	Colour bool
}

// Run computes the factorial of d.N both ways, in sequence, and writes four
// lines to d.Out. It stops at the first error.
func (d *Driver) Run() ([]Measurement, error) {
	paths := []struct {
		mode    Mode
		compute func(uint64) (uint64, error)
	}{
		{ModeAsync, BlockOnAsync},
		{ModeThread, Threaded},
	}

	ms := make([]Measurement, 0, len(paths))

	for _, p := range paths {
		m, err := d.measure(p.mode, p.compute)
		if err != nil {
			d.logger().Error("computation failed",
				zap.String("mode", string(p.mode)),
				zap.Uint64("n", d.N),
				zap.Error(err),
			)
			return ms, fmt.Errorf("factorial (%s): %w", p.mode, err)
		}

		if err := d.report(m); err != nil {
			return ms, fmt.Errorf("write report: %w", err)
		}

		ms = append(ms, m)
	}

	return ms, nil
}

func (d *Driver) measure(mode Mode, compute func(uint64) (uint64, error)) (Measurement, error) {
	now := d.Now
	if now == nil {
		now = time.Now
	}

	start := now()
	v, err := compute(d.N)
	elapsed := now().Sub(start)

	if err != nil {
		return Measurement{}, err
	}

	d.logger().Debug("computation finished",
		zap.String("mode", string(mode)),
		zap.Uint64("n", d.N),
		zap.Uint64("value", v),
		zap.Duration("elapsed", elapsed),
	)

	return Measurement{Mode: mode, N: d.N, Value: v, Elapsed: elapsed}, nil
}

var (
	valueColour   = color.New(color.FgGreen, color.Bold)
	elapsedColour = color.New(color.FgCyan)
)

func (d *Driver) report(m Measurement) error {
	out := d.Out
	if out == nil {
		out = os.Stdout
	}

	value, elapsed := fmt.Sprint(m.Value), m.Elapsed.String()
	if d.Colour {
		value = valueColour.Sprint(value)
		elapsed = elapsedColour.Sprint(elapsed)
	}

	if _, err := fmt.Fprintf(out, "Factorial of %d (%s) is: %s\n", m.N, m.Mode, value); err != nil {
		return err
	}

	_, err := fmt.Fprintf(out, "Time taken (%s): %s\n", m.Mode, elapsed)
	return err
}

func (d *Driver) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}
