package factorial_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/b97tsk/factorial/factorial"
)

// stepClock returns a clock that advances by step on every reading.
func stepClock(step time.Duration) func() time.Time {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestDriverRun(t *testing.T) {
	var buf bytes.Buffer

	d := &factorial.Driver{
		N:      factorial.DefaultN,
		Now:    stepClock(5 * time.Millisecond),
		Out:    &buf,
		Logger: zaptest.NewLogger(t),
	}

	ms, err := d.Run()
	require.NoError(t, err)

	assert.Equal(t, []factorial.Measurement{
		{Mode: factorial.ModeAsync, N: 10, Value: 3628800, Elapsed: 5 * time.Millisecond},
		{Mode: factorial.ModeThread, N: 10, Value: 3628800, Elapsed: 5 * time.Millisecond},
	}, ms)

	want := strings.Join([]string{
		"Factorial of 10 (async) is: 3628800",
		"Time taken (async): 5ms",
		"Factorial of 10 (thread) is: 3628800",
		"Time taken (thread): 5ms",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestDriverZero(t *testing.T) {
	var buf bytes.Buffer

	d := &factorial.Driver{N: 0, Out: &buf}

	ms, err := d.Run()
	require.NoError(t, err)
	require.Len(t, ms, 2)

	for _, m := range ms {
		assert.Equal(t, uint64(1), m.Value)
		assert.Less(t, m.Elapsed, time.Second)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Factorial of 0 (async) is: 1", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Time taken (async): "))
	assert.Equal(t, "Factorial of 0 (thread) is: 1", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "Time taken (thread): "))
}

func TestDriverLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	d := &factorial.Driver{
		N:      3,
		Out:    &bytes.Buffer{},
		Logger: zap.New(core),
	}

	_, err := d.Run()
	require.NoError(t, err)

	entries := logs.FilterMessage("computation finished").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "async", entries[0].ContextMap()["mode"])
	assert.Equal(t, "thread", entries[1].ContextMap()["mode"])
	assert.Equal(t, uint64(6), entries[1].ContextMap()["value"])
}

type failingWriter struct{}

var errWrite = errors.New("disk full")

func (failingWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestDriverWriteError(t *testing.T) {
	d := &factorial.Driver{N: 4, Out: failingWriter{}}

	ms, err := d.Run()
	assert.ErrorIs(t, err, errWrite)
	assert.Empty(t, ms)
}

func TestDriverColour(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = noColor })

	var buf bytes.Buffer

	d := &factorial.Driver{
		N:      5,
		Now:    stepClock(time.Millisecond),
		Out:    &buf,
		Colour: true,
	}

	_, err := d.Run()
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "Factorial of 5 (async) is: ")
	assert.Contains(t, out, "120")
}
