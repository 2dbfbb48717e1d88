package worker_test

import (
	"errors"
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b97tsk/factorial/oneshot"
	"github.com/b97tsk/factorial/worker"
)

func TestJoin(t *testing.T) {
	var ran atomic.Bool

	h := worker.Go(func() { ran.Store(true) })

	require.NoError(t, h.Join())
	assert.True(t, ran.Load())
	require.NoError(t, h.Join(), "Join should be repeatable")
}

func TestJoinPanic(t *testing.T) {
	errBoom := errors.New("boom")

	h := worker.Go(func() { panic(errBoom) })

	err := h.Join()

	var pe *worker.PanicError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, errBoom, pe.Value)
	assert.NotEmpty(t, pe.Stack)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, "worker: panic: boom", err.Error())
}

func TestJoinGoexit(t *testing.T) {
	h := worker.Go(runtime.Goexit)

	var pe *worker.PanicError
	require.ErrorAs(t, h.Join(), &pe)
}

func TestOffload(t *testing.T) {
	v, err := worker.Offload(func() int { return 42 })

	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestOffloadPanic(t *testing.T) {
	_, err := worker.Offload(func() int { panic("overflow") })

	require.Error(t, err)
	assert.ErrorIs(t, err, oneshot.ErrDisconnected)

	var pe *worker.PanicError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "overflow", pe.Value)
}
