package async

import (
	"errors"
	"sync"
)

// ErrIncomplete is returned by [Complete] when an executor runs out of work
// before the awaited task resolves its future.
var ErrIncomplete = errors.New("async: task did not complete")

// An Executor is a coroutine spawner, and a coroutine runner.
//
// When a coroutine is spawned or resumed, it is added into an internal queue.
// The Run method then pops and runs each of them from the queue until
// the queue is emptied.
// It is done in a single-threaded manner.
// If one coroutine blocks, no other coroutines can run.
// The best practice is not to block.
//
// The internal queue is a priority queue.
// Coroutines closer to the root come first.
// Coroutines with the same level are sorted by their arrival order (FIFO).
//
// Manually calling the Run method is usually not desired.
// One would instead use the Autorun method to set up an autorun function to
// calling the Run method automatically whenever a coroutine is spawned or
// resumed.
// The Executor never calls the autorun function twice at the same time.
type Executor struct {
	mu      sync.Mutex
	pq      priorityqueue[*Coroutine]
	running bool
	autorun func()
	pool    sync.Pool
	ps      panicstack
}

// Autorun sets up an autorun function to calling the Run method automatically
// whenever a coroutine is spawned or resumed.
//
// One must pass a function that calls the Run method.
//
// If f blocks, the Spawn method may block too.
// The best practice is not to block.
func (e *Executor) Autorun(f func()) {
	e.autorun = f
}

// Run pops and runs every coroutine in the queue until the queue is emptied.
//
// If any root coroutine ended with an unrecovered panic, Run panics after
// the queue is emptied.
//
// Run must not be called twice at the same time.
func (e *Executor) Run() {
	e.mu.Lock()
	e.running = true

	for !e.pq.Empty() {
		co := e.pq.Pop()
		e.runCoroutine(co)
	}

	e.running = false
	ps := e.ps
	e.ps = nil
	e.mu.Unlock()

	ps.Repanic()
}

// Spawn creates a root coroutine to work on t.
//
// The coroutine is added in a queue. To run it, either call the Run method,
// or call the Autorun method to set up an autorun function beforehand.
//
// Spawn is safe for concurrent use.
func (e *Executor) Spawn(t Task) {
	co := e.newCoroutine().init(e, must(t)).recyclable()
	e.resumeCoroutine(co)
}

func (e *Executor) resumeCoroutine(co *Coroutine) {
	var autorun func()

	e.mu.Lock()

	switch flag := co.flag; {
	case flag&flagRecycled != 0:
		e.mu.Unlock()
		panic("async: coroutine has been recycled")
	case flag&flagEnqueued != 0:
		co.flag = flag | flagResumed
	default:
		co.flag = flag | flagResumed | flagEnqueued
		e.pq.Push(co)
	}

	if !e.running && e.autorun != nil {
		e.running = true
		autorun = e.autorun
	}

	e.mu.Unlock()

	if autorun != nil {
		autorun()
	}
}

func (e *Executor) runCoroutine(co *Coroutine) {
	flag := co.flag
	flag &^= flagEnqueued
	co.flag = flag

	switch {
	case flag&flagEnded != 0:
		e.freeCoroutine(co)
	case flag&flagResumed != 0:
		e.mu.Unlock()
		co.run()
		e.mu.Lock()
	}
}

// Complete spawns the task returned by f on e, runs e until its queue is
// emptied and returns the value the task resolved.
//
// e must not have an autorun function that runs e on another goroutine.
// If the queue is emptied while the future is still pending, Complete
// returns [ErrIncomplete].
func Complete[T any](e *Executor, f func(out *Future[T]) Task) (T, error) {
	var out Future[T]

	e.Spawn(f(&out))
	e.Run()

	if !out.Ready() {
		var zero T
		return zero, ErrIncomplete
	}

	return out.Get(), nil
}
