package factorial

import (
	"github.com/b97tsk/factorial/async"
	"github.com/b97tsk/factorial/worker"
)

// Recursive returns n! computed by plain recursion.
func Recursive(n uint64) uint64 {
	if n == 0 {
		return 1
	}
	return n * Recursive(n-1)
}

// Async returns a [async.Task] that resolves out with n!.
//
// For n > 0 the task spawns a child task for (n-1)! and yields until the
// child resolves, so the chain suspends once per level and the
// multiplications happen deepest first. For n == 0 it resolves out right
// away.
func Async(n uint64, out *async.Future[uint64]) async.Task {
	return func(co *async.Coroutine) async.Result {
		if n == 0 {
			out.Resolve(1)
			return co.End()
		}

		var sub async.Future[uint64]

		co.Spawn(Async(n-1, &sub))

		return co.Await(&sub).Until(sub.Ready).Then(async.Do(func() {
			out.Resolve(n * sub.Get())
		}))
	}
}

// BlockOnAsync runs [Async] on a fresh executor and blocks until n! is
// resolved.
func BlockOnAsync(n uint64) (uint64, error) {
	var e async.Executor
	return async.Complete(&e, func(out *async.Future[uint64]) async.Task {
		return Async(n, out)
	})
}

// Threaded computes n! with [Recursive] on a worker goroutine, receives the
// value over a one-shot channel and joins the worker before returning.
func Threaded(n uint64) (uint64, error) {
	return worker.Offload(func() uint64 { return Recursive(n) })
}
