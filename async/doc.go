// Package async implements a single-threaded cooperative executor.
//
// An [Executor] runs coroutines one at a time. A [Coroutine] runs a [Task],
// a plain Go function whose [Result] tells the coroutine whether to end, to
// make a transition to another task, or to yield until some [Event] notifies.
//
// Yielding is the only suspension point. A yielded coroutine is put back into
// the executor's queue when an event it watches notifies, and the executor
// runs it again the next time it gets popped. Nothing runs in parallel.
//
// # Awaiting Values
//
// A [Future] carries a value that is resolved at most once. A coroutine that
// needs a value computed by another one spawns a child coroutine with
// [Coroutine.Spawn], awaits the child's future and picks up where it left off
// when the child resolves it:
//
//	var sub async.Future[int]
//	co.Spawn(compute(&sub))
//	return co.Await(&sub).Until(sub.Ready).Then(async.Do(func() {
//		use(sub.Get())
//	}))
//
// Child coroutines are queued rather than run immediately, so every spawn
// followed by an await is a point where other ready coroutines get to run.
//
// # Blocking On a Task
//
// [Complete] spawns a task, drives the executor until its queue is empty and
// returns the value the task resolved. It is the bridge between ordinary
// blocking code and async tasks.
//
// # Panic Propagation
//
// Child coroutines propagate unrecovered panics to their parent coroutines.
// Root coroutines propagate unrecovered panics to their [Executor], causing
// the [Executor.Run] method to panic when it returns.
package async
