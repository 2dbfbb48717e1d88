// Package factorial computes n! two ways and times both.
//
// [Async] expresses the recurrence as a chain of cooperative tasks on an
// [async.Executor]: each level spawns the next one, suspends until the
// nested result is resolved, and multiplies on the way back up.
//
// [Threaded] computes [Recursive] on a worker goroutine, receives the value
// over a one-shot channel and joins the worker.
//
// A [Driver] runs both, measures wall-clock time around each, and writes
// a short report.
//
// Arithmetic is on uint64 and wraps silently for n > 20.
package factorial
