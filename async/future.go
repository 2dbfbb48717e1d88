package async

// A Future is a [Signal] that carries a value which is resolved at most once.
//
// A Future is how one coroutine hands a value to another on the same
// [Executor]: the producer calls Resolve, the consumer awaits the Future and
// calls Get after it resumes.
//
// A Future must not be shared by more than one [Executor].
type Future[T any] struct {
	Signal
	value T
	ready bool
}

// Resolve sets the value of f and resumes any coroutine that is watching f.
// Resolve panics if f has already been resolved.
//
// One should only call this method in a [Task] function.
func (f *Future[T]) Resolve(v T) {
	if f.ready {
		panic("async(Future): resolved twice")
	}
	f.value = v
	f.ready = true
	f.Notify()
}

// Ready reports whether f has been resolved.
func (f *Future[T]) Ready() bool {
	return f.ready
}

// Get retrieves the value of f.
// Get returns the zero value of T if f has not yet been resolved.
//
// Without proper synchronization, one should only call this method in
// a [Task] function.
func (f *Future[T]) Get() T {
	return f.value
}

// Await returns a [Task] that awaits until f is resolved, and then ends.
func (f *Future[T]) Await() Task {
	return func(co *Coroutine) Result {
		if !f.ready {
			return co.Await(f).Until(f.Ready).End()
		}
		return co.End()
	}
}
