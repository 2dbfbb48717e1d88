// Package worker runs functions on their own goroutines and lets the caller
// join them.
package worker

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/b97tsk/factorial/oneshot"
)

// A Handle refers to a goroutine started by [Go].
type Handle struct {
	done chan struct{}
	err  error
}

// Go runs f on a new goroutine and returns a [Handle] to join it.
//
// A panic in f does not crash the process; it is reported by [Handle.Join].
func Go(f func()) *Handle {
	h := &Handle{done: make(chan struct{})}
	go h.run(f)
	return h
}

func (h *Handle) run(f func()) {
	ok := false
	defer func() {
		if !ok {
			v := recover()
			if v == nil {
				h.err = &PanicError{Value: "runtime.Goexit called"}
			} else {
				h.err = &PanicError{Value: v, Stack: debug.Stack()}
			}
		}
		close(h.done)
	}()
	f()
	ok = true
}

// Join blocks until the goroutine terminates.
// It returns a *[PanicError] if the goroutine panicked, nil otherwise.
// Join may be called any number of times.
func (h *Handle) Join() error {
	<-h.done
	return h.err
}

// PanicError reports a panic that terminated a worker.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("worker: panic: %v", e.Value)
}

// Unwrap returns the panic value if it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Offload computes f on a worker goroutine and hands the value back over
// a one-shot channel. Offload blocks until the value is received and the
// worker is joined.
//
// If the worker panics before sending, the receive fails with
// [oneshot.ErrDisconnected] and the returned error also carries the
// *[PanicError] from joining.
func Offload[T any](f func() T) (T, error) {
	tx, rx := oneshot.New[T]()

	h := Go(func() {
		defer tx.Close()
		_ = tx.Send(f())
	})

	v, recvErr := rx.Recv()
	joinErr := h.Join()

	switch {
	case recvErr != nil && joinErr != nil:
		return v, fmt.Errorf("receive: %w", errors.Join(recvErr, joinErr))
	case recvErr != nil:
		return v, fmt.Errorf("receive: %w", recvErr)
	case joinErr != nil:
		return v, fmt.Errorf("join: %w", joinErr)
	}

	return v, nil
}
