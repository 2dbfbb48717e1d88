// Package oneshot provides a channel that carries exactly one value from one
// producer to one consumer.
package oneshot

import (
	"errors"
	"sync"
)

var (
	// ErrDisconnected is returned by Recv when the sender was dropped without
	// sending, or when the value has already been received.
	ErrDisconnected = errors.New("oneshot: channel disconnected")

	// ErrAlreadySent is returned by Send when a value has already been sent
	// or the sender has already been dropped.
	ErrAlreadySent = errors.New("oneshot: value already sent")
)

// New creates a one-shot channel and returns its two ends.
func New[T any]() (*Sender[T], *Receiver[T]) {
	ch := make(chan T, 1)
	return &Sender[T]{ch: ch}, &Receiver[T]{ch: ch}
}

// A Sender is the producer end of a one-shot channel.
//
// A Sender must be used by one goroutine only.
type Sender[T any] struct {
	ch   chan T
	once sync.Once
	done bool
}

// Send delivers v to the receiver. Send never blocks.
//
// Send drops s after delivering, so only the first call succeeds.
func (s *Sender[T]) Send(v T) error {
	if s.done {
		return ErrAlreadySent
	}
	s.done = true
	s.ch <- v
	s.Close()
	return nil
}

// Close drops s. A receiver blocked on a channel that never got a value
// wakes up with ErrDisconnected.
//
// Close is idempotent, and is a no-op after a successful Send apart from
// marking s as done.
func (s *Sender[T]) Close() {
	s.done = true
	s.once.Do(func() { close(s.ch) })
}

// A Receiver is the consumer end of a one-shot channel.
type Receiver[T any] struct {
	ch chan T
}

// Recv blocks until a value is delivered or the sender is dropped.
func (r *Receiver[T]) Recv() (T, error) {
	v, ok := <-r.ch
	if !ok {
		return v, ErrDisconnected
	}
	return v, nil
}

// TryRecv is like Recv but does not block. It reports false when no value is
// available yet.
func (r *Receiver[T]) TryRecv() (v T, ok bool, err error) {
	select {
	case v, ok = <-r.ch:
		if !ok {
			return v, true, ErrDisconnected
		}
		return v, true, nil
	default:
		return v, false, nil
	}
}
