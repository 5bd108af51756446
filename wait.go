package async

import (
	"sync"
	"time"
)

// Get blocks the calling goroutine — ordinary, synchronous, non-coroutine
// code — until item settles, then returns its value and error. It
// awaits item from a dedicated coroutine spawned just for that purpose,
// and blocks the real, calling goroutine on the result.
func Get[T any, A awaitable[T]](item A) (T, error) {
	var v T
	var err error
	done := make(chan struct{})

	runChild(func(co *Coroutine) {
		v, err = item.Await(co)
		close(done)
	})

	<-done
	return v, err
}

// Wait is Get without the value, for callers only interested in whether
// item failed.
func Wait[T any, A awaitable[T]](item A) error {
	_, err := Get[T, A](item)
	return err
}

// waitResult is shared between item's own completion and a timeout,
// whichever happens first — a small heap-allocated object both sides
// hold a reference to, so that neither has to know whether the other
// has already run.
type waitResult[T any] struct {
	mu    sync.Mutex
	v     T
	err   error
	ready bool
	ch    chan struct{}
}

func (wr *waitResult[T]) settle(v T, err error) {
	wr.mu.Lock()
	if !wr.ready {
		wr.v, wr.err, wr.ready = v, err, true
		close(wr.ch)
	}
	wr.mu.Unlock()
}

// WaitUntil blocks the calling goroutine until item settles or deadline
// passes, whichever comes first. timedOut reports which one it was;
// item keeps running in the background if its deadline passed first —
// WaitUntil only stops waiting on it, it does not cancel it.
func WaitUntil[T any, A awaitable[T]](item A, deadline time.Time) (v T, err error, timedOut bool) {
	wr := &waitResult[T]{ch: make(chan struct{})}

	runChild(func(co *Coroutine) {
		v, err := item.Await(co)
		wr.settle(v, err)
	})

	timer := time.NewTimer(time.Until(deadline))
	defer timer.Stop()

	select {
	case <-wr.ch:
		wr.mu.Lock()
		v, err = wr.v, wr.err
		wr.mu.Unlock()
		return v, err, false
	case <-timer.C:
		wr.mu.Lock()
		ready := wr.ready
		if ready {
			v, err = wr.v, wr.err
		}
		wr.mu.Unlock()
		if ready {
			return v, err, false
		}
		var zero T
		return zero, nil, true
	}
}

// WaitFor is WaitUntil with a duration relative to now.
func WaitFor[T any, A awaitable[T]](item A, timeout time.Duration) (T, error, bool) {
	return WaitUntil[T, A](item, time.Now().Add(timeout))
}
