package async

import (
	"context"
	"sync"
)

type taskState int8

const (
	taskPending taskState = iota
	taskDone
)

// Task is a unique-owner asynchronous value. Start runs its producer
// function eagerly, on its own goroutine, and Task holds whatever that
// producer returns (or panicked with, or was canceled with) once it's
// done. A Task is meant to be awaited by exactly one coroutine at a
// time; awaiting the same Task concurrently from two coroutines is a
// forbidden race, same as copying a cppcoro task<T> and awaiting both
// copies.
type Task[T any] struct {
	exec *Executor

	mu     sync.Mutex
	state  taskState
	value  T
	err    error
	waiter resumer

	h       *handle
	stopCtx func() bool
}

// Start begins running body on its own goroutine immediately and returns
// a Task that will settle once body returns, panics, or is canceled.
//
// If ctx is non-nil, the Task cancels itself (see [Task.Cancel]) when ctx
// is done. Pass nil to opt out of context-driven cancellation.
func Start[T any](exec *Executor, ctx context.Context, body func(co *Coroutine) (T, error)) *Task[T] {
	t := &Task[T]{exec: exec}
	co := &Coroutine{}
	co.afterResume = t.settleFromHandle

	h := newHandle(func() {
		v, err := body(co)
		t.finish(v, err, nil)
	})
	co.h = h
	t.h = h

	if ctx != nil {
		stop := context.AfterFunc(ctx, t.Cancel)
		t.stopCtx = stop
	}

	h.resume()
	t.settleFromHandle()

	return t
}

// settleFromHandle finalizes t's result when its producer goroutine
// finished without t.finish having already been called directly — i.e.
// it panicked or was canceled while parked.
func (t *Task[T]) settleFromHandle() {
	if pv := t.h.panicValue(); pv != nil {
		var zero T
		t.finish(zero, pv, nil)
		return
	}
	if t.h.canceled() {
		var zero T
		t.finish(zero, ErrCanceled, nil)
	}
}

// finish records t's result if t hasn't already settled, then wakes
// whoever is waiting on it. cleanup, if non-nil, is called with t.mu
// held before the waiter is woken; every caller in this package passes
// nil (SharedTask and LazyTask have finish methods of their own).
func (t *Task[T]) finish(v T, err error, cleanup func()) {
	t.mu.Lock()
	if t.state != taskPending {
		t.mu.Unlock()
		return
	}
	t.value, t.err, t.state = v, err, taskDone
	w := t.waiter
	t.waiter = nil
	if cleanup != nil {
		cleanup()
	}
	if stop := t.stopCtx; stop != nil {
		t.stopCtx = nil
		t.mu.Unlock()
		stop()
	} else {
		t.mu.Unlock()
	}
	if w != nil {
		schedule(t.exec, "task", w.resume)
	}
}

// Done reports whether t has settled, without blocking.
func (t *Task[T]) Done() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state == taskDone
}

// Await suspends co's body until t settles, then returns t's value and
// error. If t has already settled, Await returns immediately.
func (t *Task[T]) Await(co *Coroutine) (T, error) {
	t.mu.Lock()
	if t.state == taskDone {
		v, err := t.value, t.err
		t.mu.Unlock()
		return v, err
	}
	t.waiter = co.resumer()
	t.mu.Unlock()

	co.park()

	t.mu.Lock()
	v, err := t.value, t.err
	t.mu.Unlock()
	return v, err
}

// Cancel unwinds t's producer at its current suspension point, if it
// hasn't already settled. Cancel blocks until the producer has finished
// unwinding. Calling Cancel concurrently with whatever would otherwise
// resume t's producer (an awaited primitive becoming ready) is a
// forbidden race, same as destroying a cppcoro coroutine_handle that is
// not currently suspended.
func (t *Task[T]) Cancel() {
	t.h.destroy()
	t.settleFromHandle()
}
