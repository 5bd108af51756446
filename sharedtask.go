package async

import "sync"

// SharedTask is a multi-owner asynchronous value: any number of
// coroutines may hold a copy of the same *SharedTask and await it
// concurrently, unlike [Task]. Go's garbage collector takes the place of
// the reference counting a copyable value type needs in C++ — a
// SharedTask is simply a pointer, freed once nothing reaches it anymore.
//
// Waiters are woken in LIFO order when the task settles: each new
// awaiter is linked in front of the ones already waiting.
type SharedTask[T any] struct {
	exec *Executor

	mu      sync.Mutex
	state   taskState
	value   T
	err     error
	waiters []resumer

	h *handle
}

// StartShared begins running body on its own goroutine immediately and
// returns a SharedTask that any number of coroutines may await.
func StartShared[T any](exec *Executor, body func(co *Coroutine) (T, error)) *SharedTask[T] {
	t := &SharedTask[T]{exec: exec}
	co := &Coroutine{}
	co.afterResume = t.settleFromHandle

	h := newHandle(func() {
		v, err := body(co)
		t.finish(v, err)
	})
	co.h = h
	t.h = h

	h.resume()
	t.settleFromHandle()

	return t
}

// settleFromHandle finalizes t when its producer goroutine finished
// without t.finish having already been called directly — i.e. it
// panicked. Unlike [Task], a SharedTask has no Cancel: cancellation in
// this package is destruction-based, and a SharedTask may have any
// number of holders, so no single one of them owns the producer.
func (t *SharedTask[T]) settleFromHandle() {
	if pv := t.h.panicValue(); pv != nil {
		var zero T
		t.finish(zero, pv)
	}
}

func (t *SharedTask[T]) finish(v T, err error) {
	t.mu.Lock()
	if t.state != taskPending {
		t.mu.Unlock()
		return
	}
	t.value, t.err, t.state = v, err, taskDone
	waiters := t.waiters
	t.waiters = nil
	t.mu.Unlock()

	for i := len(waiters) - 1; i >= 0; i-- {
		w := waiters[i]
		schedule(t.exec, "sharedtask", w.resume)
	}
}

// Done reports whether t has settled, without blocking.
func (t *SharedTask[T]) Done() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state == taskDone
}

// Await suspends co's body until t settles, then returns t's value and
// error. Any number of coroutines may call Await on the same
// SharedTask, including concurrently.
func (t *SharedTask[T]) Await(co *Coroutine) (T, error) {
	t.mu.Lock()
	if t.state == taskDone {
		v, err := t.value, t.err
		t.mu.Unlock()
		return v, err
	}
	t.waiters = append(t.waiters, co.resumer())
	t.mu.Unlock()

	co.park()

	t.mu.Lock()
	v, err := t.value, t.err
	t.mu.Unlock()
	return v, err
}
