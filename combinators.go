package async

import (
	"errors"
	"sync"
)

// awaitable is satisfied by [Task], [SharedTask] and [LazyTask]: anything
// with an Await method of this shape can be combined by [WhenAll],
// [WhenAny] and [WhenReady].
type awaitable[T any] interface {
	Await(co *Coroutine) (T, error)
}

// runChild drives body on a freshly spawned goroutine-backed coroutine,
// the way [WhenAll], [WhenAny] and [WhenReady] observe several
// awaitables "concurrently" from a single suspension point: each item
// gets its own coroutine to call Await from, while the combinator's own
// caller suspends just once, woken when the last of them reports in.
func runChild(body func(co *Coroutine)) {
	co := &Coroutine{}
	h := newHandle(func() { body(co) })
	co.h = h
	h.resume()
}

// WhenAll suspends co's body until every item has settled, then returns
// their values in argument order together with a combined error (via
// errors.Join) if any of them failed. An empty items returns
// immediately with an empty slice and a nil error.
func WhenAll[T any, A awaitable[T]](exec *Executor, co *Coroutine, items ...A) ([]T, error) {
	results := make([]T, len(items))
	errs := make([]error, len(items))
	if len(items) == 0 {
		return results, nil
	}

	var mu sync.Mutex
	remaining := len(items)
	var waiter resumer

	for i, it := range items {
		i, it := i, it
		runChild(func(childCo *Coroutine) {
			v, err := it.Await(childCo)
			results[i] = v
			errs[i] = err

			mu.Lock()
			remaining--
			done := remaining == 0
			w := waiter
			mu.Unlock()

			if done && w != nil {
				schedule(exec, "when-all", w.resume)
			}
		})
	}

	mu.Lock()
	if remaining == 0 {
		mu.Unlock()
		return results, errors.Join(errs...)
	}
	waiter = co.resumer()
	mu.Unlock()

	co.park()

	return results, errors.Join(errs...)
}

// WhenAny suspends co's body until the first of items settles, then
// returns its index together with its value and error. Later items to
// settle are discarded. With no items, WhenAny returns immediately with
// index -1, the zero value and a nil error.
func WhenAny[T any, A awaitable[T]](exec *Executor, co *Coroutine, items ...A) (int, T, error) {
	var zero T
	if len(items) == 0 {
		return -1, zero, nil
	}

	var mu sync.Mutex
	settled := false
	var waiter resumer
	var idx int
	var val T
	var err error

	for i, it := range items {
		i, it := i, it
		runChild(func(childCo *Coroutine) {
			v, e := it.Await(childCo)

			mu.Lock()
			if settled {
				mu.Unlock()
				return
			}
			settled = true
			idx, val, err = i, v, e
			w := waiter
			mu.Unlock()

			if w != nil {
				schedule(exec, "when-any", w.resume)
			}
		})
	}

	mu.Lock()
	if settled {
		i, v, e := idx, val, err
		mu.Unlock()
		return i, v, e
	}
	waiter = co.resumer()
	mu.Unlock()

	co.park()

	mu.Lock()
	i, v, e := idx, val, err
	mu.Unlock()
	return i, v, e
}

// WhenReady suspends co's body until every item has settled, without
// propagating any of their errors, mirroring cppcoro's when_all_ready:
// it returns items themselves once every one is done, leaving the
// caller to inspect each individually (e.g. via a Task's own Await,
// which returns immediately once the Task has settled).
func WhenReady[T any, A awaitable[T]](exec *Executor, co *Coroutine, items ...A) []A {
	if len(items) == 0 {
		return items
	}

	var mu sync.Mutex
	remaining := len(items)
	var waiter resumer

	for _, it := range items {
		it := it
		runChild(func(childCo *Coroutine) {
			it.Await(childCo)

			mu.Lock()
			remaining--
			done := remaining == 0
			w := waiter
			mu.Unlock()

			if done && w != nil {
				schedule(exec, "when-ready", w.resume)
			}
		})
	}

	mu.Lock()
	if remaining == 0 {
		mu.Unlock()
		return items
	}
	waiter = co.resumer()
	mu.Unlock()

	co.park()

	return items
}
