package async

// LazyTask is an asynchronous value whose producer does not start
// running until the first Await, unlike the eager [Task]. It is meant
// for exactly one producer and one consumer, with no concurrent
// awaiters, so unlike [Task] and [SharedTask] it needs no mutex: the
// consumer's own Await call is what drives the producer's first resume.
type LazyTask[T any] struct {
	exec *Executor
	body func(co *Coroutine) (T, error)

	started bool
	state   taskState
	value   T
	err     error
	waiter  resumer

	h *handle
}

// NewLazy returns a LazyTask that will run body, on its own goroutine,
// starting from the first call to Await.
func NewLazy[T any](exec *Executor, body func(co *Coroutine) (T, error)) *LazyTask[T] {
	return &LazyTask[T]{exec: exec, body: body}
}

// settleFromHandle finalizes t when its producer goroutine finished
// without t.finish having already been called directly — i.e. it
// panicked. Like [SharedTask], a LazyTask has no Cancel.
func (t *LazyTask[T]) settleFromHandle() {
	if pv := t.h.panicValue(); pv != nil {
		var zero T
		t.finish(zero, pv)
	}
}

func (t *LazyTask[T]) finish(v T, err error) {
	if t.state == taskDone {
		return
	}
	t.value, t.err, t.state = v, err, taskDone
	w := t.waiter
	t.waiter = nil
	if w != nil {
		schedule(t.exec, "lazytask", w.resume)
	}
}

// Done reports whether t has settled, without blocking. It is only
// meaningful after at least one Await has started t's producer.
func (t *LazyTask[T]) Done() bool {
	return t.state == taskDone
}

// Await starts t's producer if this is the first call, then suspends
// co's body until t settles, returning its value and error.
func (t *LazyTask[T]) Await(co *Coroutine) (T, error) {
	if !t.started {
		t.started = true

		self := &Coroutine{}
		self.afterResume = t.settleFromHandle

		h := newHandle(func() {
			v, err := t.body(self)
			t.finish(v, err)
		})
		self.h = h
		t.h = h

		h.resume()
		t.settleFromHandle()
	}

	if t.state == taskDone {
		return t.value, t.err
	}

	t.waiter = co.resumer()
	co.park()

	return t.value, t.err
}
