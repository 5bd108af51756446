package async

// handle drives a single goroutine as if it were a stackless coroutine.
//
// The governed goroutine blocks on a receive from next at every
// suspension point, and the driving side alternates sending on next (to
// let the goroutine run) with receiving from next (to wait for the
// goroutine to either park again or finish). Exactly one side is ever
// runnable at a time, which is what lets resume() behave like
// synchronous symmetric transfer instead of ordinary concurrent
// execution.
type handle struct {
	next chan struct{}
	done bool
	stop bool
	ps   panicstack
}

// newHandle creates a handle whose governed goroutine will run body once
// resumed for the first time. The goroutine does not start running body
// until the first call to resume.
func newHandle(body func()) *handle {
	h := &handle{next: make(chan struct{})}

	go func() {
		defer func() {
			h.done = true
			close(h.next)
		}()

		if _, ok := <-h.next; !ok {
			return
		}

		if h.stop {
			return
		}

		h.ps.Try(body)
	}()

	return h
}

// park suspends the calling goroutine — which must be the goroutine
// governed by h — until the next call to resume or destroy.
//
// park panics with parkCanceled if h has been destroyed; the panic is
// caught by the recover in panicstack.Try, which newHandle runs body
// under, and must not be caught by body.
func (h *handle) park() {
	h.next <- struct{}{}
	if _, ok := <-h.next; !ok {
		panic(parkCanceled{})
	}
	if h.stop {
		panic(parkCanceled{})
	}
}

// resume runs h's governed goroutine until it either parks again or
// finishes, then returns. It is a no-op once h is done.
func (h *handle) resume() {
	if h.done {
		return
	}
	h.next <- struct{}{}
	<-h.next
}

// destroy cancels h, unparking its goroutine (if parked) so that it can
// unwind. It blocks until the goroutine finishes. It is a no-op once h
// is done.
func (h *handle) destroy() {
	if h.done {
		return
	}
	h.stop = true
	h.next <- struct{}{}
	<-h.next
}

// parkCanceled is panicked by park to unwind a destroyed coroutine. It
// is recognized and swallowed by panicstack.Try, distinguishing a
// cancellation unwind from a genuine user panic.
type parkCanceled struct{}

func (h *handle) panicking() bool {
	return len(h.ps) != 0
}

// panicValue returns the aggregated panic captured from body, or nil if
// body never panicked (including when it unwound via parkCanceled, which
// panicstack.Try swallows without recording).
func (h *handle) panicValue() *panicvalue {
	if len(h.ps) == 0 {
		return nil
	}
	return &panicvalue{items: []panicitem(h.ps)}
}

// canceled reports whether h finished because it was destroyed, as
// opposed to body returning or panicking on its own.
func (h *handle) canceled() bool {
	return h.done && h.stop && !h.panicking()
}
