package async

import "sync"

// Channel is a single-value-at-a-time pipe between producer and consumer
// coroutines. With capacity 0 it is an unbuffered rendezvous: Push
// suspends until a coroutine is parked in Pop to hand the value to, and
// vice versa. With capacity > 0 it behaves like a bounded FIFO queue:
// Push only suspends once the buffer is full, Pop only suspends once
// it's empty. Both the sender queue and the receiver queue are served
// FIFO.
type Channel[T any] struct {
	exec *Executor
	cap  int

	mu          sync.Mutex
	buf         []T
	closed      bool
	sendWaiters []*chanSend[T]
	recvWaiters []*chanRecv[T]
}

type chanSend[T any] struct {
	v      T
	r      resumer
	closed bool
}

type chanRecv[T any] struct {
	out *T
	ok  *bool
	r   resumer
}

// NewChannel returns an empty Channel of the given capacity (0 for an
// unbuffered rendezvous channel) that schedules wakeups through exec
// (nil meaning inline).
func NewChannel[T any](exec *Executor, capacity int) *Channel[T] {
	return &Channel[T]{exec: exec, cap: capacity}
}

// Len reports how many values are currently buffered.
func (c *Channel[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.buf)
}

// Cap reports c's buffer capacity.
func (c *Channel[T]) Cap() int {
	return c.cap
}

// Push suspends co's body until v has been delivered — either handed
// directly to a coroutine parked in Pop, or room frees up in the
// buffer — and reports ErrClosed if c is closed before that happens.
func (c *Channel[T]) Push(co *Coroutine, v T) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}

	if len(c.recvWaiters) > 0 {
		rw := c.recvWaiters[0]
		c.recvWaiters = c.recvWaiters[1:]
		c.mu.Unlock()
		*rw.out, *rw.ok = v, true
		schedule(c.exec, "channel", rw.r.resume)
		return nil
	}

	if len(c.buf) < c.cap {
		c.buf = append(c.buf, v)
		c.mu.Unlock()
		return nil
	}

	sw := &chanSend[T]{v: v, r: co.resumer()}
	c.sendWaiters = append(c.sendWaiters, sw)
	c.mu.Unlock()

	co.park()

	if sw.closed {
		return ErrClosed
	}
	return nil
}

// Pop suspends co's body until a value is available, either drained
// from the buffer or handed directly from a coroutine parked in Push, or
// until c is closed with nothing left to receive. ok is false only once c is closed and
// drained — matching a native Go channel, already-buffered values
// remain available after Close.
func (c *Channel[T]) Pop(co *Coroutine) (v T, ok bool) {
	c.mu.Lock()

	if len(c.buf) > 0 {
		v = c.buf[0]
		c.buf = c.buf[1:]
		if len(c.sendWaiters) > 0 {
			sw := c.sendWaiters[0]
			c.sendWaiters = c.sendWaiters[1:]
			c.buf = append(c.buf, sw.v)
			c.mu.Unlock()
			schedule(c.exec, "channel", sw.r.resume)
			return v, true
		}
		c.mu.Unlock()
		return v, true
	}

	if len(c.sendWaiters) > 0 {
		sw := c.sendWaiters[0]
		c.sendWaiters = c.sendWaiters[1:]
		c.mu.Unlock()
		schedule(c.exec, "channel", sw.r.resume)
		return sw.v, true
	}

	if c.closed {
		c.mu.Unlock()
		return v, false
	}

	rw := &chanRecv[T]{out: &v, ok: &ok, r: co.resumer()}
	c.recvWaiters = append(c.recvWaiters, rw)
	c.mu.Unlock()

	co.park()

	return v, ok
}

// Closed reports whether Close has been called.
func (c *Channel[T]) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Close closes c. Coroutines parked in Pop with nothing left to receive
// wake with ok false; coroutines parked in Push wake with ErrClosed.
// Values already in the buffer are left for subsequent Pop calls to
// drain normally. Closing an already-closed Channel is a no-op.
func (c *Channel[T]) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	recvWaiters := c.recvWaiters
	c.recvWaiters = nil
	sendWaiters := c.sendWaiters
	c.sendWaiters = nil
	c.mu.Unlock()

	for _, rw := range recvWaiters {
		*rw.ok = false
		schedule(c.exec, "channel", rw.r.resume)
	}
	for _, sw := range sendWaiters {
		sw.closed = true
		schedule(c.exec, "channel", sw.r.resume)
	}
}
