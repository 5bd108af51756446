package async

import "sync"

// Event is a manual-reset signal. Once Set, it stays set until Reset.
// Coroutines suspended in Await when Set is called are woken in LIFO
// order — the most recently parked waiter first.
type Event struct {
	exec *Executor

	mu      sync.Mutex
	isSet   bool
	waiters []resumer
}

// NewEvent returns an unset Event that schedules wakeups through exec
// (nil meaning inline).
func NewEvent(exec *Executor) *Event {
	return &Event{exec: exec}
}

// IsSet reports whether e is currently set, without blocking.
func (e *Event) IsSet() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.isSet
}

// Set marks e as set, waking every coroutine parked in Await, most
// recently parked first. Calling Set on an already-set Event is a no-op.
func (e *Event) Set() {
	e.mu.Lock()
	if e.isSet {
		e.mu.Unlock()
		return
	}
	e.isSet = true
	waiters := e.waiters
	e.waiters = nil
	e.mu.Unlock()

	for i := len(waiters) - 1; i >= 0; i-- {
		w := waiters[i]
		schedule(e.exec, "event", w.resume)
	}
}

// Reset marks e as unset. Coroutines that already observed e as set
// through a completed Await are unaffected.
func (e *Event) Reset() {
	e.mu.Lock()
	e.isSet = false
	e.mu.Unlock()
}

// Await suspends co's body until e is set. If e is already set, Await
// returns immediately.
func (e *Event) Await(co *Coroutine) {
	e.mu.Lock()
	if e.isSet {
		e.mu.Unlock()
		return
	}
	e.waiters = append(e.waiters, co.resumer())
	e.mu.Unlock()

	co.park()
}
