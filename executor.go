package async

import "sync"

// An Executor runs scheduled wakeups — callbacks that resume a parked
// [Task], [SharedTask], [LazyTask], [Event], [Mutex], [Channel] or
// [WorkGroup] waiter — one at a time, in the order described below.
//
// The zero value of Executor is a valid, immediately usable "inline"
// executor: [Executor.Schedule] runs its callback synchronously, on
// whatever goroutine called it, unless [Executor.Autorun] has been used
// to opt into queued, single-goroutine fan-in scheduling.
//
// The fan-in run loop, the recyclable autorun hookup, and the
// path-ordered priority queue schedule a plain callback rather than a
// [Coroutine] directly, since wakeups here drive goroutine-backed
// handles rather than suspended continuations.
type Executor struct {
	mu      sync.Mutex
	pq      priorityqueue[*job]
	running bool
	autorun func()
	seq     uint64
}

type job struct {
	fn   func()
	path string
	seq  uint64
}

func (j *job) less(other *job) bool {
	if j.path != other.path {
		return j.path < other.path
	}
	return j.seq < other.seq
}

// Autorun sets up a function to be called whenever a wakeup is scheduled
// while the Executor isn't already running, so that scheduled wakeups
// eventually get run. One must pass a function that calls [Executor.Run].
//
// If f blocks, [Executor.Schedule] may block too, on whichever goroutine
// triggered the wakeup. The best practice is to run f on its own
// goroutine, e.g. myExecutor.Autorun(func() { go myExecutor.Run() }).
//
// Without a call to Autorun, [Executor.Schedule] runs each wakeup
// inline, synchronously, unless [Executor.Run] is in progress, in which
// case the wakeup is queued for that Run — giving the zero-value
// Executor its inline-resume behavior.
func (e *Executor) Autorun(f func()) {
	e.autorun = f
}

// Run pops and runs every scheduled wakeup, in path order (and arrival
// order within the same path), until none remain.
//
// Run must not be called twice at the same time.
func (e *Executor) Run() {
	e.mu.Lock()
	e.running = true

	for !e.pq.Empty() {
		j := e.pq.Pop()
		e.mu.Unlock()
		j.fn()
		e.mu.Lock()
	}

	e.running = false
	e.mu.Unlock()
}

// Schedule enqueues fn to run as a wakeup, using p to order it relative
// to other pending wakeups (wakeups with equal p run in FIFO order).
//
// If an autorun function has been set (see [Executor.Autorun]) and the
// Executor isn't already running, Schedule calls it. Otherwise, if the
// Executor is not running at all (no autorun, no [Executor.Run] in
// progress), Schedule runs fn inline, synchronously, which is what makes
// the zero-value Executor usable without any setup.
//
// Schedule is safe for concurrent use.
func (e *Executor) Schedule(p string, fn func()) {
	e.mu.Lock()

	if e.running {
		e.seq++
		e.pq.Push(&job{fn: fn, path: p, seq: e.seq})
		e.mu.Unlock()
		return
	}

	if e.autorun != nil {
		e.seq++
		e.pq.Push(&job{fn: fn, path: p, seq: e.seq})
		autorun := e.autorun
		e.mu.Unlock()
		autorun()
		return
	}

	e.mu.Unlock()
	fn()
}

// schedule runs fn through e, or inline if e is nil. Every primitive in
// this package accepts a nil *Executor, meaning "resume inline", so that
// a primitive can be used without ever touching an Executor.
func schedule(e *Executor, path string, fn func()) {
	if e == nil {
		fn()
		return
	}
	e.Schedule(path, fn)
}
