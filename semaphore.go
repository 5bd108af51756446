package async

import "sync"

// Semaphore is a weighted, asynchronously-acquired counting semaphore.
// Waiters are served FIFO: a waiter whose requested weight doesn't yet
// fit blocks every waiter behind it, so a large Acquire can't be starved
// by a stream of small ones jumping the queue.
type Semaphore struct {
	exec *Executor

	mu      sync.Mutex
	avail   int64
	waiters []*semWaiter
}

type semWaiter struct {
	n int64
	r resumer
}

// NewSemaphore returns a Semaphore with n units available, scheduling
// wakeups through exec (nil meaning inline).
func NewSemaphore(exec *Executor, n int64) *Semaphore {
	return &Semaphore{exec: exec, avail: n}
}

// TryAcquire acquires n units without blocking, reporting whether it
// succeeded.
func (s *Semaphore) TryAcquire(n int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.waiters) == 0 && s.avail >= n {
		s.avail -= n
		return true
	}
	return false
}

// Acquire suspends co's body until n units are available, then takes
// them.
func (s *Semaphore) Acquire(co *Coroutine, n int64) {
	s.mu.Lock()
	if len(s.waiters) == 0 && s.avail >= n {
		s.avail -= n
		s.mu.Unlock()
		return
	}
	s.waiters = append(s.waiters, &semWaiter{n: n, r: co.resumer()})
	s.mu.Unlock()

	co.park()
}

// Release returns n units to s, waking as many queued waiters, in FIFO
// order, as now fit.
func (s *Semaphore) Release(n int64) {
	s.mu.Lock()
	s.avail += n

	var woken []resumer
	for len(s.waiters) > 0 && s.waiters[0].n <= s.avail {
		w := s.waiters[0]
		s.waiters = s.waiters[1:]
		s.avail -= w.n
		woken = append(woken, w.r)
	}
	s.mu.Unlock()

	for _, r := range woken {
		schedule(s.exec, "semaphore", r.resume)
	}
}
