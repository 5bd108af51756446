package async

import "sync"

// Mutex is a non-reentrant asynchronous lock. Unlock hands the lock
// directly to the next waiter rather than releasing and letting a new
// Lock race for it, so waiters are served in LIFO order — last parked,
// first handed the lock. Fairness is not guaranteed.
type Mutex struct {
	exec *Executor

	mu      sync.Mutex
	locked  bool
	waiters []resumer
}

// NewMutex returns an unlocked Mutex that schedules wakeups through exec
// (nil meaning inline).
func NewMutex(exec *Executor) *Mutex {
	return &Mutex{exec: exec}
}

// TryLock acquires m without blocking, reporting whether it succeeded.
func (m *Mutex) TryLock() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locked {
		return false
	}
	m.locked = true
	return true
}

// Lock suspends co's body until m is acquired.
func (m *Mutex) Lock(co *Coroutine) {
	m.mu.Lock()
	if !m.locked {
		m.locked = true
		m.mu.Unlock()
		return
	}
	m.waiters = append(m.waiters, co.resumer())
	m.mu.Unlock()

	co.park()
}

// Unlock releases m. If a coroutine is waiting in Lock, the lock passes
// directly to it — the most recently parked one — without ever being
// observably unlocked in between.
func (m *Mutex) Unlock() {
	m.mu.Lock()
	n := len(m.waiters)
	if n == 0 {
		m.locked = false
		m.mu.Unlock()
		return
	}
	w := m.waiters[n-1]
	m.waiters = m.waiters[:n-1]
	m.mu.Unlock()

	schedule(m.exec, "mutex", w.resume)
}

// LockGuard acquires m and returns a function that releases it.
func (m *Mutex) LockGuard(co *Coroutine) func() {
	m.Lock(co)
	return m.Unlock
}
