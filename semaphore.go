package gimgen

import "slices"

// Semaphore provides a way to bound asynchronous access to a resource.
// The callers can request access with a given weight.
//
// A Semaphore must not be shared by more than one [Executor].
type Semaphore struct {
	size    int64
	cur     int64
	waiters []*waiter
}

// NewSemaphore creates a new weighted semaphore with the given maximum
// combined weight.
func NewSemaphore(n int64) *Semaphore {
	return &Semaphore{size: n}
}

// Acquire returns a [Signal] that, each time it is awaited, acquires
// a weight of n from the semaphore, waiting in line if necessary.
// The completion resolves with nil once the weight is acquired.
//
// Acquiring more than the size of the semaphore never succeeds.
//
// A completion that is abandoned while waiting, e.g. by losing an
// [AnySignal] race against a [Timeout], leaves the line without taking any
// weight.
func (s *Semaphore) Acquire(n int64) Signal {
	if n < 0 {
		panic("gimgen(Semaphore): negative weight")
	}
	return acquire{s, n}
}

type acquire struct {
	s *Semaphore
	n int64
}

func (a acquire) String() string {
	return "semaphoreAcquire"
}

func (a acquire) CreateCompletion() *Completion {
	s, n := a.s, a.n
	if s.size-s.cur >= n && len(s.waiters) == 0 {
		s.cur += n
		return Resolved(nil)
	}
	c, resolve, _ := NewCompletion()
	if n > s.size {
		return c // Impossible to success.
	}
	w := &waiter{n: n, resolve: resolve}
	s.waiters = append(s.waiters, w)
	c.OnAbandon(func() { s.removeWaiter(w) })
	return c
}

// TryAcquire acquires the semaphore with a weight of n without waiting.
// On success, returns true. On failure, returns false and leaves the
// semaphore unchanged.
func (s *Semaphore) TryAcquire(n int64) bool {
	if s.size-s.cur >= n && len(s.waiters) == 0 {
		s.cur += n
		return true
	}
	return false
}

// Release releases the semaphore with a weight of n.
func (s *Semaphore) Release(n int64) {
	if n < 0 {
		panic("gimgen(Semaphore): negative weight")
	}
	if s.cur >= 0 {
		s.cur -= n
	}
	if s.cur < 0 {
		panic("gimgen(Semaphore): released more than held")
	}
	s.notifyWaiters()
}

func (s *Semaphore) notifyWaiters() {
	i := 0
	for ; i < len(s.waiters); i++ {
		w := s.waiters[i]
		if s.size-s.cur < w.n {
			break
		}
		s.cur += w.n
	}
	ready := slices.Clone(s.waiters[:i])
	s.waiters = slices.Delete(s.waiters, 0, i)
	for _, w := range ready {
		w.resolve(nil)
	}
}

// removeWaiter takes w out of line. Waiters behind w may fit now.
func (s *Semaphore) removeWaiter(w *waiter) {
	if i := slices.Index(s.waiters, w); i != -1 {
		s.waiters = slices.Delete(s.waiters, i, i+1)
		s.notifyWaiters()
	}
}

type waiter struct {
	n       int64
	resolve func(v any)
}
