package gimgen

import (
	"sort"
	"time"
)

// A Clock schedules delayed function calls.
type Clock interface {
	Now() time.Time
	// AfterFunc arranges for f to be called after d.
	// The returned stop function cancels the call; it reports whether the
	// call was canceled before it happened.
	AfterFunc(d time.Duration, f func()) (stop func() bool)
}

// RealClock is a [Clock] backed by the time package.
// Timer callbacks are spawned on Executor, which must not be nil, so that
// they run on the same thread as the coroutines they resume.
type RealClock struct {
	Executor *Executor
}

// Now implements the [Clock] interface.
func (c RealClock) Now() time.Time {
	return time.Now()
}

// AfterFunc implements the [Clock] interface.
func (c RealClock) AfterFunc(d time.Duration, f func()) func() bool {
	if c.Executor == nil {
		panic("gimgen(RealClock): nil Executor")
	}
	e := c.Executor
	t := time.AfterFunc(d, func() { e.Spawn(f) })
	return t.Stop
}

// ManualClock is a [Clock] whose time only moves when told to.
// Useful in tests.
//
// A ManualClock must not be shared by more than one [Executor].
type ManualClock struct {
	now    time.Time
	seq    uint64
	timers timerqueue
}

// NewManualClock creates a [ManualClock] that starts at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now implements the [Clock] interface.
func (c *ManualClock) Now() time.Time {
	return c.now
}

// AfterFunc implements the [Clock] interface.
// f is called by a later call of Advance.
func (c *ManualClock) AfterFunc(d time.Duration, f func()) func() bool {
	c.seq++
	t := &timer{when: c.now.Add(d), seq: c.seq, f: f}
	c.timers.Push(t)
	return func() bool { return c.timers.Remove(t) }
}

// Advance moves the clock forward by d, calling every function that falls
// due on the way, in order of their due times. Functions due at the same
// time are called in the order they were scheduled.
// Functions scheduled by those calls are called too, if they fall due in
// time.
//
// Advance returns the number of functions called.
func (c *ManualClock) Advance(d time.Duration) int {
	target := c.now.Add(d)
	n := 0
	for !c.timers.Empty() && !c.timers.Peek().when.After(target) {
		t := c.timers.Pop()
		c.now = t.when
		t.f()
		n++
	}
	c.now = target
	return n
}

// Len returns the number of functions waiting to be called.
func (c *ManualClock) Len() int {
	return c.timers.Len()
}

type timer struct {
	when time.Time
	seq  uint64
	f    func()
}

func (t *timer) less(other *timer) bool {
	if !t.when.Equal(other.when) {
		return t.when.Before(other.when)
	}
	return t.seq < other.seq
}

// timerqueue keeps timers sorted by due time, then by arrival.
type timerqueue struct {
	items []*timer
}

func (q *timerqueue) Empty() bool {
	return len(q.items) == 0
}

func (q *timerqueue) Len() int {
	return len(q.items)
}

func (q *timerqueue) Push(t *timer) {
	s := q.items
	i := sort.Search(len(s), func(i int) bool { return t.less(s[i]) })

	s = append(s, nil)
	copy(s[i+1:], s[i:])
	s[i] = t
	q.items = s
}

func (q *timerqueue) Peek() *timer {
	return q.items[0]
}

func (q *timerqueue) Pop() *timer {
	t := q.items[0]
	q.items[0] = nil
	if len(q.items) > 1 {
		q.items = q.items[1:]
	} else {
		q.items = q.items[:0]
	}
	return t
}

func (q *timerqueue) Remove(t *timer) bool {
	for i, u := range q.items {
		if u == t {
			copy(q.items[i:], q.items[i+1:])
			q.items[len(q.items)-1] = nil
			q.items = q.items[:len(q.items)-1]
			return true
		}
	}
	return false
}
