package gimgen

// A WaitGroup is a [Signal] with a counter.
//
// Awaiting a WaitGroup suspends a [Coroutine] until the counter becomes
// zero. If the counter is already zero, the coroutine resumes right away.
//
// A WaitGroup must not be shared by more than one [Executor].
type WaitGroup struct {
	zero *ManualSignal
	n    int
}

// String implements the [Signal] interface.
func (wg *WaitGroup) String() string {
	return "waitGroup"
}

// CreateCompletion implements the [Signal] interface.
// The completion resolves with nil.
func (wg *WaitGroup) CreateCompletion() *Completion {
	if wg.n == 0 {
		return Resolved(nil)
	}
	c, resolve, _ := NewCompletion()
	wg.signal().CreateCompletion().Then(func(any) { resolve(nil) }, nil)
	return c
}

func (wg *WaitGroup) signal() *ManualSignal {
	if wg.zero == nil {
		wg.zero = NewManualSignal()
	}
	return wg.zero
}

// Add adds delta, which may be negative, to the [WaitGroup] counter.
// If the counter becomes zero, Add resumes any [Coroutine] that is awaiting
// wg.
// If the counter is negative, Add panics.
func (wg *WaitGroup) Add(delta int) {
	if wg.n >= 0 {
		wg.n += delta
	}
	if wg.n < 0 {
		panic("gimgen(WaitGroup): negative counter")
	}
	if wg.n == 0 && delta != 0 {
		wg.signal().Trigger()
	}
}

// Done decrements the [WaitGroup] counter by one.
func (wg *WaitGroup) Done() {
	wg.Add(-1)
}

// Count returns the [WaitGroup] counter.
func (wg *WaitGroup) Count() int {
	return wg.n
}
