package gimgen

import "sync/atomic"

// A RunStrategy decides how a suspended [Coroutine] is resumed once the
// signal it awaits settles. It must call f exactly once, either right away
// or some time later.
//
// [(*Executor).Spawn] is a RunStrategy that defers resumption to the
// executor's queue.
type RunStrategy func(f func())

// Immediate is the default [RunStrategy]. It calls f synchronously.
func Immediate(f func()) { f() }

var runStrategy atomic.Pointer[RunStrategy]

// ChangeRunStrategy replaces the process-wide [RunStrategy] used by every
// [Coroutine]. Passing nil restores [Immediate].
//
// This is a global switch meant for tests and debugging, e.g. to keep call
// stacks short or to control ordering. It must not be changed concurrently
// with running coroutines.
func ChangeRunStrategy(s RunStrategy) {
	if s == nil {
		runStrategy.Store(nil)
		return
	}
	runStrategy.Store(&s)
}

// CurrentRunStrategy returns the process-wide [RunStrategy].
func CurrentRunStrategy() RunStrategy {
	if p := runStrategy.Load(); p != nil {
		return *p
	}
	return Immediate
}
