// Package gimgen is a library for writing asynchronous code as sequential
// procedures that suspend at signals.
//
// A [Signal] is a named request for an asynchronous completion.
// A [Coroutine] drives a [Procedure]: each time the procedure awaits
// a signal, the coroutine asks the signal for a [Completion], parks until it
// settles, and then runs the procedure again with the settled value.
// No goroutine blocks while a coroutine is suspended; the coroutine is just
// a continuation registered on a completion.
//
// # Signals
//
// Signals are usually built by a [Factory], created from a declarative
// [Template] with [NewSignalFactory]. Each instance has private state that
// only changes through its own SetState.
//
// The package provides a few signals out of the box:
//   - [ManualSignal]: settles when its Trigger method is called;
//   - [AnySignal]: settles when the first of some other signals does;
//   - [Timeout]: settles after a delay on a [Clock];
//   - [EventSignal]: settles when an [Emitter] emits an event;
//   - [Go]: settles with the results of a function run in a goroutine;
//   - [ControlSignal]: settles whenever a procedure of its own emits;
//   - [Var], [WaitGroup] and [Semaphore]: synchronization primitives that
//     can be awaited.
//
// # Procedures
//
// A [Procedure] is a function that returns a [Step], the same way a state
// machine returns its next state. [Coroutine.Await] and [Coroutine.Yield]
// suspend, [Coroutine.Transition] switches procedures, [Coroutine.Return]
// and [Coroutine.Throw] finish.
// When a straight-line style reads better, [Sequential] turns a function
// that calls await into a Procedure.
//
// # Invokable Coroutines
//
// [Invokable] builds functions whose calls are the signals: the procedure
// behind an [Invocation] awaits invocation signals, and each call of the
// Invocation both resumes it and returns a value the procedure decided on.
// Throttling, debouncing and the like become a few lines of sequential code
// (see package funcs).
//
// # Single-Threaded by Design
//
// Completions, signals and coroutines are not safe for concurrent use.
// Code running in other goroutines hands work over through an [Executor],
// which runs spawned functions one at a time.
// The Executor's Spawn method is also a [RunStrategy]: passing it to
// [ChangeRunStrategy] defers every coroutine resumption instead of running
// it synchronously.
//
// # Faults
//
// When an awaited completion rejects, the error is raised inside the
// procedure at that suspension point. A procedure that does not take it
// with [Coroutine.Recover] fails, and so does one that panics.
// A failed coroutine rejects its [Coroutine.Done] completion; if nobody
// watches that completion, the fault is logged as unhandled.
package gimgen
