// Package funcs provides function wrappers built on invokable coroutines:
// [Once], [After], [Throttle] and [Debounce].
//
// Each of them is a short sequential procedure driven by
// [gimgen.Invokable]; the returned [gimgen.Invocation] is the wrapped
// function.
//
// Like everything in gimgen, the returned functions are not safe for
// concurrent use. Timers are scheduled on a [gimgen.Clock]; with
// a [gimgen.RealClock], the wrapped functions run on its executor.
package funcs
