package gimgen

import "iter"

// AwaitFunc suspends a sequential body until s settles, and returns what s
// settled with.
type AwaitFunc func(s Signal) (any, error)

// Sequential turns a straight-line function into a [Procedure].
//
// Each call of await in body becomes a suspension point of the driving
// [Coroutine]. When the awaited signal rejects, await returns the error;
// what body does with it is up to body. When body returns, the coroutine
// finishes with body's results: a non-nil error fails it.
//
// The returned Procedure is a single instance. It must be driven by at most
// one Coroutine. While suspended, body is parked on its own stack, which is
// only released when body returns.
func Sequential(body func(await AwaitFunc) (any, error)) Procedure {
	var (
		in        any
		inErr     error
		result    any
		resultErr error
	)

	seq := func(yield func(Signal) bool) {
		await := func(s Signal) (any, error) {
			if s == nil {
				return nil, ErrNilSignal
			}
			if !yield(s) {
				panic(ErrStopped)
			}
			return in, inErr
		}
		result, resultErr = body(await)
	}

	next, stop := iter.Pull(seq)
	started := false

	return func(co *Coroutine) Step {
		if started {
			in, inErr = co.Received(), co.Recover()
		}
		started = true

		s, ok := next()
		if !ok {
			stop()
			if resultErr != nil {
				return co.Throw(resultErr)
			}
			return co.Return(result)
		}

		return co.Await(s)
	}
}
