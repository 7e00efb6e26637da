package gimgen

// FromCompletion returns a signal whose every completion is c itself.
func FromCompletion(c *Completion) *SignalInstance {
	return SignalFactoryFunc("promiseSignal", func(Context, ...any) *Completion { return c })()
}

// Go runs f in a new goroutine and returns a signal that settles with f's
// results. The settlement happens in a function spawned on e, so that it
// runs on the same thread as the coroutines it resumes.
//
// f starts right away, not when the signal is first awaited.
// If f panics, the signal rejects with a *[PanicError].
func Go(e *Executor, f func() (any, error)) *SignalInstance {
	c, resolve, reject := NewCompletion()

	go func() {
		var (
			v   any
			err error
		)
		if perr := try(func() { v, err = f() }); perr != nil {
			err = perr
		}
		e.Spawn(func() {
			if err != nil {
				reject(err)
				return
			}
			resolve(v)
		})
	}()

	return FromCompletion(c)
}
