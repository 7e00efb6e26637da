package gimgen

import "time"

// TimeoutFactory returns a [Factory] of timeout signals scheduled on c.
// The factory takes one argument, a [time.Duration].
//
// Every completion of a timeout signal starts its own timer and resolves
// with c.Now() when the timer fires. Abandoning a completion stops its
// timer.
func TimeoutFactory(c Clock) Factory {
	return SignalFactoryFunc("timeoutSignal", func(_ Context, args ...any) *Completion {
		var d time.Duration
		if len(args) != 0 {
			d, _ = args[0].(time.Duration)
		}
		comp, resolve, _ := NewCompletion()
		stop := c.AfterFunc(d, func() { resolve(c.Now()) })
		comp.OnAbandon(func() { stop() })
		return comp
	})
}

// Timeout returns a signal that settles d after each time it is awaited.
func Timeout(c Clock, d time.Duration) *SignalInstance {
	return TimeoutFactory(c)(d)
}
