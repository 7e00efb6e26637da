package funcs

import (
	"time"

	"github.com/b97tsk/gimgen"
)

var once = gimgen.InvokableWithOptions(func(iv gimgen.Invoked) gimgen.ProcedureFactory {
	return func(args ...any) gimgen.Procedure {
		fn := args[0].(func(args ...any) any)

		var val any

		remember := func(co *gimgen.Coroutine) gimgen.Step {
			return co.Await(iv.Signal(func() any { return val }))
		}

		return func(co *gimgen.Coroutine) gimgen.Step {
			return co.Yield(iv.Signal(func(args ...any) any {
				val = fn(args...)
				return val
			}), remember)
		}
	}
}, gimgen.WithName("once"))

// Once returns a function that calls fn the first time it is called, and
// returns what that call returned every time after.
func Once(fn func(args ...any) any) gimgen.Invocation {
	return once(fn)
}

var after = gimgen.InvokableWithOptions(func(iv gimgen.Invoked) gimgen.ProcedureFactory {
	return func(args ...any) gimgen.Procedure {
		count, fn := args[0].(int), args[1].(func(args ...any) any)

		forever := func(co *gimgen.Coroutine) gimgen.Step {
			return co.Await(iv.Signal(fn))
		}

		i := 0

		return func(co *gimgen.Coroutine) gimgen.Step {
			if i < count {
				i++
				return co.Await(iv.Signal(func() any { return nil }))
			}
			return co.Transition(forever)
		}
	}
}, gimgen.WithName("after"))

// After returns a function that does nothing and returns nil the first
// count times it is called, and calls fn every time after.
func After(count int, fn func(args ...any) any) gimgen.Invocation {
	return after(count, fn)
}

var throttle = gimgen.InvokableWithOptions(func(iv gimgen.Invoked) gimgen.ProcedureFactory {
	return func(args ...any) gimgen.Procedure {
		c, d, fn := args[0].(gimgen.Clock), args[1].(time.Duration), args[2].(func())

		var wait, sleep, fire gimgen.Procedure

		wait = func(co *gimgen.Coroutine) gimgen.Step {
			return co.Yield(iv.Signal(nil), sleep)
		}
		sleep = func(co *gimgen.Coroutine) gimgen.Step {
			return co.Yield(gimgen.Timeout(c, d), fire)
		}
		fire = func(co *gimgen.Coroutine) gimgen.Step {
			fn()
			return co.Transition(wait)
		}

		return wait
	}
}, gimgen.WithName("throttle"))

// Throttle returns a function that, when called, schedules fn to be called
// d later, unless a call is already scheduled.
// Calls made while one is scheduled are dropped.
func Throttle(c gimgen.Clock, d time.Duration, fn func()) gimgen.Invocation {
	return throttle(c, d, fn)
}

var debounce = gimgen.InvokableWithOptions(func(iv gimgen.Invoked) gimgen.ProcedureFactory {
	return func(args ...any) gimgen.Procedure {
		c, d, fn := args[0].(gimgen.Clock), args[1].(time.Duration), args[2].(func())

		return gimgen.Sequential(func(await gimgen.AwaitFunc) (any, error) {
			if _, err := await(iv.Signal(nil)); err != nil {
				return nil, err
			}
			for {
				timePassed := gimgen.Timeout(c, d)
				v, err := await(gimgen.AnySignal(timePassed, iv.Signal(nil)))
				if err != nil {
					return nil, err
				}
				if v.(gimgen.AnyResult).Signal == gimgen.Signal(timePassed) {
					fn()
					if _, err := await(iv.Signal(nil)); err != nil {
						return nil, err
					}
				}
			}
		})
	}
}, gimgen.WithName("debounce"))

// Debounce returns a function that, when called, schedules fn to be called
// d later. Each call made before that pushes the schedule back to d after
// the latest call.
func Debounce(c gimgen.Clock, d time.Duration, fn func()) gimgen.Invocation {
	return debounce(c, d, fn)
}
