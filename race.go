package gimgen

import "errors"

// Race is the value [FirstResolved] resolves with.
type Race struct {
	Completion *Completion // The completion that settled first.
	Result     any         // The value it resolved with.
}

// FirstResolved returns a [Completion] that settles as soon as the first of
// cs does.
// If that one resolves, the returned completion resolves with a [Race].
// If it rejects, the returned completion rejects with a *[RaceError].
// Settlements after the first one are ignored.
//
// The losers are abandoned (see [Completion.Abandon]) before the returned
// completion settles. Abandoning the returned completion abandons all of cs.
//
// With no arguments, the returned completion never settles.
func FirstResolved(cs ...*Completion) *Completion {
	c, resolve, reject := NewCompletion()

	abandonAllBut := func(winner *Completion) {
		for _, other := range cs {
			if other != winner {
				other.Abandon()
			}
		}
	}

	c.OnAbandon(func() { abandonAllBut(nil) })

	for _, child := range cs {
		child.Then(
			func(v any) {
				if c.Settled() {
					return
				}
				abandonAllBut(child)
				resolve(Race{Completion: child, Result: v})
			},
			func(err error) {
				if c.Settled() {
					return
				}
				abandonAllBut(child)
				reject(&RaceError{Completion: child, Err: err})
			},
		)
	}

	return c
}

// AnyResult is the value an [AnySignal] resolves with.
type AnyResult struct {
	Signal Signal // The child signal that settled first.
	Result any    // The value it resolved with.
}

type signalCompletion struct {
	signal     Signal
	completion *Completion
}

var anySignalFactory = SignalFactoryFunc("anySignal", func(_ Context, args ...any) *Completion {
	signals := make([]Signal, len(args))
	for i, arg := range args {
		s, _ := arg.(Signal)
		if s == nil {
			return Rejected(ErrNilSignal)
		}
		signals[i] = s
	}

	pairs := make([]signalCompletion, len(signals))
	completions := make([]*Completion, len(signals))

	for i, s := range signals {
		c := s.CreateCompletion()
		if c == nil {
			for _, created := range completions[:i] {
				created.Abandon()
			}
			return Rejected(&SignalError{Signal: s, Err: ErrNilCompletion})
		}
		pairs[i] = signalCompletion{s, c}
		completions[i] = c
	}

	owner := func(c *Completion) Signal {
		for _, p := range pairs {
			if p.completion == c {
				return p.signal
			}
		}
		panic("gimgen: internal error: race winner not found")
	}

	race := FirstResolved(completions...)

	c, resolve, reject := NewCompletion()
	c.OnAbandon(race.Abandon)
	race.Then(
		func(v any) {
			r := v.(Race)
			resolve(AnyResult{Signal: owner(r.Completion), Result: r.Result})
		},
		func(err error) {
			var re *RaceError
			if errors.As(err, &re) {
				err = &SignalError{Signal: owner(re.Completion), Err: re.Err}
			}
			reject(err)
		},
	)
	return c
})

// AnySignal returns a [Signal] that settles when the first of signals does.
//
// Every time the returned signal is awaited, a completion is created for
// each of signals right away. The first one to settle decides the outcome:
// resolving yields an [AnyResult] naming the winning signal; rejecting
// yields a *[SignalError] naming it. The completions of the other signals
// are abandoned, which lets signals like [Semaphore.Acquire] and [Timeout]
// give back what they hold.
func AnySignal(signals ...Signal) *SignalInstance {
	args := make([]any, len(signals))
	for i, s := range signals {
		args[i] = s
	}
	return anySignalFactory(args...)
}
