package gimgen

type completionState uint8

const (
	completionPending completionState = iota
	completionResolved
	completionRejected
)

// A Completion is a one-shot container for the result of an asynchronous
// operation. It settles at most once, either resolved with a value or
// rejected with an error.
//
// Continuations can be registered with the Then method at any time.
// Registering after settlement fires the continuation immediately with
// the stored result. Every registration is notified, in registration order.
//
// A Completion must not be shared by more than one [Executor].
type Completion struct {
	state         completionState
	value         any
	err           error
	continuations []continuation
	abandoned     bool
	onAbandon     []func()
}

type continuation struct {
	onResolve func(v any)
	onReject  func(err error)
}

// NewCompletion creates a pending [Completion], along with functions to
// resolve or reject it. Only the first call of either function has an
// effect.
func NewCompletion() (c *Completion, resolve func(v any), reject func(err error)) {
	c = new(Completion)
	resolve = func(v any) { c.settle(completionResolved, v, nil) }
	reject = func(err error) {
		if err == nil {
			panic("gimgen: completion rejected with nil error")
		}
		c.settle(completionRejected, nil, err)
	}
	return c, resolve, reject
}

// Resolved returns a [Completion] already resolved with v.
func Resolved(v any) *Completion {
	return &Completion{state: completionResolved, value: v}
}

// Rejected returns a [Completion] already rejected with err.
func Rejected(err error) *Completion {
	if err == nil {
		panic("gimgen: completion rejected with nil error")
	}
	return &Completion{state: completionRejected, err: err}
}

// Then registers a continuation on c.
// Either function may be nil, in which case that outcome is ignored.
func (c *Completion) Then(onResolve func(v any), onReject func(err error)) {
	switch c.state {
	case completionResolved:
		if onResolve != nil {
			onResolve(c.value)
		}
	case completionRejected:
		if onReject != nil {
			onReject(c.err)
		}
	default:
		c.continuations = append(c.continuations, continuation{onResolve, onReject})
	}
}

// OnAbandon registers f to be called if c is abandoned while pending,
// see [Completion.Abandon]. If c is already abandoned, f is called right
// away. If c has settled, OnAbandon does nothing.
//
// A signal whose completions hold on to resources (waiter slots, timers,
// listeners) uses OnAbandon to let them go.
func (c *Completion) OnAbandon(f func()) {
	switch {
	case c.state != completionPending:
	case c.abandoned:
		f()
	default:
		c.onAbandon = append(c.onAbandon, f)
	}
}

// Abandon tells whoever is going to settle c that nobody is interested
// in the outcome anymore. It calls the functions registered with
// OnAbandon, in registration order. A pending completion stays pending;
// settling it later is allowed but no longer required.
//
// Abandon has no effect on a settled completion, or on one that has already
// been abandoned. [FirstResolved] abandons the completions that lose a race.
func (c *Completion) Abandon() {
	if c.state != completionPending || c.abandoned {
		return
	}

	c.abandoned = true

	hooks := c.onAbandon
	c.onAbandon = nil

	for _, f := range hooks {
		f()
	}
}

// Abandoned reports whether c was abandoned before it settled.
func (c *Completion) Abandoned() bool {
	return c.abandoned
}

// Settled reports whether c has been resolved or rejected.
func (c *Completion) Settled() bool {
	return c.state != completionPending
}

// Result returns the value and the error c settled with.
// Both are zero while c is pending.
func (c *Completion) Result() (any, error) {
	return c.value, c.err
}

// Observed reports whether c has any continuation waiting for it.
func (c *Completion) Observed() bool {
	return len(c.continuations) != 0
}

func (c *Completion) settle(state completionState, v any, err error) {
	if c.state != completionPending {
		return
	}

	c.state, c.value, c.err = state, v, err

	continuations := c.continuations
	c.continuations = nil
	c.onAbandon = nil

	for _, k := range continuations {
		switch state {
		case completionResolved:
			if k.onResolve != nil {
				k.onResolve(v)
			}
		case completionRejected:
			if k.onReject != nil {
				k.onReject(err)
			}
		}
	}
}
