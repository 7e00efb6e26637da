package gimgen

import (
	"context"
	"log/slog"

	"github.com/hashicorp/go-metrics"
)

// State is the state of a [Coroutine].
type State uint8

const (
	Running   State = iota // Running a step of its procedure.
	Suspended              // Awaiting the completion of a signal.
	Done                   // Returned.
	Failed                 // Threw, panicked, or left a fault unrecovered.
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Suspended:
		return "suspended"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

type action uint8

const (
	_ action = iota
	doAwait
	doYield
	doTransition
	doReturn
	doThrow
)

const (
	flagRunning = 1 << iota
	flagResumed
)

// A Step is the return value of a [Procedure].
// It tells the driving [Coroutine] what to do next.
//
// A Step can be created by calling one of the following methods:
//   - [Coroutine.Await]: for suspending until a signal settles, and then
//     running the same procedure again;
//   - [Coroutine.Yield]: for suspending until a signal settles, and then
//     running another procedure;
//   - [Coroutine.Transition]: for running another procedure right away;
//   - [Coroutine.Return]: for finishing with a value;
//   - [Coroutine.End]: for finishing without a value;
//   - [Coroutine.Throw]: for failing with an error.
type Step struct {
	action action
	signal Signal
	next   Procedure
	value  any
	err    error
}

// Done reports whether s finishes the coroutine, either way.
func (s Step) Done() bool {
	return s.action == doReturn || s.action == doThrow
}

// Signal returns the signal s awaits, if any.
func (s Step) Signal() Signal {
	return s.signal
}

// A Procedure is a piece of sequential logic driven by a [Coroutine].
// Each call runs until the next suspension point and returns a [Step].
//
// The argument co must not escape.
type Procedure func(co *Coroutine) Step

// A ProcedureFactory creates a [Procedure] instance from some arguments.
type ProcedureFactory func(args ...any) Procedure

// A Coroutine drives one instance of a [Procedure].
//
// The procedure suspends by returning a [Step] that awaits a [Signal].
// The coroutine creates a completion from the signal and, once it settles,
// calls the procedure again with the settled value available through
// [Coroutine.Received]. If the completion rejects instead, the error is
// raised at that suspension point; the procedure can take it with
// [Coroutine.Recover], otherwise the coroutine fails with it.
//
// Resumption is routed through the process-wide [RunStrategy].
type Coroutine struct {
	flag        uint8
	state       State
	proc        Procedure
	awaiting    Signal
	received    any
	fault       error
	result      any
	err         error
	done        *Completion
	resolveDone func(v any)
	rejectDone  func(err error)
	opts        *options
	labels      []metrics.Label
}

// New returns a function that, each time it is called, creates a procedure
// instance with f and the given arguments, and starts driving it in a new
// [Coroutine].
func New(f ProcedureFactory) func(args ...any) *Coroutine {
	return NewWithOptions(f)
}

// NewWithOptions is like [New] but configures each coroutine with opts.
func NewWithOptions(f ProcedureFactory, opts ...Option) func(args ...any) *Coroutine {
	o := buildOptions(opts)
	return func(args ...any) *Coroutine {
		co := newCoroutine(&o)
		co.start(func() Procedure { return f(args...) })
		return co
	}
}

// Run starts driving p in a new [Coroutine].
func Run(p Procedure) *Coroutine {
	return RunWithOptions(p)
}

// RunWithOptions is like [Run] but configures the coroutine with opts.
func RunWithOptions(p Procedure, opts ...Option) *Coroutine {
	o := buildOptions(opts)
	co := newCoroutine(&o)
	co.start(func() Procedure { return p })
	return co
}

func newCoroutine(o *options) *Coroutine {
	co := &Coroutine{opts: o}
	co.done, co.resolveDone, co.rejectDone = NewCompletion()
	co.labels = append(append(co.labels, o.metricLabels...), LabelCoroutine.M(o.name))
	return co
}

func (co *Coroutine) start(newProc func() Procedure) {
	co.opts.sink().IncrCounterWithLabels(MetricCoroutineStarted, 1, co.labels)

	if err := try(func() { co.proc = newProc() }); err != nil {
		co.fail(err)
		return
	}

	if co.proc == nil {
		co.fail(ErrNilProcedure)
		return
	}

	co.run()
}

func (co *Coroutine) resume(v any, err error) {
	if co.state != Suspended {
		return
	}

	co.state = Running
	co.awaiting = nil
	co.received, co.fault = v, err

	co.opts.sink().IncrCounterWithLabels(MetricCoroutineResumed, 1, co.labels)

	if co.flag&flagRunning != 0 {
		co.flag |= flagResumed
		return
	}

	co.run()
}

func (co *Coroutine) run() {
	co.flag |= flagRunning

	for {
		co.flag &^= flagResumed

		c := co.step()
		if c == nil {
			break
		}

		c.Then(
			func(v any) {
				CurrentRunStrategy()(func() { co.resume(v, nil) })
			},
			func(err error) {
				CurrentRunStrategy()(func() { co.resume(nil, err) })
			},
		)

		// A completion that has already settled resumes co synchronously;
		// loop instead of recursing.
		if co.flag&flagResumed == 0 {
			break
		}
	}

	co.flag &^= flagRunning
}

// step runs the procedure until it suspends or finishes.
// It returns the completion to wait for, or nil if co has finished.
func (co *Coroutine) step() *Completion {
	for {
		var s Step

		if err := try(func() { s = co.proc(co) }); err != nil {
			co.fail(err)
			return nil
		}

		if fault := co.fault; fault != nil && s.action != doThrow {
			co.fault = nil
			co.fail(fault)
			return nil
		}

		co.fault = nil

		switch s.action {
		case doAwait, doYield:
			if s.signal == nil {
				co.fail(ErrNilSignal)
				return nil
			}

			if s.next != nil {
				co.proc = s.next
			}

			var c *Completion
			if err := try(func() { c = s.signal.CreateCompletion() }); err != nil {
				co.fail(&SignalError{Signal: s.signal, Err: err})
				return nil
			}

			if c == nil {
				co.fail(&SignalError{Signal: s.signal, Err: ErrNilCompletion})
				return nil
			}

			co.state = Suspended
			co.awaiting = s.signal

			if co.debugEnabled() {
				co.opts.log().Debug("coroutine suspended", LabelCoroutine.L(co.opts.name), LabelSignal.L(s.signal))
			}

			return c
		case doTransition:
			co.proc = s.next
		case doReturn:
			co.finish(s.value)
			return nil
		case doThrow:
			co.fail(s.err)
			return nil
		default:
			co.fail(ErrInvalidStep)
			return nil
		}
	}
}

func (co *Coroutine) finish(v any) {
	co.state = Done
	co.result = v
	co.proc = nil

	co.opts.sink().IncrCounterWithLabels(MetricCoroutineDone, 1, co.labels)

	if co.debugEnabled() {
		co.opts.log().Debug("coroutine done", LabelCoroutine.L(co.opts.name))
	}

	co.resolveDone(v)
}

func (co *Coroutine) fail(err error) {
	co.state = Failed
	co.err = err
	co.proc = nil

	co.opts.sink().IncrCounterWithLabels(MetricCoroutineFailed, 1, co.labels)

	if !co.done.Observed() {
		co.opts.log().Error("unhandled coroutine fault", LabelCoroutine.L(co.opts.name), LabelError.L(err))
	}

	co.rejectDone(err)
}

func (co *Coroutine) debugEnabled() bool {
	return co.opts.log().Enabled(context.Background(), slog.LevelDebug)
}

// Await returns a [Step] that suspends co until s settles, and then runs
// the current procedure again.
func (co *Coroutine) Await(s Signal) Step {
	return Step{action: doAwait, signal: s}
}

// Yield returns a [Step] that suspends co until s settles, and then runs
// next instead of the current procedure.
func (co *Coroutine) Yield(s Signal, next Procedure) Step {
	if next == nil {
		panic("Yield(s, nil): undefined behavior")
	}
	return Step{action: doYield, signal: s, next: next}
}

// Transition returns a [Step] that makes co run next right away.
func (co *Coroutine) Transition(next Procedure) Step {
	if next == nil {
		panic("Transition(nil): undefined behavior")
	}
	return Step{action: doTransition, next: next}
}

// Return returns a [Step] that finishes co with v.
func (co *Coroutine) Return(v any) Step {
	return Step{action: doReturn, value: v}
}

// End returns a [Step] that finishes co without a value.
func (co *Coroutine) End() Step {
	return Step{action: doReturn}
}

// Throw returns a [Step] that fails co with err.
func (co *Coroutine) Throw(err error) Step {
	if err == nil {
		panic("Throw(nil): undefined behavior")
	}
	return Step{action: doThrow, err: err}
}

// Received returns the value the most recently awaited signal resolved with.
func (co *Coroutine) Received() any {
	return co.received
}

// Fault returns the error raised at the current suspension point, if any,
// without recovering it.
func (co *Coroutine) Fault() error {
	return co.fault
}

// Recover returns the error raised at the current suspension point and
// stops it from failing co.
// If the awaited signal did not reject, Recover returns nil.
func (co *Coroutine) Recover() error {
	err := co.fault
	co.fault = nil
	return err
}

// State returns the state of co.
func (co *Coroutine) State() State {
	return co.state
}

// Awaiting returns the signal co is suspended on, or nil.
func (co *Coroutine) Awaiting() Signal {
	return co.awaiting
}

// Result returns what co finished with.
// Both are zero while co has not finished.
func (co *Coroutine) Result() (any, error) {
	return co.result, co.err
}

// Done returns a [Completion] that resolves with the value co returns, or
// rejects with the error co fails with.
//
// A coroutine that fails while nobody has registered a continuation on its
// Done completion reports the fault to its logger as unhandled.
func (co *Coroutine) Done() *Completion {
	return co.done
}

// Name returns the name co was given with [WithName].
func (co *Coroutine) Name() string {
	return co.opts.name
}
