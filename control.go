package gimgen

var controlSignalFactory = NewSignalFactory("controlSignal", Template{
	InitialStateFunc: func(args ...any) any {
		define := args[0].(func(emit func(args ...any)) Procedure)
		trigger := NewManualSignal()
		RunWithOptions(define(trigger.Trigger), WithName("controlSignal"))
		return trigger
	},
	CreateCompletion: func(ctx Context, _ ...any) *Completion {
		return ctx.State.(*ManualSignal).CreateCompletion()
	},
})

// ControlSignal returns a signal that is driven by a procedure of its own,
// for controlling other signals in finer detail.
//
// define is called once with an emit function, and the [Procedure] it
// returns starts running right away in a new [Coroutine].
// Every call of emit resolves the completions of the returned signal that
// are pending, with emit's arguments as a []any.
func ControlSignal(define func(emit func(args ...any)) Procedure) *SignalInstance {
	return controlSignalFactory(define)
}
