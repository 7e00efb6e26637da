package gimgen

import (
	"slices"

	"github.com/hashicorp/go-metrics"
)

// A resolver is a pending completion of a manual signal.
// An abandoned one has a nil notify and is dropped lazily.
type resolver struct {
	notify func(args []any)
}

func (r *resolver) abandoned() bool {
	return r.notify == nil
}

var manualSignalFactory = NewSignalFactory("manualSignal", Template{
	InitialStateFunc: func(...any) any { return []*resolver(nil) },
	CreateCompletion: func(ctx Context, _ ...any) *Completion {
		c, resolve, _ := NewCompletion()
		r := &resolver{notify: func(args []any) { resolve(args) }}
		c.OnAbandon(func() { r.notify = nil })
		pending := slices.DeleteFunc(ctx.State.([]*resolver), (*resolver).abandoned)
		ctx.SetState(append(pending, r))
		return c
	},
	Methods: map[string]Method{
		"trigger": func(ctx Context, args ...any) any {
			pending := ctx.State.([]*resolver)
			ctx.SetState([]*resolver(nil))
			for _, r := range pending {
				if notify := r.notify; notify != nil {
					notify(args)
				}
			}
			return nil
		},
		"pending": func(ctx Context, _ ...any) any {
			n := 0
			for _, r := range ctx.State.([]*resolver) {
				if !r.abandoned() {
					n++
				}
			}
			return n
		},
	},
})

// A ManualSignal is a [Signal] that settles when its Trigger method is
// called, rather than on a timer or an event.
//
// Every completion created before a call of Trigger resolves with the
// arguments passed to Trigger, as a []any.
// Completions created afterwards wait for the next call. Abandoned
// completions are skipped.
//
// A ManualSignal must not be shared by more than one [Executor].
type ManualSignal struct {
	*SignalInstance
	trigger func(args ...any) any
	pending func(args ...any) any
}

// NewManualSignal creates a new [ManualSignal].
func NewManualSignal() *ManualSignal {
	s := &ManualSignal{SignalInstance: manualSignalFactory()}
	s.trigger, _ = s.Method("trigger")
	s.pending, _ = s.Method("pending")
	return s
}

// Trigger resolves every completion of s that is pending, in the order they
// were created, passing args to each of them.
//
// The pending set is cleared before any of them is notified. A completion
// created while Trigger is notifying waits for the next call.
func (s *ManualSignal) Trigger(args ...any) {
	packageMetricSink().IncrCounterWithLabels(MetricSignalTriggered, 1, []metrics.Label{LabelSignal.M(s.String())})
	s.trigger(args...)
}

// Pending returns the number of completions of s waiting for a Trigger call.
func (s *ManualSignal) Pending() int {
	return s.pending().(int)
}
