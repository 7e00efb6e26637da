package gimgen

import (
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

// An Event is what an [Emitter] delivers to its listeners.
type Event struct {
	Name string
	Data any
}

type listener struct {
	f func(ev Event)
}

// listenerSet keeps the listeners of one event name, in the order they
// were added.
type listenerSet struct {
	members mapset.Set[*listener]
	order   []*listener
}

// An Emitter is a named-event source.
// It stands for whatever external event source a program bridges into
// signals, see [EventSignal].
//
// Listeners of the same event are called in the order they were added.
//
// An Emitter must not be shared by more than one [Executor].
type Emitter struct {
	listeners map[string]*listenerSet
}

// On adds f as a listener of the event called name.
// The returned function removes it. Calling it more than once is fine.
func (em *Emitter) On(name string, f func(ev Event)) (off func()) {
	if em.listeners == nil {
		em.listeners = make(map[string]*listenerSet)
	}
	set := em.listeners[name]
	if set == nil {
		set = &listenerSet{members: mapset.NewThreadUnsafeSet[*listener]()}
		em.listeners[name] = set
	}
	l := &listener{f}
	set.members.Add(l)
	set.order = append(set.order, l)
	return func() {
		if !set.members.Contains(l) {
			return
		}
		set.members.Remove(l)
		set.order = slices.DeleteFunc(set.order, func(x *listener) bool { return x == l })
		if set.members.Cardinality() == 0 && em.listeners[name] == set {
			delete(em.listeners, name)
		}
	}
}

// Emit calls every listener of the event called name that is registered
// at the time of the call, in the order they were added.
// A listener removed by an earlier one during the same Emit is skipped.
func (em *Emitter) Emit(name string, data any) {
	set := em.listeners[name]
	if set == nil {
		return
	}
	ev := Event{Name: name, Data: data}
	for _, l := range slices.Clone(set.order) {
		if set.members.Contains(l) {
			l.f(ev)
		}
	}
}

// ListenerCount returns the number of listeners of the event called name.
func (em *Emitter) ListenerCount(name string) int {
	if set := em.listeners[name]; set != nil {
		return set.members.Cardinality()
	}
	return 0
}

// EventSignal returns a signal that settles, with an [Event], the next time
// em emits the event called name after the signal is awaited.
// Each completion listens once. An abandoned completion stops listening.
//
// The signal has a "lastEvent" method, see [LastEvent].
func EventSignal(em *Emitter, name string) *SignalInstance {
	return NewSignalFactory("event "+name, Template{
		CreateCompletion: func(ctx Context, _ ...any) *Completion {
			c, resolve, _ := NewCompletion()
			var off func()
			off = em.On(name, func(ev Event) {
				off()
				ctx.SetState(ev)
				resolve(ev)
			})
			c.OnAbandon(off)
			return c
		},
		Methods: map[string]Method{
			"lastEvent": func(ctx Context, _ ...any) any {
				return ctx.State
			},
		},
	})()
}

// LastEvent returns the event the signal s, created by [EventSignal], most
// recently settled with.
func LastEvent(s *SignalInstance) (Event, bool) {
	v, err := s.Call("lastEvent")
	if err != nil {
		return Event{}, false
	}
	ev, ok := v.(Event)
	return ev, ok
}
