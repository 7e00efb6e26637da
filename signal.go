package gimgen

import (
	"fmt"
	"maps"
)

// Signal is the interface of anything a [Coroutine] can await.
//
// CreateCompletion is called by the driver every time a coroutine awaits
// the signal, so one signal may have many completions outstanding at once.
// String returns a label for diagnostics.
type Signal interface {
	fmt.Stringer
	CreateCompletion() *Completion
}

// Context is the instance context of a [SignalInstance].
// It is passed as the first argument to a [Template]'s CreateCompletion
// function and to each of its methods.
type Context struct {
	State    any
	SetState func(v any)
}

// CompletionFunc creates a [Completion] for a signal instance.
// args are the arguments the instance was created with.
type CompletionFunc func(ctx Context, args ...any) *Completion

// Method is an auxiliary operation of a [Template].
// When called through a [SignalInstance], ctx is supplied implicitly.
type Method func(ctx Context, args ...any) any

// Template declares what a [Factory] builds.
//
// CreateCompletion is required.
// The initial state of an instance is InitialStateFunc applied to the
// instance arguments if InitialStateFunc is not nil, or InitialState
// otherwise.
type Template struct {
	CreateCompletion CompletionFunc
	InitialState     any
	InitialStateFunc func(args ...any) any
	Methods          map[string]Method
}

// Factory creates signal instances. Each call returns an independent
// instance with its own state.
type Factory func(args ...any) *SignalInstance

// NewSignalFactory returns a [Factory] that builds instances of t, labeled
// with name.
func NewSignalFactory(name string, t Template) Factory {
	if t.CreateCompletion == nil {
		panic("gimgen: signal template " + name + " has no CreateCompletion")
	}

	createCompletion := t.CreateCompletion
	initialState := t.InitialStateFunc
	if initialState == nil {
		v := t.InitialState
		initialState = func(...any) any { return v }
	}
	methods := maps.Clone(t.Methods)

	return func(args ...any) *SignalInstance {
		s := &SignalInstance{
			name:             name,
			args:             args,
			createCompletion: createCompletion,
		}
		s.state = initialState(args...)
		if len(methods) != 0 {
			s.methods = make(map[string]func(args ...any) any, len(methods))
			for key, m := range methods {
				s.methods[key] = bindContext(m, s.context)
			}
		}
		return s
	}
}

// SignalFactoryFunc is shorthand for a [NewSignalFactory] call with
// a [Template] that only has CreateCompletion.
func SignalFactoryFunc(name string, f CompletionFunc) Factory {
	return NewSignalFactory(name, Template{CreateCompletion: f})
}

func bindContext(m Method, getContext func() Context) func(args ...any) any {
	return func(args ...any) any {
		return m(getContext(), args...)
	}
}

// A SignalInstance is a [Signal] created by a [Factory].
type SignalInstance struct {
	name             string
	args             []any
	state            any
	createCompletion CompletionFunc
	methods          map[string]func(args ...any) any
}

func (s *SignalInstance) context() Context {
	return Context{State: s.state, SetState: s.setState}
}

func (s *SignalInstance) setState(v any) {
	s.state = v
}

// String returns the name of the factory that created s.
func (s *SignalInstance) String() string {
	return s.name
}

// CreateCompletion implements the [Signal] interface.
func (s *SignalInstance) CreateCompletion() *Completion {
	return s.createCompletion(s.context(), s.args...)
}

// State returns the current state of s.
func (s *SignalInstance) State() any {
	return s.state
}

// Args returns the arguments s was created with.
func (s *SignalInstance) Args() []any {
	return s.args
}

// Method returns the auxiliary method called name, with the instance
// context already bound.
func (s *SignalInstance) Method(name string) (func(args ...any) any, bool) {
	m, ok := s.methods[name]
	return m, ok
}

// Call calls the auxiliary method called name.
func (s *SignalInstance) Call(name string, args ...any) (any, error) {
	m, ok := s.methods[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrNoSuchMethod, s.name, name)
	}
	return m(args...), nil
}
