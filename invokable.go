package gimgen

import (
	"fmt"
	"reflect"
)

// A Getter computes the value an [Invocation] returns from the arguments it
// is called with.
type Getter func(args ...any) any

// An Invocation is the function [Invokable] hands out. Calling it resumes
// the coroutine behind it, if the coroutine is waiting for a call, and
// returns a value decided by the coroutine's most recent invocation signal.
type Invocation func(args ...any) any

// Invoked creates invocation signals for the procedure of an [Invokable].
// An invocation signal resolves, with the arguments as a []any, the next time
// the [Invocation] is called.
type Invoked struct {
	w *invocationWaiter
}

type invocationWaiter struct {
	signal *ManualSignal
	getter Getter
}

// Signal returns an invocation signal.
//
// If x is a non-nil function, the next call of the Invocation returns what
// x returns for the call's arguments.
// Otherwise, the next call returns x.
//
// Functions of any type are accepted. Arguments are assigned or converted
// to x's parameter types; missing ones are zero values and extra ones are
// dropped, unless x is variadic. The first result of x, if any, is what
// the Invocation returns. An argument that does not fit makes the
// Invocation panic.
func (iv Invoked) Signal(x any) *ManualSignal {
	switch f := x.(type) {
	case Getter:
		return iv.w.setup(f)
	case func(...any) any:
		return iv.w.setup(f)
	case func() any:
		return iv.w.setup(func(...any) any { return f() })
	}
	if v := reflect.ValueOf(x); v.Kind() == reflect.Func && !v.IsNil() {
		return iv.w.setup(funcGetter(v))
	}
	return iv.Exact(x)
}

// funcGetter adapts a function value of any type to a Getter.
func funcGetter(fn reflect.Value) Getter {
	t := fn.Type()
	return func(args ...any) any {
		n := t.NumIn()
		if t.IsVariadic() {
			n = max(n-1, len(args))
		}
		in := make([]reflect.Value, n)
		for i := range in {
			var pt reflect.Type
			switch {
			case i < t.NumIn()-1 || !t.IsVariadic():
				pt = t.In(i)
			default:
				pt = t.In(t.NumIn() - 1).Elem()
			}
			var arg any
			if i < len(args) {
				arg = args[i]
			}
			in[i] = argValue(arg, pt, i)
		}
		out := fn.Call(in)
		if len(out) == 0 {
			return nil
		}
		return out[0].Interface()
	}
}

func argValue(arg any, t reflect.Type, i int) reflect.Value {
	if arg == nil {
		return reflect.Zero(t)
	}
	v := reflect.ValueOf(arg)
	switch {
	case v.Type().AssignableTo(t):
		return v
	case v.Type().ConvertibleTo(t):
		return v.Convert(t)
	}
	panic(fmt.Sprintf("gimgen: invocation argument %d: %v does not fit %v", i, v.Type(), t))
}

// Exact is like Signal but always makes the next call of the Invocation
// return x, even if x is a function.
func (iv Invoked) Exact(x any) *ManualSignal {
	return iv.w.setup(func(...any) any { return x })
}

func (w *invocationWaiter) setup(g Getter) *ManualSignal {
	w.getter = g
	w.signal = NewManualSignal()
	return w.signal
}

func (w *invocationWaiter) invoke(args ...any) any {
	// Take the getter first: triggering may resume the coroutine, which may
	// set up the next invocation signal right away.
	v := w.getter(args...)
	if s := w.signal; s != nil {
		s.Trigger(args...)
	}
	return v
}

// Invokable returns a constructor of invokable coroutines.
//
// Each call of the constructor calls define with fresh invocation helpers,
// starts driving the procedure created by the returned [ProcedureFactory]
// with the constructor's arguments, and returns the [Invocation] that
// drives it further.
//
// Until the procedure creates its first invocation signal, calling the
// Invocation returns nil and does nothing else. After the procedure
// finishes, the Invocation keeps using its last getter.
func Invokable(define func(iv Invoked) ProcedureFactory) func(args ...any) Invocation {
	return InvokableWithOptions(define)
}

// InvokableWithOptions is like [Invokable] but configures each coroutine
// with opts.
func InvokableWithOptions(define func(iv Invoked) ProcedureFactory, opts ...Option) func(args ...any) Invocation {
	o := buildOptions(opts)
	return func(args ...any) Invocation {
		w := &invocationWaiter{getter: func(...any) any { return nil }}
		f := define(Invoked{w})
		co := newCoroutine(&o)
		co.start(func() Procedure { return f(args...) })
		return func(args ...any) any {
			o.sink().IncrCounterWithLabels(MetricInvocationCount, 1, co.labels)
			return w.invoke(args...)
		}
	}
}
