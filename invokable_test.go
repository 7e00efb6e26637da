package gimgen_test

import (
	"testing"

	"github.com/b97tsk/gimgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvokable(t *testing.T) {
	t.Run("CallCounter", func(t *testing.T) {
		counter, resumed := 0, 0

		newCounter := gimgen.Invokable(func(iv gimgen.Invoked) gimgen.ProcedureFactory {
			return func(...any) gimgen.Procedure {
				inc := func() any { counter++; return counter }
				return func(co *gimgen.Coroutine) gimgen.Step {
					return co.Yield(iv.Signal(inc), func(co *gimgen.Coroutine) gimgen.Step {
						resumed++
						return co.Yield(iv.Signal(inc), func(co *gimgen.Coroutine) gimgen.Step {
							resumed++
							return co.End()
						})
					})
				}
			}
		})

		count := newCounter()

		assert.Equal(t, 1, count())
		assert.Equal(t, 2, count())
		assert.Equal(t, 2, resumed)

		// The coroutine is done; the last getter stays.
		assert.Equal(t, 3, count())
		assert.Equal(t, 2, resumed)
	})
	t.Run("Arguments", func(t *testing.T) {
		var received []any

		echo := gimgen.Invokable(func(iv gimgen.Invoked) gimgen.ProcedureFactory {
			return func(args ...any) gimgen.Procedure {
				prefix := args[0].(string)
				return func(co *gimgen.Coroutine) gimgen.Step {
					if v := co.Received(); v != nil {
						received = append(received, v)
					}
					return co.Await(iv.Signal(func(args ...any) any {
						return prefix + args[0].(string)
					}))
				}
			}
		})("> ")

		assert.Equal(t, "> a", echo("a", 1))
		assert.Equal(t, "> b", echo("b", 2))
		assert.Equal(t, []any{[]any{"a", 1}, []any{"b", 2}}, received)
	})
	t.Run("Exact", func(t *testing.T) {
		greet := func() any { return "hello" }

		inv := gimgen.Invokable(func(iv gimgen.Invoked) gimgen.ProcedureFactory {
			return func(...any) gimgen.Procedure {
				return func(co *gimgen.Coroutine) gimgen.Step {
					return co.Await(iv.Exact(greet))
				}
			}
		})()

		f, ok := inv().(func() any)
		require.True(t, ok)
		assert.Equal(t, "hello", f())
	})
	t.Run("Constant", func(t *testing.T) {
		inv := gimgen.Invokable(func(iv gimgen.Invoked) gimgen.ProcedureFactory {
			return func(...any) gimgen.Procedure {
				return func(co *gimgen.Coroutine) gimgen.Step {
					return co.Await(iv.Signal(42))
				}
			}
		})()

		assert.Equal(t, 42, inv())
		assert.Equal(t, 42, inv("ignored"))
	})
	t.Run("GetterTakenBeforeTrigger", func(t *testing.T) {
		inv := gimgen.Invokable(func(iv gimgen.Invoked) gimgen.ProcedureFactory {
			return func(...any) gimgen.Procedure {
				return func(co *gimgen.Coroutine) gimgen.Step {
					return co.Yield(iv.Signal("first"), func(co *gimgen.Coroutine) gimgen.Step {
						return co.Yield(iv.Signal("second"), func(co *gimgen.Coroutine) gimgen.Step {
							return co.Await(iv.Signal("third"))
						})
					})
				}
			}
		})()

		assert.Equal(t, "first", inv())
		assert.Equal(t, "second", inv())
		assert.Equal(t, "third", inv())
		assert.Equal(t, "third", inv())
	})
	t.Run("BeforeFirstSignal", func(t *testing.T) {
		gate := gimgen.NewManualSignal()
		calls := 0

		inv := gimgen.Invokable(func(iv gimgen.Invoked) gimgen.ProcedureFactory {
			return func(...any) gimgen.Procedure {
				return func(co *gimgen.Coroutine) gimgen.Step {
					return co.Yield(gate, func(co *gimgen.Coroutine) gimgen.Step {
						return co.Await(iv.Signal(func() any { calls++; return calls }))
					})
				}
			}
		})()

		assert.Nil(t, inv())
		assert.Equal(t, 0, calls)

		gate.Trigger()
		assert.Equal(t, 1, inv())
	})
	t.Run("IndependentInstances", func(t *testing.T) {
		ctor := gimgen.Invokable(func(iv gimgen.Invoked) gimgen.ProcedureFactory {
			return func(...any) gimgen.Procedure {
				n := 0
				return func(co *gimgen.Coroutine) gimgen.Step {
					n++
					return co.Await(iv.Signal(n))
				}
			}
		})

		a, b := ctor(), ctor()
		assert.Equal(t, 1, a())
		assert.Equal(t, 2, a())
		assert.Equal(t, 1, b())
	})
}

func TestInvokableTypedFuncs(t *testing.T) {
	type greeter func(name string) string

	cases := []struct {
		name string
		fn   any
		args []any
		want any
	}{
		{"VariadicString", func(a ...any) string { return "called" }, []any{"x"}, "called"},
		{"TypedParams", func(a, b int) int { return a + b }, []any{2, 3}, 5},
		{"MissingArgIsZero", func(a, b int) int { return a + b }, []any{2}, 2},
		{"ExtraArgsDropped", func(s string) string { return s + "!" }, []any{"hi", 1, 2}, "hi!"},
		{"Convertible", func(d int64) int64 { return d * 2 }, []any{21}, int64(42)},
		{"FixedAndVariadic", func(sep string, parts ...string) int { return len(parts) }, []any{",", "a", "b"}, 2},
		{"NamedFuncType", greeter(func(name string) string { return "hello " + name }), []any{"go"}, "hello go"},
		{"NoResults", func() {}, nil, nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			inv := gimgen.Invokable(func(iv gimgen.Invoked) gimgen.ProcedureFactory {
				return func(...any) gimgen.Procedure {
					return func(co *gimgen.Coroutine) gimgen.Step {
						return co.Await(iv.Signal(c.fn))
					}
				}
			})()

			assert.Equal(t, c.want, inv(c.args...))
		})
	}

	t.Run("ArgumentDoesNotFit", func(t *testing.T) {
		inv := gimgen.Invokable(func(iv gimgen.Invoked) gimgen.ProcedureFactory {
			return func(...any) gimgen.Procedure {
				return func(co *gimgen.Coroutine) gimgen.Step {
					return co.Await(iv.Signal(func(m map[string]int) int { return len(m) }))
				}
			}
		})()

		assert.Panics(t, func() { inv(1) })
	})
	t.Run("NilFuncIsConstant", func(t *testing.T) {
		var nilFunc func() string

		inv := gimgen.Invokable(func(iv gimgen.Invoked) gimgen.ProcedureFactory {
			return func(...any) gimgen.Procedure {
				return func(co *gimgen.Coroutine) gimgen.Step {
					return co.Await(iv.Signal(nilFunc))
				}
			}
		})()

		f, ok := inv().(func() string)
		require.True(t, ok)
		assert.Nil(t, f)
	})
}
