package funcs_test

import (
	"testing"
	"time"

	"github.com/b97tsk/gimgen"
	"github.com/b97tsk/gimgen/funcs"
	"github.com/stretchr/testify/assert"
)

func TestOnce(t *testing.T) {
	calls := 0

	f := funcs.Once(func(args ...any) any {
		calls++
		return args[0].(int) * 2
	})

	assert.Equal(t, 6, f(3))
	assert.Equal(t, 6, f(4))
	assert.Equal(t, 6, f(5))
	assert.Equal(t, 1, calls)

	g := funcs.Once(func(...any) any { calls++; return "g" })
	assert.Equal(t, "g", g())
	assert.Equal(t, 2, calls)
}

func TestAfter(t *testing.T) {
	calls := 0

	f := funcs.After(2, func(args ...any) any {
		calls++
		return args
	})

	assert.Nil(t, f(1))
	assert.Nil(t, f(2))
	assert.Equal(t, 0, calls)
	assert.Equal(t, []any{3}, f(3))
	assert.Equal(t, []any{4}, f(4))
	assert.Equal(t, 2, calls)

	g := funcs.After(0, func(...any) any { return "now" })
	assert.Equal(t, "now", g())
}

func TestThrottle(t *testing.T) {
	clock := gimgen.NewManualClock(time.Time{})
	fired := 0

	f := funcs.Throttle(clock, time.Second, func() { fired++ })

	f()
	f()
	clock.Advance(500 * time.Millisecond)
	f()
	assert.Equal(t, 0, fired)

	clock.Advance(500 * time.Millisecond)
	assert.Equal(t, 1, fired)

	clock.Advance(5 * time.Second)
	assert.Equal(t, 1, fired)

	f()
	clock.Advance(time.Second)
	assert.Equal(t, 2, fired)
}

func TestDebounce(t *testing.T) {
	clock := gimgen.NewManualClock(time.Time{})
	fired := 0

	f := funcs.Debounce(clock, time.Second, func() { fired++ })

	f()
	clock.Advance(900 * time.Millisecond)
	f()
	clock.Advance(900 * time.Millisecond)
	assert.Equal(t, 0, fired)

	clock.Advance(150 * time.Millisecond)
	assert.Equal(t, 1, fired)

	clock.Advance(10 * time.Second)
	assert.Equal(t, 1, fired)

	f()
	f()
	clock.Advance(time.Second)
	assert.Equal(t, 2, fired)
}
