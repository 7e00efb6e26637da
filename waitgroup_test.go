package gimgen_test

import (
	"testing"

	"github.com/b97tsk/gimgen"
	"github.com/stretchr/testify/assert"
)

func TestWaitGroup(t *testing.T) {
	t.Run("ZeroResolvesRightAway", func(t *testing.T) {
		var wg gimgen.WaitGroup

		co := gimgen.Run(func(co *gimgen.Coroutine) gimgen.Step {
			return co.Yield(&wg, func(co *gimgen.Coroutine) gimgen.Step {
				return co.Return("done")
			})
		})

		v, _ := co.Result()
		assert.Equal(t, "done", v)
	})
	t.Run("WaitForWorkers", func(t *testing.T) {
		var wg gimgen.WaitGroup

		work := gimgen.NewManualSignal()
		finished := 0

		for range 3 {
			wg.Add(1)
			gimgen.Run(func(co *gimgen.Coroutine) gimgen.Step {
				return co.Yield(work, func(co *gimgen.Coroutine) gimgen.Step {
					finished++
					wg.Done()
					return co.End()
				})
			})
		}

		assert.Equal(t, 3, wg.Count())

		co := gimgen.Run(func(co *gimgen.Coroutine) gimgen.Step {
			return co.Yield(&wg, func(co *gimgen.Coroutine) gimgen.Step {
				return co.Return(finished)
			})
		})

		assert.Equal(t, gimgen.Suspended, co.State())

		work.Trigger()

		assert.Equal(t, 0, wg.Count())
		v, _ := co.Result()
		assert.Equal(t, 3, v)
	})
	t.Run("NegativeCounter", func(t *testing.T) {
		var wg gimgen.WaitGroup
		assert.Panics(t, wg.Done)
	})
}
