package gimgen_test

import (
	"testing"

	"github.com/b97tsk/gimgen"
	"github.com/stretchr/testify/assert"
)

func TestVar(t *testing.T) {
	x := gimgen.NewVar(1)

	var seen []int

	co := gimgen.Run(func(co *gimgen.Coroutine) gimgen.Step {
		if v, ok := co.Received().(int); ok {
			seen = append(seen, v)
		}
		if x.Get() >= 10 {
			return co.Return(x.Get())
		}
		return co.Await(x)
	})

	assert.Equal(t, 1, x.Get())
	assert.Equal(t, gimgen.Suspended, co.State())

	x.Set(2)
	x.Update(func(v int) int { return v * 3 })
	x.Set(10)
	x.Set(11)

	assert.Equal(t, []int{2, 6, 10}, seen)
	assert.Equal(t, 11, x.Get())

	v, err := co.Result()
	assert.Equal(t, 10, v)
	assert.NoError(t, err)
}
