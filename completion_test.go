package gimgen_test

import (
	"errors"
	"testing"

	"github.com/b97tsk/gimgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletion(t *testing.T) {
	t.Run("ResolveOnce", func(t *testing.T) {
		c, resolve, reject := gimgen.NewCompletion()

		var got []any
		c.Then(func(v any) { got = append(got, v) }, func(error) { t.Error("rejected") })

		assert.False(t, c.Settled())
		resolve(1)
		resolve(2)
		reject(errors.New("too late"))

		assert.True(t, c.Settled())
		assert.Equal(t, []any{1}, got)

		v, err := c.Result()
		assert.Equal(t, 1, v)
		assert.NoError(t, err)
	})
	t.Run("LateRegistration", func(t *testing.T) {
		c, resolve, _ := gimgen.NewCompletion()
		resolve("x")

		var got any
		c.Then(func(v any) { got = v }, nil)
		assert.Equal(t, "x", got)
	})
	t.Run("AllRegistrationsInOrder", func(t *testing.T) {
		c, resolve, _ := gimgen.NewCompletion()

		var order []int
		for i := range 3 {
			c.Then(func(any) { order = append(order, i) }, nil)
		}
		assert.True(t, c.Observed())

		resolve(nil)
		assert.Equal(t, []int{0, 1, 2}, order)
		assert.False(t, c.Observed())
	})
	t.Run("Reject", func(t *testing.T) {
		boom := errors.New("boom")
		c, _, reject := gimgen.NewCompletion()

		var got error
		c.Then(nil, func(err error) { got = err })
		reject(boom)

		assert.ErrorIs(t, got, boom)
		_, err := c.Result()
		assert.ErrorIs(t, err, boom)

		got = nil
		c.Then(func(any) { t.Error("resolved") }, func(err error) { got = err })
		assert.ErrorIs(t, got, boom)
	})
	t.Run("NilRejection", func(t *testing.T) {
		_, _, reject := gimgen.NewCompletion()
		require.Panics(t, func() { reject(nil) })
		require.Panics(t, func() { gimgen.Rejected(nil) })
	})
	t.Run("Presettled", func(t *testing.T) {
		v, err := gimgen.Resolved(42).Result()
		assert.Equal(t, 42, v)
		assert.NoError(t, err)

		boom := errors.New("boom")
		_, err = gimgen.Rejected(boom).Result()
		assert.ErrorIs(t, err, boom)
	})
}

func TestCompletionAbandon(t *testing.T) {
	t.Run("HooksInOrder", func(t *testing.T) {
		c, resolve, _ := gimgen.NewCompletion()

		var order []int
		c.OnAbandon(func() { order = append(order, 1) })
		c.OnAbandon(func() { order = append(order, 2) })

		c.Abandon()
		c.Abandon()
		assert.Equal(t, []int{1, 2}, order)
		assert.True(t, c.Abandoned())

		c.OnAbandon(func() { order = append(order, 3) })
		assert.Equal(t, []int{1, 2, 3}, order)

		// Still settles.
		resolve("late")
		assert.True(t, c.Settled())
	})
	t.Run("SettledIgnoresAbandon", func(t *testing.T) {
		c, resolve, _ := gimgen.NewCompletion()

		called := false
		c.OnAbandon(func() { called = true })
		resolve(1)
		c.Abandon()
		c.OnAbandon(func() { called = true })

		assert.False(t, called)
		assert.False(t, c.Abandoned())
	})
}
