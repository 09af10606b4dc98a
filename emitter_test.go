package rx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitter(t *testing.T) {
	t.Run("On delivers to every listener in insertion order", func(t *testing.T) {
		e := NewEmitter[int]()

		var order []int
		e.On(func(v int) { order = append(order, v*10) })
		e.On(func(v int) { order = append(order, v*100) })

		e.Emit(1)
		assert.Equal(t, []int{10, 100}, order)
	})

	t.Run("unsubscribe is idempotent and stops further delivery", func(t *testing.T) {
		e := NewEmitter[string]()

		var got []string
		unsub := e.On(func(v string) { got = append(got, v) })

		e.Emit("a")
		unsub()
		unsub()
		e.Emit("b")

		assert.Equal(t, []string{"a"}, got)
	})

	t.Run("EmitAndClear removes every listener after delivery", func(t *testing.T) {
		e := NewEmitter[int]()

		calls := 0
		e.On(func(int) { calls++ })

		e.EmitAndClear(1)
		assert.Equal(t, 1, calls)
		assert.Equal(t, 0, e.Size())

		e.Emit(2)
		assert.Equal(t, 1, calls)
	})

	t.Run("Clear removes listeners without emitting", func(t *testing.T) {
		e := NewEmitter[int]()
		e.On(func(int) {})
		e.On(func(int) {})

		assert.Equal(t, 2, e.Size())
		e.Clear()
		assert.Equal(t, 0, e.Size())
	})
}
