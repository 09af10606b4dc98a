package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitterInternal(t *testing.T) {
	t.Run("delivers to every listener in insertion order", func(t *testing.T) {
		e := NewEmitter()
		var order []string

		e.On(func(any) { order = append(order, "a") })
		e.On(func(any) { order = append(order, "b") })

		e.Emit(nil)
		assert.Equal(t, []string{"a", "b"}, order)
	})

	t.Run("unsubscribe stops further delivery", func(t *testing.T) {
		e := NewEmitter()
		calls := 0
		unsub := e.On(func(any) { calls++ })

		e.Emit(nil)
		unsub()
		e.Emit(nil)

		assert.Equal(t, 1, calls)
	})

	t.Run("unsubscribe is idempotent", func(t *testing.T) {
		e := NewEmitter()
		unsub := e.On(func(any) {})
		assert.NotPanics(t, func() {
			unsub()
			unsub()
		})
	})

	t.Run("a listener added during Emit is not invoked in that same pass", func(t *testing.T) {
		e := NewEmitter()
		var order []string

		e.On(func(any) {
			order = append(order, "first")
			e.On(func(any) { order = append(order, "late") })
		})

		e.Emit(nil)
		assert.Equal(t, []string{"first"}, order)

		e.Emit(nil)
		assert.Equal(t, []string{"first", "first", "late"}, order)
	})

	t.Run("a panicking listener does not block delivery to the rest", func(t *testing.T) {
		e := NewEmitter()
		var ran []string

		e.On(func(any) { panic("boom") })
		e.On(func(any) { ran = append(ran, "second") })

		assert.NotPanics(t, func() { e.Emit(nil) })
		assert.Equal(t, []string{"second"}, ran)
	})

	t.Run("EmitAndClear removes every listener after delivery", func(t *testing.T) {
		e := NewEmitter()
		calls := 0
		e.On(func(any) { calls++ })

		e.EmitAndClear(nil)
		assert.Equal(t, 0, e.Size())

		e.Emit(nil)
		assert.Equal(t, 1, calls)
	})

	t.Run("Size counts only live listeners", func(t *testing.T) {
		e := NewEmitter()
		unsub := e.On(func(any) {})
		e.On(func(any) {})
		assert.Equal(t, 2, e.Size())

		unsub()
		assert.Equal(t, 1, e.Size())
	})
}
