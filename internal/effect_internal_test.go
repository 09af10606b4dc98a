package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffect(t *testing.T) {
	t.Run("runs immediately and re-runs on every dependency change", func(t *testing.T) {
		runIsolated(t, func() {
			r := GetRuntime()
			a := r.NewSignal(1)
			var seen []int

			r.NewEffect(EffectUser, func() func() {
				seen = append(seen, a.Read().(int))
				return nil
			})

			_ = a.Write(2)
			_ = a.Write(3)

			assert.Equal(t, []int{1, 2, 3}, seen)
		})
	})

	t.Run("render effects drain before user effects in the same flush", func(t *testing.T) {
		runIsolated(t, func() {
			r := GetRuntime()
			a := r.NewSignal(0)
			var order []string

			r.NewEffect(EffectRender, func() func() {
				a.Read()
				order = append(order, "render")
				return nil
			})
			r.NewEffect(EffectUser, func() func() {
				a.Read()
				order = append(order, "user")
				return nil
			})

			order = nil
			_ = a.Write(1)

			assert.Equal(t, []string{"render", "user"}, order)
		})
	})

	t.Run("the previous cleanup runs before the body re-runs", func(t *testing.T) {
		runIsolated(t, func() {
			r := GetRuntime()
			a := r.NewSignal(1)
			var events []string

			r.NewEffect(EffectUser, func() func() {
				a.Read()
				return func() { events = append(events, "cleanup") }
			})

			events = nil
			_ = a.Write(2)

			assert.Equal(t, []string{"cleanup"}, events)
		})
	})

	t.Run("Dispose runs the last cleanup", func(t *testing.T) {
		runIsolated(t, func() {
			r := GetRuntime()
			cleaned := 0

			e := r.NewEffect(EffectUser, func() func() {
				return func() { cleaned++ }
			})

			_ = e.Dispose()
			assert.Equal(t, 1, cleaned)
		})
	})
}
