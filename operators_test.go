package rx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOperators(t *testing.T) {
	t.Run("Pipe threads a signal through operators in order", func(t *testing.T) {
		runIsolated(t, func() {
			n := New(2)
			doubled := Pipe(n,
				func(s *Signal[int]) *Signal[int] { return MapValues(s, func(v int) int { return v * 2 }) },
				func(s *Signal[int]) *Signal[int] { return MapValues(s, func(v int) int { return v + 1 }) },
			)
			assert.Equal(t, 5, doubled.Get())
		})
	})

	t.Run("MapValues recomputes as the source changes", func(t *testing.T) {
		runIsolated(t, func() {
			n := New(1)
			squared := MapValues(n, func(v int) int { return v * v })

			assert.Equal(t, 1, squared.Get())
			_ = n.Set(4)
			assert.Equal(t, 16, squared.Get())
		})
	})

	t.Run("Filter keeps the last accepted value when the predicate fails", func(t *testing.T) {
		runIsolated(t, func() {
			n := New(2)
			even := Filter(n, func(v int) bool { return v%2 == 0 })

			assert.Equal(t, 2, even.Peek())

			_ = n.Set(3)
			Batch(func() {})
			assert.Equal(t, 2, even.Peek(), "odd update must be dropped")

			_ = n.Set(4)
			Batch(func() {})
			assert.Equal(t, 4, even.Peek())
		})
	})

	t.Run("Distinct suppresses a value equal to the immediately preceding one", func(t *testing.T) {
		runIsolated(t, func() {
			n := New(1)
			var seen []int
			out := Distinct(n)
			out.On(func(v int) { seen = append(seen, v) })

			_ = n.Set(1)
			Batch(func() {})
			_ = n.Set(2)
			Batch(func() {})
			_ = n.Set(2)
			Batch(func() {})

			assert.Equal(t, []int{2}, seen)
		})
	})

	t.Run("Debounce adopts the value only after the source settles", func(t *testing.T) {
		runIsolated(t, func() {
			n := New(0)
			debounced := Debounce(n, 10*time.Millisecond)

			_ = n.Set(1)
			_ = n.Set(2)
			_ = n.Set(3)

			assert.Equal(t, 0, debounced.Peek(), "no tick has elapsed yet")

			waitUntil(t, func() bool { return debounced.Peek() == 3 })
		})
	})

	t.Run("RefreshOn calls Refresh on every notification passing filter", func(t *testing.T) {
		runIsolated(t, func() {
			runs := 0
			c := NewComputed(func(ctx *Context[int]) (int, error) {
				runs++
				return runs, nil
			}, nil)

			tick := New(0)
			unsub := RefreshOn(c.AsAny(), tick, func(v int) bool { return v > 0 })
			defer unsub()

			assert.Equal(t, 1, runs)

			_ = tick.Set(0) // filtered out
			assert.Equal(t, 1, runs)

			_ = tick.Set(1) // passes
			Batch(func() {})
			assert.Equal(t, 2, runs)
		})
	})
}
