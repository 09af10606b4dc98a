package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker(t *testing.T) {
	t.Run("RunUntracked suspends dependency formation for its duration", func(t *testing.T) {
		runIsolated(t, func() {
			r := GetRuntime()
			a := r.NewSignal(1)
			runs := 0

			c := r.NewComputed(func(ctx *Context) (any, error) {
				r.RunUntracked(func() { a.Read() })
				runs++
				return nil, nil
			}, nil)
			c.Read()

			runs = 0
			_ = a.Write(2)
			assert.Equal(t, 0, runs, "untracked read must not subscribe the computed")
		})
	})

	t.Run("Track refuses to link when the read happens off the computation's own goroutine", func(t *testing.T) {
		runIsolated(t, func() {
			r := GetRuntime()
			a := r.NewSignal(1)
			c := r.NewComputed(func(ctx *Context) (any, error) { return nil, nil }, nil)

			done := make(chan struct{})
			r.tracker.RunWithComputation(c, func() {
				go func() {
					defer close(done)
					a.Read()
				}()
				<-done
			})

			deps := 0
			for range c.Deps() {
				deps++
			}
			assert.Equal(t, 0, deps, "a read from another goroutine must not form a dependency link")
		})
	})

	t.Run("CurrentOwner and CurrentComputation are both set while a computation runs", func(t *testing.T) {
		runIsolated(t, func() {
			r := GetRuntime()
			var sawOwner *Owner
			var sawComputation *Computed

			c := r.NewComputed(func(ctx *Context) (any, error) {
				sawOwner = r.tracker.CurrentOwner()
				sawComputation = r.tracker.CurrentComputation()
				return nil, nil
			}, nil)

			assert.Equal(t, c.Owner, sawOwner)
			assert.Equal(t, c, sawComputation)
			assert.Nil(t, r.tracker.CurrentComputation())
		})
	})
}
