package rx

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTask(t *testing.T) {
	t.Run("From reports loading then success as the async run settles", func(t *testing.T) {
		runIsolated(t, func() {
			release := make(chan struct{})
			remote := NewAsyncComputed(func(ctx *Context[int]) (int, error) {
				<-release
				return 42, nil
			}, nil)

			task := From(remote)
			assert.Equal(t, TaskLoading, task.Status)

			close(release)
			waitUntil(t, func() bool { return !remote.Loading() })

			task = From(remote)
			assert.Equal(t, TaskSuccess, task.Status)
			assert.Equal(t, 42, task.Value)
		})
	})

	t.Run("From surfaces the caught error as TaskError", func(t *testing.T) {
		runIsolated(t, func() {
			boom := errors.New("boom")
			remote := NewAsyncComputed(func(ctx *Context[int]) (int, error) {
				return 0, boom
			}, nil)

			waitUntil(t, func() bool { return !remote.Loading() })

			task := From(remote)
			assert.Equal(t, TaskError, task.Status)
			assert.ErrorIs(t, task.Err, boom)
		})
	})

	t.Run("WithDefault keeps the last successful value while a new run is in flight", func(t *testing.T) {
		runIsolated(t, func() {
			trigger := New(0)
			release := make(chan struct{}, 2)

			remote := NewAsyncComputed(func(ctx *Context[int]) (int, error) {
				n := Dep[int](ctx.Unwrap(), "trigger")
				<-release
				return n, nil
			}, map[string]AnySignal{"trigger": trigger.AsAny()})

			task := WithDefault(remote, -1)

			assert.Equal(t, -1, task().Value)
			release <- struct{}{}
			waitUntil(t, func() bool { return !remote.Loading() })
			assert.Equal(t, TaskSuccess, task().Status)
			assert.Equal(t, 0, task().Value)

			_ = trigger.Set(1)
			assert.Equal(t, 0, task().Value, "stale value kept while the new run is loading")

			release <- struct{}{}
			waitUntil(t, func() bool { return !remote.Loading() })
			assert.Equal(t, 1, task().Value)
		})
	})
}

func waitUntil(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
