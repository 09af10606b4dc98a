package internal

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsyncState(t *testing.T) {
	t.Run("Start then Drain delivers the result once settled", func(t *testing.T) {
		a := newAsyncState()
		assert.False(t, a.Loading())

		done := a.Start(func(ctx context.Context) (any, error) {
			return 42, nil
		})
		assert.True(t, a.Loading())

		<-done
		value, err, ok := a.Drain()

		assert.True(t, ok)
		assert.NoError(t, err)
		assert.Equal(t, 42, value)
		assert.False(t, a.Loading())
	})

	t.Run("Drain is false when nothing has completed yet", func(t *testing.T) {
		a := newAsyncState()
		_, _, ok := a.Drain()
		assert.False(t, ok)
	})

	t.Run("a new Start supersedes and discards the previous run's result", func(t *testing.T) {
		a := newAsyncState()

		block := make(chan struct{})
		first := a.Start(func(ctx context.Context) (any, error) {
			<-block
			return "stale", nil
		})

		second := a.Start(func(ctx context.Context) (any, error) {
			return "fresh", nil
		})
		<-second

		value, _, ok := a.Drain()
		assert.True(t, ok)
		assert.Equal(t, "fresh", value)

		close(block)
		<-first
		_, _, ok = a.Drain()
		assert.False(t, ok, "the superseded run must not deliver a result")
	})

	t.Run("the context passed to fn is cancelled when superseded", func(t *testing.T) {
		a := newAsyncState()

		var firstErr error
		first := a.Start(func(ctx context.Context) (any, error) {
			<-ctx.Done()
			firstErr = ctx.Err()
			return nil, ctx.Err()
		})

		a.Start(func(ctx context.Context) (any, error) { return nil, nil })
		<-first

		assert.ErrorIs(t, firstErr, context.Canceled)
	})

	t.Run("Cancel stops Loading from reporting true and drops any result", func(t *testing.T) {
		a := newAsyncState()
		done := a.Start(func(ctx context.Context) (any, error) {
			return 1, nil
		})
		<-done

		a.Cancel()
		assert.False(t, a.Loading())

		_, _, ok := a.Drain()
		assert.False(t, ok)
	})

	t.Run("an error result is delivered through Drain", func(t *testing.T) {
		a := newAsyncState()
		boom := errors.New("boom")

		done := a.Start(func(ctx context.Context) (any, error) {
			return nil, boom
		})
		<-done

		_, err, ok := a.Drain()
		assert.True(t, ok)
		assert.ErrorIs(t, err, boom)
	})
}
