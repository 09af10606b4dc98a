package rx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlugin(t *testing.T) {
	t.Run("cleanup runs on dispose", func(t *testing.T) {
		runIsolated(t, func() {
			cleaned := false
			logger := Plugin(func(sig AnySignal) (func(), error) {
				return func() { cleaned = true }, nil
			})

			s := New(1, Options[int]{Use: []any{logger}})
			_ = s.Dispose()

			assert.True(t, cleaned)
		})
	})

	t.Run("a failing plugin rolls back earlier plugins and panics", func(t *testing.T) {
		runIsolated(t, func() {
			firstCleaned := false
			first := Plugin(func(sig AnySignal) (func(), error) {
				return func() { firstCleaned = true }, nil
			})
			second := Plugin(func(sig AnySignal) (func(), error) {
				return nil, errors.New("attach failed")
			})

			assert.Panics(t, func() {
				New(1, Options[int]{Use: []any{first, second}})
			})
			assert.True(t, firstCleaned)
		})
	})

	t.Run("an unrecognized Use entry panics", func(t *testing.T) {
		runIsolated(t, func() {
			assert.Panics(t, func() {
				New(1, Options[int]{Use: []any{"not a plugin"}})
			})
		})
	})
}
