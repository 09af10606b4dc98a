package rx

import "github.com/riftsig/rx/internal"

// Emitter is an ordered multicast of 1-ary notifications with cancel-safe
// iteration (spec §4.2), exposed as its own independently constructible
// type alongside its use inside Signal/Computed.
type Emitter[T any] struct {
	inner *internal.Emitter
}

// NewEmitter constructs an empty Emitter.
func NewEmitter[T any]() *Emitter[T] {
	return &Emitter[T]{inner: internal.NewEmitter()}
}

// On adds a listener and returns an idempotent unsubscribe function.
func (e *Emitter[T]) On(fn func(T)) func() {
	return e.inner.On(func(arg any) {
		v, _ := arg.(T)
		fn(v)
	})
}

// Emit invokes every listener present at the time Emit was called, in
// insertion order.
func (e *Emitter[T]) Emit(value T) {
	e.inner.Emit(value)
}

// EmitAndClear emits, then removes every listener.
func (e *Emitter[T]) EmitAndClear(value T) {
	e.inner.EmitAndClear(value)
}

// Size reports the number of listeners currently subscribed.
func (e *Emitter[T]) Size() int {
	return e.inner.Size()
}

// Clear removes every listener.
func (e *Emitter[T]) Clear() {
	e.inner.Clear()
}
