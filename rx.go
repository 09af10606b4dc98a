// Package rx is a fine-grained reactive signal runtime: mutable signals,
// sync/async computed signals, effects, and the plugin/tag/task machinery
// built on top of them. Dependencies are discovered automatically at read
// time; writes and recomputations are batched and delivered through a
// height-ordered scheduler that notifies each listener at most once per
// drain.
package rx

import "github.com/riftsig/rx/internal"

// Batch groups every write and recomputation notification produced by fn
// into a single drain; nested Batch calls coalesce, only the outermost
// flushes (spec §4.6).
func Batch(fn func()) {
	internal.GetRuntime().NewBatch(fn)
}

// Untrack runs fn without forming dependency edges for any signal it
// reads, even if called from inside a computed or effect body.
func Untrack[T any](fn func() T) T {
	var result T
	internal.GetRuntime().RunUntracked(func() { result = fn() })
	return result
}

// OnCleanup registers fn to run when the owner currently executing (an
// effect body or a computed's compute function) is next disposed or
// re-run.
func OnCleanup(fn func()) {
	internal.GetRuntime().OnCleanup(fn)
}

// EffectKind selects which of the two effect-queue lanes an Effect is
// drained from; render effects run before user effects on every flush.
type EffectKind int

const (
	// RenderEffect runs before UserEffect on every flush.
	RenderEffect EffectKind = EffectKind(internal.EffectRender)
	// UserEffect runs after RenderEffect on every flush.
	UserEffect EffectKind = EffectKind(internal.EffectUser)
)

// Effect runs fn immediately and on every subsequent change to a signal
// it read, in the given lane. fn may return a cleanup invoked before each
// re-run and on Dispose. The returned function disposes the effect.
func Effect(fn func() func(), kind ...EffectKind) func() {
	typ := internal.EffectUser
	if len(kind) > 0 {
		typ = internal.EffectType(kind[0])
	}

	e := internal.GetRuntime().NewEffect(typ, fn)
	return func() { _ = e.Dispose() }
}
