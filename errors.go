package rx

import (
	"errors"

	"github.com/riftsig/rx/internal"
)

// Sentinel errors re-exported from the engine so callers can use
// errors.Is without importing internal.
var (
	// ErrSetOnDisposed is returned by Signal.Set/Update/Reset once the
	// signal has been disposed; Hydrate on a disposed signal is a no-op.
	ErrSetOnDisposed = internal.ErrSetOnDisposed

	// ErrCyclicPropagation is reported when a single drain exceeds the
	// scheduler's propagation-depth cap.
	ErrCyclicPropagation = internal.ErrCyclicPropagation

	// ErrSyncRefreshStale is raised when ctx.Refresh or ctx.Stale is
	// invoked synchronously, within the compute function's own call frame.
	ErrSyncRefreshStale = internal.ErrSyncRefreshStale

	// ErrSyncComputedReturnedAsync guards a sync-flagged computed whose
	// function produced an async-shaped result (any channel value).
	ErrSyncComputedReturnedAsync = internal.ErrSyncComputedReturnedAsync

	// ErrAborted is the cancellation sentinel surfaced to code that
	// inspects an async computation's abort context after supersession.
	ErrAborted = internal.ErrAborted

	// ErrReactiveInBatch is raised when NewComputed/NewAsyncComputed/Effect
	// is called while a Batch is in progress.
	ErrReactiveInBatch = internal.ErrReactiveInBatch

	// ErrTagKindMismatch is raised when a signal joins a Tag whose Kind
	// option excludes that signal's kind.
	ErrTagKindMismatch = errors.New("rx: signal kind does not match tag's kind restriction")
)
