package internal

import "errors"

var (
	// ErrSetOnDisposed is returned by Signal.Write once the signal has
	// been disposed (spec §4.4, §4.9, §8 scenario "tag auto-dispose").
	ErrSetOnDisposed = errors.New("rx: cannot set value on disposed signal")

	// ErrCyclicPropagation is reported when a single drain exceeds the
	// scheduler's propagation-depth cap (spec §4.6, §5).
	ErrCyclicPropagation = errors.New("rx: cyclic propagation detected")

	// ErrSyncRefreshStale is the misuse error raised when ctx.Refresh or
	// ctx.Stale is invoked synchronously during the same pass as the
	// compute function's construction (spec §4.5).
	ErrSyncRefreshStale = errors.New("rx: refresh/stale called synchronously from compute function")

	// ErrSyncComputedReturnedAsync is the promise-guard error (spec §4.4):
	// a sync-flagged computed whose function produced an async result.
	ErrSyncComputedReturnedAsync = errors.New("rx: sync computed returned an async result")

	// ErrAborted is the cancellation sentinel observable via the public
	// Context.Err() when an async computation is superseded.
	ErrAborted = errors.New("rx: computation aborted")

	// ErrReactiveInBatch is the misuse error raised when a computed signal
	// or effect is constructed while a batch is in progress (spec §4.3's
	// "reject illegal nesting", §7 "nested reactive boundaries inside a
	// batch").
	ErrReactiveInBatch = errors.New("rx: cannot create a reactive boundary inside a batch")
)
