package internal

import (
	"context"
	"sync"
)

// AsyncState backs one async computed signal's in-flight goroutine. A new
// Start cancels and supersedes whatever the previous Start launched; the
// superseded goroutine's result (if it still lands) is discarded rather
// than delivered, matching the spec's "a new run aborts the previous one"
// contract (§4.5).
//
// Results are pull-based by design: the goroutine that runs the compute
// function never touches the shared dependency heap or scheduler itself.
// It only tells the caller (via the returned channel) that a result is
// ready; draining and delivering it through Signal.Write/WriteError is left
// to whichever goroutine calls Drain, so the graph mutation stays confined
// to one goroutine at a time without requiring a Runtime-wide lock that
// would otherwise deadlock when a flush triggers further same-goroutine
// writes.
type AsyncState struct {
	mu      sync.Mutex
	gen     uint64
	cancel  context.CancelFunc
	result  *asyncResult
	loading bool
}

type asyncResult struct {
	gen   uint64
	value any
	err   error
}

func newAsyncState() *AsyncState {
	return &AsyncState{}
}

// Start cancels any run in flight, launches fn on a new goroutine under a
// fresh cancellable context, and returns a channel that closes once fn has
// returned (whether or not its result ends up superseded).
func (a *AsyncState) Start(fn func(ctx context.Context) (any, error)) <-chan struct{} {
	a.mu.Lock()
	if a.cancel != nil {
		a.cancel()
	}
	a.gen++
	gen := a.gen
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.loading = true
	a.mu.Unlock()

	done := make(chan struct{})

	go func() {
		defer close(done)
		value, err := fn(ctx)

		a.mu.Lock()
		defer a.mu.Unlock()
		if gen != a.gen {
			return // superseded while running
		}
		if ctx.Err() != nil {
			return // cancelled
		}
		a.result = &asyncResult{gen: gen, value: value, err: err}
	}()

	return done
}

// Drain consumes the pending result, if any. ok is false when the run was
// superseded or cancelled before producing a deliverable result, or when
// Drain has already been called for this generation.
func (a *AsyncState) Drain() (value any, err error, ok bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.result == nil || a.result.gen != a.gen {
		return nil, nil, false
	}

	res := a.result
	a.result = nil
	a.loading = false
	return res.value, res.err, true
}

// Loading reports whether a run is currently in flight with no result yet
// drained for the current generation. Becomes false once Drain has
// delivered the result, or once Cancel supersedes the run.
func (a *AsyncState) Loading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loading
}

// Cancel aborts any in-flight run without regard to whether it has already
// produced a result.
func (a *AsyncState) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		a.cancel()
	}
	a.gen++
	a.result = nil
	a.loading = false
}
