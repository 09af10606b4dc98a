package internal

import (
	"context"
	"fmt"
	"reflect"
)

// Context is the handle passed into a compute function. It exposes the
// explicit-dependency proxy, a cleanup registrar, and the refresh/stale
// shortcuts — and, for async computations, the cancellation context
// (spec §4.4, §4.5).
type Context struct {
	computed *Computed

	// synchronous is true for the duration of the compute function's own
	// call frame; ctx.Refresh()/ctx.Stale() panic while true, since both
	// only make sense once the caller has yielded back to the scheduler.
	synchronous bool

	cleanups []func()

	deps     map[string]*Signal
	depCache map[string]depCacheEntry

	abortCtx context.Context
}

type depCacheEntry struct {
	value any
	err   error
}

// Dep reads an explicit named dependency, memoizing the value (or error)
// for the remainder of this computation run so repeated reads — even
// across await-equivalent boundaries in an async computation — observe
// one consistent snapshot (spec §4.5 "explicit dependency proxy").
func (c *Context) Dep(name string) any {
	if entry, ok := c.depCache[name]; ok {
		if entry.err != nil {
			panic(entry.err)
		}
		return entry.value
	}

	sig, ok := c.deps[name]
	if !ok {
		panic(fmt.Errorf("rx: unknown explicit dependency %q", name))
	}

	value, err := readSafely(sig)
	c.depCache[name] = depCacheEntry{value: value, err: err}
	if err != nil {
		panic(err)
	}
	return value
}

func readSafely(sig *Signal) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = toError(r)
		}
	}()
	value = sig.Read()
	return
}

func toError(r any) error {
	if e, ok := r.(error); ok {
		return e
	}
	return fmt.Errorf("%v", r)
}

// Cleanup registers fn to run before the computed's next run, or on
// dispose, whichever comes first.
func (c *Context) Cleanup(fn func()) {
	c.cleanups = append(c.cleanups, fn)
}

// Refresh immediately schedules a recomputation, batched with other
// pending notifications. Must be called asynchronously (spec §4.5); a
// synchronous call indicates the compute function tried to invalidate
// itself within its own call frame, which is a misuse.
func (c *Context) Refresh() {
	if c.synchronous {
		panic(ErrSyncRefreshStale)
	}
	c.computed.Refresh()
}

// Stale marks the computed dirty without scheduling a recompute; the next
// tracking read recomputes synchronously instead. Must be called
// asynchronously, for the same reason as Refresh.
func (c *Context) Stale() {
	if c.synchronous {
		panic(ErrSyncRefreshStale)
	}
	c.computed.MarkStale()
}

// AbortContext exposes the cancellation context for an async computation;
// it is context.Background() (never cancelled) for a synchronous one.
func (c *Context) AbortContext() context.Context {
	if c.abortCtx != nil {
		return c.abortCtx
	}
	return context.Background()
}

// Computed is the untyped engine representation of a computed signal: a
// Signal (for its cell/listeners/dispose hooks) plus an Owner (for
// per-run cleanup scoping and child-scope disposal) plus its own
// dependency list (the Signals it read on its last run).
type Computed struct {
	*Owner
	*Signal

	initialized bool

	depsHead *DependencyLink

	compute  func(*Context) (any, error)
	fallback func(error) (any, bool)

	isAsync bool
	async   *AsyncState

	explicitDeps map[string]*Signal

	// pendingCleanups holds the ctx.Cleanup registrations from the most
	// recent completed run, run (LIFO) at the start of the next one.
	pendingCleanups []func()

	// activeCtx is the Context of the run currently executing, so
	// Runtime.OnCleanup (called with no ctx in scope, e.g. from an Effect
	// body) can route into the same per-run cleanup list ctx.Cleanup uses,
	// instead of the Owner's dispose-only cleanups.
	activeCtx *Context
}

// NewComputed constructs a lazily-evaluated synchronous computed signal.
func (r *Runtime) NewComputed(compute func(*Context) (any, error), explicitDeps map[string]*Signal) *Computed {
	return r.newComputed(compute, explicitDeps, false)
}

// NewAsyncComputed constructs a computed signal whose compute function runs
// on its own goroutine; a new write supersedes and aborts the previous run
// (spec §4.5).
func (r *Runtime) NewAsyncComputed(compute func(*Context) (any, error), explicitDeps map[string]*Signal) *Computed {
	return r.newComputed(compute, explicitDeps, true)
}

func (r *Runtime) newComputed(compute func(*Context) (any, error), explicitDeps map[string]*Signal, async bool) *Computed {
	if r.CurrentKind() == "batch" {
		panic(ErrReactiveInBatch)
	}

	c := &Computed{
		Owner:        r.NewOwner(),
		Signal:       r.NewSignal(nil),
		compute:      compute,
		explicitDeps: explicitDeps,
		isAsync:      async,
	}
	if async {
		c.Signal.Kind = KindAsyncComputed
		c.async = newAsyncState()
	} else {
		c.Signal.Kind = KindComputed
	}
	c.fn = c.run

	c.Signal.OnDispose(func() {
		if c.async != nil {
			c.async.Cancel()
		}
		if c.HasFlag(FlagInHeap) {
			r.heap.Remove(c)
		}
		c.ClearDeps()
		c.SetFlags(FlagNone)
		runCleanupsSafely(c.pendingCleanups)
		c.pendingCleanups = nil
	})
	c.Owner.OnCleanup(func() {
		c.Signal.Dispose()
	})

	r.recompute(c)
	c.Signal.SettleInitial()

	return c
}

// run recomputes the computed: it tears down the previous run's child
// scopes and ctx.Cleanup registrations, clears the stale dependency list,
// and re-executes the compute function under dependency tracking. Sync
// failures are converted into the cached error cell (or the fallback
// value, if one is installed); async failures are delivered later via
// runAsync's completion goroutine.
func (c *Computed) run() {
	c.RemoveFlag(FlagStale)

	if c.initialized {
		c.DisposeChildren()
		runCleanupsSafely(c.pendingCleanups)
	}
	c.initialized = true
	c.pendingCleanups = nil

	c.ClearDeps()

	ctx := &Context{
		computed:    c,
		synchronous: true,
		deps:        c.explicitDeps,
		depCache:    map[string]depCacheEntry{},
	}

	c.activeCtx = ctx

	if c.isAsync {
		c.runAsync(ctx)
		return
	}

	r := GetRuntime()
	r.tracker.RunWithComputation(c, func() {
		c.commit(c.safeCompute(ctx))
	})
	ctx.synchronous = false
	r.nodeQueue.Enqueue(c.Signal)

	c.pendingCleanups = ctx.cleanups
}

func runCleanupsSafely(cleanups []func()) {
	for i := len(cleanups) - 1; i >= 0; i-- {
		_ = runSafely(cleanups[i])
	}
}

func (c *Computed) safeCompute(ctx *Context) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = toError(r)
			value = nil
		}
	}()
	value, err = c.compute(ctx)
	if err == nil && !c.isAsync && isAwaitable(value) {
		panic(ErrSyncComputedReturnedAsync)
	}
	return value, err
}

// isAwaitable is the Go stand-in for "thenable": a sync-flagged computed is
// meant to return a settled value, not a handle to one still pending, so a
// channel-shaped result (the idiomatic Go analogue of a promise) trips the
// promise guard instead of silently becoming the signal's value.
func isAwaitable(v any) bool {
	if v == nil {
		return false
	}
	return reflect.ValueOf(v).Kind() == reflect.Chan
}

// commit stages the new value/error, skipping the stage entirely when the
// equality strategy deems the result unchanged from the cell's current
// content (a still-pending staged value if there is one, else the
// committed one) — a computed's result goes through the same suppression a mutable
// signal's Write does (spec §4.4 "Equality semantics"), which Signal.Write
// cannot provide here since commit bypasses it to also stage errors.
func (c *Computed) commit(value any, err error) {
	if err != nil {
		if c.fallback != nil {
			if fv, ok := c.fallback(err); ok {
				c.stageValue(fv)
				return
			}
		}
		prevValue, prevErr := c.Signal.Value()
		if prevErr != nil && sameError(prevErr, err) {
			return
		}
		_ = prevValue
		c.pendingErr = &pendingError{err: err}
		c.pendingValue = nil
		return
	}

	c.stageValue(value)
}

func (c *Computed) stageValue(value any) {
	prevValue, prevErr := c.Signal.Value()
	if prevErr == nil && c.Equals(prevValue, value) {
		return
	}
	c.pendingValue = &value
	c.pendingErr = nil
}

func sameError(a, b error) bool {
	return a.Error() == b.Error()
}

// runAsync launches the compute function on its own goroutine via
// AsyncState, which cancels and discards any still-running prior attempt.
// The result is not merged into the dependency graph directly — a second
// goroutine drains it and writes it through Signal.Write/WriteError, which
// is the only path that touches the shared heap/scheduler, keeping that
// graph mutation confined to whichever goroutine next schedules a flush.
func (c *Computed) runAsync(ctx *Context) {
	r := GetRuntime()

	// The compute goroutine reads through its own goroutine's Runtime, which
	// forms no links to c, so the explicit deps are linked here up front.
	// Signals read inside compute other than through ctx.Dep do not become
	// dependencies of an async computed.
	for _, dep := range c.explicitDeps {
		c.Link(dep)
	}

	done := c.async.Start(func(abortCtx context.Context) (any, error) {
		ctx.abortCtx = abortCtx

		var value any
		var err error
		r.tracker.RunWithComputation(c, func() {
			value, err = c.safeCompute(ctx)
		})
		ctx.synchronous = false
		return value, err
	})

	c.pendingCleanups = ctx.cleanups

	go func() {
		<-done
		value, err, ok := c.async.Drain()
		if !ok {
			return // superseded or cancelled
		}
		if err != nil {
			c.Signal.WriteError(err)
		} else {
			_ = c.Signal.Write(value)
		}
	}()
}

// Refresh marks the computed dirty and recomputes eagerly, batched with
// other pending notifications.
func (c *Computed) Refresh() {
	r := GetRuntime()
	r.heap.Insert(c)
	r.Schedule()
}

// MarkStale flags the computed dirty without scheduling a recompute; the
// next tracking Read recomputes it synchronously.
func (c *Computed) MarkStale() {
	c.AddFlag(FlagStale)
}

// Pause freezes recomputation; reads keep returning the cached value until
// Resume.
func (c *Computed) Pause() {
	c.AddFlag(FlagPaused)
}

func (c *Computed) Resume() {
	c.RemoveFlag(FlagPaused)
}

func (c *Computed) Paused() bool {
	return c.HasFlag(FlagPaused)
}

// SetFallback installs the computed-only fallback that converts a caught
// error into a value instead of propagating it to readers. An error already
// cached by an earlier run (e.g. the run made at construction) is converted
// right away.
func (c *Computed) SetFallback(fn func(error) (any, bool)) {
	c.fallback = fn
	if _, err := c.Signal.Value(); err != nil {
		if fv, ok := fn(err); ok {
			c.stageValue(fv)
			c.Signal.SettleInitial()
		}
	}
}

// Loading reports whether an async computed has a run currently in flight
// with no result yet delivered. Always false for a synchronous computed.
func (c *Computed) Loading() bool {
	return c.isAsync && c.async.Loading()
}

// Read recomputes synchronously first if the computed has been flagged
// stale (ctx.Stale / MarkStale), then delegates to Signal.Read.
func (c *Computed) Read() any {
	if c.HasFlag(FlagStale) {
		c.run()
		c.Signal.Commit()
	}
	return c.Signal.Read()
}

func (c *Computed) Peek() any {
	if c.HasFlag(FlagStale) {
		c.run()
		c.Signal.Commit()
	}
	return c.Signal.Peek()
}

// Dispose aborts any in-flight async run, tears down the owner (child
// scopes + ctx.Cleanup registrations), then disposes the underlying
// Signal (plugin cleanups, dispose hooks, emitter).
func (c *Computed) Dispose() error {
	if c.async != nil {
		c.async.Cancel()
	}
	return c.Owner.Dispose()
}

// Link creates a dependency edge from this computed (subscriber) to dep,
// deduplicating consecutive reads of the same signal within one run, and
// propagates dep's height so the scheduler drains in topological order.
func (c *Computed) Link(dep *Signal) {
	if c.depsHead != nil {
		tail := c.depsHead.prevDep
		if tail.dep == dep {
			return
		}
	}

	link := &DependencyLink{dep: dep, sub: c}

	c.addDepLink(link)
	dep.addSubLink(link)

	if dep.height >= c.height {
		c.height = dep.height + 1
	}
}

func (c *Computed) Deps() func(yield func(*Signal) bool) {
	return func(yield func(*Signal) bool) {
		link := c.depsHead
		for link != nil {
			if !yield(link.dep) {
				return
			}
			link = link.nextDep
		}
	}
}

func (c *Computed) ClearDeps() {
	for link := c.depsHead; link != nil; {
		next := link.nextDep
		link.dep.removeSubLink(link)
		link = next
	}
	c.depsHead = nil
}

// MaxDepHeight returns the height one more than the tallest dependency.
func (c *Computed) MaxDepHeight() int {
	maxHeight := 0
	for dep := range c.Deps() {
		if dep.height >= maxHeight {
			maxHeight = dep.height + 1
		}
	}
	return maxHeight
}

func (c *Computed) addDepLink(link *DependencyLink) {
	if c.depsHead == nil {
		c.depsHead = link
		link.prevDep = link // loop to self, marks the tail pointer
		link.nextDep = nil
	} else {
		tail := c.depsHead.prevDep
		tail.nextDep = link
		link.prevDep = tail
		link.nextDep = nil
		c.depsHead.prevDep = link
	}
}
