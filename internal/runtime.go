package internal

// Runtime is the per-goroutine reactive engine: one dependency heap, one
// tracking stack, one batcher, one scheduler clock, one hook stack. Lookup
// is keyed by goroutine id (see runtime_default.go / runtime_wasm.go) so
// two goroutines never observe each other's active computation, active
// owner, or tracking frames — tests can drive the runtime from multiple
// goroutines in parallel without cross-talk.
type Runtime struct {
	heap        *PriorityHeap
	tracker     *Tracker
	batcher     *Batcher
	scheduler   *Scheduler
	nodeQueue   *NodeQueue
	effectQueue *EffectQueue

	hooks []Frame
}

func NewRuntime() *Runtime {
	return &Runtime{
		heap:        NewHeap(),
		tracker:     NewTracker(),
		batcher:     NewBatcher(),
		scheduler:   NewScheduler(),
		nodeQueue:   NewNodeQueue(),
		effectQueue: NewEffectQueue(),
	}
}

func (r *Runtime) Schedule() {
	r.scheduler.Schedule()

	if !r.batcher.IsBatching() {
		r.Flush()
	}
}

func (r *Runtime) Flush() error {
	return r.scheduler.Run(func() {
		r.heap.Drain(r.recompute)

		r.nodeQueue.Commit()

		r.effectQueue.RunEffects(EffectRender)
		r.effectQueue.RunEffects(EffectUser)
	})
}

func (r *Runtime) CurrentOwner() *Owner {
	return r.tracker.CurrentOwner()
}

func (r *Runtime) CurrentComputation() *Computed {
	return r.tracker.CurrentComputation()
}

// RunUntracked runs fn without forming dependency edges for any signal it
// reads, even from inside a computation.
func (r *Runtime) RunUntracked(fn func()) {
	r.tracker.RunUntracked(fn)
}

// OnCleanup registers fn against whatever is currently running: if a
// computation (effect or computed) is active, fn joins its per-run
// cleanup list (the same one ctx.Cleanup appends to, run before each
// re-run and on dispose); otherwise it joins the current owner's
// dispose-only cleanups.
func (r *Runtime) OnCleanup(fn func()) {
	if comp := r.CurrentComputation(); comp != nil && comp.activeCtx != nil {
		comp.activeCtx.Cleanup(fn)
		return
	}
	owner := r.CurrentOwner()
	if owner != nil {
		owner.OnCleanup(fn)
	}
}

func (r *Runtime) recompute(node *Computed) {
	if node.disposed || node.fn == nil {
		return
	}
	if node.HasFlag(FlagPaused) {
		return
	}

	node.fn()

	r.heap.InsertAll(node.Subs())
}
