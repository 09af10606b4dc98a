package internal

// Frame is one stack entry of the ambient tracking context (spec §4.3).
// Hooks are invoked by the engine as signals are created, tracked-read, or
// as an async-backed signal's loading state is observed.
type Frame struct {
	Kind string // "rx" | "batch" | "scope" | "" (no active frame)

	OnSignalAccess func(*Signal)
	OnSignalCreate func(*Signal)
	OnTaskAccess   func(any) // any = *public Task[T], kept untyped here
}

// PushHooks pushes frame onto this (goroutine-local) runtime's hook stack.
func (r *Runtime) PushHooks(frame Frame) {
	r.hooks = append(r.hooks, frame)
}

// PopHooks pops the most recently pushed frame. Safe to call even if the
// stack has already been popped by a panicking WithHooks caller's defer.
func (r *Runtime) PopHooks() {
	if len(r.hooks) == 0 {
		return
	}
	r.hooks = r.hooks[:len(r.hooks)-1]
}

// WithHooks pushes frame, runs fn, and pops frame on every exit path
// including panic.
func (r *Runtime) WithHooks(frame Frame, fn func()) {
	r.PushHooks(frame)
	defer r.PopHooks()
	fn()
}

// CurrentFrame returns the topmost hook frame, or the zero Frame if none is
// active.
func (r *Runtime) CurrentFrame() Frame {
	if len(r.hooks) == 0 {
		return Frame{}
	}
	return r.hooks[len(r.hooks)-1]
}

// CurrentKind reports the topmost frame's Kind tag, used by consumers to
// reject illegal nesting (e.g. opening a reactive boundary inside a batch).
func (r *Runtime) CurrentKind() string {
	return r.CurrentFrame().Kind
}

// EmitSignalAccess invokes the topmost frame's OnSignalAccess hook, if any.
// Only called for tracking reads; Peek reads must never call this.
func (r *Runtime) EmitSignalAccess(s *Signal) {
	if f := r.CurrentFrame(); f.OnSignalAccess != nil {
		f.OnSignalAccess(s)
	}
}

// EmitSignalCreate invokes the topmost frame's OnSignalCreate hook, if any.
func (r *Runtime) EmitSignalCreate(s *Signal) {
	if f := r.CurrentFrame(); f.OnSignalCreate != nil {
		f.OnSignalCreate(s)
	}
}

// EmitTaskAccess invokes the topmost frame's OnTaskAccess hook, if any.
func (r *Runtime) EmitTaskAccess(task any) {
	if f := r.CurrentFrame(); f.OnTaskAccess != nil {
		f.OnTaskAccess(task)
	}
}
