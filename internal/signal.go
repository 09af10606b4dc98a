package internal

import (
	"errors"
	"iter"
	"reflect"
)

// Signal is the untyped engine representation of a mutable reactive cell.
// Computed embeds *Signal so the dependency-link machinery, the listener
// emitter, tags and lifecycle flags are shared between mutable and
// computed signals; the generic public wrapper (package rx) is responsible
// for the typed value/error split the application sees.
type Signal struct {
	*ReactiveNode

	UID  uint64
	Name string
	Kind Kind

	value any
	err   error

	pendingValue  *any
	pendingErr    *pendingError
	pendingIsZero bool // marks a pending clear of the cell to nil; none of Write, WriteError or commit sets it

	initial  any // snapshot restored by Reset()
	written  bool
	disposed bool

	Equals func(a, b any) bool

	Emitter *Emitter

	OnChange func(value any, err error)

	// disposeHooks runs in reverse (LIFO) order on Dispose: plugin
	// cleanups and tag-membership detachment both register here.
	disposeHooks []func()

	subsHead *DependencyLink
}

// pendingError boxes a not-yet-committed error so a nil error can still be
// distinguished from "no pending write at all".
type pendingError struct {
	err error
}

func (r *Runtime) NewSignal(initial any) *Signal {
	s := &Signal{
		ReactiveNode: r.NewNode(),
		UID:          NextUID(),
		Kind:         KindMutable,
		value:        initial,
		initial:      initial,
		Equals:       defaultEquals,
		Emitter:      NewEmitter(),
	}

	r.EmitSignalCreate(s)

	return s
}

// defaultEquals compares with == where the value's type is comparable and
// falls back to reflect.DeepEqual otherwise (funcs, slices, maps), so an
// effect's cleanup func or a slice value never panics the comparison.
func defaultEquals(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	if reflect.TypeOf(a).Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// Read performs a tracking read: it links the current computation as a
// subscriber (if any) and fires the OnSignalAccess hook, then returns the
// committed value or panics with the cached error.
func (s *Signal) Read() any {
	r := GetRuntime()

	r.tracker.Track(s)
	r.EmitSignalAccess(s)

	return s.mustValue()
}

// Peek reads without tracking: no dependency link is formed and
// OnSignalAccess is not fired.
func (s *Signal) Peek() any {
	return s.mustValue()
}

func (s *Signal) mustValue() any {
	v, err := s.Value()
	if err != nil {
		panic(err)
	}
	return v
}

// Value returns the committed-or-pending value/error pair without panicking.
func (s *Signal) Value() (any, error) {
	switch {
	case s.pendingErr != nil:
		return nil, s.pendingErr.err
	case s.pendingValue != nil:
		return *s.pendingValue, nil
	case s.pendingIsZero:
		return nil, nil
	default:
		return s.value, s.err
	}
}

// Write sets a new value on a mutable signal, applying the equality
// strategy; a disposed signal refuses writes.
func (s *Signal) Write(v any) error {
	if s.disposed {
		return ErrSetOnDisposed
	}

	cur, curErr := s.Value()
	if curErr == nil && s.Equals(cur, v) {
		return nil
	}

	r := GetRuntime()

	s.pendingValue = &v
	s.pendingErr = nil
	s.written = true

	r.heap.InsertAll(s.Subs())
	r.nodeQueue.Enqueue(s)
	r.Schedule()

	return nil
}

// WriteError sets the pending error cell directly (used by computed
// recomputation); value and error are mutually exclusive per the data
// model invariant.
func (s *Signal) WriteError(err error) {
	r := GetRuntime()

	s.pendingErr = &pendingError{err: err}
	s.pendingValue = nil

	r.heap.InsertAll(s.Subs())
	r.nodeQueue.Enqueue(s)
	r.Schedule()
}

// SettleInitial applies a still-pending value/error directly to the cell
// without emitting. A freshly constructed computed runs once synchronously
// before anyone could possibly have subscribed to it; without this, that
// first result would sit staged as pendingValue until some unrelated later
// flush happened to drain the node queue, at which point it would fire as
// a spurious "change" to whatever had subscribed in between.
func (s *Signal) SettleInitial() {
	if s.pendingValue == nil && s.pendingErr == nil && !s.pendingIsZero {
		return
	}

	switch {
	case s.pendingErr != nil:
		s.err = s.pendingErr.err
		s.value = nil
	case s.pendingValue != nil:
		s.value = *s.pendingValue
		s.err = nil
	default:
		s.value = nil
		s.err = nil
	}

	s.pendingValue = nil
	s.pendingErr = nil
	s.pendingIsZero = false
}

// Reset restores the initial value captured at construction.
func (s *Signal) Reset() error {
	return s.Write(s.initial)
}

// Hydrate sets the value without notifying, but only if the signal has
// never been written (by Write, which async recomputes also go through, or
// by a previous Hydrate).
func (s *Signal) Hydrate(v any) {
	if s.written || s.disposed {
		return
	}

	s.value = v
	s.written = true
}

// Commit applies the pending value/error to the signal, firing OnChange and
// the Emitter if the committed cell actually changed.
func (s *Signal) Commit() {
	changed := s.pendingValue != nil || s.pendingErr != nil || s.pendingIsZero
	if !changed {
		return
	}

	switch {
	case s.pendingErr != nil:
		s.err = s.pendingErr.err
		s.value = nil
	case s.pendingValue != nil:
		s.value = *s.pendingValue
		s.err = nil
	default:
		s.value = nil
		s.err = nil
	}

	s.pendingValue = nil
	s.pendingErr = nil
	s.pendingIsZero = false

	if s.disposed {
		return
	}

	if s.OnChange != nil {
		s.OnChange(s.value, s.err)
	}
	s.Emitter.Emit(s.value)
}

// Dispose marks the signal terminal: future writes fail, reads keep
// returning the last observed value/error. Idempotent. Plugin-cleanup and
// tag-detachment panics are isolated the same way Owner.Dispose isolates
// them (logged, aggregated, non-fatal to the remaining hooks).
func (s *Signal) Dispose() error {
	if s.disposed {
		return nil
	}
	s.disposed = true

	var errs []error
	for i := len(s.disposeHooks) - 1; i >= 0; i-- {
		if err := runSafely(s.disposeHooks[i]); err != nil {
			errs = append(errs, err)
		}
	}
	s.disposeHooks = nil

	s.Emitter.Clear()

	return errors.Join(errs...)
}

func (s *Signal) Disposed() bool {
	return s.disposed
}

// OnDispose registers fn to run when the signal is disposed, in reverse
// (LIFO) order relative to other registrations.
func (s *Signal) OnDispose(fn func()) {
	s.disposeHooks = append(s.disposeHooks, fn)
}

// Subs returns an iterator over all subscribing Computeds.
func (s *Signal) Subs() iter.Seq[*Computed] {
	return func(yield func(*Computed) bool) {
		link := s.subsHead
		for link != nil {
			next := link.nextSub
			if !yield(link.sub) {
				return
			}
			link = next
		}
	}
}

func (s *Signal) addSubLink(link *DependencyLink) {
	if s.subsHead == nil {
		s.subsHead = link
		link.prevSub = link // loop to self
		link.nextSub = nil
	} else {
		tail := s.subsHead.prevSub
		tail.nextSub = link
		link.prevSub = tail
		link.nextSub = nil
		s.subsHead.prevSub = link
	}
}

func (s *Signal) removeSubLink(link *DependencyLink) {
	// single node
	if link.prevSub == link {
		s.subsHead = nil
		link.prevSub = nil
		link.nextSub = nil
		return
	}

	// multiple nodes
	if link == s.subsHead {
		s.subsHead = link.nextSub
	} else {
		link.prevSub.nextSub = link.nextSub
	}

	if link.nextSub != nil {
		link.nextSub.prevSub = link.prevSub
	} else {
		s.subsHead.prevSub = link.prevSub
	}

	link.prevSub = nil
	link.nextSub = nil
}
