package rx

import "github.com/riftsig/rx/internal"

// Kind is the closed tagged variant spec §9's design notes ask for: a
// discriminated enum on the signal record rather than a subclass
// hierarchy, extended here with KindTag since Is() also recognizes tags.
type Kind int

const (
	KindMutable Kind = iota
	KindComputed
	KindAsyncComputed
	KindTag
)

func (k Kind) String() string {
	switch k {
	case KindMutable:
		return "mutable"
	case KindComputed:
		return "computed"
	case KindAsyncComputed:
		return "async-computed"
	case KindTag:
		return "tag"
	default:
		return "unknown"
	}
}

func fromInternalKind(k internal.Kind) Kind {
	switch k {
	case internal.KindComputed:
		return KindComputed
	case internal.KindAsyncComputed:
		return KindAsyncComputed
	default:
		return KindMutable
	}
}

// AnySignal is the untyped facade every signal (mutable, computed, async
// computed) satisfies. Plugins, tags and the snapshot/diff utilities are
// written against this interface rather than a generic Signal[T] so they
// can operate uniformly across value types.
type AnySignal interface {
	UID() uint64
	Name() string
	Kind() Kind
	Get() any
	Peek() any
	On(func(any)) func()
	Refresh()
	Stale()
	Pause()
	Resume()
	Paused() bool
	Dispose() error
	Disposed() bool
	onDispose(func())
}

// Options configures a signal at construction time.
type Options[T any] struct {
	// Name is an optional human-readable identifier.
	Name string
	// Equals selects the notification-suppression strategy; defaults to
	// Strict[T]() when left nil.
	Equals EqualsFunc[T]
	// Use lists the plugins and tags this signal should join at
	// construction, in order; a plugin failure rolls back the ones that
	// already ran.
	Use []any
	// OnChange is invoked with the new value on every notification.
	OnChange func(T)
}

// Signal is the generic, user-facing handle over a mutable or computed
// reactive cell. The engine itself (internal.Signal/internal.Computed)
// stores values as `any`; Signal[T] is the typed edge spec §9's "generics
// at the edges" design note describes.
type Signal[T any] struct {
	sig      *internal.Signal
	computed *internal.Computed // nil for a mutable signal
}

// New constructs a mutable signal with the given initial value.
func New[T any](initial T, opts ...Options[T]) *Signal[T] {
	r := internal.GetRuntime()
	s := r.NewSignal(initial)

	s.Name = optName(opts)
	if eq := optEquals(opts); eq != nil {
		s.Equals = func(a, b any) bool { return eq(a.(T), b.(T)) }
	}

	sig := &Signal[T]{sig: s}
	applyOnChange(s, opts)
	applyUse[T](sig, opts)

	return sig
}

func optName[T any](opts []Options[T]) string {
	if len(opts) == 0 {
		return ""
	}
	return opts[0].Name
}

func optEquals[T any](opts []Options[T]) EqualsFunc[T] {
	if len(opts) == 0 {
		return nil
	}
	return opts[0].Equals
}

func applyOnChange[T any](s *internal.Signal, opts []Options[T]) {
	if len(opts) == 0 || opts[0].OnChange == nil {
		return
	}
	onChange := opts[0].OnChange
	s.OnChange = func(value any, err error) {
		if err != nil {
			return
		}
		v, _ := value.(T)
		onChange(v)
	}
}

func applyUse[T any](sig *Signal[T], opts []Options[T]) {
	if len(opts) == 0 {
		return
	}
	attachUse(sig, opts[0].Use)
}

// UID returns the process-wide unique identity assigned at construction.
func (s *Signal[T]) UID() uint64 { return s.sig.UID }

// Name returns the optional human-readable identifier.
func (s *Signal[T]) Name() string { return s.sig.Name }

// Kind reports whether this is a mutable, computed, or async computed
// signal.
func (s *Signal[T]) Kind() Kind { return fromInternalKind(s.sig.Kind) }

// Get performs a tracking read: it forces a stale computed to recompute,
// links the current computation as a subscriber, and returns the value or
// panics with the cached error.
func (s *Signal[T]) Get() T {
	var v any
	if s.computed != nil {
		v = s.computed.Read()
	} else {
		v = s.sig.Read()
	}
	t, _ := v.(T)
	return t
}

// Peek reads without tracking: no dependency link is formed.
func (s *Signal[T]) Peek() T {
	var v any
	if s.computed != nil {
		v = s.computed.Peek()
	} else {
		v = s.sig.Peek()
	}
	t, _ := v.(T)
	return t
}

// On subscribes to future notifications, returning an idempotent
// unsubscribe function.
func (s *Signal[T]) On(fn func(T)) func() {
	return s.sig.Emitter.On(func(arg any) {
		v, _ := arg.(T)
		fn(v)
	})
}

// Set writes a new value, applying the equality strategy; setting a
// disposed signal returns ErrSetOnDisposed. Only meaningful on a mutable
// signal.
func (s *Signal[T]) Set(next T) error {
	return s.sig.Write(next)
}

// Update writes the result of applying fn to the current value.
func (s *Signal[T]) Update(fn func(prev T) T) error {
	return s.Set(fn(s.Peek()))
}

// Reset restores the initial value captured at construction.
func (s *Signal[T]) Reset() error {
	return s.sig.Reset()
}

// Hydrate sets the value without notifying, but only if the signal has
// never been written.
func (s *Signal[T]) Hydrate(v T) {
	s.sig.Hydrate(v)
}

// Refresh marks the signal dirty and recomputes eagerly (a no-op on a
// mutable signal), batched with other pending notifications.
func (s *Signal[T]) Refresh() {
	if s.computed != nil {
		s.computed.Refresh()
	}
}

// Stale marks the signal dirty without scheduling a recompute; the next
// tracking read recomputes it synchronously. A no-op on a mutable signal.
func (s *Signal[T]) Stale() {
	if s.computed != nil {
		s.computed.MarkStale()
	}
}

// Pause freezes recomputation on a computed signal; a no-op on mutable.
func (s *Signal[T]) Pause() {
	if s.computed != nil {
		s.computed.Pause()
	}
}

// Resume unfreezes a paused computed signal.
func (s *Signal[T]) Resume() {
	if s.computed != nil {
		s.computed.Resume()
	}
}

// Paused reports whether a computed signal is currently paused.
func (s *Signal[T]) Paused() bool {
	if s.computed != nil {
		return s.computed.Paused()
	}
	return false
}

// Dispose marks the signal terminal and runs plugin/tag cleanups in
// reverse order.
func (s *Signal[T]) Dispose() error {
	if s.computed != nil {
		return s.computed.Dispose()
	}
	return s.sig.Dispose()
}

// Disposed reports whether Dispose has been called.
func (s *Signal[T]) Disposed() bool { return s.sig.Disposed() }

// Loading reports whether an async computed signal has a run currently in
// flight with no result yet delivered. Always false otherwise.
func (s *Signal[T]) Loading() bool {
	return s.computed != nil && s.computed.Loading()
}

// Err returns the cached error, if the signal's last run failed and no
// fallback converted it, without panicking the way Get/Peek do.
func (s *Signal[T]) Err() error {
	_, err := s.sig.Value()
	return err
}

func (s *Signal[T]) onDispose(fn func()) { s.sig.OnDispose(fn) }

// AsAny adapts Signal[T] to the untyped AnySignal facade consumed by
// plugins, tags, and the snapshot/diff utilities.
func (s *Signal[T]) AsAny() AnySignal { return (*untypedSignal[T])(s) }

type untypedSignal[T any] Signal[T]

func (u *untypedSignal[T]) UID() uint64  { return u.sig.UID }
func (u *untypedSignal[T]) Name() string { return u.sig.Name }
func (u *untypedSignal[T]) Kind() Kind   { return fromInternalKind(u.sig.Kind) }
func (u *untypedSignal[T]) Get() any {
	return (*Signal[T])(u).Get()
}
func (u *untypedSignal[T]) Peek() any {
	return (*Signal[T])(u).Peek()
}
func (u *untypedSignal[T]) Refresh()            { (*Signal[T])(u).Refresh() }
func (u *untypedSignal[T]) Stale()              { (*Signal[T])(u).Stale() }
func (u *untypedSignal[T]) Pause()              { (*Signal[T])(u).Pause() }
func (u *untypedSignal[T]) Resume()             { (*Signal[T])(u).Resume() }
func (u *untypedSignal[T]) Paused() bool        { return (*Signal[T])(u).Paused() }
func (u *untypedSignal[T]) Dispose() error      { return (*Signal[T])(u).Dispose() }
func (u *untypedSignal[T]) Disposed() bool      { return u.sig.Disposed() }
func (u *untypedSignal[T]) onDispose(fn func()) { u.sig.OnDispose(fn) }
func (u *untypedSignal[T]) On(fn func(any)) func() {
	return u.sig.Emitter.On(fn)
}

// Is reports whether sig is of the given kind, per spec §6's is(value,
// kind) predicate. Accepts any signal or a *Tag.
func Is(sig interface{ Kind() Kind }, kind Kind) bool {
	if sig == nil {
		return false
	}
	return sig.Kind() == kind
}
