package rx

import (
	"github.com/riftsig/rx/internal"
)

// Context is the typed handle passed into a compute function: the Go
// stand-in for spec §4.4's ctx object, since Go has no proxy objects to
// intercept ctx.deps.<name> reads — Dep is the explicit accessor call
// spec §9's design notes call out as the fallback for proxy-less
// languages.
type Context[T any] struct {
	inner *internal.Context
}

// Dep reads an explicit named dependency declared via the deps bundle
// passed to NewComputed/NewAsyncComputed, memoizing it for the remainder
// of this run.
func Dep[D any](ctx *internal.Context, name string) D {
	v, _ := ctx.Dep(name).(D)
	return v
}

// Unwrap exposes the untyped internal.Context, needed to call the
// package-level Dep[D] accessor since Go methods cannot introduce new
// type parameters.
func (c *Context[T]) Unwrap() *internal.Context {
	return c.inner
}

// Cleanup registers fn to run before the computed's next run, or on
// dispose, whichever comes first.
func (c *Context[T]) Cleanup(fn func()) {
	c.inner.Cleanup(fn)
}

// Refresh immediately schedules a recomputation; must be called
// asynchronously (see ErrSyncRefreshStale).
func (c *Context[T]) Refresh() {
	c.inner.Refresh()
}

// Stale marks the computed dirty without scheduling a recompute; must be
// called asynchronously.
func (c *Context[T]) Stale() {
	c.inner.Stale()
}

// Done returns the abort context's Done channel, closed when a newer
// computation has superseded this one.
func (c *Context[T]) Done() <-chan struct{} {
	return c.inner.AbortContext().Done()
}

// Err returns ErrAborted once this computation has been superseded.
func (c *Context[T]) Err() error {
	if err := c.inner.AbortContext().Err(); err != nil {
		return ErrAborted
	}
	return nil
}

// ComputedOptions configures a computed signal at construction time.
type ComputedOptions[T any] struct {
	Options[T]
	// Fallback converts a caught compute error into a value instead of
	// propagating it to readers; returning ok=false leaves the error
	// cached.
	Fallback func(error) (T, bool)
}

// NewComputed constructs a lazily-evaluated synchronous computed signal.
// deps, if non-nil, names the explicit dependency bundle readable via
// Dep[D](ctx, name) inside compute.
func NewComputed[T any](compute func(ctx *Context[T]) (T, error), deps map[string]AnySignal, opts ...ComputedOptions[T]) *Signal[T] {
	r := internal.GetRuntime()

	explicit := toExplicitDeps(deps)

	c := r.NewComputed(func(ic *internal.Context) (any, error) {
		return compute(&Context[T]{inner: ic})
	}, explicit)

	configureComputed(c, opts)

	return &Signal[T]{sig: c.Signal, computed: c}
}

// NewAsyncComputed constructs a computed signal whose compute function
// runs on its own goroutine; a new write to any signal in deps (or an
// explicit Refresh) aborts the previous in-flight run. Signals read inside
// compute without going through Dep do not become dependencies.
func NewAsyncComputed[T any](compute func(ctx *Context[T]) (T, error), deps map[string]AnySignal, opts ...ComputedOptions[T]) *Signal[T] {
	r := internal.GetRuntime()

	explicit := toExplicitDeps(deps)

	c := r.NewAsyncComputed(func(ic *internal.Context) (any, error) {
		return compute(&Context[T]{inner: ic})
	}, explicit)

	configureComputed(c, opts)

	return &Signal[T]{sig: c.Signal, computed: c}
}

func toExplicitDeps(deps map[string]AnySignal) map[string]*internal.Signal {
	if deps == nil {
		return nil
	}
	out := make(map[string]*internal.Signal, len(deps))
	for name, sig := range deps {
		if accessor, ok := sig.(internalSignalAccessor); ok {
			out[name] = accessor.internalSignal()
		}
	}
	return out
}

// internalSignalAccessor is satisfied by every Signal[T] (via
// untypedSignal[T]), letting the engine-facing construction code reach
// through AnySignal to the raw *internal.Signal without exporting it.
type internalSignalAccessor interface {
	internalSignal() *internal.Signal
}

func (u *untypedSignal[T]) internalSignal() *internal.Signal { return u.sig }

func configureComputed[T any](c *internal.Computed, opts []ComputedOptions[T]) {
	if len(opts) == 0 {
		return
	}
	o := opts[0]

	c.Signal.Name = o.Name
	if o.Equals != nil {
		eq := o.Equals
		c.Signal.Equals = func(a, b any) bool { return eq(a.(T), b.(T)) }
	}
	if o.OnChange != nil {
		onChange := o.OnChange
		c.Signal.OnChange = func(value any, err error) {
			if err != nil {
				return
			}
			v, _ := value.(T)
			onChange(v)
		}
	}
	if o.Fallback != nil {
		fallback := o.Fallback
		c.SetFallback(func(err error) (any, bool) {
			v, ok := fallback(err)
			return v, ok
		})
	}

	sig := &Signal[T]{sig: c.Signal, computed: c}
	attachUse(sig, o.Use)
}
