package rx

import "sync"

// TagKind restricts which signal kinds may join a Tag (spec data model
// "Tag" entity: "kind (mutable, computed, or any)").
type TagKind int

const (
	// TagKindAny imposes no restriction; the zero value.
	TagKindAny TagKind = iota
	// TagKindMutable admits only mutable signals.
	TagKindMutable
	// TagKindComputed admits sync and async computed signals.
	TagKindComputed
)

func (k TagKind) String() string {
	switch k {
	case TagKindMutable:
		return "mutable"
	case TagKindComputed:
		return "computed"
	default:
		return "any"
	}
}

func (k TagKind) accepts(sk Kind) bool {
	switch k {
	case TagKindMutable:
		return sk == KindMutable
	case TagKindComputed:
		return sk == KindComputed || sk == KindAsyncComputed
	default:
		return true
	}
}

// TagOptions configures a Tag at construction.
type TagOptions struct {
	// Name is an optional human-readable identifier.
	Name string
	// Kind restricts membership to a single signal kind; TagKindAny (the
	// default) admits mutable and computed signals alike.
	Kind TagKind
	// OnAdd fires exactly once per join, after the signal has been added.
	OnAdd func(sig AnySignal)
	// OnDelete fires exactly once per leave, after the signal has been
	// removed.
	OnDelete func(sig AnySignal)
	// OnChange fires after OnAdd or OnDelete, receiving the kind of
	// membership change ("add" or "delete") alongside the signal.
	OnChange func(kind string, sig AnySignal)
	// MaxSize caps membership; Add beyond it panics.
	MaxSize int
	// AutoDispose disposes a member on Delete/Clear, unless it is already
	// disposing.
	AutoDispose bool
	// Use lists nested tags and plugins applied to every member at join
	// time.
	Use []any
}

// Tag is an ordered, de-duplicated collection of signals supporting bulk
// iteration and lifecycle callbacks (spec §4.7, data model "Tag" entity).
// Implemented as a map keyed by uid plus a parallel order slice — the
// teacher has no precedent for a group collection, so this follows
// owner.go's cleanups-slice idiom generalized to a removable set.
type Tag struct {
	opts TagOptions

	mu      sync.Mutex
	members map[uint64]AnySignal
	order   []uint64
}

// NewTag constructs an empty Tag.
func NewTag(opts ...TagOptions) *Tag {
	t := &Tag{members: map[uint64]AnySignal{}}
	if len(opts) > 0 {
		t.opts = opts[0]
	}
	return t
}

// Kind reports KindTag, satisfying the same closed-variant predicate as
// signals (spec §9 "small closed tagged variant").
func (t *Tag) Kind() Kind { return KindTag }

// Add joins sig to the tag; joining an already-member signal is a no-op.
// Enforces MaxSize and applies Use (nested tags/plugins) at join time.
func (t *Tag) Add(sig AnySignal) *Tag {
	t.add(sig)
	return t
}

func (t *Tag) add(sig AnySignal) {
	if !t.opts.Kind.accepts(sig.Kind()) {
		panic(ErrTagKindMismatch)
	}

	t.mu.Lock()
	if _, ok := t.members[sig.UID()]; ok {
		t.mu.Unlock()
		return
	}
	if t.opts.MaxSize > 0 && len(t.members) >= t.opts.MaxSize {
		t.mu.Unlock()
		panic("rx: tag exceeds maxSize")
	}
	t.members[sig.UID()] = sig
	t.order = append(t.order, sig.UID())
	t.mu.Unlock()

	sig.onDispose(func() { t.Delete(sig) })

	for _, u := range t.opts.Use {
		applyUseToAny(sig, u)
	}

	if t.opts.OnAdd != nil {
		t.opts.OnAdd(sig)
	}
	if t.opts.OnChange != nil {
		t.opts.OnChange("add", sig)
	}
}

// Delete removes sig from the tag; if AutoDispose is set and the signal is
// not already disposed, it is disposed as part of the leave.
func (t *Tag) Delete(sig AnySignal) bool {
	t.mu.Lock()
	if _, ok := t.members[sig.UID()]; !ok {
		t.mu.Unlock()
		return false
	}
	delete(t.members, sig.UID())
	for i, uid := range t.order {
		if uid == sig.UID() {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	t.mu.Unlock()

	if t.opts.AutoDispose && !sig.Disposed() {
		_ = sig.Dispose()
	}

	if t.opts.OnDelete != nil {
		t.opts.OnDelete(sig)
	}
	if t.opts.OnChange != nil {
		t.opts.OnChange("delete", sig)
	}

	return true
}

// Has reports whether sig is currently a member.
func (t *Tag) Has(sig AnySignal) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.members[sig.UID()]
	return ok
}

// Size reports the current member count.
func (t *Tag) Size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.order)
}

// Clear removes every member, applying AutoDispose/OnDelete/OnChange to
// each in join order.
func (t *Tag) Clear() {
	for _, sig := range t.Signals() {
		t.Delete(sig)
	}
}

// Signals returns the current members in join order.
func (t *Tag) Signals() []AnySignal {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]AnySignal, 0, len(t.order))
	for _, uid := range t.order {
		out = append(out, t.members[uid])
	}
	return out
}

// ForEach visits every member in join order.
func (t *Tag) ForEach(fn func(AnySignal)) {
	for _, sig := range t.Signals() {
		fn(sig)
	}
}

// Map projects every member through fn, in join order.
func (t *Tag) Map(fn func(AnySignal) any) []any {
	members := t.Signals()
	out := make([]any, len(members))
	for i, sig := range members {
		out[i] = fn(sig)
	}
	return out
}

// applyUseToAny applies a single Use entry (Plugin or *Tag) to sig outside
// of the Signal[T] constructor path, used by Tag's own nested Use option.
func applyUseToAny(sig AnySignal, u any) {
	switch v := u.(type) {
	case Plugin:
		cleanup, err := v(sig)
		if err != nil {
			panic(err)
		}
		if cleanup != nil {
			sig.onDispose(cleanup)
		}
	case *Tag:
		v.add(sig)
	default:
		panic("rx: Use option must be a Plugin or *Tag")
	}
}
