package rx

import "sync"

// SaveOpType discriminates a persistor Save call between a per-key update
// and a full-bundle overwrite (spec §4.7, §6).
type SaveOpType int

const (
	SaveMerge SaveOpType = iota
	SaveOverwrite
)

// SaveOp is the payload delivered to Persistor.Save.
type SaveOp struct {
	Type   SaveOpType
	Values map[string]any
}

// Persistor is the storage contract a persistence plugin is configured
// against (spec §6). Load is memoized with a sync.Once: it runs at most
// once per Persistor, and concurrent first callers block until that one
// call returns, then share its result (no third-party singleflight library
// is used — see DESIGN.md).
type Persistor struct {
	Load    func() (map[string]any, error)
	Save    func(SaveOp)
	OnError func(err error, op string)

	once    sync.Once
	loaded  map[string]any
	loadErr error
}

func (p *Persistor) load() (map[string]any, error) {
	p.once.Do(func() {
		p.loaded, p.loadErr = p.Load()
		if p.loadErr != nil && p.OnError != nil {
			p.OnError(p.loadErr, "load")
		}
	})
	return p.loaded, p.loadErr
}

// PersistKey installs a per-signal persistence plugin: on construction it
// hydrates the signal from persistor's loaded bundle under key (if
// present), then subscribes to future changes and saves them in merge
// mode, `{type: merge, values: {key: value}}`.
func PersistKey(persistor *Persistor, key string) Plugin {
	return func(sig AnySignal) (func(), error) {
		values, err := persistor.load()
		if err != nil {
			return nil, nil // load failures are reported via OnError, not attach failure
		}

		if v, ok := values[key]; ok {
			hydrateAny(sig, v)
		}

		unsubscribe := sig.On(func(v any) {
			if persistor.Save == nil {
				return
			}
			persistor.Save(SaveOp{Type: SaveMerge, Values: map[string]any{key: v}})
		})

		return unsubscribe, nil
	}
}

// PersistBundle installs a group persistence plugin over bundle: it
// hydrates every member from the persistor's loaded values, then
// subscribes to every member and saves the whole bundle in overwrite mode
// on any change, `{type: overwrite, values: {...}}`.
func PersistBundle(persistor *Persistor) GroupPlugin {
	return func(bundle map[string]AnySignal) (func(), error) {
		values, err := persistor.load()
		if err != nil {
			return nil, nil
		}

		for key, sig := range bundle {
			if v, ok := values[key]; ok {
				hydrateAny(sig, v)
			}
		}

		save := func() {
			if persistor.Save == nil {
				return
			}
			snapshot := make(map[string]any, len(bundle))
			for key, sig := range bundle {
				snapshot[key] = sig.Peek()
			}
			persistor.Save(SaveOp{Type: SaveOverwrite, Values: snapshot})
		}

		var unsubscribers []func()
		for _, sig := range bundle {
			unsubscribers = append(unsubscribers, sig.On(func(any) { save() }))
		}

		return func() {
			for _, unsub := range unsubscribers {
				unsub()
			}
		}, nil
	}
}

// hydrateAny routes a persisted value into sig via the typed Hydrate
// method, reached through the unexported hydrateFromAny method since
// AnySignal itself has no Hydrate (hydrate is meaningless on a computed
// signal, so it isn't part of the shared interface).
func hydrateAny(sig AnySignal, v any) {
	if h, ok := sig.(interface{ hydrateFromAny(any) }); ok {
		h.hydrateFromAny(v)
	}
}

func (u *untypedSignal[T]) hydrateFromAny(v any) {
	typed, ok := v.(T)
	if !ok {
		return
	}
	(*Signal[T])(u).Hydrate(typed)
}
