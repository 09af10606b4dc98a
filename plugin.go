package rx

// Plugin attaches a per-signal behavior at construction and may return a
// cleanup invoked at dispose, in reverse order relative to other attached
// plugins (spec §4.7).
type Plugin func(sig AnySignal) (cleanup func(), err error)

// GroupPlugin attaches a behavior over a named bundle of signals at once,
// used for coordinated behaviors like persisting every field of a form
// together (spec §4.7).
type GroupPlugin func(bundle map[string]AnySignal) (cleanup func(), err error)

// attachUse applies use (a mix of Plugin values and *Tag values, in
// construction-list order) to sig. A plugin failure rolls back every
// plugin already applied and panics with the failure, mirroring the
// synchronous-misuse treatment spec §7 gives to "plugin throws during
// attach (rolled back)" — Go has no promise rejection to carry the error
// back through a constructor that by convention doesn't return one.
func attachUse[T any](sig *Signal[T], use []any) {
	target := sig.AsAny()

	var cleanups []func()
	rollback := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			if cleanups[i] != nil {
				cleanups[i]()
			}
		}
	}

	for _, u := range use {
		switch v := u.(type) {
		case Plugin:
			cleanup, err := v(target)
			if err != nil {
				rollback()
				panic(err)
			}
			cleanups = append(cleanups, cleanup)

		case *Tag:
			v.add(target)
			cleanups = append(cleanups, func() { v.Delete(target) })

		default:
			panic("rx: Use option must be a Plugin or *Tag")
		}
	}

	for _, cleanup := range cleanups {
		if cleanup != nil {
			fn := cleanup
			sig.onDispose(fn)
		}
	}
}
