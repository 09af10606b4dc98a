package rx

import "github.com/riftsig/rx/internal"

// Scope runs fn with an onSignalCreate hook installed: every signal
// constructed during fn is recorded, and the returned disposer tears them
// all down in LIFO order (spec §4.9). A nested Scope call only collects
// the signals created directly within its own fn — the outer scope's hook
// frame is shadowed for the duration of the inner call, so nothing leaks
// into the parent's collection.
func Scope(fn func()) func() {
	r := internal.GetRuntime()

	var created []*internal.Signal
	frame := internal.Frame{
		Kind: "scope",
		OnSignalCreate: func(s *internal.Signal) {
			created = append(created, s)
		},
	}

	r.WithHooks(frame, fn)

	return func() {
		for i := len(created) - 1; i >= 0; i-- {
			_ = created[i].Dispose()
		}
	}
}
