package internal

import "testing"

// runIsolated runs fn on its own goroutine so it gets its own
// goroutine-keyed Runtime (see runtime_default.go), the same isolation
// GetRuntime relies on to let independent tests run without cross-talk.
func runIsolated(t *testing.T, fn func()) {
	t.Helper()

	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	<-done
}
