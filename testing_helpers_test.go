package rx

import "testing"

// runIsolated runs fn on its own goroutine so it gets its own
// goroutine-keyed internal.Runtime (see internal/runtime_default.go),
// the same isolation the design notes ask for to allow parallel
// evaluation across test suites.
func runIsolated(t *testing.T, fn func()) {
	t.Helper()

	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	<-done
}
