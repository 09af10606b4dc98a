package rx

import "github.com/riftsig/rx/internal"

// TaskStatus is the settled-state enum a Task exposes over an async
// computed signal (spec §4.8).
type TaskStatus int

const (
	TaskLoading TaskStatus = iota
	TaskSuccess
	TaskError
)

func (s TaskStatus) String() string {
	switch s {
	case TaskLoading:
		return "loading"
	case TaskSuccess:
		return "success"
	case TaskError:
		return "error"
	default:
		return "unknown"
	}
}

// Task is a settled view over an async computed Signal[T]: {status,
// value, error}. Two flavors are exposed — From gives a derived view
// whose Value is the zero value while loading or erroring; WithDefault
// returns a func() Task[T] reader that keeps the last successful value
// instead of zeroing it out while a new run is in flight
// (stale-while-revalidate).
type Task[T any] struct {
	Status TaskStatus
	Value  T
	Err    error
}

// From derives a Task snapshot from an async computed signal's current
// state. An onTaskAccess hook fires once per call so a UI binding can
// subscribe to the signal's Done-equivalent settlement (spec §4.8's
// contract with UI bindings; honored here even though no binding ships
// with this package).
func From[T any](sig *Signal[T]) Task[T] {
	internal.GetRuntime().EmitTaskAccess(sig)

	if sig.Loading() {
		return Task[T]{Status: TaskLoading}
	}
	if err := sig.Err(); err != nil {
		return Task[T]{Status: TaskError, Err: err}
	}
	return Task[T]{Status: TaskSuccess, Value: sig.Peek()}
}

// WithDefault pipes sig through a stale-while-revalidate task view: while
// loading, Value holds the last successful result (or fallback if none has
// landed yet) instead of the zero value.
func WithDefault[T any](sig *Signal[T], fallback T) func() Task[T] {
	last := fallback
	haveLast := false

	return func() Task[T] {
		task := From(sig)
		switch task.Status {
		case TaskSuccess:
			last = task.Value
			haveLast = true
			return task
		case TaskLoading:
			if haveLast {
				task.Value = last
			} else {
				task.Value = fallback
			}
			return task
		default:
			if haveLast {
				task.Value = last
			} else {
				task.Value = fallback
			}
			return task
		}
	}
}
