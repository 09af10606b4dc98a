package internal

import "sync/atomic"

// Kind is the closed tagged variant a signal record carries: the runtime
// models signal identity as a discriminated enum rather than a subclass
// hierarchy, per the design notes on dynamic dispatch.
type Kind int

const (
	KindMutable Kind = iota
	KindComputed
	KindAsyncComputed
)

func (k Kind) String() string {
	switch k {
	case KindMutable:
		return "mutable"
	case KindComputed:
		return "computed"
	case KindAsyncComputed:
		return "async-computed"
	default:
		return "unknown"
	}
}

var uidCounter uint64

// NextUID hands out the process-wide unique integer identity every signal
// carries (data model: "Unique integer uid").
func NextUID() uint64 {
	return atomic.AddUint64(&uidCounter, 1)
}
