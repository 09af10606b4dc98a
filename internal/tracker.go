package internal

import (
	"sync"
)

// Tracker holds the ambient "currently executing computation/owner" state
// for one Runtime (i.e. one goroutine). Reads of shared state are RW-locked
// because async-computation completions may call back into the same
// Runtime's bookkeeping from a different goroutine (see async.go) even
// though the dependency-graph mutations themselves stay confined to the
// owning goroutine.
type Tracker struct {
	mu sync.RWMutex

	tracking bool

	executingGID       int64     // to prevent cross-goroutine tracking issues
	currentOwner       *Owner    // for lifecycle/cleanup tracking
	currentComputation *Computed // for reactive dependency tracking
}

func NewTracker() *Tracker {
	return &Tracker{
		tracking: true,
	}
}

func (t *Tracker) IsTracking() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.tracking
}

func (t *Tracker) CurrentOwner() *Owner {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.currentOwner
}

func (t *Tracker) CurrentComputation() *Computed {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.currentComputation
}

func (t *Tracker) RunWithOwner(owner *Owner, fn func()) {
	t.mu.Lock()
	prev := t.currentOwner
	t.currentOwner = owner

	t.executingGID = getGID()
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.currentOwner = prev
		t.mu.Unlock()
	}()

	fn()
}

func (t *Tracker) RunWithComputation(node *Computed, fn func()) {
	t.mu.Lock()
	prevOwner := t.currentOwner
	prevComputation := t.currentComputation

	t.currentOwner = node.Owner
	t.currentComputation = node

	t.executingGID = getGID()
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.currentOwner = prevOwner
		t.currentComputation = prevComputation
		t.mu.Unlock()
	}()

	fn()
}

func (t *Tracker) RunUntracked(fn func()) {
	t.mu.Lock()
	prev := t.tracking
	t.tracking = false
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.tracking = prev
		t.mu.Unlock()
	}()

	fn()
}

// Track links the currently-executing computation (if any) as a subscriber
// of node, provided tracking is enabled and the call is happening on the
// same goroutine that is running the computation.
func (t *Tracker) Track(node *Signal) {
	t.mu.RLock()
	shouldTrack := t.shouldTrack()
	comp := t.currentComputation
	t.mu.RUnlock()

	if shouldTrack {
		comp.Link(node)
	}
}

func (t *Tracker) shouldTrack() bool {
	callerGID := getGID()

	hasComputation := t.currentComputation != nil
	isTracking := t.tracking
	// make sure we're currently in the same goroutine as the computation
	// to avoid cross-goroutine tracking issues
	isSameGID := callerGID == t.executingGID

	return hasComputation && isTracking && isSameGID
}
