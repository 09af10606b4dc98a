package internal

import (
	"log"
	"runtime/debug"
)

// Emitter is an ordered multicast of parameterless-or-1-ary listeners with
// cancel-safe iteration (spec §4.2). A listener added during Emit is not
// invoked during that pass; a listener removed during Emit is skipped if
// not yet reached, without shifting later listeners into earlier slots.
type Emitter struct {
	listeners []*emitterEntry
}

type emitterEntry struct {
	fn      func(any)
	removed bool
}

func NewEmitter() *Emitter {
	return &Emitter{}
}

// On adds a listener and returns an idempotent unsubscribe function.
func (e *Emitter) On(fn func(any)) func() {
	entry := &emitterEntry{fn: fn}
	e.listeners = append(e.listeners, entry)

	return func() {
		entry.removed = true
	}
}

// Emit invokes every listener present at the time Emit was called, in
// insertion order. Panics inside a listener are isolated the way
// coregx-signals isolates subscriber panics: logged with a stack trace,
// delivery continues to the remaining listeners.
func (e *Emitter) Emit(arg any) {
	snapshot := e.listeners

	for _, entry := range snapshot {
		if entry.removed {
			continue
		}
		e.callSafely(entry, arg)
	}

	e.compact()
}

func (e *Emitter) callSafely(entry *emitterEntry, arg any) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("rx: panic in emitter listener: %v\n%s", r, debug.Stack())
		}
	}()
	entry.fn(arg)
}

// EmitAndClear emits, then removes every listener.
func (e *Emitter) EmitAndClear(arg any) {
	e.Emit(arg)
	e.Clear()
}

func (e *Emitter) Size() int {
	n := 0
	for _, entry := range e.listeners {
		if !entry.removed {
			n++
		}
	}
	return n
}

func (e *Emitter) Clear() {
	e.listeners = nil
}

func (e *Emitter) compact() {
	kept := e.listeners[:0]
	for _, entry := range e.listeners {
		if !entry.removed {
			kept = append(kept, entry)
		}
	}
	e.listeners = kept
}
