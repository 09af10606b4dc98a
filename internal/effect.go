package internal

// EffectType distinguishes the two effect-queue lanes drained on every
// flush: render effects run before user effects (spec §4.6), mirroring a
// UI framework's commit/paint split even though this engine has no paint
// phase of its own — render effects are simply the ones expected to run
// first.
type EffectType int

const (
	EffectRender EffectType = iota
	EffectUser
)

// Effect is a computed signal whose "value" is always a cleanup function:
// re-running it first invokes the previous cleanup, then the effect body,
// whose return value becomes the next cleanup.
type Effect struct {
	*Computed

	typ EffectType
}

func (r *Runtime) NewEffect(typ EffectType, effect func() func()) *Effect {
	c := r.NewComputed(func(ctx *Context) (any, error) {
		return effect(), nil
	}, nil)
	compute := c.fn

	e := &Effect{
		Computed: c,
		typ:      typ,
	}
	e.fn = func() {
		r.effectQueue.Enqueue(typ, func() {
			if prev, ok := c.Signal.Peek().(func()); ok && prev != nil {
				prev()
			}

			compute()
		})
	}

	return e
}

// Dispose invokes the cleanup left by the last completed run, then tears
// down the underlying computed. Re-running already invokes the previous
// cleanup before the next body call; disposal is the one exit path with no
// "next run" to do that job, so it does so itself.
func (e *Effect) Dispose() error {
	if prev, ok := e.Signal.Peek().(func()); ok && prev != nil {
		_ = runSafely(prev)
	}
	return e.Computed.Dispose()
}
