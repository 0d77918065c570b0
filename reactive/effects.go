package reactive

import "fmt"

// EffectRunner re-runs a side effect every time something it read changes.
// It stays subscribed until Dispose is called.
type EffectRunner struct {
	baseNode
	tracker

	fn         ErrFn
	evaluating bool
	pending    bool
	disposed   bool
}

// Effect creates an effect and runs it once, unless Deferred is given. The
// runner is returned even when the first run fails so that it can be disposed.
func Effect(rs *ReactiveSystem, fn ErrFn, opts ...Option) (*EffectRunner, error) {
	if fn == nil {
		return nil, fmt.Errorf("effect: %w", ErrInvalidOperation)
	}

	o := applyOptions(opts)
	e := &EffectRunner{
		baseNode: newBaseNode(rs, o.name),
		tracker:  newTracker(),
		fn:       fn,
	}
	if rs.activeScope != nil {
		rs.activeScope.effects = append(rs.activeScope.effects, e)
	}
	if o.deferred {
		return e, nil
	}
	return e, e.Run()
}

func (e *EffectRunner) Kind() Kind {
	return KindEffect
}

func (e *EffectRunner) SubscriberCount() int {
	return 0
}

func (e *EffectRunner) Disposed() bool {
	return e.disposed
}

// Run executes the effect now, rebuilding its dependencies. Running a disposed
// effect does nothing; running an effect from inside its own body fails with
// ErrCircularDependency.
func (e *EffectRunner) Run() error {
	e.pending = false
	if e.disposed {
		return nil
	}
	if e.evaluating {
		return e.rs.circular(e)
	}

	e.unlinkAll(e)
	e.evaluating = true
	defer func() {
		e.evaluating = false
	}()

	return e.rs.evaluate(e, e.fn)
}

// Dispose unsubscribes the effect from everything and drops any queued run.
// It is safe to call more than once.
func (e *EffectRunner) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	e.pending = false
	e.unlinkAll(e)
}

func (e *EffectRunner) addDep(dep dependency) bool {
	if e.disposed {
		return false
	}
	return e.tracker.addDep(dep)
}

func (e *EffectRunner) markStale() {
	if e.disposed || e.pending {
		return
	}
	e.pending = true
	e.rs.enqueue(e)
}

func (e *EffectRunner) describe() NodeInfo {
	return NodeInfo{
		ID:           e.id,
		Name:         e.name,
		Kind:         KindEffect,
		Dependencies: e.DependencyCount(),
		Disposed:     e.disposed,
	}
}
