package reactive

import (
	"errors"
	"fmt"
	"log/slog"
)

// ReactiveSystem is the tracking context of one independent graph. It is not
// safe for concurrent use; every signal, computed and effect created from it
// must be used from a single goroutine.
type ReactiveSystem struct {
	activeSub   subscriber
	activeScope *EffectScope
	batchDepth  int
	pending     []*EffectRunner
	pauseStack  []subscriber
	nextID      uint64
	logger      *slog.Logger
}

type SystemOption func(*ReactiveSystem)

func WithLogger(logger *slog.Logger) SystemOption {
	return func(rs *ReactiveSystem) {
		if logger != nil {
			rs.logger = logger
		}
	}
}

func CreateReactiveSystem(opts ...SystemOption) *ReactiveSystem {
	rs := &ReactiveSystem{logger: slog.Default()}
	for _, opt := range opts {
		opt(rs)
	}
	return rs
}

func (rs *ReactiveSystem) newID() uint64 {
	rs.nextID++
	return rs.nextID
}

// Tracking reports whether reads are currently recorded as dependencies.
func (rs *ReactiveSystem) Tracking() bool {
	return rs.activeSub != nil
}

// BatchDepth returns the number of open batch scopes.
func (rs *ReactiveSystem) BatchDepth() int {
	return rs.batchDepth
}

func (rs *ReactiveSystem) setActiveSub(sub subscriber) (prev subscriber) {
	prev = rs.activeSub
	rs.activeSub = sub
	return prev
}

// track links dep to the active subscriber. Both halves of the edge are
// installed together or not at all.
func (rs *ReactiveSystem) track(dep dependency) {
	sub := rs.activeSub
	if sub == nil {
		return
	}
	if sub.addDep(dep) {
		dep.addSub(sub)
	}
}

// evaluate runs fn with sub installed as the active subscriber and restores
// the previous one afterwards, even if fn panics.
func (rs *ReactiveSystem) evaluate(sub subscriber, fn func() error) error {
	prev := rs.setActiveSub(sub)
	defer rs.setActiveSub(prev)
	return fn()
}

func (rs *ReactiveSystem) PauseTracking() {
	rs.pauseStack = append(rs.pauseStack, rs.activeSub)
	rs.activeSub = nil
}

func (rs *ReactiveSystem) ResumeTracking() {
	lastIdx := len(rs.pauseStack) - 1
	if lastIdx < 0 {
		return
	}
	rs.activeSub = rs.pauseStack[lastIdx]
	rs.pauseStack = rs.pauseStack[:lastIdx]
}

// Untrack runs fn without recording any reads as dependencies of the current
// computed or effect.
func Untrack[T any](rs *ReactiveSystem, fn func() (T, error)) (T, error) {
	if fn == nil {
		var zero T
		return zero, fmt.Errorf("untrack: %w", ErrInvalidOperation)
	}
	prev := rs.setActiveSub(nil)
	defer rs.setActiveSub(prev)
	return fn()
}

func (rs *ReactiveSystem) StartBatch() {
	rs.batchDepth++
}

// EndBatch closes a scope opened by StartBatch. Closing the outermost scope
// runs every effect queued while it was open, once each.
func (rs *ReactiveSystem) EndBatch() error {
	if rs.batchDepth == 0 {
		return fmt.Errorf("end batch without start: %w", ErrInvalidOperation)
	}
	rs.batchDepth--
	if rs.batchDepth > 0 {
		return nil
	}
	return rs.flush()
}

// Batch defers effects until fn returns. Nested batches only flush when the
// outermost one closes.
func (rs *ReactiveSystem) Batch(fn func() error) error {
	if fn == nil {
		return fmt.Errorf("batch: %w", ErrInvalidOperation)
	}
	_, err := BatchValue(rs, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// BatchValue is Batch for callbacks that produce a value. Errors from fn and
// from the effects flushed at the end are joined.
func BatchValue[T any](rs *ReactiveSystem, fn func() (T, error)) (result T, err error) {
	if fn == nil {
		return result, fmt.Errorf("batch: %w", ErrInvalidOperation)
	}

	rs.StartBatch()
	defer func() {
		if endErr := rs.EndBatch(); endErr != nil {
			err = errors.Join(err, endErr)
		}
	}()

	return fn()
}

// notify is the notification pass for a changed node. Computeds are marked
// dirty straight away; effects are queued and run when the pass's scope
// closes, so a diamond below the changed node runs each effect once.
func (rs *ReactiveSystem) notify(subs []subscriber) error {
	if len(subs) == 0 {
		return nil
	}
	rs.StartBatch()
	for _, sub := range subs {
		sub.markStale()
	}
	return rs.EndBatch()
}

func (rs *ReactiveSystem) enqueue(e *EffectRunner) {
	rs.pending = append(rs.pending, e)
}

func (rs *ReactiveSystem) flush() error {
	var errs []error
	for len(rs.pending) > 0 {
		queue := rs.pending
		rs.pending = nil
		rs.logger.Debug("reactive: running effects", "effects", len(queue))
		errs = append(errs, rs.runQueue(queue)...)
	}
	return errors.Join(errs...)
}

// runQueue runs every still pending effect of one pass. A panicking effect
// does not stop the others; the first panic is re-raised once the pass is done.
func (rs *ReactiveSystem) runQueue(queue []*EffectRunner) (errs []error) {
	var (
		panicked  bool
		recovered any
	)
	for _, e := range queue {
		if !e.pending || e.disposed {
			continue
		}
		r, ok, err := runRecovered(e)
		if ok {
			rs.logger.Error("reactive: effect panicked", "node", label(e), "panic", r)
			if !panicked {
				panicked, recovered = true, r
			}
			continue
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	if panicked {
		panic(recovered)
	}
	return errs
}

func runRecovered(e *EffectRunner) (recovered any, panicked bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			recovered, panicked = r, true
		}
	}()
	return nil, false, e.Run()
}

func (rs *ReactiveSystem) circular(n Node) error {
	rs.logger.Warn("reactive: circular dependency", "node", label(n), "kind", n.Kind().String())
	return fmt.Errorf("%s %s: %w", n.Kind(), label(n), ErrCircularDependency)
}
