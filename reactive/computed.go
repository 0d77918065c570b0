package reactive

import "fmt"

// ReadonlySignal is a lazily evaluated, memoized value derived from other
// signals. Its dependencies are rebuilt from scratch on every recompute, so
// branches that are no longer taken stop triggering it.
type ReadonlySignal[T comparable] struct {
	baseNode
	publisher
	tracker

	value      T
	getter     func() (T, error)
	dirty      bool
	evaluating bool
}

// Computed creates a derived signal. getter must be a pure function of the
// signals it reads and must not write to any of them. It does not run until
// the first read.
func Computed[T comparable](rs *ReactiveSystem, getter func() (T, error), opts ...Option) *ReadonlySignal[T] {
	o := applyOptions(opts)
	return &ReadonlySignal[T]{
		baseNode:  newBaseNode(rs, o.name),
		publisher: newPublisher(),
		tracker:   newTracker(),
		getter:    getter,
		dirty:     true,
	}
}

func (c *ReadonlySignal[T]) Kind() Kind {
	return KindComputed
}

// Value recomputes if a dependency changed since the last read, subscribes the
// running computed or effect and returns the cached value.
func (c *ReadonlySignal[T]) Value() (T, error) {
	if c.dirty {
		if err := c.recompute(); err != nil {
			var zero T
			return zero, err
		}
	}
	c.rs.track(c)
	return c.value, nil
}

func (c *ReadonlySignal[T]) Read() (T, error) {
	return c.Value()
}

// Peek is Value without subscribing.
func (c *ReadonlySignal[T]) Peek() (T, error) {
	if c.dirty {
		if err := c.recompute(); err != nil {
			var zero T
			return zero, err
		}
	}
	return c.value, nil
}

// Dirty reports whether the next read will recompute.
func (c *ReadonlySignal[T]) Dirty() bool {
	return c.dirty
}

// SetAny always fails; computeds are read-only.
func (c *ReadonlySignal[T]) SetAny(v any) error {
	return fmt.Errorf("computed %s is read-only: %w", label(c), ErrInvalidOperation)
}

func (c *ReadonlySignal[T]) recompute() error {
	if c.evaluating {
		return c.rs.circular(c)
	}
	if c.getter == nil {
		return fmt.Errorf("computed %s has no getter: %w", label(c), ErrInvalidOperation)
	}

	c.unlinkAll(c)
	c.evaluating = true
	ok := false
	defer func() {
		c.evaluating = false
		if !ok {
			// a failed run keeps no partial dependencies
			c.unlinkAll(c)
		}
	}()

	var v T
	err := c.rs.evaluate(c, func() (err error) {
		v, err = c.getter()
		return err
	})
	if err != nil {
		return err
	}

	c.value = v
	c.dirty = false
	ok = true
	return nil
}

func (c *ReadonlySignal[T]) markStale() {
	if c.dirty {
		return
	}
	c.dirty = true
	for _, sub := range c.subscribers() {
		sub.markStale()
	}
}

func (c *ReadonlySignal[T]) describe() NodeInfo {
	return NodeInfo{
		ID:           c.id,
		Name:         c.name,
		Kind:         KindComputed,
		Subscribers:  c.SubscriberCount(),
		Dependencies: c.DependencyCount(),
		Dirty:        c.dirty,
	}
}
