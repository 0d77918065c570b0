package reactive

import "fmt"

type WriteableSignal[T comparable] struct {
	baseNode
	publisher
	value T
}

func Signal[T comparable](rs *ReactiveSystem, initialValue T, opts ...Option) *WriteableSignal[T] {
	o := applyOptions(opts)
	return &WriteableSignal[T]{
		baseNode:  newBaseNode(rs, o.name),
		publisher: newPublisher(),
		value:     initialValue,
	}
}

func (s *WriteableSignal[T]) Kind() Kind {
	return KindSignal
}

func (s *WriteableSignal[T]) DependencyCount() int {
	return 0
}

// Value returns the current value and subscribes the running computed or
// effect, if any.
func (s *WriteableSignal[T]) Value() T {
	s.rs.track(s)
	return s.value
}

// Read is Value for the Readable interface. It never fails.
func (s *WriteableSignal[T]) Read() (T, error) {
	return s.Value(), nil
}

// Peek returns the current value without subscribing.
func (s *WriteableSignal[T]) Peek() T {
	return s.value
}

// SetValue stores v and notifies subscribers. Writing a value identical to the
// current one is a no-op. The returned error joins whatever the effects run as
// a consequence of this write returned; inside a batch it is always nil.
func (s *WriteableSignal[T]) SetValue(v T) error {
	if same(s.value, v) {
		return nil
	}
	s.value = v
	return s.rs.notify(s.subscribers())
}

func (s *WriteableSignal[T]) Update(fn func(oldValue T) T) error {
	if fn == nil {
		return fmt.Errorf("signal %s update: %w", label(s), ErrInvalidOperation)
	}
	return s.SetValue(fn(s.value))
}

func (s *WriteableSignal[T]) SetAny(v any) error {
	typed, ok := v.(T)
	if !ok {
		return fmt.Errorf("signal %s: cannot assign %T to %T: %w", label(s), v, s.value, ErrInvalidOperation)
	}
	return s.SetValue(typed)
}

func (s *WriteableSignal[T]) describe() NodeInfo {
	return NodeInfo{
		ID:           s.id,
		Name:         s.name,
		Kind:         KindSignal,
		Subscribers:  s.SubscriberCount(),
		Dependencies: 0,
	}
}
