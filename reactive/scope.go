package reactive

import "fmt"

// EffectScope owns every effect created while one of its Run calls is on the
// stack, including those of nested scopes, so they can be stopped together.
type EffectScope struct {
	rs       *ReactiveSystem
	effects  []*EffectRunner
	children []*EffectScope
	disposed bool
}

// NewEffectScope creates a scope and runs fn inside it. The scope is returned
// even when fn fails so that whatever it created can still be disposed.
func NewEffectScope(rs *ReactiveSystem, fn ErrFn) (*EffectScope, error) {
	if fn == nil {
		return nil, fmt.Errorf("effect scope: %w", ErrInvalidOperation)
	}
	s := &EffectScope{rs: rs}
	if parent := rs.activeScope; parent != nil {
		parent.children = append(parent.children, s)
	}
	return s, s.Run(fn)
}

// Run executes fn with s as the owner of any effect it creates.
func (s *EffectScope) Run(fn ErrFn) error {
	if fn == nil {
		return fmt.Errorf("effect scope: %w", ErrInvalidOperation)
	}
	if s.disposed {
		return fmt.Errorf("effect scope is disposed: %w", ErrInvalidOperation)
	}

	prev := s.rs.activeScope
	s.rs.activeScope = s
	defer func() {
		s.rs.activeScope = prev
	}()
	return fn()
}

// Effects is the number of effects owned directly by s.
func (s *EffectScope) Effects() int {
	return len(s.effects)
}

func (s *EffectScope) Disposed() bool {
	return s.disposed
}

// Dispose stops every owned effect and nested scope. It is idempotent.
func (s *EffectScope) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	for _, e := range s.effects {
		e.Dispose()
	}
	for _, child := range s.children {
		child.Dispose()
	}
	s.effects, s.children = nil, nil
}
