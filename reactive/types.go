package reactive

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

type Kind uint8

const (
	KindSignal Kind = iota
	KindComputed
	KindEffect
)

func (k Kind) String() string {
	switch k {
	case KindSignal:
		return "signal"
	case KindComputed:
		return "computed"
	case KindEffect:
		return "effect"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Node is the introspection surface shared by signals, computeds and effects.
// The counts are diagnostic only and never drive evaluation.
type Node interface {
	ID() uint64
	Name() string
	Kind() Kind
	SubscriberCount() int
	DependencyCount() int
}

// Readable is anything whose value can be read inside a tracked evaluation.
type Readable[T any] interface {
	Node
	Read() (T, error)
}

// Cell is the type-erased write surface used by tooling.
type Cell interface {
	Node
	SetAny(v any) error
}

type ErrFn func() error

// dependency is a node that subscribers can read.
type dependency interface {
	Node
	addSub(sub subscriber)
	removeSub(sub subscriber)
	subscribers() []subscriber
}

// subscriber is a node that records what it reads while it evaluates.
type subscriber interface {
	Node
	addDep(dep dependency) bool
	dependencies() []dependency
	markStale()
}

type baseNode struct {
	rs   *ReactiveSystem
	id   uint64
	name string
}

func newBaseNode(rs *ReactiveSystem, name string) baseNode {
	return baseNode{rs: rs, id: rs.newID(), name: name}
}

func (n *baseNode) ID() uint64 {
	return n.id
}

func (n *baseNode) Name() string {
	return n.name
}

// publisher holds the non-owning back references to everything that read a node.
type publisher struct {
	subs mapset.Set[subscriber]
}

func newPublisher() publisher {
	return publisher{subs: mapset.NewThreadUnsafeSet[subscriber]()}
}

func (p *publisher) addSub(sub subscriber) {
	p.subs.Add(sub)
}

func (p *publisher) removeSub(sub subscriber) {
	p.subs.Remove(sub)
}

// subscribers returns a snapshot, so callers may mutate the set while iterating.
func (p *publisher) subscribers() []subscriber {
	return p.subs.ToSlice()
}

func (p *publisher) SubscriberCount() int {
	return p.subs.Cardinality()
}

// tracker holds the dependencies read during the last evaluation.
type tracker struct {
	deps mapset.Set[dependency]
}

func newTracker() tracker {
	return tracker{deps: mapset.NewThreadUnsafeSet[dependency]()}
}

func (t *tracker) addDep(dep dependency) bool {
	return t.deps.Add(dep)
}

func (t *tracker) dependencies() []dependency {
	return t.deps.ToSlice()
}

func (t *tracker) DependencyCount() int {
	return t.deps.Cardinality()
}

// unlinkAll removes self from every dependency and empties the set.
func (t *tracker) unlinkAll(self subscriber) {
	for _, dep := range t.deps.ToSlice() {
		dep.removeSub(self)
	}
	t.deps.Clear()
}

func label(n Node) string {
	if name := n.Name(); name != "" {
		return name
	}
	return fmt.Sprintf("%s#%d", n.Kind(), n.ID())
}

// same reports identity equality. A float NaN is treated as equal to NaN so
// that rewriting NaN is not a change. Composite values use plain ==, so a
// struct holding a NaN never equals anything and every write to it notifies.
func same[T comparable](a, b T) bool {
	switch x := any(a).(type) {
	case float64:
		y := any(b).(float64)
		return x == y || (x != x && y != y)
	case float32:
		y := any(b).(float32)
		return x == y || (x != x && y != y)
	}
	return a == b
}

type Option func(*options)

type options struct {
	name     string
	deferred bool
}

// WithName attaches a debug name, shown by the inspect tooling and in errors.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// Deferred creates an effect without running it. Call Run to start tracking.
// Signals and computeds ignore it.
func Deferred() Option {
	return func(o *options) {
		o.deferred = true
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
