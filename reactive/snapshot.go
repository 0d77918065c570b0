package reactive

import (
	"cmp"
	"slices"
	"strconv"
)

type NodeInfo struct {
	ID           uint64
	Name         string
	Kind         Kind
	Subscribers  int
	Dependencies int
	Dirty        bool
	Disposed     bool
}

// Label is the name if one was given, otherwise kind#id.
func (n NodeInfo) Label() string {
	if n.Name != "" {
		return n.Name
	}
	return n.Kind.String() + "#" + strconv.FormatUint(n.ID, 10)
}

// Edge points from a dependency to the subscriber that read it.
type Edge struct {
	From uint64
	To   uint64
}

type GraphSnapshot struct {
	Nodes []NodeInfo
	Edges []Edge
}

type describer interface {
	describe() NodeInfo
}

// Snapshot walks every node reachable from roots, following edges in both
// directions, and returns the nodes and edges sorted by ID. It does not read
// any value, so it never triggers a recompute.
func Snapshot(roots ...Node) GraphSnapshot {
	seen := make(map[Node]struct{}, len(roots))
	edges := map[Edge]struct{}{}
	queue := make([]Node, 0, len(roots))
	for _, root := range roots {
		if root == nil {
			continue
		}
		if _, ok := seen[root]; ok {
			continue
		}
		seen[root] = struct{}{}
		queue = append(queue, root)
	}

	visit := func(n Node) {
		if _, ok := seen[n]; ok {
			return
		}
		seen[n] = struct{}{}
		queue = append(queue, n)
	}

	var snap GraphSnapshot
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		if d, ok := n.(describer); ok {
			snap.Nodes = append(snap.Nodes, d.describe())
		} else {
			snap.Nodes = append(snap.Nodes, NodeInfo{
				ID:           n.ID(),
				Name:         n.Name(),
				Kind:         n.Kind(),
				Subscribers:  n.SubscriberCount(),
				Dependencies: n.DependencyCount(),
			})
		}

		if dep, ok := n.(dependency); ok {
			for _, sub := range dep.subscribers() {
				edges[Edge{From: n.ID(), To: sub.ID()}] = struct{}{}
				visit(sub)
			}
		}
		if sub, ok := n.(subscriber); ok {
			for _, dep := range sub.dependencies() {
				edges[Edge{From: dep.ID(), To: n.ID()}] = struct{}{}
				visit(dep)
			}
		}
	}

	for e := range edges {
		snap.Edges = append(snap.Edges, e)
	}
	slices.SortFunc(snap.Nodes, func(a, b NodeInfo) int {
		return cmp.Compare(a.ID, b.ID)
	})
	slices.SortFunc(snap.Edges, func(a, b Edge) int {
		if c := cmp.Compare(a.From, b.From); c != 0 {
			return c
		}
		return cmp.Compare(a.To, b.To)
	})
	return snap
}
