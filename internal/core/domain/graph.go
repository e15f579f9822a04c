// Package domain contains the core domain models for dependency closures, archives and loaders.
package domain

import (
	"iter"
	"slices"

	"go.trai.ch/zerr"
)

// DependencyGraph records the reference edges accepted while computing one closure.
// Nodes are unit names; an edge A -> B means A's symbol table references B.
// The graph may contain cycles.
type DependencyGraph struct {
	edges map[UnitName][]UnitName
	order []UnitName
}

// NewDependencyGraph creates an empty graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		edges: make(map[UnitName][]UnitName),
	}
}

// AddNode adds a node if it is not present yet.
func (g *DependencyGraph) AddNode(n UnitName) {
	if _, ok := g.edges[n]; ok {
		return
	}
	g.edges[n] = nil
	g.order = append(g.order, n)
}

// AddEdge records that from references to. Both nodes are added implicitly.
// Duplicate edges are ignored.
func (g *DependencyGraph) AddEdge(from, to UnitName) {
	g.AddNode(from)
	g.AddNode(to)
	if slices.Contains(g.edges[from], to) {
		return
	}
	g.edges[from] = append(g.edges[from], to)
}

// RemoveNode drops a node and every edge pointing at it.
// Used when a discovered unit turns out to be missing.
func (g *DependencyGraph) RemoveNode(n UnitName) {
	if _, ok := g.edges[n]; !ok {
		return
	}
	delete(g.edges, n)
	g.order = slices.DeleteFunc(g.order, func(o UnitName) bool { return o == n })
	for from, tos := range g.edges {
		g.edges[from] = slices.DeleteFunc(tos, func(t UnitName) bool { return t == n })
	}
}

// Len returns the number of nodes.
func (g *DependencyGraph) Len() int {
	return len(g.order)
}

// Nodes yields nodes in discovery order.
func (g *DependencyGraph) Nodes() iter.Seq[UnitName] {
	return func(yield func(UnitName) bool) {
		for _, n := range g.order {
			if !yield(n) {
				return
			}
		}
	}
}

// Edges returns the names referenced by from, in discovery order.
func (g *DependencyGraph) Edges(from UnitName) []UnitName {
	return slices.Clone(g.edges[from])
}

// Dependents returns every node that references to, sorted.
func (g *DependencyGraph) Dependents(to UnitName) []UnitName {
	var res []UnitName
	for _, from := range g.order {
		if slices.Contains(g.edges[from], to) {
			res = append(res, from)
		}
	}
	slices.SortFunc(res, UnitName.Compare)
	return res
}

// PathTo returns the shortest reference chain from root to target, both inclusive.
func (g *DependencyGraph) PathTo(root, target UnitName) ([]UnitName, error) {
	if _, ok := g.edges[root]; !ok {
		return nil, zerr.With(zerr.Wrap(ErrNoPathFound, "root is not part of the graph"), "unit", root.String())
	}

	parent := map[UnitName]UnitName{root: {}}
	queue := []UnitName{root}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == target {
			return g.buildPath(parent, root, target), nil
		}
		for _, next := range g.edges[cur] {
			if _, seen := parent[next]; seen {
				continue
			}
			parent[next] = cur
			queue = append(queue, next)
		}
	}

	err := zerr.With(zerr.Wrap(ErrNoPathFound, "target is not reachable"), "from", root.String())
	return nil, zerr.With(err, "to", target.String())
}

func (g *DependencyGraph) buildPath(parent map[UnitName]UnitName, root, target UnitName) []UnitName {
	path := []UnitName{target}
	for cur := target; cur != root; {
		cur = parent[cur]
		path = append(path, cur)
	}
	slices.Reverse(path)
	return path
}
