package domain

import (
	"maps"
	"slices"
)

// Closure is the result of one dependency closure computation.
// The name set is unordered; accessors return it sorted for stable output.
type Closure struct {
	roots    []UnitName
	payloads map[UnitName][]byte
	missing  map[UnitName]error
	graph    *DependencyGraph
}

// NewClosure creates an empty closure for the given roots.
func NewClosure(roots []UnitName) *Closure {
	return &Closure{
		roots:    slices.Clone(roots),
		payloads: make(map[UnitName][]byte),
		missing:  make(map[UnitName]error),
		graph:    NewDependencyGraph(),
	}
}

// Add records a resolved unit and its payload.
func (c *Closure) Add(name UnitName, payload []byte) {
	c.payloads[name] = payload
	c.graph.AddNode(name)
}

// Drop records a unit that was discovered but could not be located or parsed.
// It is removed from the graph so it never appears in the result.
func (c *Closure) Drop(name UnitName, cause error) {
	delete(c.payloads, name)
	c.missing[name] = cause
	c.graph.RemoveNode(name)
}

// Roots returns the names the closure was seeded with.
func (c *Closure) Roots() []UnitName {
	return slices.Clone(c.roots)
}

// Contains reports whether name is part of the closure.
func (c *Closure) Contains(name UnitName) bool {
	_, ok := c.payloads[name]
	return ok
}

// Len returns the number of units in the closure.
func (c *Closure) Len() int {
	return len(c.payloads)
}

// Names returns the closure's names, sorted.
func (c *Closure) Names() []UnitName {
	return slices.SortedFunc(maps.Keys(c.payloads), UnitName.Compare)
}

// Payload returns the binary form recorded for name.
func (c *Closure) Payload(name UnitName) ([]byte, bool) {
	p, ok := c.payloads[name]
	return p, ok
}

// Payloads returns a copy of the name to payload mapping, ready for packing.
func (c *Closure) Payloads() map[UnitName][]byte {
	return maps.Clone(c.payloads)
}

// Missing returns the dropped names, sorted.
func (c *Closure) Missing() []UnitName {
	return slices.SortedFunc(maps.Keys(c.missing), UnitName.Compare)
}

// IsMissing reports whether name was discovered and then dropped.
func (c *Closure) IsMissing(name UnitName) bool {
	_, ok := c.missing[name]
	return ok
}

// MissingCause returns why name was dropped.
func (c *Closure) MissingCause(name UnitName) error {
	return c.missing[name]
}

// Graph returns the reference graph recorded during the computation.
func (c *Closure) Graph() *DependencyGraph {
	return c.graph
}
