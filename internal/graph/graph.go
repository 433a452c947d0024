// Package graph provides the dependency graph used to order constants
// by the references between them.
package graph

import (
	"slices"
)

// Graph is a dependency graph of reference paths with forward edges.
type Graph struct {
	nodes map[string]struct{}
	edges map[string][]string
}

// New returns a graph with no nodes or edges.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]struct{}),
		edges: make(map[string][]string),
	}
}

// AddNode registers a node. Duplicate calls are no-ops.
func (g *Graph) AddNode(n string) {
	g.nodes[n] = struct{}{}
}

// AddEdge records that "from" depends on "to", meaning "to" must be
// handled before "from". Missing nodes are created implicitly.
// Duplicate edges are ignored.
func (g *Graph) AddEdge(from, to string) {
	g.nodes[from] = struct{}{}
	g.nodes[to] = struct{}{}

	if slices.Contains(g.edges[from], to) {
		return
	}
	g.edges[from] = append(g.edges[from], to)
}

// Dependencies returns the nodes that n depends on (forward edges).
func (g *Graph) Dependencies(n string) []string {
	return g.edges[n]
}

// HasNode reports whether the node exists in the graph.
func (g *Graph) HasNode(n string) bool {
	_, ok := g.nodes[n]
	return ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// ResolutionOrder returns nodes ordered so that dependencies come before
// dependents, using Tarjan's algorithm. Strongly connected components with
// more than one node (or a single node with a self-loop) are reported as
// cycles and excluded from the order. Nodes are visited in sorted order,
// so the result is deterministic.
func (g *Graph) ResolutionOrder() (order []string, cycles [][]string) {
	var (
		index    int
		stack    []string
		onStack  = make(map[string]bool)
		indices  = make(map[string]int)
		lowlinks = make(map[string]int)
	)

	var strongConnect func(n string)
	strongConnect = func(n string) {
		indices[n] = index
		lowlinks[n] = index
		index++
		stack = append(stack, n)
		onStack[n] = true

		for _, dep := range g.edges[n] {
			if _, visited := indices[dep]; !visited {
				strongConnect(dep)
				lowlinks[n] = min(lowlinks[n], lowlinks[dep])
			} else if onStack[dep] {
				lowlinks[n] = min(lowlinks[n], indices[dep])
			}
		}

		if lowlinks[n] == indices[n] {
			var scc []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == n {
					break
				}
			}
			if len(scc) > 1 || slices.Contains(g.edges[scc[0]], scc[0]) {
				slices.Sort(scc)
				cycles = append(cycles, scc)
			} else {
				order = append(order, scc[0])
			}
		}
	}

	sorted := make([]string, 0, len(g.nodes))
	for n := range g.nodes {
		sorted = append(sorted, n)
	}
	slices.Sort(sorted)

	for _, n := range sorted {
		if _, visited := indices[n]; !visited {
			strongConnect(n)
		}
	}

	return order, cycles
}

// HasCycles reports whether the graph contains any cycles.
func (g *Graph) HasCycles() bool {
	_, cycles := g.ResolutionOrder()
	return len(cycles) > 0
}
