package automaton

import (
	"context"
	"fmt"
)

// NoGuard is the guard of an unconstrained edge.
const NoGuard = "-"

// Node is an automaton state.
type Node struct {
	ID        int
	Accepting bool
}

// Edge is a guarded transition between two nodes.
type Edge struct {
	Source int
	Dest   int
	Guard  string
}

// Graph is a Büchi automaton over signal valuations.
type Graph struct {
	Nodes []Node
	Edges []Edge
	Init  int
}

// Translator turns an LTL formula into an equivalent Büchi automaton.
type Translator interface {
	Translate(ctx context.Context, formula string) (*Graph, error)
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.Nodes)
}

// Outgoing returns the edges leaving node id, in insertion order.
func (g *Graph) Outgoing(id int) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.Source == id {
			out = append(out, e)
		}
	}
	return out
}

// AcceptingCount returns the number of accepting nodes.
func (g *Graph) AcceptingCount() int {
	n := 0
	for _, node := range g.Nodes {
		if node.Accepting {
			n++
		}
	}
	return n
}

// IsEmptyLanguage reports whether the automaton accepts no word. It relies
// on the translator having pruned every node that cannot reach an
// accepting cycle.
func (g *Graph) IsEmptyLanguage() bool {
	return g.AcceptingCount() == 0
}

// Validate checks that ids are dense and every edge stays inside the graph.
func (g *Graph) Validate() error {
	for i, node := range g.Nodes {
		if node.ID != i {
			return fmt.Errorf("automaton: node at position %d has id %d", i, node.ID)
		}
	}
	if g.Init < 0 || g.Init >= len(g.Nodes) {
		return fmt.Errorf("automaton: initial node %d out of range", g.Init)
	}
	for _, e := range g.Edges {
		if e.Source < 0 || e.Source >= len(g.Nodes) || e.Dest < 0 || e.Dest >= len(g.Nodes) {
			return fmt.Errorf("automaton: edge %d->%d out of range", e.Source, e.Dest)
		}
		if e.Guard == "" {
			return fmt.Errorf("automaton: edge %d->%d has an empty guard", e.Source, e.Dest)
		}
	}
	return nil
}
