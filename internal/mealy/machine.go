package mealy

import (
	"fmt"
	"io"

	"github.com/vk/reactsynth/internal/valuation"
)

// Edge is a transition labelled input/output.
type Edge struct {
	Source string
	Dest   string
	Input  string
	Output string
}

// Machine is a Mealy machine. States keep insertion order.
type Machine struct {
	Inputs  []string
	Outputs []string
	States  []string
	Initial string
	Edges   []Edge

	index map[string]int
	seen  map[Edge]struct{}
}

// New returns an empty machine over the given signals.
func New(inputs, outputs []string) *Machine {
	return &Machine{
		Inputs:  append([]string(nil), inputs...),
		Outputs: append([]string(nil), outputs...),
		index:   make(map[string]int),
		seen:    make(map[Edge]struct{}),
	}
}

// Trivial returns a one-state machine named "0" that answers every input
// with output valuation 0.
func Trivial(inputs, outputs []string) *Machine {
	m := New(inputs, outputs)
	m.Initial = "0"
	m.AddState("0")
	zero := valuation.String(0, len(outputs))
	for _, in := range valuation.All(len(inputs)) {
		m.AddEdge(Edge{Source: "0", Dest: "0", Input: in, Output: zero})
	}
	return m
}

// HasSolution reports whether the machine has at least one transition.
func (m *Machine) HasSolution() bool {
	return len(m.Edges) > 0
}

// Len returns the number of states.
func (m *Machine) Len() int {
	return len(m.States)
}

// AddState registers a state if it is new.
func (m *Machine) AddState(name string) {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if _, ok := m.index[name]; ok {
		return
	}
	m.index[name] = len(m.States)
	m.States = append(m.States, name)
}

// HasState reports whether name is a state.
func (m *Machine) HasState(name string) bool {
	_, ok := m.index[name]
	return ok
}

// StateIndex returns the position of a state in States.
func (m *Machine) StateIndex(name string) (int, bool) {
	i, ok := m.index[name]
	return i, ok
}

// AddEdge adds e and its endpoints. Duplicate edges are ignored.
func (m *Machine) AddEdge(e Edge) {
	if m.seen == nil {
		m.seen = make(map[Edge]struct{})
	}
	if _, dup := m.seen[e]; dup {
		return
	}
	m.seen[e] = struct{}{}
	m.AddState(e.Source)
	m.AddState(e.Dest)
	m.Edges = append(m.Edges, e)
}

// Outgoing returns the edges leaving state.
func (m *Machine) Outgoing(state string) []Edge {
	var out []Edge
	for _, e := range m.Edges {
		if e.Source == state {
			out = append(out, e)
		}
	}
	return out
}

// Step returns the first edge that reads input from state.
func (m *Machine) Step(state, input string) (Edge, bool) {
	for _, e := range m.Edges {
		if e.Source == state && e.Input == input {
			return e, true
		}
	}
	return Edge{}, false
}

// IsDeterministic reports whether each state reads each input at most once.
func (m *Machine) IsDeterministic() bool {
	type key struct{ state, input string }
	seen := make(map[key]struct{}, len(m.Edges))
	for _, e := range m.Edges {
		k := key{e.Source, e.Input}
		if _, dup := seen[k]; dup {
			return false
		}
		seen[k] = struct{}{}
	}
	return true
}

// IsComplete reports whether every state reads every input valuation.
func (m *Machine) IsComplete() bool {
	inputs := valuation.All(len(m.Inputs))
	for _, s := range m.States {
		for _, in := range inputs {
			if _, ok := m.Step(s, in); !ok {
				return false
			}
		}
	}
	return true
}

// Reachable returns a copy keeping only the states reachable from the
// initial state and the edges leaving them.
func (m *Machine) Reachable() *Machine {
	out := New(m.Inputs, m.Outputs)
	out.Initial = m.Initial
	if m.Initial == "" {
		return out
	}
	reached := map[string]bool{m.Initial: true}
	for changed := true; changed; {
		changed = false
		for _, e := range m.Edges {
			if reached[e.Source] && !reached[e.Dest] {
				reached[e.Dest] = true
				changed = true
			}
		}
	}
	out.AddState(m.Initial)
	for _, e := range m.Edges {
		if reached[e.Source] {
			out.AddEdge(e)
		}
	}
	return out
}

// Validate checks that labels have the declared widths and the initial
// state exists.
func (m *Machine) Validate() error {
	if m.Len() > 0 && !m.HasState(m.Initial) {
		return fmt.Errorf("mealy: initial state %q is not a state", m.Initial)
	}
	for _, e := range m.Edges {
		if len(e.Input) != len(m.Inputs) || len(e.Output) != len(m.Outputs) {
			return fmt.Errorf("mealy: edge %s->%s has label %s/%s, want widths %d/%d",
				e.Source, e.Dest, e.Input, e.Output, len(m.Inputs), len(m.Outputs))
		}
	}
	return nil
}

// WriteText prints the machine one edge per line.
func (m *Machine) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "inputs: %v\noutputs: %v\ninitial: %s\nstates: %d\n",
		m.Inputs, m.Outputs, m.Initial, m.Len()); err != nil {
		return err
	}
	for _, e := range m.Edges {
		if _, err := fmt.Fprintf(w, "  %s --[%s/%s]--> %s\n", e.Source, e.Input, e.Output, e.Dest); err != nil {
			return err
		}
	}
	return nil
}
