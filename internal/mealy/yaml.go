package mealy

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type document struct {
	Inputs      []string     `yaml:"inputs"`
	Outputs     []string     `yaml:"outputs"`
	Initial     string       `yaml:"initial"`
	States      []string     `yaml:"states"`
	Transitions []transition `yaml:"transitions"`
}

type transition struct {
	From   string `yaml:"from"`
	To     string `yaml:"to"`
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

// MarshalYAML implements yaml.Marshaler.
func (m *Machine) MarshalYAML() (any, error) {
	doc := document{
		Inputs:      nonNil(m.Inputs),
		Outputs:     nonNil(m.Outputs),
		Initial:     m.Initial,
		States:      nonNil(m.States),
		Transitions: make([]transition, 0, len(m.Edges)),
	}
	for _, e := range m.Edges {
		doc.Transitions = append(doc.Transitions, transition{From: e.Source, To: e.Dest, Input: e.Input, Output: e.Output})
	}
	return doc, nil
}

// ParseYAML reads a machine written by MarshalYAML.
func ParseYAML(data []byte) (*Machine, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("mealy: decoding yaml: %w", err)
	}
	m := New(doc.Inputs, doc.Outputs)
	m.Initial = doc.Initial
	for _, s := range doc.States {
		m.AddState(s)
	}
	for _, t := range doc.Transitions {
		m.AddEdge(Edge{Source: t.From, Dest: t.To, Input: t.Input, Output: t.Output})
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func nonNil(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}
