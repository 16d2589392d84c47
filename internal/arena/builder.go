package arena

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/vk/reactsynth/internal/automaton"
	"github.com/vk/reactsynth/internal/ctxlog"
	"github.com/vk/reactsynth/internal/valuation"
)

// Build creates the arena of g over the given input and output signals.
func Build(ctx context.Context, g *automaton.Graph, inputs, outputs []string) (*Arena, error) {
	logger := ctxlog.FromContext(ctx)

	if g == nil {
		return nil, fmt.Errorf("arena: nil automaton")
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("arena: %w", err)
	}
	inIdx, outIdx, err := indexSignals(inputs, outputs)
	if err != nil {
		return nil, err
	}

	a := &Arena{
		Inputs:  append([]string(nil), inputs...),
		Outputs: append([]string(nil), outputs...),
	}
	nIn := a.InputValuations()
	a.Vertices = make([]*Vertex, g.Len()*a.stride())
	for _, node := range g.Nodes {
		env := &Vertex{ID: a.EnvVertex(node.ID), Role: RolePlant, State: node.ID, Input: -1}
		if node.ID == g.Init {
			env.Role = RoleInitialPlant
			a.Initial = env.ID
		}
		if node.Accepting {
			env.Color = ColorFinal
		}
		a.Vertices[env.ID] = env
		for v := 0; v < nIn; v++ {
			cv := &Vertex{ID: a.ControlVertex(node.ID, v), Role: RoleControl, State: node.ID, Input: v}
			a.Vertices[cv.ID] = cv
			env.Edges = append(env.Edges, &Edge{Source: env.ID, Dest: cv.ID, Labels: []int{v}})
		}
	}

	unknown := make(map[string]struct{})
	merged := make(map[[2]int]*Edge)
	for _, e := range g.Edges {
		gd := parseGuard(e.Guard, inIdx, outIdx, len(inputs), len(outputs))
		for _, lit := range gd.unknown {
			if _, seen := unknown[lit]; !seen {
				unknown[lit] = struct{}{}
				logger.Warn("Guard literal names no declared signal, treating it as unconstrained.",
					"literal", lit, "guard", e.Guard)
			}
		}
		if gd.contradictory {
			continue
		}
		outs := gd.out.Expand()
		if len(outs) == 0 {
			continue
		}
		dest := a.EnvVertex(e.Dest)
		for _, v := range gd.in.Expand() {
			cv := a.ControlVertex(e.Source, v)
			key := [2]int{cv, dest}
			if existing, ok := merged[key]; ok {
				existing.Labels = unionSorted(existing.Labels, outs)
				continue
			}
			edge := &Edge{Source: cv, Dest: dest, Labels: append([]int(nil), outs...)}
			merged[key] = edge
			a.Vertices[cv].Edges = append(a.Vertices[cv].Edges, edge)
		}
	}

	for lit := range unknown {
		a.UnknownLiterals = append(a.UnknownLiterals, lit)
	}
	sort.Strings(a.UnknownLiterals)

	logger.Debug("Built game arena.",
		"automaton_states", g.Len(), "vertices", len(a.Vertices),
		"final", len(a.FinalVertices()), "unknown_literals", len(a.UnknownLiterals))
	return a, nil
}

func indexSignals(inputs, outputs []string) (map[string]int, map[string]int, error) {
	if len(inputs) > valuation.MaxSignals || len(outputs) > valuation.MaxSignals {
		return nil, nil, fmt.Errorf("arena: at most %d inputs and %d outputs are supported", valuation.MaxSignals, valuation.MaxSignals)
	}
	seen := make(map[string]struct{})
	index := func(names []string) (map[string]int, error) {
		m := make(map[string]int, len(names))
		for i, name := range names {
			if name == "" {
				return nil, fmt.Errorf("arena: empty signal name")
			}
			if _, dup := seen[name]; dup {
				return nil, fmt.Errorf("arena: signal %q declared twice", name)
			}
			seen[name] = struct{}{}
			m[name] = i
		}
		return m, nil
	}
	inIdx, err := index(inputs)
	if err != nil {
		return nil, nil, err
	}
	outIdx, err := index(outputs)
	if err != nil {
		return nil, nil, err
	}
	return inIdx, outIdx, nil
}

type guard struct {
	in            valuation.Pattern
	out           valuation.Pattern
	unknown       []string
	contradictory bool
}

// parseGuard reads a conjunction such as "a&!b". Literals over signals
// that were not declared do not constrain anything.
func parseGuard(s string, inIdx, outIdx map[string]int, nIn, nOut int) guard {
	gd := guard{in: valuation.NewPattern(nIn), out: valuation.NewPattern(nOut)}
	s = strings.TrimSpace(s)
	if s == automaton.NoGuard || s == "" {
		return gd
	}
	for _, lit := range strings.Split(s, "&") {
		lit = strings.TrimSpace(lit)
		if lit == "" {
			continue
		}
		value := true
		name := lit
		if strings.HasPrefix(lit, "!") {
			value = false
			name = strings.TrimSpace(lit[1:])
		}
		if pos, ok := inIdx[name]; ok {
			if !gd.in.Require(pos, value) {
				gd.contradictory = true
			}
			continue
		}
		if pos, ok := outIdx[name]; ok {
			if !gd.out.Require(pos, value) {
				gd.contradictory = true
			}
			continue
		}
		gd.unknown = append(gd.unknown, name)
	}
	return gd
}

func unionSorted(a, b []int) []int {
	set := make(map[int]struct{}, len(a)+len(b))
	for _, x := range a {
		set[x] = struct{}{}
	}
	for _, x := range b {
		set[x] = struct{}{}
	}
	out := make([]int, 0, len(set))
	for x := range set {
		out = append(out, x)
	}
	sort.Ints(out)
	return out
}
