package extract

import (
	"context"
	"fmt"
	"strconv"

	"github.com/vk/reactsynth/internal/arena"
	"github.com/vk/reactsynth/internal/ctxlog"
	"github.com/vk/reactsynth/internal/mealy"
	"github.com/vk/reactsynth/internal/reduce"
	"github.com/vk/reactsynth/internal/session"
	"github.com/vk/reactsynth/internal/solver"
	"github.com/vk/reactsynth/internal/valuation"
)

// Policy selects how many edges are kept per state and input.
type Policy int

const (
	Deterministic Policy = iota
	Pervasive
)

func (p Policy) String() string {
	if p == Pervasive {
		return "pervasive"
	}
	return "deterministic"
}

// Stats reports what decoding dropped.
type Stats struct {
	SkippedIDs int
	// Unresolved counts moves that had no usable label or choice.
	Unresolved int
}

type stateInput struct {
	state string
	input string
}

// Buechi builds a controller from a Büchi strategy on an arena. Machine
// states are automaton states.
func Buechi(ctx context.Context, sp *solver.Space, strategy session.Node, a *arena.Arena) (*mealy.Machine, Stats, error) {
	var stats Stats
	pairs, skipped, err := sp.Pairs(strategy)
	if err != nil {
		return nil, stats, err
	}
	stats.SkippedIDs = skipped

	nIn, nOut := len(a.Inputs), len(a.Outputs)
	m := mealy.New(a.Inputs, a.Outputs)
	m.Initial = strconv.Itoa(a.StateOf(a.Initial))
	m.AddState(m.Initial)
	chosen := make(map[stateInput]struct{})
	for _, p := range pairs {
		src := a.Vertices[p[0]]
		if src.IsEnv() {
			stats.Unresolved++
			continue
		}
		e, ok := a.EdgeBetween(p[0], p[1])
		if !ok || len(e.Labels) == 0 {
			stats.Unresolved++
			continue
		}
		key := stateInput{state: strconv.Itoa(src.State), input: valuation.String(src.Input, nIn)}
		if _, done := chosen[key]; done {
			continue
		}
		chosen[key] = struct{}{}
		m.AddEdge(mealy.Edge{
			Source: key.state,
			Dest:   strconv.Itoa(a.StateOf(p[1])),
			Input:  key.input,
			Output: valuation.String(e.Labels[0], nOut),
		})
	}

	out := m.Reachable()
	logDecoded(ctx, "buechi", out, stats)
	return out, stats, nil
}

type choice struct {
	dest   *reduce.Class
	output int
}

// Safety builds a controller from a safety strategy on a reduced game.
// Machine states are environment class ids.
func Safety(ctx context.Context, sp *solver.Space, strategy session.Node, rg *reduce.Game, inputs, outputs []string, policy Policy) (*mealy.Machine, Stats, error) {
	var stats Stats
	pairs, skipped, err := sp.Pairs(strategy)
	if err != nil {
		return nil, stats, err
	}
	stats.SkippedIDs = skipped

	choices := make(map[int][]choice)
	for _, p := range pairs {
		c := rg.Classes[p[0]]
		if c.IsEnv {
			stats.Unresolved++
			continue
		}
		if policy == Deterministic && len(choices[c.ID]) > 0 {
			continue
		}
		found := false
		for o, succ := range c.Successors {
			if succ.ID != p[1] {
				continue
			}
			found = true
			choices[c.ID] = append(choices[c.ID], choice{dest: succ, output: o})
			if policy == Deterministic {
				break
			}
		}
		if !found {
			stats.Unresolved++
		}
	}

	nIn, nOut := len(inputs), len(outputs)
	m := mealy.New(inputs, outputs)
	m.Initial = strconv.Itoa(rg.Initial.ID)
	m.AddState(m.Initial)
	visited := map[int]bool{rg.Initial.ID: true}
	queue := []*reduce.Class{rg.Initial}
	for len(queue) > 0 {
		env := queue[0]
		queue = queue[1:]
		for v, ctrl := range env.Successors {
			picks := choices[ctrl.ID]
			if len(picks) == 0 {
				stats.Unresolved++
				continue
			}
			for _, ch := range picks {
				m.AddEdge(mealy.Edge{
					Source: strconv.Itoa(env.ID),
					Dest:   strconv.Itoa(ch.dest.ID),
					Input:  valuation.String(v, nIn),
					Output: valuation.String(ch.output, nOut),
				})
				if !visited[ch.dest.ID] {
					visited[ch.dest.ID] = true
					queue = append(queue, ch.dest)
				}
			}
		}
	}

	out := m.Reachable()
	logDecoded(ctx, "safety-"+policy.String(), out, stats)
	return out, stats, nil
}

// ProductLayout names the variables of a product relation.
type ProductLayout struct {
	Inputs      []int
	Outputs     []int
	Pre         []int
	Post        []int
	InputNames  []string
	OutputNames []string
}

// Product builds a deterministic controller from a relation over
// inputs, outputs and current/next state bits. States are named by their
// bit pattern.
func Product(ctx context.Context, s *session.Session, layout ProductLayout, rel session.Node, initial string) (*mealy.Machine, Stats, error) {
	var stats Stats
	if len(layout.Pre) != len(layout.Post) {
		return nil, stats, fmt.Errorf("extract: %d current bits but %d next bits", len(layout.Pre), len(layout.Post))
	}
	cubes, err := s.Assignments(rel)
	if err != nil {
		return nil, stats, err
	}

	width := len(layout.Pre)
	nIn, nOut := len(layout.Inputs), len(layout.Outputs)
	m := mealy.New(layout.InputNames, layout.OutputNames)
	m.Initial = initial
	m.AddState(initial)
	chosen := make(map[stateInput]struct{})
	for _, cube := range cubes {
		dst := cube.Values(layout.Post)[0]
		out := cube.Values(layout.Outputs)[0]
		for _, src := range cube.Values(layout.Pre) {
			for _, in := range cube.Values(layout.Inputs) {
				key := stateInput{state: valuation.String(src, width), input: valuation.String(in, nIn)}
				if _, done := chosen[key]; done {
					continue
				}
				chosen[key] = struct{}{}
				m.AddEdge(mealy.Edge{
					Source: key.state,
					Dest:   valuation.String(dst, width),
					Input:  key.input,
					Output: valuation.String(out, nOut),
				})
			}
		}
	}

	result := m.Reachable()
	logDecoded(ctx, "product", result, stats)
	return result, stats, nil
}

func logDecoded(ctx context.Context, kind string, m *mealy.Machine, stats Stats) {
	logger := ctxlog.FromContext(ctx)
	if stats.SkippedIDs > 0 {
		logger.Warn("Skipped decoded ids outside the game.", "kind", kind, "skipped_ids", stats.SkippedIDs)
	}
	logger.Debug("Extracted controller.",
		"kind", kind, "states", m.Len(), "edges", len(m.Edges),
		"skipped_ids", stats.SkippedIDs, "unresolved", stats.Unresolved)
}
