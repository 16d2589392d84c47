package reduce

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/reactsynth/internal/arena"
	"github.com/vk/reactsynth/internal/ctxlog"
)

const (
	// DefaultRiskBound is the score at which a class is considered lost.
	DefaultRiskBound = 5
	// DefaultMaxClasses caps the number of classes Reduce will create.
	DefaultMaxClasses = 1 << 20
)

// Options bound the exploration.
type Options struct {
	// UnrollSteps limits exploration depth to 2*UnrollSteps+1 moves.
	UnrollSteps int
	// RiskBound defaults to DefaultRiskBound when not positive.
	RiskBound int
	// MaxClasses defaults to DefaultMaxClasses when not positive.
	MaxClasses int
}

type queued struct {
	class *Class
	depth int
}

// Reduce explores the arena breadth first and returns the safety game.
func Reduce(ctx context.Context, a *arena.Arena, opts Options) (*Game, error) {
	logger := ctxlog.FromContext(ctx)

	if opts.UnrollSteps < 0 {
		return nil, fmt.Errorf("reduce: unroll steps must not be negative, got %d", opts.UnrollSteps)
	}
	bound := opts.RiskBound
	if bound <= 0 {
		bound = DefaultRiskBound
	}
	maxClasses := opts.MaxClasses
	if maxClasses <= 0 {
		maxClasses = DefaultMaxClasses
	}
	maxDepth := 2*opts.UnrollSteps + 1

	finals := a.FinalVertices()
	riskIndex := make(map[int]int, len(finals))
	for j, id := range finals {
		riskIndex[id] = j
	}
	states := a.States()
	nIn, nOut := a.InputValuations(), a.OutputValuations()
	dests := destinations(a, nOut)

	zeroScore := func() [][]int {
		s := make([][]int, states)
		for i := range s {
			s[i] = make([]int, len(finals))
		}
		return s
	}
	overBound := func(score [][]int) bool {
		for _, row := range score {
			for _, x := range row {
				if x >= bound {
					return true
				}
			}
		}
		return false
	}

	initial := &Class{ID: 0, IsEnv: true, Accumulator: []int{a.Initial}, Score: zeroScore(), Input: -1}
	if j, ok := riskIndex[a.Initial]; ok {
		initial.Score[a.StateOf(a.Initial)][j] = 1
	}
	risk := &Class{ID: 1, IsEnv: true, Risk: true, Input: -1}
	g := &Game{Classes: []*Class{initial, risk}, Initial: initial, Risk: risk, Inputs: nIn, Outputs: nOut}
	if overBound(initial.Score) {
		g.Initial = risk
		return g, nil
	}

	index := map[string]*Class{initial.key(): initial}
	queue := []queued{{class: initial}}
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(g.Classes) > maxClasses {
			return nil, fmt.Errorf("reduce: safety game exceeds %d classes", maxClasses)
		}
		item := queue[0]
		queue = queue[1:]
		c, depth := item.class, item.depth

		if c.IsEnv {
			c.Successors = make([]*Class, nIn)
			if depth+1 > maxDepth {
				for i := range c.Successors {
					c.Successors[i] = risk
				}
				g.Truncated += nIn
				continue
			}
			for i := 0; i < nIn; i++ {
				ctrl := &Class{
					ID:              len(g.Classes),
					ControlVertices: controlVertices(a, c.Accumulator, i),
					Score:           c.Score,
					Input:           i,
				}
				g.Classes = append(g.Classes, ctrl)
				c.Successors[i] = ctrl
				queue = append(queue, queued{class: ctrl, depth: depth + 1})
			}
			continue
		}

		c.Successors = make([]*Class, nOut)
		for o := 0; o < nOut; o++ {
			next := &Class{IsEnv: true, Score: zeroScore(), Input: -1}
			reached := make(map[int]struct{})
			for _, cv := range c.ControlVertices {
				src := a.StateOf(cv)
				for _, dest := range dests[cv][o] {
					reached[dest] = struct{}{}
					dst := a.StateOf(dest)
					j, isFinal := riskIndex[dest]
					for k := range finals {
						v := c.Score[src][k]
						if isFinal && k == j {
							v++
						}
						if v > next.Score[dst][k] {
							next.Score[dst][k] = v
						}
					}
				}
			}
			next.Accumulator = sortedKeys(reached)

			if overBound(next.Score) {
				c.Successors[o] = risk
				continue
			}
			if existing, ok := index[next.key()]; ok {
				c.Successors[o] = existing
				continue
			}
			if depth+1 > maxDepth {
				c.Successors[o] = risk
				g.Truncated++
				continue
			}
			next.ID = len(g.Classes)
			g.Classes = append(g.Classes, next)
			index[next.key()] = next
			c.Successors[o] = next
			queue = append(queue, queued{class: next, depth: depth + 1})
		}
	}

	logger.Debug("Reduced Co-Buechi game to safety game.",
		"classes", len(g.Classes), "risk_states", len(finals),
		"risk_bound", bound, "max_depth", maxDepth, "truncated_moves", g.Truncated)
	return g, nil
}

// destinations maps every control vertex and output valuation to the
// environment vertices the move can lead to.
func destinations(a *arena.Arena, nOut int) map[int][][]int {
	out := make(map[int][][]int)
	for _, v := range a.Vertices {
		if v.IsEnv() {
			continue
		}
		perOutput := make([][]int, nOut)
		for _, e := range v.Edges {
			for _, o := range e.Labels {
				perOutput[o] = append(perOutput[o], e.Dest)
			}
		}
		out[v.ID] = perOutput
	}
	return out
}

func controlVertices(a *arena.Arena, accumulator []int, input int) []int {
	set := make(map[int]struct{}, len(accumulator))
	for _, env := range accumulator {
		set[a.ControlVertex(a.StateOf(env), input)] = struct{}{}
	}
	return sortedKeys(set)
}

func sortedKeys(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
