package engine

import (
	"context"
	"fmt"

	"github.com/vk/reactsynth/internal/arena"
	"github.com/vk/reactsynth/internal/config"
	"github.com/vk/reactsynth/internal/extract"
	"github.com/vk/reactsynth/internal/mealy"
	"github.com/vk/reactsynth/internal/reduce"
	"github.com/vk/reactsynth/internal/session"
	"github.com/vk/reactsynth/internal/solver"
	"github.com/vk/reactsynth/internal/valuation"
)

const coBuechiName = "Co-Buechi + safety game engine"

// spec is the part of a problem a single game is built from.
type spec struct {
	formula string
	inputs  []string
	outputs []string
}

func specOf(p *config.Problem) spec {
	return spec{formula: p.Formula(), inputs: p.Inputs, outputs: p.Outputs}
}

func coBuechi(ctx context.Context, s *session.Session, p *config.Problem, opts Options, res *Result) {
	if opts.ProveNonExistence {
		coBuechiWitness(ctx, s, specOf(p), opts, res)
		return
	}
	coBuechiController(ctx, s, specOf(p), opts, extract.Deterministic, res)
}

// safetyGame translates formula, builds its arena and reduces it to a
// safety game. It returns a nil game when the automaton accepts nothing.
func safetyGame(ctx context.Context, sp spec, formula string, opts Options, res *Result) (*reduce.Game, bool) {
	g, err := opts.Translator.Translate(ctx, formula)
	if err != nil {
		res.fail("translation", err)
		return nil, false
	}
	if g.IsEmptyLanguage() {
		return nil, true
	}

	a, err := arena.Build(ctx, g, sp.inputs, sp.outputs)
	if err != nil {
		res.fail("arena construction", err)
		return nil, false
	}
	noteUnknownLiterals(res, a)

	rg, err := reduce.Reduce(ctx, a, reduce.Options{UnrollSteps: opts.UnrollSteps, RiskBound: opts.RiskBound})
	if err != nil {
		res.fail("reduction", err)
		return nil, false
	}
	if rg.Truncated > 0 {
		res.Diagnostics = append(res.Diagnostics,
			fmt.Sprintf("%d transitions truncated at unroll depth %d", rg.Truncated, 2*opts.UnrollSteps+1))
	}
	return rg, true
}

// coBuechiController searches for a controller and reports whether the
// negated specification was empty.
func coBuechiController(ctx context.Context, s *session.Session, sp spec, opts Options, policy extract.Policy, res *Result) (empty bool) {
	rg, ok := safetyGame(ctx, sp, "!("+sp.formula+")", opts, res)
	if !ok {
		return false
	}
	if rg == nil {
		res.StrategyFound = true
		res.Machine = mealy.Trivial(sp.inputs, sp.outputs)
		res.Message = coBuechiName + " found the controller: the negated specification accepts nothing"
		return true
	}

	space, err := solver.NewSpace(s, rg.Len())
	if err != nil {
		res.fail("encoding", err)
		return false
	}
	game := solver.EncodeSafety(space, rg)
	sol, err := solver.SolveSafety(ctx, game, space.Current(rg.Risk.ID))
	if err != nil {
		res.fail("solving", err)
		return false
	}
	if sol.Lost {
		res.Message = coBuechiName + " unable to find the controller"
		return false
	}

	m, stats, err := extract.Safety(ctx, space, sol.Strategy, rg, sp.inputs, sp.outputs, policy)
	if err != nil {
		res.fail("extraction", err)
		return false
	}
	noteSkipped(res, stats.SkippedIDs)
	res.Machine = m
	res.StrategyFound = m.HasSolution()
	if res.StrategyFound {
		res.Message = coBuechiName + " found the controller"
	} else {
		res.Message = coBuechiName + " unable to find the controller"
	}
	return false
}

func coBuechiWitness(ctx context.Context, s *session.Session, sp spec, opts Options, res *Result) {
	rg, ok := safetyGame(ctx, sp, sp.formula, opts, res)
	if !ok {
		return
	}
	if rg == nil {
		res.StrategyFound = true
		res.Witness = valuation.All(len(sp.inputs))
		res.Message = "Witness of non-existence found by the " + coBuechiName + ": the specification accepts nothing"
		return
	}

	space, err := solver.NewSpace(s, rg.Len())
	if err != nil {
		res.fail("encoding", err)
		return
	}
	game := solver.EncodeSafety(space, rg)
	swapped, err := solver.SolveSafety(ctx, game.Swapped(), space.Current(rg.Risk.ID))
	if err != nil {
		res.fail("solving", err)
		return
	}
	if swapped.Lost {
		res.Message = coBuechiName + " unable to find the witness"
		return
	}

	inputs, skipped, err := solver.CounterWitness(ctx, game, swapped, rg)
	if err != nil {
		res.fail("witness extraction", err)
		return
	}
	noteSkipped(res, skipped)
	for _, v := range inputs {
		res.Witness = append(res.Witness, valuation.String(v, len(sp.inputs)))
	}
	res.StrategyFound = true
	res.Message = "Witness of non-existence found by the " + coBuechiName
}

func noteUnknownLiterals(res *Result, a *arena.Arena) {
	for _, lit := range a.UnknownLiterals {
		res.UnknownLiterals = appendUnique(res.UnknownLiterals, lit)
	}
}

func noteSkipped(res *Result, skipped int) {
	if skipped == 0 {
		return
	}
	res.SkippedIDs += skipped
	res.Diagnostics = append(res.Diagnostics, fmt.Sprintf("%d decoded ids outside the game were skipped", skipped))
}

func appendUnique(xs []string, x string) []string {
	for _, y := range xs {
		if y == x {
			return xs
		}
	}
	return append(xs, x)
}
