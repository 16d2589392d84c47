package engine

import (
	"context"

	"github.com/vk/reactsynth/internal/arena"
	"github.com/vk/reactsynth/internal/config"
	"github.com/vk/reactsynth/internal/extract"
	"github.com/vk/reactsynth/internal/session"
	"github.com/vk/reactsynth/internal/solver"
)

const buechiName = "Buechi game engine"

func buechi(ctx context.Context, s *session.Session, p *config.Problem, opts Options, res *Result) {
	sp := specOf(p)
	formula := sp.formula
	if opts.ProveNonExistence {
		formula = "!(" + formula + ")"
	}

	g, err := opts.Translator.Translate(ctx, formula)
	if err != nil {
		res.fail("translation", err)
		return
	}
	if g.IsEmptyLanguage() {
		if opts.ProveNonExistence {
			res.Message = buechiName + " unable to find the witness: the negated specification accepts nothing"
		} else {
			res.Message = buechiName + " unable to find the controller: the specification accepts nothing"
		}
		return
	}

	a, err := arena.Build(ctx, g, sp.inputs, sp.outputs)
	if err != nil {
		res.fail("arena construction", err)
		return
	}
	noteUnknownLiterals(res, a)

	space, err := solver.NewSpace(s, len(a.Vertices))
	if err != nil {
		res.fail("encoding", err)
		return
	}
	game := solver.EncodeArena(space, a)
	if opts.ProveNonExistence {
		game = game.Swapped()
	}
	sol, err := solver.SolveBuechi(ctx, game, solver.FinalSet(space, a))
	if err != nil {
		res.fail("solving", err)
		return
	}

	if opts.ProveNonExistence {
		res.StrategyFound = sol.Won
		if sol.Won {
			res.Message = "Witness of non-existence found by the " + buechiName
		} else {
			res.Message = buechiName + " unable to find the witness"
		}
		return
	}
	if !sol.Won {
		res.Message = buechiName + " unable to find the controller"
		return
	}

	m, stats, err := extract.Buechi(ctx, space, sol.Strategy, a)
	if err != nil {
		res.fail("extraction", err)
		return
	}
	noteSkipped(res, stats.SkippedIDs)
	res.Machine = m
	res.StrategyFound = m.HasSolution()
	if res.StrategyFound {
		res.Message = buechiName + " found the controller"
	} else {
		res.Message = buechiName + " unable to find the controller"
	}
}
