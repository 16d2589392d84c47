package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/vk/reactsynth/internal/compose"
	"github.com/vk/reactsynth/internal/config"
	"github.com/vk/reactsynth/internal/ctxlog"
	"github.com/vk/reactsynth/internal/extract"
	"github.com/vk/reactsynth/internal/mealy"
	"github.com/vk/reactsynth/internal/session"
)

func compositional(ctx context.Context, s *session.Session, p *config.Problem, opts Options, res *Result) {
	logger := ctxlog.FromContext(ctx)
	groups := p.Groups(opts.GroupSize)
	if opts.ProveNonExistence || len(groups) <= 1 {
		logger.Debug("Using the monolithic Co-Büchi pipeline.", "groups", len(groups))
		res.Diagnostics = append(res.Diagnostics, "solved monolithically")
		coBuechi(ctx, s, p, opts, res)
		return
	}

	formulas := make([]string, len(groups))
	for i, g := range groups {
		formulas[i] = g.Formula
	}
	subs, err := compose.Split(formulas, p.Inputs, p.Outputs)
	if err != nil {
		res.fail("splitting", err)
		return
	}

	var mu sync.Mutex
	solve := func(ctx context.Context, sub compose.SubProblem) (*mealy.Machine, error) {
		sr := &Result{}
		sp := spec{formula: sub.Formula, inputs: sub.Inputs, outputs: sub.Outputs}
		empty := coBuechiController(ctx, session.New(opts.Session), sp, opts, extract.Pervasive, sr)

		mu.Lock()
		res.SkippedIDs += sr.SkippedIDs
		res.Diagnostics = append(res.Diagnostics, sr.Diagnostics...)
		for _, lit := range sr.UnknownLiterals {
			res.UnknownLiterals = appendUnique(res.UnknownLiterals, lit)
		}
		mu.Unlock()

		switch {
		case sr.Err != nil:
			return nil, sr.Err
		case empty:
			return nil, nil
		case !sr.StrategyFound:
			return mealy.New(sub.Inputs, sub.Outputs), nil
		}
		return sr.Machine, nil
	}

	asm := &compose.Assembler{Session: s, Solve: solve, Workers: opts.ParallelSubproblems}
	out, err := asm.Assemble(ctx, p.Inputs, p.Outputs, subs)
	if out != nil {
		noteSkipped(res, out.Stats.SkippedIDs)
		for _, idx := range out.Skipped {
			res.Diagnostics = append(res.Diagnostics, fmt.Sprintf("sub-specification %d constrains nothing and was skipped", idx))
		}
	}
	switch {
	case errors.Is(err, compose.ErrNoController) && out != nil && out.Failed >= 0:
		res.Message = fmt.Sprintf("%s unable to find the controller for sub-specification:\n%s", coBuechiName, subs[out.Failed].Formula)
	case errors.Is(err, compose.ErrNoController):
		res.Message = coBuechiName + " unable to combine the sub-controllers"
		res.Diagnostics = append(res.Diagnostics, err.Error())
	case err != nil:
		res.fail("composition", err)
	default:
		res.Machine = out.Machine
		res.StrategyFound = out.Machine.HasSolution()
		res.Message = coBuechiName + " (compositional) found the controller"
	}
}
