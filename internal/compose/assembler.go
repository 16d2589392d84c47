package compose

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/vk/reactsynth/internal/ctxlog"
	"github.com/vk/reactsynth/internal/extract"
	"github.com/vk/reactsynth/internal/mealy"
	"github.com/vk/reactsynth/internal/session"
)

// ErrNoController reports that the sub-controllers exist but cannot be
// combined, or that one of them does not exist.
var ErrNoController = errors.New("compose: unable to find controller")

// SolveFunc synthesizes one sub-problem and returns its machine, keeping
// every admissible choice. A nil machine with a nil error marks a
// sub-problem that constrains nothing; it is left out of the product. A
// machine without transitions marks an unrealizable sub-problem.
//
// Calls may run concurrently, so an implementation must not share a
// session between them.
type SolveFunc func(ctx context.Context, sub SubProblem) (*mealy.Machine, error)

// Assembler combines sub-controllers.
type Assembler struct {
	// Session holds the product relation. It is reset by Assemble.
	Session *session.Session
	Solve   SolveFunc
	// Workers bounds concurrent sub-solves. Values below 2 solve in order.
	Workers int
}

// Result describes an assembled controller.
type Result struct {
	Machine *mealy.Machine
	// Skipped lists the sub-problems that constrained nothing.
	Skipped []int
	// Failed is the first unrealizable sub-problem, or -1.
	Failed int
	// Rounds counts completeness iterations.
	Rounds int
	Stats  extract.Stats
}

// Assemble solves subs and combines their controllers over the global
// signals. An unrealizable part, or parts that cannot be combined, yield an
// error wrapping ErrNoController together with a Result describing which.
func (a *Assembler) Assemble(ctx context.Context, inputs, outputs []string, subs []SubProblem) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	res := &Result{Failed: -1}

	machines, err := a.solveAll(ctx, subs)
	if err != nil {
		return nil, err
	}

	var parts []part
	for i, m := range machines {
		switch {
		case m == nil:
			res.Skipped = append(res.Skipped, subs[i].Index)
		case !m.HasSolution():
			res.Failed = subs[i].Index
			return res, fmt.Errorf("%w for sub-specification %d", ErrNoController, subs[i].Index)
		default:
			parts = append(parts, part{sub: subs[i], machine: m})
		}
	}
	logger.Debug("Sub-controllers solved.", "parts", len(parts), "skipped", len(res.Skipped))

	if len(parts) == 0 {
		res.Machine = mealy.Trivial(inputs, outputs)
		return res, nil
	}

	p, err := newProduct(a.Session, inputs, outputs, parts)
	if err != nil {
		return nil, err
	}
	machine, rounds, stats, err := p.assemble(ctx)
	res.Rounds = rounds
	res.Stats = stats
	if err != nil {
		return res, err
	}
	res.Machine = machine
	return res, nil
}

func (a *Assembler) solveAll(ctx context.Context, subs []SubProblem) ([]*mealy.Machine, error) {
	machines := make([]*mealy.Machine, len(subs))
	solveOne := func(ctx context.Context, i int) error {
		subCtx := ctxlog.With(ctx, "subproblem", subs[i].Index)
		m, err := a.Solve(subCtx, subs[i])
		if err != nil {
			return fmt.Errorf("compose: sub-specification %d: %w", subs[i].Index, err)
		}
		machines[i] = m
		return nil
	}

	if a.Workers < 2 {
		for i := range subs {
			if err := solveOne(ctx, i); err != nil {
				return nil, err
			}
		}
		return machines, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.Workers)
	for i := range subs {
		g.Go(func() error { return solveOne(gctx, i) })
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return machines, nil
}
