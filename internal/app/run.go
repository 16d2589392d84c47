package app

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/vk/reactsynth/internal/config"
	"github.com/vk/reactsynth/internal/ctxlog"
	"github.com/vk/reactsynth/internal/engine"
	"github.com/vk/reactsynth/internal/session"
)

// ErrUnrealizable is returned by Run when FailUnrealizable is set and at
// least one problem was not realized.
var ErrUnrealizable = errors.New("one or more problems are unrealizable")

// Summary collects the results of one batch in problem order.
type Summary struct {
	Results []*engine.Result
}

// Count returns how many results carry the given verdict.
func (s *Summary) Count(v engine.Verdict) int {
	n := 0
	for _, r := range s.Results {
		if r.Verdict() == v {
			n++
		}
	}
	return n
}

// Run synthesizes every loaded problem on a bounded worker pool and renders
// the results in problem order.
func (a *App) Run(ctx context.Context) (*Summary, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run: Starting batch.", "problems", len(a.problems), "workers", a.config.Workers)

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(a.config.HealthcheckPort)
		defer func() {
			_ = a.closeHealthcheckServer()
		}()
	}

	results := make([]*engine.Result, len(a.problems))
	opts := a.config.engineOptions()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.config.Workers)
	for i, p := range a.problems {
		g.Go(func() error {
			results[i] = a.synthesize(gctx, p, opts)
			return nil
		})
	}
	_ = g.Wait()

	summary := &Summary{Results: results}
	if err := a.render(summary); err != nil {
		return summary, fmt.Errorf("failed to write results: %w", err)
	}

	a.logger.Info("Batch finished.",
		"realizable", summary.Count(engine.VerdictRealizable),
		"unrealizable", summary.Count(engine.VerdictUnrealizable),
		"unknown", summary.Count(engine.VerdictUnknown),
		"failed", summary.Count(engine.VerdictError),
	)

	if failed := summary.Count(engine.VerdictError); failed > 0 {
		return summary, fmt.Errorf("%d of %d problems failed", failed, len(results))
	}
	if a.config.FailUnrealizable {
		for _, r := range results {
			if r.Verdict() != engine.VerdictRealizable {
				return summary, ErrUnrealizable
			}
		}
	}
	return summary, nil
}

// synthesize runs one job on its own session.
func (a *App) synthesize(ctx context.Context, p *config.Problem, opts engine.Options) *engine.Result {
	logger := a.logger.With("problem", p.Name)

	if ctx.Err() != nil {
		logger.Debug("Skipping problem, batch was cancelled.")
		return &engine.Result{Problem: p.Name, Engine: p.Engine, Err: ctx.Err()}
	}

	logger.Debug("Worker picked up problem.")
	done := a.metrics.Start()
	res := engine.Synthesize(ctx, session.New(opts.Session), p, opts)
	done()
	a.metrics.Observe(res)

	if res.Err != nil {
		logger.Error("Synthesis failed.", "error", res.Err)
	}
	return res
}
