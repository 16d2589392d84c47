package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/vk/reactsynth/internal/config"
	"github.com/vk/reactsynth/internal/ctxlog"
	"github.com/vk/reactsynth/internal/session"
)

// ErrInternal wraps panics recovered from a pipeline.
var ErrInternal = errors.New("engine: internal error")

// ErrNoProblem is reported when an entry point is called without a problem.
var ErrNoProblem = errors.New("engine: no problem given")

type pipeline func(ctx context.Context, s *session.Session, p *config.Problem, opts Options, res *Result)

// Synthesize runs the pipeline named by the problem, or by opts when the
// problem names none. A nil session is replaced by a fresh one.
func Synthesize(ctx context.Context, s *session.Session, p *config.Problem, opts Options) *Result {
	return run(ctx, s, p, opts, "")
}

// CoBuechi runs the Co-Büchi pipeline regardless of the configured engine.
func CoBuechi(ctx context.Context, s *session.Session, p *config.Problem, opts Options) *Result {
	return run(ctx, s, p, opts, config.EngineCoBuechi)
}

// Buechi runs the Büchi pipeline regardless of the configured engine.
func Buechi(ctx context.Context, s *session.Session, p *config.Problem, opts Options) *Result {
	return run(ctx, s, p, opts, config.EngineBuechi)
}

// Compositional runs the compositional pipeline regardless of the
// configured engine.
func Compositional(ctx context.Context, s *session.Session, p *config.Problem, opts Options) *Result {
	return run(ctx, s, p, opts, config.EngineCompositional)
}

func withoutEngine(p *config.Problem) *config.Problem {
	cp := *p
	cp.Engine = ""
	return &cp
}

func newResult(p *config.Problem, opts Options) *Result {
	return &Result{
		Problem: p.Name,
		Engine:  opts.Engine,
		Mode:    opts.mode(),
		Timers:  p.Timers,
	}
}

func pipelineFor(engine string) pipeline {
	switch engine {
	case config.EngineBuechi:
		return buechi
	case config.EngineCompositional:
		return compositional
	case config.EngineCoBuechi:
		return coBuechi
	}
	return nil
}

// run converts every outcome of a pipeline into a Result. The recover is
// installed before anything else so that a nil problem or a context
// without a logger also ends up in Result.Err.
func run(ctx context.Context, s *session.Session, p *config.Problem, opts Options, force string) (res *Result) {
	start := time.Now()
	res = &Result{Engine: opts.Engine, Mode: opts.mode()}
	var logger *slog.Logger

	defer func() {
		if r := recover(); r != nil {
			if logger != nil {
				logger.Error("Synthesis panicked.", "panic", r, "stack", string(debug.Stack()))
			}
			res.fail("synthesis", fmt.Errorf("%w: %v", ErrInternal, r))
		}
		res.Elapsed = time.Since(start)
		if logger != nil {
			logger.Info("Synthesis finished.",
				"verdict", string(res.Verdict()),
				"strategy_found", res.StrategyFound,
				"elapsed", res.Elapsed,
			)
		}
	}()

	if p == nil {
		return res.fail("setup", ErrNoProblem)
	}
	if force != "" {
		opts.Engine = force
		p = withoutEngine(p)
	}
	opts = opts.resolve(p)
	res = newResult(p, opts)
	fn := pipelineFor(opts.Engine)
	if fn == nil {
		return res.fail("engine selection", fmt.Errorf("unknown engine %q", opts.Engine))
	}

	ctx = ctxlog.With(ctx, "problem", p.Name, "engine", opts.Engine, "mode", string(res.Mode))
	logger = ctxlog.FromContext(ctx)

	if s == nil {
		s = session.New(opts.Session)
	}
	logger.Debug("Synthesis started.",
		"inputs", len(p.Inputs), "outputs", len(p.Outputs),
		"unroll_steps", opts.UnrollSteps, "risk_bound", opts.RiskBound)
	fn(ctx, s, p, opts, res)
	return res
}
