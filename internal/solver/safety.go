package solver

import (
	"context"

	"github.com/vk/reactsynth/internal/ctxlog"
	"github.com/vk/reactsynth/internal/session"
)

// SafetyResult is the outcome of SolveSafety.
type SafetyResult struct {
	// Lost reports that the plant can force the risk set from the initial
	// set.
	Lost bool
	// Attractor is the plant's attractor of the risk set.
	Attractor session.Node
	// Blocked holds the controller moves into the attractor and every move
	// out of the risk set.
	Blocked session.Node
	// Strategy holds every controller move that is not blocked.
	Strategy   session.Node
	Iterations int
}

// SolveSafety computes the most permissive controller strategy that keeps
// the play away from risk.
func SolveSafety(ctx context.Context, g *Game, risk session.Node, opts ...Option) (*SafetyResult, error) {
	logger := ctxlog.FromContext(ctx)
	cfg := collect(opts)
	s := g.Space.S
	res := &SafetyResult{}

	attr := risk
	for {
		if err := step(ctx, s); err != nil {
			return nil, err
		}
		next := s.Or(attr, g.cpre(g.Plant, g.Controller, attr))
		res.Iterations++
		cfg.observe(0, next)
		if s.Equal(next, attr) {
			break
		}
		attr = next
	}
	res.Attractor = attr
	res.Lost = !s.IsFalse(s.And(attr, g.Initial))
	res.Blocked = s.Or(s.And(g.Controller, g.Space.Primed(attr)), s.And(risk, g.Controller))
	res.Strategy = s.Diff(g.Controller, res.Blocked)
	if err := s.Err(); err != nil {
		return nil, err
	}

	logger.Debug("Solved safety game.", "lost", res.Lost, "iterations", res.Iterations)
	return res, nil
}
