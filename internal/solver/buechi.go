package solver

import (
	"context"

	"github.com/vk/reactsynth/internal/ctxlog"
	"github.com/vk/reactsynth/internal/session"
)

// BuechiResult is the outcome of SolveBuechi.
type BuechiResult struct {
	Won bool
	// Winning is the set of positions from which the final set can be
	// forced infinitely often.
	Winning session.Node
	// Strategy holds one or more controller moves per winning controller
	// position reachable under the strategy.
	Strategy   session.Node
	Iterations int
}

// SolveBuechi computes a controller strategy that visits final infinitely
// often from the initial set.
func SolveBuechi(ctx context.Context, g *Game, final session.Node, opts ...Option) (*BuechiResult, error) {
	logger := ctxlog.FromContext(ctx)
	cfg := collect(opts)
	s := g.Space.S
	res := &BuechiResult{Winning: s.False(), Strategy: s.False()}

	// Greatest fixpoint over the recurrence set, each round computing the
	// positions that reach it again in at least one move.
	recur := final
	round := 0
	for ; ; round++ {
		attr := s.False()
		for {
			if err := step(ctx, s); err != nil {
				return nil, err
			}
			next := s.Or(attr, g.cpre(g.Controller, g.Plant, s.Or(attr, recur)))
			res.Iterations++
			cfg.observe(round, next)
			if s.Equal(next, attr) {
				break
			}
			attr = next
		}
		shrunk := s.And(final, attr)
		if s.Equal(shrunk, recur) {
			break
		}
		recur = shrunk
	}

	if s.IsFalse(recur) {
		logger.Debug("Buechi recurrence set is empty.", "iterations", res.Iterations)
		return res, nil
	}

	// Attract to the recurrence set again, keeping the first move found for
	// every controller position so that moves always make progress.
	attr := recur
	strategy := s.False()
	round++
	for {
		if err := step(ctx, s); err != nil {
			return nil, err
		}
		moves := s.And(g.Controller, g.Space.Primed(attr))
		covered := s.Exist(strategy, g.Space.Post)
		strategy = s.Or(strategy, s.Diff(moves, covered))

		next := s.Or(attr, g.cpre(g.Controller, g.Plant, attr))
		res.Iterations++
		cfg.observe(round, next)
		if s.Equal(next, attr) {
			break
		}
		attr = next
	}
	res.Winning = attr

	if s.IsFalse(s.And(attr, g.Initial)) {
		logger.Debug("Initial position lies outside the Buechi winning region.", "iterations", res.Iterations)
		return res, nil
	}

	reach, err := g.Reachable(ctx, s.Or(strategy, g.Plant))
	if err != nil {
		return nil, err
	}
	res.Strategy = s.And(strategy, reach)
	res.Won = true
	if err := s.Err(); err != nil {
		return nil, err
	}
	logger.Debug("Found Buechi strategy.", "iterations", res.Iterations)
	return res, nil
}
