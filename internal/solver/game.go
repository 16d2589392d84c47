package solver

import (
	"context"

	"github.com/vk/reactsynth/internal/arena"
	"github.com/vk/reactsynth/internal/reduce"
	"github.com/vk/reactsynth/internal/session"
)

// Game is a symbolic two-player game. Controller holds the moves of the
// player we solve for, Plant those of its opponent.
type Game struct {
	Space      *Space
	Controller session.Node
	Plant      session.Node
	Initial    session.Node
}

// Swapped returns the same game with the players exchanged.
func (g *Game) Swapped() *Game {
	return &Game{Space: g.Space, Controller: g.Plant, Plant: g.Controller, Initial: g.Initial}
}

// EncodeArena builds the game of an arena. The controller moves from
// control vertices, the plant from environment vertices.
func EncodeArena(sp *Space, a *arena.Arena) *Game {
	s := sp.S
	g := &Game{Space: sp, Controller: s.False(), Plant: s.False(), Initial: sp.Current(a.Initial)}
	for _, v := range a.Vertices {
		for _, e := range v.Edges {
			move := sp.Move(e.Source, e.Dest)
			if v.IsEnv() {
				g.Plant = s.Or(g.Plant, move)
			} else {
				g.Controller = s.Or(g.Controller, move)
			}
		}
	}
	return g
}

// FinalSet encodes the final vertices of an arena.
func FinalSet(sp *Space, a *arena.Arena) session.Node {
	return sp.Set(a.FinalVertices())
}

// EncodeSafety builds the game of a reduced safety game. The controller
// moves from control classes, the plant from environment classes; the
// risk class has no moves.
func EncodeSafety(sp *Space, rg *reduce.Game) *Game {
	s := sp.S
	g := &Game{Space: sp, Controller: s.False(), Plant: s.False(), Initial: sp.Current(rg.Initial.ID)}
	for _, c := range rg.Classes {
		seen := make(map[int]struct{}, len(c.Successors))
		for _, succ := range c.Successors {
			if _, dup := seen[succ.ID]; dup {
				continue
			}
			seen[succ.ID] = struct{}{}
			move := sp.Move(c.ID, succ.ID)
			if c.IsEnv {
				g.Plant = s.Or(g.Plant, move)
			} else {
				g.Controller = s.Or(g.Controller, move)
			}
		}
	}
	return g
}

// Option tunes a solver run.
type Option func(*settings)

type settings struct {
	trace func(round int, set session.Node)
}

// WithTrace registers a callback that observes every attractor iterate.
// Round numbers the least fixpoint computation the iterate belongs to;
// iterates of one round only grow.
func WithTrace(fn func(round int, set session.Node)) Option {
	return func(s *settings) {
		s.trace = fn
	}
}

func collect(opts []Option) settings {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func (s settings) observe(round int, set session.Node) {
	if s.trace != nil {
		s.trace(round, set)
	}
}

// cpre returns the positions from which the owner of may can move into
// target, together with the positions of the owner of must whose every
// move, and at least one, lands in target.
func (g *Game) cpre(may, must, target session.Node) session.Node {
	s := g.Space.S
	post := g.Space.Post
	next := g.Space.Primed(target)
	some := s.AndExist(post, may, next)
	into := s.AndExist(post, must, next)
	escape := s.AndExist(post, must, g.Space.Primed(s.Not(target)))
	return s.Or(some, s.Diff(into, escape))
}

// Reachable returns the positions reachable from the initial set over
// moves, the initial set included.
func (g *Game) Reachable(ctx context.Context, moves session.Node) (session.Node, error) {
	s := g.Space.S
	reach := g.Initial
	for {
		if err := step(ctx, s); err != nil {
			return nil, err
		}
		image := g.Space.Unprimed(s.AndExist(g.Space.Pre, reach, moves))
		next := s.Or(reach, image)
		if s.Equal(next, reach) {
			return reach, nil
		}
		reach = next
	}
}

func step(ctx context.Context, s *session.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.Err()
}
