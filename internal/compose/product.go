package compose

import (
	"context"
	"fmt"

	"github.com/vk/reactsynth/internal/ctxlog"
	"github.com/vk/reactsynth/internal/extract"
	"github.com/vk/reactsynth/internal/mealy"
	"github.com/vk/reactsynth/internal/session"
	"github.com/vk/reactsynth/internal/solver"
	"github.com/vk/reactsynth/internal/valuation"
)

// maxStateBits keeps joint state codes inside an int.
const maxStateBits = 62

type part struct {
	sub     SubProblem
	machine *mealy.Machine
}

// product is the shared variable space of the sub-machines.
type product struct {
	s      *session.Session
	layout extract.ProductLayout
	parts  []part
	pre    [][]int
	post   [][]int
	vars   map[string]int
	toPre  session.Replacer
}

func newProduct(s *session.Session, inputs, outputs []string, parts []part) (*product, error) {
	p := &product{
		s:     s,
		parts: parts,
		vars:  make(map[string]int, len(inputs)+len(outputs)),
		layout: extract.ProductLayout{
			InputNames:  inputs,
			OutputNames: outputs,
		},
	}
	next := 0
	for _, name := range inputs {
		p.vars[name] = next
		p.layout.Inputs = append(p.layout.Inputs, next)
		next++
	}
	for _, name := range outputs {
		p.vars[name] = next
		p.layout.Outputs = append(p.layout.Outputs, next)
		next++
	}

	for _, pt := range parts {
		bits := solver.BitsFor(pt.machine.Len())
		pre, post := make([]int, bits), make([]int, bits)
		for j := range bits {
			pre[j] = next + 2*j
			post[j] = next + 2*j + 1
		}
		next += 2 * bits
		p.pre = append(p.pre, pre)
		p.post = append(p.post, post)
		p.layout.Pre = append(p.layout.Pre, pre...)
		p.layout.Post = append(p.layout.Post, post...)
	}
	if len(p.layout.Pre) > maxStateBits {
		return nil, fmt.Errorf("compose: joint state needs %d bits, more than %d", len(p.layout.Pre), maxStateBits)
	}

	if err := s.Reset(next); err != nil {
		return nil, err
	}
	var err error
	if p.toPre, err = s.Replacer(p.layout.Post, p.layout.Pre); err != nil {
		return nil, err
	}
	return p, nil
}

// relation encodes the transitions of part k.
func (p *product) relation(k int) (session.Node, error) {
	pt := p.parts[k]
	m := pt.machine
	edges := make([]session.Node, 0, len(m.Edges))
	for _, e := range m.Edges {
		src, ok := m.StateIndex(e.Source)
		if !ok {
			return nil, fmt.Errorf("compose: sub-machine %d has an edge from unknown state %q", pt.sub.Index, e.Source)
		}
		dst, ok := m.StateIndex(e.Dest)
		if !ok {
			return nil, fmt.Errorf("compose: sub-machine %d has an edge to unknown state %q", pt.sub.Index, e.Dest)
		}
		in, err := p.signalCube(m.Inputs, e.Input)
		if err != nil {
			return nil, fmt.Errorf("compose: sub-machine %d: %w", pt.sub.Index, err)
		}
		out, err := p.signalCube(m.Outputs, e.Output)
		if err != nil {
			return nil, fmt.Errorf("compose: sub-machine %d: %w", pt.sub.Index, err)
		}
		edges = append(edges, p.s.And(p.s.Encode(p.pre[k], src), p.s.Encode(p.post[k], dst), in, out))
	}
	return p.s.Or(edges...), nil
}

// signalCube fixes the global variables of names to the bits of value.
func (p *product) signalCube(names []string, value string) (session.Node, error) {
	if len(value) != len(names) {
		return nil, fmt.Errorf("valuation %q does not cover %d signals", value, len(names))
	}
	lits := make([]session.Node, 0, len(names))
	for i, name := range names {
		v, ok := p.vars[name]
		if !ok {
			return nil, fmt.Errorf("signal %q is not declared globally", name)
		}
		lits = append(lits, p.s.Literal(v, value[i] == '1'))
	}
	return p.s.And(lits...), nil
}

// initial returns the joint initial state and its code.
func (p *product) initial() (session.Node, int) {
	lits := make([]session.Node, 0, len(p.parts))
	code := 0
	for k, pt := range p.parts {
		idx, _ := pt.machine.StateIndex(pt.machine.Initial)
		lits = append(lits, p.s.Encode(p.pre[k], idx))
		code = code<<len(p.pre[k]) | idx
	}
	return p.s.And(lits...), code
}

func (p *product) assemble(ctx context.Context) (*mealy.Machine, int, extract.Stats, error) {
	logger := ctxlog.FromContext(ctx)
	s := p.s
	var stats extract.Stats

	joint := s.True()
	for k := range p.parts {
		rel, err := p.relation(k)
		if err != nil {
			return nil, 0, stats, err
		}
		joint = s.And(joint, rel)
	}
	if err := s.Err(); err != nil {
		return nil, 0, stats, err
	}

	stable, rounds, err := Completeness(ctx, s, p.layout, joint)
	if err != nil {
		return nil, rounds, stats, err
	}
	logger.Debug("Joint relation is complete.", "rounds", rounds, "state_bits", len(p.layout.Pre))

	init, code := p.initial()
	if s.IsFalse(s.And(stable, init)) {
		return nil, rounds, stats, fmt.Errorf("%w: sub-controllers have no joint response at the initial state", ErrNoController)
	}

	fixed, err := p.fixInitial(stable, init)
	if err != nil {
		return nil, rounds, stats, err
	}
	reach, err := p.reachable(ctx, fixed, init)
	if err != nil {
		return nil, rounds, stats, err
	}

	machine, stats, err := extract.Product(ctx, s, p.layout, s.And(fixed, reach), valuation.String(code, len(p.layout.Pre)))
	if err != nil {
		return nil, rounds, stats, err
	}
	return machine, rounds, stats, nil
}

// fixInitial keeps one joint move per input at the initial state.
func (p *product) fixInitial(rel, init session.Node) (session.Node, error) {
	s := p.s
	atInit := s.And(rel, init)
	choice := s.False()
	for v := range valuation.Count(len(p.layout.Inputs)) {
		cube := s.Encode(p.layout.Inputs, v)
		picked, ok, err := p.pick(s.And(atInit, cube))
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		choice = s.Or(choice, s.And(init, cube, picked))
	}
	return s.Or(s.Diff(rel, init), choice), nil
}

// pick fixes the outputs and next state of the first satisfying cube of n.
func (p *product) pick(n session.Node) (session.Node, bool, error) {
	if p.s.IsFalse(n) {
		return nil, false, nil
	}
	cubes, err := p.s.Assignments(n)
	if err != nil {
		return nil, false, err
	}
	first := cubes[0]
	var lits []session.Node
	for _, group := range [][]int{p.layout.Outputs, p.layout.Post} {
		for _, v := range group {
			lits = append(lits, p.s.Literal(v, first[v] == session.One))
		}
	}
	return p.s.And(lits...), true, nil
}

// reachable returns the joint states reachable from init over rel.
func (p *product) reachable(ctx context.Context, rel, init session.Node) (session.Node, error) {
	s := p.s
	vars := make([]int, 0, len(p.layout.Inputs)+len(p.layout.Outputs)+len(p.layout.Pre))
	vars = append(vars, p.layout.Inputs...)
	vars = append(vars, p.layout.Outputs...)
	vars = append(vars, p.layout.Pre...)

	reach := init
	for {
		if err := check(ctx, s); err != nil {
			return nil, err
		}
		image := s.Replace(s.AndExist(vars, reach, rel), p.toPre)
		next := s.Or(reach, image)
		if s.Equal(next, reach) {
			return reach, nil
		}
		reach = next
	}
}

// Completeness restricts rel to transitions between states that have a
// move for every input, repeating until nothing changes. It returns the
// stable relation and the number of rounds taken.
func Completeness(ctx context.Context, s *session.Session, layout extract.ProductLayout, rel session.Node) (session.Node, int, error) {
	toPost, err := s.Replacer(layout.Pre, layout.Post)
	if err != nil {
		return nil, 0, err
	}
	hidden := make([]int, 0, len(layout.Outputs)+len(layout.Post))
	hidden = append(hidden, layout.Outputs...)
	hidden = append(hidden, layout.Post...)

	for rounds := 1; ; rounds++ {
		if err := check(ctx, s); err != nil {
			return nil, rounds, err
		}
		responsive := s.Forall(s.Exist(rel, hidden), layout.Inputs)
		next := s.And(rel, responsive, s.Replace(responsive, toPost))
		if s.Equal(next, rel) {
			return rel, rounds, nil
		}
		rel = next
	}
}

func check(ctx context.Context, s *session.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.Err()
}
