package automaton

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/vk/reactsynth/internal/ctxlog"
	"github.com/vk/reactsynth/internal/ltl"
)

// DefaultMaxStates caps the size of a translated automaton.
const DefaultMaxStates = 1 << 14

// Tableau is the built-in Translator.
type Tableau struct {
	MaxStates int
}

// NewTableau returns a Tableau with the default state cap.
func NewTableau() *Tableau {
	return &Tableau{MaxStates: DefaultMaxStates}
}

// Translate parses formula and builds its automaton.
func (t *Tableau) Translate(ctx context.Context, formula string) (*Graph, error) {
	f, err := ltl.Parse(formula)
	if err != nil {
		return nil, err
	}
	return t.TranslateFormula(ctx, f)
}

// TranslateFormula builds the automaton of an already parsed formula.
func (t *Tableau) TranslateFormula(ctx context.Context, f *ltl.Formula) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	normal := ltl.NNF(f)

	b := &tableauBuilder{byKey: make(map[string]*tableauNode), nextID: 1, limit: t.MaxStates}
	start := &tableauNode{
		incoming: map[int]struct{}{0: {}},
		pending:  formulaSet{},
		old:      formulaSet{},
		next:     formulaSet{},
	}
	start.pending.add(normal)
	if err := b.expand(start); err != nil {
		return nil, err
	}

	g, err := degeneralize(b.nodes, untils(normal), t.MaxStates)
	if err != nil {
		return nil, err
	}
	g = prune(g)

	logger.Debug("Translated formula to automaton.",
		"formula", normal.String(), "tableau_nodes", len(b.nodes),
		"states", g.Len(), "accepting", g.AcceptingCount())
	return g, nil
}

type formulaSet map[string]*ltl.Formula

func (s formulaSet) add(f *ltl.Formula) {
	s[f.String()] = f
}

func (s formulaSet) has(f *ltl.Formula) bool {
	_, ok := s[f.String()]
	return ok
}

func (s formulaSet) clone() formulaSet {
	out := make(formulaSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

func (s formulaSet) key() string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ";")
}

// pop removes and returns the smallest formula so expansion order does not
// depend on map iteration.
func (s formulaSet) pop() *ltl.Formula {
	var minKey string
	first := true
	for k := range s {
		if first || k < minKey {
			minKey, first = k, false
		}
	}
	f := s[minKey]
	delete(s, minKey)
	return f
}

type tableauNode struct {
	id       int
	incoming map[int]struct{}
	pending  formulaSet
	old      formulaSet
	next     formulaSet
}

func (n *tableauNode) split() *tableauNode {
	incoming := make(map[int]struct{}, len(n.incoming))
	for k := range n.incoming {
		incoming[k] = struct{}{}
	}
	return &tableauNode{incoming: incoming, pending: n.pending.clone(), old: n.old.clone(), next: n.next.clone()}
}

// guard renders the literals the node asserts about the current instant.
func (n *tableauNode) guard() string {
	type literal struct {
		name string
		neg  bool
	}
	var lits []literal
	for _, f := range n.old {
		switch {
		case f.Op == ltl.OpAtom:
			lits = append(lits, literal{name: f.Name})
		case f.Op == ltl.OpNot && f.Left.Op == ltl.OpAtom:
			lits = append(lits, literal{name: f.Left.Name, neg: true})
		}
	}
	if len(lits) == 0 {
		return NoGuard
	}
	sort.Slice(lits, func(i, j int) bool { return lits[i].name < lits[j].name })
	parts := make([]string, len(lits))
	for i, l := range lits {
		if l.neg {
			parts[i] = "!" + l.name
		} else {
			parts[i] = l.name
		}
	}
	return strings.Join(parts, "&")
}

type tableauBuilder struct {
	nodes  []*tableauNode
	byKey  map[string]*tableauNode
	nextID int
	limit  int
}

func (b *tableauBuilder) expand(n *tableauNode) error {
	if len(n.pending) == 0 {
		key := n.old.key() + "|" + n.next.key()
		if existing, ok := b.byKey[key]; ok {
			for in := range n.incoming {
				existing.incoming[in] = struct{}{}
			}
			return nil
		}
		if b.limit > 0 && len(b.nodes) >= b.limit {
			return fmt.Errorf("automaton: tableau exceeds %d nodes", b.limit)
		}
		n.id = b.nextID
		b.nextID++
		b.byKey[key] = n
		b.nodes = append(b.nodes, n)
		return b.expand(&tableauNode{
			incoming: map[int]struct{}{n.id: {}},
			pending:  n.next.clone(),
			old:      formulaSet{},
			next:     formulaSet{},
		})
	}

	eta := n.pending.pop()
	if n.old.has(eta) {
		return b.expand(n)
	}

	switch eta.Op {
	case ltl.OpFalse:
		return nil
	case ltl.OpTrue:
		n.old.add(eta)
		return b.expand(n)
	case ltl.OpAtom, ltl.OpNot:
		if n.old.has(negate(eta)) {
			return nil
		}
		n.old.add(eta)
		return b.expand(n)
	case ltl.OpAnd:
		n.old.add(eta)
		n.schedule(eta.Left)
		n.schedule(eta.Right)
		return b.expand(n)
	case ltl.OpNext:
		n.old.add(eta)
		n.next.add(eta.Left)
		return b.expand(n)
	case ltl.OpOr, ltl.OpUntil, ltl.OpRelease:
		first, second := n.split(), n
		first.old.add(eta)
		second.old.add(eta)
		switch eta.Op {
		case ltl.OpOr:
			first.schedule(eta.Left)
			second.schedule(eta.Right)
		case ltl.OpUntil:
			first.schedule(eta.Left)
			first.next.add(eta)
			second.schedule(eta.Right)
		case ltl.OpRelease:
			first.schedule(eta.Right)
			first.next.add(eta)
			second.schedule(eta.Left)
			second.schedule(eta.Right)
		}
		if err := b.expand(first); err != nil {
			return err
		}
		return b.expand(second)
	}
	return fmt.Errorf("automaton: formula %s is not in negation normal form", eta)
}

func (n *tableauNode) schedule(f *ltl.Formula) {
	if !n.old.has(f) {
		n.pending.add(f)
	}
}

func negate(lit *ltl.Formula) *ltl.Formula {
	if lit.Op == ltl.OpNot {
		return lit.Left
	}
	return ltl.Not(lit)
}

func untils(f *ltl.Formula) []*ltl.Formula {
	seen := formulaSet{}
	var walk func(*ltl.Formula)
	walk = func(n *ltl.Formula) {
		if n == nil {
			return
		}
		if n.Op == ltl.OpUntil {
			seen.add(n)
		}
		walk(n.Left)
		walk(n.Right)
	}
	walk(f)

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*ltl.Formula, len(keys))
	for i, k := range keys {
		out[i] = seen[k]
	}
	return out
}
