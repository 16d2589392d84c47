package ltl

import (
	"sort"
)

// Op identifies the connective at the root of a Formula.
type Op int

const (
	OpTrue Op = iota
	OpFalse
	OpAtom
	OpNot
	OpAnd
	OpOr
	OpImplies
	OpIff
	OpNext
	OpUntil
	OpRelease
	OpAlways
	OpEventually
)

// Formula is an immutable LTL syntax tree. Unary operators keep their
// operand in Left.
type Formula struct {
	Op    Op
	Name  string
	Left  *Formula
	Right *Formula
}

func True() *Formula { return &Formula{Op: OpTrue} }
func False() *Formula { return &Formula{Op: OpFalse} }
func Atom(name string) *Formula { return &Formula{Op: OpAtom, Name: name} }
func Not(f *Formula) *Formula { return &Formula{Op: OpNot, Left: f} }
func And(l, r *Formula) *Formula { return &Formula{Op: OpAnd, Left: l, Right: r} }
func Or(l, r *Formula) *Formula { return &Formula{Op: OpOr, Left: l, Right: r} }
func Implies(l, r *Formula) *Formula { return &Formula{Op: OpImplies, Left: l, Right: r} }
func Iff(l, r *Formula) *Formula { return &Formula{Op: OpIff, Left: l, Right: r} }
func Next(f *Formula) *Formula { return &Formula{Op: OpNext, Left: f} }
func Until(l, r *Formula) *Formula { return &Formula{Op: OpUntil, Left: l, Right: r} }
func Release(l, r *Formula) *Formula { return &Formula{Op: OpRelease, Left: l, Right: r} }
func Always(f *Formula) *Formula { return &Formula{Op: OpAlways, Left: f} }
func Eventually(f *Formula) *Formula { return &Formula{Op: OpEventually, Left: f} }

// IsLiteral reports whether f is a constant, an atom or a negated atom.
func (f *Formula) IsLiteral() bool {
	switch f.Op {
	case OpTrue, OpFalse, OpAtom:
		return true
	case OpNot:
		return f.Left.Op == OpAtom
	}
	return false
}

// String renders f in a fully parenthesised form that Parse accepts.
func (f *Formula) String() string {
	switch f.Op {
	case OpTrue:
		return "true"
	case OpFalse:
		return "false"
	case OpAtom:
		return f.Name
	case OpNot:
		return "!" + f.Left.String()
	case OpNext:
		return "X " + f.Left.String()
	case OpAlways:
		return "[] " + f.Left.String()
	case OpEventually:
		return "<> " + f.Left.String()
	}
	return "(" + f.Left.String() + " " + binarySymbol[f.Op] + " " + f.Right.String() + ")"
}

var binarySymbol = map[Op]string{
	OpAnd:     "&&",
	OpOr:      "||",
	OpImplies: "->",
	OpIff:     "<->",
	OpUntil:   "U",
	OpRelease: "V",
}

// Atoms returns the sorted, de-duplicated signal names used by f.
func Atoms(f *Formula) []string {
	seen := make(map[string]struct{})
	var walk func(*Formula)
	walk = func(n *Formula) {
		if n == nil {
			return
		}
		if n.Op == OpAtom {
			seen[n.Name] = struct{}{}
			return
		}
		walk(n.Left)
		walk(n.Right)
	}
	walk(f)

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
