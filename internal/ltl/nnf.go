package ltl

// NNF rewrites f into negation normal form. The result only uses true,
// false, atoms, negated atoms, &&, ||, X, U and V; [] and <> become
// false V φ and true U φ.
func NNF(f *Formula) *Formula {
	return nnf(f, false)
}

func nnf(f *Formula, neg bool) *Formula {
	switch f.Op {
	case OpTrue:
		if neg {
			return False()
		}
		return True()
	case OpFalse:
		if neg {
			return True()
		}
		return False()
	case OpAtom:
		if neg {
			return Not(Atom(f.Name))
		}
		return Atom(f.Name)
	case OpNot:
		return nnf(f.Left, !neg)
	case OpAnd:
		if neg {
			return or(nnf(f.Left, true), nnf(f.Right, true))
		}
		return and(nnf(f.Left, false), nnf(f.Right, false))
	case OpOr:
		if neg {
			return and(nnf(f.Left, true), nnf(f.Right, true))
		}
		return or(nnf(f.Left, false), nnf(f.Right, false))
	case OpImplies:
		if neg {
			return and(nnf(f.Left, false), nnf(f.Right, true))
		}
		return or(nnf(f.Left, true), nnf(f.Right, false))
	case OpIff:
		if neg {
			return or(and(nnf(f.Left, false), nnf(f.Right, true)), and(nnf(f.Left, true), nnf(f.Right, false)))
		}
		return or(and(nnf(f.Left, false), nnf(f.Right, false)), and(nnf(f.Left, true), nnf(f.Right, true)))
	case OpNext:
		return Next(nnf(f.Left, neg))
	case OpUntil:
		if neg {
			return Release(nnf(f.Left, true), nnf(f.Right, true))
		}
		return Until(nnf(f.Left, false), nnf(f.Right, false))
	case OpRelease:
		if neg {
			return Until(nnf(f.Left, true), nnf(f.Right, true))
		}
		return Release(nnf(f.Left, false), nnf(f.Right, false))
	case OpAlways:
		if neg {
			return Until(True(), nnf(f.Left, true))
		}
		return Release(False(), nnf(f.Left, false))
	case OpEventually:
		if neg {
			return Release(False(), nnf(f.Left, true))
		}
		return Until(True(), nnf(f.Left, false))
	}
	panic("ltl: unknown operator")
}

func and(l, r *Formula) *Formula {
	switch {
	case l.Op == OpFalse || r.Op == OpFalse:
		return False()
	case l.Op == OpTrue:
		return r
	case r.Op == OpTrue:
		return l
	case l.String() == r.String():
		return l
	}
	return And(l, r)
}

func or(l, r *Formula) *Formula {
	switch {
	case l.Op == OpTrue || r.Op == OpTrue:
		return True()
	case l.Op == OpFalse:
		return r
	case r.Op == OpFalse:
		return l
	case l.String() == r.String():
		return l
	}
	return Or(l, r)
}
