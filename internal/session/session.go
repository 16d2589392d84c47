package session

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/dalzilio/rudd"
)

// ErrCapacityExhausted reports that the relation engine could not complete
// an operation within its configured node table.
var ErrCapacityExhausted = errors.New("session: relation engine capacity exhausted")

// Node is a handle on a diagram owned by a Session.
type Node = rudd.Node

// Replacer renames variables inside a diagram.
type Replacer = rudd.Replacer

// Options size the node table and operation cache of each reset.
type Options struct {
	NodeTableSize int
	CacheSize     int
	// MaxNodeTableSize is the fixed capacity of the node table. Err reports
	// ErrCapacityExhausted once more nodes than this are in use.
	MaxNodeTableSize int
}

// DefaultOptions are used for fields left at zero.
var DefaultOptions = Options{
	NodeTableSize:    100_000,
	CacheSize:        10_000,
	MaxNodeTableSize: 4_000_000,
}

// Session wraps one diagram engine instance. It is not safe for
// concurrent use.
type Session struct {
	opts    Options
	bdd     *rudd.BDD
	varnum  int
	resets  int
	failure error
}

// New returns a session that has not allocated any variables yet.
func New(opts Options) *Session {
	if opts.NodeTableSize <= 0 {
		opts.NodeTableSize = DefaultOptions.NodeTableSize
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultOptions.CacheSize
	}
	if opts.MaxNodeTableSize <= 0 {
		opts.MaxNodeTableSize = DefaultOptions.MaxNodeTableSize
	}
	return &Session{opts: opts}
}

// Reset discards every node and prepares a fresh engine with varnum
// variables.
func (s *Session) Reset(varnum int) error {
	if varnum <= 0 {
		return fmt.Errorf("session: variable count must be positive, got %d", varnum)
	}
	// rudd accepts Maxnodesize but never enforces it, so the limit is
	// checked by Err instead.
	bdd, err := rudd.New(varnum,
		rudd.Nodesize(s.opts.NodeTableSize),
		rudd.Cachesize(s.opts.CacheSize))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCapacityExhausted, err)
	}
	s.bdd = bdd
	s.varnum = varnum
	s.resets++
	s.failure = nil
	return nil
}

// Capacity returns the node limit of the session.
func (s *Session) Capacity() int {
	return s.opts.MaxNodeTableSize
}

// Used returns the number of node table entries in use, constants and
// variable nodes included.
func (s *Session) Used() int {
	if s.bdd == nil {
		return 0
	}
	n := 0
	_ = s.bdd.Allnodes(func(_, _, _, _ int) error {
		n++
		return nil
	})
	return n
}

// Varnum returns the number of variables of the current engine.
func (s *Session) Varnum() int {
	return s.varnum
}

// Resets returns how many times the session has been reset.
func (s *Session) Resets() int {
	return s.resets
}

// Err returns ErrCapacityExhausted once the engine has failed or more nodes
// than Capacity are in use. Solvers call it after every fixpoint round. The
// failure sticks until the next Reset.
func (s *Session) Err() error {
	if s.bdd == nil {
		return fmt.Errorf("session: used before Reset")
	}
	if s.failure != nil {
		return s.failure
	}
	if msg := s.bdd.Error(); msg != "" {
		s.failure = fmt.Errorf("%w: %s", ErrCapacityExhausted, msg)
	} else if used := s.Used(); used > s.opts.MaxNodeTableSize {
		s.failure = fmt.Errorf("%w: %d nodes in use, capacity %d", ErrCapacityExhausted, used, s.opts.MaxNodeTableSize)
	}
	return s.failure
}

func (s *Session) True() Node { return s.bdd.True() }
func (s *Session) False() Node { return s.bdd.False() }

// Var returns the positive literal of variable i.
func (s *Session) Var(i int) Node { return s.bdd.Ithvar(i) }

// NVar returns the negative literal of variable i.
func (s *Session) NVar(i int) Node { return s.bdd.NIthvar(i) }

// Literal returns Var(i) when value holds and NVar(i) otherwise.
func (s *Session) Literal(i int, value bool) Node {
	if value {
		return s.bdd.Ithvar(i)
	}
	return s.bdd.NIthvar(i)
}

func (s *Session) Not(n Node) Node { return s.bdd.Not(n) }
func (s *Session) And(n ...Node) Node { return s.bdd.And(n...) }
func (s *Session) Or(n ...Node) Node { return s.bdd.Or(n...) }
func (s *Session) Diff(a, b Node) Node { return s.bdd.And(a, s.bdd.Not(b)) }

// Exist quantifies vars existentially.
func (s *Session) Exist(n Node, vars []int) Node {
	if len(vars) == 0 {
		return n
	}
	return s.bdd.Exist(n, s.bdd.Makeset(vars))
}

// AndExist computes ∃vars. a ∧ b in one pass.
func (s *Session) AndExist(vars []int, a, b Node) Node {
	if len(vars) == 0 {
		return s.bdd.And(a, b)
	}
	return s.bdd.AndExist(s.bdd.Makeset(vars), a, b)
}

// Forall quantifies vars universally as ¬∃vars.¬n.
func (s *Session) Forall(n Node, vars []int) Node {
	return s.bdd.Not(s.Exist(s.bdd.Not(n), vars))
}

// Replacer builds a variable renaming from -> to.
func (s *Session) Replacer(from, to []int) (Replacer, error) {
	r, err := s.bdd.NewReplacer(from, to)
	if err != nil {
		return nil, fmt.Errorf("session: building replacer: %w", err)
	}
	return r, nil
}

// Replace renames the variables of n.
func (s *Session) Replace(n Node, r Replacer) Node {
	return s.bdd.Replace(n, r)
}

// Equal compares two handles. Nil handles, produced after an engine
// failure, are only equal to each other.
func (s *Session) Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// IsFalse reports whether n is the constant false.
func (s *Session) IsFalse(n Node) bool {
	return s.Equal(n, s.bdd.False())
}

// Implies reports whether every assignment of a satisfies b.
func (s *Session) Implies(a, b Node) bool {
	return s.IsFalse(s.Diff(a, b))
}

// Satcount returns the number of satisfying assignments over all variables.
func (s *Session) Satcount(n Node) *big.Int {
	return s.bdd.Satcount(n)
}

// Stats describes the engine's tables.
func (s *Session) Stats() string {
	if s.bdd == nil {
		return ""
	}
	return s.bdd.Stats()
}

// Encode returns the conjunction of literals that spells value over vars,
// most significant bit first.
func (s *Session) Encode(vars []int, value int) Node {
	lits := make([]Node, 0, len(vars))
	for j, v := range vars {
		bit := (value >> (len(vars) - 1 - j)) & 1
		lits = append(lits, s.Literal(v, bit == 1))
	}
	return s.bdd.And(lits...)
}
