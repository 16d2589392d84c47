package solver

import (
	"fmt"
	"sort"

	"github.com/vk/reactsynth/internal/session"
)

// BitsFor returns the number of bits needed to number n positions, and at
// least one.
func BitsFor(n int) int {
	bits := 1
	for (1 << bits) < n {
		bits++
	}
	return bits
}

// Space is the variable layout of a game over a fixed number of positions.
type Space struct {
	S      *session.Session
	States int
	Pre    []int
	Post   []int
	toPost session.Replacer
	toPre  session.Replacer
}

// NewSpace resets s and lays out variables for states positions.
func NewSpace(s *session.Session, states int) (*Space, error) {
	if states <= 0 {
		return nil, fmt.Errorf("solver: a game needs at least one position")
	}
	bits := BitsFor(states)
	if err := s.Reset(2 * bits); err != nil {
		return nil, err
	}
	sp := &Space{S: s, States: states, Pre: make([]int, bits), Post: make([]int, bits)}
	for j := 0; j < bits; j++ {
		sp.Pre[j] = 2 * j
		sp.Post[j] = 2*j + 1
	}
	var err error
	if sp.toPost, err = s.Replacer(sp.Pre, sp.Post); err != nil {
		return nil, err
	}
	if sp.toPre, err = s.Replacer(sp.Post, sp.Pre); err != nil {
		return nil, err
	}
	return sp, nil
}

// Bits returns the width of a position code.
func (sp *Space) Bits() int {
	return len(sp.Pre)
}

// Current encodes a position over the current variables.
func (sp *Space) Current(id int) session.Node {
	return sp.S.Encode(sp.Pre, id)
}

// Next encodes a position over the next variables.
func (sp *Space) Next(id int) session.Node {
	return sp.S.Encode(sp.Post, id)
}

// Move encodes the pair (src, dst).
func (sp *Space) Move(src, dst int) session.Node {
	return sp.S.And(sp.Current(src), sp.Next(dst))
}

// Set encodes a set of positions over the current variables.
func (sp *Space) Set(ids []int) session.Node {
	out := sp.S.False()
	for _, id := range ids {
		out = sp.S.Or(out, sp.Current(id))
	}
	return out
}

// Primed renames current variables to next variables.
func (sp *Space) Primed(n session.Node) session.Node {
	return sp.S.Replace(n, sp.toPost)
}

// Unprimed renames next variables to current variables.
func (sp *Space) Unprimed(n session.Node) session.Node {
	return sp.S.Replace(n, sp.toPre)
}

// Pairs decodes a relation into (src, dst) position pairs in ascending
// order. Codes outside the position range are dropped and counted.
func (sp *Space) Pairs(rel session.Node) ([][2]int, int, error) {
	cubes, err := sp.S.Assignments(rel)
	if err != nil {
		return nil, 0, err
	}
	var out [][2]int
	skipped := 0
	for _, cube := range cubes {
		for _, src := range cube.Values(sp.Pre) {
			for _, dst := range cube.Values(sp.Post) {
				if src >= sp.States || dst >= sp.States {
					skipped++
					continue
				}
				out = append(out, [2]int{src, dst})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out, skipped, nil
}

// Members decodes a set of positions in ascending order. Codes outside the position range are
// dropped and counted.
func (sp *Space) Members(set session.Node) ([]int, int, error) {
	cubes, err := sp.S.Assignments(sp.S.Exist(set, sp.Post))
	if err != nil {
		return nil, 0, err
	}
	var out []int
	skipped := 0
	for _, cube := range cubes {
		for _, id := range cube.Values(sp.Pre) {
			if id >= sp.States {
				skipped++
				continue
			}
			out = append(out, id)
		}
	}
	sort.Ints(out)
	return out, skipped, nil
}
