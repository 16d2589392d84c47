package session

import (
	"fmt"
	"strings"
)

// Bit is one position of a satisfying assignment.
type Bit int8

const (
	Zero     Bit = 0
	One      Bit = 1
	DontCare Bit = -1
)

// Assignment is a satisfying cube indexed by variable.
type Assignment []Bit

// Assignments lists the satisfying cubes of n. Variables the cube does not
// constrain are DontCare.
func (s *Session) Assignments(n Node) ([]Assignment, error) {
	var out []Assignment
	err := s.bdd.Allsat(func(vals []int) error {
		a := make(Assignment, len(vals))
		for i, v := range vals {
			a[i] = Bit(v)
		}
		out = append(out, a)
		return nil
	}, n)
	if err != nil {
		return nil, fmt.Errorf("session: enumerating assignments: %w", err)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Values returns every integer the bits at vars can spell, most
// significant bit first, expanding don't-cares in ascending order.
func (a Assignment) Values(vars []int) []int {
	vals := []int{0}
	for _, v := range vars {
		switch a[v] {
		case One:
			for i := range vals {
				vals[i] = vals[i]<<1 | 1
			}
		case Zero:
			for i := range vals {
				vals[i] <<= 1
			}
		default:
			next := make([]int, 0, 2*len(vals))
			for _, x := range vals {
				next = append(next, x<<1, x<<1|1)
			}
			vals = next
		}
	}
	return vals
}

// Pattern renders the bits at vars as '0', '1' and '-'.
func (a Assignment) Pattern(vars []int) string {
	var b strings.Builder
	for _, v := range vars {
		switch a[v] {
		case One:
			b.WriteByte('1')
		case Zero:
			b.WriteByte('0')
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}
