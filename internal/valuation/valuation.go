package valuation

import (
	"fmt"
	"strings"
)

// MaxSignals bounds the width of a signal list. Arenas allocate one vertex
// per input valuation, so wider lists are rejected up front.
const MaxSignals = 16

// Count returns the number of valuations over width signals.
func Count(width int) int {
	return 1 << width
}

// Bit reports the value of the signal at position pos in valuation v.
func Bit(v, pos, width int) bool {
	return (v>>(width-1-pos))&1 == 1
}

// String renders valuation v over width signals.
func String(v, width int) string {
	var b strings.Builder
	b.Grow(width)
	for pos := 0; pos < width; pos++ {
		if Bit(v, pos, width) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// All returns the textual form of every valuation over width signals in
// index order.
func All(width int) []string {
	out := make([]string, Count(width))
	for v := range out {
		out[v] = String(v, width)
	}
	return out
}

// Parse converts a textual valuation back to its index.
func Parse(s string) (int, error) {
	v := 0
	for i, c := range s {
		switch c {
		case '0':
			v <<= 1
		case '1':
			v = v<<1 | 1
		default:
			return 0, fmt.Errorf("valuation %q: invalid character %q at %d", s, c, i)
		}
	}
	return v, nil
}

// Pattern is a partial valuation: each position is required true, required
// false, or unconstrained.
type Pattern struct {
	width int
	care  int
	value int
}

// NewPattern returns a pattern over width signals that constrains nothing.
func NewPattern(width int) Pattern {
	return Pattern{width: width}
}

// Require constrains the signal at pos to the given value. It reports false
// when the pattern already requires the opposite value.
func (p *Pattern) Require(pos int, value bool) bool {
	mask := 1 << (p.width - 1 - pos)
	if p.care&mask != 0 {
		return (p.value&mask != 0) == value
	}
	p.care |= mask
	if value {
		p.value |= mask
	}
	return true
}

// Matches reports whether valuation v satisfies the pattern.
func (p Pattern) Matches(v int) bool {
	return v&p.care == p.value
}

// Expand returns every valuation index that satisfies the pattern, ascending.
func (p Pattern) Expand() []int {
	var out []int
	for v := 0; v < Count(p.width); v++ {
		if p.Matches(v) {
			out = append(out, v)
		}
	}
	return out
}
