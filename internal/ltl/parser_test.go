package ltl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		want string
	}{
		{name: "atom", src: "req", want: "req"},
		{name: "dotted identifier", src: "bus.ack_1", want: "bus.ack_1"},
		{name: "response property", src: "[] (a -> X b)", want: "[] (a -> X b)"},
		{name: "unary binds tighter than implication", src: "[] a -> X b", want: "([] a -> X b)"},
		{name: "conjunction binds tighter than disjunction", src: "a || b && c", want: "(a || (b && c))"},
		{name: "until binds tighter than conjunction", src: "a && b U c", want: "(a && (b U c))"},
		{name: "implication is right associative", src: "a -> b -> c", want: "(a -> (b -> c))"},
		{name: "keyword spellings", src: "ALWAYS (a -> NEXT EVENTUALLY b) && a UNTIL b", want: "([] (a -> X <> b) && (a U b))"},
		{name: "single character connectives", src: "a & !b | c", want: "((a && !b) || c)"},
		{name: "constants", src: "true U false", want: "(true U false)"},
		{name: "equivalence and release", src: "(a <-> b) V c", want: "((a <-> b) V c)"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Act ---
			f, err := Parse(tc.src)

			// --- Assert ---
			require.NoError(t, err)
			assert.Equal(t, tc.want, f.String())

			reparsed, err := Parse(f.String())
			require.NoError(t, err)
			assert.Equal(t, f.String(), reparsed.String())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name string
		src  string
	}{
		{name: "empty", src: "   "},
		{name: "unbalanced parenthesis", src: "(a && b"},
		{name: "dangling operator", src: "a &&"},
		{name: "trailing token", src: "a b"},
		{name: "bad character", src: "a # b"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.src)
			require.ErrorIs(t, err, ErrSyntax)
		})
	}
}

func TestAtoms(t *testing.T) {
	f := MustParse("[] (r2 -> X g) && <> (r1 || !g)")
	assert.Equal(t, []string{"g", "r1", "r2"}, Atoms(f))
}
