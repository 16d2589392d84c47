package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProblem() *Problem {
	return &Problem{
		Name:       "p",
		Inputs:     []string{"a"},
		Outputs:    []string{"b"},
		Guarantees: []string{"[] (a -> X b)"},
	}
}

func TestProblem_Formula(t *testing.T) {
	t.Run("guarantees only", func(t *testing.T) {
		p := &Problem{Guarantees: []string{"[] a", "<> b"}}
		assert.Equal(t, "([] a) && (<> b)", p.Formula())
	})

	t.Run("with assumptions", func(t *testing.T) {
		p := &Problem{Assumptions: []string{"[] <> a"}, Guarantees: []string{"[] b"}}
		assert.Equal(t, "(([] <> a)) -> (([] b))", p.Formula())
	})
}

func TestProblem_Groups(t *testing.T) {
	p := &Problem{
		Assumptions: []string{"x"},
		Guarantees:  []string{"g1", "g2", "g3"},
	}

	groups := p.Groups(2)

	require.Len(t, groups, 2)
	assert.Equal(t, []string{"g1", "g2"}, groups[0].Guarantees)
	assert.Equal(t, "((x)) -> ((g1) && (g2))", groups[0].Formula)
	assert.Equal(t, 1, groups[1].Index)
	assert.Equal(t, "((x)) -> ((g3))", groups[1].Formula)

	assert.Len(t, p.Groups(0), 3, "non-positive sizes fall back to one guarantee per group")
}

func TestProblem_Validate(t *testing.T) {
	require.NoError(t, validProblem().Validate())

	cases := map[string]func(p *Problem){
		"no outputs":       func(p *Problem) { p.Outputs = nil },
		"no guarantees":    func(p *Problem) { p.Guarantees = nil },
		"duplicate signal": func(p *Problem) { p.Outputs = []string{"a"} },
		"empty signal":     func(p *Problem) { p.Inputs = []string{""} },
		"bad guarantee":    func(p *Problem) { p.Guarantees = []string{"a &&"} },
		"bad assumption":   func(p *Problem) { p.Assumptions = []string{"(a"} },
		"unknown engine":   func(p *Problem) { p.Engine = "magic" },
		"negative bound":   func(p *Problem) { p.RiskBound = -1 },
		"too many outputs": func(p *Problem) { p.Outputs = make([]string, 17) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := validProblem()
			mutate(p)

			err := p.Validate()

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidProblem))
		})
	}
}
