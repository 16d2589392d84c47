package compose

import (
	"fmt"

	"github.com/vk/reactsynth/internal/ltl"
)

// SubProblem is one independently synthesized part of a specification.
type SubProblem struct {
	Index   int
	Formula string
	Inputs  []string
	Outputs []string
}

// Split builds a sub-problem per formula over the global signals it
// mentions. A formula that mentions no input, or no output, is given the
// first global one so that every sub-machine has a well-formed alphabet.
func Split(formulas []string, inputs, outputs []string) ([]SubProblem, error) {
	subs := make([]SubProblem, 0, len(formulas))
	for i, text := range formulas {
		f, err := ltl.Parse(text)
		if err != nil {
			return nil, fmt.Errorf("compose: sub-specification %d: %w", i, err)
		}
		mentioned := make(map[string]struct{})
		for _, atom := range ltl.Atoms(f) {
			mentioned[atom] = struct{}{}
		}
		subs = append(subs, SubProblem{
			Index:   i,
			Formula: text,
			Inputs:  restrict(inputs, mentioned),
			Outputs: restrict(outputs, mentioned),
		})
	}
	return subs, nil
}

// restrict keeps the mentioned signals in global order, falling back to
// the first signal.
func restrict(signals []string, mentioned map[string]struct{}) []string {
	var out []string
	for _, name := range signals {
		if _, ok := mentioned[name]; ok {
			out = append(out, name)
		}
	}
	if len(out) == 0 && len(signals) > 0 {
		out = []string{signals[0]}
	}
	return out
}
