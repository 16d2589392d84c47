package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/reactsynth/internal/engine"
	"github.com/vk/reactsynth/internal/mealy"
	"github.com/vk/reactsynth/internal/valuation"
)

// ResultFor returns the result of the named problem.
func ResultFor(t *testing.T, result *HarnessResult, problem string) *engine.Result {
	t.Helper()
	require.NotNil(t, result.Summary, "the batch did not run: %v", result.Err)
	for _, r := range result.Summary.Results {
		if r.Problem == problem {
			return r
		}
	}
	require.Failf(t, "missing result", "no result for problem %q", problem)
	return nil
}

// AssertVerdict checks the verdict of the named problem.
func AssertVerdict(t *testing.T, result *HarnessResult, problem string, want engine.Verdict) *engine.Result {
	t.Helper()
	r := ResultFor(t, result, problem)
	require.Equal(t, want, r.Verdict(), "problem %q: %s", problem, r.Message)
	return r
}

// Simulate feeds word to m from its initial state and returns the outputs.
func Simulate(t *testing.T, m *mealy.Machine, word []string) []string {
	t.Helper()
	state := m.Initial
	outputs := make([]string, 0, len(word))
	for _, in := range word {
		e, ok := m.Step(state, in)
		require.True(t, ok, "no move from %s on %s", state, in)
		outputs = append(outputs, e.Output)
		state = e.Dest
	}
	return outputs
}

// Words returns every input word of the given length over width signals.
func Words(width, length int) [][]string {
	words := [][]string{nil}
	for range length {
		var next [][]string
		for _, w := range words {
			for _, v := range valuation.All(width) {
				next = append(next, append(append([]string(nil), w...), v))
			}
		}
		words = next
	}
	return words
}

// AssertRespondsNextStep checks on every word of the given length that
// output bit out is set whenever input bit in was set one step earlier.
func AssertRespondsNextStep(t *testing.T, m *mealy.Machine, in, out, length int) {
	t.Helper()
	require.NotNil(t, m)
	for _, word := range Words(len(m.Inputs), length) {
		outputs := Simulate(t, m, word)
		for i := 1; i < len(word); i++ {
			if word[i-1][in] == '1' {
				require.Equal(t, byte('1'), outputs[i][out], "word %v outputs %v", word, outputs)
			}
		}
	}
}
