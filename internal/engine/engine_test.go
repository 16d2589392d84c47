package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/reactsynth/internal/automaton"
	"github.com/vk/reactsynth/internal/config"
	"github.com/vk/reactsynth/internal/ctxlog"
	"github.com/vk/reactsynth/internal/ltl"
	"github.com/vk/reactsynth/internal/mealy"
	"github.com/vk/reactsynth/internal/session"
	"github.com/vk/reactsynth/internal/valuation"
)

func testContext() context.Context {
	return ctxlog.Discard(context.Background())
}

func problem(inputs, outputs []string, guarantees ...string) *config.Problem {
	return &config.Problem{Name: "test", Inputs: inputs, Outputs: outputs, Guarantees: guarantees}
}

// sequences returns every input word of the given length.
func sequences(width, length int) [][]string {
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

// feed runs word through m from its initial state and returns the outputs.
func feed(t *testing.T, m *mealy.Machine, word []string) []string {
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

// respondsNextStep checks that output bit out is set whenever input bit in
// was set one step earlier.
func respondsNextStep(t *testing.T, m *mealy.Machine, in, out int) {
	t.Helper()
	for _, word := range sequences(len(m.Inputs), 4) {
		outputs := feed(t, m, word)
		for i := 1; i < len(word); i++ {
			if word[i-1][in] == '1' {
				require.Equal(t, byte('1'), outputs[i][out], "word %v outputs %v", word, outputs)
			}
		}
	}
}

func TestCoBuechi_ScenarioA(t *testing.T) {
	// --- Arrange ---
	p := problem([]string{"a"}, []string{"b"}, "[] (a -> X b)")

	// --- Act ---
	res := Synthesize(testContext(), nil, p, Options{})

	// --- Assert ---
	require.NoError(t, res.Err)
	require.True(t, res.StrategyFound, res.Message)
	assert.Equal(t, VerdictRealizable, res.Verdict())
	assert.Equal(t, config.EngineCoBuechi, res.Engine)
	require.NotNil(t, res.Machine)
	assert.True(t, res.Machine.IsDeterministic())
	respondsNextStep(t, res.Machine, 0, 0)
}

func TestCoBuechi_ScenarioB(t *testing.T) {
	p := problem([]string{"a"}, []string{"b"}, "[] (a -> !b)", "[] (a -> b)")

	res := CoBuechi(testContext(), nil, p, Options{})

	require.NoError(t, res.Err)
	assert.False(t, res.StrategyFound)
	assert.Equal(t, VerdictUnrealizable, res.Verdict())
	assert.Contains(t, res.Message, "unable to find the controller")
}

func TestCompositional_ScenarioC(t *testing.T) {
	// --- Arrange ---
	p := problem([]string{"a", "c"}, []string{"b", "d"}, "[] (a -> X b)", "[] (c -> X d)")
	opts := Options{GroupSize: 1, ParallelSubproblems: 2}

	// --- Act ---
	res := Compositional(testContext(), nil, p, opts)

	// --- Assert ---
	require.NoError(t, res.Err)
	require.True(t, res.StrategyFound, res.Message)
	assert.Contains(t, res.Message, "compositional")
	m := res.Machine
	assert.Equal(t, []string{"a", "c"}, m.Inputs)
	assert.Equal(t, []string{"b", "d"}, m.Outputs)
	assert.True(t, m.IsDeterministic())
	respondsNextStep(t, m, 0, 0)
	respondsNextStep(t, m, 1, 1)

	for _, g := range p.Groups(1) {
		part := problem(nil, nil, g.Guarantees...)
		part.Inputs, part.Outputs = []string{"a", "c"}, []string{"b", "d"}
		mono := CoBuechi(testContext(), nil, part, Options{})
		assert.True(t, mono.StrategyFound, "conjunct %s alone", g.Formula)
	}
}

func TestCompositional_Failures(t *testing.T) {
	ctx := testContext()

	t.Run("unrealizable part", func(t *testing.T) {
		p := problem([]string{"a"}, []string{"b"}, "[] (a -> X b)", "[] a")

		res := Compositional(ctx, nil, p, Options{GroupSize: 1})

		require.NoError(t, res.Err)
		assert.False(t, res.StrategyFound)
		assert.Contains(t, res.Message, "sub-specification")
		assert.Contains(t, res.Message, "[] a")
	})

	t.Run("parts that cannot be combined", func(t *testing.T) {
		p := problem([]string{"a"}, []string{"b"}, "[] (a -> !b)", "[] (a -> b)")

		res := Compositional(ctx, nil, p, Options{GroupSize: 1})

		require.NoError(t, res.Err)
		assert.False(t, res.StrategyFound)
		assert.Contains(t, res.Message, "unable to combine")
	})

	t.Run("single group falls back to the monolithic engine", func(t *testing.T) {
		p := problem([]string{"a"}, []string{"b"}, "[] (a -> X b)")

		res := Compositional(ctx, nil, p, Options{})

		require.True(t, res.StrategyFound, res.Message)
		assert.Contains(t, res.Diagnostics, "solved monolithically")
	})
}

func TestCoBuechi_FastPaths(t *testing.T) {
	ctx := testContext()

	t.Run("negation accepts nothing", func(t *testing.T) {
		res := CoBuechi(ctx, nil, problem([]string{"a"}, []string{"b"}, "true"), Options{})

		require.True(t, res.StrategyFound)
		assert.Equal(t, "0", res.Machine.Initial)
		assert.Len(t, res.Machine.Edges, 2)
		assert.True(t, res.Machine.IsComplete())
	})

	t.Run("specification accepts nothing", func(t *testing.T) {
		res := CoBuechi(ctx, nil, problem([]string{"a"}, []string{"b"}, "false"), Options{ProveNonExistence: true})

		require.True(t, res.StrategyFound)
		assert.Equal(t, NonExistence, res.Mode)
		assert.Equal(t, VerdictUnrealizable, res.Verdict())
		assert.Equal(t, []string{"0", "1"}, res.Witness)
	})
}

func TestCoBuechi_Witness(t *testing.T) {
	p := problem([]string{"a"}, []string{"b"}, "[] (a -> !b)", "[] (a -> b)")

	res := CoBuechi(testContext(), nil, p, Options{ProveNonExistence: true})

	require.NoError(t, res.Err)
	assert.Equal(t, NonExistence, res.Mode)
	if res.StrategyFound {
		assert.NotEmpty(t, res.Witness)
		assert.Equal(t, VerdictUnrealizable, res.Verdict())
	} else {
		assert.Equal(t, VerdictUnknown, res.Verdict())
	}
}

func TestBuechi(t *testing.T) {
	ctx := testContext()

	t.Run("scenario A", func(t *testing.T) {
		res := Buechi(ctx, nil, problem([]string{"a"}, []string{"b"}, "[] (a -> X b)"), Options{})

		require.NoError(t, res.Err)
		require.True(t, res.StrategyFound, res.Message)
		assert.Equal(t, config.EngineBuechi, res.Engine)
		respondsNextStep(t, res.Machine, 0, 0)
	})

	t.Run("unsatisfiable specification", func(t *testing.T) {
		res := Buechi(ctx, nil, problem([]string{"a"}, []string{"b"}, "false"), Options{})

		require.NoError(t, res.Err)
		assert.False(t, res.StrategyFound)
		assert.Equal(t, VerdictUnrealizable, res.Verdict())
	})

	t.Run("witness for an unsatisfiable specification", func(t *testing.T) {
		res := Buechi(ctx, nil, problem([]string{"a"}, []string{"b"}, "false"), Options{ProveNonExistence: true})

		require.NoError(t, res.Err)
		assert.True(t, res.StrategyFound, res.Message)
		assert.Equal(t, VerdictUnrealizable, res.Verdict())
	})
}

type panickingTranslator struct{}

func (panickingTranslator) Translate(context.Context, string) (*automaton.Graph, error) {
	panic("translator exploded")
}

func TestSynthesize_Errors(t *testing.T) {
	ctx := testContext()

	t.Run("malformed formula", func(t *testing.T) {
		res := Synthesize(ctx, nil, problem([]string{"a"}, []string{"b"}, "[] (a ->"), Options{})

		require.Error(t, res.Err)
		assert.True(t, errors.Is(res.Err, ltl.ErrSyntax))
		assert.Equal(t, VerdictError, res.Verdict())
		assert.Contains(t, res.Message, "translation failed")
		assert.NotEmpty(t, res.Diagnostics)
	})

	t.Run("unknown engine", func(t *testing.T) {
		p := problem([]string{"a"}, []string{"b"}, "[] b")
		p.Engine = "quantum"

		res := Synthesize(ctx, nil, p, Options{})

		require.Error(t, res.Err)
		assert.Equal(t, VerdictError, res.Verdict())
	})

	t.Run("panics are recovered", func(t *testing.T) {
		res := Synthesize(ctx, nil, problem([]string{"a"}, []string{"b"}, "[] b"), Options{Translator: panickingTranslator{}})

		require.ErrorIs(t, res.Err, ErrInternal)
		assert.Contains(t, res.Err.Error(), "translator exploded")
		assert.False(t, res.StrategyFound)
	})

	t.Run("nil problem", func(t *testing.T) {
		for name, entry := range map[string]func(context.Context, *session.Session, *config.Problem, Options) *Result{
			"synthesize":    Synthesize,
			"cobuechi":      CoBuechi,
			"buechi":        Buechi,
			"compositional": Compositional,
		} {
			res := entry(ctx, nil, nil, Options{})

			require.ErrorIs(t, res.Err, ErrNoProblem, name)
			assert.Equal(t, VerdictError, res.Verdict(), name)
		}
	})

	t.Run("context without a logger", func(t *testing.T) {
		p := problem([]string{"a"}, []string{"b"}, "[] (a -> X b)")

		var res *Result
		require.NotPanics(t, func() {
			res = Synthesize(context.Background(), nil, p, Options{})
		})

		require.ErrorIs(t, res.Err, ErrInternal)
		assert.Contains(t, res.Err.Error(), "logger missing")
		assert.False(t, res.StrategyFound)
		assert.Equal(t, "test", res.Problem)
	})

	t.Run("node table capacity is enforced", func(t *testing.T) {
		p := problem([]string{"a", "c"}, []string{"b", "d"}, "[] (a -> X b)", "[] (c -> X d)")
		opts := Options{Session: session.Options{MaxNodeTableSize: 8}}

		for name, entry := range map[string]func(context.Context, *session.Session, *config.Problem, Options) *Result{
			"cobuechi": CoBuechi,
			"buechi":   Buechi,
		} {
			res := entry(ctx, nil, p, opts)

			require.ErrorIs(t, res.Err, session.ErrCapacityExhausted, name)
			assert.True(t, res.CapacityExhausted(), name)
			assert.False(t, res.StrategyFound, name)
			assert.Nil(t, res.Machine, name)
			assert.Contains(t, res.Message, "relation engine capacity exhausted during", name)
			assert.Equal(t, VerdictError, res.Verdict(), name)
		}
	})

	t.Run("capacity exhaustion is classified", func(t *testing.T) {
		res := &Result{Machine: mealy.New(nil, nil), StrategyFound: true}

		res.fail("solving", fmt.Errorf("wrapped: %w", session.ErrCapacityExhausted))

		assert.True(t, res.CapacityExhausted())
		assert.False(t, res.StrategyFound)
		assert.Nil(t, res.Machine)
		assert.Equal(t, "relation engine capacity exhausted during solving", res.Message)
	})
}

func TestSynthesize_Diagnostics(t *testing.T) {
	t.Run("unknown literals are reported", func(t *testing.T) {
		p := problem([]string{"a"}, []string{"b"}, "[] (z -> b)")
		p.Timers = []string{"t1"}

		res := Synthesize(testContext(), nil, p, Options{})

		require.NoError(t, res.Err)
		assert.True(t, res.StrategyFound, res.Message)
		assert.Equal(t, []string{"z"}, res.UnknownLiterals)
		assert.Equal(t, []string{"t1"}, res.Timers)
	})

	t.Run("problem settings override options", func(t *testing.T) {
		p := problem([]string{"a"}, []string{"b"}, "[] (a -> X b)")
		p.Engine = config.EngineBuechi

		res := Synthesize(testContext(), nil, p, Options{Engine: config.EngineCoBuechi})

		assert.Equal(t, config.EngineBuechi, res.Engine)
	})

	t.Run("session is reused", func(t *testing.T) {
		s := session.New(session.Options{})
		p := problem([]string{"a"}, []string{"b"}, "[] (a -> X b)")

		first := Synthesize(testContext(), s, p, Options{})
		second := Synthesize(testContext(), s, p, Options{})

		require.True(t, first.StrategyFound)
		require.True(t, second.StrategyFound)
		assert.Equal(t, 2, s.Resets())
	})
}

func TestOptions_Resolve(t *testing.T) {
	p := &config.Problem{UnrollSteps: 4}

	got := Options{RiskBound: 7}.resolve(p)

	assert.Equal(t, config.EngineCoBuechi, got.Engine)
	assert.Equal(t, 4, got.UnrollSteps)
	assert.Equal(t, 7, got.RiskBound)
	assert.Equal(t, DefaultGroupSize, got.GroupSize)
	assert.NotNil(t, got.Translator)
}
