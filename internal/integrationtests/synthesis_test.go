package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/reactsynth/internal/app"
	"github.com/vk/reactsynth/internal/engine"
	"github.com/vk/reactsynth/internal/testutil"
)

const followLTL = `## b answers a one step later
INPUT a
OUTPUT b
ALWAYS (a -> NEXT b)
`

const clashLTL = `INPUT a
OUTPUT b
[] (a -> !b)
[] (a -> b)
`

const pairsHCL = `
problem "pairs" {
  inputs     = ["a", "c"]
  outputs    = ["b", "d"]
  guarantees = ["[] (a -> X b)", "[] (c -> X d)"]
  engine     = "compositional"
}
`

// TestSynthesis_Engines runs the same realizable problem through every engine.
func TestSynthesis_Engines(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"cobuechi", "buechi", "compositional"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			files := map[string]string{"follow.ltl": followLTL}

			// --- Act ---
			result := testutil.RunIntegrationTest(t, files, app.Config{Engine: name})

			// --- Assert ---
			require.NoError(t, result.Err)
			r := testutil.AssertVerdict(t, result, "follow", engine.VerdictRealizable)
			assert.Equal(t, name, r.Engine)
			testutil.AssertRespondsNextStep(t, r.Machine, 0, 0, 4)
		})
	}
}

// TestSynthesis_MixedBatch loads text and HCL problems from one directory
// and lets per-file settings override the run defaults.
func TestSynthesis_MixedBatch(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"follow.ltl":        followLTL,
		"nested/clash.ltl":  clashLTL,
		"nested/pairs.hcl":  pairsHCL,
		"nested/notes.yaml": "ignored: true",
	}
	cfg := app.Config{Workers: 3, GroupSize: 1, ParallelSubproblems: 2}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, cfg)

	// --- Assert ---
	require.NoError(t, result.Err)
	require.Len(t, result.Summary.Results, 3)

	testutil.AssertVerdict(t, result, "follow", engine.VerdictRealizable)
	clash := testutil.AssertVerdict(t, result, "clash", engine.VerdictUnrealizable)
	assert.Equal(t, "cobuechi", clash.Engine)

	pairs := testutil.AssertVerdict(t, result, "pairs", engine.VerdictRealizable)
	assert.Equal(t, "compositional", pairs.Engine)
	assert.Equal(t, []string{"a", "c"}, pairs.Machine.Inputs)
	testutil.AssertRespondsNextStep(t, pairs.Machine, 0, 0, 3)
	testutil.AssertRespondsNextStep(t, pairs.Machine, 1, 1, 3)

	assert.Contains(t, result.LogOutput, "Batch finished.")
	assert.Contains(t, result.LogOutput, "realizable=2")
}

func TestSynthesis_FailUnrealizable(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{"follow.ltl": followLTL, "clash.ltl": clashLTL}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, app.Config{FailUnrealizable: true})

	// --- Assert ---
	require.ErrorIs(t, result.Err, app.ErrUnrealizable)
	testutil.AssertVerdict(t, result, "follow", engine.VerdictRealizable)
}

func TestSynthesis_NonExistence(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{"never.ltl": "INPUT a\nOUTPUT b\nTIMER t0\nfalse\n"}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, app.Config{ProveNonExistence: true})

	// --- Assert ---
	require.NoError(t, result.Err)
	r := testutil.AssertVerdict(t, result, "never", engine.VerdictUnrealizable)
	assert.Equal(t, engine.NonExistence, r.Mode)
	assert.Equal(t, []string{"0", "1"}, r.Witness)
	assert.Equal(t, []string{"t0"}, r.Timers)
}

func TestSynthesis_StartupErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		files map[string]string
		want  string
	}{
		{
			name:  "duplicate problem names",
			files: map[string]string{"follow.ltl": followLTL, "other/follow.ltl": followLTL},
			want:  `problem "follow" defined in`,
		},
		{
			name:  "formula syntax error",
			files: map[string]string{"broken.ltl": "INPUT a\nOUTPUT b\n[] (a ->\n"},
			want:  "guarantee",
		},
		{
			name:  "undecodable hcl",
			files: map[string]string{"broken.hcl": "problem \"p\" {\n  outputs = [\"b\"]\n}\n"},
			want:  "failed to decode HCL file",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			result := testutil.RunIntegrationTest(t, tc.files, app.Config{})

			// --- Assert ---
			require.Error(t, result.Err)
			assert.Contains(t, result.Err.Error(), "application startup panicked")
			assert.Contains(t, result.Err.Error(), tc.want)
			assert.Nil(t, result.App)
		})
	}
}
