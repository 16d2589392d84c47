package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/reactsynth/internal/ctxlog"
)

const arbiterText = `## two-client arbiter
!-- generated by hand
INPUT r1, r2
OUTPUT g1,g2
TIMER t
ASSUME [] <> !r1

ALWAYS (r1 -> EVENTUALLY g1)
[] !(g1 && g2)
`

func TestParseText(t *testing.T) {
	t.Run("declarations and guarantees", func(t *testing.T) {
		p, err := ParseText("arbiter", strings.NewReader(arbiterText))
		require.NoError(t, err)

		want := &Problem{
			Name:        "arbiter",
			Inputs:      []string{"r1", "r2"},
			Outputs:     []string{"g1", "g2"},
			Timers:      []string{"t"},
			Assumptions: []string{"[] <> !r1"},
			Guarantees:  []string{"ALWAYS (r1 -> EVENTUALLY g1)", "[] !(g1 && g2)"},
		}
		if diff := cmp.Diff(want, p); diff != "" {
			t.Errorf("ParseText() mismatch (-want +got):\n%s", diff)
		}
		assert.NoError(t, p.Validate())
	})

	t.Run("keyword prefix of an identifier is a guarantee", func(t *testing.T) {
		p, err := ParseText("p", strings.NewReader("OUTPUT b\nINPUTS_OK -> b\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"INPUTS_OK -> b"}, p.Guarantees)
	})

	t.Run("empty declaration", func(t *testing.T) {
		_, err := ParseText("p", strings.NewReader("INPUT\n"))
		require.ErrorIs(t, err, ErrInvalidProblem)
	})
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExtensionLoader_Load(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	loader := NewExtensionLoader(map[string]FileLoader{".ltl": NewTextLoader()})

	t.Run("walks directories in order", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "b.ltl", "INPUT a\nOUTPUT b\n[] (a -> X b)\n")
		writeFile(t, dir, "nested/a.ltl", "OUTPUT c\n[] c\n")
		writeFile(t, dir, "notes.txt", "ignored")

		problems, err := loader.Load(ctx, dir)
		require.NoError(t, err)

		require.Len(t, problems, 2)
		assert.Equal(t, "b", problems[0].Name)
		assert.Equal(t, "a", problems[1].Name)
		assert.Equal(t, filepath.Join(dir, "nested", "a.ltl"), problems[1].Source)
	})

	t.Run("invalid problem names its file", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "bad.ltl", "INPUT a\n[] a\n")

		_, err := loader.Load(ctx, path)
		require.ErrorIs(t, err, ErrInvalidProblem)
		assert.Contains(t, err.Error(), path)
	})

	t.Run("duplicate names", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "x/p.ltl", "OUTPUT c\n[] c\n")
		writeFile(t, dir, "y/p.ltl", "OUTPUT c\n[] c\n")

		_, err := loader.Load(ctx, dir)
		require.ErrorIs(t, err, ErrInvalidProblem)
	})

	t.Run("unsupported file", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "p.txt", "OUTPUT c\n")

		_, err := loader.Load(ctx, path)
		require.Error(t, err)
	})

	t.Run("nothing found", func(t *testing.T) {
		_, err := loader.Load(ctx, t.TempDir())
		require.ErrorIs(t, err, ErrInvalidProblem)
	})
}
