package arena

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/reactsynth/internal/automaton"
	"github.com/vk/reactsynth/internal/ctxlog"
)

func twoStateGraph(edges ...automaton.Edge) *automaton.Graph {
	return &automaton.Graph{
		Nodes: []automaton.Node{{ID: 0}, {ID: 1, Accepting: true}},
		Edges: edges,
		Init:  0,
	}
}

func labelsOf(t *testing.T, a *Arena, source, dest int) []int {
	t.Helper()
	e, ok := a.EdgeBetween(source, dest)
	require.True(t, ok, "missing edge %d->%d", source, dest)
	return e.Labels
}

func TestBuild_Layout(t *testing.T) {
	// --- Arrange ---
	ctx := ctxlog.Discard(context.Background())
	g := twoStateGraph(
		automaton.Edge{Source: 0, Dest: 0, Guard: "-"},
		automaton.Edge{Source: 0, Dest: 1, Guard: "a&b"},
		automaton.Edge{Source: 1, Dest: 1, Guard: "!b"},
	)

	// --- Act ---
	a, err := Build(ctx, g, []string{"a"}, []string{"b"})

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, a.Vertices, 6)
	assert.Equal(t, 0, a.Initial)
	assert.Equal(t, RoleInitialPlant, a.Vertices[0].Role)
	assert.Equal(t, RolePlant, a.Vertices[3].Role)
	assert.Equal(t, RoleControl, a.Vertices[4].Role)
	assert.Equal(t, []int{3}, a.FinalVertices())
	assert.Equal(t, 2, a.States())

	t.Run("environment vertices fan out per input", func(t *testing.T) {
		assert.Equal(t, []int{0}, labelsOf(t, a, 0, 1))
		assert.Equal(t, []int{1}, labelsOf(t, a, 0, 2))
		assert.Equal(t, 1, a.Vertices[2].Input)
	})

	t.Run("control vertices carry admissible outputs", func(t *testing.T) {
		assert.Equal(t, []int{0, 1}, labelsOf(t, a, 1, 0))
		assert.Equal(t, []int{0, 1}, labelsOf(t, a, 2, 0))
		assert.Equal(t, []int{1}, labelsOf(t, a, 2, 3))
		_, ok := a.EdgeBetween(1, 3)
		assert.False(t, ok, "a=0 must not enable the a&b edge")
		assert.Equal(t, []int{0}, labelsOf(t, a, 4, 3))
		assert.Equal(t, []int{0}, labelsOf(t, a, 5, 3))
	})

	t.Run("id arithmetic", func(t *testing.T) {
		assert.Equal(t, 3, a.SourceEnv(5))
		assert.Equal(t, 1, a.StateOf(4))
		assert.Equal(t, 5, a.ControlVertex(1, 1))
	})
}

func TestBuild_ContradictoryGuardAddsNoEdge(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	g := twoStateGraph(automaton.Edge{Source: 0, Dest: 1, Guard: "a&!a"})

	a, err := Build(ctx, g, []string{"a"}, []string{"b"})

	require.NoError(t, err)
	assert.Empty(t, a.Vertices[1].Edges)
	assert.Empty(t, a.Vertices[2].Edges)
}

func TestBuild_UnknownLiteralIsUnconstrained(t *testing.T) {
	// --- Arrange ---
	var logs bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&logs, nil)))
	g := twoStateGraph(automaton.Edge{Source: 0, Dest: 1, Guard: "zz&b"})

	// --- Act ---
	a, err := Build(ctx, g, []string{"a"}, []string{"b"})

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{"zz"}, a.UnknownLiterals)
	assert.Equal(t, []int{1}, labelsOf(t, a, 1, 3))
	assert.Equal(t, []int{1}, labelsOf(t, a, 2, 3))
	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "literal=zz")
}

func TestBuild_MergesParallelEdges(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	g := twoStateGraph(
		automaton.Edge{Source: 0, Dest: 1, Guard: "b"},
		automaton.Edge{Source: 0, Dest: 1, Guard: "c"},
	)

	a, err := Build(ctx, g, []string{"a"}, []string{"b", "c"})

	require.NoError(t, err)
	require.Len(t, a.Vertices[1].Edges, 1)
	assert.Equal(t, []int{1, 2, 3}, labelsOf(t, a, 1, 3))
}

func TestBuild_Errors(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())

	t.Run("signal declared twice", func(t *testing.T) {
		_, err := Build(ctx, twoStateGraph(), []string{"a"}, []string{"a"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "declared twice")
	})

	t.Run("nil automaton", func(t *testing.T) {
		_, err := Build(ctx, nil, []string{"a"}, []string{"b"})
		require.Error(t, err)
	})

	t.Run("edge out of range", func(t *testing.T) {
		_, err := Build(ctx, twoStateGraph(automaton.Edge{Source: 0, Dest: 7, Guard: "-"}), nil, []string{"b"})
		require.Error(t, err)
	})
}
