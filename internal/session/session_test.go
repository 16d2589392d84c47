package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, varnum int) *Session {
	t.Helper()
	s := New(Options{})
	require.NoError(t, s.Reset(varnum))
	return s
}

func TestSession_Reset(t *testing.T) {
	s := New(Options{})

	require.Error(t, s.Err(), "unused session reports misuse")
	require.Error(t, s.Reset(0))

	require.NoError(t, s.Reset(4))
	require.NoError(t, s.Reset(6))
	assert.Equal(t, 6, s.Varnum())
	assert.Equal(t, 2, s.Resets())
	assert.NoError(t, s.Err())
}

func TestSession_Quantifiers(t *testing.T) {
	// --- Arrange ---
	s := newSession(t, 3)
	x, y := s.Var(0), s.Var(1)
	xorXY := s.Or(s.And(x, s.Not(y)), s.And(s.Not(x), y))

	// --- Act & Assert ---
	t.Run("exist", func(t *testing.T) {
		assert.True(t, s.Equal(s.True(), s.Exist(xorXY, []int{1})))
	})
	t.Run("forall", func(t *testing.T) {
		assert.True(t, s.IsFalse(s.Forall(xorXY, []int{1})))
		assert.True(t, s.Equal(x, s.Forall(s.Or(x, s.And(y, s.Not(y))), []int{1})))
	})
	t.Run("and exist", func(t *testing.T) {
		got := s.AndExist([]int{1}, xorXY, y)
		assert.True(t, s.Equal(s.Not(x), got))
	})
	t.Run("implies", func(t *testing.T) {
		assert.True(t, s.Implies(s.And(x, y), x))
		assert.False(t, s.Implies(x, s.And(x, y)))
	})
	require.NoError(t, s.Err())
}

func TestSession_Replace(t *testing.T) {
	s := newSession(t, 4)
	r, err := s.Replacer([]int{0, 2}, []int{1, 3})
	require.NoError(t, err)

	got := s.Replace(s.And(s.Var(0), s.NVar(2)), r)

	assert.True(t, s.Equal(s.And(s.Var(1), s.NVar(3)), got))
}

func TestSession_EncodeAndAssignments(t *testing.T) {
	// --- Arrange ---
	s := newSession(t, 4)
	vars := []int{0, 1, 2}
	set := s.Or(s.Encode(vars, 5), s.Encode(vars, 4))

	// --- Act ---
	cubes, err := s.Assignments(set)

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, cubes, 1, "4 and 5 share the cube 10-")
	assert.Equal(t, "10-", cubes[0].Pattern(vars))
	assert.Equal(t, []int{4, 5}, cubes[0].Values(vars))
	assert.Equal(t, DontCare, cubes[0][3])
	assert.Equal(t, int64(4), s.Satcount(set).Int64(), "two codes times the free fourth variable")
}

func TestSession_AssignmentsOfFalse(t *testing.T) {
	s := newSession(t, 2)
	cubes, err := s.Assignments(s.False())
	require.NoError(t, err)
	assert.Empty(t, cubes)
}

func TestSession_EqualHandlesNil(t *testing.T) {
	s := newSession(t, 1)
	assert.True(t, s.Equal(nil, nil))
	assert.False(t, s.Equal(nil, s.True()))
}

func TestSession_CapacityExhausted(t *testing.T) {
	t.Run("growth past the capacity is fatal", func(t *testing.T) {
		// --- Arrange ---
		const half = 12
		s := New(Options{NodeTableSize: 64, CacheSize: 16, MaxNodeTableSize: 256})
		require.NoError(t, s.Reset(2*half))
		require.NoError(t, s.Err(), "variable nodes alone fit")

		// --- Act ---
		// Pairing x_i with y_i under the order x_0..x_n, y_0..y_n needs a
		// node per prefix of xs.
		eq := s.True()
		for i := 0; i < half; i++ {
			same := s.Or(s.And(s.Var(i), s.Var(half+i)), s.And(s.NVar(i), s.NVar(half+i)))
			eq = s.And(eq, same)
		}

		// --- Assert ---
		assert.Greater(t, s.Used(), 256)
		require.ErrorIs(t, s.Err(), ErrCapacityExhausted)
		assert.Contains(t, s.Err().Error(), "capacity 256")
	})

	t.Run("failure sticks until reset", func(t *testing.T) {
		// --- Arrange ---
		s := New(Options{MaxNodeTableSize: 8})
		require.NoError(t, s.Reset(6))

		// --- Act & Assert ---
		require.ErrorIs(t, s.Err(), ErrCapacityExhausted, "14 variable nodes exceed 8")
		require.ErrorIs(t, s.Err(), ErrCapacityExhausted)

		require.NoError(t, s.Reset(2))
		assert.NoError(t, s.Err(), "6 nodes fit in 8")
	})

	t.Run("default capacity is finite", func(t *testing.T) {
		s := New(Options{})
		assert.Equal(t, DefaultOptions.MaxNodeTableSize, s.Capacity())
		assert.Positive(t, s.Capacity())
	})
}
