package sat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-air/satcore/pkg/solver"
	"github.com/go-air/satcore/pkg/z"
)

// TestSolveLiftsBlockedClause runs the whole pipeline: gini finds a model
// over the surviving variables, and the extender decides the variable a
// blocked clause eliminated, keeping that clause satisfied.
func TestSolveLiftsBlockedClause(t *testing.T) {
	u := z.Var(1)
	w := z.Var(2)
	v := z.Var(3)

	s := New(3)
	require.True(t, s.AddClause(u.Pos(), w.Pos()))
	require.True(t, s.AddClause(u.Pos(), w.Neg()))
	s.AddBlockedClause(v.Pos(), []z.Lit{u.Neg()})

	model, err := s.Solve()
	require.NoError(t, err)

	for vi := 1; vi <= 3; vi++ {
		assert.NotEqual(t, z.Undef, model[vi], "var %d unassigned", vi)
	}
	// (u v w) and (u v not(w)) force u, and the blocked clause
	// (v v not(u)) then forces v.
	assert.Equal(t, z.True, model[u])
	assert.Equal(t, z.True, model[v])
}

// TestSolveUnsatisfiable checks the global-halt path: contradictory units
// surface as Unsatisfiable from Solve, with no extension attempted.
func TestSolveUnsatisfiable(t *testing.T) {
	a := z.Var(1)

	s := New(1)
	require.True(t, s.AddClause(a.Pos()))
	require.False(t, s.AddClause(a.Neg()))

	_, err := s.Solve()
	assert.ErrorIs(t, err, solver.Unsatisfiable)
}

// TestSimplifyForwardsUnits checks that a unit found by hyper-binary
// resolution lands both in the engine's assignment and, via the trail
// forwarding, in the oracle's clause set.
func TestSimplifyForwardsUnits(t *testing.T) {
	a := z.Var(1)
	b := z.Var(2)

	s := New(2)
	require.True(t, s.AddClause(a.Neg(), b.Pos()))
	require.True(t, s.AddClause(a.Pos(), b.Pos()))

	require.NoError(t, s.Simplify())
	assert.Equal(t, z.True, s.Engine().Value(b.Pos()))
	assert.EqualValues(t, 1, s.Cache().LastRun().BProp)

	model, err := s.Solve()
	require.NoError(t, err)
	assert.Equal(t, z.True, model[b])
}
