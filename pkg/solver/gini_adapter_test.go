package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-air/satcore/pkg/z"
)

func TestGiniOracleSolveAndModel(t *testing.T) {
	a := z.Var(1)
	b := z.Var(2)

	o := NewGiniOracle(2)
	o.AddClause(a.Pos())
	o.AddClause(a.Neg(), b.Neg())

	require.True(t, o.Solve())

	vals := make([]int8, 2*3)
	o.Model(2, vals)
	assert.EqualValues(t, 1, vals[a.Pos()])
	assert.EqualValues(t, -1, vals[a.Neg()])
	assert.EqualValues(t, 1, vals[b.Neg()])
}

func TestGiniOracleUnsat(t *testing.T) {
	a := z.Var(1)

	o := NewGiniOracle(1)
	o.AddClause(a.Pos())
	o.AddClause(a.Neg())

	assert.False(t, o.Solve())
}

func TestGiniOracleModelSkipsUnseenVars(t *testing.T) {
	a := z.Var(1)

	o := NewGiniOracle(3)
	o.AddClause(a.Pos())
	require.True(t, o.Solve())

	vals := make([]int8, 2*4)
	o.Model(3, vals)
	assert.EqualValues(t, 1, vals[a.Pos()])
	assert.EqualValues(t, 0, vals[z.Var(3).Pos()])
	assert.EqualValues(t, 0, vals[z.Var(3).Neg()])
}
