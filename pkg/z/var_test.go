package z

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLitEncoding(t *testing.T) {
	v := Var(7)

	assert.Equal(t, Lit(14), v.Pos())
	assert.Equal(t, Lit(15), v.Neg())
	assert.Equal(t, v, v.Pos().Var())
	assert.Equal(t, v, v.Neg().Var())
	assert.True(t, v.Pos().IsPos())
	assert.False(t, v.Neg().IsPos())
}

func TestLitNegation(t *testing.T) {
	v := Var(3)

	assert.Equal(t, v.Neg(), v.Pos().Not())
	assert.Equal(t, v.Pos(), v.Neg().Not())
	assert.Equal(t, v.Pos(), v.Pos().Not().Not())
}

func TestTruthXor(t *testing.T) {
	assert.Equal(t, True, True.Xor(0))
	assert.Equal(t, False, True.Xor(1))
	assert.Equal(t, True, False.Xor(1))
	assert.Equal(t, Undef, Undef.Xor(0))
	assert.Equal(t, Undef, Undef.Xor(1))
}

func TestRemovalTagRemoved(t *testing.T) {
	assert.False(t, RemovalNone.Removed())
	assert.False(t, RemovalQueuedReplacer.Removed())
	assert.True(t, RemovalSet.Removed())
	assert.True(t, RemovalEliminated.Removed())
	assert.True(t, RemovalReplaced.Removed())
	assert.True(t, RemovalDecomposed.Removed())
}

func TestVarsRoundTrip(t *testing.T) {
	vs := NewVars(4)
	vs.Set(Var(3), Var(1))
	vs.Set(Var(1), Var(2))

	assert.Equal(t, Var(1).Pos(), vs.ToInner(Var(3).Pos()))
	assert.Equal(t, Var(1).Neg(), vs.ToInner(Var(3).Neg()))
	assert.Equal(t, Var(3).Neg(), vs.ToOuter(Var(1).Neg()))
	assert.Equal(t, Var(2).Pos(), vs.ToInner(Var(1).Pos()))
}

func TestVarsUnmappedIsNull(t *testing.T) {
	vs := NewVars(2)

	assert.Equal(t, LitNull, vs.ToInner(Var(2).Pos()))
	assert.Equal(t, LitNull, vs.ToInner(Var(40).Pos()))
}
