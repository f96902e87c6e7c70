package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-air/satcore/pkg/z"
)

func TestEngineUnitPropagation(t *testing.T) {
	e := NewEngine(3)
	a := z.Var(1).Pos()
	b := z.Var(2).Pos()

	require.True(t, e.AddClauseInt([]z.Lit{a.Not(), b}))
	require.True(t, e.EnqueueThese([]z.Lit{a}))

	assert.Equal(t, z.True, e.Value(a))
	assert.Equal(t, z.True, e.Value(b))
	assert.True(t, e.Ok())
}

func TestEngineConflict(t *testing.T) {
	e := NewEngine(1)
	a := z.Var(1).Pos()

	require.True(t, e.EnqueueThese([]z.Lit{a}))
	ok := e.EnqueueThese([]z.Lit{a.Not()})

	assert.False(t, ok)
	assert.False(t, e.Ok())
}

func TestEngineXorEquivalence(t *testing.T) {
	e := NewEngine(2)
	a := z.Var(1).Pos()
	b := z.Var(2).Pos()

	require.True(t, e.AddXorClauseInt(a, b, true, true)) // a == not(b)
	require.True(t, e.EnqueueThese([]z.Lit{a}))

	assert.Equal(t, z.False, e.Value(b))
}

func TestEngineXorUnattachedIsInert(t *testing.T) {
	e := NewEngine(2)
	a := z.Var(1).Pos()
	b := z.Var(2).Pos()

	require.True(t, e.AddXorClauseInt(a, b, true, false))
	require.True(t, e.EnqueueThese([]z.Lit{a}))

	// Recorded only: nothing watches or propagates the equivalence.
	assert.Equal(t, z.Undef, e.Value(b))
	assert.Empty(t, e.Watches(a))
	assert.Empty(t, e.Watches(a.Not()))
}

func TestEngineWatchesClassifyBinary(t *testing.T) {
	e := NewEngine(3)
	a := z.Var(1).Pos()
	b := z.Var(2).Pos()
	c := z.Var(3).Pos()

	require.True(t, e.AddClauseInt([]z.Lit{a.Not(), b}))
	require.True(t, e.AddClauseInt([]z.Lit{a.Not(), b, c}))

	var sawBinary, sawLong bool
	for _, w := range e.Watches(a) {
		if w.IsBinary() {
			sawBinary = true
		} else {
			sawLong = true
		}
	}
	assert.True(t, sawBinary)
	assert.True(t, sawLong)
}

func TestReplacerIdempotentAndSignPreserving(t *testing.T) {
	e := NewEngine(2)
	v1 := z.Var(1)
	v2 := z.Var(2)
	e.SetReplaced(v1, v2.Pos())

	assert.Equal(t, v2.Pos(), e.LitReplacedWith(v1.Pos()))
	assert.Equal(t, v2.Neg(), e.LitReplacedWith(v1.Neg()))
	assert.Equal(t, v2.Pos(), e.LitReplacedWith(e.LitReplacedWith(v1.Pos())))
}
