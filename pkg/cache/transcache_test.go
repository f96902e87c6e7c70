package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-air/satcore/pkg/z"
)

func newSeen() []int8 {
	return make([]int8, 64)
}

func TestTransCacheMergeTautology(t *testing.T) {
	var tc TransCache
	seen := newSeen()
	a := z.Var(10)
	b := z.Var(2).Pos()
	c := z.Var(3).Pos()

	taut := tc.MergeExtra([]LitExtra{{Lit: b}, {Lit: c}}, z.LitNull, false, a, seen)
	assert.False(t, taut)
	assert.ElementsMatch(t, []z.Lit{b, c}, litsOf(tc.Lits()))

	taut = tc.Merge([]z.Lit{b.Not()}, z.LitNull, false, a, seen)
	assert.True(t, taut)

	for _, s := range seen {
		assert.EqualValues(t, 0, s)
	}
}

func TestTransCacheMergeIdempotent(t *testing.T) {
	var tc TransCache
	seen := newSeen()
	a := z.Var(10)
	b := z.Var(2).Pos()
	c := z.Var(3).Pos()

	tc.MergeExtra([]LitExtra{{Lit: b}, {Lit: c}}, z.LitNull, false, a, seen)
	first := append([]LitExtra(nil), tc.Lits()...)

	tc.MergeExtra([]LitExtra{{Lit: b}, {Lit: c}}, z.LitNull, false, a, seen)
	second := tc.Lits()

	assert.ElementsMatch(t, litsOf(first), litsOf(second))
	for _, s := range seen {
		assert.EqualValues(t, 0, s)
	}
}

func TestTransCacheNoSelfReference(t *testing.T) {
	var tc TransCache
	seen := newSeen()
	a := z.Var(1)

	tc.MergeExtra([]LitExtra{{Lit: a.Pos()}, {Lit: a.Neg()}, {Lit: z.Var(2).Pos()}}, z.LitNull, false, a, seen)

	for _, le := range tc.Lits() {
		assert.NotEqual(t, a, le.Lit.Var())
	}
}

func TestTransCacheFlagUpgrade(t *testing.T) {
	var tc TransCache
	seen := newSeen()
	leaveOut := z.Var(99)
	b := z.Var(2).Pos()

	tc.MergeExtra([]LitExtra{{Lit: b, OnlyNonLearntBin: false}}, z.LitNull, false, leaveOut, seen)
	tc.MergeExtra([]LitExtra{{Lit: b, OnlyNonLearntBin: true}}, z.LitNull, false, leaveOut, seen)

	assert.Len(t, tc.Lits(), 1)
	assert.True(t, tc.Lits()[0].OnlyNonLearntBin)
}

func litsOf(xs []LitExtra) []z.Lit {
	out := make([]z.Lit, len(xs))
	for i, x := range xs {
		out[i] = x.Lit
	}
	return out
}
