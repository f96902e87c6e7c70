package cache

import "github.com/go-air/satcore/pkg/z"

// TransCache holds the set of literals transitively implied by a single
// source literal via binary resolution, each tagged with whether some
// path found so far uses only irredundant binary clauses.
//
// Invariants: never contains the source literal or its negation; may
// transiently hold both L and not(L) during a merge, which merge reports
// back as a tautology rather than silently keeping both.
type TransCache struct {
	lits []LitExtra
}

// Lits exposes the current contents. Callers must not retain the slice
// across a call that mutates the cache.
func (tc *TransCache) Lits() []LitExtra {
	return tc.lits
}

// Len reports how many literals are cached.
func (tc *TransCache) Len() int {
	return len(tc.lits)
}

type candidate struct {
	lit     z.Lit
	onlyNLB bool
}

// mergeCandidates implements the shared core of both Merge overloads:
// mark, dedup-against-existing (upgrading the flag where warranted and
// catching tautologies against what's already cached), then append
// whatever candidates are still marked (catching tautologies among the
// candidates themselves), and finally clear every mark it set.
func (tc *TransCache) mergeCandidates(cands []candidate, learnt bool, leaveOut z.Var, seen []int8) bool {
	for _, c := range cands {
		v := int8(1)
		if c.onlyNLB {
			v = 2
		}
		seen[c.lit] = v
	}

	taut := false
	kept := tc.lits[:0]
	for _, e := range tc.lits {
		mark := seen[e.Lit]
		if mark != 0 {
			if mark == 2 && !learnt && !e.OnlyNonLearntBin {
				e.OnlyNonLearntBin = true
			}
			seen[e.Lit] = 0
		}
		if seen[e.Lit.Not()] != 0 {
			taut = true
		}
		kept = append(kept, e)
	}
	tc.lits = kept

	for _, c := range cands {
		mark := seen[c.lit]
		if mark == 0 {
			continue
		}
		if seen[c.lit.Not()] != 0 {
			taut = true
		}
		if c.lit.Var() != leaveOut {
			tc.lits = append(tc.lits, LitExtra{Lit: c.lit, OnlyNonLearntBin: !learnt && mark == 2})
		}
		seen[c.lit] = 0
	}
	return taut
}

// MergeExtra folds a set of LitExtras, and optionally one bare literal
// extraLit (z.LitNull means none), into the cache. Returns true iff a
// tautology was detected, in which case the caller should treat the
// source literal as forced.
func (tc *TransCache) MergeExtra(otherLits []LitExtra, extraLit z.Lit, learnt bool, leaveOut z.Var, seen []int8) bool {
	cands := make([]candidate, 0, len(otherLits)+1)
	for _, le := range otherLits {
		cands = append(cands, candidate{lit: le.Lit, onlyNLB: le.OnlyNonLearntBin})
	}
	if extraLit != z.LitNull {
		cands = append(cands, candidate{lit: extraLit, onlyNLB: !learnt})
	}
	return tc.mergeCandidates(cands, learnt, leaveOut, seen)
}

// Merge folds a set of plain literals, plus an optional extraLit
// (z.LitNull means none), into the cache. The plain literals carry no
// per-item provenance, so they are recorded as learnt regardless of the
// step's own learnt flag; only extraLit benefits from a non-learnt step.
func (tc *TransCache) Merge(otherLits []z.Lit, extraLit z.Lit, learnt bool, leaveOut z.Var, seen []int8) bool {
	cands := make([]candidate, 0, len(otherLits)+1)
	for _, m := range otherLits {
		cands = append(cands, candidate{lit: m, onlyNLB: false})
	}
	if extraLit != z.LitNull {
		cands = append(cands, candidate{lit: extraLit, onlyNLB: !learnt})
	}
	return tc.mergeCandidates(cands, learnt, leaveOut, seen)
}

// MakeAllRed clears the non-learnt-binary flag on every entry. Called
// when the trust basis for an irredundant derivation has been
// invalidated, e.g. a clause it depended on was removed.
func (tc *TransCache) MakeAllRed() {
	for i := range tc.lits {
		tc.lits[i].OnlyNonLearntBin = false
	}
}

// UpdateVars rewrites every contained literal through a variable
// renaming, dropping nothing: the caller is responsible for having
// already excluded removed variables before renaming.
func (tc *TransCache) UpdateVars(outerToInter []z.Var) {
	for i, e := range tc.lits {
		v := e.Lit.Var()
		if int(v) >= len(outerToInter) {
			continue
		}
		inner := outerToInter[v]
		if e.Lit.IsPos() {
			tc.lits[i].Lit = inner.Pos()
		} else {
			tc.lits[i].Lit = inner.Neg()
		}
	}
}
