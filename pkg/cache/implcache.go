package cache

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/go-air/satcore/pkg/solver"
	"github.com/go-air/satcore/pkg/z"
)

type equivPair struct {
	a, b z.Lit
	rhs  bool
}

// ImplCache owns one TransCache per literal across the working variable
// space, plus the delayed-clause buffers that let discovery (which walks
// the solver's own watchlists) stay decoupled from application (which
// mutates them).
type ImplCache struct {
	slots []TransCache

	delayedUnits []z.Lit
	delayedEquiv []equivPair

	// FindEquivalentLits gates whether AddDelayedClauses attaches the
	// equivalence buffer at all; when false, discovered equivalences
	// are dropped rather than inserted, mirroring a solver-wide
	// "equivalence finding disabled" configuration switch.
	FindEquivalentLits bool

	run    solver.RunStats
	global solver.RunStats

	log *logrus.Entry
}

// NewImplCache allocates a cache over the 2*(nVars+1) literal slots of a
// working variable space of size nVars.
func NewImplCache(nVars int) *ImplCache {
	return &ImplCache{
		slots:              make([]TransCache, 2*(nVars+1)),
		FindEquivalentLits: true,
		log:                logrus.WithField("component", "satcore/implcache"),
	}
}

// At returns the TransCache owned by literal m.
func (ic *ImplCache) At(m z.Lit) *TransCache {
	return &ic.slots[m]
}

// Stats returns the RunStats accumulated across every TryBoth call so
// far.
func (ic *ImplCache) Stats() solver.RunStats {
	return ic.global
}

// LastRun returns the RunStats of the most recent TryBoth call alone.
func (ic *ImplCache) LastRun() solver.RunStats {
	return ic.run
}

// MemUsed estimates the cache's footprint in LitExtra-equivalent units,
// a rough count rather than a walk of a real allocator.
func (ic *ImplCache) MemUsed() int {
	total := 0
	for i := range ic.slots {
		total += ic.slots[i].Len()
	}
	return total
}

// PrintStatsSort logs the occupied slots sorted by descending size, for
// operator visibility into which literals carry the heaviest caches.
func (ic *ImplCache) PrintStatsSort(p solver.Propagator) {
	type row struct {
		lit z.Lit
		n   int
	}
	rows := make([]row, 0, len(ic.slots))
	for i := range ic.slots {
		if p.VarRemoved(z.Lit(i).Var()).Removed() {
			continue
		}
		if n := ic.slots[i].Len(); n > 0 {
			rows = append(rows, row{lit: z.Lit(i), n: n})
		}
	}
	for i := 1; i < len(rows); i++ {
		for j := i; j > 0 && rows[j-1].n < rows[j].n; j-- {
			rows[j-1], rows[j] = rows[j], rows[j-1]
		}
	}
	for _, r := range rows {
		ic.log.WithFields(logrus.Fields{"lit": r.lit.String(), "size": r.n}).Debug("impl cache slot")
	}
}

// MakeAllRed clears the non-learnt-binary flag across every slot.
func (ic *ImplCache) MakeAllRed() {
	for i := range ic.slots {
		ic.slots[i].MakeAllRed()
	}
}

// UpdateVars relocates the slots of a renamed variable space and rewrites
// each surviving slot's contents. The permutation is applied in place by
// cycle-walking, with seen marking the already-placed slots; seen must be
// zero on entry and is zero again on return. The caller guarantees
// outerToInter/interToOuter form a consistent permutation.
func (ic *ImplCache) UpdateVars(seen []int8, outerToInter []z.Var, interToOuter []z.Var) {
	dst := func(j int) int {
		m := z.Lit(j)
		if int(m.Var()) >= len(outerToInter) {
			return j
		}
		inner := outerToInter[m.Var()]
		if inner == z.VarNull {
			return j
		}
		if m.IsPos() {
			return int(inner.Pos())
		}
		return int(inner.Neg())
	}
	for i := 2; i < len(ic.slots); i++ {
		if seen[i] != 0 {
			continue
		}
		j := i
		carried := ic.slots[i]
		for {
			seen[j] = 1
			d := dst(j)
			carried, ic.slots[d] = ic.slots[d], carried
			j = d
			if j == i {
				break
			}
		}
	}
	for i := 2; i < len(ic.slots); i++ {
		seen[i] = 0
	}
	if n := 2 * len(interToOuter); n < len(ic.slots) {
		ic.slots = ic.slots[:n]
	}
	for i := range ic.slots {
		ic.slots[i].UpdateVars(outerToInter)
	}
}

// Clean performs the cache's two-pass maintenance: fold replaced
// variables' caches into their representative's and free the slots of
// assigned or removed variables (Pass A), then
// rewrite every remaining slot through the replacer table, dropping
// assigned and removed variables and compacting duplicates in place
// (Pass B). Tautologies found while merging are enqueued once both
// passes are done. It must only be called at decision level 0.
func (ic *ImplCache) Clean(p solver.Propagator) bool {
	if !p.Ok() {
		return false
	}
	seen := p.Seen()
	nonLearnt := p.Seen2()
	var toEnqueue []z.Lit

	for v := z.Var(1); int(v) <= p.NVars(); v++ {
		if p.VarRemoved(v) == z.RemovalReplaced {
			for _, src := range [2]z.Lit{v.Pos(), v.Neg()} {
				if ic.slots[src].Len() == 0 {
					continue
				}
				rep := p.LitReplacedWith(src)
				if rep.Var() == v {
					continue
				}
				taut := ic.slots[rep].MergeExtra(ic.slots[src].Lits(), z.LitNull, false, rep.Var(), seen)
				if taut {
					toEnqueue = append(toEnqueue, rep)
				}
			}
		}
		if p.VarValue(v) != z.Undef || p.VarRemoved(v).Removed() {
			ic.slots[v.Pos()] = TransCache{}
			ic.slots[v.Neg()] = TransCache{}
		}
	}

	for m := z.Lit(2); int(m) < len(ic.slots); m++ {
		srcVar := m.Var()
		tc := &ic.slots[m]
		kept := tc.lits[:0]
		for _, e := range tc.lits {
			lit := e.Lit
			if p.VarValue(lit.Var()) != z.Undef {
				continue
			}
			switch p.VarRemoved(lit.Var()) {
			case z.RemovalReplaced, z.RemovalQueuedReplacer:
				lit = p.LitReplacedWith(lit)
				// Rewriting onto the slot's own variable would make the
				// entry tautological, so it is dropped instead.
				if lit.Var() == srcVar {
					continue
				}
			}
			if p.VarRemoved(lit.Var()) != z.RemovalNone {
				continue
			}
			if e.OnlyNonLearntBin {
				nonLearnt[lit] = 1
			}
			if seen[lit] != 0 {
				continue
			}
			seen[lit] = 1
			kept = append(kept, LitExtra{Lit: lit})
		}
		tc.lits = kept
		// Second walk: the non-learnt flag of a kept literal may have been
		// established by a later duplicate, so it is written back here,
		// while the scratch marks are cleared.
		for i := range tc.lits {
			lit := tc.lits[i].Lit
			tc.lits[i].OnlyNonLearntBin = nonLearnt[lit] != 0
			seen[lit] = 0
			nonLearnt[lit] = 0
		}
	}

	if len(toEnqueue) > 0 && !p.EnqueueThese(toEnqueue) {
		return false
	}
	return p.Ok()
}

// TryBoth scans every active variable for hyper-binary resolution
// opportunities: v -> L and not(v) -> L forces L; v -> L and
// not(v) -> not(L) makes v and L equivalent. Delayed clauses are drained
// after each variable, not just once at the end, so later variables in
// the same pass see the simplified state. Stats are per call: NumCalls
// is 1 on each return, ZeroDepthAssigns is the trail growth across the
// whole call, and the running totals are available via Stats.
func (ic *ImplCache) TryBoth(p solver.Propagator) bool {
	if !p.Ok() {
		return false
	}
	start := time.Now()
	origTrail := p.TrailLen()
	ic.run.Clear()
	ic.run.NumCalls = 1

	for v := z.Var(1); int(v) <= p.NVars(); v++ {
		if p.VarValue(v) != z.Undef || p.VarRemoved(v).Removed() {
			continue
		}
		ic.tryVar(p, v)
		if !ic.AddDelayedClauses(p) {
			break
		}
	}

	ic.run.ZeroDepthAssigns = uint64(p.TrailLen() - origTrail)
	ic.run.CPUTime = time.Since(start)
	ic.global.Merge(ic.run)
	return p.Ok()
}

// tryVar joins the implications of v against those of not(v). Both the
// cache slots and the binary watches contribute to each side: seen marks
// the variables side one reaches and val records the sign they are
// reached with, then side two is checked against those marks. Both
// scratch vectors are cleared before returning.
func (ic *ImplCache) tryVar(p solver.Propagator, v z.Var) {
	seen := p.Seen()
	val := p.Seen2()

	lit := v.Pos()
	cache1 := ic.slots[lit].Lits()
	ws1 := p.Watches(lit)
	cache2 := ic.slots[lit.Not()].Lits()
	ws2 := p.Watches(lit.Not())

	for _, e := range cache1 {
		v2 := e.Lit.Var()
		if p.VarRemoved(v2).Removed() {
			continue
		}
		seen[v2] = 1
		val[v2] = int8(e.Lit.Sign())
	}
	for _, w := range ws1 {
		if !w.IsBinary() {
			continue
		}
		other := w.Other()
		v2 := other.Var()
		if seen[v2] == 0 {
			seen[v2] = 1
			val[v2] = int8(other.Sign())
		} else if val[v2] != int8(other.Sign()) {
			// v implies the other variable under both signs, so v itself
			// cannot hold.
			ic.delayedUnits = append(ic.delayedUnits, lit.Not())
		}
	}

	for _, e := range cache2 {
		v2 := e.Lit.Var()
		if seen[v2] == 0 {
			continue
		}
		if p.VarRemoved(v2).Removed() {
			continue
		}
		ic.handleNewData(val, v, e.Lit)
	}
	for _, w := range ws2 {
		if !w.IsBinary() {
			continue
		}
		if seen[w.Other().Var()] == 0 {
			continue
		}
		ic.handleNewData(val, v, w.Other())
	}

	for _, e := range cache1 {
		seen[e.Lit.Var()] = 0
		val[e.Lit.Var()] = 0
	}
	for _, w := range ws1 {
		if !w.IsBinary() {
			continue
		}
		seen[w.Other().Var()] = 0
		val[w.Other().Var()] = 0
	}
}

// handleNewData records what the join of both sides of v proved about
// lit, an implication of not(v) whose variable side one also reached.
// The new clauses cannot be attached here: the caller is iterating the
// solver's watchlists, so they go to the delayed buffers instead.
func (ic *ImplCache) handleNewData(val []int8, v z.Var, lit z.Lit) {
	if val[lit.Var()] == int8(lit.Sign()) {
		// v -> lit and not(v) -> lit, so lit holds outright.
		ic.delayedUnits = append(ic.delayedUnits, lit)
		ic.run.BProp++
	} else {
		// v -> not(lit) and not(v) -> lit, so v is equivalent to the
		// side-one literal; parity 1 iff that literal was negative.
		rhs := val[lit.Var()] == 1
		ic.delayedEquiv = append(ic.delayedEquiv, equivPair{a: v.Pos(), b: lit.Var().Pos(), rhs: rhs})
		ic.run.BXProp++
	}
}

// AddDelayedClauses drains the equivalence buffer, then the unit buffer,
// in FIFO order within each, skipping any clause whose variables have
// since been removed (queued-for-replacement variables are still live
// for this purpose). It stops at the first insertion that falsifies the
// formula; both buffers are left empty either way.
func (ic *ImplCache) AddDelayedClauses(p solver.Propagator) bool {
	if ic.FindEquivalentLits {
		for _, eq := range ic.delayedEquiv {
			if p.VarRemoved(eq.a.Var()).Removed() || p.VarRemoved(eq.b.Var()).Removed() {
				continue
			}
			if !p.AddXorClauseInt(eq.a, eq.b, eq.rhs, true) {
				ic.delayedEquiv = ic.delayedEquiv[:0]
				ic.delayedUnits = ic.delayedUnits[:0]
				return false
			}
		}
	}
	ic.delayedEquiv = ic.delayedEquiv[:0]

	for _, m := range ic.delayedUnits {
		if p.VarRemoved(m.Var()).Removed() {
			continue
		}
		if !p.AddClauseInt([]z.Lit{m}) {
			ic.delayedUnits = ic.delayedUnits[:0]
			return false
		}
	}
	ic.delayedUnits = ic.delayedUnits[:0]
	return p.Ok()
}
