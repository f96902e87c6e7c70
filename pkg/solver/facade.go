package solver

import (
	"github.com/sirupsen/logrus"

	"github.com/go-air/satcore/pkg/z"
)

// Replacer maps a literal to the representative of its equivalence class.
// Implementations must be idempotent and sign-preserving:
// LitReplacedWith(LitReplacedWith(m)) == LitReplacedWith(m), and negating
// the input negates the output.
type Replacer interface {
	LitReplacedWith(m z.Lit) z.Lit
}

// Propagator is the contract the implication cache consumes from the
// surrounding solver; the solution extender does not use it.
// The watched-literal BCP loop behind it is treated as an external
// collaborator: this package's Engine is a deliberately simple reference
// implementation of that contract, not a competitive SAT engine.
type Propagator interface {
	Replacer

	// Value returns the three-valued truth of a literal or variable.
	Value(m z.Lit) z.Truth
	VarValue(v z.Var) z.Truth

	// VarRemoved returns the removal tag recorded for v.
	VarRemoved(v z.Var) z.RemovalTag

	// Watches returns the watch list consulted when m becomes true:
	// entries for clauses containing not(m), so a binary entry's Other()
	// is a literal directly implied by m. Only entries with IsBinary()
	// true participate in tryBoth.
	Watches(m z.Lit) []Watch

	// EnqueueThese enqueues lits as level-0 units, propagating
	// immediately. It reports the post-propagation ok flag.
	EnqueueThese(lits []z.Lit) bool

	// AddClauseInt attaches a new clause, propagating immediately.
	// It reports the post-insertion ok flag.
	AddClauseInt(lits []z.Lit) bool

	// AddXorClauseInt attaches a two-literal equivalence
	// a XOR b == rhs. When attach is false the clause is stored in the
	// clause database without being attached or propagated (used when
	// the solver already knows the equivalence holds and only needs it
	// on record).
	AddXorClauseInt(a, b z.Lit, rhs bool, attach bool) bool

	// Seen and Seen2 return the two reusable per-literal scratch
	// vectors. Callers must leave them zeroed on return, whether they
	// succeed or fail.
	Seen() []int8
	Seen2() []int8

	// Ok reports whether the formula is still believed satisfiable.
	Ok() bool

	// NVars returns the number of variables in the working space.
	NVars() int

	// TrailLen returns how many literals are on the level-0 trail. The
	// cache measures its zero-depth assignments as the trail growth
	// across a tryBoth call.
	TrailLen() int
}

// VarData holds the per-variable bookkeeping the facade exposes.
type VarData struct {
	Removed z.RemovalTag
}

// Engine is a small, explicit reference Propagator: a level-0-only (no
// decisions) unit-propagation engine with occurrence-list BCP, built
// only so ImplCache has a real collaborator to run against. It is intentionally not the watched-
// literal search loop of a competitive solver; production use is
// expected to sit behind this same interface backed by a real solver
// (see GiniOracle for how github.com/go-air/gini is wired in as the
// actual search engine for whole-formula solving).
type Engine struct {
	nVars   int
	vals    []int8 // indexed by z.Lit, 1/0/-1
	varData []VarData
	replace []z.Lit // indexed by z.Var, the variable's own Pos() if not replaced

	watches [][]Watch     // indexed by z.Lit, binary-classified entries
	occurs  [][]clauseRef // indexed by z.Lit, every clause mentioning lit
	clauses [][]z.Lit     // clauseRef - 1 indexes into this

	trail []z.Lit
	head  int

	seen  []int8
	seen2 []int8

	ok  bool
	log *logrus.Entry

	stats RunStats
}

// NewEngine allocates an Engine over variables 1..nVars.
func NewEngine(nVars int) *Engine {
	n := nVars + 1
	e := &Engine{
		nVars:   nVars,
		vals:    make([]int8, 2*n),
		varData: make([]VarData, n),
		replace: make([]z.Lit, n),
		watches: make([][]Watch, 2*n),
		occurs:  make([][]clauseRef, 2*n),
		seen:    make([]int8, 2*n),
		seen2:   make([]int8, 2*n),
		ok:      true,
		log:     logrus.WithField("component", "satcore/engine"),
	}
	for v := 1; v < n; v++ {
		e.replace[v] = z.Var(v).Pos()
	}
	return e
}

func (e *Engine) Value(m z.Lit) z.Truth {
	switch e.vals[m] {
	case 1:
		return z.True
	case -1:
		return z.False
	default:
		return z.Undef
	}
}

func (e *Engine) VarValue(v z.Var) z.Truth {
	return e.Value(v.Pos())
}

func (e *Engine) VarRemoved(v z.Var) z.RemovalTag {
	return e.varData[v].Removed
}

func (e *Engine) LitReplacedWith(m z.Lit) z.Lit {
	rep := e.replace[m.Var()]
	if m.IsPos() {
		return rep
	}
	return rep.Not()
}

// SetReplaced records that v has been replaced by the representative lit
// (idempotent, sign-preserving per the Replacer contract) and tags v
// removed.
func (e *Engine) SetReplaced(v z.Var, lit z.Lit) {
	e.replace[v] = lit
	e.varData[v].Removed = z.RemovalReplaced
}

func (e *Engine) SetRemoved(v z.Var, tag z.RemovalTag) {
	e.varData[v].Removed = tag
}

func (e *Engine) Watches(m z.Lit) []Watch {
	return e.watches[m]
}

func (e *Engine) Seen() []int8 { return e.seen }
func (e *Engine) Seen2() []int8 { return e.seen2 }
func (e *Engine) Ok() bool { return e.ok }
func (e *Engine) NVars() int { return e.nVars }
func (e *Engine) TrailLen() int { return len(e.trail) }

// Trail returns a copy of the level-0 trail in assignment order.
func (e *Engine) Trail() []z.Lit {
	out := make([]z.Lit, len(e.trail))
	copy(out, e.trail)
	return out
}

func (e *Engine) Stats() RunStats { return e.stats }

func (e *Engine) assign(m z.Lit) {
	e.vals[m] = 1
	e.vals[m.Not()] = -1
	e.trail = append(e.trail, m)
	e.stats.ZeroDepthAssigns++
}

// EnqueueThese enqueues every literal as a level-0 unit. A literal already
// false triggers an immediate unsat.
func (e *Engine) EnqueueThese(lits []z.Lit) bool {
	if !e.ok {
		return false
	}
	for _, m := range lits {
		switch e.Value(m) {
		case z.True:
			continue
		case z.False:
			e.ok = false
			e.log.WithField("lit", m.String()).Debug("enqueue contradicted an existing assignment")
			return false
		default:
			e.assign(m)
		}
	}
	return e.propagate()
}

func (e *Engine) addStored(lits []z.Lit) clauseRef {
	e.clauses = append(e.clauses, lits)
	return clauseRef(len(e.clauses))
}

// attachOccur registers a clause under occurrence lists for propagation
// and under watch lists for tryBoth. Watches hang off the negation of
// each contained literal, so that Watches(m) yields exactly the clauses
// that constrain the world once m holds; for a binary clause that makes
// the watch's Other() a literal implied by m.
func (e *Engine) attachOccur(ref clauseRef, lits []z.Lit) {
	for _, m := range lits {
		e.occurs[m] = append(e.occurs[m], ref)
	}
	if len(lits) == 2 {
		a, b := lits[0], lits[1]
		e.watches[a.Not()] = append(e.watches[a.Not()], MakeWatch(ref, b, true))
		e.watches[b.Not()] = append(e.watches[b.Not()], MakeWatch(ref, a, true))
	} else if len(lits) > 2 {
		for _, m := range lits {
			e.watches[m.Not()] = append(e.watches[m.Not()], MakeWatch(ref, blockingLit(lits, m), false))
		}
	}
}

// blockingLit picks any other literal of the clause to store as the
// watch's blocking hint; this engine only relies on IsBinary for
// classification, so any stable choice is fine for longer clauses.
func blockingLit(lits []z.Lit, self z.Lit) z.Lit {
	for _, m := range lits {
		if m != self {
			return m
		}
	}
	return self
}

// AddClauseInt attaches a new ordinary clause and propagates.
func (e *Engine) AddClauseInt(lits []z.Lit) bool {
	if !e.ok {
		return false
	}
	if len(lits) == 0 {
		e.ok = false
		return false
	}
	if len(lits) == 1 {
		return e.EnqueueThese(lits)
	}
	ref := e.addStored(lits)
	e.attachOccur(ref, lits)
	return e.propagateClause(ref)
}

// AddXorClauseInt attaches the two-literal equivalence a XOR b == rhs:
// parity 0 means a == b, parity 1 means a == not(b). When attach is
// false the two derived binary clauses are only stored in the clause
// database, neither attached nor propagated.
func (e *Engine) AddXorClauseInt(a, b z.Lit, rhs bool, attach bool) bool {
	if !e.ok {
		return false
	}
	// a xor b == rhs  <=>  a == c, where c is b (rhs == false) or not(b)
	// (rhs == true). Equivalence is the conjunction of both directions,
	// so it takes two binary clauses, not one.
	c := b
	if rhs {
		c = b.Not()
	}
	lits1 := []z.Lit{a.Not(), c}
	ref1 := e.addStored(lits1)
	lits2 := []z.Lit{a, c.Not()}
	ref2 := e.addStored(lits2)
	if !attach {
		return e.ok
	}
	e.attachOccur(ref1, lits1)
	if !e.propagateClause(ref1) {
		return false
	}
	e.attachOccur(ref2, lits2)
	return e.propagateClause(ref2)
}

func (e *Engine) propagateClause(ref clauseRef) bool {
	if !e.ok {
		return false
	}
	cl := e.clauses[ref-1]
	var unassigned z.Lit
	unassignedCount := 0
	falseCount := 0
	for _, m := range cl {
		switch e.Value(m) {
		case z.True:
			return e.ok
		case z.False:
			falseCount++
		default:
			unassigned = m
			unassignedCount++
		}
	}
	if unassignedCount == 0 {
		e.ok = false
		return false
	}
	if unassignedCount == 1 {
		e.assign(unassigned)
	}
	return e.propagate()
}

// propagate drains the trail, walking occurrence lists the way
// github.com/go-air/gini/internal/xo.Trail.Prop walks watch lists: for
// every newly-true literal, every clause mentioning its negation is
// re-checked for unit or conflict.
func (e *Engine) propagate() bool {
	if !e.ok {
		return false
	}
	for e.head < len(e.trail) {
		m := e.trail[e.head]
		e.head++
		for _, ref := range e.occurs[m.Not()] {
			cl := e.clauses[ref-1]
			var unassigned z.Lit
			unassignedCount := 0
			satisfied := false
			for _, lit := range cl {
				switch e.Value(lit) {
				case z.True:
					satisfied = true
				case z.Undef:
					unassigned = lit
					unassignedCount++
				}
			}
			if satisfied {
				continue
			}
			if unassignedCount == 0 {
				e.ok = false
				return false
			}
			if unassignedCount == 1 {
				e.assign(unassigned)
			}
		}
	}
	return true
}
