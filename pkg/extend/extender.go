// Package extend implements the solution extender: after the main search
// returns a model over the working variable space, inprocessing may have
// permanently discarded clauses (resolution-eliminated variables, blocked
// clauses), and this package replays enough of a CDCL-like engine, with
// no conflict analysis or backtracking, to lift that model onto every
// original variable.
package extend

import (
	"github.com/pkg/errors"

	"github.com/go-air/satcore/pkg/z"
)

// ErrConflict is returned by Extend when propagation contradicts itself.
// By construction of resolution-eliminated variables and blocked clauses
// this should never happen; reaching it is an implementation bug in
// whatever fed clauses to the extender, not a property of the formula.
var ErrConflict = errors.New("solution extender hit an unexpected conflict")

// Brancher supplies the extender's branching policy, delegating the
// polarity choice to whatever final-polarity heuristic the surrounding
// solver keeps.
type Brancher interface {
	// Polarity reports the solver's stored preferred polarity for v.
	Polarity(v z.Var) bool
}

type defaultBrancher struct{}

func (defaultBrancher) Polarity(z.Var) bool { return true }

// Extender reconstructs a full assignment over the original variable
// space. It is single-phase and single-threaded: construct, feed it
// clauses, call Extend once.
type Extender struct {
	nVars    int
	assigns  []z.Truth // indexed by z.Var
	trail    []z.Lit
	qhead    int
	occur    [][]int32 // indexed by z.Lit -> indices into clauses
	clauses  []*Clause
	brancher Brancher
}

// NewExtender seeds the extender's trail from assigns, a 1-indexed vector
// of the solver's current assignment over nVars original variables. A nil
// brancher falls back to a fixed true-polarity default, which is always a
// valid choice since the extender never backtracks.
func NewExtender(nVars int, assigns []z.Truth, brancher Brancher) *Extender {
	if brancher == nil {
		brancher = defaultBrancher{}
	}
	ex := &Extender{
		nVars:    nVars,
		assigns:  make([]z.Truth, nVars+1),
		occur:    make([][]int32, 2*(nVars+1)),
		brancher: brancher,
	}
	copy(ex.assigns, assigns)
	for v := 1; v <= nVars; v++ {
		switch ex.assigns[v] {
		case z.True:
			ex.trail = append(ex.trail, z.Var(v).Pos())
		case z.False:
			ex.trail = append(ex.trail, z.Var(v).Neg())
		}
	}
	return ex
}

// Value returns the current truth of a literal.
func (ex *Extender) Value(m z.Lit) z.Truth {
	return ex.assigns[m.Var()].Xor(m.Sign())
}

// VarValue returns the current truth of a variable.
func (ex *Extender) VarValue(v z.Var) z.Truth {
	return ex.assigns[v]
}

// Enqueue forces m true immediately, without waiting for propagate to be
// called. Used to seed the trail with facts the caller already knows,
// such as a blocked clause's satisfying literal.
func (ex *Extender) Enqueue(m z.Lit) {
	ex.assign(m)
}

func (ex *Extender) assign(m z.Lit) {
	v := m.Var()
	want := z.True
	if !m.IsPos() {
		want = z.False
	}
	ex.assigns[v] = want
	ex.trail = append(ex.trail, m)
}

// register indexes a clause under both polarities of every variable it
// mentions, not just the literals as written. A plain disjunctive clause
// only needs rechecking when one of its literals is falsified, but an
// xor clause must be rechecked when either side is assigned true or
// false, so propagate's single occur[m.Not()] lookup on a newly-assigned
// literal m only finds it if the clause is indexed under both signs.
func (ex *Extender) register(idx int, lits []z.Lit) {
	for _, m := range lits {
		ex.occur[m] = append(ex.occur[m], int32(idx))
		ex.occur[m.Not()] = append(ex.occur[m.Not()], int32(idx))
	}
}

// AddClause adds a regular clause, using an occurrence list for every
// literal rather than a two-watch scheme: the extender runs once, over a
// bounded and usually small clause set, so the simpler representation is
// sufficient and easier to keep consistent with propagate. Returns false
// if the clause is already falsified under the current assignment.
func (ex *Extender) AddClause(lits []z.Lit) bool {
	cl := NewClause(lits)
	return ex.addClause(cl)
}

// AddBlockedClause adds a blocked clause. Its invariant is that flipping
// the (possibly still unassigned) blocking literal always satisfies the
// clause by construction; Extend's branching step special-cases this.
func (ex *Extender) AddBlockedClause(blocking z.Lit, rest []z.Lit) bool {
	cl := NewBlockedClause(blocking, rest)
	return ex.addClause(cl)
}

// AddXorClause adds a two-literal equivalence a XOR b == rhs.
func (ex *Extender) AddXorClause(a, b z.Lit, rhs bool) bool {
	cl := NewXorClause(a, b, rhs)
	return ex.addClause(cl)
}

func (ex *Extender) addClause(cl *Clause) bool {
	var unassigned z.Lit
	unassignedCount := 0
	if cl.IsXor {
		if ex.satisfiedXor(cl) {
			return true
		}
		for _, m := range cl.Lits {
			if ex.Value(m) == z.Undef {
				unassigned = m
				unassignedCount++
			}
		}
		if unassignedCount == 0 {
			return false
		}
	} else {
		falseCount := 0
		for _, m := range cl.Lits {
			switch ex.Value(m) {
			case z.True:
				return true
			case z.False:
				falseCount++
			default:
				unassigned = m
				unassignedCount++
			}
		}
		if unassignedCount == 0 {
			return false
		}
	}

	idx := len(ex.clauses)
	ex.clauses = append(ex.clauses, cl)
	ex.register(idx, cl.Lits)

	if unassignedCount == 1 {
		if cl.IsXor {
			// The remaining literal's polarity depends on the parity, not
			// on the literal as written.
			ex.propagateXor(cl)
		} else {
			ex.assign(unassigned)
		}
	}
	return true
}

func (ex *Extender) satisfiedNorm(cl *Clause) bool {
	for _, m := range cl.Lits {
		if ex.Value(m) == z.True {
			return true
		}
	}
	return false
}

func (ex *Extender) satisfiedXor(cl *Clause) bool {
	parity := false
	for _, m := range cl.Lits {
		if ex.Value(m) == z.Undef {
			return false
		}
		if ex.Value(m) == z.False {
			parity = !parity
		}
	}
	return parity == cl.Rhs
}

// propagate drains the trail: for every newly assigned literal, every
// clause registered against its negation is rechecked for unit or
// conflict, exactly as the solver facade's own BCP loop does, just
// without watch-list optimizations this short-lived structure doesn't
// need.
func (ex *Extender) propagate() bool {
	for ex.qhead < len(ex.trail) {
		m := ex.trail[ex.qhead]
		ex.qhead++
		for _, idx := range ex.occur[m.Not()] {
			cl := ex.clauses[idx]
			if cl.IsXor {
				if ex.propagateXor(cl) {
					continue
				}
				return false
			}
			if !ex.propagateNorm(cl) {
				return false
			}
		}
	}
	return true
}

func (ex *Extender) propagateNorm(cl *Clause) bool {
	var unassigned z.Lit
	unassignedCount := 0
	for _, m := range cl.Lits {
		switch ex.Value(m) {
		case z.True:
			return true
		case z.Undef:
			unassigned = m
			unassignedCount++
		}
	}
	if unassignedCount == 0 {
		return false
	}
	if unassignedCount == 1 {
		ex.assign(unassigned)
	}
	return true
}

// propagateXor forces the single unassigned literal of a two-literal xor
// to the value that makes the parity hold, or confirms/falsifies the
// clause outright when both literals are already assigned.
func (ex *Extender) propagateXor(cl *Clause) bool {
	a, b := cl.Lits[0], cl.Lits[1]
	av, bv := ex.Value(a), ex.Value(b)
	if av != z.Undef && bv != z.Undef {
		return ex.satisfiedXor(cl)
	}
	if av == z.Undef && bv == z.Undef {
		return true
	}
	var unknown z.Lit
	var knownVal z.Truth
	if av != z.Undef {
		knownVal, unknown = av, b
	} else {
		knownVal, unknown = bv, a
	}
	knownFalse := knownVal == z.False
	forceFalse := knownFalse != cl.Rhs
	if forceFalse {
		ex.assign(unknown.Not())
	} else {
		ex.assign(unknown)
	}
	return true
}

// pickUnassigned returns the lowest-indexed unassigned variable, or 0 if
// every variable has a value.
func (ex *Extender) pickUnassigned() z.Var {
	for v := 1; v <= ex.nVars; v++ {
		if ex.assigns[v] == z.Undef {
			return z.Var(v)
		}
	}
	return z.VarNull
}

// blockedPolarity reports whether v should branch true to satisfy some
// blocked clause that would otherwise go unit on v's blocking literal,
// and whether such a clause was found at all.
func (ex *Extender) blockedPolarity(v z.Var) (want bool, found bool) {
	for _, lit := range [2]z.Lit{v.Pos(), v.Neg()} {
		for _, idx := range ex.occur[lit] {
			cl := ex.clauses[idx]
			if !cl.Blocked || cl.BlockingLit().Var() != v {
				continue
			}
			if ex.satisfiedNorm(cl) {
				continue
			}
			return cl.BlockingLit().IsPos(), true
		}
	}
	return false, false
}

// Extend runs the extender to completion: propagate, and whenever
// variables remain unassigned, branch on one according to the blocked-
// clause policy (falling back to the Brancher's stored polarity) and
// propagate again. There is no conflict analysis: a conflict here means
// the caller handed the extender clauses that were not actually safe to
// discard.
func (ex *Extender) Extend() error {
	if !ex.propagate() {
		return ErrConflict
	}
	for {
		v := ex.pickUnassigned()
		if v == z.VarNull {
			return nil
		}
		polarity, found := ex.blockedPolarity(v)
		if !found {
			polarity = ex.brancher.Polarity(v)
		}
		m := v.Pos()
		if !polarity {
			m = v.Neg()
		}
		ex.assign(m)
		if !ex.propagate() {
			return ErrConflict
		}
	}
}

// Assignment returns the completed assignment over the original variable
// space; valid once Extend has returned nil.
func (ex *Extender) Assignment() []z.Truth {
	out := make([]z.Truth, len(ex.assigns))
	copy(out, ex.assigns)
	return out
}
