// Package sat glues the pieces into the steady-state control flow: a
// gini search over the working variable space, the implication cache
// simplifying the formula between restarts, and the solution extender
// lifting the search's model back over every variable inprocessing
// removed.
package sat

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/go-air/satcore/pkg/cache"
	"github.com/go-air/satcore/pkg/extend"
	"github.com/go-air/satcore/pkg/solver"
	"github.com/go-air/satcore/pkg/z"
)

// Solver owns one instance of each collaborator. Clauses are mirrored
// into both the reference Engine (which the cache runs against) and the
// gini oracle (which performs the actual search); blocked clauses are
// withheld from both and replayed at extension time.
type Solver struct {
	nVars  int
	eng    *solver.Engine
	impl   *cache.ImplCache
	oracle *solver.GiniOracle

	blocked []blockedClause

	log *logrus.Entry
}

type blockedClause struct {
	blocking z.Lit
	rest     []z.Lit
}

// New allocates a Solver over variables 1..nVars.
func New(nVars int) *Solver {
	return &Solver{
		nVars:  nVars,
		eng:    solver.NewEngine(nVars),
		impl:   cache.NewImplCache(nVars),
		oracle: solver.NewGiniOracle(nVars),
		log:    logrus.WithField("component", "satcore/sat"),
	}
}

// Engine returns the level-0 propagation engine the cache runs against.
func (s *Solver) Engine() *solver.Engine { return s.eng }

// Cache returns the implication cache.
func (s *Solver) Cache() *cache.ImplCache { return s.impl }

// AddClause adds a clause to both the engine and the search oracle.
func (s *Solver) AddClause(lits ...z.Lit) bool {
	s.oracle.AddClause(lits...)
	return s.eng.AddClauseInt(lits)
}

// AddBlockedClause removes a blocked clause from the search: the clause
// is dropped from both the engine and the oracle, its blocking literal's
// variable is tagged eliminated, and the clause is kept aside so Solve
// can replay it through the extender.
func (s *Solver) AddBlockedClause(blocking z.Lit, rest []z.Lit) {
	cp := make([]z.Lit, len(rest))
	copy(cp, rest)
	s.blocked = append(s.blocked, blockedClause{blocking: blocking, rest: cp})
	s.eng.SetRemoved(blocking.Var(), z.RemovalEliminated)
}

// Simplify runs one inprocessing round: clean the cache against the
// current removal state, then hyper-binary resolve over it, and forward
// any level-0 facts the engine learned to the oracle. Returns
// Unsatisfiable if either step falsified the formula.
func (s *Solver) Simplify() error {
	if !s.impl.Clean(s.eng) {
		return solver.Unsatisfiable
	}
	if !s.impl.TryBoth(s.eng) {
		return solver.Unsatisfiable
	}
	for _, m := range s.eng.Trail() {
		s.oracle.AddClause(m)
	}
	run := s.impl.LastRun()
	s.log.WithFields(logrus.Fields{
		"bProp":            run.BProp,
		"bXProp":           run.BXProp,
		"zeroDepthAssigns": run.ZeroDepthAssigns,
	}).Debug("inprocessing round done")
	return nil
}

// Solve searches for a model over the working variable space and lifts
// it onto the full variable set. Variables the search never saw (because
// inprocessing removed them) are left undef for the extender to decide;
// a conflict inside the extender is an invariant violation, not a
// property of the formula.
func (s *Solver) Solve() ([]z.Truth, error) {
	if !s.eng.Ok() {
		return nil, solver.Unsatisfiable
	}
	if !s.oracle.Solve() {
		return nil, solver.Unsatisfiable
	}

	vals := make([]int8, 2*(s.nVars+1))
	s.oracle.Model(s.nVars, vals)

	assigns := make([]z.Truth, s.nVars+1)
	for v := 1; v <= s.nVars; v++ {
		if s.eng.VarRemoved(z.Var(v)) != z.RemovalNone {
			continue
		}
		switch vals[z.Var(v).Pos()] {
		case 1:
			assigns[v] = z.True
		case -1:
			assigns[v] = z.False
		}
	}

	ex := extend.NewExtender(s.nVars, assigns, nil)
	for _, bc := range s.blocked {
		if !ex.AddBlockedClause(bc.blocking, bc.rest) {
			return nil, solver.InvariantViolation("blocked clause falsified before extension")
		}
	}
	if err := ex.Extend(); err != nil {
		return nil, errors.Wrap(err, "extending model over removed variables")
	}
	return ex.Assignment(), nil
}
