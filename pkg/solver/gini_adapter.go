package solver

import (
	"github.com/go-air/gini"
	giniz "github.com/go-air/gini/z"

	"github.com/go-air/satcore/pkg/z"
)

// GiniOracle wraps a real github.com/go-air/gini solver as the whole-
// formula search engine that sits upstream of the cache and extender in a
// production pipeline: gini finds a candidate model over the working
// variable space, pkg/cache's ImplCache simplifies between search
// restarts, and the SolutionExtender lifts gini's model back over
// variables that inprocessing removed. gini's own internals (its watch
// lists, its trail, its variable-elimination bookkeeping) are private to
// its module, which is why the BCP loop is treated as an external
// collaborator here: nothing outside gini's package can reach
// into it, so the Engine reference Propagator plays that role for the
// cache and extender's own unit tests, while GiniOracle plays it for
// whole-formula solving.
//
// go-air/gini is the maintained continuation of the older
// irifrance/gini import path; this module only ever depends on the
// former, matching what go.mod actually requires.
type GiniOracle struct {
	g *gini.Gini
}

// NewGiniOracle allocates a gini instance sized for nVars variables.
func NewGiniOracle(nVars int) *GiniOracle {
	return &GiniOracle{g: gini.NewV(nVars)}
}

func toGini(m z.Lit) giniz.Lit {
	return giniz.Lit(m)
}

// AddClause adds a clause to the underlying gini instance.
func (o *GiniOracle) AddClause(lits ...z.Lit) {
	for _, m := range lits {
		o.g.Add(toGini(m))
	}
	o.g.Add(giniz.LitNull)
}

// Solve runs gini's search to completion and reports satisfiability.
func (o *GiniOracle) Solve() bool {
	return o.g.Solve() == 1
}

// Model copies gini's satisfying assignment into vals, indexed the way
// Engine.vals is: vals[m] is 1 if m holds in the model, -1 if its
// negation holds. Variables the search never saw (above gini's MaxVar,
// e.g. because inprocessing removed every clause mentioning them) are
// left at 0.
func (o *GiniOracle) Model(nVars int, vals []int8) {
	for v := 1; v <= nVars; v++ {
		if giniz.Var(v) > o.g.MaxVar() {
			continue
		}
		m := z.Var(v).Pos()
		if o.g.Value(toGini(m)) {
			vals[m] = 1
			vals[m.Not()] = -1
		} else {
			vals[m] = -1
			vals[m.Not()] = 1
		}
	}
}
