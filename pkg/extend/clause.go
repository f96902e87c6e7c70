package extend

import "github.com/go-air/satcore/pkg/z"

// Clause is the extender's own clause representation: an ordered literal
// sequence plus an rhs parity bit used only when the clause is a
// two-literal xor. Blocked clauses additionally
// record that their first literal is the blocking literal whose flip, by
// construction, always satisfies the clause.
type Clause struct {
	Lits    []z.Lit
	IsXor   bool
	Rhs     bool
	Blocked bool
}

// NewClause builds a regular (non-xor) clause.
func NewClause(lits []z.Lit) *Clause {
	cp := make([]z.Lit, len(lits))
	copy(cp, lits)
	return &Clause{Lits: cp}
}

// NewXorClause builds a two-literal equivalence: the parity of the
// assigned literals must equal rhs.
func NewXorClause(a, b z.Lit, rhs bool) *Clause {
	return &Clause{Lits: []z.Lit{a, b}, IsXor: true, Rhs: rhs}
}

// NewBlockedClause builds a blocked clause whose first literal is the
// blocking literal.
func NewBlockedClause(blocking z.Lit, rest []z.Lit) *Clause {
	lits := make([]z.Lit, 0, len(rest)+1)
	lits = append(lits, blocking)
	lits = append(lits, rest...)
	return &Clause{Lits: lits, Blocked: true}
}

// BlockingLit returns the clause's blocking literal; only meaningful when
// Blocked is true.
func (c *Clause) BlockingLit() z.Lit {
	return c.Lits[0]
}
