// Package z provides the dense variable/literal representation shared by
// the implication cache, the solution extender, and the solver facade.
//
// Variables and literals are represented as uint32s, in the same style as
// github.com/go-air/gini/z: a literal is the variable's index shifted
// left by one bit, with the low bit carrying the sign. This makes both
// Var() and Not() single instructions and lets every literal-indexed table
// in this module be a flat slice of size 2*|V|.
package z

import "fmt"

// Var is a dense, non-negative variable index.
type Var uint32

// VarNull is the invalid/sentinel variable.
const VarNull Var = 0

// Pos returns the positive literal of v.
func (v Var) Pos() Lit {
	return Lit(v << 1)
}

// Neg returns the negative literal of v.
func (v Var) Neg() Lit {
	return Lit((v << 1) | 1)
}

func (v Var) String() string {
	return fmt.Sprintf("v%d", uint32(v))
}

// Lit is a signed literal: 2*Var + sign, so negation flips the low bit.
type Lit uint32

// LitNull is the invalid/sentinel literal, used to terminate clause
// buffers in the same way github.com/go-air/gini uses z.LitNull.
const LitNull Lit = 0

// Var returns the underlying variable of m.
func (m Lit) Var() Var {
	return Var(m >> 1)
}

// Sign returns 1 for a negative literal, 0 for a positive one.
func (m Lit) Sign() uint32 {
	return uint32(m) & 1
}

// IsPos reports whether m is the positive literal of its variable.
func (m Lit) IsPos() bool {
	return m&1 == 0
}

// Not returns the negation of m.
func (m Lit) Not() Lit {
	return m ^ 1
}

func (m Lit) String() string {
	if m.IsPos() {
		return fmt.Sprintf("%d", uint32(m.Var()))
	}
	return fmt.Sprintf("-%d", uint32(m.Var()))
}

// Truth is a three-valued assignment: True, False, or Undef.
type Truth int8

const (
	Undef Truth = 0
	False Truth = -1
	True  Truth = 1
)

func (t Truth) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "undef"
	}
}

// Xor flips t according to a literal's sign: the value of a literal m is
// the truth of m.Var() xor'd against m.Sign().
func (t Truth) Xor(sign uint32) Truth {
	if t == Undef {
		return Undef
	}
	if sign == 1 {
		return -t
	}
	return t
}

// RemovalTag records why a variable has left the active variable set.
type RemovalTag uint8

const (
	// RemovalNone marks a variable still active in the search.
	RemovalNone RemovalTag = iota
	// RemovalSet marks a variable fixed at decision level 0.
	RemovalSet
	// RemovalEliminated marks a variable removed by resolution (bounded
	// variable elimination).
	RemovalEliminated
	// RemovalReplaced marks a variable replaced by an equivalent literal.
	RemovalReplaced
	// RemovalDecomposed marks a variable removed by connected-component
	// decomposition.
	RemovalDecomposed
	// RemovalQueuedReplacer marks a variable awaiting equivalence
	// replacement; it is still live for cache purposes but about to be
	// merged away.
	RemovalQueuedReplacer
)

func (r RemovalTag) String() string {
	switch r {
	case RemovalNone:
		return "none"
	case RemovalSet:
		return "set"
	case RemovalEliminated:
		return "eliminated"
	case RemovalReplaced:
		return "replaced"
	case RemovalDecomposed:
		return "decomposed"
	case RemovalQueuedReplacer:
		return "queued_replacer"
	default:
		return "unknown"
	}
}

// Removed reports whether a variable carrying this tag has left the
// active variable set for good (queued_replacer is still considered live,
// matching the exception addDelayedClauses makes for it).
func (r RemovalTag) Removed() bool {
	switch r {
	case RemovalSet, RemovalEliminated, RemovalReplaced, RemovalDecomposed:
		return true
	default:
		return false
	}
}
