// Package cache implements the per-literal implication cache: TransCache
// stores the transitive binary-implication closure of a single literal,
// and ImplCache owns one TransCache per literal across the whole working
// variable space.
package cache

import "github.com/go-air/satcore/pkg/z"

// LitExtra is a literal paired with a flag recording whether some known
// derivation path to it uses only non-learnt (irredundant) binary
// clauses. A learnt merge step never sets the flag; a non-learnt merge
// carrying an irredundant witness for the same literal sets it on the
// existing entry, as does ImplCache.Clean when it collapses duplicates,
// and TransCache.MakeAllRed clears it on every entry.
type LitExtra struct {
	Lit              z.Lit
	OnlyNonLearntBin bool
}

// NewLitExtra builds a LitExtra directly.
func NewLitExtra(m z.Lit, onlyNonLearntBin bool) LitExtra {
	return LitExtra{Lit: m, OnlyNonLearntBin: onlyNonLearntBin}
}
