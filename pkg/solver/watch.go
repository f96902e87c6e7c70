package solver

import (
	"fmt"

	"github.com/go-air/satcore/pkg/z"
)

// clauseRef is an opaque reference into the clause database, in the style
// of github.com/go-air/gini/z.C: ephemeral, meaningful only to the
// owning Engine.
type clauseRef uint32

const clauseRefNull clauseRef = 0

// Watch packs a watched occurrence the way
// github.com/go-air/gini/internal/xo.Watch does: the blocking literal,
// the clause reference, and a binary flag into a single uint64 so that
// tryBoth's binary-only scan can classify an entry without an extra
// pointer chase. Engine's propagation walks its occurrence lists, not
// these watches.
type Watch uint64

const (
	litBits = 31
	litMask = Watch(1)<<litBits - 1
	locMask = litMask << litBits
	binBit  = Watch(1) << 63
)

// MakeWatch packs a watched clause occurrence.
func MakeWatch(loc clauseRef, other z.Lit, isBinary bool) Watch {
	w := Watch(other) | (Watch(loc) << litBits)
	if isBinary {
		w |= binBit
	}
	return w
}

// Other returns the blocking/other literal of the watch.
func (w Watch) Other() z.Lit {
	return z.Lit(w & litMask)
}

// Loc returns the clause reference the watch points into.
func (w Watch) Loc() clauseRef {
	return clauseRef((w & locMask) >> litBits)
}

// IsBinary reports whether this watch occurrence is a binary clause. Only
// binary watches participate in tryBoth's hyper-binary resolution scan;
// ternary and long clauses are skipped there.
func (w Watch) IsBinary() bool {
	return w&binBit != 0
}

func (w Watch) String() string {
	kind := "long"
	if w.IsBinary() {
		kind = "bin"
	}
	return fmt.Sprintf("watch{%s other=%s loc=%d}", kind, w.Other(), w.Loc())
}
