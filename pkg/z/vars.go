package z

// Vars is a permutation between an outer (original, user-facing) variable
// space and an inner (compacted, working) variable space, in the style of
// github.com/go-air/gini/z.Vars. The implication cache and the solution
// extender both need to walk this table when the solver compacts its
// variable set.
type Vars struct {
	outerToInter []Var
	interToOuter []Var
}

// NewVars creates an empty renaming table, with every variable unmapped,
// able to hold variables up to capHint without reallocating.
func NewVars(capHint int) *Vars {
	if capHint < 1 {
		capHint = 1
	}
	vs := &Vars{
		outerToInter: make([]Var, capHint+1),
		interToOuter: make([]Var, capHint+1),
	}
	return vs
}

func (vs *Vars) growOuter(v Var) {
	if int(v) < len(vs.outerToInter) {
		return
	}
	next := make([]Var, 2*(int(v)+1))
	copy(next, vs.outerToInter)
	vs.outerToInter = next
}

func (vs *Vars) growInner(v Var) {
	if int(v) < len(vs.interToOuter) {
		return
	}
	next := make([]Var, 2*(int(v)+1))
	copy(next, vs.interToOuter)
	vs.interToOuter = next
}

// Set installs the permutation entry outer <-> inner. Callers are
// responsible for ensuring the mapping stays a bijection; Vars does not
// check this itself, so consistency must hold before any renaming
// rewrite runs against it.
func (vs *Vars) Set(outer, inner Var) {
	vs.growOuter(outer)
	vs.growInner(inner)
	vs.outerToInter[outer] = inner
	vs.interToOuter[inner] = outer
}

// ToInner maps an outer literal to its inner (working) equivalent,
// preserving sign.
func (vs *Vars) ToInner(m Lit) Lit {
	v := m.Var()
	if int(v) >= len(vs.outerToInter) {
		return LitNull
	}
	inner := vs.outerToInter[v]
	if inner == VarNull {
		return LitNull
	}
	if m.IsPos() {
		return inner.Pos()
	}
	return inner.Neg()
}

// ToOuter maps an inner literal back to its outer (original) equivalent,
// preserving sign.
func (vs *Vars) ToOuter(m Lit) Lit {
	v := m.Var()
	if int(v) >= len(vs.interToOuter) {
		return LitNull
	}
	outer := vs.interToOuter[v]
	if m.IsPos() {
		return outer.Pos()
	}
	return outer.Neg()
}

// OuterToInter exposes the dense outer->inner table directly, for callers
// (ImplCache.UpdateVars) that need to rewrite an entire literal-indexed
// vector in one pass rather than one lookup at a time.
func (vs *Vars) OuterToInter() []Var {
	return vs.outerToInter
}

// InterToOuter exposes the dense inner->outer table directly.
func (vs *Vars) InterToOuter() []Var {
	return vs.interToOuter
}
