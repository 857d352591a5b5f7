package chemexpr

import (
	"strconv"
	"strings"
)

// MolecularFormula is a count of atoms of each element, e.g. H2O. The zero
// value is the empty formula.
type MolecularFormula struct {
	atoms CoeffVec[*Element]
}

// Subscript returns the number of atoms of e in the formula.
func (m MolecularFormula) Subscript(e *Element) int {
	return m.atoms.Get(e)
}

// SetSubscript sets the number of atoms of e in the formula.
func (m *MolecularFormula) SetSubscript(e *Element, n int) {
	m.atoms.Set(e, n)
}

// Atoms returns the elements of the formula with their subscripts, in the
// order the elements first appeared.
func (m MolecularFormula) Atoms() []Pair[*Element] {
	return m.atoms.Pairs()
}

// Len returns the number of distinct elements in the formula.
func (m MolecularFormula) Len() int {
	return m.atoms.Len()
}

// Add adds the atoms of o to m.
func (m *MolecularFormula) Add(o MolecularFormula) {
	m.atoms.Add(&o.atoms)
}

// Scale multiplies every subscript by k.
func (m *MolecularFormula) Scale(k int) {
	m.atoms.Scale(k)
}

// Equal reports whether m and o have the same atoms, regardless of the order
// in which they were written.
func (m MolecularFormula) Equal(o MolecularFormula) bool {
	return m.atoms.Equal(&o.atoms)
}

// Clone returns a copy of m that shares no mutable state with it.
func (m MolecularFormula) Clone() MolecularFormula {
	return MolecularFormula{atoms: m.atoms.Clone()}
}

// String formats the formula in the usual notation, omitting subscripts of 1.
func (m MolecularFormula) String() string {
	var b strings.Builder
	for _, p := range m.atoms.pairs {
		b.WriteString(p.Key.Symbol)
		if p.Coeff != 1 {
			b.WriteString(strconv.Itoa(p.Coeff))
		}
	}
	return b.String()
}

// ChemEqn is a chemical equation as a vector of formulas with coefficients.
// Reactants have negative coefficients and products positive ones, so that
// 2H2 + O2 -> 2H2O is {H2: -2, O2: -1, H2O: 2}. The zero value is the empty
// equation.
type ChemEqn struct {
	terms CoeffVec[MolecularFormula]
}

// Coeff returns the coefficient of f in the equation.
func (q ChemEqn) Coeff(f MolecularFormula) int {
	return q.terms.Get(f)
}

// SetCoeff sets the coefficient of f in the equation.
func (q *ChemEqn) SetCoeff(f MolecularFormula, n int) {
	q.terms.Set(f.Clone(), n)
}

// Terms returns every formula with its coefficient, in the order the formulas
// were first added.
func (q ChemEqn) Terms() []Pair[MolecularFormula] {
	r := q.terms.Pairs()
	for i := range r {
		r[i].Key = r[i].Key.Clone()
	}
	return r
}

// Reactants returns the formulas with negative coefficients, negated.
func (q ChemEqn) Reactants() []Pair[MolecularFormula] {
	var r []Pair[MolecularFormula]
	for _, p := range q.terms.pairs {
		if p.Coeff < 0 {
			r = append(r, Pair[MolecularFormula]{p.Key.Clone(), -p.Coeff})
		}
	}
	return r
}

// Products returns the formulas with positive coefficients.
func (q ChemEqn) Products() []Pair[MolecularFormula] {
	var r []Pair[MolecularFormula]
	for _, p := range q.terms.pairs {
		if p.Coeff > 0 {
			r = append(r, Pair[MolecularFormula]{p.Key.Clone(), p.Coeff})
		}
	}
	return r
}

// Add adds the terms of o to q.
func (q *ChemEqn) Add(o ChemEqn) {
	for _, p := range o.terms.Pairs() {
		q.SetCoeff(p.Key, q.terms.Get(p.Key)+p.Coeff)
	}
}

// Scale multiplies every coefficient by k.
func (q *ChemEqn) Scale(k int) {
	q.terms.Scale(k)
}

// Equal reports whether q and o have the same terms.
func (q ChemEqn) Equal(o ChemEqn) bool {
	return q.terms.Equal(&o.terms)
}

// Clone returns a copy of q that shares no mutable state with it.
func (q ChemEqn) Clone() ChemEqn {
	var r ChemEqn
	r.terms.pairs = q.Terms()
	return r
}

// String formats the equation with reactants on the left of -> and products
// on the right, omitting coefficients of 1.
func (q ChemEqn) String() string {
	var b strings.Builder
	side := func(ps []Pair[MolecularFormula]) {
		for i, p := range ps {
			if i > 0 {
				b.WriteString(" + ")
			}
			if p.Coeff != 1 {
				b.WriteString(strconv.Itoa(p.Coeff))
			}
			b.WriteString(p.Key.String())
		}
	}
	side(q.Reactants())
	b.WriteString(" -> ")
	side(q.Products())
	return b.String()
}
