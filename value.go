package chemexpr

import (
	"math/big"
	"strconv"
)

// Type is the type of a Value.
type Type int8

const (
	typeNone Type = iota
	TypeString
	TypeInt
	TypeReal
	TypeElement
	TypeFormula
	TypeEqn
)

func (t Type) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "integer"
	case TypeReal:
		return "real"
	case TypeElement:
		return "element"
	case TypeFormula:
		return "formula"
	case TypeEqn:
		return "equation"
	default:
		return "Type(" + strconv.Itoa(int(t)) + ")"
	}
}

// Value is the result of evaluating an expression. Exactly one of its
// variants is active, as reported by Type. The zero Value is invalid.
type Value struct {
	typ  Type
	str  string
	num  uint64
	real *big.Float
	elem *Element
	form MolecularFormula
	eqn  ChemEqn
}

// StringValue creates a string value.
func StringValue(s string) Value {
	return Value{typ: TypeString, str: s}
}

// IntValue creates an unsigned integer value.
func IntValue(n uint64) Value {
	return Value{typ: TypeInt, num: n}
}

// RealValue creates a real value. The value holds a copy of x.
func RealValue(x *big.Float) Value {
	return Value{typ: TypeReal, real: new(big.Float).Copy(x)}
}

// ElementValue creates a value referring to an element.
func ElementValue(e *Element) Value {
	return Value{typ: TypeElement, elem: e}
}

// FormulaValue creates a molecular formula value. The value holds a copy of m.
func FormulaValue(m MolecularFormula) Value {
	return Value{typ: TypeFormula, form: m.Clone()}
}

// EqnValue creates a chemical equation value. The value holds a copy of q.
func EqnValue(q ChemEqn) Value {
	return Value{typ: TypeEqn, eqn: q.Clone()}
}

// Type returns the type of the value.
func (v Value) Type() Type {
	return v.typ
}

func (v Value) as(t Type) error {
	if v.typ != t {
		return &BadTypeError{Expected: t, Found: v}
	}
	return nil
}

// Str returns the value as a string.
func (v Value) Str() (string, error) {
	return v.str, v.as(TypeString)
}

// Int returns the value as an unsigned integer.
func (v Value) Int() (uint64, error) {
	return v.num, v.as(TypeInt)
}

// Real returns a copy of the value as a real.
func (v Value) Real() (*big.Float, error) {
	if err := v.as(TypeReal); err != nil {
		return nil, err
	}
	return new(big.Float).Copy(v.real), nil
}

// Element returns the value as an element.
func (v Value) Element() (*Element, error) {
	if err := v.as(TypeElement); err != nil {
		return nil, err
	}
	return v.elem, nil
}

// Formula returns a copy of the value as a molecular formula.
func (v Value) Formula() (MolecularFormula, error) {
	if err := v.as(TypeFormula); err != nil {
		return MolecularFormula{}, err
	}
	return v.form.Clone(), nil
}

// Eqn returns a copy of the value as a chemical equation.
func (v Value) Eqn() (ChemEqn, error) {
	if err := v.as(TypeEqn); err != nil {
		return ChemEqn{}, err
	}
	return v.eqn.Clone(), nil
}

// Clone returns a copy of v that shares no mutable state with it. Elements
// are shared, since they belong to their periodic table.
func (v Value) Clone() Value {
	switch v.typ {
	case TypeReal:
		return RealValue(v.real)
	case TypeFormula:
		return FormulaValue(v.form)
	case TypeEqn:
		return EqnValue(v.eqn)
	default:
		return v
	}
}

// String formats the value. Strings, integers, elements, and formulas are
// formatted as expressions that evaluate to an equal value.
func (v Value) String() string {
	switch v.typ {
	case TypeString:
		return `"` + v.str + `"`
	case TypeInt:
		return strconv.FormatUint(v.num, 10)
	case TypeReal:
		return "#" + v.real.Text('g', -1)
	case TypeElement:
		return v.elem.Symbol
	case TypeFormula:
		return "$" + v.form.String()
	case TypeEqn:
		return v.eqn.String()
	default:
		return "<invalid>"
	}
}

// BadTypeError is an error indicating a value of the wrong type.
type BadTypeError struct {
	// Expected is the required type.
	Expected Type
	// Found is the value that was present instead.
	Found Value
}

func (err *BadTypeError) Error() string {
	return "expected " + err.Expected.String() + ", found " + err.Found.typ.String() + " " + err.Found.String()
}
