package chemexpr

import (
	"io"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Eval evaluates an expression. The dictionary is locked for reading for the
// entire evaluation, so every lookup sees the same definitions.
func (d *Dictionary) Eval(e *Expr) (Value, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return e.n.eval(d)
}

// lookup is Get without locking.
func (d *Dictionary) lookup(name string) (Value, error) {
	v, ok := d.names[name]
	if !ok {
		return Value{}, &UndefinedIdentifierError{Name: name}
	}
	return v.Clone(), nil
}

// eval computes the node's value. d must be locked for reading.
func (n *node) eval(d *Dictionary) (Value, error) {
	switch n.kind {
	case nodeIdent:
		return d.lookup(n.name)
	case nodeString:
		return StringValue(n.name), nil
	case nodeInt:
		return IntValue(n.num), nil
	case nodeReal:
		return RealValue(parseReal(n.name, d.prec)), nil
	case nodeFormula:
		return n.evalformula(d)
	case nodeTuple:
		return Value{}, &UnsupportedError{What: "tuple"}
	case nodeSyntax:
		return Value{}, &UnsupportedError{What: "special syntax " + strconv.Quote(n.name)}
	case nodeInfix:
		return Value{}, &UnsupportedError{What: "infix " + strconv.Quote(n.ops[0].String())}
	case nodeCondensed:
		return Value{}, &UnsupportedError{What: "condensed formula"}
	default:
		panic("chemexpr: invalid AST node " + n.kind.String())
	}
}

// parseReal converts a real numeral to a number with the given precision,
// rounding once. The numeral has already been validated by the parser.
func parseReal(s string, prec uint) *big.Float {
	r, _, err := new(big.Float).SetPrec(prec).Parse(s, 10)
	if err != nil {
		panic("chemexpr: invalid numeral: " + s + " (" + err.Error() + ")")
	}
	return r
}

// evalformula evaluates the parts of a formula and collects elements and
// their subscripts. An element may be followed by an integer subscript;
// otherwise its subscript is 1. Repeated elements are summed.
func (n *node) evalformula(d *Dictionary) (Value, error) {
	if n.sign != 0 {
		return Value{}, &UnsupportedError{What: "charged formula"}
	}
	vals := make([]Value, len(n.kids))
	for i, k := range n.kids {
		v, err := k.eval(d)
		if err != nil {
			return Value{}, err
		}
		vals[i] = v
	}
	var m MolecularFormula
	for i := 0; i < len(vals); i++ {
		e, err := vals[i].Element()
		if err != nil {
			return Value{}, err
		}
		sub := 1
		if i+1 < len(vals) && vals[i+1].Type() == TypeInt {
			i++
			x, _ := vals[i].Int()
			if x > math.MaxInt32 {
				return Value{}, &SubscriptError{Element: e, N: x}
			}
			sub = int(x)
		}
		m.SetSubscript(e, m.Subscript(e)+sub)
	}
	return FormulaValue(m), nil
}

// Eval is a shortcut to parse an expression and evaluate it with d.
func Eval(src io.RuneReader, d *Dictionary, opts ...ParseOption) (Value, error) {
	e, err := Parse(src, opts...)
	if err != nil {
		return Value{}, err
	}
	return d.Eval(e)
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, d *Dictionary, opts ...ParseOption) (Value, error) {
	return Eval(strings.NewReader(src), d, opts...)
}

// UnsupportedError is an error from evaluating an expression that parses but
// has no defined value, such as arithmetic or a charged formula.
type UnsupportedError struct {
	// What describes the unsupported expression.
	What string
}

func (err *UnsupportedError) Error() string {
	return "cannot evaluate " + err.What
}

// SubscriptError is an error from a formula subscript too large to count.
type SubscriptError struct {
	Element *Element
	N       uint64
}

func (err *SubscriptError) Error() string {
	return "subscript " + strconv.FormatUint(err.N, 10) + " on " + err.Element.Symbol + " is too large"
}
