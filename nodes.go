package chemexpr

import (
	"strconv"
	"strings"
)

// node is a node in the expression tree. A node exclusively owns its
// children.
type node struct {
	kind nodeKind

	// name is an identifier's name, a string literal's contents, a real
	// literal's numeral, or a special syntax block's name.
	name string
	// num is an integer literal's value.
	num uint64

	// kids are tuple items, infix operands, or formula symbols and subscripts.
	kids []*node
	// ops are the operators between infix operands.
	ops []InfixOp

	// inner is a special syntax block's body or a formula's charge magnitude.
	inner *node
	// sign is the sign of a formula's charge, '+' or '-', or 0 if the formula
	// has no charge.
	sign byte
	// bare marks a formula written without its $, as the body of a special
	// syntax block.
	bare bool
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeIdent     // lookup(name)
	nodeString    // name
	nodeInt       // num
	nodeReal      // name is the numeral
	nodeTuple     // kids are items
	nodeSyntax    // name!{inner}
	nodeInfix     // kids[0] ops[0] kids[1] ... ops[n-1] kids[n]
	nodeFormula   // $ kids [sign inner]
	nodeCondensed // $$, not yet parsed
)

func (k nodeKind) String() string {
	switch k {
	case nodeNone:
		return "None"
	case nodeIdent:
		return "Ident"
	case nodeString:
		return "String"
	case nodeInt:
		return "Int"
	case nodeReal:
		return "Real"
	case nodeTuple:
		return "Tuple"
	case nodeSyntax:
		return "Syntax"
	case nodeInfix:
		return "Infix"
	case nodeFormula:
		return "Formula"
	case nodeCondensed:
		return "Condensed"
	default:
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// InfixOp is an operator joining the operands of an infix chain.
type InfixOp int8

const (
	opNone InfixOp = iota
	// OpCall is the . operator.
	OpCall
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpPow
)

func (op InfixOp) String() string {
	switch op {
	case OpCall:
		return "."
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpPow:
		return "^"
	default:
		return "InfixOp(" + strconv.Itoa(int(op)) + ")"
	}
}

// infixop gets the operator for a token. If the token is not an operator, the
// result is opNone.
func infixop(tok Token) InfixOp {
	switch tok.Kind {
	case TokenDot:
		return OpCall
	case TokenPlus:
		return OpAdd
	case TokenMinus:
		return OpSub
	case TokenMul:
		return OpMul
	case TokenDiv:
		return OpDiv
	case TokenPow:
		return OpPow
	default:
		return opNone
	}
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes the node in a form that parses back to an equal tree.
func (n *node) fmt(b *strings.Builder) {
	switch n.kind {
	case nodeIdent:
		fmtident(b, n.name, false)
	case nodeString:
		b.WriteString(`"` + n.name + `"`)
	case nodeInt:
		b.WriteString(strconv.FormatUint(n.num, 10))
	case nodeReal:
		b.WriteByte('#')
		b.WriteString(n.name)
	case nodeTuple:
		b.WriteByte('(')
		for i, k := range n.kids {
			if i > 0 {
				b.WriteString(", ")
			}
			k.fmt(b)
		}
		b.WriteByte(')')
	case nodeSyntax:
		fmtident(b, n.name, false)
		b.WriteString("!{")
		n.inner.fmt(b)
		b.WriteByte('}')
	case nodeInfix:
		n.kids[0].fmt(b)
		for i, op := range n.ops {
			if op == OpCall && !endsInDigit(b) {
				// 1.2 would be a real.
				b.WriteByte('.')
			} else {
				b.WriteString(" " + op.String() + " ")
			}
			n.kids[i+1].fmt(b)
		}
	case nodeFormula:
		if !n.bare {
			b.WriteByte('$')
		}
		n.fmtformula(b)
	case nodeCondensed:
		b.WriteString("$$")
	default:
		// Invalid nodes use invalid characters.
		b.WriteString("$" + n.kind.String() + "#")
	}
}

// fmtformula writes a formula's body without the $ marker.
func (n *node) fmtformula(b *strings.Builder) {
	prev, quoted := nodeNone, false
	for _, k := range n.kids {
		if k.kind != nodeIdent {
			k.fmt(b)
			prev, quoted = k.kind, false
			continue
		}
		// Adjacent parts must not scan as one token, as Ca would after C or
		// 1.5e2 would after 1.5.
		var quote bool
		if k.name != "" {
			c := rune(k.name[0])
			switch {
			case quoted:
				quote = isQuotedTail(c)
			case prev == nodeIdent:
				quote = isIdentTail(c)
			case prev == nodeReal:
				quote = isExpMarker(c)
			}
		}
		quoted = fmtident(b, k.name, quote)
		prev = nodeIdent
	}
	if n.sign != 0 {
		b.WriteByte(n.sign)
		n.inner.fmt(b)
	}
}

func endsInDigit(b *strings.Builder) bool {
	s := b.String()
	return s != "" && isDigit(rune(s[len(s)-1]))
}

// fmtident writes an identifier, quoted if it would not otherwise scan as
// the same name. The result is whether it was quoted.
func fmtident(b *strings.Builder, name string, quote bool) bool {
	quote = quote || !isBareName(name)
	if quote {
		b.WriteByte('\'')
	}
	b.WriteString(name)
	return quote
}

// isBareName reports whether name scans as a single identifier without a
// leading quote.
func isBareName(name string) bool {
	for i, r := range name {
		if i == 0 && !isIdentStart(r) || i > 0 && !isIdentTail(r) {
			return false
		}
	}
	return name != ""
}
