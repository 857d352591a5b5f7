package chemexpr

import (
	"math/big"
	"strconv"
)

// builder incrementally constructs one node of an expression tree from a
// stream of tokens.
//
// A builder is offered tokens one at a time through add. It either accepts a
// token, possibly handing it down to an active child, or rejects it. A
// rejected token is left for the caller, the builder's parent, to incorporate
// into itself or to restructure around (see wrap). Rejection is only possible
// when the builder is in a state where it can be finished; a builder that can
// neither accept nor be finished returns an error instead. Once a builder
// rejects a token it is closed and rejects every later token.
type builder struct {
	kind   builderKind
	closed bool
	done   bool

	// lit is the finished node of a literal builder.
	lit *node

	// kids are tuple items, infix operands, or formula symbols and
	// subscripts. Only the last kid is ever active.
	kids []*builder
	// ops are the infix operators between kids.
	ops []InfixOp
	// active is whether the last tuple item still receives tokens.
	active bool

	// name is a special syntax block's name.
	name string
	// opened is whether a special syntax block has seen its {.
	opened bool
	// inner is the body of a special syntax block, the expression of a
	// wrapper, or the charge magnitude of a formula.
	inner *builder
	// sign is '+' or '-' once a formula has seen its charge sign.
	sign byte
	// bare is whether a formula is a special syntax body, lacking its $.
	bare bool
}

type builderKind int8

const (
	buildNone builderKind = iota

	buildLiteral // identifier, string, integer, or real; always closed
	buildTuple   // ( items )
	buildSyntax  // name ! { inner }
	buildInfix   // kids[0] ops[0] kids[1] ...
	buildFormula // $ kids [sign inner]
	buildWrapper // inner, restructured on rejection
)

// startsExpr reports whether tok can begin an expression.
func startsExpr(tok Token) bool {
	switch tok.Kind {
	case TokenIdent, TokenString, TokenInt, TokenReal, TokenLParen, TokenCash, TokenCashCash:
		return true
	default:
		return false
	}
}

// newBuilder creates a builder for the expression that tok begins.
func newBuilder(tok Token) (*builder, error) {
	switch tok.Kind {
	case TokenIdent:
		return literal(&node{kind: nodeIdent, name: tok.Text}), nil
	case TokenString:
		return literal(&node{kind: nodeString, name: tok.Text}), nil
	case TokenInt:
		v, err := strconv.ParseUint(tok.Text, 10, 64)
		if err != nil {
			return nil, &NumberError{Token: tok, Err: err}
		}
		return literal(&node{kind: nodeInt, num: v}), nil
	case TokenReal:
		if _, _, err := new(big.Float).Parse(tok.Text, 10); err != nil {
			return nil, &NumberError{Token: tok, Err: err}
		}
		return literal(&node{kind: nodeReal, name: tok.Text}), nil
	case TokenLParen:
		return &builder{kind: buildTuple}, nil
	case TokenCash:
		return &builder{kind: buildFormula}, nil
	case TokenCashCash:
		// TODO(zeph): condensed formulas like $$(CH3)2CO need a grammar for
		// grouped subformulas before they can have a builder.
		return nil, &UnsupportedSyntaxError{Col: tok.Pos, Syntax: tok.Src}
	default:
		return nil, &UnexpectedTokenError{Token: tok}
	}
}

func literal(n *node) *builder {
	return &builder{kind: buildLiteral, lit: n, closed: true}
}

// parseTimeIdent returns the name of a builder that consists of exactly one
// bare identifier.
func (b *builder) parseTimeIdent() (string, bool) {
	if b.kind != buildLiteral || b.lit.kind != nodeIdent {
		return "", false
	}
	return b.lit.name, true
}

// add offers a token to the builder. The result is true if the builder
// rejects the token.
func (b *builder) add(p *parsectx, tok Token) (bool, error) {
	if b.closed {
		return true, nil
	}
	switch b.kind {
	case buildTuple:
		return b.addTuple(p, tok)
	case buildSyntax:
		return b.addSyntax(p, tok)
	case buildInfix:
		return b.addInfix(p, tok)
	case buildFormula:
		return b.addFormula(p, tok)
	case buildWrapper:
		return b.addWrapper(p, tok)
	default:
		panic("chemexpr: add to invalid builder kind " + strconv.Itoa(int(b.kind)))
	}
}

func (b *builder) addTuple(p *parsectx, tok Token) (bool, error) {
	if !b.active {
		switch tok.Kind {
		case TokenSpace:
			return false, nil
		case TokenRParen:
			if len(b.kids) == 0 {
				// ()
				b.closed = true
				return false, nil
			}
			// (a,)
			return false, &UnexpectedTokenError{Token: tok}
		}
		k, err := newBuilder(tok)
		if err != nil {
			return false, err
		}
		b.kids = append(b.kids, k)
		b.active = true
		return false, nil
	}
	last := len(b.kids) - 1
	rej, err := b.kids[last].add(p, tok)
	if err != nil || !rej {
		return false, err
	}
	switch tok.Kind {
	case TokenSpace: // do nothing
	case TokenRParen:
		b.closed = true
	case TokenComma:
		b.active = false
	default:
		// An open tuple is never a complete expression, so if the item can't
		// be restructured around the token, nothing can use it.
		w, rej, err := wrap(p, b.kids[last], tok)
		if err != nil {
			return false, err
		}
		if rej {
			return false, &UnexpectedTokenError{Token: tok}
		}
		b.kids[last] = w
	}
	return false, nil
}

func (b *builder) addSyntax(p *parsectx, tok Token) (bool, error) {
	if !b.opened {
		switch tok.Kind {
		case TokenSpace:
			return false, nil
		case TokenLCurly:
			b.opened = true
			return false, nil
		default:
			return false, &UnexpectedTokenError{Token: tok}
		}
	}
	rej, err := b.inner.add(p, tok)
	if err != nil || !rej {
		return false, err
	}
	switch tok.Kind {
	case TokenSpace: // do nothing
	case TokenRCurly:
		b.closed = true
	default:
		// The body decides its own structure, so no infix wrapping here.
		return false, &UnexpectedTokenError{Token: tok}
	}
	return false, nil
}

func (b *builder) addInfix(p *parsectx, tok Token) (bool, error) {
	if len(b.kids) == len(b.ops) {
		// The last token was an operator, so an operand must follow.
		if tok.Kind == TokenSpace {
			return false, nil
		}
		k, err := newBuilder(tok)
		if err != nil {
			return false, err
		}
		b.kids = append(b.kids, k)
		return false, nil
	}
	rej, err := b.kids[len(b.kids)-1].add(p, tok)
	if err != nil || !rej {
		return false, err
	}
	if tok.Kind == TokenSpace {
		return false, nil
	}
	if op := infixop(tok); op != opNone {
		b.ops = append(b.ops, op)
		return false, nil
	}
	b.closed = true
	return true, nil
}

func (b *builder) addFormula(p *parsectx, tok Token) (bool, error) {
	if b.sign == 0 {
		if n := len(b.kids); n > 0 {
			rej, err := b.kids[n-1].add(p, tok)
			if err != nil || !rej {
				return false, err
			}
		} else if b.bare && tok.Kind == TokenSpace {
			// Allow name!{ H2O}.
			return false, nil
		}
		if startsExpr(tok) {
			k, err := newBuilder(tok)
			if err != nil {
				return false, err
			}
			b.kids = append(b.kids, k)
			return false, nil
		}
		switch tok.Kind {
		case TokenPlus:
			b.sign = '+'
			return false, nil
		case TokenMinus:
			b.sign = '-'
			return false, nil
		}
		// Every symbol and subscript is complete, so the formula is too.
		b.closed = true
		return true, nil
	}
	if b.inner == nil {
		// A magnitude must immediately follow the sign.
		k, err := newBuilder(tok)
		if err != nil {
			return false, err
		}
		b.inner = k
		return false, nil
	}
	rej, err := b.inner.add(p, tok)
	if err != nil || !rej {
		return false, err
	}
	b.closed = true
	return true, nil
}

func (b *builder) addWrapper(p *parsectx, tok Token) (bool, error) {
	if b.inner == nil {
		if tok.Kind == TokenSpace {
			return false, nil
		}
		k, err := newBuilder(tok)
		if err != nil {
			return false, err
		}
		b.inner = k
		return false, nil
	}
	rej, err := b.inner.add(p, tok)
	if err != nil || !rej {
		return false, err
	}
	if tok.Kind == TokenSpace {
		return false, nil
	}
	w, rej, err := wrap(p, b.inner, tok)
	if err != nil {
		return false, err
	}
	if rej {
		b.closed = true
		return true, nil
	}
	b.inner = w
	return false, nil
}

// wrap attempts to restructure b, which has just rejected tok, around tok.
// If tok is an infix operator, the result is a new infix chain with b as its
// first operand. If tok is ! and b is a bare identifier, the result is a
// special syntax block named by the identifier. Otherwise, the result is b
// itself and true, indicating that tok is still rejected.
func wrap(p *parsectx, b *builder, tok Token) (*builder, bool, error) {
	if op := infixop(tok); op != opNone {
		return &builder{kind: buildInfix, kids: []*builder{b}, ops: []InfixOp{op}}, false, nil
	}
	if tok.Kind == TokenBang {
		if name, ok := b.parseTimeIdent(); ok {
			kind := p.syntax(name)
			if kind == SyntaxNone {
				return nil, false, &UnsupportedSyntaxError{Col: tok.Pos, Syntax: name}
			}
			return &builder{kind: buildSyntax, name: name, inner: syntaxBody(kind)}, false, nil
		}
	}
	return b, true, nil
}

// finish completes the builder into a node. end is the position just past the
// end of the input, for errors about missing tokens. A builder must not be
// finished more than once.
func (b *builder) finish(end int) (*node, error) {
	if b.done {
		panic("chemexpr: builder finished twice")
	}
	b.done = true
	switch b.kind {
	case buildLiteral:
		return b.lit, nil
	case buildTuple:
		if !b.closed {
			return nil, &ExpectedTokensError{Col: end, Want: `")"`}
		}
		kids, err := finishAll(b.kids, end)
		if err != nil {
			return nil, err
		}
		return &node{kind: nodeTuple, kids: kids}, nil
	case buildSyntax:
		if !b.opened {
			return nil, &ExpectedTokensError{Col: end, Want: `"{"`}
		}
		if !b.closed {
			return nil, &ExpectedTokensError{Col: end, Want: `"}"`}
		}
		inner, err := b.inner.finish(end)
		if err != nil {
			return nil, err
		}
		return &node{kind: nodeSyntax, name: b.name, inner: inner}, nil
	case buildInfix:
		if len(b.kids) != len(b.ops)+1 {
			return nil, &ExpectedTokensError{Col: end, Want: "operand after " + strconv.Quote(b.ops[len(b.ops)-1].String())}
		}
		kids, err := finishAll(b.kids, end)
		if err != nil {
			return nil, err
		}
		return &node{kind: nodeInfix, kids: kids, ops: b.ops}, nil
	case buildFormula:
		kids, err := finishAll(b.kids, end)
		if err != nil {
			return nil, err
		}
		n := &node{kind: nodeFormula, kids: kids, sign: b.sign, bare: b.bare}
		if b.sign != 0 {
			if b.inner == nil {
				return nil, &ExpectedTokensError{Col: end, Want: "charge magnitude"}
			}
			if n.inner, err = b.inner.finish(end); err != nil {
				return nil, err
			}
		}
		return n, nil
	case buildWrapper:
		if b.inner == nil {
			return nil, &NoTokensError{Col: end}
		}
		return b.inner.finish(end)
	default:
		panic("chemexpr: finish invalid builder kind " + strconv.Itoa(int(b.kind)))
	}
}

func finishAll(bs []*builder, end int) ([]*node, error) {
	if len(bs) == 0 {
		return nil, nil
	}
	r := make([]*node, len(bs))
	for i, b := range bs {
		n, err := b.finish(end)
		if err != nil {
			return nil, err
		}
		r[i] = n
	}
	return r, nil
}
