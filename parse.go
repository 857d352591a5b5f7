package chemexpr

import (
	"io"
	"strings"
	"unicode/utf8"
)

// Expr = Ident | String | Int | Real | Tuple | Syntax | Infix | Formula
// Tuple = '(' ')' | '(' Expr { ',' Expr } ')'
// Syntax = Ident '!' '{' Body '}'
// Infix = Expr Op Expr { Op Expr }
// Op = '.' | '+' | '-' | '*' | '/' | '^'
// Formula = '$' { Part } [ ('+' | '-') Part ]
// Part = Ident | String | Int | Real | Tuple | Formula

// Expr is a parsed expression that can be evaluated with a dictionary.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// names is the list of identifiers used in the expression.
	names []string
}

// Parse parses an expression so it can be evaluated with a dictionary. The
// given options are applied in order.
//
// Tokens are fed one at a time to a tree of builders. Each token is either
// absorbed by the innermost builder that can use it or rejected upward, where
// a finished subexpression may be restructured into the first operand of an
// infix chain or the name of a special syntax block. Parsing never backtracks.
func Parse(src io.RuneReader, opts ...ParseOption) (*Expr, error) {
	p := newparsectx(opts)
	scan := Lex(src)
	top := builder{kind: buildWrapper}
	end := 1
	for tok, ok := scan.Next(); ok; tok, ok = scan.Next() {
		end = tok.Pos + utf8.RuneCountInString(tok.Src)
		rej, err := top.add(&p, tok)
		if err != nil {
			return nil, err
		}
		if rej {
			return nil, &UnexpectedTokenError{Token: tok}
		}
	}
	if err := scan.Err(); err != nil {
		return nil, err
	}
	n, err := top.finish(end)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	n.idents(seen)
	ex := Expr{
		n:     n,
		names: make([]string, 0, len(seen)),
	}
	for k := range seen {
		ex.names = append(ex.names, k)
	}
	sortstrs(ex.names)
	return &ex, nil
}

// ParseString is a shortcut to parse an expression from a string.
func ParseString(src string, opts ...ParseOption) (*Expr, error) {
	return Parse(strings.NewReader(src), opts...)
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// idents adds the names of all identifiers in the subtree to seen.
func (n *node) idents(seen map[string]bool) {
	if n.kind == nodeIdent {
		seen[n.name] = true
	}
	for _, k := range n.kids {
		k.idents(seen)
	}
	if n.inner != nil {
		n.inner.idents(seen)
	}
}

// Idents returns the identifiers that evaluating the expression looks up,
// sorted and without duplicates.
func (e *Expr) Idents() []string {
	return append(([]string)(nil), e.names...)
}

// String formats the expression so that it parses back to the same tree,
// given the same special syntax registrations.
func (e *Expr) String() string {
	return e.n.String()
}
