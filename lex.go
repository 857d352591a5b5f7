package chemexpr

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Token is a lexical unit of an expression.
type Token struct {
	// Kind is the token's kind.
	Kind TokenKind
	// Text is the token's payload: an identifier's name, the contents of a
	// string literal, or the digits of a numeral. It is empty for structural
	// tokens.
	Text string
	// Src is the exact source text the token was scanned from.
	Src string
	// Pos is the 1-based rune column of the token's first rune.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + strconv.Quote(t.Src) + "@" + strconv.Itoa(t.Pos)
}

// TokenKind is the kind of a token.
type TokenKind int8

const (
	// TokenUnknown is a rune that starts no token, or an unterminated string.
	TokenUnknown TokenKind = iota
	// TokenSpace is a run of whitespace.
	TokenSpace
	// TokenIdent is a name, e.g. H or 'water.
	TokenIdent
	// TokenString is a double-quoted string literal.
	TokenString
	// TokenInt is an unsigned decimal integer.
	TokenInt
	// TokenReal is a decimal with a fraction, or any numeral following #.
	TokenReal

	TokenLParen   // (
	TokenRParen   // )
	TokenLBrack   // [
	TokenRBrack   // ]
	TokenLCurly   // {
	TokenRCurly   // }
	TokenDot      // .
	TokenBang     // !
	TokenCash     // $, starts a molecular formula
	TokenCashCash // $$, starts a condensed formula
	TokenEquals   // =
	TokenPlus     // +
	TokenMinus    // -
	TokenMul      // *
	TokenDiv      // /
	TokenPow      // ^
	TokenComma    // ,
	TokenColon    // :
	TokenArrow    // ->
	TokenEllipsis // ...
)

var tokenKindNames = [...]string{
	TokenUnknown:  "Unknown",
	TokenSpace:    "Space",
	TokenIdent:    "Ident",
	TokenString:   "String",
	TokenInt:      "Int",
	TokenReal:     "Real",
	TokenLParen:   "LParen",
	TokenRParen:   "RParen",
	TokenLBrack:   "LBrack",
	TokenRBrack:   "RBrack",
	TokenLCurly:   "LCurly",
	TokenRCurly:   "RCurly",
	TokenDot:      "Dot",
	TokenBang:     "Bang",
	TokenCash:     "Cash",
	TokenCashCash: "CashCash",
	TokenEquals:   "Equals",
	TokenPlus:     "Plus",
	TokenMinus:    "Minus",
	TokenMul:      "Mul",
	TokenDiv:      "Div",
	TokenPow:      "Pow",
	TokenComma:    "Comma",
	TokenColon:    "Colon",
	TokenArrow:    "Arrow",
	TokenEllipsis: "Ellipsis",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenKindNames[k]
}

// structural is the table of fixed tokens. The tokenizer picks the longest
// entry matching the input; entries of equal length are ordered by their
// source strings, greatest first.
var structural = []struct {
	src  string
	kind TokenKind
}{
	{"(", TokenLParen},
	{")", TokenRParen},
	{"[", TokenLBrack},
	{"]", TokenRBrack},
	{"{", TokenLCurly},
	{"}", TokenRCurly},
	{".", TokenDot},
	{"!", TokenBang},
	{"$", TokenCash},
	{"$$", TokenCashCash},
	{"=", TokenEquals},
	{"+", TokenPlus},
	{"-", TokenMinus},
	{"*", TokenMul},
	{"/", TokenDiv},
	{"^", TokenPow},
	{",", TokenComma},
	{":", TokenColon},
	{"->", TokenArrow},
	{"...", TokenEllipsis},
}

// Tokenizer produces tokens from a rune source. It never fails: runes that
// begin no token become TokenUnknown tokens for the parser to reject.
type Tokenizer struct {
	src *Lookahead[rune]
	buf strings.Builder
	col int
	err error
}

// Lex creates a tokenizer reading from src. Reading stops at the first error
// from src; errors other than io.EOF are reported by Err.
func Lex(src io.RuneReader) *Tokenizer {
	t := &Tokenizer{col: 1}
	t.src = NewLookahead(func() (rune, bool) {
		r, _, err := src.ReadRune()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				t.err = err
			}
			return 0, false
		}
		return r, true
	})
	return t
}

// Tokenize scans all of s.
func Tokenize(s string) []Token {
	var toks []Token
	t := Lex(strings.NewReader(s))
	for tok, ok := t.Next(); ok; tok, ok = t.Next() {
		toks = append(toks, tok)
	}
	return toks
}

// Err returns the first non-EOF error encountered reading the source.
func (t *Tokenizer) Err() error {
	return t.err
}

// Next scans the next token. The second result is false at the end of input.
func (t *Tokenizer) Next() (Token, bool) {
	r, ok := t.src.Peek(0)
	if !ok {
		return Token{}, false
	}
	t.buf.Reset()
	tok := Token{Pos: t.col}
	switch {
	case unicode.IsSpace(r):
		t.take(unicode.IsSpace)
		tok.Kind = TokenSpace
	case isIdentStart(r):
		t.read()
		t.take(isIdentTail)
		tok.Kind = TokenIdent
		tok.Text = t.buf.String()
	case r == '\'' && t.peekIs(1, isIdentStart):
		// The quote is part of the source but not of the name.
		t.read()
		t.read()
		t.take(isQuotedTail)
		tok.Kind = TokenIdent
		tok.Text = t.buf.String()[1:]
	case isDigit(r):
		tok.Kind = t.scanNum()
		tok.Text = t.buf.String()
	case r == '#' && t.peekIs(1, isDigit):
		t.read()
		t.scanNum()
		tok.Kind = TokenReal
		tok.Text = t.buf.String()[1:]
	case r == '"':
		tok.Kind, tok.Text = t.scanString()
	default:
		tok.Kind = t.scanStructural()
	}
	tok.Src = t.buf.String()
	return tok, true
}

// read consumes one rune into the token buffer.
func (t *Tokenizer) read() rune {
	r, _ := t.src.Next()
	t.buf.WriteRune(r)
	t.col++
	return r
}

// take consumes runes into the token buffer while they satisfy pred.
func (t *Tokenizer) take(pred func(rune) bool) {
	for {
		r, ok := t.src.NextIf(pred)
		if !ok {
			return
		}
		t.buf.WriteRune(r)
		t.col++
	}
}

// peekIs reports whether the k-th unconsumed rune exists and satisfies pred.
func (t *Tokenizer) peekIs(k int, pred func(rune) bool) bool {
	r, ok := t.src.Peek(k)
	return ok && pred(r)
}

// scanNum scans a numeral starting at a digit. A fraction makes the numeral
// real; an exponent is only recognized after a fraction.
func (t *Tokenizer) scanNum() TokenKind {
	t.take(isDigit)
	if !t.peekIs(0, is('.')) || !t.peekIs(1, isDigit) {
		return TokenInt
	}
	t.read()
	t.take(isDigit)
	if t.peekIs(0, isExpMarker) {
		switch {
		case t.peekIs(1, isDigit):
			t.read()
			t.take(isDigit)
		case t.peekIs(1, isSign) && t.peekIs(2, isDigit):
			t.read()
			t.read()
			t.take(isDigit)
		}
	}
	return TokenReal
}

// scanString scans a double-quoted string. If the closing quote is missing,
// the rest of the input is consumed into an unknown token.
func (t *Tokenizer) scanString() (TokenKind, string) {
	t.read()
	for {
		r, ok := t.src.Peek(0)
		if !ok {
			return TokenUnknown, ""
		}
		t.read()
		if r == '"' {
			s := t.buf.String()
			return TokenString, s[1 : len(s)-1]
		}
	}
}

// scanStructural consumes the longest structural token at the cursor, or a
// single unknown rune if none matches.
func (t *Tokenizer) scanStructural() TokenKind {
	best := -1
	for i, s := range structural {
		if !t.matches(s.src) {
			continue
		}
		if best < 0 {
			best = i
			continue
		}
		b := structural[best].src
		if len(s.src) > len(b) || len(s.src) == len(b) && s.src > b {
			best = i
		}
	}
	if best < 0 {
		t.read()
		return TokenUnknown
	}
	for range structural[best].src {
		t.read()
	}
	return structural[best].kind
}

// matches reports whether the unconsumed input begins with s.
func (t *Tokenizer) matches(s string) bool {
	k := 0
	for _, c := range s {
		r, ok := t.src.Peek(k)
		if !ok || r != c {
			return false
		}
		k++
	}
	return true
}

func is(c rune) func(rune) bool {
	return func(r rune) bool { return r == c }
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

func isIdentStart(r rune) bool {
	return r == '_' || isLetter(r)
}

// isIdentTail is the continuation rule for bare identifiers. Only lowercase
// letters continue a name, so element symbols run together (CaCl is Ca
// followed by Cl) and a charge sign after a symbol stays a separate token.
func isIdentTail(r rune) bool {
	return 'a' <= r && r <= 'z'
}

// isQuotedTail is the continuation rule for identifiers introduced by '.
func isQuotedTail(r rune) bool {
	return isLetter(r) || isDigit(r) || r == '_' || r == '-'
}

func isExpMarker(r rune) bool {
	return r == 'e' || r == 'E'
}

func isSign(r rune) bool {
	return r == '+' || r == '-'
}
