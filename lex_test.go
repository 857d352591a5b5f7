package chemexpr

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func tk(kind TokenKind, text, src string, pos int) Token {
	return Token{Kind: kind, Text: text, Src: src, Pos: pos}
}

func TestLex(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		tokens []Token
	}{
		{"empty", "", nil},
		{"space", " \t \r\n ", []Token{tk(TokenSpace, "", " \t \r\n ", 1)}},
		// identifiers
		{"ident", "H", []Token{tk(TokenIdent, "H", "H", 1)}},
		{"ident-lower", "water", []Token{tk(TokenIdent, "water", "water", 1)}},
		{"ident-under", "_x", []Token{tk(TokenIdent, "_x", "_x", 1)}},
		{"ident-upper-splits", "CaCl", []Token{tk(TokenIdent, "Ca", "Ca", 1), tk(TokenIdent, "Cl", "Cl", 3)}},
		{"ident-digit-splits", "A1B2", []Token{
			tk(TokenIdent, "A", "A", 1), tk(TokenInt, "1", "1", 2),
			tk(TokenIdent, "B", "B", 3), tk(TokenInt, "2", "2", 4),
		}},
		{"ident-hyphen-splits", "Cl-1", []Token{
			tk(TokenIdent, "Cl", "Cl", 1), tk(TokenMinus, "", "-", 3), tk(TokenInt, "1", "1", 4),
		}},
		{"quoted", "'Water-2x", []Token{tk(TokenIdent, "Water-2x", "'Water-2x", 1)}},
		{"quoted-digit", "'2", []Token{tk(TokenUnknown, "", "'", 1), tk(TokenInt, "2", "2", 2)}},
		{"quote-alone", "'", []Token{tk(TokenUnknown, "", "'", 1)}},
		// numbers
		{"int", "0", []Token{tk(TokenInt, "0", "0", 1)}},
		{"int-long", "9876543210", []Token{tk(TokenInt, "9876543210", "9876543210", 1)}},
		{"real", "1.5", []Token{tk(TokenReal, "1.5", "1.5", 1)}},
		{"real-exp", "1.5e3", []Token{tk(TokenReal, "1.5e3", "1.5e3", 1)}},
		{"real-exp-sign", "1.5E-3", []Token{tk(TokenReal, "1.5E-3", "1.5E-3", 1)}},
		{"real-exp-incomplete", "1.5e", []Token{tk(TokenReal, "1.5", "1.5", 1), tk(TokenIdent, "e", "e", 4)}},
		{"int-dot", "1.", []Token{tk(TokenInt, "1", "1", 1), tk(TokenDot, "", ".", 2)}},
		{"int-exp", "1e3", []Token{tk(TokenInt, "1", "1", 1), tk(TokenIdent, "e", "e", 2), tk(TokenInt, "3", "3", 3)}},
		{"real-dots", "1.2.3", []Token{tk(TokenReal, "1.2", "1.2", 1), tk(TokenDot, "", ".", 4), tk(TokenInt, "3", "3", 5)}},
		{"cash-real", "#6", []Token{tk(TokenReal, "6", "#6", 1)}},
		{"cash-real-exp", "#6.02e23", []Token{tk(TokenReal, "6.02e23", "#6.02e23", 1)}},
		{"hash-alone", "#x", []Token{tk(TokenUnknown, "", "#", 1), tk(TokenIdent, "x", "x", 2)}},
		// strings
		{"string", `"a b"`, []Token{tk(TokenString, "a b", `"a b"`, 1)}},
		{"string-empty", `""`, []Token{tk(TokenString, "", `""`, 1)}},
		{"string-unterminated", `"ab c`, []Token{tk(TokenUnknown, "", `"ab c`, 1)}},
		// structural
		{"parens", "()", []Token{tk(TokenLParen, "", "(", 1), tk(TokenRParen, "", ")", 2)}},
		{"cash", "$", []Token{tk(TokenCash, "", "$", 1)}},
		{"cashcash", "$$", []Token{tk(TokenCashCash, "", "$$", 1)}},
		{"cashcashcash", "$$$", []Token{tk(TokenCashCash, "", "$$", 1), tk(TokenCash, "", "$", 3)}},
		{"arrow", "->", []Token{tk(TokenArrow, "", "->", 1)}},
		{"minus", "-", []Token{tk(TokenMinus, "", "-", 1)}},
		{"minus-minus", "--", []Token{tk(TokenMinus, "", "-", 1), tk(TokenMinus, "", "-", 2)}},
		{"ellipsis", "...", []Token{tk(TokenEllipsis, "", "...", 1)}},
		{"dots", "..", []Token{tk(TokenDot, "", ".", 1), tk(TokenDot, "", ".", 2)}},
		{"ops", "+*/^,:=!", []Token{
			tk(TokenPlus, "", "+", 1), tk(TokenMul, "", "*", 2), tk(TokenDiv, "", "/", 3),
			tk(TokenPow, "", "^", 4), tk(TokenComma, "", ",", 5), tk(TokenColon, "", ":", 6),
			tk(TokenEquals, "", "=", 7), tk(TokenBang, "", "!", 8),
		}},
		{"unknown", "@", []Token{tk(TokenUnknown, "", "@", 1)}},
		{"unknown-unicode", "π1", []Token{tk(TokenUnknown, "", "π", 1), tk(TokenInt, "1", "1", 2)}},
		// combinations
		{"formula", "$H2O", []Token{
			tk(TokenCash, "", "$", 1), tk(TokenIdent, "H", "H", 2),
			tk(TokenInt, "2", "2", 3), tk(TokenIdent, "O", "O", 4),
		}},
		{"syntax", "ion!{SO4}", []Token{
			tk(TokenIdent, "ion", "ion", 1), tk(TokenBang, "", "!", 4), tk(TokenLCurly, "", "{", 5),
			tk(TokenIdent, "S", "S", 6), tk(TokenIdent, "O", "O", 7), tk(TokenInt, "4", "4", 8),
			tk(TokenRCurly, "", "}", 9),
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Tokenize(c.src)
			if diff := cmp.Diff(c.tokens, got); diff != "" {
				t.Errorf("scanning %q: wrong tokens (-want +got):\n%s", c.src, diff)
			}
		})
	}
}

func TestLexLongestMatch(t *testing.T) {
	// - and -> share a prefix, as do $ and $$.
	cases := []struct {
		src  string
		kind TokenKind
	}{
		{"->", TokenArrow},
		{"-", TokenMinus},
		{"-x", TokenMinus},
		{"$$", TokenCashCash},
		{"$H", TokenCash},
		{"...", TokenEllipsis},
		{".", TokenDot},
	}
	for _, c := range cases {
		toks := Tokenize(c.src)
		if len(toks) == 0 || toks[0].Kind != c.kind {
			t.Errorf("%q: want first token %v, got %v", c.src, c.kind, toks)
		}
	}
}

func TestLexRoundTrip(t *testing.T) {
	cases := []string{
		"",
		"$H2O + $O2 -> 2 'water",
		"ion!{SO4-2}",
		"  (a,b , c)\n\t",
		`"unterminated`,
		"#1.5e-3 1.5e 1..2...3",
		"@@ 'π ''' ## $$$",
		"€∑∂ƒ©˙∆˚¬",
	}
	for _, src := range cases {
		var b strings.Builder
		for _, tok := range Tokenize(src) {
			b.WriteString(tok.Src)
		}
		if b.String() != src {
			t.Errorf("round trip of %q gave %q", src, b.String())
		}
	}
}

func TestLexPositions(t *testing.T) {
	// Positions count runes, not bytes.
	toks := Tokenize("π π")
	want := []int{1, 2, 3}
	if len(toks) != len(want) {
		t.Fatalf("wrong tokens: %v", toks)
	}
	for i, tok := range toks {
		if tok.Pos != want[i] {
			t.Errorf("token %d %v: want pos %d", i, tok, want[i])
		}
	}
}

type errReader struct {
	s   *strings.Reader
	err error
}

func (r *errReader) ReadRune() (rune, int, error) {
	c, n, err := r.s.ReadRune()
	if errors.Is(err, io.EOF) {
		return 0, 0, r.err
	}
	return c, n, err
}

func TestLexErr(t *testing.T) {
	bad := errors.New("bad")
	scan := Lex(&errReader{s: strings.NewReader("ab"), err: bad})
	tok, ok := scan.Next()
	if !ok || tok.Text != "ab" {
		t.Errorf("wrong first token %v", tok)
	}
	if tok, ok := scan.Next(); ok {
		t.Errorf("unexpected token %v", tok)
	}
	if !errors.Is(scan.Err(), bad) {
		t.Errorf("wrong error: want %v, got %v", bad, scan.Err())
	}
	scan = Lex(strings.NewReader("ab"))
	for _, ok := scan.Next(); ok; _, ok = scan.Next() {
	}
	if scan.Err() != nil {
		t.Errorf("EOF reported as error: %v", scan.Err())
	}
}

func FuzzLexRoundTrip(f *testing.F) {
	f.Add("$H2O")
	f.Add("'a-b #1.5e3 \"s\"")
	f.Add("->...$$")
	f.Fuzz(func(t *testing.T, s string) {
		var b strings.Builder
		for _, tok := range Tokenize(s) {
			if tok.Src == "" {
				t.Fatalf("empty token %v in %q", tok, s)
			}
			b.WriteString(tok.Src)
		}
		if b.String() != s && strings.ToValidUTF8(s, "�") == s {
			t.Errorf("round trip of %q gave %q", s, b.String())
		}
	})
}
