package chemexpr

import (
	"strings"

	"github.com/golang/glog"
)

// Session evaluates one input unit at a time against a dictionary that lives
// across units. A failed unit leaves the dictionary unchanged.
type Session struct {
	dict *Dictionary
	opts []ParseOption
}

// NewSession creates a session evaluating with d. The parse options apply to
// every unit.
func NewSession(d *Dictionary, opts ...ParseOption) *Session {
	if len(opts) > 1 {
		opts = []ParseOption{ParsingPreset(opts...)}
	}
	return &Session{dict: d, opts: opts}
}

// Dictionary returns the session's dictionary.
func (s *Session) Dictionary() *Dictionary {
	return s.dict
}

// Parse parses an expression with the session's options.
func (s *Session) Parse(src string) (*Expr, error) {
	e, err := ParseString(src, s.opts...)
	if err != nil {
		glog.V(1).Infof("parse %q: %v", src, err)
		return nil, err
	}
	glog.V(2).Infof("parsed %q as %v", src, e)
	return e, nil
}

// Run parses and evaluates one expression.
func (s *Session) Run(src string) (Value, error) {
	e, err := s.Parse(src)
	if err != nil {
		return Value{}, err
	}
	v, err := s.dict.Eval(e)
	if err != nil {
		glog.V(1).Infof("eval %v: %v", e, err)
		return Value{}, err
	}
	return v, nil
}

// Assign parses and evaluates an expression and stores its value under name.
// The dictionary is held exclusively from evaluation through the store, so no
// other change can intervene.
func (s *Session) Assign(name, src string) error {
	e, err := s.Parse(src)
	if err != nil {
		return err
	}
	s.dict.mu.Lock()
	defer s.dict.mu.Unlock()
	v, err := e.n.eval(s.dict)
	if err != nil {
		glog.V(1).Infof("eval %v: %v", e, err)
		return err
	}
	s.dict.set(name, v)
	glog.V(1).Infof("%s = %v", name, v)
	return nil
}

// Exec runs one line of input. A line of the form name = expr assigns the
// value of expr to name and returns name; any other line is evaluated with
// Run and the returned name is empty.
func (s *Session) Exec(line string) (string, Value, error) {
	name, rest, ok := SplitAssignment(line)
	if !ok {
		v, err := s.Run(line)
		return "", v, err
	}
	if err := s.Assign(name, rest); err != nil {
		return name, Value{}, err
	}
	v, err := s.dict.Get(name)
	return name, v, err
}

// SplitAssignment splits a line of the form name = expr into the name and the
// source of the expression. The result is false if the line does not start
// with an identifier followed by =.
func SplitAssignment(line string) (name, rest string, ok bool) {
	t := Lex(strings.NewReader(line))
	toks := NewLookahead(t.Next)
	off := 0
	next := func(kind TokenKind) (Token, bool) {
		tok, ok := toks.NextIf(func(tok Token) bool { return tok.Kind == kind })
		off += len(tok.Src)
		return tok, ok
	}
	next(TokenSpace)
	id, ok := next(TokenIdent)
	if !ok {
		return "", "", false
	}
	next(TokenSpace)
	if _, ok := next(TokenEquals); !ok {
		return "", "", false
	}
	return id.Text, line[off:], true
}
