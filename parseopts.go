package chemexpr

import "strconv"

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	syntaxopt struct {
		name string
		kind SyntaxKind
	}
	syntaxesopt map[string]SyntaxKind
)

// parsectx holds general data for parsing. It is also a ParseOption.
type parsectx struct {
	// syntaxes maps special syntax names to the kind of body they parse.
	// Names mapped to syntaxNone are disabled.
	syntaxes map[string]SyntaxKind
	// shared indicates that syntaxes belongs to a preset and must be copied
	// before it is modified.
	shared bool
}

func (p *parsectx) setSyntax(name string, kind SyntaxKind) {
	if p.syntaxes == nil || p.shared {
		m := make(map[string]SyntaxKind, len(p.syntaxes)+1)
		for k, v := range p.syntaxes {
			m[k] = v
		}
		p.syntaxes = m
		p.shared = false
	}
	p.syntaxes[name] = kind
}

// syntax returns the kind of body parsed by the special syntax name.
func (p *parsectx) syntax(name string) SyntaxKind {
	return p.syntaxes[name]
}

// WithSyntax registers a special syntax block name!{...} whose body is parsed
// according to kind. Registering a name with SyntaxNone disables it.
func WithSyntax(name string, kind SyntaxKind) ParseOption {
	switch kind {
	case SyntaxNone, SyntaxExpr, SyntaxFormula:
	default:
		panic("chemexpr: invalid syntax kind " + strconv.Itoa(int(kind)))
	}
	return &syntaxopt{name, kind}
}

func (o *syntaxopt) parseOption(p parsectx) parsectx {
	p.setSyntax(o.name, o.kind)
	return p
}

// WithSyntaxes registers a group of special syntax names at once.
func WithSyntaxes(syntaxes map[string]SyntaxKind) ParseOption {
	for _, kind := range syntaxes {
		switch kind {
		case SyntaxNone, SyntaxExpr, SyntaxFormula:
		default:
			panic("chemexpr: invalid syntax kind " + strconv.Itoa(int(kind)))
		}
	}
	return syntaxesopt(syntaxes)
}

func (o syntaxesopt) parseOption(p parsectx) parsectx {
	for k, v := range o {
		p.setSyntax(k, v)
	}
	return p
}

// NoSyntax disables a special syntax name. Blocks using it fail to parse with
// an UnsupportedSyntaxError.
func NoSyntax(name string) ParseOption {
	return &syntaxopt{name, SyntaxNone}
}

// ParsingPreset creates a parsing preset that may be more efficient when using
// the same options for many calls to Parse. A preset panics when it is applied
// after any other option, but it is safe to apply other options after a
// preset.
func ParsingPreset(opts ...ParseOption) ParseOption {
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	return &p
}

func (o *parsectx) parseOption(p parsectx) parsectx {
	if p.syntaxes != nil {
		panic("chemexpr: preset applied to non-default parse config")
	}
	p.syntaxes = o.syntaxes
	p.shared = true
	return p
}

func newparsectx(opts []ParseOption) parsectx {
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	return p
}
