package chemexpr

import "strconv"

// SyntaxKind selects how the body of a special syntax block name!{...} is
// parsed. No names are registered by default; see WithSyntax.
type SyntaxKind int8

const (
	// SyntaxNone marks a name as not being special syntax.
	SyntaxNone SyntaxKind = iota
	// SyntaxExpr parses the body as any expression, including infix chains.
	SyntaxExpr
	// SyntaxFormula parses the body as a molecular formula written without
	// its leading $, e.g. ion!{SO4-2}.
	SyntaxFormula
)

func (k SyntaxKind) String() string {
	switch k {
	case SyntaxNone:
		return "none"
	case SyntaxExpr:
		return "expr"
	case SyntaxFormula:
		return "formula"
	default:
		return "SyntaxKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// ParseSyntaxKind converts the name of a SyntaxKind, as returned by String,
// back to the kind.
func ParseSyntaxKind(s string) (SyntaxKind, bool) {
	switch s {
	case "none":
		return SyntaxNone, true
	case "expr":
		return SyntaxExpr, true
	case "formula":
		return SyntaxFormula, true
	default:
		return SyntaxNone, false
	}
}

// syntaxBody creates the builder for the body of a special syntax block.
func syntaxBody(kind SyntaxKind) *builder {
	switch kind {
	case SyntaxExpr:
		return &builder{kind: buildWrapper}
	case SyntaxFormula:
		return &builder{kind: buildFormula, bare: true}
	default:
		panic("chemexpr: no body for syntax kind " + kind.String())
	}
}
