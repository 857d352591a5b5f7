package chemexpr

import "strconv"

// NoTokensError is an error indicating that the input contained no
// expression at all. It implements ParseError.
type NoTokensError struct {
	// Col is the position just past the end of the input.
	Col int
}

func (err *NoTokensError) Error() string {
	return errpos(err.Col, "no expression")
}

func (err *NoTokensError) Pos() int {
	return err.Col
}

// UnexpectedTokenError is an error indicating a token that no builder could
// accept. It implements ParseError.
type UnexpectedTokenError struct {
	// Token is the rejected token.
	Token Token
}

func (err *UnexpectedTokenError) Error() string {
	return errpos(err.Token.Pos, "unexpected "+err.Token.Kind.String()+" token "+strconv.Quote(err.Token.Src))
}

func (err *UnexpectedTokenError) Pos() int {
	return err.Token.Pos
}

// ExpectedTokensError is an error indicating that the input ended while an
// expression still needed more tokens. It implements ParseError.
type ExpectedTokensError struct {
	// Col is the position just past the end of the input.
	Col int
	// Want describes what was missing, e.g. ")".
	Want string
}

func (err *ExpectedTokensError) Error() string {
	return errpos(err.Col, "expected "+err.Want+" before end of input")
}

func (err *ExpectedTokensError) Pos() int {
	return err.Col
}

// UnsupportedSyntaxError is an error indicating syntax that is recognized but
// has no builder, e.g. a special syntax name that is not registered.
// It implements ParseError.
type UnsupportedSyntaxError struct {
	// Col is the position of the token that introduced the syntax.
	Col int
	// Syntax names the unsupported syntax.
	Syntax string
}

func (err *UnsupportedSyntaxError) Error() string {
	return errpos(err.Col, "unsupported syntax "+strconv.Quote(err.Syntax))
}

func (err *UnsupportedSyntaxError) Pos() int {
	return err.Col
}

// NumberError is an error indicating a numeric literal that cannot be
// represented: an integer that does not fit in an unsigned 64-bit integer, or
// a real whose exponent is out of range. It implements ParseError and unwraps
// to the conversion error.
type NumberError struct {
	// Token is the numeric token.
	Token Token
	// Err is the conversion error.
	Err error
}

func (err *NumberError) Error() string {
	return errpos(err.Token.Pos, "invalid number "+err.Token.Text+": "+err.Err.Error())
}

func (err *NumberError) Pos() int {
	return err.Token.Pos
}

func (err *NumberError) Unwrap() error {
	return err.Err
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// ParseError is an error with position information. Every error resulting
// from invalid input to Parse implements ParseError.
type ParseError interface {
	error
	// Pos returns the position of the error as the 1-based rune column of the
	// token that caused it, or just past the end of input for errors about
	// missing tokens.
	Pos() int
}

var (
	_ ParseError = (*NoTokensError)(nil)
	_ ParseError = (*UnexpectedTokenError)(nil)
	_ ParseError = (*ExpectedTokensError)(nil)
	_ ParseError = (*UnsupportedSyntaxError)(nil)
	_ ParseError = (*NumberError)(nil)
)
