package calc

import (
	"fmt"

	"github.com/npillmayer/lrcalc"
)

// Token types of the calculator language.
const (
	Integer lrcalc.TokType = iota + 1
	Float
	Exponential
	Binary
	Hex
	String
	Ident       // identifier, before being classified
	ConstantKey // identifier denoting a constant
	FunctionKey // identifier denoting a function
	ErrorToken  // unknown identifier
	TermOp      // + -
	FactorOp    // * / %
	ExponentOp  // ^ **
	ShiftOp     // << >>
	AndOp       // &
	OrOp        // |
	TildeOp     // ~
	OpenParen
	CloseParen
	Comma
)

var tokenNames = map[lrcalc.TokType]string{
	Integer:     "INTEGER",
	Float:       "FLOAT",
	Exponential: "EXPONENTIAL",
	Binary:      "BINARY",
	Hex:         "HEX",
	String:      "STRING",
	Ident:       "IDENTIFIER",
	ConstantKey: "CONSTANT_KEY",
	FunctionKey: "FUNCTION_KEY",
	ErrorToken:  "ERROR",
	TermOp:      "TERM_OP",
	FactorOp:    "FACTOR_OP",
	ExponentOp:  "EXPONENT_OP",
	ShiftOp:     "SHIFT_OP",
	AndOp:       "AND_OP",
	OrOp:        "OR_OP",
	TildeOp:     "TILDE_OP",
	OpenParen:   "OPEN_PAREN",
	CloseParen:  "CLOSE_PAREN",
	Comma:       "COMMA",
}

// TokenName is a lrcalc.TokTypeStringer for calculator tokens.
func TokenName(t lrcalc.TokType) string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	if t < 0 {
		return "EOF"
	}
	return fmt.Sprintf("TOKEN(%d)", int(t))
}

var _ lrcalc.TokTypeStringer = TokenName

// Token is a token of the calculator language. Depth is the number of
// parentheses enclosing the token; parentheses themselves are at the depth
// of their enclosing expression. Synthetic tokens have been inserted for
// balancing parentheses.
type Token struct {
	Type      lrcalc.TokType
	Text      string
	Depth     int
	Synthetic bool
	span      lrcalc.Span
}

var _ lrcalc.Token = (*Token)(nil)

// TokType is part of interface lrcalc.Token.
func (t *Token) TokType() lrcalc.TokType {
	return t.Type
}

// Lexeme is part of interface lrcalc.Token.
func (t *Token) Lexeme() string {
	return t.Text
}

// Value is part of interface lrcalc.Token. Values of calculator tokens are
// computed by the reducers of the grammar, thus Value returns nil.
func (t *Token) Value() interface{} {
	return nil
}

// Span is part of interface lrcalc.Token.
func (t *Token) Span() lrcalc.Span {
	return t.span
}

func (t *Token) String() string {
	s := fmt.Sprintf("[%s %q d=%d]", TokenName(t.Type), t.Text, t.Depth)
	if t.Synthetic {
		s += "*"
	}
	return s
}
