package lrcalc

import "fmt"

// --- Tokens ----------------------------------------------------------------

// TokType is a category type for a Token, i.e. a terminal of a grammar.
// Constants are defined by the languages built on top of this module.
type TokType int

// TokTypeStringer is a type to be provided by a tokenizer to be able
// to print out token categories.
type TokTypeStringer func(TokType) string

// Tokens represent input tokens. They are produced by a tokenizer and
// reflect terminals in a language.
//
// An example would be a token for a hexadecimal number:
//
//    TokType = Hex         // identifier for this kind of tokens (application specific)
//    Lexeme  = "0x1F"      // lexeme how it appeared in the input
//    Value   = nil         // computed by a reducer of the grammar
//    Span    = 4…8         // occured from position 4 in the input
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input token run. For every
// terminal and non-terminal, a parse tree will track which input positions
// this symbol covers. A span denotes a start position and the position just
// behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering s and other. A null span is neutral.
func (s Span) Extend(other Span) Span {
	if s.IsNull() {
		return other
	}
	if other.IsNull() {
		return s
	}
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
