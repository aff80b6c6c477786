/*
Package scanner defines an interface for scanners to be used with parsers of package lr.

Three implementations are provided: (1) a thin wrapper over the Go std lib
'text/scanner', (2) an adapter for lexmachine, and (3) a tokenizer replaying a
pre-scanned slice of tokens.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"io"
	"text/scanner"

	"github.com/npillmayer/lrcalc"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrcalc.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lrcalc.scanner")
}

// EOF is identical to text/scanner.EOF.
// Token types are replicated here for practical reasons.
const (
	EOF       = scanner.EOF
	Ident     = scanner.Ident
	Int       = scanner.Int
	Float     = scanner.Float
	Char      = scanner.Char
	String    = scanner.String
	RawString = scanner.RawString
	Comment   = scanner.Comment
)

// Tokenizer is a scanner interface. After the input is exhausted, NextToken
// returns tokens of type EOF.
type Tokenizer interface {
	NextToken() lrcalc.Token
	SetErrorHandler(func(error))
}

// DefaultTokenizer is a default implementation, backed by scanner.Scanner.
// Create one with GoTokenizer.
type DefaultTokenizer struct {
	scanner.Scanner
	lastToken    rune        // last token this scanner has produced
	Error        func(error) // error handler
	unifyStrings bool        // convert single chars to strings
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// GoTokenizer creates a scanner/tokenizer accepting tokens similar to the Go language.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{}
	t.Error = logError
	t.Init(input)
	t.Filename = sourceID
	t.Scanner.Error = func(s *scanner.Scanner, msg string) {
		t.Error(fmt.Errorf("%s: %s", s.Position, msg))
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *DefaultTokenizer) NextToken() lrcalc.Token {
	t.lastToken = t.Scan()
	if t.lastToken == scanner.EOF {
		tracer().Debugf("DefaultTokenizer reached end of input")
	}
	if t.unifyStrings &&
		(t.lastToken == scanner.RawString || t.lastToken == scanner.Char) {
		t.lastToken = scanner.String
	}
	return DefaultToken{
		kind:   lrcalc.TokType(t.lastToken),
		lexeme: t.TokenText(),
		span:   lrcalc.Span{uint64(t.Position.Offset), uint64(t.Pos().Offset)},
	}
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for the Go
// tokenizer as well as the LexMachine scanner.
type DefaultToken struct {
	kind   lrcalc.TokType
	lexeme string
	Val    interface{}
	span   lrcalc.Span
}

// MakeDefaultToken creates a token from its parts.
func MakeDefaultToken(typ lrcalc.TokType, lexeme string, span lrcalc.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

func (t DefaultToken) TokType() lrcalc.TokType {
	return t.kind
}

func (t DefaultToken) Value() interface{} {
	return t.Val
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() lrcalc.Span {
	return t.span
}

func (t DefaultToken) String() string {
	return fmt.Sprintf("%q/%d%s", t.lexeme, t.kind, t.span)
}

// --- Scanner options for the default (Go) tokenizer ---------------------------

// Option configures a default tokenizer.
type Option func(p *DefaultTokenizer)

// SkipComments sets or clears mode-flag SkipComments.
func SkipComments(b bool) Option {
	return func(t *DefaultTokenizer) {
		if b {
			t.Mode |= scanner.SkipComments
		} else {
			t.Mode &^= scanner.SkipComments
		}
	}
}

// UnifyStrings sets or clears option UnifyStrings:
// treat raw strings and single chars as strings.
func UnifyStrings(b bool) Option {
	return func(t *DefaultTokenizer) {
		t.unifyStrings = b
	}
}

// --- Replaying tokens ------------------------------------------------------

// SliceTokenizer hands out a pre-scanned sequence of tokens. Create one with
// FromTokens.
type SliceTokenizer struct {
	tokens []lrcalc.Token
	pos    int
}

var _ Tokenizer = (*SliceTokenizer)(nil)

// FromTokens creates a tokenizer over a slice of tokens. The slice should not
// contain an EOF token; it is appended implicitly.
func FromTokens(tokens []lrcalc.Token) *SliceTokenizer {
	return &SliceTokenizer{tokens: tokens}
}

// NextToken is part of the Tokenizer interface.
func (st *SliceTokenizer) NextToken() lrcalc.Token {
	if st.pos >= len(st.tokens) {
		var end uint64
		if len(st.tokens) > 0 {
			end = st.tokens[len(st.tokens)-1].Span().To()
		}
		return DefaultToken{kind: EOF, span: lrcalc.Span{end, end}}
	}
	tok := st.tokens[st.pos]
	st.pos++
	return tok
}

// SetErrorHandler is part of the Tokenizer interface. A slice tokenizer
// never reports errors.
func (st *SliceTokenizer) SetErrorHandler(func(error)) {}

// Lexeme is a helper function to receive a string from a token.
func Lexeme(token interface{}) string {
	switch t := token.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case lrcalc.Token:
		return t.Lexeme()
	default:
		return fmt.Sprintf("%v", t)
	}
}
