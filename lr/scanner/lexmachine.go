package scanner

import (
	"fmt"
	"strings"

	"github.com/npillmayer/lrcalc"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter. It receives a list of
// literals ('[', ';', …), a list of keywords ("if", "for", …) and a
// map for translating token strings to their values.
//
// lexmachine resolves ambiguous matches by taking the longest match first,
// then the pattern added first. Patterns added by init therefore take
// precedence over literals and keywords of equal length.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string, tokenIds map[string]int) (*LMAdapter, error) {
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	init(adapter.Lexer)
	for _, lit := range literals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		adapter.Lexer.Add([]byte(r), MakeToken(lit, tokenIds[lit]))
	}
	for _, name := range keywords {
		adapter.Lexer.Add([]byte(strings.ToLower(name)), MakeToken(name, tokenIds[name]))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{scanner: s, input: input, Error: logError}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	input   string
	Error   func(error)
}

var _ Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// UnmatchedInputError is reported to the error handler for input no pattern
// of the lexer accepts. Scanning resumes behind the offending character.
type UnmatchedInputError struct {
	Char rune   // the first character not accepted
	Pos  uint64 // its byte position
}

func (e *UnmatchedInputError) Error() string {
	return fmt.Sprintf("unrecognized character %q at position %d", e.Char, e.Pos)
}

// NextToken is part of the Tokenizer interface.
func (lms *LMScanner) NextToken() lrcalc.Token {
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		if ui, is := err.(*machines.UnconsumedInput); is {
			pos := ui.StartTC
			r := []rune(lms.input[pos:])[0]
			lms.Error(&UnmatchedInputError{Char: r, Pos: uint64(pos)})
			lms.scanner.TC = pos + len(string(r))
		} else {
			lms.Error(err)
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		end := uint64(len(lms.input))
		return DefaultToken{kind: EOF, lexeme: "", span: lrcalc.Span{end, end}}
	}
	token := tok.(*lexmachine.Token)
	tracer().Debugf("lexmachine token %q/%d at %d", token.Lexeme, token.Type, token.TC)
	from := uint64(token.TC)
	return DefaultToken{
		kind:   lrcalc.TokType(token.Type),
		lexeme: string(token.Lexeme),
		span:   lrcalc.Span{from, from + uint64(len(token.Lexeme))},
	}
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}
