package calc

import (
	"sync"

	"github.com/npillmayer/lrcalc"
	"github.com/npillmayer/lrcalc/lr/scanner"
	"github.com/timtadh/lexmachine"
)

var operators = map[string]lrcalc.TokType{
	"+":  TermOp,
	"-":  TermOp,
	"*":  FactorOp,
	"/":  FactorOp,
	"%":  FactorOp,
	"^":  ExponentOp,
	"**": ExponentOp,
	"<<": ShiftOp,
	">>": ShiftOp,
	"&":  AndOp,
	"|":  OrOp,
	"~":  TildeOp,
	"(":  OpenParen,
	")":  CloseParen,
	",":  Comma,
}

var (
	lexerOnce sync.Once
	lexer     *scanner.LMAdapter
)

func initTokens(lx *lexmachine.Lexer) {
	lx.Add([]byte(`( |\t|\n|\r)+`), scanner.Skip)
	lx.Add([]byte(`0(b|B)(0|1)+`), scanner.MakeToken("binary", int(Binary)))
	lx.Add([]byte(`0(x|X)([0-9]|[a-f]|[A-F])+`), scanner.MakeToken("hex", int(Hex)))
	lx.Add([]byte(`([0-9]+(\.[0-9]*)?|\.[0-9]+)(e|E)(\+|\-)?[0-9]+`), scanner.MakeToken("exponential", int(Exponential)))
	lx.Add([]byte(`[0-9]+\.[0-9]*|\.[0-9]+`), scanner.MakeToken("float", int(Float)))
	lx.Add([]byte(`[0-9]+`), scanner.MakeToken("integer", int(Integer)))
	lx.Add([]byte(`"(\\.|[^"\\])*"`), scanner.MakeToken("string", int(String)))
	lx.Add([]byte(`'(\\.|[^'\\])*'`), scanner.MakeToken("string", int(String)))
	lx.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`), scanner.MakeToken("identifier", int(Ident)))
}

// calcLexer returns the lexer for the calculator language, compiling its
// DFA on first use.
func calcLexer() *scanner.LMAdapter {
	lexerOnce.Do(func() {
		literals := make([]string, 0, len(operators))
		ids := make(map[string]int, len(operators))
		for op, tt := range operators {
			literals = append(literals, op)
			ids[op] = int(tt)
		}
		var err error
		if lexer, err = scanner.NewLMAdapter(initTokens, literals, nil, ids); err != nil {
			panic(err) // patterns are fixed
		}
	})
	return lexer
}

// Tokenize splits an input string into tokens of the calculator language.
//
// Identifiers are classified with the help of reg: an identifier naming a
// function becomes a FunctionKey if it is followed by an opening parenthesis
// or does not name a constant as well; otherwise an identifier naming a
// constant becomes a ConstantKey. Any other identifier fails tokenizing.
// reg may be nil, leaving every identifier unknown.
//
// Unbalanced parentheses are balanced by synthetic tokens, see package doc.
// Tokenize returns an error of kind lrcalc.InvalidToken for the first
// unrecognized character or unknown identifier.
func Tokenize(input string, reg lrcalc.Registry) ([]*Token, error) {
	scan, err := calcLexer().Scanner(input)
	if err != nil {
		return nil, lrcalc.Errorf(lrcalc.InvalidToken, "%v", err)
	}
	var scanErr error
	scan.SetErrorHandler(func(e error) {
		if scanErr == nil {
			scanErr = e
		}
	})
	var tokens []*Token
	for {
		t := scan.NextToken()
		if t.TokType() == scanner.EOF {
			break
		}
		tokens = append(tokens, &Token{Type: t.TokType(), Text: t.Lexeme(), span: t.Span()})
	}
	if scanErr != nil {
		if u, ok := scanErr.(*scanner.UnmatchedInputError); ok {
			span := lrcalc.Span{u.Pos, u.Pos + uint64(len(string(u.Char)))}
			return nil, lrcalc.ErrorAt(lrcalc.InvalidToken, span, "unrecognized character %q", u.Char)
		}
		return nil, lrcalc.Errorf(lrcalc.InvalidToken, "%v", scanErr)
	}
	classify(tokens, reg)
	for _, t := range tokens {
		if t.Type == ErrorToken {
			return nil, lrcalc.ErrorAt(lrcalc.InvalidToken, t.span, "unknown identifier %q", t.Text)
		}
	}
	tokens = balance(tokens)
	tracer().Debugf("tokens = %v", tokens)
	return tokens, nil
}

func classify(tokens []*Token, reg lrcalc.Registry) {
	for i, t := range tokens {
		if t.Type != Ident {
			continue
		}
		isFunc, isConst := false, false
		if reg != nil {
			_, isFunc = reg.LookupFunction(t.Text)
			_, isConst = reg.LookupConstant(t.Text)
		}
		call := i+1 < len(tokens) && tokens[i+1].Type == OpenParen
		switch {
		case isFunc && (call || !isConst):
			t.Type = FunctionKey
		case isConst:
			t.Type = ConstantKey
		default:
			t.Type = ErrorToken
		}
	}
}

// balance inserts synthetic parentheses: opening ones in front of the input
// for every closing parenthesis without a partner, closing ones at the end
// of the input for every unclosed parenthesis. Afterwards it sets the nesting
// depth of every token.
func balance(tokens []*Token) []*Token {
	depth, min := 0, 0
	for _, t := range tokens {
		switch t.Type {
		case OpenParen:
			depth++
		case CloseParen:
			depth--
			if depth < min {
				min = depth
			}
		}
	}
	if min < 0 || depth > min {
		var start, end uint64
		if len(tokens) > 0 {
			start, end = tokens[0].span.From(), tokens[len(tokens)-1].span.To()
		}
		balanced := make([]*Token, 0, len(tokens)-min+depth-min)
		for i := 0; i < -min; i++ {
			balanced = append(balanced, synthetic(OpenParen, "(", start))
		}
		balanced = append(balanced, tokens...)
		for i := 0; i < depth-min; i++ {
			balanced = append(balanced, synthetic(CloseParen, ")", end))
		}
		tracer().Debugf("inserted %d opening and %d closing parentheses", -min, depth-min)
		tokens = balanced
	}
	depth = 0
	for _, t := range tokens {
		if t.Type == CloseParen {
			depth--
		}
		t.Depth = depth
		if t.Type == OpenParen {
			depth++
		}
	}
	return tokens
}

func synthetic(tt lrcalc.TokType, text string, pos uint64) *Token {
	return &Token{Type: tt, Text: text, Synthetic: true, span: lrcalc.Span{pos, pos}}
}
