package calc

import (
	"errors"
	"math/big"
	"strconv"
	"strings"
	"sync"

	"github.com/npillmayer/lrcalc"
	"github.com/npillmayer/lrcalc/lr"
)

// GrammarVersion is the version tag of the calculator grammar. Bump it
// whenever reducers change semantics without changing rules.
const GrammarVersion = "1.0"

var (
	grammarOnce sync.Once
	calcGrammar *lr.Grammar
)

// Grammar returns the grammar of the calculator language. It is built on
// first use and shared afterwards.
func Grammar() *lr.Grammar {
	grammarOnce.Do(func() {
		var err error
		if calcGrammar, err = makeGrammar(); err != nil {
			panic(err)
		}
	})
	return calcGrammar
}

// Table returns the LALR parser table for the calculator grammar.
func Table() *lr.Table {
	return lr.CachedTable(Grammar())
}

func tok(tt lrcalc.TokType) (string, int) {
	return TokenName(tt), int(tt)
}

func makeGrammar() (*lr.Grammar, error) {
	b := lr.NewGrammarBuilder("calc").Version(GrammarVersion)
	b.LHS("Sentence").N("Expression").End()
	// binary operators, lowest precedence first
	levels := []struct {
		lhs, next string
		op        lrcalc.TokType
	}{
		{"Expression", "XorTerm", OrOp},
		{"XorTerm", "AndTerm", TildeOp},
		{"AndTerm", "ShiftTerm", AndOp},
		{"ShiftTerm", "Sum", ShiftOp},
		{"Sum", "Product", TermOp},
		{"Product", "Power", FactorOp},
	}
	for _, l := range levels {
		b.LHS(l.lhs).N(l.lhs).T(tok(l.op)).N(l.next).Reduce(binary)
		b.LHS(l.lhs).N(l.next).End()
	}
	b.LHS("Power").N("Signed").T(tok(ExponentOp)).N("Power").Reduce(binary)
	b.LHS("Power").N("Signed").End()
	b.LHS("Signed").N("Operand").End()
	b.LHS("Signed").T(tok(TermOp)).N("Operand").Reduce(prefix)
	b.LHS("Signed").T(tok(TildeOp)).N("Operand").Reduce(prefix)
	for _, op := range []string{"Number", "Constant", "Function", "Paren", "StringLit"} {
		b.LHS("Operand").N(op).End()
	}
	b.LHS("Operand").N("Number").N("Constant").Reduce(implicit)
	b.LHS("Operand").N("Number").N("Function").Reduce(implicit)
	b.LHS("Operand").N("Number").N("Paren").Reduce(implicit)
	b.LHS("Operand").N("Paren").N("Constant").Reduce(implicit)
	b.LHS("Operand").N("Paren").N("Function").Reduce(implicit)
	b.LHS("Operand").N("Paren").N("Paren").Reduce(implicit)
	b.LHS("Function").N("FuncLit").N("FuncTail").Reduce(call)
	b.LHS("Function").N("FuncLit").N("Args").N("FuncTail").Reduce(call)
	b.LHS("FuncLit").T(tok(FunctionKey)).T(tok(OpenParen)).End()
	b.LHS("FuncTail").T(tok(CloseParen)).End()
	b.LHS("FuncTail").T(tok(Comma)).T(tok(CloseParen)).End()
	b.LHS("Args").N("Expression").Reduce(firstArg)
	b.LHS("Args").N("Args").T(tok(Comma)).N("Expression").Reduce(nextArg)
	b.LHS("Paren").T(tok(OpenParen)).N("Expression").T(tok(CloseParen)).Reduce(inner)
	for _, tt := range []lrcalc.TokType{Binary, Hex, Exponential, Float, Integer} {
		b.LHS("Number").T(tok(tt)).Reduce(number)
	}
	b.LHS("Constant").T(tok(ConstantKey)).Reduce(constant)
	b.LHS("StringLit").T(tok(String)).Reduce(unquote)
	return b.Grammar()
}

// --- Reducers --------------------------------------------------------------

// located sets the span of an operator failure, if it has none.
func located(err error, span lrcalc.Span) error {
	if e, ok := err.(*lrcalc.Error); ok && e.Span.IsNull() {
		e.Span = span
	}
	return err
}

func binary(rhs []*lr.Node, reg lrcalc.Registry) (lrcalc.Value, error) {
	op := rhs[1].Lexeme()
	f, ok := binaryOps[op]
	if !ok {
		return lrcalc.Value{}, lrcalc.ErrorAt(lrcalc.InvalidToken, rhs[1].Span, "unknown operator %q", op)
	}
	v, err := f(rhs[0].Value, rhs[2].Value)
	if err != nil {
		return v, located(err, rhs[1].Span)
	}
	return v, nil
}

func prefix(rhs []*lr.Node, reg lrcalc.Registry) (lrcalc.Value, error) {
	v, err := unary(rhs[0].Lexeme(), rhs[1].Value)
	if err != nil {
		return v, located(err, rhs[0].Span)
	}
	return v, nil
}

func implicit(rhs []*lr.Node, reg lrcalc.Registry) (lrcalc.Value, error) {
	v, err := multiply(rhs[0].Value, rhs[1].Value)
	if err != nil {
		return v, located(err, rhs[0].Span.Extend(rhs[1].Span))
	}
	return v, nil
}

func call(rhs []*lr.Node, reg lrcalc.Registry) (lrcalc.Value, error) {
	name, _ := rhs[0].Value.Text()
	if reg == nil {
		return lrcalc.Value{}, lrcalc.ErrorAt(lrcalc.UnknownIdentifier, rhs[0].Span, "no function %q", name)
	}
	f, ok := reg.LookupFunction(name)
	if !ok {
		return lrcalc.Value{}, lrcalc.ErrorAt(lrcalc.UnknownIdentifier, rhs[0].Span, "no function %q", name)
	}
	var args []lrcalc.Value
	if len(rhs) == 3 {
		args = rhs[1].Value.Elements()
	}
	tracer().Debugf("call %s%v", name, args)
	return f.Call(args)
}

func firstArg(rhs []*lr.Node, reg lrcalc.Registry) (lrcalc.Value, error) {
	return lrcalc.List(rhs[0].Value), nil
}

func nextArg(rhs []*lr.Node, reg lrcalc.Registry) (lrcalc.Value, error) {
	return rhs[0].Value.Append(rhs[2].Value), nil
}

func inner(rhs []*lr.Node, reg lrcalc.Registry) (lrcalc.Value, error) {
	return rhs[1].Value, nil
}

func number(rhs []*lr.Node, reg lrcalc.Registry) (lrcalc.Value, error) {
	lexeme := rhs[0].Lexeme()
	var x float64
	var err error
	switch rhs[0].Symbol.TokenType() {
	case Binary:
		x, err = parseRadix(lexeme[2:], 2)
	case Hex:
		x, err = parseRadix(lexeme[2:], 16)
	default:
		x, err = strconv.ParseFloat(lexeme, 64)
		if errors.Is(err, strconv.ErrRange) {
			err = nil // x is ±Inf or 0
		}
	}
	if err != nil {
		return lrcalc.Value{}, lrcalc.ErrorAt(lrcalc.InvalidToken, rhs[0].Span, "malformed number %q", lexeme)
	}
	return lrcalc.Number(x), nil
}

// parseRadix converts digits of arbitrary length, rounding to the nearest
// float64. Values beyond float64 range become +Inf.
func parseRadix(digits string, base int) (float64, error) {
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return 0, strconv.ErrSyntax
	}
	x, _ := new(big.Float).SetInt(n).Float64()
	return x, nil
}

func constant(rhs []*lr.Node, reg lrcalc.Registry) (lrcalc.Value, error) {
	name := rhs[0].Lexeme()
	if reg != nil {
		if v, ok := reg.LookupConstant(name); ok {
			return v, nil
		}
	}
	return lrcalc.Value{}, lrcalc.ErrorAt(lrcalc.UnknownIdentifier, rhs[0].Span, "no constant %q", name)
}

func unquote(rhs []*lr.Node, reg lrcalc.Registry) (lrcalc.Value, error) {
	s := rhs[0].Lexeme()
	if len(s) >= 2 && strings.ContainsAny(s[:1], `"'`) {
		s = s[1 : len(s)-1]
	}
	if !strings.ContainsRune(s, '\\') {
		return lrcalc.String(s), nil
	}
	// a backslash takes the following character literally
	var b strings.Builder
	escaped := false
	for _, r := range s {
		if r == '\\' && !escaped {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return lrcalc.String(b.String()), nil
}
