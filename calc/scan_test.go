package calc

import (
	"testing"

	"github.com/npillmayer/lrcalc"
	"github.com/npillmayer/lrcalc/runtime"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func types(tokens []*Token) []lrcalc.TokType {
	tt := make([]lrcalc.TokType, len(tokens))
	for i, t := range tokens {
		tt[i] = t.Type
	}
	return tt
}

func TestTokenize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrcalc.calc")
	defer teardown()
	//
	reg := runtime.Standard()
	inputs := []struct {
		text  string
		types []lrcalc.TokType
	}{
		{"1", []lrcalc.TokType{Integer}},
		{"0x1F 0b101 1.5e3 .5 1.", []lrcalc.TokType{Hex, Binary, Exponential, Float, Float}},
		{"2 ** 3 ^ 4", []lrcalc.TokType{Integer, ExponentOp, Integer, ExponentOp, Integer}},
		{"1<<2>>3", []lrcalc.TokType{Integer, ShiftOp, Integer, ShiftOp, Integer}},
		{"a|b", nil}, // unknown identifiers
		{"~1 & 2 | 3", []lrcalc.TokType{TildeOp, Integer, AndOp, Integer, OrOp, Integer}},
		{"2pi", []lrcalc.TokType{Integer, ConstantKey}},
		{"sqrt(2, 'x')", []lrcalc.TokType{FunctionKey, OpenParen, Integer, Comma, String, CloseParen}},
		{`"a b"`, []lrcalc.TokType{String}},
		{`"a\" b" + 'c\'d'`, []lrcalc.TokType{String, TermOp, String}},
		{"1 $ 2", nil},
	}
	for _, input := range inputs {
		tokens, err := Tokenize(input.text, reg)
		if input.types == nil {
			if lrcalc.KindOf(err) != lrcalc.InvalidToken {
				t.Errorf("%q: expected invalid token, got %v", input.text, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: %v", input.text, err)
			continue
		}
		got := types(tokens)
		if len(got) != len(input.types) {
			t.Errorf("%q: expected %d tokens, got %v", input.text, len(input.types), tokens)
			continue
		}
		for i := range got {
			if got[i] != input.types[i] {
				t.Errorf("%q: token #%d is %s, expected %s", input.text, i,
					TokenName(got[i]), TokenName(input.types[i]))
			}
		}
	}
}

func TestTokenSpans(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrcalc.calc")
	defer teardown()
	//
	tokens, err := Tokenize("12 + pi", runtime.Standard())
	if err != nil {
		t.Fatal(err)
	}
	spans := []lrcalc.Span{{0, 2}, {3, 4}, {5, 7}}
	for i, tok := range tokens {
		if tok.Span() != spans[i] {
			t.Errorf("expected token %v to span %v, has %v", tok, spans[i], tok.Span())
		}
	}
	_, err = Tokenize("1 + $", runtime.Standard())
	if e, ok := err.(*lrcalc.Error); !ok || e.Span != (lrcalc.Span{4, 5}) {
		t.Errorf("expected failure at (4…5), got %v", err)
	}
}

func TestIdentifierClassification(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrcalc.calc")
	defer teardown()
	//
	reg := runtime.NewRegistry()
	reg.DefineConstant("x", lrcalc.Number(1))
	reg.DefineFunction("x", 1, func(args []lrcalc.Value) (lrcalc.Value, error) {
		return args[0], nil
	})
	reg.DefineFunction("f", 0, func([]lrcalc.Value) (lrcalc.Value, error) {
		return lrcalc.Number(0), nil
	})
	inputs := []struct {
		text string
		typ  lrcalc.TokType
	}{
		{"x", ConstantKey},
		{"x(", FunctionKey},
		{"f", FunctionKey},
		{"f(", FunctionKey},
	}
	for _, input := range inputs {
		tokens, err := Tokenize(input.text, reg)
		if err != nil {
			t.Errorf("%q: %v", input.text, err)
			continue
		}
		if tokens[0].Type != input.typ {
			t.Errorf("%q: expected %s, got %s", input.text, TokenName(input.typ), TokenName(tokens[0].Type))
		}
	}
	if _, err := Tokenize("1 + y + z", reg); err == nil {
		t.Errorf("expected unknown identifier to fail")
	} else if e := err.(*lrcalc.Error); e.Span != (lrcalc.Span{4, 5}) {
		t.Errorf("expected first unknown identifier to be reported, got %v at %v", e, e.Span)
	}
	if _, err := Tokenize("pi", nil); lrcalc.KindOf(err) != lrcalc.InvalidToken {
		t.Errorf("expected identifiers to be unknown without registry, got %v", err)
	}
}

func TestParenRepair(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrcalc.calc")
	defer teardown()
	//
	inputs := []struct {
		text   string
		output string
		depths []int
	}{
		{"(1)", "(1)", []int{0, 1, 0}},
		{"(1", "(1)", []int{0, 1, 0}},
		{"1)", "(1)", []int{0, 1, 0}},
		{"((1", "((1))", []int{0, 1, 2, 1, 0}},
		{")1(", "()1()", []int{0, 0, 0, 0, 0}},
		{"1) + (2", "(1)+(2)", []int{0, 1, 0, 0, 0, 1, 0}},
	}
	for _, input := range inputs {
		tokens, err := Tokenize(input.text, nil)
		if err != nil {
			t.Errorf("%q: %v", input.text, err)
			continue
		}
		out := ""
		for _, tok := range tokens {
			out += tok.Text
		}
		if out != input.output {
			t.Errorf("%q: expected repair to %q, got %q", input.text, input.output, out)
			continue
		}
		for i, tok := range tokens {
			if tok.Depth != input.depths[i] {
				t.Errorf("%q: expected depth %d for token #%d, got %d", input.text, input.depths[i], i, tok.Depth)
			}
		}
	}
	tokens, _ := Tokenize("(1", nil)
	if tokens[0].Synthetic || !tokens[2].Synthetic {
		t.Errorf("expected only the appended parenthesis to be synthetic: %v", tokens)
	}
}
