package calc

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/npillmayer/lrcalc"
	"github.com/npillmayer/lrcalc/lr"
	"github.com/npillmayer/lrcalc/runtime"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestCalcGrammarHasNoConflicts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrcalc.calc")
	defer teardown()
	//
	table := Table()
	if table.Conflicts() != 0 {
		t.Errorf("expected calculator table to be free of conflicts, has %d", table.Conflicts())
	}
	t.Logf("calculator table has %d states", table.StateCount())
	other := lr.NewTableCache().Table(Grammar())
	if other.Fingerprint() != table.Fingerprint() {
		t.Errorf("expected table construction to be deterministic")
	}
}

func TestEvaluateNumbers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrcalc.calc")
	defer teardown()
	//
	inputs := []struct {
		text  string
		value float64
	}{
		{"0x1F", 31},
		{"0b101", 5},
		{"42", 42},
		{"1.5", 1.5},
		{".5", 0.5},
		{"2.", 2},
		{"1.5e3", 1500},
		{"2E-1", 0.2},
		{"1e400", math.Inf(1)},
		{"-1e400", math.Inf(-1)},
		{"0x10000000000000000", 18446744073709551616},
		{"0xFFFFFFFFFFFFFFFF", 18446744073709551615},
	}
	for _, input := range inputs {
		v, err := Evaluate(input.text)
		if err != nil {
			t.Errorf("%q: %v", input.text, err)
		} else if x, _ := v.Number(); x != input.value {
			t.Errorf("%q: expected %g, got %v", input.text, input.value, v)
		}
	}
}

func TestEvaluateExpressions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrcalc.calc")
	defer teardown()
	//
	inputs := []struct {
		text  string
		value float64
	}{
		{"2 + 3 * 4", 14},
		{"2 ^ 3 ^ 2", 512},
		{"2 ** 10", 1024},
		{"10 - 5 - 3", 2},
		{"7 / 2", 3.5},
		{"7 % 4", 3},
		{"2 * (1 + (5 - 3) * 4)", 18},
		{"-sum(1, 3, 2 * (6 - 4))", -8},
		{"log(100) + log(16777216, 2)", 26},
		{"255 % (2 ^ 8)", 255},
		{"0b101 + 0x0f", 20},
		{"-2 ^ 2", 4},
		{"+3", 3},
		{"2 - -3", 5},
		{"3 * (1 + 2", 9},
		{"1 + 2) * 3", 9},
		{"1 << 4", 16},
		{"0xff >> 4", 15},
		{"6 & 3", 2},
		{"6 | 3", 7},
		{"5 ~ 3", 6},
		{"~0", 4294967295},
		{"1 | 2 & 3", 3},
		{"1 + 1 << 2", 8},
		{"2pi", 2 * math.Pi},
		{"2sqrt(16)", 8},
		{"2(3 + 4)", 14},
		{"(1 + 2)(3 + 4)", 21},
		{"(2)pi", 2 * math.Pi},
		{"(2)sqrt(9)", 6},
		{"gcd(12, 16)", 4},
		{"sum()", 0},
		{"sum(1, 2,)", 3},
		{"max(1, 5, 3) + min(4, 2)", 7},
		{"fact(5)", 120},
		{"abs(-3)", 3},
	}
	for _, input := range inputs {
		v, err := Evaluate(input.text)
		if err != nil {
			t.Errorf("%q: %v", input.text, err)
			continue
		}
		x, ok := v.Number()
		if !ok || math.Abs(x-input.value) > 1e-9 {
			t.Errorf("%q: expected %g, got %v", input.text, input.value, v)
		}
	}
}

func TestEvaluateStrings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrcalc.calc")
	defer teardown()
	//
	inputs := []struct {
		text  string
		value lrcalc.Value
	}{
		{`"abc"`, lrcalc.String("abc")},
		{`'a"b'`, lrcalc.String(`a"b`)},
		{`"ab" + 'cd'`, lrcalc.String("abcd")},
		{`''`, lrcalc.String("")},
		{`"a\"b"`, lrcalc.String(`a"b`)},
		{`'it\'s'`, lrcalc.String("it's")},
		{`"back\\slash"`, lrcalc.String(`back\slash`)},
		{`"\"" + '\''`, lrcalc.String(`"'`)},
	}
	for _, input := range inputs {
		v, err := Evaluate(input.text)
		if err != nil {
			t.Errorf("%q: %v", input.text, err)
		} else if !v.Equal(input.value) {
			t.Errorf("%q: expected %#v, got %#v", input.text, input.value, v)
		}
	}
	if v, err := Evaluate(`help("gcd")`); err != nil || v.Kind() != lrcalc.StringValue {
		t.Errorf("expected help to return a description, got %v, %v", v, err)
	}
	if v, err := Evaluate(`search("co")`); err != nil || v.Kind() != lrcalc.ListValue {
		t.Errorf("expected search to return a list, got %v, %v", v, err)
	}
}

func TestEvaluateFailures(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrcalc.calc")
	defer teardown()
	//
	inputs := []struct {
		text string
		kind lrcalc.Kind
	}{
		{"1 / 0", lrcalc.ZeroDivision},
		{"1 % 0", lrcalc.ZeroDivision},
		{"255 % (2 ^ 8 - 256)", lrcalc.ZeroDivision},
		{"1 / (3 - 3)", lrcalc.ZeroDivision},
		{"foobar(1)", lrcalc.InvalidToken},
		{"1 + foo", lrcalc.InvalidToken},
		{"1 ? 2", lrcalc.InvalidToken},
		{"gcd(12)", lrcalc.InvalidArgs},
		{"gcd(1, 2, 3)", lrcalc.InvalidArgs},
		{"1 << 64", lrcalc.InvalidArgs},
		{"0x8000000000000000 | 0", lrcalc.InvalidArgs},
		{"0xFFFFFFFFFFFFFFFF & 1", lrcalc.InvalidArgs},
		{"~0x10000000000000000", lrcalc.InvalidArgs},
		{"1e400 | 0", lrcalc.InvalidArgs},
		{"'a' * 2", lrcalc.InvalidArgs},
		{"'a' + 2", lrcalc.InvalidArgs},
		{"", lrcalc.UnexpectedEnd},
		{"1 +", lrcalc.UnexpectedEnd},
		{"1 2", lrcalc.UnexpectedToken},
		{"1 + * 2", lrcalc.UnexpectedToken},
		{"sum(1,,2)", lrcalc.UnexpectedToken},
	}
	for _, input := range inputs {
		v, err := Evaluate(input.text)
		if err == nil {
			t.Errorf("%q: expected failure %v, got value %v", input.text, input.kind, v)
			continue
		}
		if !errors.Is(err, input.kind) {
			t.Errorf("%q: expected failure %v, got %v", input.text, input.kind, err)
		}
	}
}

func TestOperatorFailureSpan(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrcalc.calc")
	defer teardown()
	//
	_, err := Evaluate("1 + 4 / 0")
	var e *lrcalc.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected an *lrcalc.Error, got %v", err)
	}
	if e.Span != (lrcalc.Span{6, 7}) {
		t.Errorf("expected failure to point to the operator at (6…7), got %v", e.Span)
	}
}

func TestCustomRegistry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrcalc.calc")
	defer teardown()
	//
	reg := runtime.Standard()
	reg.PushScope("session")
	reg.DefineConstant("ans", lrcalc.Number(21))
	v, err := Evaluate("ans * 2", WithRegistry(reg))
	if err != nil {
		t.Fatal(err)
	}
	if !v.Equal(lrcalc.Number(42)) {
		t.Errorf("expected 42, got %v", v)
	}
	if _, err = Evaluate("ans"); err == nil {
		t.Errorf("expected ans to be unknown in the standard registry")
	}
	reg.PopScope()
	if _, err = Evaluate("ans", WithRegistry(reg)); err == nil {
		t.Errorf("expected ans to vanish with its scope")
	}
	if _, err = Evaluate("1 + 2", WithRegistry(nil)); err != nil {
		t.Errorf("expected numeric input to evaluate without registry, got %v", err)
	}
}

func TestParseTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrcalc.calc")
	defer teardown()
	//
	root, err := Parse("1 + 2 * 3")
	if err != nil {
		t.Fatal(err)
	}
	if root.Symbol.Name != "Sentence" {
		t.Errorf("expected root to be Sentence, is %s", root.Symbol)
	}
	if !root.Value.Equal(lrcalc.Number(7)) {
		t.Errorf("expected root value 7, got %v", root.Value)
	}
	if root.Span != (lrcalc.Span{0, 9}) {
		t.Errorf("expected root to span the input, got %v", root.Span)
	}
	lexemes := ""
	for _, tok := range root.Tokens() {
		lexemes += tok.Lexeme()
	}
	if lexemes != "1+2*3" {
		t.Errorf("expected tree to cover all tokens in order, got %q", lexemes)
	}
}

func TestConcurrentEvaluation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrcalc.calc")
	defer teardown()
	//
	Table()
	// the testing tracer must not be written to from more than one goroutine
	for _, key := range []string{"lrcalc.calc", "lrcalc.lr", "lrcalc.scanner", "lrcalc.runtime"} {
		tracing.Select(key).SetTraceLevel(tracing.LevelError)
	}
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			v, err := Evaluate("2 * (1 + (5 - 3) * 4)", WithTrace(tracing.NoOpTrace()))
			if err != nil {
				errs <- err
			} else if !v.Equal(lrcalc.Number(18)) {
				errs <- lrcalc.Errorf(lrcalc.InvalidArgs, "goroutine %d: got %v", n, v)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
