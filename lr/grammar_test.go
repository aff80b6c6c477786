package lr

import (
	"testing"

	"github.com/npillmayer/lrcalc"
	"github.com/npillmayer/lrcalc/lr/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// The grammar from the package documentation.
func makeDocGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").T("a", 1).End()
	b.LHS("A").N("B").N("D").End()
	b.LHS("B").T("b", 2).End()
	b.LHS("B").Epsilon()
	b.LHS("D").T("d", 3).End()
	b.LHS("D").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestGrammarBuilder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrcalc.lr")
	defer teardown()
	//
	g := makeDocGrammar(t)
	g.Dump()
	if g.Size() != 7 {
		t.Errorf("expected grammar to have 7 rules (incl. start rule), has %d", g.Size())
	}
	if g.Rule(0).LHS != g.Start() || g.Rule(0).RHS()[0] != g.SymbolByName("S") {
		t.Errorf("expected start rule S' ➞ S, is %s", g.Rule(0))
	}
	if g.EOF().ID != 0 || g.Terminal(scanner.EOF) != g.EOF() {
		t.Errorf("expected #eof to be symbol 0 with token value EOF")
	}
	if !g.Rule(4).IsEps() {
		t.Errorf("expected rule 4 to be an epsilon rule, is %s", g.Rule(4))
	}
	if d := g.SymbolByName("d"); d == nil || !d.IsTerminal() || d.TokenType() != 3 {
		t.Errorf("expected terminal d with token value 3, is %v", d)
	}
	if A := g.SymbolByName("A"); A == nil || !g.IsNonTerminal(A) || len(g.Rules(A)) != 1 {
		t.Errorf("expected non-terminal A with 1 rule")
	}
}

func TestGrammarBuilderErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrcalc.lr")
	defer teardown()
	//
	builders := []func(b *GrammarBuilder){
		func(b *GrammarBuilder) {}, // no rules
		func(b *GrammarBuilder) {
			b.LHS("S").T("A", 1).End()
			b.LHS("A").T("a", 2).End()
		},
		func(b *GrammarBuilder) {
			b.LHS("S").T("x", scanner.EOF).End()
		},
		func(b *GrammarBuilder) {
			b.LHS("S").T("a", 1).T("b", 1).End()
		},
		func(b *GrammarBuilder) {
			b.LHS("S").N("X").End()
		},
	}
	for i, build := range builders {
		b := NewGrammarBuilder("Faulty")
		build(b)
		if _, err := b.Grammar(); err == nil {
			t.Errorf("test %d: expected grammar builder to fail", i)
		}
	}
}

func TestGrammarFingerprint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrcalc.lr")
	defer teardown()
	//
	g1, g2 := makeDocGrammar(t), makeDocGrammar(t)
	if g1.Fingerprint() != g2.Fingerprint() {
		t.Errorf("expected equal grammars to have equal fingerprints")
	}
	b := NewGrammarBuilder("G").Version("2")
	b.LHS("S").T("a", 1).End()
	g3, _ := b.Grammar()
	if g1.Fingerprint() == g3.Fingerprint() {
		t.Errorf("expected different grammars to have different fingerprints")
	}
}

func TestDefaultReducer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrcalc.lr")
	defer teardown()
	//
	v, err := DefaultReducer([]*Node{{Value: lrcalc.Number(3)}}, nil)
	if err != nil || !v.Equal(lrcalc.Number(3)) {
		t.Errorf("expected default reducer to pass on 3, got %v", v)
	}
	v, err = DefaultReducer(nil, nil)
	if err != nil || !v.IsPending() {
		t.Errorf("expected default reducer to produce a pending value, got %v", v)
	}
}

func TestAnalysis(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrcalc.lr")
	defer teardown()
	//
	g := makeDocGrammar(t)
	ga := Analysis(g)
	for _, name := range []string{"A", "B", "D"} {
		if !ga.IsNullable(g.SymbolByName(name)) {
			t.Errorf("expected %s to be nullable", name)
		}
	}
	if ga.IsNullable(g.SymbolByName("S")) {
		t.Errorf("expected S to not be nullable")
	}
	first := map[string]string{
		"S": "{a b d}",
		"A": "{b d}",
		"B": "{b}",
		"D": "{d}",
		"a": "{a}",
	}
	for name, expected := range first {
		if F := ga.First(g.SymbolByName(name)).Names(g); F != expected {
			t.Errorf("expected FIRST(%s) = %s, is %s", name, expected, F)
		}
	}
	seq := []*Symbol{g.SymbolByName("B"), g.SymbolByName("a")}
	if F := ga.FirstOfSequence(seq).Names(g); F != "{a b}" {
		t.Errorf("expected FIRST(B a) = {a b}, is %s", F)
	}
}

func TestClosure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrcalc.lr")
	defer teardown()
	//
	g := makeDocGrammar(t)
	ga := Analysis(g)
	seed := StartItem(g.Rule(0))
	seed.follow.Add(g.EOF().ID)
	items := ga.closure([]Item{seed})
	t.Logf("closure = %s", itemsString(items, g))
	expected := []string{
		"[S' ➞ • S] {#eof}",
		"[S ➞ • A a] {#eof}",
		"[A ➞ • B D] {a}",
		"[B ➞ • b] {a d}",
		"[B ➞ •] {a d}",
	}
	if len(items) != len(expected) {
		t.Fatalf("expected closure to have %d items, has %d", len(expected), len(items))
	}
	for k, i := range items {
		if i.StringWith(g) != expected[k] {
			t.Errorf("expected item %d to be %s, is %s", k, expected[k], i.StringWith(g))
		}
	}
}
