package lr

import (
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/npillmayer/lrcalc"
	"github.com/npillmayer/lrcalc/lr/scanner"
)

// --- Symbols ---------------------------------------------------------------

// Symbol is a terminal or non-terminal of a grammar. Symbols are created by a
// GrammarBuilder and never change afterwards. Two symbols of one grammar are
// equal iff they are identical.
type Symbol struct {
	Name     string
	ID       int // index into the symbol arena of the grammar
	Value    int // token value for terminals
	terminal bool
}

// IsTerminal is true for terminal symbols.
func (A *Symbol) IsTerminal() bool {
	return A.terminal
}

// TokenType returns the token type of a terminal. For non-terminals it
// returns an invalid token type.
func (A *Symbol) TokenType() lrcalc.TokType {
	if !A.terminal {
		return lrcalc.TokType(-1000 - A.ID)
	}
	return lrcalc.TokType(A.Value)
}

func (A *Symbol) String() string {
	return A.Name
}

// --- Rules -----------------------------------------------------------------

// Reducer is a semantic action for a rule. It receives the nodes for the
// right-hand side symbols of the rule and computes the value for the
// left-hand side. reg gives access to the constants and functions available
// during a parse; it may be nil.
type Reducer func(rhs []*Node, reg lrcalc.Registry) (lrcalc.Value, error)

// DefaultReducer is used for rules without a reducer: it passes on the
// value of the first child, or a pending value for epsilon-rules.
func DefaultReducer(rhs []*Node, reg lrcalc.Registry) (lrcalc.Value, error) {
	if len(rhs) == 0 || rhs[0] == nil {
		return lrcalc.Value{}, nil
	}
	return rhs[0].Value, nil
}

// Rule is a production of a grammar: LHS ➞ RHS.
type Rule struct {
	Serial  int     // ordinal number of this rule within the grammar
	LHS     *Symbol // left-hand side non-terminal
	rhs     []*Symbol
	reducer Reducer
}

// RHS returns the right-hand side of a rule. Clients must not modify it.
func (r *Rule) RHS() []*Symbol {
	return r.rhs
}

// Len returns the number of symbols of the right-hand side.
func (r *Rule) Len() int {
	return len(r.rhs)
}

// IsEps is true for epsilon-rules.
func (r *Rule) IsEps() bool {
	return len(r.rhs) == 0
}

// Reducer returns the semantic action of r, which is DefaultReducer for
// rules defined without one.
func (r *Rule) Reducer() Reducer {
	if r.reducer == nil {
		return DefaultReducer
	}
	return r.reducer
}

// HasReducer is false for rules which were built without a reducer.
func (r *Rule) HasReducer() bool {
	return r.reducer != nil
}

func (r *Rule) String() string {
	return fmt.Sprintf("%s ➞ %s", r.LHS.Name, symbolsString(r.rhs))
}

func symbolsString(syms []*Symbol) string {
	var b strings.Builder
	for i, A := range syms {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(A.Name)
	}
	return b.String()
}

// --- Grammar ---------------------------------------------------------------

// Grammar is a type for a context-free grammar. It holds the symbols and rules
// in arenas; other structures refer to symbols by ID and to rules by serial.
// A grammar is immutable after being built and safe for concurrent use.
type Grammar struct {
	Name      string
	Version   string
	rules     []*Rule
	symbols   []*Symbol
	byLHS     [][]*Rule // productions, indexed by symbol ID
	terminals map[lrcalc.TokType]*Symbol
	byName    map[string]*Symbol
}

// Rule returns the rule with serial number no, or nil.
func (g *Grammar) Rule(no int) *Rule {
	if no < 0 || no >= len(g.rules) {
		return nil
	}
	return g.rules[no]
}

// Size returns the number of rules, including the augmented start rule.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// Symbol returns a symbol by ID, or nil.
func (g *Grammar) Symbol(id int) *Symbol {
	if id < 0 || id >= len(g.symbols) {
		return nil
	}
	return g.symbols[id]
}

// SymbolCount returns the number of symbols, terminals and non-terminals.
func (g *Grammar) SymbolCount() int {
	return len(g.symbols)
}

// SymbolByName finds a symbol by its name, or returns nil.
func (g *Grammar) SymbolByName(name string) *Symbol {
	return g.byName[name]
}

// Terminal returns the terminal for a token type, or nil.
func (g *Grammar) Terminal(tt lrcalc.TokType) *Symbol {
	return g.terminals[tt]
}

// EOF returns the end-of-input terminal.
func (g *Grammar) EOF() *Symbol {
	return g.symbols[0]
}

// Start returns the (augmented) start symbol S'.
func (g *Grammar) Start() *Symbol {
	return g.rules[0].LHS
}

// IsNonTerminal is true if A is a non-terminal of g.
func (g *Grammar) IsNonTerminal(A *Symbol) bool {
	return A != nil && !A.terminal && g.Symbol(A.ID) == A
}

// Rules returns the list of productions for a non-terminal.
func (g *Grammar) Rules(A *Symbol) []*Rule {
	if A == nil || A.ID >= len(g.byLHS) {
		return nil
	}
	return g.byLHS[A.ID]
}

// EachSymbol iterates over all symbols of the grammar, in ID order.
// The return value of the mapper function is ignored.
func (g *Grammar) EachSymbol(mapper func(A *Symbol) interface{}) {
	for _, A := range g.symbols {
		mapper(A)
	}
}

// EachNonTerminal iterates over all non-terminal symbols of the grammar.
func (g *Grammar) EachNonTerminal(mapper func(N *Symbol) interface{}) {
	for _, A := range g.symbols {
		if !A.terminal {
			mapper(A)
		}
	}
}

// EachTerminal iterates over all terminal symbols of the grammar.
func (g *Grammar) EachTerminal(mapper func(T *Symbol) interface{}) {
	for _, A := range g.symbols {
		if A.terminal {
			mapper(A)
		}
	}
}

// Dump is a debugging helper, tracing the rules of a grammar.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s --------------------------------------------", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%3d: %s", r.Serial, r)
	}
	tracer().Debugf("-------------------------------------------------------")
}

type grammarSnapshot struct {
	Name    string
	Version string
	Rules   []string
	Symbols []string
}

// Fingerprint returns a hash of the grammar's name, version, symbols and
// rules. Reducers are not part of the fingerprint; change the version
// when changing semantics only.
func (g *Grammar) Fingerprint() string {
	snap := grammarSnapshot{Name: g.Name, Version: g.Version}
	for _, r := range g.rules {
		snap.Rules = append(snap.Rules, r.String())
	}
	for _, A := range g.symbols {
		snap.Symbols = append(snap.Symbols, fmt.Sprintf("%s/%v/%d", A.Name, A.terminal, A.Value))
	}
	hash, err := structhash.Hash(snap, 1)
	if err != nil {
		panic(fmt.Sprintf("cannot hash grammar %q: %v", g.Name, err))
	}
	return hash
}

// --- Grammar Builder -------------------------------------------------------

// GrammarBuilder is a builder type for grammars. Create one with
// NewGrammarBuilder, add rules with LHS(…), and finally call Grammar().
type GrammarBuilder struct {
	name    string
	version string
	rules   []*RuleBuilder
}

// NewGrammarBuilder creates a builder for a grammar.
func NewGrammarBuilder(gname string) *GrammarBuilder {
	return &GrammarBuilder{name: gname}
}

// Version sets a version tag for the grammar. It becomes part of the
// grammar's fingerprint.
func (gb *GrammarBuilder) Version(v string) *GrammarBuilder {
	gb.version = v
	return gb
}

// RuleBuilder collects the right-hand side of a rule.
type RuleBuilder struct {
	gb      *GrammarBuilder
	lhs     string
	rhs     []symSpec
	reducer Reducer
}

type symSpec struct {
	name     string
	tokval   int
	terminal bool
}

// LHS starts a new rule for non-terminal name.
func (gb *GrammarBuilder) LHS(name string) *RuleBuilder {
	return &RuleBuilder{gb: gb, lhs: name}
}

// N appends a non-terminal to the right-hand side.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	rb.rhs = append(rb.rhs, symSpec{name: name})
	return rb
}

// T appends a terminal to the right-hand side.
func (rb *RuleBuilder) T(name string, tokval int) *RuleBuilder {
	rb.rhs = append(rb.rhs, symSpec{name: name, tokval: tokval, terminal: true})
	return rb
}

// End completes a rule without a reducer.
func (rb *RuleBuilder) End() {
	rb.gb.rules = append(rb.gb.rules, rb)
}

// Epsilon completes an epsilon-rule, discarding any symbols appended before.
func (rb *RuleBuilder) Epsilon() {
	rb.rhs = nil
	rb.End()
}

// Reduce completes a rule with a semantic action.
func (rb *RuleBuilder) Reduce(r Reducer) {
	rb.reducer = r
	rb.End()
}

// Grammar returns the grammar built so far. The LHS of the first rule is
// the start symbol. Grammar returns an error if a non-terminal is referenced
// without having rules, or if symbol names clash.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if len(gb.rules) == 0 {
		return nil, fmt.Errorf("grammar %q has no rules", gb.name)
	}
	g := &Grammar{
		Name:      gb.name,
		Version:   gb.version,
		terminals: make(map[lrcalc.TokType]*Symbol),
		byName:    make(map[string]*Symbol),
	}
	lhsNames := make(map[string]bool)
	for _, rb := range gb.rules {
		lhsNames[rb.lhs] = true
	}
	eof := g.addSymbol("#eof", scanner.EOF, true)
	g.terminals[lrcalc.TokType(scanner.EOF)] = eof
	start := gb.rules[0].lhs
	augmented := start + "'"
	for lhsNames[augmented] {
		augmented += "'"
	}
	g.rules = append(g.rules, &Rule{
		LHS: g.addSymbol(augmented, 0, false),
		rhs: []*Symbol{g.addSymbol(start, 0, false)},
	})
	for _, rb := range gb.rules {
		r := &Rule{Serial: len(g.rules), LHS: g.addSymbol(rb.lhs, 0, false), reducer: rb.reducer}
		for _, s := range rb.rhs {
			if s.terminal {
				if lhsNames[s.name] {
					return nil, fmt.Errorf("terminal %q is also used as a non-terminal", s.name)
				}
				if s.tokval == scanner.EOF {
					return nil, fmt.Errorf("terminal %q uses reserved token value EOF", s.name)
				}
				T, err := g.terminal(s.name, s.tokval)
				if err != nil {
					return nil, err
				}
				r.rhs = append(r.rhs, T)
				continue
			}
			if !lhsNames[s.name] {
				return nil, fmt.Errorf("non-terminal %q has no productions", s.name)
			}
			r.rhs = append(r.rhs, g.addSymbol(s.name, 0, false))
		}
		g.rules = append(g.rules, r)
	}
	g.byLHS = make([][]*Rule, len(g.symbols))
	for _, r := range g.rules {
		g.byLHS[r.LHS.ID] = append(g.byLHS[r.LHS.ID], r)
	}
	tracer().Infof("grammar %q has %d rules and %d symbols", g.Name, len(g.rules), len(g.symbols))
	return g, nil
}

// addSymbol returns the symbol for name, creating it if necessary.
func (g *Grammar) addSymbol(name string, tokval int, terminal bool) *Symbol {
	if A, ok := g.byName[name]; ok {
		return A
	}
	A := &Symbol{Name: name, ID: len(g.symbols), Value: tokval, terminal: terminal}
	g.symbols = append(g.symbols, A)
	g.byName[name] = A
	return A
}

func (g *Grammar) terminal(name string, tokval int) (*Symbol, error) {
	if A, ok := g.byName[name]; ok {
		if !A.terminal || A.Value != tokval {
			return nil, fmt.Errorf("terminal %q used with different token values", name)
		}
		return A, nil
	}
	if A, ok := g.terminals[lrcalc.TokType(tokval)]; ok {
		return nil, fmt.Errorf("terminals %q and %q share token value %d", A.Name, name, tokval)
	}
	A := g.addSymbol(name, tokval, true)
	g.terminals[lrcalc.TokType(tokval)] = A
	return A, nil
}
