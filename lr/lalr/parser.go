package lalr

import (
	"github.com/npillmayer/lrcalc"
	"github.com/npillmayer/lrcalc/lr"
	"github.com/npillmayer/lrcalc/lr/scanner"
	"github.com/npillmayer/schuko/tracing"
)

// Table is what the parser needs from a parse table. *lr.Table implements it.
//
// Cells may hold more than one action. The parser tries them in order and
// takes the first one which is viable.
type Table interface {
	Grammar() *lr.Grammar
	Actions(state int, A *lr.Symbol) []lr.Action
	Goto(state int, A *lr.Symbol) (int, bool)
}

// Parser is a table-driven LR parser. Create and initialize one with
// lalr.NewParser(...)
type Parser struct {
	table Table
	reg   lrcalc.Registry
	trace tracing.Trace
}

// Option configures a parser.
type Option func(p *Parser)

// WithRegistry sets the registry handed to reducers.
func WithRegistry(reg lrcalc.Registry) Option {
	return func(p *Parser) {
		p.reg = reg
	}
}

// WithTrace sets a tracer for the parser, overriding the package tracer.
func WithTrace(t tracing.Trace) Option {
	return func(p *Parser) {
		if t != nil {
			p.trace = t
		}
	}
}

// NewParser creates a parser for a table.
func NewParser(table Table, opts ...Option) *Parser {
	p := &Parser{trace: tracer()}
	if t, ok := table.(*lr.Table); !ok || t != nil {
		p.table = table
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse is a convenience function to parse a slice of tokens. An EOF token
// is appended implicitly.
func Parse(table Table, tokens []lrcalc.Token, reg lrcalc.Registry) (*lr.Node, error) {
	return NewParser(table, WithRegistry(reg)).Parse(scanner.FromTokens(tokens))
}

// parseRun holds the stacks of a single parse.
type parseRun struct {
	p      *Parser
	scan   scanner.Tokenizer
	states []int      // state stack, starting with state 0
	nodes  []*lr.Node // parallel value stack, one shorter than states
	token  lrcalc.Token
	scnerr error
}

// Parse starts a new parse, given a scanner tokenizing the input.
// It returns the root node of the parse tree, holding the value of the
// input, or an error.
//
// Errors of the scanner are reported as lrcalc.InvalidToken, missing
// actions as lrcalc.UnexpectedToken or lrcalc.UnexpectedEnd. Errors of
// reducers are returned unmodified.
func (p *Parser) Parse(scan scanner.Tokenizer) (*lr.Node, error) {
	if p.table == nil {
		return nil, lrcalc.Errorf(lrcalc.UnexpectedEnd, "parser has no table")
	}
	p.trace.Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	run := &parseRun{p: p, scan: scan, states: make([]int, 1, 64)}
	scan.SetErrorHandler(func(err error) {
		if run.scnerr == nil {
			run.scnerr = err
		}
	})
	if err := run.next(); err != nil {
		return nil, err
	}
	g := p.table.Grammar()
	for {
		la := g.Terminal(run.token.TokType())
		state := run.states[len(run.states)-1] // TOS
		if la == nil {
			return nil, run.failure()
		}
		actions := p.table.Actions(state, la)
		p.trace.Debugf("actions(%d,%s) = %v", state, la, actions)
		done, progressed := false, false
		var err error
		for _, a := range actions {
			if done, progressed, err = run.apply(a); err != nil {
				return nil, err
			} else if progressed {
				break
			}
		}
		if done {
			p.trace.Debugf("input accepted")
			return run.nodes[len(run.nodes)-1], nil
		}
		if !progressed {
			return nil, run.failure()
		}
	}
}

// apply tries to perform an action. It returns whether the input has been
// accepted and whether the action has been taken.
func (run *parseRun) apply(a lr.Action) (bool, bool, error) {
	switch a.Kind {
	case lr.AcceptAction:
		if len(run.nodes) == 0 {
			return false, false, nil
		}
		return true, true, nil
	case lr.ShiftAction:
		run.p.trace.Debugf("shift %q, next state = %d", run.token.Lexeme(), a.State)
		A := run.p.table.Grammar().Terminal(run.token.TokType())
		run.states = append(run.states, a.State)
		run.nodes = append(run.nodes, lr.Leaf(A, run.token))
		return false, true, run.next()
	case lr.ReduceAction:
		ok, err := run.reduce(a.Rule)
		return false, ok, err
	}
	return false, false, nil
}

// reduce performs a reduce action for a rule
//
//    LHS --> X1 ... Xn   (with X being terminals or non-terminals)
//
// Symbols X1 to Xn are represented on the stacks as states and nodes
//
//    [TOS]  Sn ... S1  S0 …
//
// The GOTO is looked up in state S0 before anything is popped; if there is
// none, reduce returns false and leaves the stacks alone. The same holds if
// the stack is too shallow for the rule.
func (run *parseRun) reduce(rule *lr.Rule) (bool, error) {
	n := rule.Len()
	if n >= len(run.states) {
		run.p.trace.Debugf("stack too shallow, skipping reduce by %v", rule)
		return false, nil
	}
	exposed := run.states[len(run.states)-1-n]
	target, ok := run.p.table.Goto(exposed, rule.LHS)
	if !ok {
		run.p.trace.Debugf("no GOTO(%d,%s), skipping reduce by %v", exposed, rule.LHS, rule)
		return false, nil
	}
	run.p.trace.Infof("reduce %v", rule)
	children := append([]*lr.Node(nil), run.nodes[len(run.nodes)-n:]...)
	node := &lr.Node{Symbol: rule.LHS, Children: children}
	for _, ch := range children {
		node.Span = node.Span.Extend(ch.Span)
	}
	if node.Span.IsNull() { // epsilon was just before lookahead
		pos := run.token.Span().From()
		node.Span = lrcalc.Span{pos, pos}
	}
	value, err := rule.Reducer()(children, run.p.reg)
	if err != nil {
		run.p.trace.Debugf("reducer for %v failed: %v", rule, err)
		return false, err
	}
	node.Value = value
	run.states = append(run.states[:len(run.states)-n], target)
	run.nodes = append(run.nodes[:len(run.nodes)-n], node)
	run.p.trace.Debugf("reduced to %s = %v, next state = %d", rule.LHS, value, target)
	return true, nil
}

// next reads the next token from the scanner. Scanner errors are reported
// as lrcalc.InvalidToken.
func (run *parseRun) next() error {
	run.token = run.scan.NextToken()
	if run.scnerr != nil {
		return lrcalc.ErrorAt(lrcalc.InvalidToken, run.token.Span(), "%v", run.scnerr)
	}
	run.p.trace.Debugf("got token %q/%d from scanner", run.token.Lexeme(), run.token.TokType())
	return nil
}

// failure creates an error for a lookahead token without viable actions.
func (run *parseRun) failure() error {
	if run.token.TokType() == scanner.EOF {
		return lrcalc.ErrorAt(lrcalc.UnexpectedEnd, run.token.Span(), "unexpected end of input")
	}
	return lrcalc.ErrorAt(lrcalc.UnexpectedToken, run.token.Span(), "unexpected %q", run.token.Lexeme())
}
