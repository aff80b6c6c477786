package calc

import (
	"sync"

	"github.com/npillmayer/lrcalc"
	"github.com/npillmayer/lrcalc/lr"
	"github.com/npillmayer/lrcalc/lr/lalr"
	"github.com/npillmayer/lrcalc/lr/scanner"
	"github.com/npillmayer/lrcalc/runtime"
	"github.com/npillmayer/schuko/tracing"
)

// Option configures an evaluation.
type Option func(*evaluation)

type evaluation struct {
	reg   lrcalc.Registry
	trace tracing.Trace
}

// WithRegistry sets the registry identifiers are resolved against.
// The default is a shared instance of runtime.Standard().
func WithRegistry(reg lrcalc.Registry) Option {
	return func(ev *evaluation) {
		ev.reg = reg
	}
}

// WithTrace sets a tracer for the parser.
func WithTrace(t tracing.Trace) Option {
	return func(ev *evaluation) {
		ev.trace = t
	}
}

var (
	stdOnce  sync.Once
	standard *runtime.Registry
)

func defaultRegistry() lrcalc.Registry {
	stdOnce.Do(func() {
		standard = runtime.Standard()
	})
	return standard
}

// Evaluate computes the value of an expression. Failures are of type
// *lrcalc.Error.
func Evaluate(input string, opts ...Option) (lrcalc.Value, error) {
	root, err := Parse(input, opts...)
	if err != nil {
		return lrcalc.Value{}, err
	}
	return root.Value, nil
}

// Parse parses an expression and returns the root of its parse tree.
// Every node of the tree carries its value and input span.
func Parse(input string, opts ...Option) (*lr.Node, error) {
	ev := &evaluation{reg: defaultRegistry()}
	for _, opt := range opts {
		opt(ev)
	}
	tokens, err := Tokenize(input, ev.reg)
	if err != nil {
		return nil, err
	}
	toks := make([]lrcalc.Token, len(tokens))
	for i, t := range tokens {
		toks[i] = t
	}
	p := lalr.NewParser(Table(), lalr.WithRegistry(ev.reg), lalr.WithTrace(ev.trace))
	root, err := p.Parse(scanner.FromTokens(toks))
	if err != nil {
		tracer().Debugf("%q: %v", input, err)
		return nil, err
	}
	return root, nil
}
