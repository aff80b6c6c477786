/*
Package lalr provides a table-driven LR parser. Clients have to use the tools
of package lr to prepare the necessary parse tables. The parser utilizes these
tables to create a right derivation for a given input, provided through a
scanner interface, and reduces it bottom-up into a parse tree of values.

Tables are built from item sets whose follow symbols are approximated per
symbol, with states of equal cores merged. Grammars with conflicts are
accepted: within a table cell the parser tries ACCEPT before SHIFT before
REDUCE, and skips a REDUCE for which no GOTO exists. This makes operator
grammars usable without precedence declarations, but the resolution is
fixed: a shift always wins over a reduce.

Usage

Clients construct a grammar, usually by using a grammar builder:

	b := lr.NewGrammarBuilder("Signed Variables Grammar")
	b.LHS("Var").N("Sign").T("a", scanner.Ident).End()  // Var  --> Sign Id
	b.LHS("Sign").T("+", '+').End()                     // Sign --> +
	b.LHS("Sign").T("-", '-').End()                     // Sign --> -
	b.LHS("Sign").Epsilon()                             // Sign -->
	g, err := b.Grammar()

This grammar is subjected to grammar analysis and table generation, or
fetched from the table cache:

	table := lr.CachedTable(g)

Finally parse some input:

	p := lalr.NewParser(table, lalr.WithRegistry(reg))
	root, err := p.Parse(scanner.GoTokenizer("input", strings.NewReader("+a")))

Rules may carry reducers, computing the value of a node from the values of
its children. A failing reducer stops the parse; its error is returned
to the client as is.

A Parser holds no state between calls and may be shared between goroutines.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lalr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrcalc.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lrcalc.lr")
}
