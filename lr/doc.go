/*
Package lr implements the construction of LR parsing tables.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Terminals
carry a token value of type int. Grammars may contain epsilon-productions.
Rules may carry a reducer, i.e. a semantic action computing a value from the
values of the right-hand side.

Example:

    b := lr.NewGrammarBuilder("G")
    b.LHS("S").N("A").T("a", 1).End()  // S  ->  A a
    b.LHS("A").N("B").N("D").End()     // A  ->  B D
    b.LHS("B").T("b", 2).End()         // B  ->  b
    b.LHS("B").Epsilon()               // B  ->
    b.LHS("D").T("d", 3).Reduce(f)     // D  ->  d     with reducer f
    b.LHS("D").Epsilon()               // D  ->

The LHS of the first rule is the start symbol. The builder augments the
grammar with a start rule, resulting in:

   g, _ := b.Grammar()
   g.Dump()

     0: S' ➞ S
     1: S ➞ A a
     2: A ➞ B D
     3: B ➞ b
     4: B ➞
     5: D ➞ d
     6: D ➞

Symbols and rules live in arenas owned by the grammar. Everything derived from
a grammar (analysis, items, tables) refers to symbols by their ID, an index
into the grammar's symbol arena.

Static Grammar Analysis

After the grammar is complete, it has to be analysed. For this end, the
grammar is subjected to an LRAnalysis object, which computes the set of nullable
symbols and the FIRST sets.

    ga := lr.Analysis(g)
    ga.Grammar().EachNonTerminal(
        func(N *Symbol) interface{} {
            fmt.Printf("FIRST(%s) = %v", N, ga.First(N))
            return nil
        })

Parser Construction

Using grammar analysis as input, a bottom-up parser table is constructed.
Item sets carry follow symbols, which are tracked per symbol within a closure
rather than per item context. States with equal cores are merged afterwards.
The result is an approximation of LALR(1) tables. It is built breadth-first
and deterministically: building twice yields identical tables.

    lrgen := lr.NewTableGenerator(ga)
    lrgen.CreateTables()
    table := lrgen.Table()

The characteristic state machine is available to clients and may be exported
to Graphviz's Dot-format, the action table to HTML.
Tables are immutable and may be shared between concurrent parsers;
CachedTable memoizes them per grammar.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrcalc.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lrcalc.lr")
}
