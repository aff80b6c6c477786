/*
Package lrcalc is an embeddable arithmetic-expression language, driven by an
LR parsing-table generator.

Package structure is as follows:

■ lr: Package lr implements the grammar model, grammar analysis (nullable and
FIRST sets), LR item closure and the construction of merged LR parsing tables.
Sub-package lalr holds the generic table-driven parser.

■ runtime: Package runtime provides the registry of named constants and
functions, organized in scopes.

■ calc: Package calc implements the calculator language: tokenizer, grammar
with semantic reducers, and the evaluation entry point. Sub-package crepl
is an interactive calculator shell.

The base package contains data types which are used throughout all the other packages:
tokens, spans, values, failures, and the registry contracts.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lrcalc
