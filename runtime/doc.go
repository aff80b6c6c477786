/*
Package runtime implements the registry of constants and functions an
expression is evaluated against. It consists of scopes and symbols (tags for
constants and functions).

For a thorough discussion of an interpreter's runtime environment, refer to
"Language Implementation Patterns" by Terence Parr.

Symbol Table and Scope Tree

This module implements data structures for scope trees and symbol tables
attached to them. A Registry keeps a stack of scopes; the outermost scope
holds the builtins, inner scopes hold definitions of a session (e.g., the
result of the previous calculation). Names are resolved from the innermost
scope outwards.

Functions

A function tag may carry implementations for several numbers of
arguments, plus a variadic implementation. Calling a function with an
argument count it has no implementation for fails with lrcalc.InvalidArgs.

    reg := runtime.Standard()
    f, _ := reg.LookupFunction("gcd")
    v, err := f.Call([]lrcalc.Value{lrcalc.Number(12), lrcalc.Number(16)})  // 4

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package runtime

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrcalc.runtime'.
func tracer() tracing.Trace {
	return tracing.Select("lrcalc.runtime")
}
