/*
Package calc implements a calculator language on top of the LR toolbox.

Expressions consist of numbers (decimal, float, exponential, binary 0b…,
hexadecimal 0x…), strings in single or double quotes, constants, function
calls, parentheses and operators. From lowest to highest precedence:

    |            bitwise or
    ~            bitwise xor (binary)
    &            bitwise and
    << >>        shift
    + -          sum, difference (+ concatenates strings)
    * / %        product, quotient, remainder
    ^ **         power, right-associative
    + - ~        unary plus, minus, 32-bit complement

A number or a parenthesized expression directly followed by a constant,
a function call or a parenthesized expression is multiplied with it:
2pi, 3sqrt(2), 2(3+4), (1+2)(3+4).

Bitwise operators work on the integral part of their operands.

Unbalanced parentheses are repaired: missing opening parentheses are
inserted at the front, missing closing parentheses at the end of the input.

Usage

    v, err := calc.Evaluate("2 * (1 + (5 - 3) * 4")  // 18

Identifiers are resolved against a registry of constants and functions.
The default is runtime.Standard(); clients may provide their own:

    reg := runtime.Standard()
    reg.PushScope("session")
    reg.DefineConstant("ans", v)
    v, err = calc.Evaluate("ans / 2", calc.WithRegistry(reg))

The grammar and its parser table are built once, on first use, and shared
by all evaluations. Evaluations may run concurrently.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package calc

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrcalc.calc'.
func tracer() tracing.Trace {
	return tracing.Select("lrcalc.calc")
}
