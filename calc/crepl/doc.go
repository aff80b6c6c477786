/*
Package crepl/main provides an interactive command line calculator (C.REPL).
Users enter expressions of the calculator language, one per line, and
C.REPL prints the result. The result of the last successful evaluation is
available as constant 'ans'.

Lines starting with a colon are commands:

    :tree [expr]     display the parse tree of expr or of the last input
    :table           list the states of the parser table
    :dot [file]      write the state graph in GraphViz format
    :html file       write the action table as HTML
    :grammar         list the rules of the calculator grammar
    :names [prefix]  list constants and functions
    :help [name]     describe a constant or function, or list commands
    :quit            leave C.REPL (or <ctrl>D)

Flags:

    -config file     YAML configuration file
    -trace level     trace level for all calculator tracers [Debug|Info|Error]

Without -config, a configuration is searched for with tag 'crepl', e.g. at
$HOME/.config/crepl/config.yaml. Example:

    prompt: "calc> "
    history: /tmp/crepl.history
    tracing:
      adapter: go
    trace:
      root: Error
      lrcalc:
        calc: Debug
    constants:
      g: 9.80665

Any remaining command line arguments are evaluated as one expression,
without entering interactive mode.


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lrcalc.repl'
func tracer() tracing.Trace {
	return tracing.Select("lrcalc.repl")
}
