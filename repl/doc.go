/*
Package repl implements an interactive read-eval-print loop on top of core
and reader, plus the batch-file driver cmd/lispkit uses to run a script
before optionally dropping into interactive mode.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021-present the lispkit authors

*/
package repl

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("lispkit.repl")
}
