/*
Package core implements the value model, environment, continuation record,
CPS evaluator, built-in operations and trampoline of the lispkit
interpreter. It deliberately reifies every evaluation step as a
Continuation, processed by an outer trampoline, so that first-class
continuations (callcc) and non-stack-bound recursion both fall out of the
same mechanism.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021-present the lispkit authors

*/
package core

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lispkit.core'.
func tracer() tracing.Trace {
	return tracing.Select("lispkit.core")
}
