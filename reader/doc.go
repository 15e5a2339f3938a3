/*
Package reader implements the lispkit scanner and S-expression reader: a
hand-rolled cursor over an immutable rune buffer feeding a recursive-descent
parser that turns source text into core.Value ASTs. Surface syntax has no
grammar complex enough to justify a generated lexer/parser pair, so unlike
the teacher's terexlang package (which drives lexmachine and a gorgo/lr
table-driven parser), reader is deliberately small and direct.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021-present the lispkit authors

*/
package reader

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("lispkit.reader")
}
