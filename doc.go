/*
Package lispkit is a small Lisp interpreter built around a
continuation-passing-style (CPS) trampolined evaluator with first-class
continuations. Package structure is as follows:

■ core: Package core implements the value model (a Lisp-like tagged union),
the environment, the continuation record, the CPS evaluator, the built-in
operations and the trampoline that drives them.

■ reader: Package reader implements the scanner and the S-expression reader
that turn source text into core.Value ASTs.

■ repl: Package repl implements an interactive read-eval-print loop on top
of core and reader.

The base package declares the Position and Span types for offsets into
scanned input. The scanner and reader do not use them: their errors carry
a snippet of the remaining input instead of a position.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021-present the lispkit authors

*/
package lispkit
