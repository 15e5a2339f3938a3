/*
Command lispkit is the interpreter's command-line driver: it runs a script
file, a snippet of inline code, an interactive REPL, or some combination of
the three, on top of packages core, reader and repl.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021-present the lispkit authors

*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/lispkit/lispkit/core"
	"github.com/lispkit/lispkit/repl"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		interactive  = flag.Bool("i", false, "enter interactive mode after running any file/code given")
		interactiveL = flag.Bool("interactive", false, "alias for -i")
		code         = flag.String("c", "", "evaluate CODE and exit, unless -i is also given")
		codeL        = flag.String("code", "", "alias for -c")
		traceLevel   = flag.String("trace", "Error", "trace level [Debug|Info|Warn|Error]")
		logConts     = flag.Int("log-conts", -1, "any value >= 0 raises the trace level to Debug; the value is not used as a depth (-1 disables)")
	)
	flag.Usage = usage
	flag.Parse()

	gtrace.SyntaxTracer = gologadapter.New()
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*traceLevel))
	if *logConts >= 0 {
		tracer().SetTraceLevel(tracing.LevelDebug)
	}

	if *interactiveL {
		*interactive = true
	}
	if *codeL != "" && *code == "" {
		*code = *codeL
	}

	env := core.NewEnvironment("global", nil)

	ranSomething := false
	ok := true

	if path := flag.Arg(0); path != "" {
		ranSomething = true
		ok = repl.RunFile(path, env)
	}

	if *code != "" {
		ranSomething = true
		ok = repl.EvalString(*code, env) && ok
	}

	if *interactive || !ranSomething {
		r, err := repl.New(env, "> ")
		if err != nil {
			pterm.Error.Println("error: " + err.Error())
			return 1
		}
		pterm.Info.Println("Welcome to lispkit. Quit with <ctrl>D")
		r.Run()
		return 0
	}

	if !ok {
		return 1
	}
	return 0
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: lispkit [flags] [file]")
	flag.PrintDefaults()
}

func tracer() tracing.Trace {
	return tracing.Select("lispkit.cmd")
}
