package repl

import (
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/cnf/structhash"
	"github.com/pterm/pterm"

	"github.com/lispkit/lispkit/core"
	"github.com/lispkit/lispkit/reader"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021-present the lispkit authors
*/

func init() {
	core.RegisterFormReader(func(src string) core.FormReader {
		return reader.NewReader(src)
	})
}

// REPL is the interactive driver: prompt, read one form, evaluate it in a
// persistent environment, print the result, repeat. A consecutive repeat of
// the identical diagnostic is collapsed into a single "(repeated Nx)" line
// rather than spammed to the console.
type REPL struct {
	rl  *readline.Instance
	env *core.Environment

	lastDiagHash string
	repeatCount  int
}

// New builds a REPL evaluating forms in env, prompting with prompt.
func New(env *core.Environment, prompt string) (*REPL, error) {
	rl, err := readline.New(prompt)
	if err != nil {
		return nil, err
	}
	return &REPL{rl: rl, env: env}, nil
}

// Run drives the interactive loop until EOF (Ctrl-D) or an interrupt.
func (r *REPL) Run() {
	defer r.rl.Close()
	for {
		line, err := r.rl.Readline()
		if err != nil { // io.EOF (Ctrl-D) or readline.ErrInterrupt
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		r.evalLine(line)
	}
	r.flushRepeat()
	pterm.Info.Println("Bye. Have a nice day :)")
}

func (r *REPL) evalLine(line string) {
	forms, err := reader.ReadAll(line)
	if err != nil {
		r.reportError(err.Error(), core.Nil)
		return
	}
	for _, form := range forms {
		v, lerr := core.Eval(form, r.env)
		if lerr != nil {
			r.reportError(lerr.Error(), lerr.AST)
			continue
		}
		r.flushRepeat()
		pterm.Info.Println(core.Print(v))
	}
}

// reportError prints an "error:" diagnostic, optionally followed by the
// offending form's printed AST, per the error handling design. Consecutive
// identical diagnostics (same message, same AST) are hashed with structhash
// and collapsed rather than reprinted.
func (r *REPL) reportError(message string, ast core.Value) {
	diag := message
	if !ast.IsNil() {
		diag += " " + core.Print(ast)
	}
	hash, err := structhash.Hash(diag, 1)
	if err != nil {
		hash = diag // structhash failing on a plain string should not happen; degrade gracefully
	}
	if hash == r.lastDiagHash {
		r.repeatCount++
		return
	}
	r.flushRepeat()
	r.lastDiagHash = hash
	r.repeatCount = 0
	pterm.Error.Println("error: " + diag)
}

func (r *REPL) flushRepeat() {
	if r.repeatCount > 0 {
		pterm.Error.Printf("(repeated %dx)\n", r.repeatCount+1)
	}
	r.repeatCount = 0
	r.lastDiagHash = ""
}

// RunFile reads and evaluates every top-level form in path against env in
// order, in batch mode: the first error is printed and aborts the run,
// matching the driver's documented batch behaviour (exit rather than
// resume reading). It reports whether evaluation completed without error.
func RunFile(path string, env *core.Environment) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		pterm.Error.Println("error: " + err.Error())
		return false
	}
	r := reader.NewReader(string(data))
	for {
		form, ok, rerr := r.Read()
		if rerr != nil {
			pterm.Error.Println("error: " + rerr.Error())
			return false
		}
		if !ok {
			return true
		}
		v, lerr := core.Eval(form, env)
		if lerr != nil {
			diag := lerr.Error()
			if !lerr.AST.IsNil() {
				diag += " " + core.Print(lerr.AST)
			}
			pterm.Error.Println("error: " + diag)
			return false
		}
		_ = v
	}
}

// EvalString evaluates a single chunk of source (the -c/--code flag) against
// env, printing each top-level result the way the interactive loop does.
func EvalString(code string, env *core.Environment) bool {
	forms, err := reader.ReadAll(code)
	if err != nil {
		pterm.Error.Println("error: " + err.Error())
		return false
	}
	ok := true
	for _, form := range forms {
		v, lerr := core.Eval(form, env)
		if lerr != nil {
			diag := lerr.Error()
			if !lerr.AST.IsNil() {
				diag += " " + core.Print(lerr.AST)
			}
			pterm.Error.Println("error: " + diag)
			ok = false
			continue
		}
		fmt.Println(core.Print(v))
	}
	return ok
}
