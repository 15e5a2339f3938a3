package core

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021-present the lispkit authors
*/

// Environment is a lexical scope: a mapping from symbol name to Value,
// plus an optional parent. It follows the teacher's Scope/SymbolTable
// pattern (see runtime.Scope): a plain map with a parent pointer, no
// copy-on-write, since define and set must mutate visibly to every holder
// of the environment.
type Environment struct {
	name   string
	vars   map[string]Value
	parent *Environment
}

// NewEnvironment creates an environment named name, parented to parent (nil
// for the root/global environment).
func NewEnvironment(name string, parent *Environment) *Environment {
	return &Environment{name: name, vars: make(map[string]Value), parent: parent}
}

// Define inserts name into the current environment, shadowing an outer
// binding of the same name if one exists. define always targets the
// current environment, never a parent.
func (e *Environment) Define(name string, v Value) {
	e.vars[name] = v
}

// Lookup walks e and its parents for name, per eval_binding.
func (e *Environment) Lookup(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.vars[name]; ok {
			return v, true
		}
	}
	return Nil, false
}

// Set mutates the nearest binding of name found by walking the parent
// chain, and reports whether a binding was found. It does not create a
// new binding on failure.
func (e *Environment) Set(name string, v Value) bool {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.vars[name]; ok {
			env.vars[name] = v
			return true
		}
	}
	return false
}

// Child creates a new environment parented to e.
func (e *Environment) Child(name string) *Environment {
	return NewEnvironment(name, e)
}

// Dump renders a human-readable, deterministically ordered snapshot of the
// bindings visible from e, innermost scope first. The repl driver does not
// call it; its diagnostics print the message and the offending form only.
func (e *Environment) Dump() string {
	var b strings.Builder
	for env := e; env != nil; env = env.parent {
		names := maps.Keys(env.vars)
		slices.Sort(names)
		fmt.Fprintf(&b, "[%s]\n", env.name)
		for _, n := range names {
			fmt.Fprintf(&b, "  %s = %s\n", n, Print(env.vars[n]))
		}
	}
	return b.String()
}
