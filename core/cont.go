package core

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021-present the lispkit authors
*/

// Frame is the typed payload carried by a Continuation step. Rather than a
// generic string-keyed bag (spec's Design Notes explicitly allow this
// variant), each step function reads only the fields relevant to its own
// kind; unused fields are simply left zero. This keeps every field
// statically typed while preserving the "per-step local storage" role
// spec.md assigns to a continuation's args.
type Frame struct {
	AST          Value  // the value a step produces, or consumes, depending on position
	Env          *Environment
	Name         string // symbol name, for evalBinding
	FnArgs       Value  // unevaluated argument list, for evalFunctionCall / builtins
	Lambda       *Lambda
	UnevaledArgs Value // remaining unevaluated arguments, for evalFunctionArgs
	EvaledArgs   []Value
	HasEvaled    bool // true once EvaledArgs has been populated at least once
	Builtin      *Builtin
	Err          *LispError // set only on the frame handed to an error_handler
	Tmp          Value      // scratch slot for multi-stage builtins (if, load)
	LoadState    *loadState // scratch slot for load's file/reader state
}

// Heap is the chain-global header shared by reference among every
// Continuation spawned from a common ancestor via the chain-mutation
// helpers below. It is the rendezvous for error handling and for
// diagnostics that need to see the currently-executing top-level form.
type Heap struct {
	ErrorHandler *Continuation
	StatementAST Value
}

// StepFunc is a single evaluation step. It returns the next continuation
// the trampoline should invoke, or nil to terminate the chain.
type StepFunc func(c *Continuation) *Continuation

// Continuation is a node in the singly-linked chain driven by the
// trampoline (Run). Each node carries the function to run next, the typed
// argument frame for that function, a pointer to its successor, and the
// heap shared across the whole chain.
type Continuation struct {
	fn   StepFunc
	args Frame
	next *Continuation
	heap *Heap
}

// terminal is the sentinel a chain ends on: fn is nil, so the trampoline
// halts as soon as it is reached.
func terminal(heap *Heap) *Continuation {
	return &Continuation{heap: heap}
}

// IsTerminal reports whether c is the end-of-chain sentinel.
func (c *Continuation) IsTerminal() bool {
	return c == nil || c.fn == nil
}

// Args exposes the continuation's current frame for the step function.
func (c *Continuation) Args() *Frame {
	return &c.args
}

// Heap exposes the chain-global shared header.
func (c *Continuation) Heap() *Heap {
	return c.heap
}

// Next exposes the successor continuation.
func (c *Continuation) Next() *Continuation {
	return c.next
}

// With patches c's frame in place and returns c, for steps that re-enter
// themselves. The evaluator's own steps (evalFunctionArgsStep included)
// patch their frame through Args() instead and do not call it. Unlike
// createBefore/createAfter, which hand a brand-new node a brand-new frame,
// With only touches the fields the patch function sets — spec.md's "bag"
// semantics, expressed as a closure instead of a map merge so every field
// stays statically typed.
func (c *Continuation) With(patch func(*Frame)) *Continuation {
	patch(&c.args)
	return c
}

// createBefore allocates a new continuation c' = {f, a, next: c, heap:
// c.heap}, inserting c' immediately ahead of c in the chain.
func (c *Continuation) createBefore(f StepFunc, a Frame) *Continuation {
	return &Continuation{fn: f, args: a, next: c, heap: c.heap}
}

// createAfter allocates a new continuation c' = {f, a, next: c.next, heap:
// c.heap}, inserting c' between c and c's current successor.
func (c *Continuation) createAfter(f StepFunc, a Frame) *Continuation {
	return &Continuation{fn: f, args: a, next: c.next, heap: c.heap}
}

// copyWith allocates a fresh continuation sharing c's heap and step
// function, optionally overriding its successor, with the patch merged
// onto a copy of c's own frame — used to retry a step with patched state
// (eval reuses itself this way to evaluate the function slot of a call
// before proceeding to the call itself).
func (c *Continuation) copyWith(nextOverride *Continuation, patch func(*Frame)) *Continuation {
	next := c.next
	if nextOverride != nil {
		next = nextOverride
	}
	args := c.args
	if patch != nil {
		patch(&args)
	}
	return &Continuation{fn: c.fn, args: args, next: next, heap: c.heap}
}

// nextWith patches c.next's frame in place and returns c.next, the common
// "I'm done, hand off to my successor" idiom.
func (c *Continuation) nextWith(patch func(*Frame)) *Continuation {
	patch(&c.next.args)
	return c.next
}

// dup shallow-clones c for callcc capture: same step function and
// successor, but independent copies of the frame and heap, so that later
// mutation of the live chain (e.g. a different error handler being
// installed) does not retroactively alter what was captured.
func (c *Continuation) dup() *Continuation {
	heapCopy := *c.heap
	return &Continuation{fn: c.fn, args: c.args, next: c.next, heap: &heapCopy}
}

// routeToErrorHandler installs err onto the chain's error handler and
// returns it as the next continuation to run, per spec §7: "every in-chain
// failure routes to heap[error_handler]".
func routeToErrorHandler(c *Continuation, err *LispError) *Continuation {
	handler := c.heap.ErrorHandler
	if handler == nil {
		tracer().Errorf("fatal: no error handler installed: %s", err.Error())
		return nil
	}
	err.Backtrace = append(err.Backtrace, c.heap.StatementAST)
	handler.args.Err = err
	handler.args.AST = err.AST
	return handler
}
