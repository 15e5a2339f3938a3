package core

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021-present the lispkit authors
*/

// This file implements the CPS core: eval, evalBinding, evalFunctionCall,
// evalFunctionArgs and evalLambda, per spec §4.4. Every step function has
// signature StepFunc: it receives itself (so it can inspect/patch its own
// frame or splice new nodes ahead of or after itself) and returns the next
// continuation the trampoline should run.

// Eval seeds a fresh continuation chain that evaluates ast in env and
// returns the resulting value once the chain reaches its terminal node, or
// the *LispError that was routed to the chain's error handler.
func Eval(ast Value, env *Environment) (Value, *LispError) {
	var result Value
	var fail *LispError

	heap := &Heap{StatementAST: ast}
	sink := &Continuation{heap: heap, next: terminal(heap), fn: func(c *Continuation) *Continuation {
		result = c.Args().AST
		return nil
	}}
	heap.ErrorHandler = &Continuation{heap: heap, fn: func(c *Continuation) *Continuation {
		fail = c.Args().Err
		return nil
	}}
	start := &Continuation{fn: evalStep, args: Frame{AST: ast, Env: env}, next: sink, heap: heap}

	Run(start)
	return result, fail
}

// Run is the trampoline of spec §4.6: it repeatedly invokes the current
// continuation's step function until a step returns nil or the chain
// reaches its terminal sentinel.
func Run(c *Continuation) {
	for c != nil && !c.IsTerminal() {
		tracer().Debugf("step %p", c)
		c = c.fn(c)
	}
}

// evalStep implements eval(args={ast, env}, self).
func evalStep(c *Continuation) *Continuation {
	a := c.Args()
	ast, env := a.AST, a.Env
	if ast.IsAtom() {
		if ast.Kind() == KindSym {
			return c.createAfter(evalBindingStep, Frame{Name: ast.SymName(), Env: env})
		}
		return c.nextWith(func(f *Frame) { f.AST = ast })
	}
	// ast is a Pair: (fnSlot . fnArgs)
	fnSlot, fnArgs := ast.First(), ast.Rest()
	call := c.createAfter(evalFunctionCallStep, Frame{FnArgs: fnArgs, Env: env})
	return c.copyWith(call, func(f *Frame) {
		f.AST = fnSlot
		f.Env = env
	})
}

// evalBindingStep implements eval_binding(args={name, env}, self). Built-ins
// are not bound into any Environment (they live only in builtinTable), so a
// miss here falls back to checking whether name names a built-in before
// declaring it unresolved: that lets the symbol pass through unevaluated to
// evalFunctionCallStep's KindSym branch, which does the actual builtin
// dispatch (and raises the distinct "unknown built-in" error on a genuine
// miss there). A user define of the same name always shadows the built-in,
// since the Lookup above is tried first.
func evalBindingStep(c *Continuation) *Continuation {
	a := c.Args()
	v, ok := a.Env.Lookup(a.Name)
	if ok {
		return c.nextWith(func(f *Frame) { f.AST = v })
	}
	if _, isBuiltin := lookupBuiltin(a.Name); isBuiltin {
		return c.nextWith(func(f *Frame) { f.AST = Sym(a.Name) })
	}
	return routeToErrorHandler(c, newNameError(a.Name))
}

// evalFunctionCallStep implements eval_function_call(args={ast, args, env}, self).
// Here a.AST is the already-evaluated function slot and a.FnArgs the
// unevaluated argument list.
func evalFunctionCallStep(c *Continuation) *Continuation {
	a := c.Args()
	fn, fnArgs, env := a.AST, a.FnArgs, a.Env

	switch fn.Kind() {
	case KindSym:
		b, ok := lookupBuiltin(fn.SymName())
		if !ok {
			return routeToErrorHandler(c, newUnknownBuiltinError(fn.SymName()))
		}
		return c.createAfter(b.Step, Frame{FnArgs: fnArgs, Env: env, Builtin: b})
	case KindCont:
		captured := fn.Cont()
		first := fnArgs.First()
		return captured.createBefore(evalStep, Frame{AST: first, Env: env})
	case KindLambda:
		return c.createAfter(evalLambdaStep, Frame{Lambda: fn.Lambda(), FnArgs: fnArgs, Env: env})
	default:
		return routeToErrorHandler(c, newTypeError("cannot call %s, it is not a function", Print(fn)))
	}
}

// evalFunctionArgsStep implements
// eval_function_args(args={unevaled_args, env, evaled_args?}, self). It
// iteratively evaluates a list of expressions left to right, accumulating
// results so that side effects are observable in evaluation order.
func evalFunctionArgsStep(c *Continuation) *Continuation {
	a := c.Args()
	if a.HasEvaled {
		// A producer just delivered a.AST: fold it in and keep draining.
		a.EvaledArgs = append(a.EvaledArgs, a.AST)
		a.AST = Nil
		a.HasEvaled = false
		return c
	}
	if a.UnevaledArgs.Kind() == KindPair {
		head, rest := a.UnevaledArgs.First(), a.UnevaledArgs.Rest()
		next := c.createBefore(evalStep, Frame{AST: head, Env: a.Env})
		// c itself is that new node's successor (create_before sets
		// next=c): remember the remaining tail and flag that our next
		// invocation delivers one freshly evaluated argument rather than a
		// fresh list to drain.
		a.UnevaledArgs = rest
		a.HasEvaled = true
		return next
	}
	return c.nextWith(func(f *Frame) { f.EvaledArgs = a.EvaledArgs; f.HasEvaled = true })
}

// evalLambdaStep implements
// eval_lambda(args={lambda, arg_ast, env, evaled_args?}, self).
func evalLambdaStep(c *Continuation) *Continuation {
	a := c.Args()
	if !a.HasEvaled {
		n := ListLength(a.FnArgs)
		if n != len(a.Lambda.Params) {
			return routeToErrorHandler(c, newArityError(LambdaValue(a.Lambda), len(a.Lambda.Params), n))
		}
		return c.createBefore(evalFunctionArgsStep, Frame{UnevaledArgs: a.FnArgs, Env: a.Env})
	}
	if len(a.EvaledArgs) != len(a.Lambda.Params) {
		// Only reachable via callcc's direct invocation, which hands a
		// synthetic single-element EvaledArgs to whatever lambda it was
		// given without going through the arity check above.
		return routeToErrorHandler(c, newArityError(LambdaValue(a.Lambda), len(a.Lambda.Params), len(a.EvaledArgs)))
	}
	child := a.Lambda.Env.Child(lambdaScopeName(a.Lambda))
	for i, p := range a.Lambda.Params {
		child.Define(p, a.EvaledArgs[i])
	}
	return c.createAfter(evalStep, Frame{AST: a.Lambda.Body, Env: child})
}

func lambdaScopeName(l *Lambda) string {
	if l.Name != "" {
		return l.Name
	}
	return "lambda"
}
