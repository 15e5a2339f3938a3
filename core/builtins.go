package core

import (
	"fmt"
	"os"

	"github.com/lispkit/lispkit/core/fp"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021-present the lispkit authors
*/

// Builtin is a named entry in the built-in dispatch table: a symbol name
// paired with the step function that implements it. Per the design notes'
// preference for a static table over reflection on method names, builtins
// are registered once, in init, into a plain map.
type Builtin struct {
	Name string
	Step StepFunc
}

var builtinTable = map[string]*Builtin{}

func registerBuiltin(name string, step StepFunc) {
	builtinTable[name] = &Builtin{Name: name, Step: step}
}

func lookupBuiltin(name string) (*Builtin, bool) {
	b, ok := builtinTable[name]
	return b, ok
}

func init() {
	registerBuiltin("quote", biQuote)
	registerBuiltin("define", biDefine)
	registerBuiltin("set", biSet)
	registerBuiltin("lambda", biLambda)
	registerBuiltin("begin", biBegin)
	registerBuiltin("load", biLoad)
	registerBuiltin("cons", biCons)
	registerBuiltin("first", biFirst)
	registerBuiltin("rest", biRest)
	registerBuiltin("set_first", biSetFirst)
	registerBuiltin("set_rest", biSetRest)
	registerBuiltin("last", biLast)
	registerBuiltin("plus", biPlus)
	registerBuiltin("minus", biMinus)
	registerBuiltin("not", biNot)
	registerBuiltin("and", biAnd)
	registerBuiltin("or", biOr)
	registerBuiltin("eq?", biEq)
	registerBuiltin("gt?", biGt)
	registerBuiltin("if", biIf)
	registerBuiltin("symbol?", biIsSymbol)
	registerBuiltin("pair?", biIsPair)
	registerBuiltin("nil?", biIsNil)
	registerBuiltin("atom?", biIsAtom)
	registerBuiltin("lambda?", biIsLambda)
	registerBuiltin("print", biPrint)
	registerBuiltin("puts", biPuts)
	registerBuiltin("to_s", biToS)
	registerBuiltin("error", biError)
	registerBuiltin("file_open", biFileOpen)
	registerBuiltin("file_close", biFileClose)
	registerBuiltin("file_write", biFileWrite)
	registerBuiltin("file_read", biFileRead)
	registerBuiltin("callcc", biCallCC)

	// DOMAIN-1 additions: list utilities built atop the core builtins, not
	// present in the distilled spec's built-in list but natural companions
	// to cons/first/rest for any non-trivial lispkit program.
	registerBuiltin("list", biList)
	registerBuiltin("length", biLength)
	registerBuiltin("map", biMap)
	registerBuiltin("filter", biFilter)
	registerBuiltin("reduce", biReduce)
	registerBuiltin("apply", biApply)
	registerBuiltin("gensym", biGensym)
}

// evalArgsThen evaluates c's full argument list (left to right) the first
// time it is invoked and reports pending=true, asking the caller to return
// the continuation it produced. Once a.HasEvaled is set (the trampoline has
// looped back through evalFunctionArgsStep), it reports pending=false and
// the caller reads a.EvaledArgs.
func (c *Continuation) evalArgsThen() (next *Continuation, pending bool) {
	return c.evalListThen(c.Args().FnArgs)
}

func (c *Continuation) evalListThen(list Value) (next *Continuation, pending bool) {
	a := c.Args()
	if a.HasEvaled {
		return nil, false
	}
	return c.createBefore(evalFunctionArgsStep, Frame{UnevaledArgs: list, Env: a.Env}), true
}

// arg returns the i'th evaluated argument, or Nil if fewer were supplied.
// Built-ins read their fixed-position operands through this accessor so a
// malformed call (too few arguments) never panics with an index out of
// range: a built-in that checks its operand's kind reports a type or name
// error, and one that does not (eq?, not, to_s, error, ...) goes on with
// Nil in place of the missing operand.
func (a *Frame) arg(i int) Value {
	if i < len(a.EvaledArgs) {
		return a.EvaledArgs[i]
	}
	return Nil
}

func wrongArity(name string, want string, got int) *LispError {
	return newError(ErrArity, Sym(name), "%s: expected %s argument(s), got %d", name, want, got)
}

// --- quote / define / set / lambda / begin ---------------------------------

func biQuote(c *Continuation) *Continuation {
	a := c.Args()
	return c.nextWith(func(f *Frame) { f.AST = a.FnArgs.First() })
}

func paramNames(list Value) []string {
	var names []string
	for list.Kind() == KindPair {
		names = append(names, list.First().SymName())
		list = list.Rest()
	}
	return names
}

func bodyOf(forms Value) Value {
	if ListLength(forms) == 1 {
		return forms.First()
	}
	return NewPair(Sym("begin"), forms)
}

func biDefine(c *Continuation) *Continuation {
	a := c.Args()
	target := a.FnArgs.First()

	if target.Kind() == KindPair {
		// (define (name p1 p2 ...) body1 body2 ...) sugar.
		name := target.First().SymName()
		lam := &Lambda{Params: paramNames(target.Rest()), Body: bodyOf(a.FnArgs.Rest()), Env: a.Env, Name: name}
		v := LambdaValue(lam)
		a.Env.Define(name, v)
		return c.nextWith(func(f *Frame) { f.AST = v })
	}

	if next, pending := c.evalListThen(a.FnArgs.Rest()); pending {
		return next
	}
	v := a.arg(0)
	a.Env.Define(target.SymName(), v)
	return c.nextWith(func(f *Frame) { f.AST = v })
}

func biSet(c *Continuation) *Continuation {
	a := c.Args()
	name := a.FnArgs.First()
	// Evaluate the value first, then search the environment: per spec's
	// design notes, value effects precede a missing-binding error.
	if next, pending := c.evalListThen(a.FnArgs.Rest()); pending {
		return next
	}
	v := a.arg(0)
	if !a.Env.Set(name.SymName(), v) {
		return routeToErrorHandler(c, newNameError(name.SymName()))
	}
	return c.nextWith(func(f *Frame) { f.AST = v })
}

func biLambda(c *Continuation) *Continuation {
	a := c.Args()
	lam := &Lambda{Params: paramNames(a.FnArgs.First()), Body: bodyOf(a.FnArgs.Rest()), Env: a.Env}
	return c.nextWith(func(f *Frame) { f.AST = LambdaValue(lam) })
}

func biBegin(c *Continuation) *Continuation {
	if next, pending := c.evalArgsThen(); pending {
		return next
	}
	a := c.Args()
	result := Nil
	if n := len(a.EvaledArgs); n > 0 {
		result = a.EvaledArgs[n-1]
	}
	return c.nextWith(func(f *Frame) { f.AST = result })
}

// --- load --------------------------------------------------------------

type loadState struct {
	fr   FormReader
	last Value
}

// biLoad is a three-stage builtin: evaluate the filename (and ignored
// flags), open and fully buffer the file, then repeatedly read-and-eval one
// top-level form at a time, threading the last result, using the same
// self-reentry idiom evalFunctionArgsStep uses to drain a list.
func biLoad(c *Continuation) *Continuation {
	a := c.Args()
	switch a.Tmp.Kind() {
	case KindNil: // stage 0: no state recorded yet; evaluate arguments
		if next, pending := c.evalArgsThen(); pending {
			return next
		}
		if len(a.EvaledArgs) == 0 || a.arg(0).Kind() != KindStr {
			return routeToErrorHandler(c, newTypeError("load: expected a path string"))
		}
		path := a.arg(0).StrText()
		data, err := os.ReadFile(path)
		if err != nil {
			return routeToErrorHandler(c, newIOError(err))
		}
		if newFormReader == nil {
			return routeToErrorHandler(c, newError(ErrIO, Nil, "load: no reader registered"))
		}
		a.LoadState = &loadState{fr: newFormReader(string(data))}
		a.Tmp = True // marks "reading" stage
		a.HasEvaled = false
		return c.readNextForm()
	case KindTrue: // stage 1: a nested eval just delivered a.AST
		a.LoadState.last = a.AST
		a.AST = Nil
		return c.readNextForm()
	}
	return routeToErrorHandler(c, newTypeError("load: invalid internal state"))
}

func (c *Continuation) readNextForm() *Continuation {
	a := c.Args()
	form, ok, err := a.LoadState.fr.Read()
	if err != nil {
		return routeToErrorHandler(c, newSyntaxError("%s", err.Error()))
	}
	if !ok {
		return c.nextWith(func(f *Frame) { f.AST = a.LoadState.last })
	}
	return c.createBefore(evalStep, Frame{AST: form, Env: a.Env})
}

// --- pairs ---------------------------------------------------------------

func biCons(c *Continuation) *Continuation {
	if next, pending := c.evalArgsThen(); pending {
		return next
	}
	a := c.Args()
	if len(a.EvaledArgs) != 2 {
		return routeToErrorHandler(c, wrongArity("cons", "2", len(a.EvaledArgs)))
	}
	v := NewPair(a.arg(0), a.arg(1))
	return c.nextWith(func(f *Frame) { f.AST = v })
}

func requirePair(name string, v Value) *LispError {
	if v.Kind() != KindPair {
		return newTypeError("%s: expected a pair, got %s", name, Print(v))
	}
	return nil
}

func biFirst(c *Continuation) *Continuation {
	if next, pending := c.evalArgsThen(); pending {
		return next
	}
	a := c.Args()
	v := a.arg(0)
	if err := requirePair("first", v); err != nil {
		return routeToErrorHandler(c, err)
	}
	return c.nextWith(func(f *Frame) { f.AST = v.First() })
}

func biRest(c *Continuation) *Continuation {
	if next, pending := c.evalArgsThen(); pending {
		return next
	}
	a := c.Args()
	v := a.arg(0)
	if err := requirePair("rest", v); err != nil {
		return routeToErrorHandler(c, err)
	}
	return c.nextWith(func(f *Frame) { f.AST = v.Rest() })
}

func biSetFirst(c *Continuation) *Continuation {
	if next, pending := c.evalArgsThen(); pending {
		return next
	}
	a := c.Args()
	pair := a.arg(0)
	if err := requirePair("set_first", pair); err != nil {
		return routeToErrorHandler(c, err)
	}
	pair.Cell().First = a.arg(1)
	return c.nextWith(func(f *Frame) { f.AST = pair })
}

func biSetRest(c *Continuation) *Continuation {
	if next, pending := c.evalArgsThen(); pending {
		return next
	}
	a := c.Args()
	pair := a.arg(0)
	if err := requirePair("set_rest", pair); err != nil {
		return routeToErrorHandler(c, err)
	}
	pair.Cell().Rest = a.arg(1)
	return c.nextWith(func(f *Frame) { f.AST = pair })
}

func biLast(c *Continuation) *Continuation {
	if next, pending := c.evalArgsThen(); pending {
		return next
	}
	a := c.Args()
	v := a.arg(0)
	result := Nil
	for v.Kind() == KindPair {
		result = v.First()
		if v.Rest().Kind() != KindPair {
			if !v.Rest().IsNil() {
				result = v.Rest()
			}
			break
		}
		v = v.Rest()
	}
	return c.nextWith(func(f *Frame) { f.AST = result })
}

// --- arithmetic ------------------------------------------------------------

func addValues(name string, a, b Value) (Value, *LispError) {
	if a.Kind() != b.Kind() {
		return Nil, newTypeError("%s: operands have different kinds", name)
	}
	switch a.Kind() {
	case KindInt:
		if name == "minus" {
			return Int(a.IntVal() - b.IntVal()), nil
		}
		return Int(a.IntVal() + b.IntVal()), nil
	case KindStr:
		if name == "minus" {
			return Nil, newTypeError("minus: strings do not support subtraction")
		}
		return Str(a.StrText() + b.StrText()), nil
	default:
		return Nil, newTypeError("%s: operands are not value-bearing atoms", name)
	}
}

func foldArith(name string, c *Continuation) *Continuation {
	if next, pending := c.evalArgsThen(); pending {
		return next
	}
	a := c.Args()
	args := a.EvaledArgs
	if len(args) < 1 {
		return routeToErrorHandler(c, wrongArity(name, "at least 1", len(args)))
	}
	if len(args) == 1 {
		return c.nextWith(func(f *Frame) { f.AST = args[0] })
	}
	result, err := addValues(name, args[0], args[1])
	if err != nil {
		return routeToErrorHandler(c, err)
	}
	for _, next := range args[2:] {
		result, err = addValues(name, result, next)
		if err != nil {
			return routeToErrorHandler(c, err)
		}
	}
	return c.nextWith(func(f *Frame) { f.AST = result })
}

func biPlus(c *Continuation) *Continuation  { return foldArith("plus", c) }
func biMinus(c *Continuation) *Continuation { return foldArith("minus", c) }

// --- booleans ----------------------------------------------------------

// strictlyTrue treats every value but True as false, asymmetric with
// Value.Falsy (used by if), per the design notes' explicit direction to
// keep that asymmetry.
func strictlyTrue(v Value) bool {
	return v.Kind() == KindTrue
}

func boolValue(b bool) Value {
	if b {
		return True
	}
	return False
}

func biNot(c *Continuation) *Continuation {
	if next, pending := c.evalArgsThen(); pending {
		return next
	}
	a := c.Args()
	v := boolValue(!strictlyTrue(a.arg(0)))
	return c.nextWith(func(f *Frame) { f.AST = v })
}

func biAnd(c *Continuation) *Continuation {
	if next, pending := c.evalArgsThen(); pending {
		return next
	}
	a := c.Args()
	result := true
	for _, v := range a.EvaledArgs {
		if !strictlyTrue(v) {
			result = false
			break
		}
	}
	v := boolValue(result)
	return c.nextWith(func(f *Frame) { f.AST = v })
}

func biOr(c *Continuation) *Continuation {
	if next, pending := c.evalArgsThen(); pending {
		return next
	}
	a := c.Args()
	result := false
	for _, v := range a.EvaledArgs {
		if strictlyTrue(v) {
			result = true
		}
	}
	v := boolValue(result)
	return c.nextWith(func(f *Frame) { f.AST = v })
}

func biEq(c *Continuation) *Continuation {
	if next, pending := c.evalArgsThen(); pending {
		return next
	}
	a := c.Args()
	v := boolValue(Equal(a.arg(0), a.arg(1)))
	return c.nextWith(func(f *Frame) { f.AST = v })
}

func biGt(c *Continuation) *Continuation {
	if next, pending := c.evalArgsThen(); pending {
		return next
	}
	a := c.Args()
	gt, err := Greater(a.arg(0), a.arg(1))
	if err != nil {
		return routeToErrorHandler(c, err.(*LispError))
	}
	v := boolValue(gt)
	return c.nextWith(func(f *Frame) { f.AST = v })
}

// --- if ------------------------------------------------------------------

// biIf evaluates only the condition and only the chosen branch: unlike
// and/or, if does not use evalArgsThen's all-at-once evaluation. Tmp tracks
// which of the two stages we are in.
func biIf(c *Continuation) *Continuation {
	a := c.Args()
	if a.Tmp.IsNil() {
		a.Tmp = True
		cond := a.FnArgs.First()
		return c.createBefore(evalStep, Frame{AST: cond, Env: a.Env})
	}
	branch := a.FnArgs.Rest().First()
	if a.AST.Falsy() {
		elseForms := a.FnArgs.Rest().Rest()
		if elseForms.Kind() != KindPair {
			return c.nextWith(func(f *Frame) { f.AST = Nil })
		}
		branch = elseForms.First()
	}
	return c.createAfter(evalStep, Frame{AST: branch, Env: a.Env})
}

// --- predicates ----------------------------------------------------------

func predicateBuiltin(kind Kind) StepFunc {
	return func(c *Continuation) *Continuation {
		if next, pending := c.evalArgsThen(); pending {
			return next
		}
		a := c.Args()
		v := boolValue(a.arg(0).Kind() == kind)
		return c.nextWith(func(f *Frame) { f.AST = v })
	}
}

var biIsSymbol = predicateBuiltin(KindSym)
var biIsPair = predicateBuiltin(KindPair)
var biIsNil = predicateBuiltin(KindNil)
var biIsLambda = predicateBuiltin(KindLambda)

func biIsAtom(c *Continuation) *Continuation {
	if next, pending := c.evalArgsThen(); pending {
		return next
	}
	a := c.Args()
	v := boolValue(a.arg(0).IsAtom())
	return c.nextWith(func(f *Frame) { f.AST = v })
}

// --- text output -----------------------------------------------------------

func biPrint(c *Continuation) *Continuation {
	if next, pending := c.evalArgsThen(); pending {
		return next
	}
	a := c.Args()
	for _, v := range a.EvaledArgs {
		fmt.Print(displayText(v))
	}
	result := Nil
	if n := len(a.EvaledArgs); n > 0 {
		result = a.EvaledArgs[n-1]
	}
	return c.nextWith(func(f *Frame) { f.AST = result })
}

func biPuts(c *Continuation) *Continuation {
	if next, pending := c.evalArgsThen(); pending {
		return next
	}
	a := c.Args()
	for _, v := range a.EvaledArgs {
		fmt.Println(displayText(v))
	}
	result := Nil
	if n := len(a.EvaledArgs); n > 0 {
		result = a.EvaledArgs[n-1]
	}
	return c.nextWith(func(f *Frame) { f.AST = result })
}

func biToS(c *Continuation) *Continuation {
	if next, pending := c.evalArgsThen(); pending {
		return next
	}
	a := c.Args()
	v := a.arg(0)
	var text string
	switch {
	case v.Kind() == KindStr:
		// Unlike print/puts, to_s does not interpret \n/\t: it reproduces
		// the string's literal value, per spec §4.5.
		text = v.StrText()
	case v.IsAtom():
		text = displayText(v)
	default:
		text = Print(v)
	}
	result := Str(text)
	return c.nextWith(func(f *Frame) { f.AST = result })
}

func biError(c *Continuation) *Continuation {
	if next, pending := c.evalArgsThen(); pending {
		return next
	}
	a := c.Args()
	return routeToErrorHandler(c, newUserError(a.arg(0)))
}

// --- files -----------------------------------------------------------------

func fopenFlags(mode string) (int, error) {
	switch mode {
	case "r":
		return os.O_RDONLY, nil
	case "r+":
		return os.O_RDWR, nil
	case "w":
		return os.O_WRONLY | os.O_CREATE | os.O_TRUNC, nil
	case "w+":
		return os.O_RDWR | os.O_CREATE | os.O_TRUNC, nil
	case "a":
		return os.O_WRONLY | os.O_CREATE | os.O_APPEND, nil
	case "a+":
		return os.O_RDWR | os.O_CREATE | os.O_APPEND, nil
	default:
		return 0, fmt.Errorf("unsupported file mode %q", mode)
	}
}

func biFileOpen(c *Continuation) *Continuation {
	if next, pending := c.evalArgsThen(); pending {
		return next
	}
	a := c.Args()
	path := a.arg(0).StrText()
	flags, err := fopenFlags(a.arg(1).StrText())
	if err != nil {
		return routeToErrorHandler(c, newIOError(err))
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return routeToErrorHandler(c, newIOError(err))
	}
	v := ResourceValue(&Resource{File: f, Path: path})
	return c.nextWith(func(fr *Frame) { fr.AST = v })
}

func biFileClose(c *Continuation) *Continuation {
	if next, pending := c.evalArgsThen(); pending {
		return next
	}
	a := c.Args()
	res := a.arg(0)
	if res.Kind() != KindResource {
		return routeToErrorHandler(c, newTypeError("file_close: expected a resource"))
	}
	if err := res.Resource().File.Close(); err != nil {
		return routeToErrorHandler(c, newIOError(err))
	}
	return c.nextWith(func(f *Frame) { f.AST = Nil })
}

func biFileWrite(c *Continuation) *Continuation {
	if next, pending := c.evalArgsThen(); pending {
		return next
	}
	a := c.Args()
	res := a.arg(0)
	if res.Kind() != KindResource {
		return routeToErrorHandler(c, newTypeError("file_write: expected a resource"))
	}
	n, err := res.Resource().File.WriteString(a.arg(1).StrText())
	if err != nil {
		return routeToErrorHandler(c, newIOError(err))
	}
	v := Int(int64(n))
	return c.nextWith(func(f *Frame) { f.AST = v })
}

func biFileRead(c *Continuation) *Continuation {
	if next, pending := c.evalArgsThen(); pending {
		return next
	}
	a := c.Args()
	res := a.arg(0)
	if res.Kind() != KindResource {
		return routeToErrorHandler(c, newTypeError("file_read: expected a resource"))
	}
	data, err := os.ReadFile(res.Resource().Path)
	if err != nil {
		return routeToErrorHandler(c, newIOError(err))
	}
	v := Str(string(data))
	return c.nextWith(func(f *Frame) { f.AST = v })
}

// --- callcc ------------------------------------------------------------

// biCallCC evaluates its single argument (must be a lambda), snapshots the
// successor of this step via dup(), and applies the lambda to that snapshot
// as its sole argument, exactly as if the user had written
// (lambda_expr captured_cont).
func biCallCC(c *Continuation) *Continuation {
	if next, pending := c.evalArgsThen(); pending {
		return next
	}
	a := c.Args()
	if len(a.EvaledArgs) != 1 || a.arg(0).Kind() != KindLambda {
		return routeToErrorHandler(c, newTypeError("callcc: argument must evaluate to a lambda"))
	}
	lam := a.arg(0).Lambda()
	snapshot := c.next.dup()
	return c.createAfter(evalLambdaStep, Frame{
		Lambda:     lam,
		EvaledArgs: []Value{ContValue(snapshot)},
		HasEvaled:  true,
	})
}

// --- DOMAIN-1: list utilities ------------------------------------------

func biList(c *Continuation) *Continuation {
	if next, pending := c.evalArgsThen(); pending {
		return next
	}
	a := c.Args()
	v := List(a.EvaledArgs...)
	return c.nextWith(func(f *Frame) { f.AST = v })
}

func biLength(c *Continuation) *Continuation {
	if next, pending := c.evalArgsThen(); pending {
		return next
	}
	a := c.Args()
	v := a.arg(0)
	if v.Kind() != KindPair && !v.IsNil() {
		return routeToErrorHandler(c, newTypeError("length: expected a list"))
	}
	result := Int(int64(ListLength(v)))
	return c.nextWith(func(f *Frame) { f.AST = result })
}

// map, filter, reduce and apply all need to call a lambda/continuation
// repeatedly from inside a builtin. Rather than hand-roll another
// continuation state machine per operation, the Go-level walk over the
// argument list is delegated to core/fp's generic helpers; only the
// per-element "call the lambda" step needs core's own Eval. This is the one
// place lispkit trades perfect single-chain purity for the readability of
// Go's native recursion; see DESIGN.md.
func applyLambdaOrCont(fn Value, args []Value) (Value, *LispError) {
	switch fn.Kind() {
	case KindLambda:
		lam := fn.Lambda()
		if len(args) != len(lam.Params) {
			return Nil, newArityError(fn, len(lam.Params), len(args))
		}
		child := lam.Env.Child(lambdaScopeName(lam))
		for i, p := range lam.Params {
			child.Define(p, args[i])
		}
		return Eval(lam.Body, child)
	case KindCont:
		// Resuming a captured continuation from inside map/filter/reduce/
		// apply is a corner of the "known limitation" the spec calls out
		// for callcc generally: the snapshot's heap still points at
		// whatever error handler was live when it was captured, which may
		// no longer be meaningful here. Only the snapshot's own step runs,
		// with its successor replaced by a local sink; the value that step
		// hands to the sink is returned, and the rest of the captured chain
		// is not resumed.
		ast := Nil
		if len(args) > 0 {
			ast = args[0]
		}
		snapshot := fn.Cont()
		var result Value
		sink := &Continuation{heap: snapshot.heap, fn: func(cc *Continuation) *Continuation {
			result = cc.Args().AST
			return nil
		}}
		chain := snapshot.copyWith(sink, func(f *Frame) { f.AST = ast })
		Run(chain)
		return result, nil
	default:
		return Nil, newTypeError("apply: %s is not callable", Print(fn))
	}
}

func biMap(c *Continuation) *Continuation {
	if next, pending := c.evalArgsThen(); pending {
		return next
	}
	a := c.Args()
	if len(a.EvaledArgs) != 2 {
		return routeToErrorHandler(c, wrongArity("map", "2", len(a.EvaledArgs)))
	}
	fn, list := a.arg(0), a.arg(1)
	mapped, err := fp.Map(ListToSlice(list), func(v Value) (Value, error) {
		r, lerr := applyLambdaOrCont(fn, []Value{v})
		if lerr != nil {
			// A nil *LispError assigned straight into this closure's error
			// return would box into a non-nil interface value; returning it
			// explicitly only on the error path avoids that.
			return r, lerr
		}
		return r, nil
	})
	if err != nil {
		return routeToErrorHandler(c, err.(*LispError))
	}
	result := List(mapped...)
	return c.nextWith(func(f *Frame) { f.AST = result })
}

func biFilter(c *Continuation) *Continuation {
	if next, pending := c.evalArgsThen(); pending {
		return next
	}
	a := c.Args()
	if len(a.EvaledArgs) != 2 {
		return routeToErrorHandler(c, wrongArity("filter", "2", len(a.EvaledArgs)))
	}
	fn, list := a.arg(0), a.arg(1)
	kept, err := fp.Filter(ListToSlice(list), func(v Value) (bool, error) {
		r, lerr := applyLambdaOrCont(fn, []Value{v})
		if lerr != nil {
			return false, lerr
		}
		return r.Truthy(), nil
	})
	if err != nil {
		return routeToErrorHandler(c, err.(*LispError))
	}
	result := List(kept...)
	return c.nextWith(func(f *Frame) { f.AST = result })
}

func biReduce(c *Continuation) *Continuation {
	if next, pending := c.evalArgsThen(); pending {
		return next
	}
	a := c.Args()
	if len(a.EvaledArgs) != 3 {
		return routeToErrorHandler(c, wrongArity("reduce", "3", len(a.EvaledArgs)))
	}
	fn, init, list := a.arg(0), a.arg(1), a.EvaledArgs[2]
	acc, err := fp.Reduce(ListToSlice(list), init, func(acc, v Value) (Value, error) {
		r, lerr := applyLambdaOrCont(fn, []Value{acc, v})
		if lerr != nil {
			return r, lerr
		}
		return r, nil
	})
	if err != nil {
		return routeToErrorHandler(c, err.(*LispError))
	}
	return c.nextWith(func(f *Frame) { f.AST = acc })
}

func biApply(c *Continuation) *Continuation {
	if next, pending := c.evalArgsThen(); pending {
		return next
	}
	a := c.Args()
	if len(a.EvaledArgs) != 2 {
		return routeToErrorHandler(c, wrongArity("apply", "2", len(a.EvaledArgs)))
	}
	fn := a.arg(0)
	args := ListToSlice(a.arg(1))
	v, err := applyLambdaOrCont(fn, args)
	if err != nil {
		return routeToErrorHandler(c, err)
	}
	return c.nextWith(func(f *Frame) { f.AST = v })
}

var gensymCounter int64

func biGensym(c *Continuation) *Continuation {
	if next, pending := c.evalArgsThen(); pending {
		return next
	}
	gensymCounter++
	v := Sym(fmt.Sprintf("g$%d", gensymCounter))
	return c.nextWith(func(f *Frame) { f.AST = v })
}
