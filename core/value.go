package core

import "os"

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021-present the lispkit authors
*/

//go:generate stringer -type Kind

// Kind discriminates the tagged union Value implements.
type Kind int8

const (
	KindNil Kind = iota
	KindTrue
	KindFalse
	KindSym
	KindStr
	KindInt
	KindPair
	KindLambda
	KindResource
	KindCont
)

// Value is the single AST value type of lispkit: a tagged union over the
// singletons, the value-bearing atoms, and the compound/opaque kinds. A
// Value is deliberately small and copyable; the mutable state of a Pair
// lives behind the *Cell pointer it carries, not in Value itself.
type Value struct {
	kind     Kind
	sym      string
	str      string
	num      int64
	pair     *Cell
	lambda   *Lambda
	resource *Resource
	cont     *Continuation
}

// Nil, True and False are the unique singleton values. Identity comparison
// of their Kind suffices for discrimination; do not rely on Go pointer
// identity of Value itself, since Value is a plain struct, not a pointer.
var (
	Nil   = Value{kind: KindNil}
	True  = Value{kind: KindTrue}
	False = Value{kind: KindFalse}
)

// Sym builds a symbol value.
func Sym(name string) Value {
	return Value{kind: KindSym, sym: name}
}

// Str builds a string value.
func Str(text string) Value {
	return Value{kind: KindStr, str: text}
}

// Int builds an integer value.
func Int(n int64) Value {
	return Value{kind: KindInt, num: n}
}

// Cell is the mutable two-field cons cell backing a Pair value. Mutability
// is a requirement of the data model: set_first and set_rest mutate a Cell
// in place, and aliasing of a Cell between multiple Pair values is
// observable, including cycles formed by a cell pointing back at itself or
// an ancestor.
type Cell struct {
	First Value
	Rest  Value
}

// NewPair builds a Pair value wrapping a freshly allocated Cell.
func NewPair(first, rest Value) Value {
	return Value{kind: KindPair, pair: &Cell{First: first, Rest: rest}}
}

// Lambda is a closure: a parameter list, a body expression, and the
// environment captured at definition time.
type Lambda struct {
	Params []string
	Body   Value
	Env    *Environment
	// Name is set for lambdas bound via (define (name ...) ...), purely
	// for diagnostics; anonymous lambdas leave it empty.
	Name string
}

// LambdaValue wraps a *Lambda in a Value.
func LambdaValue(l *Lambda) Value {
	return Value{kind: KindLambda, lambda: l}
}

// Resource wraps a host-owned handle, currently always an open file.
type Resource struct {
	File *os.File
	Path string
}

// ResourceValue wraps a *Resource in a Value.
func ResourceValue(r *Resource) Value {
	return Value{kind: KindResource, resource: r}
}

// ContValue wraps a captured continuation snapshot in a Value.
func ContValue(c *Continuation) Value {
	return Value{kind: KindCont, cont: c}
}

// Kind returns v's tag.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNil reports whether v is the Nil singleton.
func (v Value) IsNil() bool {
	return v.kind == KindNil
}

// IsPair reports whether v is a Pair.
func (v Value) IsPair() bool {
	return v.kind == KindPair
}

// IsAtom reports whether v is a leaf value: a singleton, a symbol, a
// string, or an integer.
func (v Value) IsAtom() bool {
	switch v.kind {
	case KindNil, KindTrue, KindFalse, KindSym, KindStr, KindInt:
		return true
	}
	return false
}

// Falsy reports whether v counts as false for (if ...): only False and Nil
// are falsy, every other value is truthy. Note this is deliberately
// asymmetric with not/and/or, which treat everything but True as false;
// see strictlyTrue in builtins.go.
func (v Value) Falsy() bool {
	return v.kind == KindFalse || v.kind == KindNil
}

// Truthy is the complement of Falsy.
func (v Value) Truthy() bool {
	return !v.Falsy()
}

// SymName returns the symbol's name; only meaningful when Kind() == KindSym.
func (v Value) SymName() string {
	return v.sym
}

// StrText returns the string's text; only meaningful when Kind() == KindStr.
func (v Value) StrText() string {
	return v.str
}

// IntVal returns the integer value; only meaningful when Kind() == KindInt.
func (v Value) IntVal() int64 {
	return v.num
}

// Cell returns the backing cell of a Pair; only meaningful when
// Kind() == KindPair.
func (v Value) Cell() *Cell {
	return v.pair
}

// First returns the Car of a Pair, or Nil if v is not a Pair.
func (v Value) First() Value {
	if v.kind != KindPair {
		return Nil
	}
	return v.pair.First
}

// Rest returns the Cdr of a Pair, or Nil if v is not a Pair.
func (v Value) Rest() Value {
	if v.kind != KindPair {
		return Nil
	}
	return v.pair.Rest
}

// Lambda returns the underlying *Lambda; only meaningful when
// Kind() == KindLambda.
func (v Value) Lambda() *Lambda {
	return v.lambda
}

// Resource returns the underlying *Resource; only meaningful when
// Kind() == KindResource.
func (v Value) Resource() *Resource {
	return v.resource
}

// Cont returns the captured continuation; only meaningful when
// Kind() == KindCont.
func (v Value) Cont() *Continuation {
	return v.cont
}

// List builds a proper list from the given values, terminated by Nil.
func List(vals ...Value) Value {
	result := Nil
	for i := len(vals) - 1; i >= 0; i-- {
		result = NewPair(vals[i], result)
	}
	return result
}

// ListToSlice flattens a proper list into a slice. A dotted tail is
// silently dropped; callers that must detect improper lists should walk
// Rest() themselves.
func ListToSlice(v Value) []Value {
	var out []Value
	for v.kind == KindPair {
		out = append(out, v.pair.First)
		v = v.pair.Rest
	}
	return out
}

// ListLength returns the number of proper-list elements in v, stopping at
// the first non-Pair tail (which need not be Nil).
func ListLength(v Value) int {
	n := 0
	for v.kind == KindPair {
		n++
		v = v.pair.Rest
	}
	return n
}

// Equal implements the structural equality of spec §3.1: identity for
// singletons, value equality for value-bearing atoms, recursive structural
// comparison for Pair, and false whenever the two kinds differ.
func Equal(a, b Value) bool {
	return equalValue(a, b, map[*Cell]*Cell{})
}

// equalValue carries a seen set keyed by a's cell, guarding against the
// same infinite recursion set_first/set_rest can build into a cyclic pair
// that Print's printing set guards against.
func equalValue(a, b Value, seen map[*Cell]*Cell) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNil, KindTrue, KindFalse:
		return true
	case KindSym:
		return a.sym == b.sym
	case KindStr:
		return a.str == b.str
	case KindInt:
		return a.num == b.num
	case KindPair:
		if a.pair == b.pair {
			return true
		}
		if prev, ok := seen[a.pair]; ok {
			return prev == b.pair
		}
		seen[a.pair] = b.pair
		return equalValue(a.pair.First, b.pair.First, seen) && equalValue(a.pair.Rest, b.pair.Rest, seen)
	case KindLambda:
		return a.lambda == b.lambda
	case KindResource:
		return a.resource == b.resource
	case KindCont:
		return a.cont == b.cont
	}
	return false
}

// Greater implements the ordering of spec §3.1: only defined between two
// atoms of the same value-bearing kind.
func Greater(a, b Value) (bool, error) {
	if a.kind != b.kind {
		return false, newTypeError("gt?: operands have different kinds")
	}
	switch a.kind {
	case KindInt:
		return a.num > b.num, nil
	case KindStr:
		return a.str > b.str, nil
	default:
		return false, newTypeError("gt?: operands are not ordered atoms")
	}
}
