package core

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/sets/hashset"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021-present the lispkit authors
*/

// Print renders v as lispkit source text, per the printer's dispatch-by-tag
// design. Atoms render as literal forms; pairs render parenthesized, dotted
// when the tail is a non-Nil atom; lambdas render as a re-readable
// (lambda (p1 p2 ...) body) form. A hashset of cells currently on the
// rendering stack guards against infinite recursion on cyclic pairs built by
// set_first/set_rest: a cell re-entered while still an active ancestor
// prints as "...".
func Print(v Value) string {
	var b strings.Builder
	printValue(&b, v, hashset.New())
	return b.String()
}

func printValue(b *strings.Builder, v Value, printing *hashset.Set) {
	switch v.Kind() {
	case KindNil:
		b.WriteString("nil")
	case KindTrue:
		b.WriteString("true")
	case KindFalse:
		b.WriteString("false")
	case KindInt:
		fmt.Fprintf(b, "%d", v.IntVal())
	case KindStr:
		b.WriteByte('"')
		b.WriteString(v.StrText())
		b.WriteByte('"')
	case KindSym:
		b.WriteString(v.SymName())
	case KindPair:
		b.WriteByte('(')
		printPairBody(b, v, printing, true)
		b.WriteByte(')')
	case KindLambda:
		printLambda(b, v.Lambda(), printing)
	case KindResource:
		fmt.Fprintf(b, "#<resource %s>", v.Resource().Path)
	case KindCont:
		b.WriteString("#<continuation>")
	}
}

// printPairBody renders the elements of the list/pair starting at v, without
// the enclosing parens (those are written by the caller). first suppresses
// the leading separator space.
func printPairBody(b *strings.Builder, v Value, printing *hashset.Set, first bool) {
	cell := v.Cell()
	if printing.Contains(cell) {
		b.WriteString("...")
		return
	}
	printing.Add(cell)
	defer printing.Remove(cell)

	if !first {
		b.WriteByte(' ')
	}
	printValue(b, cell.First, printing)

	switch rest := cell.Rest; {
	case rest.IsNil():
	case rest.Kind() == KindPair:
		printPairBody(b, rest, printing, false)
	default:
		b.WriteString(" . ")
		printValue(b, rest, printing)
	}
}

func printLambda(b *strings.Builder, l *Lambda, printing *hashset.Set) {
	b.WriteString("(lambda (")
	for i, p := range l.Params {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p)
	}
	b.WriteString(") ")
	printValue(b, l.Body, printing)
	b.WriteByte(')')
}

// displayText renders v's *value*, not its source form: value-bearing atoms
// print without surrounding quotes and with \n/\t escape sequences resolved,
// matching what print/puts emit for a user-visible payload rather than a
// re-readable literal. to_s uses it for atoms other than strings only.
func displayText(v Value) string {
	switch v.Kind() {
	case KindInt:
		return fmt.Sprintf("%d", v.IntVal())
	case KindStr:
		return interpretEscapes(v.StrText())
	case KindSym:
		return v.SymName()
	case KindNil:
		return "nil"
	case KindTrue:
		return "true"
	case KindFalse:
		return "false"
	default:
		return Print(v)
	}
}

func interpretEscapes(s string) string {
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = strings.ReplaceAll(s, `\t`, "\t")
	return s
}
