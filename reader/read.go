package reader

import (
	"strconv"

	"github.com/lispkit/lispkit/core"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021-present the lispkit authors
*/

// Reader turns source text into core.Value ASTs, one top-level form at a
// time, per the reader's read/read_atom/read_list algorithm.
type Reader struct {
	sc *Scanner
}

// NewReader wraps src for reading from its first form. It also satisfies
// core.FormReader, which is how the load built-in and the REPL driver pull
// forms out of a file or a line of input without core importing this
// package directly.
func NewReader(src string) *Reader {
	return &Reader{sc: NewScanner(src)}
}

// Read returns the next top-level form. ok is false once the input is
// exhausted (skipping whitespace and comments first finds nothing left);
// err is non-nil only on a syntax failure.
func (r *Reader) Read() (core.Value, bool, error) {
	return r.read()
}

func (r *Reader) read() (core.Value, bool, error) {
	r.skipWhitespaceAndComments()
	if r.sc.Ended() {
		return core.Nil, false, nil
	}
	switch r.sc.Peek() {
	case '\'':
		r.sc.Next()
		inner, ok, err := r.read()
		if err != nil {
			return core.Nil, false, err
		}
		if !ok {
			return core.Nil, false, newScanError("unexpected end of input after '")
		}
		return core.NewPair(core.Sym("quote"), core.NewPair(inner, core.Nil)), true, nil
	case '(':
		v, err := r.readList()
		if err != nil {
			return core.Nil, false, err
		}
		return v, true, nil
	case ')':
		return core.Nil, false, newScanError("unexpected ')' at %s", r.sc.context())
	default:
		v, err := r.readAtom()
		if err != nil {
			return core.Nil, false, err
		}
		return v, true, nil
	}
}

func (r *Reader) skipWhitespaceAndComments() {
	for {
		r.sc.SkipWhitespace()
		if r.sc.Peek() != ';' {
			return
		}
		for r.sc.Peek() != '\n' && r.sc.Peek() != eof {
			r.sc.Next()
		}
	}
}

func (r *Reader) readList() (core.Value, error) {
	if _, err := r.sc.OneOf('('); err != nil {
		return core.Nil, err
	}
	return r.readListRest()
}

func (r *Reader) readListRest() (core.Value, error) {
	r.skipWhitespaceAndComments()
	if r.sc.Ended() {
		return core.Nil, newScanError("unterminated list at %s", r.sc.context())
	}
	if r.sc.Peek() == ')' {
		r.sc.Next()
		return core.Nil, nil
	}
	first, ok, err := r.read()
	if err != nil {
		return core.Nil, err
	}
	if !ok {
		return core.Nil, newScanError("unterminated list at %s", r.sc.context())
	}
	rest, err := r.readListRest()
	if err != nil {
		return core.Nil, err
	}
	return core.NewPair(first, rest), nil
}

var wordTerminators = []rune{' ', '\t', '\n', '\r', ')', eof}

func (r *Reader) readAtom() (core.Value, error) {
	if r.sc.Peek() == '"' {
		r.sc.Next()
		text, err := r.sc.Until('"')
		if err != nil {
			return core.Nil, newScanError("unterminated string at %s", r.sc.context())
		}
		if _, err := r.sc.OneOf('"'); err != nil {
			return core.Nil, err
		}
		return core.Str(text), nil
	}
	word, err := r.sc.Until(wordTerminators...)
	if err != nil {
		return core.Nil, err
	}
	return atomFromWord(word), nil
}

func atomFromWord(word string) core.Value {
	switch word {
	case "", "nil", "null":
		return core.Nil
	case "true":
		return core.True
	case "false":
		return core.False
	}
	if isAllDigits(word) {
		n, _ := strconv.ParseInt(word, 10, 64)
		return core.Int(n)
	}
	return core.Sym(word)
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ReadAll reads every top-level form out of src, for callers (tests, the
// round-trip property) that want the whole set at once rather than
// streaming one at a time.
func ReadAll(src string) ([]core.Value, error) {
	r := NewReader(src)
	var forms []core.Value
	for {
		v, ok, err := r.Read()
		if err != nil {
			return nil, err
		}
		if !ok {
			return forms, nil
		}
		forms = append(forms, v)
	}
}
