package reader

import "strings"

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021-present the lispkit authors
*/

// eof is the zero sentinel returned by peek/next once the cursor has run
// off the end of the buffer. A NUL rune inside the input reads the same as
// eof to Peek and Next; only Ended tells the two apart.
const eof = rune(0)

// Scanner is a cursor over an immutable rune buffer, per the scanner
// design: peek/next/oneOf/until/skipWhitespace/rest/ended.
type Scanner struct {
	src []rune
	pos int
}

// NewScanner wraps src for scanning from its first rune.
func NewScanner(src string) *Scanner {
	return &Scanner{src: []rune(src)}
}

// Peek returns the current rune without consuming it, or eof at the end.
func (s *Scanner) Peek() rune {
	if s.pos >= len(s.src) {
		return eof
	}
	return s.src[s.pos]
}

// Next consumes and returns the current rune, or eof at the end.
func (s *Scanner) Next() rune {
	r := s.Peek()
	if r != eof {
		s.pos++
	}
	return r
}

// OneOf consumes and returns the current rune if it matches one of chars
// (eof matches if included in chars); otherwise it fails without consuming.
func (s *Scanner) OneOf(chars ...rune) (rune, error) {
	cur := s.Peek()
	for _, c := range chars {
		if cur == c {
			return s.Next(), nil
		}
	}
	return eof, newScanError("expected one of %s at %s", quoteRunes(chars), s.context())
}

// Until returns the substring from the current position up to (not
// including) the first occurrence of any terminator. If eof is among the
// terminators, running off the end is an accepted stop; otherwise it is a
// failure.
func (s *Scanner) Until(terminators ...rune) (string, error) {
	eofTerminates := false
	for _, t := range terminators {
		if t == eof {
			eofTerminates = true
		}
	}
	start := s.pos
	for {
		cur := s.Peek()
		if cur == eof {
			if eofTerminates {
				return string(s.src[start:s.pos]), nil
			}
			return "", newScanError("unexpected end of input while scanning for %s", quoteRunes(terminators))
		}
		for _, t := range terminators {
			if cur == t {
				return string(s.src[start:s.pos]), nil
			}
		}
		s.pos++
	}
}

// SkipWhitespace consumes any run of spaces, tabs and newlines.
func (s *Scanner) SkipWhitespace() {
	for {
		switch s.Peek() {
		case ' ', '\t', '\n', '\r':
			s.pos++
		default:
			return
		}
	}
}

// Rest returns the remaining, unconsumed input, for diagnostics.
func (s *Scanner) Rest() string {
	return string(s.src[s.pos:])
}

// Ended reports whether the cursor has reached the end of the buffer.
func (s *Scanner) Ended() bool {
	return s.pos >= len(s.src)
}

func (s *Scanner) context() string {
	rest := s.Rest()
	if len(rest) > 20 {
		rest = rest[:20] + "..."
	}
	if rest == "" {
		return "end of input"
	}
	return "\"" + rest + "\""
}

func quoteRunes(rs []rune) string {
	var parts []string
	for _, r := range rs {
		if r == eof {
			parts = append(parts, "end of input")
			continue
		}
		parts = append(parts, "'"+string(r)+"'")
	}
	return strings.Join(parts, ", ")
}
