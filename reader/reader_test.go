package reader_test

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/lispkit/lispkit/core"
	"github.com/lispkit/lispkit/reader"
)

// TestRoundTrip is spec.md §8.1: print(read(s)) == s for cycle-free,
// non-lambda values, for each form in the property's fixed set.
func TestRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lispkit.reader")
	defer teardown()

	forms := []string{
		`sym`,
		`123`,
		`"str"`,
		`nil`,
		`true`,
		`false`,
		`(1)`,
		`(1 2)`,
		`((a) (b c))`,
		`(define f (lambda (a b) (plus a b)))`,
	}
	for _, s := range forms {
		t.Run(s, func(t *testing.T) {
			vs, err := reader.ReadAll(s)
			if err != nil {
				t.Fatalf("read(%q): %v", s, err)
			}
			if len(vs) != 1 {
				t.Fatalf("read(%q): got %d forms, want 1", s, len(vs))
			}
			got := core.Print(vs[0])
			if got != s {
				t.Errorf("print(read(%q)) = %q, want %q", s, got, s)
			}
		})
	}
}

func TestQuoteShorthand(t *testing.T) {
	vs, err := reader.ReadAll(`'a`)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := core.Print(vs[0]); got != "(quote a)" {
		t.Errorf("got %s, want (quote a)", got)
	}
}

func TestComments(t *testing.T) {
	vs, err := reader.ReadAll("1 ; a comment\n2")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(vs) != 2 {
		t.Fatalf("got %d forms, want 2", len(vs))
	}
	if core.Print(vs[0]) != "1" || core.Print(vs[1]) != "2" {
		t.Errorf("got %s, %s", core.Print(vs[0]), core.Print(vs[1]))
	}
}

func TestUnterminatedStringIsAnError(t *testing.T) {
	_, err := reader.ReadAll(`"abc`)
	if err == nil {
		t.Fatal("expected a syntax error for an unterminated string")
	}
}

func TestUnterminatedListIsAnError(t *testing.T) {
	_, err := reader.ReadAll(`(1 2`)
	if err == nil {
		t.Fatal("expected a syntax error for an unterminated list")
	}
}

func TestEmptyListIsNil(t *testing.T) {
	vs, err := reader.ReadAll(`()`)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !vs[0].IsNil() {
		t.Errorf("() should read as Nil, got %s", core.Print(vs[0]))
	}
}

func TestDigitLetterWordIsASymbol(t *testing.T) {
	// "12a" is not all-digits, so it reads as a symbol, not a malformed
	// integer literal.
	vs, err := reader.ReadAll(`12a`)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if vs[0].Kind() != core.KindSym || vs[0].SymName() != "12a" {
		t.Errorf("got %v, want symbol 12a", vs[0])
	}
}
