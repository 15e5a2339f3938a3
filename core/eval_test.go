package core_test

import (
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	. "github.com/lispkit/lispkit/core"
	"github.com/lispkit/lispkit/reader"
)

func init() {
	RegisterFormReader(func(src string) FormReader { return reader.NewReader(src) })
}

func mustEval(t *testing.T, src string, env *Environment) Value {
	t.Helper()
	forms, err := reader.ReadAll(src)
	if err != nil {
		t.Fatalf("read(%q): %v", src, err)
	}
	var result Value
	for _, form := range forms {
		var lerr *LispError
		result, lerr = Eval(form, env)
		if lerr != nil {
			t.Fatalf("eval(%q): %v", src, lerr)
		}
	}
	return result
}

func evalErr(t *testing.T, src string, env *Environment) *LispError {
	t.Helper()
	forms, err := reader.ReadAll(src)
	if err != nil {
		t.Fatalf("read(%q): %v", src, err)
	}
	var lerr *LispError
	for _, form := range forms {
		_, lerr = Eval(form, env)
		if lerr != nil {
			return lerr
		}
	}
	return nil
}

// TestEvaluationTable covers spec.md §8.2's line-by-line evaluation table.
func TestEvaluationTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lispkit.core")
	defer teardown()

	cases := []struct {
		name string
		src  string
		want string
	}{
		{"cons", `(cons 1 2)`, `(1 . 2)`},
		{"first", `(first (cons 1 2))`, `1`},
		{"rest", `(rest (cons 1 2))`, `2`},
		{"set_first", `(set_first (cons 1 2) 3)`, `(3 . 2)`},
		{"plus-2", `(plus 1 2)`, `3`},
		{"plus-4", `(plus 1 2 3 4)`, `10`},
		{"minus", `(minus 2 1 1)`, `0`},
		{"plus-strings", `(plus "hallo" " " "welt")`, `"hallo welt"`},
		{"eq", `(eq? 1 1)`, `true`},
		{"gt", `(gt? 2 1)`, `true`},
		{"if-true", `(if (eq? 5 5) 1 2)`, `1`},
		{"define-then-read", "(define a (plus 1 2)) a", `3`},
		{"lambda-define-call", "(define inc (lambda (a) (plus a 1))) (inc 2)", `3`},
		{"immediate-lambda", `((lambda (a b) (plus a b)) 1 2)`, `3`},
		{"begin", `(begin 1 2 3)`, `3`},
		{"define-sugar", "(define (dec a) (minus a 1)) (dec 2)", `1`},
		{"pair?", `(pair? (cons 1 2))`, `true`},
		{"atom?-str", `(atom? "str")`, `true`},
		{"atom?-pair", `(atom? (cons 1 2))`, `false`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := NewEnvironment("global", nil)
			got := Print(mustEval(t, tc.src, env))
			if got != tc.want {
				t.Errorf("%s: got %s, want %s", tc.src, got, tc.want)
			}
		})
	}
}

// TestOrEvaluatesAllArguments is property 3: or is not short-circuiting.
func TestOrEvaluatesAllArguments(t *testing.T) {
	env := NewEnvironment("global", nil)
	lerr := evalErr(t, `(or true (error "x"))`, env)
	if lerr == nil {
		t.Fatal("expected (error \"x\") to raise; or must evaluate every argument")
	}
}

// TestCallCC is property 4: capturing vs not capturing the return path.
func TestCallCC(t *testing.T) {
	env := NewEnvironment("global", nil)
	mustEval(t, `(define (f return) (return 2) 3)`, env)

	noCapture := mustEval(t, `(f (lambda (x) x))`, env)
	if Print(noCapture) != "3" {
		t.Errorf("no-capture call: got %s, want 3", Print(noCapture))
	}

	captured := mustEval(t, `(callcc f)`, env)
	if Print(captured) != "2" {
		t.Errorf("callcc: got %s, want 2", Print(captured))
	}
}

// TestMutationVisibility is property 5: set_first mutates in place.
func TestMutationVisibility(t *testing.T) {
	env := NewEnvironment("global", nil)
	mustEval(t, `(define p (cons 1 2))`, env)
	mustEval(t, `(set_first p 9)`, env)
	got := mustEval(t, `p`, env)
	if Print(got) != "(9 . 2)" {
		t.Errorf("got %s, want (9 . 2)", Print(got))
	}
}

// TestLexicalScoping is property 6: g closes over its definition
// environment, not h's, even though h defines its own x first.
func TestLexicalScoping(t *testing.T) {
	env := NewEnvironment("global", nil)
	mustEval(t, `(define x 1)`, env)
	mustEval(t, `(define (g) x)`, env)
	mustEval(t, `(define (h) (define x 2) (g))`, env)
	got := mustEval(t, `(h)`, env)
	if Print(got) != "1" {
		t.Errorf("got %s, want 1 (lexical, not dynamic, scoping)", Print(got))
	}
}

// TestCycleGuardPrinting is property 7: a self-referential pair prints
// with a "..." marker and Print terminates instead of recursing forever.
func TestCycleGuardPrinting(t *testing.T) {
	env := NewEnvironment("global", nil)
	mustEval(t, `(define p (cons 1 nil))`, env)
	mustEval(t, `(set_rest p p)`, env)
	p := mustEval(t, `p`, env)

	done := make(chan string, 1)
	go func() { done <- Print(p) }()
	select {
	case s := <-done:
		if !contains(s, "...") {
			t.Errorf("expected cycle marker in %q", s)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Print did not terminate on a cyclic pair")
	}
}

// TestErrorRoutingDoesNotPanic is property 8: a type error during plus
// is reported as a *LispError, not a Go panic, and the caller can keep
// evaluating further forms afterward.
func TestErrorRoutingDoesNotPanic(t *testing.T) {
	env := NewEnvironment("global", nil)
	lerr := evalErr(t, `(plus 1 "a")`, env)
	if lerr == nil {
		t.Fatal("expected a type error")
	}
	if lerr.Kind != ErrType {
		t.Errorf("got error kind %v, want ErrType", lerr.Kind)
	}
	// the environment and evaluator must still be usable afterward.
	got := mustEval(t, `(plus 1 1)`, env)
	if Print(got) != "2" {
		t.Errorf("evaluator unusable after a routed error: got %s", Print(got))
	}
}

func contains(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
