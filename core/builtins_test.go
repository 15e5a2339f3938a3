package core_test

import (
	"testing"

	. "github.com/lispkit/lispkit/core"
)

// TestDomainListBuiltins exercises the supplemented list utilities added
// in SPEC_FULL.md's DOMAIN-1 section: list, length, map, filter, reduce
// and apply. gensym has its own test below.
func TestDomainListBuiltins(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"list", `(list 1 2 3)`, `(1 2 3)`},
		{"length", `(length (list 1 2 3))`, `3`},
		{"length-nil", `(length nil)`, `0`},
		{"map", `(map (lambda (x) (plus x 1)) (list 1 2 3))`, `(2 3 4)`},
		{"filter", `(filter (lambda (x) (gt? x 1)) (list 1 2 3))`, `(2 3)`},
		{"reduce", `(reduce (lambda (acc x) (plus acc x)) 0 (list 1 2 3 4))`, `10`},
		{"apply", `(apply (lambda (a b) (plus a b)) (list 1 2))`, `3`},
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

func TestGensymProducesDistinctSymbols(t *testing.T) {
	env := NewEnvironment("global", nil)
	a := mustEval(t, `(gensym)`, env)
	b := mustEval(t, `(gensym)`, env)
	if a.Kind() != KindSym || b.Kind() != KindSym {
		t.Fatalf("gensym must return symbols, got %v, %v", a.Kind(), b.Kind())
	}
	if Equal(a, b) {
		t.Errorf("two gensym calls produced the same symbol: %s", Print(a))
	}
}

func TestMapAppliesLeftToRight(t *testing.T) {
	env := NewEnvironment("global", nil)
	// Results come back in list order.
	got := mustEval(t, `(map (lambda (x) (minus x 1)) (list 10 20 30))`, env)
	if Print(got) != "(9 19 29)" {
		t.Errorf("got %s, want (9 19 29)", Print(got))
	}
	// The lambda is applied to the elements in list order: consing each
	// element onto an accumulator leaves the last element at the front.
	mustEval(t, `(define seen nil)`, env)
	mustEval(t, `(map (lambda (x) (set seen (cons x seen))) (list 1 2 3))`, env)
	seen := mustEval(t, `seen`, env)
	if Print(seen) != "(3 2 1)" {
		t.Errorf("application order: got %s, want (3 2 1)", Print(seen))
	}
}

func TestApplyOfOrdinaryLambda(t *testing.T) {
	env := NewEnvironment("global", nil)
	mustEval(t, `(define (add3 a b c) (plus a (plus b c)))`, env)
	got := mustEval(t, `(apply add3 (list 1 2 3))`, env)
	if Print(got) != "6" {
		t.Errorf("got %s, want 6", Print(got))
	}
}
