package repl_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/lispkit/lispkit/core"
	"github.com/lispkit/lispkit/repl"
)

func TestRunFileEvaluatesEveryForm(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lispkit.repl")
	defer teardown()

	dir := t.TempDir()
	path := filepath.Join(dir, "prog.lsp")
	src := "(define x (plus 1 2))\n(define y (plus x 1))\n"
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	env := core.NewEnvironment("global", nil)
	if ok := repl.RunFile(path, env); !ok {
		t.Fatalf("RunFile reported failure on a well-formed script")
	}
	y, found := env.Lookup("y")
	if !found {
		t.Fatal("y was never defined by the script")
	}
	if core.Print(y) != "4" {
		t.Errorf("y = %s, want 4", core.Print(y))
	}
}

func TestRunFileStopsOnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.lsp")
	src := "(define x (plus 1 2))\n(plus 1 \"a\")\n(define never_reached 1)\n"
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	env := core.NewEnvironment("global", nil)
	if ok := repl.RunFile(path, env); ok {
		t.Fatal("RunFile should report failure once a form raises")
	}
	if _, found := env.Lookup("never_reached"); found {
		t.Error("a form after the error should never have run")
	}
}

func TestRunFileMissingPath(t *testing.T) {
	env := core.NewEnvironment("global", nil)
	if ok := repl.RunFile(filepath.Join(t.TempDir(), "missing.lsp"), env); ok {
		t.Fatal("RunFile should fail for a missing file")
	}
}

func TestEvalStringReportsSyntaxErrors(t *testing.T) {
	env := core.NewEnvironment("global", nil)
	if ok := repl.EvalString(`(1 2`, env); ok {
		t.Fatal("EvalString should fail on a syntax error")
	}
}

func TestEvalStringRunsMultipleForms(t *testing.T) {
	env := core.NewEnvironment("global", nil)
	if ok := repl.EvalString(`(define z (plus 2 2)) z`, env); !ok {
		t.Fatal("EvalString should succeed on well-formed forms")
	}
	z, found := env.Lookup("z")
	if !found || core.Print(z) != "4" {
		t.Errorf("z = %v (found=%v), want 4", z, found)
	}
}
