package core_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/lispkit/lispkit/core"
)

// TestLoad exercises the load built-in's file/reader state machine
// directly, independent of the repl package's own batch-file driver.
func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.lsp")
	src := "(define answer (plus 40 2))\nanswer\n"
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	env := NewEnvironment("global", nil)
	got := mustEval(t, `(load "`+path+`")`, env)
	if Print(got) != "42" {
		t.Errorf("load's result = %s, want 42 (last form's value)", Print(got))
	}
	answer, found := env.Lookup("answer")
	if !found || Print(answer) != "42" {
		t.Errorf("load should define into the caller's environment; answer = %v, found=%v", answer, found)
	}
}

func TestLoadMissingFile(t *testing.T) {
	env := NewEnvironment("global", nil)
	lerr := evalErr(t, `(load "/nonexistent/path/does/not/exist.lsp")`, env)
	if lerr == nil {
		t.Fatal("expected an I/O error for a missing file")
	}
	if lerr.Kind != ErrIO {
		t.Errorf("got error kind %v, want ErrIO", lerr.Kind)
	}
}
