package core

// FormReader incrementally parses top-level forms from already-loaded
// source text. The concrete implementation lives in package reader; core
// only depends on this interface to keep the evaluator decoupled from
// surface syntax (reader imports core for Value, so core cannot import
// reader back without a cycle).
type FormReader interface {
	// Read returns the next form. ok is false at end of input (no error);
	// err is non-nil only on a syntax failure.
	Read() (Value, bool, error)
}

var newFormReader func(src string) FormReader

// RegisterFormReader installs the concrete reader.Scanner-backed
// implementation used by the load built-in. Package repl calls it from its
// init, so cmd/lispkit, which imports repl, has it wired before any lispkit
// program that might call (load ...) runs.
func RegisterFormReader(f func(src string) FormReader) {
	newFormReader = f
}
