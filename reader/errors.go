package reader

import "fmt"

// ScanError is a syntax error raised by the scanner or reader: an
// unterminated string, an unterminated list, or an unexpected character.
// It carries no position beyond the snippet embedded in its message, since
// the scanner's own context() is already snippet-based.
type ScanError struct {
	msg string
}

func (e *ScanError) Error() string { return e.msg }

func newScanError(format string, args ...interface{}) error {
	return &ScanError{msg: fmt.Sprintf(format, args...)}
}
