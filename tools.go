//go:build tools

// Build-tagged file pinning build-time tool dependencies in go.mod so `go
// mod tidy` does not drop them. stringer regenerates core/kind_string.go
// whenever the Kind enum changes.
package lispkit

import (
	_ "golang.org/x/tools/cmd/stringer"
)
