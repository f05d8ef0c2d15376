//go:build debug

package core

import "fmt"

// Debug is true when the binary was built with -tags debug
const Debug = true

// PreconditionFailed panics with a formatted message. Release builds compile
// it to a no-op, so callers must still handle the bad input themselves.
func PreconditionFailed(format string, args ...interface{}) {
	panic(fmt.Sprintf("precondition violated: "+format, args...))
}
