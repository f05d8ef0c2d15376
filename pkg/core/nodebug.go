//go:build !debug

package core

// Debug is true when the binary was built with -tags debug
const Debug = false

// PreconditionFailed reports a caller bug. It panics in debug builds and
// does nothing otherwise.
func PreconditionFailed(format string, args ...interface{}) {}
