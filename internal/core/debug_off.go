//go:build !fastdivdebug

package core

// Debug enables precondition checks on the hot paths. Build with
// -tags fastdivdebug to turn them on.
const Debug = false
