//go:build fastdivdebug

package core

// Debug enables precondition checks on the hot paths.
const Debug = true
