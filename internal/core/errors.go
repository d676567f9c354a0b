package core

import (
	"errors"
	"fmt"
)

// Validation errors returned by the checked constructors and by Config.Validate.
var (
	ErrZeroDivisor        = errors.New("fastdiv: divisor must be non-zero")
	ErrZeroSegments       = errors.New("fastdiv: segment count is zero for a non-empty range")
	ErrZeroBlockSize      = errors.New("fastdiv: block size must be non-zero")
	ErrZeroBuckets        = errors.New("fastdiv: bucket count must be non-zero")
	ErrDimensionMismatch  = errors.New("fastdiv: position has the wrong number of dimensions")
	ErrPositionOutOfRange = errors.New("fastdiv: position is outside the shape")
	ErrShapeOverflow      = errors.New("fastdiv: shape size overflows the index type")
	ErrUnknownHasher      = errors.New("fastdiv: unknown hasher")
	ErrUnknownBucketer    = errors.New("fastdiv: unknown bucketer")
)

// PreconditionError is the panic value raised by debug builds when a caller
// breaks the contract of a hot-path operation.
type PreconditionError struct {
	Op  string
	Msg string
}

func (e PreconditionError) Error() string {
	return fmt.Sprintf("%s: precondition violated: %s", e.Op, e.Msg)
}
