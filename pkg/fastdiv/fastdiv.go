// Package fastdiv divides unsigned integers by a divisor fixed at run time
// without a hardware divide, and splits index ranges into near-equal
// contiguous segments whose lookups use those precomputed divisors.
//
// A Divisor is built once with NewDivisor and then answers Div, Mod and
// IsDivisible with multiplications only:
//
//	d := fastdiv.NewDivisor[uint32](7)
//	q, r := d.DivMod(100) // 14, 2
//
// A Uniform segmenter splits [0, size) into segmentNum ranges whose lengths
// differ by at most one, the first size%segmentNum being one longer:
//
//	s := fastdiv.NewUniformSegmenter[uint64](10, 3)
//	s.SegmentRange(1) // [4, 7)
//	s.SegmentOf(7)    // 2
//
// All values are immutable after construction and safe to share between
// goroutines. The unchecked constructors panic on invalid input (division by
// zero); builds with the fastdivdebug tag panic with a PreconditionError
// instead. The Try variants validate and return an error.
package fastdiv

import (
	"fmt"

	"fastdiv/internal/core"
	"fastdiv/internal/multisize"
	"fastdiv/internal/segment"
)

// Unsigned is the set of supported integer types.
type Unsigned = core.Unsigned

// Divisor is a precomputed reciprocal of a non-zero divisor.
type Divisor[T Unsigned] = core.Divisor[T]

// Uniform splits [0, size) into near-equal contiguous segments.
type Uniform[T Unsigned] = segment.Uniform[T]

// Blocked splits [0, size) into segments aligned to a block size.
type Blocked[T Unsigned] = segment.Blocked[T]

// UniformWithBlock is a Uniform segmenter that walks each segment in blocks.
type UniformWithBlock[T Unsigned] = segment.UniformWithBlock[T]

// Range is a half-open interval [Begin, End).
type Range[T Unsigned] = segment.Range[T]

// MultiSize maps flat indices to coordinates of a row-major shape.
type MultiSize[T Unsigned] = multisize.MultiSize[T]

// PreconditionError is the panic value of violated preconditions in
// fastdivdebug builds.
type PreconditionError = core.PreconditionError

// Errors returned by the Try constructors and NewMultiSize.
var (
	ErrZeroDivisor   = core.ErrZeroDivisor
	ErrZeroSegments  = core.ErrZeroSegments
	ErrZeroBlockSize = core.ErrZeroBlockSize
	ErrShapeOverflow = core.ErrShapeOverflow
)

// NewDivisor precomputes the reciprocal of d. d must not be zero.
func NewDivisor[T Unsigned](d T) Divisor[T] {
	return core.NewDivisor(d)
}

// TryNewDivisor is NewDivisor returning ErrZeroDivisor for d == 0.
func TryNewDivisor[T Unsigned](d T) (Divisor[T], error) {
	if d == 0 {
		return Divisor[T]{}, ErrZeroDivisor
	}
	return core.NewDivisor(d), nil
}

// NewUniformSegmenter splits [0, size) into segmentNum segments. segmentNum
// may be zero only when size is zero.
func NewUniformSegmenter[T Unsigned](size, segmentNum T) Uniform[T] {
	return segment.NewUniform(size, segmentNum)
}

// TryNewUniformSegmenter is NewUniformSegmenter returning ErrZeroSegments
// when a non-empty range is split into zero segments.
func TryNewUniformSegmenter[T Unsigned](size, segmentNum T) (Uniform[T], error) {
	if segmentNum == 0 && size != 0 {
		return Uniform[T]{}, fmt.Errorf("split of %d indices: %w", size, ErrZeroSegments)
	}
	return segment.NewUniform(size, segmentNum), nil
}

// NewBlockedSegmenter splits [0, size) into segmentNum segments whose
// boundaries, except the final end, are multiples of blockSize.
func NewBlockedSegmenter[T Unsigned](size, segmentNum, blockSize T) Blocked[T] {
	return segment.NewBlocked(size, segmentNum, blockSize)
}

// TryNewBlockedSegmenter is NewBlockedSegmenter with validation.
func TryNewBlockedSegmenter[T Unsigned](size, segmentNum, blockSize T) (Blocked[T], error) {
	if blockSize == 0 {
		return Blocked[T]{}, ErrZeroBlockSize
	}
	if segmentNum == 0 && size != 0 {
		return Blocked[T]{}, fmt.Errorf("split of %d indices: %w", size, ErrZeroSegments)
	}
	return segment.NewBlocked(size, segmentNum, blockSize), nil
}

// NewUniformWithBlock is NewUniformSegmenter whose segments are walked in
// chunks of blockSize. A blockSize of zero yields each segment whole.
func NewUniformWithBlock[T Unsigned](size, segmentNum, blockSize T) UniformWithBlock[T] {
	return segment.NewUniformWithBlock(size, segmentNum, blockSize)
}

// NewMultiSize describes a row-major shape with the given axis sizes. It
// returns ErrShapeOverflow when the element count does not fit in T.
func NewMultiSize[T Unsigned](sizes ...T) (MultiSize[T], error) {
	return multisize.New(sizes...)
}

// DivMod returns quotient and remainder with native division.
func DivMod[T Unsigned](dividend, divisor T) (T, T) {
	return core.DivMod(dividend, divisor)
}

// DivModBy returns quotient and remainder through a precomputed divisor.
func DivModBy[T Unsigned](dividend T, divisor Divisor[T]) (T, T) {
	return core.DivModBy(dividend, divisor)
}

// DivCeil returns dividend / divisor rounded up.
func DivCeil[T Unsigned](dividend, divisor T) T {
	return core.DivCeil(dividend, divisor)
}

// ProdDiv returns factor1 * factor2 / divisor without forming the product.
// factor2 * divisor must fit in T.
func ProdDiv[T Unsigned](factor1, factor2, divisor T) T {
	return core.ProdDiv(factor1, factor2, divisor)
}
