package segment

import (
	"fastdiv/internal/core"
)

// Uniform partitions [0, size) into segmentNum contiguous segments whose sizes
// differ by at most one. The size%segmentNum larger segments come first.
//
// Uniform is an immutable value; all queries are safe for concurrent use.
type Uniform[T core.Unsigned] struct {
	size       T
	segmentNum T
	div        T // size / segmentNum
	mod        T // size % segmentNum

	// divDiv is only valid when hasDivDiv is set (div != 0).
	divDiv    core.Divisor[T]
	hasDivDiv bool
	divDiv1   core.Divisor[T]
}

// NewUniform creates a segmenter for size indices and segmentNum segments.
// segmentNum may only be zero when size is zero as well.
func NewUniform[T core.Unsigned](size, segmentNum T) Uniform[T] {
	if core.Debug && segmentNum == 0 && size != 0 {
		panic(core.PreconditionError{Op: "NewUniform", Msg: "zero segments for a non-empty range"})
	}

	u := Uniform[T]{size: size, segmentNum: segmentNum}
	if segmentNum != 0 {
		u.div, u.mod = core.DivMod(size, segmentNum)
	}
	if u.div != 0 {
		u.divDiv = core.NewDivisor(u.div)
		u.hasDivDiv = true
	}
	if wide := u.div + 1; wide != 0 {
		u.divDiv1 = core.NewDivisor(wide)
	} else {
		// div == max(T) means a single segment covering everything: mod is 0,
		// so the wide branch of SegmentOf only ever sees index 0.
		u.divDiv1 = core.NewDivisor(u.div)
	}
	return u
}

// Size returns the number of partitioned indices.
func (u Uniform[T]) Size() T {
	return u.size
}

// SegmentNum returns the number of segments.
func (u Uniform[T]) SegmentNum() T {
	return u.segmentNum
}

// SegmentSizes returns the narrow segment size and the number of wide
// (narrow+1) segments.
func (u Uniform[T]) SegmentSizes() (div, mod T) {
	return u.div, u.mod
}

// SegmentStart returns the first index of segment. segment may equal
// SegmentNum, in which case Size is returned.
func (u Uniform[T]) SegmentStart(segment T) T {
	if core.Debug && segment > u.segmentNum {
		panic(core.PreconditionError{Op: "SegmentStart", Msg: "segment is past the last segment"})
	}
	return segment*u.div + min(u.mod, segment)
}

// SegmentEnd returns one past the last index of segment.
func (u Uniform[T]) SegmentEnd(segment T) T {
	return u.SegmentStart(segment + 1)
}

// SegmentRange returns the indices of segment.
func (u Uniform[T]) SegmentRange(segment T) Range[T] {
	return Range[T]{Begin: u.SegmentStart(segment), End: u.SegmentStart(segment + 1)}
}

// SegmentOf returns the segment containing index, which must be below Size.
func (u Uniform[T]) SegmentOf(index T) T {
	if core.Debug && index >= u.size {
		panic(core.PreconditionError{Op: "SegmentOf", Msg: "index is out of range"})
	}
	// ref is where the wide segments end.
	ref := u.mod * (u.div + 1)
	if index <= ref {
		return u.divDiv1.Div(index)
	}
	if core.Debug && !u.hasDivDiv {
		panic(core.PreconditionError{Op: "SegmentOf", Msg: "narrow segments are empty"})
	}
	return u.mod + u.divDiv.Div(index-ref)
}

// Segments returns the range of every segment in order.
func (u Uniform[T]) Segments() []Range[T] {
	out := make([]Range[T], 0, int(u.segmentNum))
	for s := T(0); s < u.segmentNum; s++ {
		out = append(out, u.SegmentRange(s))
	}
	return out
}
