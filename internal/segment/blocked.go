package segment

import (
	"iter"

	"fastdiv/internal/core"
)

// Blocked partitions [0, size) so that every segment boundary except the last
// is a multiple of blockSize. Whole blocks are spread uniformly across the
// segments; the final block may be short.
type Blocked[T core.Unsigned] struct {
	size      T
	blockSize T
	blocks    Uniform[T]      // segments measured in blocks
	blockDiv  core.Divisor[T] // index -> block
}

// NewBlocked creates a blocked segmenter. blockSize must be non-zero.
func NewBlocked[T core.Unsigned](size, segmentNum, blockSize T) Blocked[T] {
	blockNum := core.DivCeil(size, blockSize)
	return Blocked[T]{
		size:      size,
		blockSize: blockSize,
		blocks:    NewUniform(blockNum, segmentNum),
		blockDiv:  core.NewDivisor(blockSize),
	}
}

// Size returns the number of partitioned indices.
func (b Blocked[T]) Size() T {
	return b.size
}

// SegmentNum returns the number of segments.
func (b Blocked[T]) SegmentNum() T {
	return b.blocks.SegmentNum()
}

// BlockSize returns the alignment of the segment boundaries.
func (b Blocked[T]) BlockSize() T {
	return b.blockSize
}

// BlockNum returns the number of blocks, counting a short trailing block.
func (b Blocked[T]) BlockNum() T {
	return b.blocks.Size()
}

// SegmentStart returns the first index of segment, clamped to Size.
func (b Blocked[T]) SegmentStart(segment T) T {
	block := b.blocks.SegmentStart(segment)
	if block == b.blocks.Size() {
		// Avoids block*blockSize overflowing when size is close to max(T).
		return b.size
	}
	return block * b.blockSize
}

// SegmentEnd returns one past the last index of segment.
func (b Blocked[T]) SegmentEnd(segment T) T {
	return b.SegmentStart(segment + 1)
}

// SegmentRange returns the indices of segment.
func (b Blocked[T]) SegmentRange(segment T) Range[T] {
	return Range[T]{Begin: b.SegmentStart(segment), End: b.SegmentEnd(segment)}
}

// SegmentOf returns the segment containing index, which must be below Size.
func (b Blocked[T]) SegmentOf(index T) T {
	return b.blocks.SegmentOf(b.blockDiv.Div(index))
}

// UniformWithBlock is a Uniform segmenter that also tells consumers which
// block size to use when walking a segment.
type UniformWithBlock[T core.Unsigned] struct {
	Uniform[T]
	blockSize T
}

// NewUniformWithBlock creates a Uniform segmenter carrying blockSize.
func NewUniformWithBlock[T core.Unsigned](size, segmentNum, blockSize T) UniformWithBlock[T] {
	return UniformWithBlock[T]{Uniform: NewUniform(size, segmentNum), blockSize: blockSize}
}

// BlockSize returns the block size consumers should use.
func (u UniformWithBlock[T]) BlockSize() T {
	return u.blockSize
}

// Blocks yields segment split into consecutive blocks of BlockSize indices;
// the last block may be shorter. A zero block size yields the whole segment.
func (u UniformWithBlock[T]) Blocks(segment T) iter.Seq[Range[T]] {
	r := u.SegmentRange(segment)
	step := u.blockSize
	if step == 0 {
		step = r.Len()
	}
	return func(yield func(Range[T]) bool) {
		for begin := r.Begin; begin < r.End; {
			end := r.End
			if r.End-begin > step {
				end = begin + step
			}
			if !yield(Range[T]{Begin: begin, End: end}) {
				return
			}
			begin = end
		}
	}
}
