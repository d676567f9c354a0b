// Package multisize maps flat row-major indices to multi-dimensional
// positions and back. Every axis size is turned into a core.Divisor once, so
// the per-index conversion never executes a hardware divide.
package multisize

import (
	"fmt"
	"math/bits"

	"fastdiv/internal/core"
)

// MultiSize describes a row-major shape. It is immutable after New.
type MultiSize[T core.Unsigned] struct {
	sizes []T
	// from[i] is the product of sizes[i:]; from[len(sizes)] is 1.
	from     []T
	divs     []core.Divisor[T]
	fromDivs []core.Divisor[T]
}

// New creates a shape from its axis sizes, outermost first. It returns
// ErrShapeOverflow when the product of all sizes does not fit in T.
func New[T core.Unsigned](sizes ...T) (MultiSize[T], error) {
	if len(sizes) == 0 {
		return MultiSize[T]{}, fmt.Errorf("multisize: no axes: %w", core.ErrDimensionMismatch)
	}

	dims := len(sizes)
	m := MultiSize[T]{
		sizes:    append([]T(nil), sizes...),
		from:     make([]T, dims+1),
		divs:     make([]core.Divisor[T], dims),
		fromDivs: make([]core.Divisor[T], dims+1),
	}

	m.from[dims] = 1
	m.fromDivs[dims] = core.NewDivisor(T(1))
	for d := dims - 1; d >= 0; d-- {
		if sizes[d] == 0 {
			return MultiSize[T]{}, fmt.Errorf("multisize: axis %d has size 0: %w", d, core.ErrZeroDivisor)
		}
		hi, lo := bits.Mul64(uint64(m.from[d+1]), uint64(sizes[d]))
		if hi != 0 || lo > uint64(^T(0)) {
			return MultiSize[T]{}, fmt.Errorf("multisize: shape %v from axis %d: %w", sizes, d, core.ErrShapeOverflow)
		}
		m.divs[d] = core.NewDivisor(sizes[d])
		m.from[d] = T(lo)
		m.fromDivs[d] = core.NewDivisor(m.from[d])
	}
	return m, nil
}

// Dims returns the number of axes.
func (m MultiSize[T]) Dims() int {
	return len(m.sizes)
}

// Sizes returns a copy of the axis sizes.
func (m MultiSize[T]) Sizes() []T {
	return append([]T(nil), m.sizes...)
}

// TotalSize returns the number of elements in the shape.
func (m MultiSize[T]) TotalSize() T {
	return m.from[0]
}

// AxisSize returns the size of axis dim.
func (m MultiSize[T]) AxisSize(dim int) T {
	return m.sizes[dim]
}

// FromSize returns the number of elements spanned by axes dim and later.
func (m MultiSize[T]) FromSize(dim int) T {
	return m.from[dim]
}

// AfterSize returns the stride of axis dim.
func (m MultiSize[T]) AfterSize(dim int) T {
	return m.from[dim+1]
}

// IndexToPos returns the position of a flat index.
func (m MultiSize[T]) IndexToPos(index T) []T {
	pos := make([]T, len(m.sizes))
	m.fillPos(index, pos)
	return pos
}

func (m MultiSize[T]) fillPos(index T, pos []T) {
	last := len(m.sizes) - 1
	for d := last; d > 0; d-- {
		index, pos[d] = m.divs[d].DivMod(index)
	}
	pos[0] = index
}

// AxisIndex returns coordinate dim of the position of index without
// computing the others.
func (m MultiSize[T]) AxisIndex(index T, dim int) T {
	if dim == len(m.sizes)-1 {
		return m.divs[dim].Mod(index)
	}
	return m.divs[dim].Mod(m.fromDivs[dim+1].Div(index))
}

// PosToIndex returns the flat index of pos.
func (m MultiSize[T]) PosToIndex(pos []T) (T, error) {
	if len(pos) != len(m.sizes) {
		return 0, fmt.Errorf("multisize: got %d coordinates for %d axes: %w", len(pos), len(m.sizes), core.ErrDimensionMismatch)
	}
	var index T
	for d, p := range pos {
		if p >= m.sizes[d] {
			return 0, fmt.Errorf("multisize: coordinate %d on axis %d (size %d): %w",
				uint64(p), d, uint64(m.sizes[d]), core.ErrPositionOutOfRange)
		}
		index += p * m.from[d+1]
	}
	return index, nil
}
