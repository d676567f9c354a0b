package multisize

import (
	"fmt"

	"fastdiv/internal/core"
)

// Cursor walks a shape keeping the flat index and the position in sync.
// Single steps carry or borrow across axes; jumps go through the divisors.
type Cursor[T core.Unsigned] struct {
	shape MultiSize[T]
	index T
	pos   []T
}

// CursorAt returns a cursor positioned at index. index may equal TotalSize,
// which is the one-past-the-end cursor.
func (m MultiSize[T]) CursorAt(index T) *Cursor[T] {
	return &Cursor[T]{shape: m, index: index, pos: m.IndexToPos(index)}
}

// Index returns the flat index.
func (c *Cursor[T]) Index() T {
	return c.index
}

// Pos returns a copy of the current position.
func (c *Cursor[T]) Pos() []T {
	return append([]T(nil), c.pos...)
}

// Next advances the cursor by one element.
func (c *Cursor[T]) Next() {
	c.index++
	last := len(c.pos) - 1
	c.pos[last]++
	for d := last; d > 0; d-- {
		if c.pos[d] != c.shape.sizes[d] {
			break
		}
		c.pos[d] = 0
		c.pos[d-1]++
	}
}

// Prev moves the cursor back by one element. The cursor must not be at 0.
func (c *Cursor[T]) Prev() {
	c.index--
	last := len(c.pos) - 1
	c.pos[last]--
	for d := last; d > 0; d-- {
		if c.pos[d] != ^T(0) {
			break
		}
		c.pos[d] = c.shape.sizes[d] - 1
		c.pos[d-1]--
	}
}

// Add moves the cursor forward by off elements.
func (c *Cursor[T]) Add(off T) {
	c.index += off
	c.shape.fillPos(c.index, c.pos)
}

// Sub moves the cursor back by off elements.
func (c *Cursor[T]) Sub(off T) {
	c.index -= off
	c.shape.fillPos(c.index, c.pos)
}

// String formats the cursor as index@[p0 p1 ...].
func (c *Cursor[T]) String() string {
	return fmt.Sprintf("%d@%v", uint64(c.index), c.pos)
}
