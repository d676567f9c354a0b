// Package segment splits an index range [0, size) into contiguous segments
// and maps indices back to the segment holding them in constant time.
package segment

import (
	"fmt"
	"iter"

	"fastdiv/internal/core"
)

// Range is the half-open index interval [Begin, End).
type Range[T core.Unsigned] struct {
	Begin T
	End   T
}

// Len returns End - Begin.
func (r Range[T]) Len() T {
	return r.End - r.Begin
}

// Empty reports whether the range holds no index.
func (r Range[T]) Empty() bool {
	return r.Begin >= r.End
}

// Contains reports whether Begin <= i < End.
func (r Range[T]) Contains(i T) bool {
	return r.Begin <= i && i < r.End
}

// All yields every index of the range in ascending order. The sequence can be
// consumed any number of times.
func (r Range[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := r.Begin; i < r.End; i++ {
			if !yield(i) {
				return
			}
		}
	}
}

// String formats the range as [Begin, End).
func (r Range[T]) String() string {
	return fmt.Sprintf("[%d, %d)", uint64(r.Begin), uint64(r.End))
}
