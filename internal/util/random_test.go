package util

import (
	"slices"
	"testing"
)

func TestDistinctUints64(t *testing.T) {
	for _, n := range []uint64{0, 1, 10, 5000} {
		keys := DistinctUints64(n, 42)
		if uint64(len(keys)) != n {
			t.Fatalf("n=%d: got %d keys", n, len(keys))
		}
		sorted := slices.Clone(keys)
		slices.Sort(sorted)
		if len(slices.Compact(sorted)) != len(keys) {
			t.Fatalf("n=%d: keys are not distinct", n)
		}
	}

	if !slices.Equal(DistinctUints64(100, 7), DistinctUints64(100, 7)) {
		t.Error("same seed produced different keys")
	}
	if slices.Equal(DistinctUints64(100, 7), DistinctUints64(100, 8)) {
		t.Error("different seeds produced the same keys")
	}
}
