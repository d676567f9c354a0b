// Package parallel runs loops over [0, size) on a fixed number of workers.
// Each worker derives its own slice of the loop from one shared, immutable
// segmenter, so no coordination is needed beyond waiting for completion.
package parallel

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"fastdiv/internal/core"
	"fastdiv/internal/segment"
)

// Func processes the indices of one segment.
type Func func(ctx context.Context, worker int, r segment.Range[uint64]) error

// ForEachSegment splits [0, size) uniformly across workers and calls fn once
// per worker. The first error cancels ctx for the others and is returned.
func ForEachSegment(ctx context.Context, size uint64, workers int, fn Func) error {
	if workers <= 0 {
		return fmt.Errorf("parallel: %d workers: %w", workers, core.ErrZeroSegments)
	}
	seg := segment.NewUniform(size, uint64(workers))
	return run(ctx, workers, seg.SegmentRange, fn)
}

// ForEachBlock is ForEachSegment with segment boundaries aligned to blockSize.
func ForEachBlock(ctx context.Context, size uint64, workers int, blockSize uint64, fn Func) error {
	if workers <= 0 {
		return fmt.Errorf("parallel: %d workers: %w", workers, core.ErrZeroSegments)
	}
	if blockSize == 0 {
		return fmt.Errorf("parallel: %w", core.ErrZeroBlockSize)
	}
	seg := segment.NewBlocked(size, uint64(workers), blockSize)
	return run(ctx, workers, seg.SegmentRange, fn)
}

// ForEach dispatches to ForEachBlock when cfg.BlockSize is set and to
// ForEachSegment otherwise, with cfg.NumThreads workers.
func ForEach(ctx context.Context, cfg core.Config, size uint64, fn Func) error {
	if cfg.BlockSize == 0 {
		return ForEachSegment(ctx, size, cfg.NumThreads, fn)
	}
	return ForEachBlock(ctx, size, cfg.NumThreads, cfg.BlockSize, fn)
}

func run(ctx context.Context, workers int, rangeOf func(uint64) segment.Range[uint64], fn Func) error {
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, w, rangeOf(uint64(w)))
		})
	}
	return g.Wait()
}

// Reduce maps every segment to a partial result in parallel and folds the
// partial results in segment order, so reduceFn need not be commutative.
func Reduce[R any](
	ctx context.Context,
	size uint64,
	workers int,
	mapFn func(ctx context.Context, r segment.Range[uint64]) (R, error),
	reduceFn func(acc, part R) R,
) (R, error) {
	var acc R
	if workers <= 0 {
		return acc, fmt.Errorf("parallel: %d workers: %w", workers, core.ErrZeroSegments)
	}

	parts := make([]R, workers)
	err := ForEachSegment(ctx, size, workers, func(ctx context.Context, worker int, r segment.Range[uint64]) error {
		part, err := mapFn(ctx, r)
		if err != nil {
			return fmt.Errorf("segment %d %s: %w", worker, r, err)
		}
		parts[worker] = part
		return nil
	})
	if err != nil {
		return acc, err
	}

	acc = parts[0]
	for _, part := range parts[1:] {
		acc = reduceFn(acc, part)
	}
	return acc, nil
}
